// Package config manages the CLI configuration shared by every aio command.
//
// Values are layered, lowest precedence first: the user-global JSON file
// ($XDG_CONFIG_HOME/aio), the project-local .aio file, AIO_* entries of the
// project .env file, and AIO_* variables of the process environment. An
// environment key maps to a dotted config key by lowercasing it, turning
// "_" into "." and "__" into a literal "_": AIO_RUNTIME_NAMESPACE becomes
// runtime.namespace.
package config
