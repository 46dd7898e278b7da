// Package cli defines the Cobra command tree for the aio-app CLI. Each file
// registers one top-level command with the root command. Commands resolve
// configuration through internal/config and internal/appconfig and only
// handle flags, output formatting and error presentation.
package cli
