// Package appconfig resolves the configuration of an App Builder project.
//
// Resolution runs in passes. The source loader reads app.config.yaml,
// package.json, per-extension YAML files and runtime manifests. The
// top-level resolver merges the global CLI configuration with the project
// files and computes the app identity and runtime defaults. The extension
// resolver then builds one ExtensionConfig per declared extension point,
// and the aggregator collects them into a Config keyed by normalized
// extension name.
//
// Nothing here reads process-global state: callers pass the loaded global
// configuration and an afero.Fs, and get back a Config that is theirs for
// the duration of one command.
package appconfig
