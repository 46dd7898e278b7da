// Package manifest handles parsing and validation of runtime manifests
// (manifest.yml). A runtime manifest declares the packages of backend
// actions, sequences, triggers, rules and APIs an extension deploys.
// Manifests are kept as the decoded YAML tree; accessors derive package
// and action views from it. Validation runs against the JSON Schema
// embedded from schema/ and locates each issue by package and entity.
package manifest
