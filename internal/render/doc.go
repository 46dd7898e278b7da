// Package render writes resolved project configuration for humans and
// scripts: tables, YAML, JSON, or a user-supplied Go template with the sprig
// function library. Secrets are masked before anything is written.
package render
