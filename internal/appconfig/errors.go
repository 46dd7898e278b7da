package appconfig

import "fmt"

// MissingFileError is returned when a required file does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing file %s", e.Path)
}

// ParseError is returned when a file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtensionConfigError wraps a failure to resolve one extension point.
type ExtensionConfigError struct {
	Extension string
	Err       error
}

func (e *ExtensionConfigError) Error() string {
	return fmt.Sprintf("resolving extension %q: %v", e.Extension, e.Err)
}

func (e *ExtensionConfigError) Unwrap() error { return e.Err }
