package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse unmarshals manifest YAML. An empty document yields a nil Manifest.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	return m, nil
}

// ParseFile reads and parses a manifest file.
func ParseFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// FromMap adopts a manifest embedded in another config tree, such as the
// runtimeManifest key of an extension config. Values keep the types the
// YAML decoder gave them; only map keys are converted to strings.
func FromMap(raw map[string]interface{}) Manifest {
	if raw == nil {
		return nil
	}
	return Manifest(normalizeYAML(raw).(map[string]interface{}))
}
