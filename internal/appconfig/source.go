package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appbuilder-labs/aio-app/internal/manifest"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
)

// LoadUserConfig reads a YAML config file. A missing file yields an empty
// config; a malformed one a *ParseError.
func LoadUserConfig(fs afero.Fs, path string) (RawConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if raw == nil {
		raw = RawConfig{}
	}
	return raw, nil
}

// LoadPackageJSON reads the package manifest. Unlike the YAML configs it is
// required: a missing file yields a *MissingFileError.
func LoadPackageJSON(fs afero.Fs, path string) (RawConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw RawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if raw == nil {
		raw = RawConfig{}
	}
	return raw, nil
}

// loadRuntimeManifest resolves the runtime manifest of an extension. An
// embedded runtimeManifest block takes precedence over manifest.yml in the
// extension folder; with neither, or with an empty manifest file, the
// extension has no backend and only Src is set.
func (l *Loader) loadRuntimeManifest(extRoot string, extRaw RawConfig) (ManifestConfig, error) {
	mc := ManifestConfig{Src: filepath.Join(extRoot, RuntimeManifestFile)}

	if embedded, ok := extRaw[keyRuntimeManifest]; ok && embedded != nil {
		m, ok := asMap(embedded)
		if !ok {
			return mc, fmt.Errorf("%s must be a mapping, got %T", keyRuntimeManifest, embedded)
		}
		mc.Full = manifest.FromMap(m)
		mc.Embedded = true
	} else {
		data, err := afero.ReadFile(l.fs, mc.Src)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return mc, nil
			}
			return mc, fmt.Errorf("reading manifest %s: %w", mc.Src, err)
		}
		full, err := manifest.Parse(data)
		if err != nil {
			return mc, &ParseError{Path: mc.Src, Err: err}
		}
		mc.Full = full
	}
	if mc.Full == nil {
		return mc, nil
	}

	mc.PackagePlaceholder = manifest.PackagePlaceholder
	mc.Package = mc.Full.PlaceholderPackage()
	if mc.Package != nil {
		l.logger.Debug("runtime manifest uses package placeholder",
			zap.String("placeholder", mc.PackagePlaceholder),
			zap.String("manifest", mc.Src))
	}
	return mc, nil
}
