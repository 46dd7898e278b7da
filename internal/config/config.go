package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/appbuilder-labs/aio-app/internal/branding"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	// LocalFileName is the project-local config file.
	LocalFileName = ".aio"
	// DotEnvFileName holds project secrets such as runtime credentials.
	DotEnvFileName = ".env"

	fileType = "json"
)

// Dir returns the user config directory ($XDG_CONFIG_HOME or ~/.config).
func Dir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config")
	}
	return filepath.Join(home, ".config")
}

// FilePath returns the full path to the global config file.
func FilePath() string {
	return filepath.Join(Dir(), branding.ConfigDir())
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Store is the merged view of all configuration layers for one project.
type Store struct {
	v          *viper.Viper
	globalPath string
	localPath  string
	envPath    string
}

// Load reads every layer for the project in projectDir. Missing files are
// skipped; malformed ones are errors.
func Load(projectDir string) (*Store, error) {
	s := &Store{
		v:          viper.New(),
		globalPath: FilePath(),
		localPath:  filepath.Join(projectDir, LocalFileName),
		envPath:    filepath.Join(projectDir, DotEnvFileName),
	}
	s.v.SetConfigType(fileType)

	if err := mergeFile(s.v, s.globalPath); err != nil {
		return nil, err
	}
	if err := mergeFile(s.v, s.localPath); err != nil {
		return nil, err
	}

	env, err := readDotEnv(s.envPath)
	if err != nil {
		return nil, err
	}
	// Process variables win over the .env file.
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		env[k] = v
	}
	prefix := branding.EnvPrefix() + "_"
	for k, v := range env {
		if !strings.HasPrefix(k, prefix) || len(k) == len(prefix) {
			continue
		}
		s.v.Set(EnvKeyToConfigKey(strings.TrimPrefix(k, prefix)), v)
	}

	return s, nil
}

// Get returns the value at a dotted key, or nil.
func (s *Store) Get(key string) interface{} {
	return s.v.Get(key)
}

// GetString returns the value at key as a string. Returns empty string if not set.
func (s *Store) GetString(key string) string {
	return cast.ToString(s.v.Get(key))
}

// IsSet reports whether any layer sets key.
func (s *Store) IsSet(key string) bool {
	return s.v.IsSet(key)
}

// All returns the merged configuration tree. Keys are lowercase.
func (s *Store) All() map[string]interface{} {
	return s.v.AllSettings()
}

// LocalPath returns the path of the project-local config file.
func (s *Store) LocalPath() string { return s.localPath }

// GlobalPath returns the path of the user-global config file.
func (s *Store) GlobalPath() string { return s.globalPath }

// Set writes key to the local (.aio) or global file and updates the
// merged view. Only the target file is rewritten.
func (s *Store) Set(key string, value interface{}, local bool) error {
	path := s.globalPath
	if local {
		path = s.localPath
	} else if err := EnsureDir(); err != nil {
		return err
	}
	if err := WriteKey(path, key, value, false); err != nil {
		return err
	}
	s.v.Set(key, value)
	return nil
}

// WriteKey sets a dotted key in the config file at path, replacing the
// value the key held. Other settings are kept unless replace is set, in
// which case the file holds only key afterwards.
func WriteKey(path, key string, value interface{}, replace bool) error {
	doc := map[string]interface{}{}
	if !replace {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	parts := strings.Split(key, ".")
	m := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// EnvKeyToConfigKey maps the part of an environment variable after the
// prefix to a dotted config key: RUNTIME_NAMESPACE → runtime.namespace,
// IMS__ORG → ims_org.
func EnvKeyToConfigKey(k string) string {
	parts := strings.Split(strings.ToLower(k), "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", ".")
	}
	return strings.Join(parts, "_")
}

// mergeFile merges a JSON config file into v. A missing file is skipped.
func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// readDotEnv parses a .env file. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	env := map[string]string{}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return env, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	parsed, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing env file %s: %w", path, err)
	}
	for k, v := range parsed {
		env[k] = v
	}
	return env, nil
}
