package appconfig

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Loader resolves project configuration rooted at one directory.
type Loader struct {
	root   string
	fs     afero.Fs
	logger *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs sets the filesystem all project files are read from. Defaults to
// the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) { l.fs = fs }
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader returns a Loader for the project at root. Relative roots are
// made absolute against the working directory.
func NewLoader(root string, opts ...Option) (*Loader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root %s: %w", root, err)
	}
	l := &Loader{
		root:   abs,
		fs:     afero.NewOsFs(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.Named("config-loader")
	return l, nil
}

// Load resolves the configuration of the project at root against the
// already loaded global CLI configuration.
func Load(root string, global RawConfig, opts ...Option) (*Config, error) {
	l, err := NewLoader(root, opts...)
	if err != nil {
		return nil, err
	}
	return l.Load(global)
}

// Load resolves the top-level config, then every declared extension point.
// Any extension failure aborts the whole resolution.
func (l *Loader) Load(global RawConfig) (*Config, error) {
	top, err := l.ResolveTopConfig(global)
	if err != nil {
		return nil, err
	}

	extConfigs := make(map[string]*ExtensionConfig, len(top.ExtensionPoints))
	for _, key := range sortedKeys(top.ExtensionPoints) {
		name := normalizeExtensionName(key)
		cfg, err := l.resolveDeclared(name, top.ExtensionPoints[key], top)
		if err != nil {
			return nil, &ExtensionConfigError{Extension: name, Err: err}
		}
		if _, dup := extConfigs[name]; dup {
			l.logger.Warn("extension points normalize to the same name", zap.String("extension", name))
		}
		extConfigs[name] = cfg
	}

	return &Config{
		ExtensionPoints:       top.ExtensionPoints,
		ExtensionPointsConfig: extConfigs,
		AIOConfig:             top.AIOConfig,
		Root:                  l.root,
	}, nil
}

func (l *Loader) resolveDeclared(name string, ep ExtensionPoint, top *TopConfig) (*ExtensionConfig, error) {
	if ep.err != nil {
		return nil, ep.err
	}
	if ep.Config == "" {
		return nil, errors.New("extension point declares no config file")
	}
	extRaw, err := LoadUserConfig(l.fs, l.abs(ep.Config))
	if err != nil {
		return nil, err
	}
	return l.ResolveExtensionConfig(name, filepath.Dir(ep.Config), extRaw, top)
}

// abs resolves p against the project root.
func (l *Loader) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(l.root, p)
}

func (l *Loader) dirExists(path string) bool {
	ok, err := afero.DirExists(l.fs, path)
	return err == nil && ok
}
