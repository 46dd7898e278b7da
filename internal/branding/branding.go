// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	ConfigDir     string `yaml:"config_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	DataNamespace string `yaml:"data_namespace"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:       "aio-app",
			DisplayName:   "App Builder",
			Description:   "Create, configure and inspect App Builder projects",
			ConfigDir:     "aio",
			EnvPrefix:     "AIO",
			GoModule:      "github.com/appbuilder-labs/aio-app",
			DataNamespace: "@adobe/aio-cli-plugin-app",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "aio-app").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the name of the global config file under the user
// config directory (e.g., "aio" for ~/.config/aio).
func ConfigDir() string { load(); return defaults.ConfigDir }

// EnvPrefix returns the environment variable prefix (e.g., "AIO").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// DataNamespace returns the folder under the user data directory where
// the CLI keeps generated artifacts such as integration certificates.
func DataNamespace() string { load(); return defaults.DataNamespace }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("RUNTIME_AUTH") → "AIO_RUNTIME_AUTH".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
