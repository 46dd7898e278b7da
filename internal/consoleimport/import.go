package consoleimport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/appbuilder-labs/aio-app/internal/branding"
	"github.com/appbuilder-labs/aio-app/internal/config"
	"github.com/appbuilder-labs/aio-app/internal/platform"
	"github.com/subosito/gotenv"
)

// Environment variables written to .env.
var (
	EnvRuntimeNamespace = branding.EnvVar("RUNTIME_NAMESPACE")
	EnvRuntimeAuth      = branding.EnvVar("RUNTIME_AUTH")
)

// Options control how existing project files are treated.
type Options struct {
	// Overwrite replaces .aio and .env instead of merging into them.
	Overwrite bool
}

// Result describes what an import wrote.
type Result struct {
	ProjectName   string
	WorkspaceName string
	Namespace     string
	Services      []string
	ConfigPath    string
	EnvPath       string
}

type export struct {
	Project struct {
		Name      string `json:"name"`
		Workspace struct {
			Name    string `json:"name"`
			Details struct {
				Services []struct {
					Code string `json:"code"`
				} `json:"services"`
				Runtime struct {
					Namespaces []struct {
						Name string `json:"name"`
						Auth string `json:"auth"`
					} `json:"namespaces"`
				} `json:"runtime"`
			} `json:"details"`
		} `json:"workspace"`
	} `json:"project"`
}

// Import reads the console export at path and writes it into projectDir.
func Import(path, projectDir string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading console configuration %s: %w", path, err)
	}
	return ImportData(path, data, projectDir, opts)
}

// ImportData is Import for an export already in memory; name is used in
// error messages.
func ImportData(name string, data []byte, projectDir string, opts Options) (*Result, error) {
	if err := validate(name, data); err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing console configuration %s: %w", name, err)
	}
	var exp export
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("parsing console configuration %s: %w", name, err)
	}

	res := &Result{
		ProjectName:   exp.Project.Name,
		WorkspaceName: exp.Project.Workspace.Name,
		ConfigPath:    filepath.Join(projectDir, config.LocalFileName),
		EnvPath:       filepath.Join(projectDir, config.DotEnvFileName),
	}
	for _, s := range exp.Project.Workspace.Details.Services {
		res.Services = append(res.Services, s.Code)
	}

	if err := config.WriteKey(res.ConfigPath, "project", raw["project"], opts.Overwrite); err != nil {
		return nil, err
	}

	env := map[string]string{}
	if ns := exp.Project.Workspace.Details.Runtime.Namespaces; len(ns) > 0 {
		res.Namespace = ns[0].Name
		env[EnvRuntimeNamespace] = ns[0].Name
		env[EnvRuntimeAuth] = ns[0].Auth
	}
	if len(env) > 0 {
		if err := writeEnv(res.EnvPath, env, opts.Overwrite); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// writeEnv sets values in a .env file. When merging, unrelated lines and
// comments are kept in place and existing keys are updated in place.
func writeEnv(path string, values map[string]string, overwrite bool) error {
	var lines []string
	if !overwrite {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if len(data) > 0 {
			lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		}
	}

	written := map[string]bool{}
	for i, line := range lines {
		key := lineKey(line)
		if v, ok := values[key]; ok {
			lines[i] = formatEnvLine(key, v)
			written[key] = true
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if !written[k] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		lines = append(lines, formatEnvLine(k, values[k]))
	}

	return platform.WriteSecretFile(path, []byte(strings.Join(lines, "\n")+"\n"))
}

// lineKey returns the variable a .env line assigns, or "" for blank lines,
// comments and lines gotenv cannot parse.
func lineKey(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	env, err := gotenv.StrictParse(strings.NewReader(trimmed))
	if err != nil || len(env) != 1 {
		return ""
	}
	for k := range env {
		return k
	}
	return ""
}

func formatEnvLine(key, value string) string {
	if strings.ContainsAny(value, " \t#\"'\\") {
		return key + "=" + fmt.Sprintf("%q", value)
	}
	return key + "=" + value
}
