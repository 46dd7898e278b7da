//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	ConfigHome string // XDG_CONFIG_HOME, holds the user config file
	DataHome   string // XDG_DATA_HOME, holds integration certificates
	ProjectDir string // an App Builder project
}

// setupTestEnv creates isolated temp directories and points the XDG
// variables at them. The variables are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		ConfigHome: t.TempDir(),
		DataHome:   t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_DATA_HOME", env.DataHome)
	return env
}

// writeProject lays out a project with a standalone application and one
// extension whose runtime manifest lives next to its config file.
func writeProject(t *testing.T, root string) {
	t.Helper()

	writeFile(t, filepath.Join(root, "package.json"), `{"name": "@acme/shop", "version": "0.3.0"}`)
	writeFile(t, filepath.Join(root, "app.config.yaml"), `dist: build
hooks:
  pre-app-build: echo top
extensionPoints:
  /dx/excshell/1/:
    config: src/dx-excshell-1/ext.config.yaml
`)
	writeFile(t, filepath.Join(root, "src/dx-excshell-1/ext.config.yaml"), `actions: actions
web: web-src
hooks:
  pre-app-build: echo ext
`)
	writeFile(t, filepath.Join(root, "src/dx-excshell-1/manifest.yml"), `packages:
  __APP_PACKAGE__:
    license: Apache-2.0
    actions:
      generic:
        function: actions/generic/index.js
        web: 'yes'
        runtime: 'nodejs:18'
`)
	if err := os.MkdirAll(filepath.Join(root, "src/dx-excshell-1/web-src"), 0755); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const consoleExport = `{
  "project": {
    "id": "proj-1",
    "name": "shop",
    "org": { "id": "55", "ims_org_id": "ABC@AdobeOrg" },
    "workspace": {
      "id": "ws-1",
      "name": "Stage",
      "details": {
        "services": [{ "code": "AdobeAnalyticsSDK", "name": "Adobe Analytics" }],
        "runtime": { "namespaces": [{ "name": "55-shop-stage", "auth": "uuid:key" }] }
      }
    }
  }
}`
