package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/appbuilder-labs/aio-app/internal/appconfig"
	"github.com/appbuilder-labs/aio-app/internal/manifest"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *appconfig.Config {
	ow := &appconfig.RuntimeConfig{
		APIHost:   "https://adobeioruntime.net",
		Namespace: "ns",
		Auth:      "secret-auth",
		Package:   "myapp-1.0.0",
	}
	return &appconfig.Config{
		Root: "/project",
		AIOConfig: appconfig.RawConfig{
			"runtime": map[string]interface{}{"namespace": "ns", "auth": "s3cr3t-auth"},
			"s3":      map[string]interface{}{"accessKeyId": "id", "secretAccessKey": "s3-secret"},
			"ims":     map[string]interface{}{"access_token": "tok-123", "contexts": map[string]interface{}{"cli": map[string]interface{}{"client_secret": "cs"}}},
		},
		ExtensionPointsConfig: map[string]*appconfig.ExtensionConfig{
			"dx/excshell/1": {
				Name: "dx/excshell/1",
				App:  appconfig.ExtensionApp{Name: "myapp", HasBackend: true, HasFrontend: true},
				OW:   ow,
				S3:   appconfig.S3Config{Creds: &appconfig.S3Creds{AccessKeyID: "id", SecretAccessKey: "s3-secret", Bucket: "b"}},
				Manifest: appconfig.ManifestConfig{Full: manifest.Manifest{"packages": map[string]interface{}{
					"__APP_PACKAGE__": map[string]interface{}{
						"actions": map[string]interface{}{"generic": map[string]interface{}{"function": "actions/generic/index.js"}},
					},
				}}},
				Hooks: map[string]string{"post-app-build": "echo hi"},
				Root:  "/project/src/dx-excshell-1",
			},
			"application": {
				Name: "application",
				OW:   ow,
				Root: "/project",
			},
		},
	}
}

func TestRedact(t *testing.T) {
	cfg := sampleConfig()
	red := Redact(cfg)

	ext := red.ExtensionPointsConfig["dx/excshell/1"]
	assert.Equal(t, mask, ext.OW.Auth)
	assert.Equal(t, mask, ext.S3.Creds.SecretAccessKey)
	assert.Equal(t, "id", ext.S3.Creds.AccessKeyID)
	assert.Same(t, ext.OW, red.ExtensionPointsConfig["application"].OW, "redacted extensions keep sharing one runtime block")

	// the original is untouched
	orig := cfg.ExtensionPointsConfig["dx/excshell/1"]
	assert.Equal(t, "secret-auth", orig.OW.Auth)
	assert.Equal(t, "s3-secret", orig.S3.Creds.SecretAccessKey)

	assert.Nil(t, Redact(nil))
}

func TestRedact_RawCLIConfig(t *testing.T) {
	cfg := sampleConfig()
	red := Redact(cfg)

	for _, key := range []string{"runtime.auth", "s3.secretAccessKey", "ims.access_token", "ims.contexts.cli.client_secret"} {
		v, _ := appconfig.Lookup(red.AIOConfig, key)
		assert.Equal(t, mask, v, key)
	}
	ns, _ := appconfig.Lookup(red.AIOConfig, "runtime.namespace")
	assert.Equal(t, "ns", ns)

	auth, _ := appconfig.Lookup(cfg.AIOConfig, "runtime.auth")
	assert.Equal(t, "s3cr3t-auth", auth, "the original tree is untouched")

	var buf bytes.Buffer
	require.NoError(t, Template(&buf, `{{ .AIOConfig.runtime.auth }}`, red))
	assert.Equal(t, mask, buf.String())
}

func TestSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"runtime.auth", true},
		{"AIO_RUNTIME_AUTH", true},
		{"s3.secretAccessKey", true},
		{"ims.contexts.cli.client_secret", true},
		{"access_token", true},
		{"runtime.namespace", false},
		{"s3.accessKeyId", false},
		{"authors", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SensitiveKey(tt.key), tt.key)
	}
}

func TestYAMLAndJSON(t *testing.T) {
	red := Redact(sampleConfig())

	var y bytes.Buffer
	require.NoError(t, YAML(&y, red))
	assert.Contains(t, y.String(), "extensionPointsConfig:")
	assert.Contains(t, y.String(), "<hidden>")
	assert.NotContains(t, y.String(), "secret-auth")

	var j bytes.Buffer
	require.NoError(t, JSON(&j, red))
	assert.Contains(t, j.String(), `"package": "myapp-1.0.0"`)
	assert.NotContains(t, j.String(), "s3-secret")
}

func TestTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := Template(&buf, `{{ range $name, $ext := .ExtensionPointsConfig }}{{ $name | upper }}={{ $ext.Root | base }};{{ end }}`, sampleConfig())
	require.NoError(t, err)
	assert.Equal(t, "APPLICATION=project;DX/EXCSHELL/1=dx-excshell-1;", buf.String())
}

func TestTemplate_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Template(&buf, `{{ .Root `, sampleConfig()))
	assert.Error(t, Template(&buf, `{{ .missing }}`, map[string]interface{}{}))
}

func TestTables(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	var buf bytes.Buffer
	Extensions(&buf, sampleConfig())
	out := buf.String()
	assert.Contains(t, out, "EXTENSION")
	assert.Contains(t, out, "dx/excshell/1")
	assert.Contains(t, out, "myapp-1.0.0")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("application")), bytes.Index(buf.Bytes(), []byte("dx/excshell/1")))

	buf.Reset()
	Extensions(&buf, &appconfig.Config{})
	assert.Contains(t, buf.String(), "No extension points configured")

	buf.Reset()
	Services(&buf, "workspace services", []Service{{Name: "Adobe Analytics", Code: "AdobeAnalyticsSDK"}})
	assert.Contains(t, buf.String(), "AdobeAnalyticsSDK")
	assert.Contains(t, strings.ToLower(buf.String()), "total")

	buf.Reset()
	Services(&buf, "org services", nil)
	assert.Contains(t, buf.String(), "No org services")
}
