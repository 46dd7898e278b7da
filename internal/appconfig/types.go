package appconfig

import (
	"github.com/appbuilder-labs/aio-app/internal/manifest"
)

// RawConfig is an untyped key/value tree loaded verbatim from YAML or JSON.
type RawConfig = map[string]interface{}

// ExtensionPoint is an entry of the extensionPoints block in app.config.yaml.
type ExtensionPoint struct {
	// Config is the path of the extension's YAML file, relative to the
	// project root.
	Config string `yaml:"config" json:"config" mapstructure:"config"`

	// err records why the declaration could not be decoded.
	err error
}

// AppInfo is the identity of the app derived from package.json.
type AppInfo struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// RuntimeConfig is the "ow" section: where and as whom actions get deployed.
type RuntimeConfig struct {
	APIHost        string `yaml:"apihost" json:"apihost" mapstructure:"apihost"`
	DefaultAPIHost string `yaml:"defaultApihost" json:"defaultApihost" mapstructure:"-"`
	APIVersion     string `yaml:"apiversion" json:"apiversion" mapstructure:"apiversion"`
	Namespace      string `yaml:"namespace,omitempty" json:"namespace,omitempty" mapstructure:"namespace"`
	Auth           string `yaml:"auth,omitempty" json:"auth,omitempty" mapstructure:"auth"`
	Package        string `yaml:"package" json:"package" mapstructure:"-"`
}

// TopConfig is the resolved project-wide configuration.
type TopConfig struct {
	App             AppInfo                   `yaml:"app" json:"app"`
	OW              *RuntimeConfig            `yaml:"ow" json:"ow"`
	ExtensionPoints map[string]ExtensionPoint `yaml:"extensionPoints" json:"extensionPoints"`
	Dist            string                    `yaml:"dist" json:"dist"`
	Hooks           map[string]string         `yaml:"hooks,omitempty" json:"hooks,omitempty"`
	ImsOrgID        string                    `yaml:"imsOrgId,omitempty" json:"imsOrgId,omitempty"`

	// PackageJSON is the parsed package.json.
	PackageJSON RawConfig `yaml:"-" json:"-"`
	// User is the merged user configuration (legacy global app settings
	// overlaid with app.config.yaml). Shared extension settings are looked
	// up here.
	User RawConfig `yaml:"-" json:"-"`
	// AIOConfig is the global CLI configuration the resolution started from.
	AIOConfig RawConfig `yaml:"-" json:"-"`
}

// ExtensionApp holds the app-level settings of one extension.
type ExtensionApp struct {
	Name               string `yaml:"name" json:"name"`
	Version            string `yaml:"version" json:"version"`
	HasBackend         bool   `yaml:"hasBackend" json:"hasBackend"`
	HasFrontend        bool   `yaml:"hasFrontend" json:"hasFrontend"`
	Hostname           string `yaml:"hostname" json:"hostname"`
	DefaultHostname    string `yaml:"defaultHostname" json:"defaultHostname"`
	HTMLCacheDuration  int    `yaml:"htmlCacheDuration" json:"htmlCacheDuration"`
	JSCacheDuration    int    `yaml:"jsCacheDuration" json:"jsCacheDuration"`
	CSSCacheDuration   int    `yaml:"cssCacheDuration" json:"cssCacheDuration"`
	ImageCacheDuration int    `yaml:"imageCacheDuration" json:"imageCacheDuration"`
	Dist               string `yaml:"dist" json:"dist"`
}

// S3Creds are static storage credentials for web asset deployment.
type S3Creds struct {
	AccessKeyID     string `yaml:"accessKeyId" json:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey" json:"secretAccessKey"`
	Bucket          string `yaml:"bucket" json:"bucket"`
}

// S3Config describes where web assets are uploaded.
type S3Config struct {
	Creds          *S3Creds `yaml:"creds,omitempty" json:"creds,omitempty"`
	TVMURL         string   `yaml:"tvmUrl,omitempty" json:"tvmUrl,omitempty"`
	CredsCacheFile string   `yaml:"credsCacheFile" json:"credsCacheFile"`
	Folder         string   `yaml:"folder,omitempty" json:"folder,omitempty"`
}

// WebConfig holds frontend source and output paths.
type WebConfig struct {
	Src            string `yaml:"src" json:"src"`
	InjectedConfig string `yaml:"injectedConfig" json:"injectedConfig"`
	DistDev        string `yaml:"distDev" json:"distDev"`
	DistProd       string `yaml:"distProd" json:"distProd"`
}

// ManifestConfig points at the runtime manifest of an extension. Full is
// the manifest tree exactly as loaded; Package is its placeholder package
// definition, when declared. Embedded reports that Full came from the
// runtimeManifest key rather than the file at Src.
type ManifestConfig struct {
	Src                string            `yaml:"src" json:"src"`
	Embedded           bool              `yaml:"embedded,omitempty" json:"embedded,omitempty"`
	Full               manifest.Manifest `yaml:"full,omitempty" json:"full,omitempty"`
	PackagePlaceholder string            `yaml:"packagePlaceholder,omitempty" json:"packagePlaceholder,omitempty"`
	Package            RawConfig         `yaml:"package,omitempty" json:"package,omitempty"`
}

// ActionsConfig holds backend source and output paths.
type ActionsConfig struct {
	Src  string `yaml:"src" json:"src"`
	Dist string `yaml:"dist" json:"dist"`
}

// ExtensionConfig is the fully resolved configuration of one extension point.
type ExtensionConfig struct {
	Name     string            `yaml:"name" json:"name"`
	App      ExtensionApp      `yaml:"app" json:"app"`
	OW       *RuntimeConfig    `yaml:"ow" json:"ow"`
	S3       S3Config          `yaml:"s3" json:"s3"`
	Web      WebConfig         `yaml:"web" json:"web"`
	Manifest ManifestConfig    `yaml:"manifest" json:"manifest"`
	Actions  ActionsConfig     `yaml:"actions" json:"actions"`
	Hooks    map[string]string `yaml:"hooks,omitempty" json:"hooks,omitempty"`
	ImsOrgID string            `yaml:"imsOrgId,omitempty" json:"imsOrgId,omitempty"`

	// Root is the absolute path of the extension folder.
	Root string `yaml:"root" json:"root"`
	// AppRoot is the absolute path of the project root.
	AppRoot string `yaml:"appRoot" json:"appRoot"`
}

// Config is the aggregate result of a resolution.
type Config struct {
	ExtensionPoints       map[string]ExtensionPoint   `yaml:"extensionPoints" json:"extensionPoints"`
	ExtensionPointsConfig map[string]*ExtensionConfig `yaml:"extensionPointsConfig" json:"extensionPointsConfig"`
	AIOConfig             RawConfig                   `yaml:"-" json:"-"`
	Root                  string                      `yaml:"root" json:"root"`
}

// ExtensionNames returns the normalized extension names in sorted order.
func (c *Config) ExtensionNames() []string {
	return sortedKeys(c.ExtensionPointsConfig)
}
