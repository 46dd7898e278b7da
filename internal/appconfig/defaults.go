package appconfig

// File names looked up relative to the project root.
const (
	AppConfigFile   = "app.config.yaml"
	PackageJSONFile = "package.json"
	CredsCacheFile  = ".aws.tmp.creds.json"
)

// Per-extension defaults.
const (
	DefaultActionsDir   = "actions"
	DefaultWebDir       = "web-src"
	DefaultDistDir      = "dist"
	RuntimeManifestFile = "manifest.yml"
)

// App identity defaults.
const (
	DefaultAppName    = "unnamed-app"
	DefaultAppVersion = "0.1.0"
)

// Runtime and hosting defaults.
const (
	DefaultOwAPIHost    = "https://adobeioruntime.net"
	DefaultOwAPIVersion = "v1"
	DefaultTvmURL       = "https://adobeio.adobeioruntime.net/apis/tvm/"
	DefaultAppHostname  = "adobeio-static.net"
	StageAppHostname    = "dev.adobeio-static.net"

	DefaultHTMLCacheDuration  = 60
	DefaultJSCacheDuration    = 604800
	DefaultCSSCacheDuration   = 604800
	DefaultImageCacheDuration = 604800
)

// Keys read from the global CLI configuration.
const (
	ImsOrgIDKey = "project.org.ims_org_id"
	CliEnvKey   = "cli.env"
	StageEnv    = "stage"
)

// Keys recognized in app.config.yaml and extension config files.
const (
	keyExtensionPoints    = "extensionPoints"
	keyDist               = "dist"
	keyHooks              = "hooks"
	keyActions            = "actions"
	keyWeb                = "web"
	keyRuntimeManifest    = "runtimeManifest"
	keyAccessKeyID        = "awsaccesskeyid"
	keySecretAccessKey    = "awssecretaccesskey"
	keyS3Bucket           = "s3bucket"
	keyTvmURL             = "tvmurl"
	keyHostname           = "hostname"
	keyHTMLCacheDuration  = "htmlcacheduration"
	keyJSCacheDuration    = "jscacheduration"
	keyCSSCacheDuration   = "csscacheduration"
	keyImageCacheDuration = "imagecacheduration"
)
