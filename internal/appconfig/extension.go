package appconfig

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cast"
)

// ResolveExtensionConfig builds the configuration of one extension point.
// folder is the extension's directory relative to the project root, name
// its normalized identifier, extRaw the content of its config file. top
// must come from ResolveTopConfig: the runtime section and app identity are
// taken from it.
func (l *Loader) ResolveExtensionConfig(name, folder string, extRaw RawConfig, top *TopConfig) (*ExtensionConfig, error) {
	if top == nil || top.OW == nil {
		return nil, errors.New("top-level config must be resolved before extensions")
	}
	if extRaw == nil {
		extRaw = RawConfig{}
	}

	extRoot := l.abs(folder)
	cfg := &ExtensionConfig{
		Name:    name,
		Root:    extRoot,
		AppRoot: l.root,
	}

	// Extension-private: the top-level config cannot override these.
	actions := filepath.Clean(stringOr(extRaw, keyActions, DefaultActionsDir))
	web := filepath.Clean(stringOr(extRaw, keyWeb, DefaultWebDir))
	cfg.Actions.Src = filepath.Join(extRoot, actions)
	cfg.Web.Src = filepath.Join(extRoot, web)
	cfg.Web.InjectedConfig = filepath.Join(extRoot, web, "src", "config.json")

	mc, err := l.loadRuntimeManifest(extRoot, extRaw)
	if err != nil {
		return nil, err
	}
	cfg.Manifest = mc
	cfg.App.HasBackend = mc.Full != nil
	cfg.App.HasFrontend = l.dirExists(cfg.Web.Src)

	// Shared settings: the top-level config wins over the extension.
	shared := Merge(extRaw, top.User)

	// A partial credential set is ignored without a warning; deployment then
	// falls back to the token vending machine.
	accessKey := stringValue(shared, keyAccessKeyID)
	secretKey := stringValue(shared, keySecretAccessKey)
	bucket := stringValue(shared, keyS3Bucket)
	if accessKey != "" && secretKey != "" && bucket != "" {
		cfg.S3.Creds = &S3Creds{
			AccessKeyID:     accessKey,
			SecretAccessKey: secretKey,
			Bucket:          bucket,
		}
	}
	// Legacy projects carry the default TVM URL in .env; it must not count
	// as a custom endpoint.
	if tvm := stringValue(shared, keyTvmURL); tvm != "" && tvm != DefaultTvmURL {
		cfg.S3.TVMURL = tvm
	}

	cfg.App.DefaultHostname = DefaultAppHostname
	if env, ok := Lookup(top.AIOConfig, CliEnvKey); ok && cast.ToString(env) == StageEnv {
		cfg.App.DefaultHostname = StageAppHostname
	}
	cfg.App.Hostname = stringOr(shared, keyHostname, DefaultAppHostname)

	durations := []struct {
		key string
		def int
		dst *int
	}{
		{keyHTMLCacheDuration, DefaultHTMLCacheDuration, &cfg.App.HTMLCacheDuration},
		{keyJSCacheDuration, DefaultJSCacheDuration, &cfg.App.JSCacheDuration},
		{keyCSSCacheDuration, DefaultCSSCacheDuration, &cfg.App.CSSCacheDuration},
		{keyImageCacheDuration, DefaultImageCacheDuration, &cfg.App.ImageCacheDuration},
	}
	for _, d := range durations {
		v, err := cacheDuration(shared, d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	// Hooks: the extension wins over the top-level config.
	cfg.Hooks = stringMap(Merge(stringsToRaw(top.Hooks), stringsToRaw(stringMap(extRaw[keyHooks]))))

	// Outputs live under the project root, namespaced per extension.
	distRoot := filepath.Join(l.root, top.Dist, name)
	cfg.App.Dist = top.Dist
	cfg.Actions.Dist = filepath.Join(distRoot, actions)
	cfg.Web.DistDev = filepath.Join(distRoot, web+"-dev")
	cfg.Web.DistProd = filepath.Join(distRoot, web+"-prod")
	cfg.S3.CredsCacheFile = filepath.Join(l.root, CredsCacheFile)

	cfg.OW = top.OW
	cfg.S3.Folder = top.OW.Namespace
	cfg.ImsOrgID = top.ImsOrgID
	cfg.App.Name = top.App.Name
	cfg.App.Version = top.App.Version

	return cfg, nil
}

func stringOr(raw RawConfig, key, def string) string {
	if v := stringValue(raw, key); v != "" {
		return v
	}
	return def
}

// cacheDuration reads a duration in seconds given as a number or a numeric
// string. Zero and absent values fall back to def.
func cacheDuration(raw RawConfig, key string, def int) (int, error) {
	v, ok := raw[key]
	if !ok || v == nil || v == "" {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %v: %w", key, v, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %d: must not be negative", key, n)
	}
	if n == 0 {
		return def, nil
	}
	return n, nil
}

func stringsToRaw(m map[string]string) RawConfig {
	out := make(RawConfig, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
