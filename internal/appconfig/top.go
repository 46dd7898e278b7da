package appconfig

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const legacyConfigWarning = "Setting application configuration in the '.aio' file has been deprecated. " +
	"Please move your '.aio.app' or '.aio.cna' to 'app.config.yaml'."

var warnColor = color.New(color.FgHiRed, color.Bold)

// ResolveTopConfig merges the global CLI configuration with app.config.yaml
// and package.json. The global map is not modified.
func (l *Loader) ResolveTopConfig(global RawConfig) (*TopConfig, error) {
	if global == nil {
		global = RawConfig{}
	}

	local, err := LoadUserConfig(l.fs, l.abs(AppConfigFile))
	if err != nil {
		return nil, err
	}

	legacy := RawConfig{}
	appBlock, hasApp := global["app"]
	cnaBlock, hasCna := global["cna"]
	if hasApp || hasCna {
		l.logger.Warn(warnColor.Sprint(legacyConfigWarning))
		appMap, _ := asMap(appBlock)
		cnaMap, _ := asMap(cnaBlock)
		legacy = Merge(appMap, cnaMap)
	}
	// app.config.yaml wins over legacy global settings.
	user := Merge(legacy, local)

	pkg, err := LoadPackageJSON(l.fs, l.abs(PackageJSONFile))
	if err != nil {
		return nil, err
	}
	app := AppInfo{
		Name:    moduleName(pkg),
		Version: stringValue(pkg, "version"),
	}
	if app.Name == "" {
		app.Name = DefaultAppName
	}
	if app.Version == "" {
		app.Version = DefaultAppVersion
	}
	if _, err := semver.StrictNewVersion(app.Version); err != nil {
		l.logger.Warn("package.json version is not valid semver",
			zap.String("version", app.Version), zap.Error(err))
	}

	ow, err := decodeRuntime(global["runtime"])
	if err != nil {
		return nil, err
	}
	ow.DefaultAPIHost = DefaultOwAPIHost
	if ow.APIHost == "" {
		ow.APIHost = DefaultOwAPIHost
	}
	if ow.APIVersion == "" {
		ow.APIVersion = DefaultOwAPIVersion
	}
	// Always derived; a user-supplied package is ignored.
	ow.Package = app.Name + "-" + app.Version

	dist := stringValue(user, keyDist)
	if dist == "" {
		dist = DefaultDistDir
	}

	imsOrgID := ""
	if v, ok := Lookup(global, ImsOrgIDKey); ok {
		imsOrgID = cast.ToString(v)
	}

	return &TopConfig{
		App:             app,
		OW:              ow,
		ExtensionPoints: decodeExtensionPoints(user[keyExtensionPoints]),
		Dist:            filepath.Clean(dist),
		Hooks:           stringMap(user[keyHooks]),
		ImsOrgID:        imsOrgID,
		PackageJSON:     pkg,
		User:            user,
		AIOConfig:       global,
	}, nil
}

// moduleName turns "@company/myapp" into "myapp". Runtime entity names may
// not contain '@' or '/'.
func moduleName(pkg RawConfig) string {
	name := stringValue(pkg, "name")
	if name == "" {
		return ""
	}
	return name[strings.LastIndex(name, "/")+1:]
}

func decodeRuntime(v interface{}) (*RuntimeConfig, error) {
	ow := &RuntimeConfig{}
	if v == nil {
		return ow, nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil, fmt.Errorf("runtime config must be a mapping, got %T", v)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           ow,
	})
	if err != nil {
		return nil, fmt.Errorf("creating runtime decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decoding runtime config: %w", err)
	}
	return ow, nil
}

// decodeExtensionPoints keeps entries it cannot decode, with the decode
// error attached, so resolution fails naming the offending extension.
func decodeExtensionPoints(v interface{}) map[string]ExtensionPoint {
	out := map[string]ExtensionPoint{}
	m, ok := asMap(v)
	if !ok {
		return out
	}
	for name, decl := range m {
		var ep ExtensionPoint
		if dm, ok := asMap(decl); ok {
			if err := mapstructure.WeakDecode(dm, &ep); err != nil {
				ep = ExtensionPoint{err: fmt.Errorf("decoding extension point declaration: %w", err)}
			}
		} else if decl != nil {
			ep.err = fmt.Errorf("extension point declaration must be a mapping, got %T", decl)
		}
		out[name] = ep
	}
	return out
}

func stringMap(v interface{}) map[string]string {
	m, ok := asMap(v)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = cast.ToString(v)
	}
	return out
}
