package render

import (
	"maps"
	"strings"

	"github.com/appbuilder-labs/aio-app/internal/appconfig"
)

const mask = "<hidden>"

var sensitiveSuffixes = []string{"auth", "secret", "password", "token", "secretaccesskey"}

// SensitiveKey reports whether a dotted config key names a credential,
// judged by its last segment.
func SensitiveKey(key string) bool {
	last := strings.ToLower(key[strings.LastIndex(key, ".")+1:])
	for _, s := range sensitiveSuffixes {
		if strings.HasSuffix(last, s) {
			return true
		}
	}
	return false
}

// Redact returns a copy of cfg with runtime auth and storage secrets masked,
// both in the resolved extensions and in the raw CLI config they came from.
// Extension configs share one runtime block, so it is copied once and the
// copies keep sharing it.
func Redact(cfg *appconfig.Config) *appconfig.Config {
	if cfg == nil {
		return nil
	}
	out := *cfg
	out.AIOConfig = redactTree(cfg.AIOConfig)
	out.ExtensionPointsConfig = make(map[string]*appconfig.ExtensionConfig, len(cfg.ExtensionPointsConfig))

	owCopies := map[*appconfig.RuntimeConfig]*appconfig.RuntimeConfig{}
	for name, ext := range cfg.ExtensionPointsConfig {
		e := *ext
		if e.OW != nil {
			ow, ok := owCopies[ext.OW]
			if !ok {
				c := *ext.OW
				if c.Auth != "" {
					c.Auth = mask
				}
				ow = &c
				owCopies[ext.OW] = ow
			}
			e.OW = ow
		}
		if ext.S3.Creds != nil {
			creds := *ext.S3.Creds
			creds.SecretAccessKey = mask
			e.S3.Creds = &creds
		}
		e.Hooks = maps.Clone(ext.Hooks)
		out.ExtensionPointsConfig[name] = &e
	}
	return &out
}

// redactTree deep-copies a raw config tree, masking every non-nested value
// under a sensitive key.
func redactTree(raw appconfig.RawConfig) appconfig.RawConfig {
	if raw == nil {
		return nil
	}
	out := make(appconfig.RawConfig, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case map[string]interface{}:
			out[k] = redactTree(val)
		default:
			if SensitiveKey(k) && v != nil && v != "" {
				out[k] = mask
			} else {
				out[k] = v
			}
		}
	}
	return out
}
