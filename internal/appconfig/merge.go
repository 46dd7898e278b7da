package appconfig

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Merge returns a shallow merge of layers. Keys of later layers replace
// keys of earlier ones; nested maps are not merged. Nil layers are skipped
// and the inputs are never modified.
//
// Call sites state their own precedence:
//
//	Merge(legacy, local)         app.config.yaml wins over legacy global settings
//	Merge(extRaw, top.User)      top-level wins for shared settings
//	Merge(top.Hooks, ext.hooks)  extension wins for hooks
func Merge(layers ...RawConfig) RawConfig {
	out := RawConfig{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// Lookup walks a dotted key path through nested maps.
func Lookup(raw RawConfig, key string) (interface{}, bool) {
	var cur interface{} = raw
	for _, part := range strings.Split(key, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// normalizeExtensionName strips leading and trailing path separators.
func normalizeExtensionName(name string) string {
	return strings.Trim(name, "/")
}

// asMap accepts the map shapes produced by the YAML and JSON decoders.
func asMap(v interface{}) (RawConfig, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(RawConfig, len(m))
		for k, v := range m {
			if s, ok := k.(string); ok {
				out[s] = v
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// stringValue returns raw[key] when it is a non-empty scalar.
func stringValue(raw RawConfig, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case int, int64, float64, bool:
		return cast.ToString(s)
	default:
		return ""
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
