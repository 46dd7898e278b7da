package manifest

import "github.com/spf13/cast"

// PackagePlaceholder is the package name the generator substitutes with
// the app's "<name>-<version>" package identifier.
const PackagePlaceholder = "__APP_PACKAGE__"

// Manifest is a runtime manifest as loaded. The tree is kept verbatim so
// the deployer sees every key, including ones this package does not model.
type Manifest map[string]interface{}

// Packages returns the package definitions keyed by package name.
func (m Manifest) Packages() map[string]map[string]interface{} {
	raw := cast.ToStringMap(m["packages"])
	out := make(map[string]map[string]interface{}, len(raw))
	for name, def := range raw {
		out[name] = cast.ToStringMap(def)
	}
	return out
}

// PlaceholderPackage returns the package declared under PackagePlaceholder,
// or nil. A placeholder declared with an empty body yields an empty map.
func (m Manifest) PlaceholderPackage() map[string]interface{} {
	def, ok := cast.ToStringMap(m["packages"])[PackagePlaceholder]
	if !ok {
		return nil
	}
	return cast.ToStringMap(def)
}

// ActionCount returns the number of actions across all packages.
func (m Manifest) ActionCount() int {
	n := 0
	for _, pkg := range m.Packages() {
		n += len(cast.ToStringMap(pkg["actions"]))
	}
	return n
}
