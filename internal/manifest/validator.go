package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/runtime-manifest.schema.json
var schemaBytes []byte

const schemaURL = "runtime-manifest.schema.json"

var printer = message.NewPrinter(language.English)

// loadSchema compiles the embedded schema on first use.
var loadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return s, nil
})

// entityKinds maps the collections of a package to the singular name used
// when reporting an issue inside one of their entries.
var entityKinds = map[string]string{
	"actions":   "action",
	"sequences": "sequence",
	"triggers":  "trigger",
	"rules":     "rule",
	"apis":      "api",
}

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ByPackage groups the issues by package name. Issues outside any package
// are keyed by the empty string.
func (r *ValidationResult) ByPackage() map[string][]ValidationIssue {
	out := make(map[string][]ValidationIssue)
	for _, issue := range r.Issues {
		out[issue.Package] = append(out[issue.Package], issue)
	}
	return out
}

// ValidationIssue is one schema violation, located within the manifest.
type ValidationIssue struct {
	Path    string // JSON pointer, e.g. "/packages/demo/actions/generic/web"
	Package string
	Kind    string // action, sequence, trigger, rule or api
	Name    string // entity name within Kind
	Field   string // dotted remainder below the entity or package
	Keyword string
	Message string
}

// String renders the issue as "package demo, action generic, web: message".
func (i ValidationIssue) String() string {
	var loc []string
	if i.Package != "" {
		loc = append(loc, "package "+i.Package)
	}
	if i.Kind != "" {
		loc = append(loc, i.Kind+" "+i.Name)
	}
	if i.Field != "" {
		loc = append(loc, i.Field)
	}
	if len(loc) == 0 {
		return i.Message
	}
	return strings.Join(loc, ", ") + ": " + i.Message
}

// locate fills the package, entity and field of an issue from the
// instance location of the failing value.
func (i *ValidationIssue) locate(segments []string) {
	if len(segments) > 0 {
		i.Path = "/" + strings.Join(segments, "/")
	}
	rest := segments
	if len(rest) >= 2 && rest[0] == "packages" {
		i.Package = rest[1]
		rest = rest[2:]
		if len(rest) >= 2 && entityKinds[rest[0]] != "" {
			i.Kind = entityKinds[rest[0]]
			i.Name = rest[1]
			rest = rest[2:]
		}
	}
	i.Field = strings.Join(rest, ".")
}

// ValidateFile reads a manifest file and validates it against the schema.
func ValidateFile(path string) (*ValidationResult, error) {
	m, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return ValidateValue(m)
}

// ValidateValue validates an already decoded manifest tree, such as one
// embedded in an extension config. The error return is for conversion or
// schema compilation failures; schema violations are reported in the
// ValidationResult.
func ValidateValue(raw interface{}) (*ValidationResult, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	// The validator wants json.Number values, so go through JSON.
	data, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	return &ValidationResult{Issues: issuesFrom(ve)}, nil
}

// issuesFrom flattens the leaves of a validation error tree into issues,
// sorted by path. Combinator keywords only group their causes and are
// skipped.
func issuesFrom(root *jsonschema.ValidationError) []ValidationIssue {
	seen := make(map[ValidationIssue]bool)
	var issues []ValidationIssue

	pending := []*jsonschema.ValidationError{root}
	for len(pending) > 0 {
		ve := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if len(ve.Causes) > 0 {
			pending = append(pending, ve.Causes...)
			continue
		}
		if ve.ErrorKind == nil {
			continue
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) == 0 {
			continue
		}
		switch keyword := kw[len(kw)-1]; keyword {
		case "oneOf", "anyOf", "allOf", "$ref":
			continue
		default:
			issue := ValidationIssue{Keyword: keyword, Message: ve.ErrorKind.LocalizedString(printer)}
			issue.locate(ve.InstanceLocation)
			if !seen[issue] {
				seen[issue] = true
				issues = append(issues, issue)
			}
		}
	}

	if len(issues) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}
	sort.SliceStable(issues, func(a, b int) bool { return issues[a].Path < issues[b].Path })
	return issues
}

// normalizeYAML converts decoded trees to JSON-compatible types. Decoders
// other than yaml.v3 may hand us map[interface{}]interface{}, which
// encoding/json refuses.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case Manifest:
		return normalizeYAML(map[string]interface{}(val))
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}
