package consoleimport

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/console.schema.json
var schemaBytes []byte

var printer = message.NewPrinter(language.English)

// InvalidExportError lists the schema violations of a console export.
type InvalidExportError struct {
	Path   string
	Issues []string
}

func (e *InvalidExportError) Error() string {
	return fmt.Sprintf("invalid console configuration %s:\n  %s", e.Path, strings.Join(e.Issues, "\n  "))
}

// exportSchema compiles the embedded schema on first use.
var exportSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("console.schema.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	return c.Compile("console.schema.json")
})

// validate checks raw export JSON. Schema violations come back as an
// *InvalidExportError.
func validate(path string, data []byte) error {
	schema, err := exportSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing console configuration %s: %w", path, err)
	}
	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validating console configuration %s: %w", path, err)
	}

	var issues []string
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = []string{ve.Error()}
	}
	return &InvalidExportError{Path: path, Issues: issues}
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}
	msg := ve.ErrorKind.LocalizedString(printer)
	if len(ve.InstanceLocation) > 0 {
		msg = "/" + strings.Join(ve.InstanceLocation, "/") + ": " + msg
	}
	*issues = append(*issues, msg)
}
