package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/appbuilder-labs/aio-app/internal/appconfig"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Service is one persisted service selection.
type Service struct {
	Name string `json:"name" mapstructure:"name"`
	Code string `json:"code" mapstructure:"code"`
	Type string `json:"type,omitempty" mapstructure:"type"`
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// Extensions writes one row per resolved extension point.
func Extensions(w io.Writer, cfg *appconfig.Config) {
	if len(cfg.ExtensionPointsConfig) == 0 {
		fmt.Fprintln(w, text.FgYellow.Sprint("No extension points configured"))
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"EXTENSION", "ACTIONS", "BACKEND", "FRONTEND", "PACKAGE", "ROOT"})
	for _, name := range cfg.ExtensionNames() {
		ext := cfg.ExtensionPointsConfig[name]
		pkg := ""
		if ext.OW != nil {
			pkg = ext.OW.Package
		}
		t.AppendRow(table.Row{
			text.FgHiCyan.Sprint(name),
			strconv.Itoa(ext.Manifest.Full.ActionCount()),
			yesNo(ext.App.HasBackend),
			yesNo(ext.App.HasFrontend),
			pkg,
			ext.Root,
		})
	}
	t.Render()
}

// Services writes a titled table of service selections.
func Services(w io.Writer, title string, services []Service) {
	if len(services) == 0 {
		fmt.Fprintf(w, "%s\n", text.FgYellow.Sprintf("No %s", title))
		return
	}

	t := newTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"NAME", "CODE", "TYPE"})
	for _, s := range services {
		t.AppendRow(table.Row{s.Name, s.Code, s.Type})
	}
	t.AppendFooter(table.Row{"Total", len(services), ""})
	t.Render()
}

// KeyValues writes a two-column table in the given key order.
func KeyValues(w io.Writer, keys []string, values map[string]string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"KEY", "VALUE"})
	for _, k := range keys {
		t.AppendRow(table.Row{text.FgHiCyan.Sprint(k), values[k]})
	}
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return text.FgGreen.Sprint("yes")
	}
	return "no"
}
