package cli

import (
	"fmt"

	"github.com/appbuilder-labs/aio-app/internal/render"
	"github.com/spf13/cobra"
)

var (
	infoJSON     bool
	infoYAML     bool
	infoTemplate string
)

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print the resolved configuration as JSON")
	infoCmd.Flags().BoolVar(&infoYAML, "yaml", false, "Print the resolved configuration as YAML")
	infoCmd.Flags().StringVar(&infoTemplate, "template", "", "Render the resolved configuration with a Go template (sprig functions available)")
	infoCmd.MarkFlagsMutuallyExclusive("json", "yaml", "template")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the resolved project configuration",
	Long: `Resolve app.config.yaml, extension configs, package.json and the CLI
configuration, then print the result. Runtime auth and storage secrets are
masked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadProject()
		if err != nil {
			return err
		}
		cfg = render.Redact(cfg)
		out := cmd.OutOrStdout()

		switch {
		case infoJSON:
			return render.JSON(out, cfg)
		case infoYAML:
			return render.YAML(out, cfg)
		case infoTemplate != "":
			if err := render.Template(out, infoTemplate, cfg); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return nil
		}

		if len(cfg.ExtensionPointsConfig) > 0 {
			first := cfg.ExtensionPointsConfig[cfg.ExtensionNames()[0]]
			fmt.Fprintf(out, "%s %s\n", first.App.Name, first.App.Version)
		}
		render.Extensions(out, cfg)
		return nil
	},
}
