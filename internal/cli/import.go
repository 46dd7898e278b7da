package cli

import (
	"fmt"
	"strings"

	"github.com/appbuilder-labs/aio-app/internal/consoleimport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importOverwrite bool

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace .aio and .env instead of merging into them")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <console-config.json>",
	Short: "Import a Developer Console project configuration",
	Long: `Write the project, org and workspace of a Developer Console export into the
project .aio file, and its runtime namespace credentials into .env as
AIO_RUNTIME_NAMESPACE and AIO_RUNTIME_AUTH.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := consoleimport.Import(args[0], projectDir, consoleimport.Options{Overwrite: importOverwrite})
		if err != nil {
			return err
		}
		logger.Debug("console configuration imported",
			zap.String("config", res.ConfigPath),
			zap.String("env", res.EnvPath))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported project %q (workspace %s)\n", res.ProjectName, res.WorkspaceName)
		if res.Namespace != "" {
			fmt.Fprintf(out, "  runtime namespace: %s\n", res.Namespace)
		}
		if len(res.Services) > 0 {
			fmt.Fprintf(out, "  services: %s\n", strings.Join(res.Services, ", "))
		}
		return nil
	},
}
