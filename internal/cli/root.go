package cli

import (
	"fmt"
	"os"

	"github.com/appbuilder-labs/aio-app/internal/branding"
	"github.com/appbuilder-labs/aio-app/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose    bool
	jsonLogs   bool
	projectDir string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves and manages the configuration of App Builder projects:
app.config.yaml, extension configs, runtime manifests, and the CLI settings
kept in .aio, .env and the user config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(cmd.ErrOrStderr(), logging.Options{Verbose: verbose, JSON: jsonLogs})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&projectDir, "root", ".", "Project root directory")
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed once to stderr.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
	}
	return err
}
