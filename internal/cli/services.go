package cli

import (
	"fmt"

	"github.com/appbuilder-labs/aio-app/internal/console"
	"github.com/appbuilder-labs/aio-app/internal/render"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
)

var servicesJSON bool

func init() {
	servicesCmd.Flags().BoolVar(&servicesJSON, "json", false, "Print selections as JSON")
	rootCmd.AddCommand(servicesCmd)
}

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the services recorded for the project workspace and org",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		workspace, err := decodeServices(store.Get(console.WorkspaceServicesKey))
		if err != nil {
			return fmt.Errorf("reading %s: %w", console.WorkspaceServicesKey, err)
		}
		org, err := decodeServices(store.Get(console.OrgServicesKey))
		if err != nil {
			return fmt.Errorf("reading %s: %w", console.OrgServicesKey, err)
		}

		out := cmd.OutOrStdout()
		if servicesJSON {
			return render.JSON(out, map[string][]render.Service{
				"workspace": workspace,
				"org":       org,
			})
		}
		render.Services(out, "workspace services", workspace)
		render.Services(out, "org services", org)
		return nil
	},
}

// decodeServices turns a persisted [{name, code[, type]}] list into
// services. A missing key is an empty list.
func decodeServices(raw interface{}) ([]render.Service, error) {
	out := []render.Service{}
	if raw == nil {
		return out, nil
	}
	if err := mapstructure.WeakDecode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
