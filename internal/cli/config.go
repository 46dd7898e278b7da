package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/appbuilder-labs/aio-app/internal/render"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var (
	configLocal bool
	configJSON  bool
)

func init() {
	configSetCmd.Flags().BoolVarP(&configLocal, "local", "l", false, "Write to the project .aio file instead of the user config")
	configListCmd.Flags().BoolVar(&configJSON, "json", false, "Print the merged configuration as JSON")
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI settings",
	Long: `Read and write CLI configuration. Values merge, lowest first, from the user
config file, the project .aio file, AIO_* entries in .env and AIO_*
environment variables.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		if err := store.Set(key, value, configLocal); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		path := store.GlobalPath()
		if configLocal {
			path = store.LocalPath()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, maskValue(key, value), path)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		switch v := store.Get(args[0]); v.(type) {
		case nil:
			return nil
		case map[string]interface{}, []interface{}:
			return render.JSON(cmd.OutOrStdout(), v)
		}
		fmt.Fprintln(cmd.OutOrStdout(), store.GetString(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		flat := flatten("", store.All())
		for k, v := range flat {
			flat[k] = maskValue(k, v)
		}
		if configJSON {
			return render.JSON(cmd.OutOrStdout(), flat)
		}
		render.KeyValues(cmd.OutOrStdout(), slices.Sorted(maps.Keys(flat)), flat)
		return nil
	},
}

// flatten turns a nested settings tree into dotted keys. Values cast cannot
// stringify, such as lists, are printed with fmt.
func flatten(prefix string, m map[string]interface{}) map[string]string {
	out := map[string]string{}
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			maps.Copy(out, flatten(key, sub))
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			s = fmt.Sprint(v)
		}
		out[key] = s
	}
	return out
}

// maskValue hides values of credential-like keys, keeping a short prefix.
func maskValue(key, value string) string {
	if !render.SensitiveKey(key) {
		return value
	}
	if len(value) <= 4 {
		return "***"
	}
	return value[:4] + "***"
}
