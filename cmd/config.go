package cmd

import (
	"fmt"
	"strings"

	"github.com/MatrixWeber/git-scripts/internal/config"
	"github.com/spf13/cobra"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage gpush configuration",
		Long:  `Show or change the remote, tracker reference prefix, submodule marker and logging settings.`,
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Fprintf(outWriter(), "# %s\n%s", config.ConfigFilePath(), out)
			return nil
		},
	}

	configSetCmd = &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Long:      "Set a configuration value. Valid keys: " + strings.Join(config.Keys(), ", "),
		Args:      usageArgs(cobra.ExactArgs(2)),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			key, value := args[0], args[1]
			if err := config.SetValue(key, value); err != nil {
				return err
			}
			fmt.Fprintf(errWriter(), "Set %s to %q in %s\n", key, value, config.ConfigFilePath())
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
