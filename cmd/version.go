package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version    = "dev"
	BuildTime  = "unknown"
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show gpush version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(outWriter(), "gpush version %s (built at %s)\n", Version, BuildTime)
		},
	}
)

func init() {
	rootCmd.AddCommand(versionCmd)
}
