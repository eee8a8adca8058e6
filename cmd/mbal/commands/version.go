package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.3.0"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print mbal version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mbal %s\n", Version)
		if GitCommit != "none" {
			fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", GitCommit)
		}
		if BuildDate != "unknown" {
			fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", BuildDate)
		}
	},
}

func init() {
	AddCommand(versionCmd)
}
