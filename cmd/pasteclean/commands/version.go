package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pasteclean/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("short", false, "print only the version number")
	rootCmd.Version = version.String()
}
