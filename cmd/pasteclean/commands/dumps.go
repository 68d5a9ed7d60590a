package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pasteclean/internal/diagnostics"
)

var dumpsCmd = &cobra.Command{
	Use:   "dumps",
	Short: "List or prune diagnostics dumps",
	Long: `List the diagnostics directories written by "clean --diagnostics", oldest
first. Each holds raw.html, cleaned.html and report.yaml for one vendor paste.

Examples:
  pasteclean dumps
  pasteclean dumps --prune --keep 5`,
	Args: cobra.NoArgs,
	RunE: runDumps,
}

func init() {
	rootCmd.AddCommand(dumpsCmd)
	dumpsCmd.Flags().Bool("prune", false, "remove dumps beyond the retention limit")
	dumpsCmd.Flags().Int("keep", 0, "retention limit for --prune (default: diagnostics.keep)")
}

func runDumps(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("diagnostics.dir")
	if dir == "" {
		dir = diagnostics.DefaultDir()
	}
	keep := viper.GetInt("diagnostics.keep")
	if cmd.Flags().Changed("keep") {
		keep, _ = cmd.Flags().GetInt("keep")
	}
	rec := diagnostics.NewOS(dir, keep)

	if prune, _ := cmd.Flags().GetBool("prune"); prune {
		n, err := rec.Prune()
		if err != nil {
			logError(cmd, "%v", err)
			return err
		}
		logInfo(cmd, "Removed %d dump(s) from %s", n, rec.Dir())
	}

	dumps, err := rec.List()
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}
	if len(dumps) == 0 {
		logInfo(cmd, "No dumps in %s", rec.Dir())
		return nil
	}
	for _, path := range dumps {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
