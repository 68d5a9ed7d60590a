package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
	"github.com/jmylchreest/pasteclean/pkg/source"
)

var compareCmd = &cobra.Command{
	Use:   "compare [file]",
	Short: "Compare cleaner presets on the same paste",
	Long: `Run every cleaner preset over the same content and print a table of output
size, removed elements, lost links and timing.

Examples:
  pasteclean compare export.html
  pasteclean compare --clipboard --show-output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Bool("show-output", false, "print each preset's output after the table")
}

var comparePresets = []string{"default", "minimal", "vendor"}

func runCompare(cmd *cobra.Command, args []string) error {
	src, err := openSource(cmd, args)
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}

	content, err := src.Read(context.Background())
	if errors.Is(err, source.ErrUnavailable) {
		logInfo(cmd, "Nothing to compare: %s is empty", src.Name())
		return nil
	}
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}
	if !content.HasHTML() {
		logInfo(cmd, "%s has no markup; every preset returns it unchanged", src.Name())
		return nil
	}

	showOutput, _ := cmd.Flags().GetBool("show-output")
	return comparePresetResults(cmd.OutOrStdout(), src.Name(), content.HTML, showOutput)
}

func comparePresetResults(out io.Writer, name, html string, showOutput bool) error {
	results := make([]*paste.Result, len(comparePresets))
	for i, preset := range comparePresets {
		cfg, err := paste.Preset(preset)
		if err != nil {
			return err
		}
		results[i] = paste.New(cfg).CleanWithStats(html)
	}

	fmt.Fprintf(out, "\n=== Preset Comparison for %s ===\n", name)
	fmt.Fprintf(out, "Input size: %s\n\n", humanize.Bytes(uint64(len(html))))
	fmt.Fprintf(out, "%-10s %-15s %10s %8s %8s %6s %10s\n", "Preset", "Route", "Output", "Reduce%", "Removed", "Lost", "Time")
	fmt.Fprintf(out, "%-10s %-15s %10s %8s %8s %6s %10s\n", "------", "-----", "------", "-------", "-------", "----", "----")

	for i, r := range results {
		lost := r.Stats.AnchorsIn - r.Stats.AnchorsOut
		if lost < 0 {
			lost = 0
		}
		fmt.Fprintf(out, "%-10s %-15s %10s %7.1f%% %8d %6d %10v\n",
			comparePresets[i],
			r.Stats.Route,
			humanize.Bytes(uint64(r.Stats.OutputBytes)),
			r.Stats.ReductionPercent(),
			r.Stats.TotalElementsRemoved(),
			lost,
			r.Stats.TotalDuration.Round(time.Microsecond))
	}
	fmt.Fprintln(out)

	if showOutput {
		for i, r := range results {
			fmt.Fprintf(out, "--- %s ---\n%s\n\n", comparePresets[i], r.Content)
		}
	}
	return nil
}
