package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pasteclean/internal/logger"
	"github.com/jmylchreest/pasteclean/internal/output"
	"github.com/jmylchreest/pasteclean/pkg/pasteclean"
	"github.com/jmylchreest/pasteclean/pkg/source"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Clean pasted content and write the result",
	Long: `Read a paste from a file, stdin or the clipboard, normalize it and write
the result to stdout, a file or back to the clipboard.

Plain text, already-clean markup and syntax-highlighted code copied from an
editor pass through unchanged (code as plain text). If cleaning fails the
plain-text flavor is written instead and a notice is printed.

Examples:
  # Clean a Word export
  pasteclean clean report.html

  # Clean the clipboard and put the result back
  pasteclean clean --clipboard --to-clipboard

  # Markdown output with a stats report
  pasteclean clean report.html --format markdown --stats

  # Keep raw and cleaned copies of vendor pastes for debugging
  pasteclean clean --clipboard --diagnostics`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("format", "f", "", "output format: html, markdown, text")
	flags.Bool("to-clipboard", false, "write the result to the clipboard")
	flags.String("mode", "", "paste mode: enabled, disabled (disabled writes plain text)")

	// Reporting
	flags.Bool("stats", false, "print a report of what the cleaner did to stderr")
	flags.String("stats-format", "text", "report format: text, json, yaml")

	// Diagnostics
	flags.Bool("diagnostics", false, "write raw and cleaned content of vendor pastes to the diagnostics dir")
	flags.String("diagnostics-dir", "", "diagnostics directory (default: $TMPDIR/pasteclean)")

	// Bind to viper
	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("diagnostics.enabled", flags.Lookup("diagnostics"))
	_ = viper.BindPFlag("diagnostics.dir", flags.Lookup("diagnostics-dir"))
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, err := openSource(cmd, args)
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}

	mode, err := pasteclean.ParseMode(viper.GetString("mode"))
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}
	cleanerCfg, err := cleanerConfig(viper.GetViper())
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}

	opts := []pasteclean.Option{
		pasteclean.WithMode(mode),
		pasteclean.WithCleanerConfig(cleanerCfg),
		pasteclean.WithFormat(viper.GetString("format")),
	}
	if rec := diagnosticsRecorder(viper.GetViper()); rec != nil {
		logger.Debug("diagnostics enabled", "dir", rec.Dir())
		opts = append(opts, pasteclean.WithDiagnostics(rec))
	}

	paster, err := pasteclean.New(src, opts...)
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}

	result, err := paster.Paste(ctx)
	if errors.Is(err, source.ErrUnavailable) {
		logInfo(cmd, "Nothing to paste: %s is empty", src.Name())
		return nil
	}
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}

	if result.Fallback {
		logInfo(cmd, "Cleaning failed, wrote plain text instead: %v", result.Err)
	}
	if result.DumpPath != "" {
		logInfo(cmd, "Diagnostics written to %s", result.DumpPath)
	}
	for _, w := range result.Warnings {
		logger.Warn("paste warning", "phase", w.Phase, "message", w.Message, "context", w.Context)
	}

	if err := writeResult(cmd, result.Content); err != nil {
		logError(cmd, "%v", err)
		return err
	}

	if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
		statsFormat, _ := cmd.Flags().GetString("stats-format")
		if err := writeReport(cmd, result, statsFormat); err != nil {
			logError(cmd, "writing stats: %v", err)
			return err
		}
	}
	return nil
}

func writeResult(cmd *cobra.Command, content string) error {
	outputFile, _ := cmd.Flags().GetString("output")
	toClipboard, _ := cmd.Flags().GetBool("to-clipboard")

	if toClipboard {
		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("writing clipboard: %w", err)
		}
		logInfo(cmd, "Copied %s to clipboard", humanize.Bytes(uint64(len(content))))
	}

	switch {
	case outputFile != "":
		if err := os.WriteFile(outputFile, []byte(ensureNewline(content)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputFile, err)
		}
		logInfo(cmd, "Written to %s", outputFile)
	case !toClipboard:
		if _, err := fmt.Fprint(cmd.OutOrStdout(), ensureNewline(content)); err != nil {
			return err
		}
	}
	return nil
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func writeReport(cmd *cobra.Command, result *pasteclean.Result, format string) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	w, err := output.NewWriter(cmd.ErrOrStderr(), f)
	if err != nil {
		return err
	}

	if f == output.FormatText {
		err = w.Write(newPasteReport(result))
	} else {
		err = w.Write(result)
	}
	if err != nil {
		return err
	}
	return w.Close()
}
