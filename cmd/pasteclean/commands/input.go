package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/jmylchreest/pasteclean/pkg/source"
)

func init() {
	flags := rootCmd.PersistentFlags()

	// Input
	flags.Bool("clipboard", false, "read from the system clipboard instead of a file or stdin")
	flags.StringSlice("html-command", nil, "command printing the clipboard's text/html flavor (e.g. wl-paste,-t,text/html)")
	flags.Bool("plain-only", false, "read only the clipboard's plain text")
	flags.String("max-size", "", "refuse input larger than this (e.g. 10MB, 0=unlimited)")

	// Pipeline
	flags.String("preset", "", "cleaner preset: default, minimal, vendor")
	flags.String("vendor", "", "vendor markup stripping: auto, always, never")

	_ = viper.BindPFlag("clipboard.html_command", flags.Lookup("html-command"))
	_ = viper.BindPFlag("clipboard.plain_only", flags.Lookup("plain-only"))
	_ = viper.BindPFlag("max_size", flags.Lookup("max-size"))
	_ = viper.BindPFlag("preset", flags.Lookup("preset"))
	_ = viper.BindPFlag("cleaner.vendor_cleanup", flags.Lookup("vendor"))
}

// openSource picks the paste source: the clipboard, a file argument, or stdin.
func openSource(cmd *cobra.Command, args []string) (source.Source, error) {
	limit, err := maxSize(viper.GetViper())
	if err != nil {
		return nil, err
	}

	useClipboard, _ := cmd.Flags().GetBool("clipboard")

	var src source.Source
	switch {
	case useClipboard && len(args) > 0:
		return nil, fmt.Errorf("--clipboard and a file argument are mutually exclusive")
	case useClipboard:
		src = source.NewClipboard(clipboardConfig(viper.GetViper()))
	case len(args) > 0 && args[0] != "-":
		src = source.NewFile(args[0])
	default:
		if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			logInfo(cmd, "Reading from stdin (Ctrl-D to finish)...")
		}
		src = source.NewReader(cmd.InOrStdin())
	}

	if limit > 0 {
		src = &sizeLimited{Source: src, max: limit}
	}
	return src, nil
}

// sizeLimited rejects content above max bytes.
type sizeLimited struct {
	source.Source
	max uint64
}

func (s *sizeLimited) Read(ctx context.Context) (source.Content, error) {
	c, err := s.Source.Read(ctx)
	if err != nil {
		return c, err
	}
	if size := uint64(len(c.HTML) + len(c.Text)); size > s.max {
		return source.Content{}, fmt.Errorf("input is %s, above the %s limit",
			humanize.Bytes(size), humanize.Bytes(s.max))
	}
	return c, nil
}
