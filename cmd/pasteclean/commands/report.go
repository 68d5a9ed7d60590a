package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/pasteclean/pkg/pasteclean"
)

// pasteReport is the text rendering of a paste result.
type pasteReport struct {
	result *pasteclean.Result
}

func newPasteReport(r *pasteclean.Result) pasteReport {
	return pasteReport{result: r}
}

func (p pasteReport) String() string {
	r := p.result
	var sb strings.Builder

	sb.WriteString("=== Paste Report ===\n")
	fmt.Fprintf(&sb, "Source:  %s (mode %s)\n", r.Source, r.Mode)
	fmt.Fprintf(&sb, "Route:   %s (%s)\n", r.Route, r.Classification)
	fmt.Fprintf(&sb, "Output:  %s, %s\n", r.Format, humanize.Bytes(uint64(len(r.Content))))
	if r.Fallback {
		fmt.Fprintf(&sb, "Fallback: plain text (%v)\n", r.Err)
	}

	if s := r.Stats; s != nil {
		fmt.Fprintf(&sb, "Size:    %s -> %s (%.1f%% reduction)\n",
			humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.ReductionPercent())
		if s.AnchorsIn > 0 || s.AnchorsOut > 0 {
			fmt.Fprintf(&sb, "Links:   %d in, %d out\n", s.AnchorsIn, s.AnchorsOut)
		}
		if total := s.TotalElementsRemoved(); total > 0 {
			tags := make([]string, 0, len(s.ElementsRemoved))
			for tag, n := range s.ElementsRemoved {
				tags = append(tags, fmt.Sprintf("%s=%s", tag, humanize.Comma(int64(n))))
			}
			sort.Strings(tags)
			fmt.Fprintf(&sb, "Removed: %s elements (%s)\n", humanize.Comma(int64(total)), strings.Join(tags, ", "))
		}
		if s.WhitespaceNormalized > 0 {
			fmt.Fprintf(&sb, "Spaces:  %d special whitespace characters replaced\n", s.WhitespaceNormalized)
		}
		if len(s.StagesRun) > 0 {
			parts := make([]string, len(s.StagesRun))
			for i, name := range s.StagesRun {
				parts[i] = name + "=" + durationMs(s.StageDurations[name])
			}
			fmt.Fprintf(&sb, "Stages:  %s\n", strings.Join(parts, ", "))
		}
	}
	fmt.Fprintf(&sb, "Time:    %s\n", durationMs(r.Duration))

	if r.DumpPath != "" {
		fmt.Fprintf(&sb, "Dump:    %s\n", r.DumpPath)
	}
	if r.HasWarnings() {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  " + w.String() + "\n")
		}
	}
	return sb.String()
}
