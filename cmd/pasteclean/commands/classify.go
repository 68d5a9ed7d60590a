package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pasteclean/internal/output"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
	"github.com/jmylchreest/pasteclean/pkg/source"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Show how pasted content would be routed",
	Long: `Classify content without cleaning it: whether it is markup, already clean,
a vendor export or an editor code export, which route the cleaner would take,
and which markers decided it.

Examples:
  pasteclean classify export.html
  pasteclean classify --clipboard --report-format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().String("report-format", "text", "report format: text, json, yaml")
}

// classification is the classify command's report.
type classification struct {
	Source         string               `json:"source" yaml:"source"`
	Bytes          int                  `json:"bytes" yaml:"bytes"`
	HasHTML        bool                 `json:"has_html" yaml:"has_html"`
	Classification paste.Classification `json:"classification" yaml:"classification"`
	Route          paste.Route          `json:"route" yaml:"route"`
	VendorMarkup   bool                 `json:"vendor_markup" yaml:"vendor_markup"`
	CodeExport     bool                 `json:"code_export" yaml:"code_export"`
	Anchors        int                  `json:"anchors" yaml:"anchors"`
	Markers        []string             `json:"markers,omitempty" yaml:"markers,omitempty"`
}

func (c classification) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source:         %s (%s, html=%v)\n", c.Source, humanize.Bytes(uint64(c.Bytes)), c.HasHTML)
	fmt.Fprintf(&sb, "Classification: %s\n", c.Classification)
	fmt.Fprintf(&sb, "Route:          %s\n", c.Route)
	fmt.Fprintf(&sb, "Vendor markup:  %v\n", c.VendorMarkup)
	fmt.Fprintf(&sb, "Code export:    %v\n", c.CodeExport)
	fmt.Fprintf(&sb, "Links:          %d\n", c.Anchors)
	if len(c.Markers) > 0 {
		fmt.Fprintf(&sb, "Markers:        %s\n", strings.Join(c.Markers, " "))
	}
	return sb.String()
}

func classifyContent(name string, content source.Content, c *paste.Cleaner) classification {
	doc := content.HTML
	if !content.HasHTML() {
		doc = content.Text
	}
	return classification{
		Source:         name,
		Bytes:          len(doc),
		HasHTML:        content.HasHTML(),
		Classification: paste.Classify(doc),
		Route:          c.Route(doc),
		VendorMarkup:   paste.NeedsVendorCleanup(doc),
		CodeExport:     paste.IsEditorCodeExport(doc),
		Anchors:        paste.CountAnchors(doc),
		Markers:        paste.MatchedMarkers(doc),
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	src, err := openSource(cmd, args)
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}
	cleanerCfg, err := cleanerConfig(viper.GetViper())
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}

	content, err := src.Read(context.Background())
	if errors.Is(err, source.ErrUnavailable) {
		logInfo(cmd, "Nothing to classify: %s is empty", src.Name())
		return nil
	}
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}

	reportFormat, _ := cmd.Flags().GetString("report-format")
	f, err := output.ParseFormat(reportFormat)
	if err != nil {
		logError(cmd, "%v", err)
		return err
	}
	w, err := output.NewWriter(cmd.OutOrStdout(), f)
	if err != nil {
		return err
	}
	if err := w.Write(classifyContent(src.Name(), content, paste.New(cleanerCfg))); err != nil {
		return err
	}
	return w.Close()
}
