package pasteclean

import (
	"context"
	"fmt"
	"time"

	"github.com/jmylchreest/pasteclean/internal/diagnostics"
	"github.com/jmylchreest/pasteclean/internal/logger"
	"github.com/jmylchreest/pasteclean/pkg/cleaner"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
	"github.com/jmylchreest/pasteclean/pkg/source"
)

// Phase names for warnings raised outside the pipeline.
const (
	PhaseOutput      = "output"
	PhaseDiagnostics = "diagnostics"
)

// Result is what a paste produced.
type Result struct {
	// Content is what gets inserted. It is never empty when the source had content.
	Content string `json:"content" yaml:"content"`

	Source         string               `json:"source" yaml:"source"`
	Mode           Mode                 `json:"mode" yaml:"mode"`
	Format         string               `json:"format" yaml:"format"`
	Classification paste.Classification `json:"classification" yaml:"classification"`
	Route          paste.Route          `json:"route" yaml:"route"`

	// Markup is false when Content is plain text: no rich flavor, disabled
	// mode, a code export or a fallback.
	Markup bool `json:"markup" yaml:"markup"`

	// Fallback is set when the pipeline failed and plain text was inserted instead.
	Fallback bool `json:"fallback" yaml:"fallback"`

	Stats    *paste.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings []paste.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// DumpPath is the diagnostics directory written for this paste, if any.
	DumpPath string `json:"dump_path,omitempty" yaml:"dump_path,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`

	// Err is the pipeline failure behind a fallback, for a visible notice.
	Err error `json:"-" yaml:"-"`
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *Result) addWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, paste.Warning{Phase: phase, Message: message, Context: context})
}

// Paster performs pastes from one source.
type Paster struct {
	source     source.Source
	normalizer Normalizer
	converter  cleaner.Cleaner
	config     Config
}

// New creates a Paster reading from src.
func New(src source.Source, opts ...Option) (*Paster, error) {
	if src == nil {
		return nil, fmt.Errorf("source is required")
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	norm := cfg.Normalizer
	if norm == nil {
		if cfg.Cleaner != nil {
			if err := cfg.Cleaner.Validate(); err != nil {
				return nil, err
			}
		}
		norm = paste.New(cfg.Cleaner)
	}

	conv := cfg.Converter
	if conv == nil {
		var err error
		conv, err = cleaner.ForFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
	}
	if len(cfg.PostProcessors) > 0 {
		conv = cleaner.NewChain(append([]cleaner.Cleaner{conv}, cfg.PostProcessors...)...)
	}

	return &Paster{
		source:     src,
		normalizer: norm,
		converter:  conv,
		config:     cfg,
	}, nil
}

// Source returns the paster's source.
func (p *Paster) Source() source.Source {
	return p.source
}

// Paste reads the source and returns the content to insert.
// It fails only when the source cannot be read; errors.Is(err,
// source.ErrUnavailable) means there was nothing to paste. Pipeline failures
// fall back to plain text and are reported in Result.Err.
func (p *Paster) Paste(ctx context.Context) (*Result, error) {
	start := time.Now()

	content, err := p.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.source.Name(), err)
	}
	if content.Empty() {
		return nil, fmt.Errorf("%s: %w", p.source.Name(), source.ErrUnavailable)
	}

	result := &Result{
		Source: p.source.Name(),
		Mode:   p.config.Mode,
		Format: p.converter.Name(),
		Route:  paste.RouteVerbatim,
	}
	defer func() { result.Duration = time.Since(start) }()

	switch {
	case p.config.Mode == ModeDisabled:
		logger.Debug("paste mode disabled, inserting plain text", "source", result.Source)
		result.Content = plainText(content)
		return result, nil

	case !content.HasHTML():
		logger.Debug("no rich content, inserting plain text", "source", result.Source)
		result.Classification = paste.NotMarkup
		result.Content = content.Text
		return result, nil
	}

	raw := content.HTML
	cleaned := p.normalizer.CleanWithStats(raw)
	result.Stats = cleaned.Stats
	result.Classification = cleaned.Stats.Classification
	result.Route = cleaned.Stats.Route
	result.Warnings = append(result.Warnings, cleaned.Warnings...)

	if cleaned.Error != nil {
		logger.Warn("paste cleaning failed, falling back to plain text", "error", cleaned.Error)
		result.Fallback = true
		result.Err = cleaned.Error
		result.Content = plainText(content)
		return result, nil
	}

	switch result.Route {
	case paste.RoutePlainText:
		logger.Debug("editor code export, inserting plain text")
		result.Content = plainText(content)
		return result, nil
	case paste.RouteVerbatim:
		result.Markup = paste.IsMarkup(cleaned.Content)
		result.Content = cleaned.Content
	default:
		result.Markup = true
		result.Content = cleaned.Content
	}

	if result.Markup {
		p.convert(result)
	}

	if result.Route == paste.RouteVendorCleanup && p.config.Diagnostics != nil {
		p.record(result, raw, cleaned.Content)
	}

	logger.Debug("paste complete",
		"route", result.Route.String(),
		"bytes_in", len(raw),
		"bytes_out", len(result.Content),
		"warnings", len(result.Warnings))
	return result, nil
}

// convert applies the output converter. A converter failure keeps the
// normalized markup and records a warning.
func (p *Paster) convert(result *Result) {
	out, err := p.converter.Clean(result.Content)
	if err != nil {
		logger.Warn("output conversion failed, inserting html", "converter", p.converter.Name(), "error", err)
		result.addWarning(PhaseOutput, "output conversion failed, inserting html", err.Error())
		return
	}
	result.Content = out
}

type dumpReport struct {
	Source   string          `yaml:"source"`
	Route    paste.Route     `yaml:"route"`
	Stats    *paste.Stats    `yaml:"stats"`
	Warnings []paste.Warning `yaml:"warnings,omitempty"`
}

func (p *Paster) record(result *Result, raw, cleaned string) {
	path, err := p.config.Diagnostics.Record(diagnostics.Dump{
		Raw:     raw,
		Cleaned: cleaned,
		Report: dumpReport{
			Source:   result.Source,
			Route:    result.Route,
			Stats:    result.Stats,
			Warnings: result.Warnings,
		},
	})
	if err != nil {
		logger.Warn("writing diagnostics failed", "dir", p.config.Diagnostics.Dir(), "error", err)
		result.addWarning(PhaseDiagnostics, "writing diagnostics failed", err.Error())
	}
	result.DumpPath = path
	if path != "" {
		logger.Debug("paste diagnostics written", "path", path)
	}
}

// plainText returns the source's plain flavor, deriving it from the markup
// when the source offered none.
func plainText(c source.Content) string {
	if c.Text != "" {
		return c.Text
	}
	return cleaner.PlainText(c.HTML)
}

// CleanString runs a single paste of html, with text as its plain flavor.
func CleanString(ctx context.Context, html, text string, opts ...Option) (*Result, error) {
	p, err := New(source.NewStatic(html, text), opts...)
	if err != nil {
		return nil, err
	}
	return p.Paste(ctx)
}
