// Package pasteclean provides the paste operation: read rich content from a
// source, decide whether it needs cleaning, normalize it and convert it to the
// destination format, always producing something to insert.
package pasteclean

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/pasteclean/internal/diagnostics"
	"github.com/jmylchreest/pasteclean/pkg/cleaner"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

// Mode is the paste toggle. It is owned by the caller and passed in per Paster.
type Mode int

const (
	// ModeEnabled cleans rich markup before it is inserted.
	ModeEnabled Mode = iota
	// ModeDisabled inserts the source's plain text and never touches markup.
	ModeDisabled
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeDisabled {
		return "disabled"
	}
	return "enabled"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode parses "enabled" or "disabled" (also on/off, true/false).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "enabled", "on", "true":
		return ModeEnabled, nil
	case "disabled", "off", "false":
		return ModeDisabled, nil
	default:
		return ModeEnabled, fmt.Errorf("unknown mode %q (use enabled or disabled)", s)
	}
}

// Normalizer runs the paste pipeline. *paste.Cleaner is the implementation.
type Normalizer interface {
	CleanWithStats(content string) *paste.Result
}

// Config holds all Paster configuration.
type Config struct {
	Mode Mode

	// Cleaner configures the normalization pipeline. Nil means paste.DefaultConfig().
	Cleaner *paste.Config

	// Format names the output format: html, markdown or text.
	Format string

	// Normalizer replaces the pipeline built from Cleaner.
	Normalizer Normalizer

	// Converter replaces the output converter picked by Format.
	Converter cleaner.Cleaner

	// PostProcessors run in order on the converter's output.
	PostProcessors []cleaner.Cleaner

	// Diagnostics, when set, receives the raw and cleaned content of vendor pastes.
	Diagnostics *diagnostics.Recorder
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:   ModeEnabled,
		Format: cleaner.FormatHTML,
	}
}

// Option configures a Paster.
type Option func(*Config)

// WithMode sets the paste mode.
func WithMode(m Mode) Option {
	return func(c *Config) {
		c.Mode = m
	}
}

// WithCleanerConfig sets the pipeline configuration.
func WithCleanerConfig(cfg *paste.Config) Option {
	return func(c *Config) {
		c.Cleaner = cfg
	}
}

// WithFormat sets the output format.
func WithFormat(format string) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithNormalizer injects a custom pipeline.
func WithNormalizer(n Normalizer) Option {
	return func(c *Config) {
		c.Normalizer = n
	}
}

// WithConverter injects a custom output converter.
func WithConverter(conv cleaner.Cleaner) Option {
	return func(c *Config) {
		c.Converter = conv
	}
}

// WithPostProcessors appends converters that run after the output format,
// e.g. a rewriter for a site-specific markdown dialect.
func WithPostProcessors(cs ...cleaner.Cleaner) Option {
	return func(c *Config) {
		c.PostProcessors = append(c.PostProcessors, cs...)
	}
}

// WithDiagnostics enables diagnostic dumps of vendor pastes.
func WithDiagnostics(r *diagnostics.Recorder) Option {
	return func(c *Config) {
		c.Diagnostics = r
	}
}
