// Package paste normalizes rich markup pasted from word processors and office
// suites into a small semantic HTML vocabulary: headings, paragraphs, lists,
// basic emphasis and links. It classifies content first and only rewrites what
// needs rewriting, so already-clean markup and plain text pass through untouched.
package paste

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// VendorMode controls when the vendor stripping stage runs.
type VendorMode string

const (
	// VendorAuto runs vendor stripping only when NeedsVendorCleanup detects vendor markup.
	VendorAuto VendorMode = "auto"
	// VendorAlways strips vendor markup from every input that needs cleaning.
	VendorAlways VendorMode = "always"
	// VendorNever skips vendor stripping entirely.
	VendorNever VendorMode = "never"
)

// DefaultVendorStyleThreshold is the number of inline style= or class= attributes
// above which a full HTML document is treated as a vendor export.
const DefaultVendorStyleThreshold = 5

// Config defines all configuration options for the paste cleaner.
type Config struct {
	// === Classification ===

	// SkipCleanContent returns content that already satisfies the vocabulary unchanged.
	SkipCleanContent bool `json:"skip_clean_content" yaml:"skip_clean_content" mapstructure:"skip_clean_content"`

	// DetectCodeExport routes syntax-highlighted code copied from an editor to plain text.
	DetectCodeExport bool `json:"detect_code_export" yaml:"detect_code_export" mapstructure:"detect_code_export"`

	// VendorCleanup selects when vendor markup is stripped: auto, always or never.
	VendorCleanup VendorMode `json:"vendor_cleanup" yaml:"vendor_cleanup" mapstructure:"vendor_cleanup" validate:"omitempty,oneof=auto always never"`

	// VendorStyleThreshold is the style=/class= count above which a full document
	// without explicit vendor fingerprints is still treated as a vendor export.
	VendorStyleThreshold int `json:"vendor_style_threshold" yaml:"vendor_style_threshold" mapstructure:"vendor_style_threshold" validate:"gte=0"`

	// === Rewrites ===

	// DetectHeadings turns "H2: Title" style paragraphs into heading tags.
	DetectHeadings bool `json:"detect_headings" yaml:"detect_headings" mapstructure:"detect_headings"`

	// DetectBullets fuses paragraphs starting with a bullet glyph into lists.
	DetectBullets bool `json:"detect_bullets" yaml:"detect_bullets" mapstructure:"detect_bullets"`

	// StripAttributes removes presentational and behavioural attributes.
	StripAttributes bool `json:"strip_attributes" yaml:"strip_attributes" mapstructure:"strip_attributes"`

	// EnforceVocabulary unwraps every tag outside AllowedTags and drops every
	// attribute except href on anchors.
	EnforceVocabulary bool `json:"enforce_vocabulary" yaml:"enforce_vocabulary" mapstructure:"enforce_vocabulary"`

	// CheckAnchors compares links before and after cleaning and warns about lost hrefs.
	CheckAnchors bool `json:"check_anchors" yaml:"check_anchors" mapstructure:"check_anchors"`

	// FormatBlocks puts block elements on their own lines.
	FormatBlocks bool `json:"format_blocks" yaml:"format_blocks" mapstructure:"format_blocks"`

	// NormalizeWhitespace replaces special Unicode spaces and removes zero-width characters.
	NormalizeWhitespace bool `json:"normalize_whitespace" yaml:"normalize_whitespace" mapstructure:"normalize_whitespace"`

	// Debug logs the first bytes of the document after every stage.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns the configuration used by NormalizeMarkup: every stage on.
func DefaultConfig() *Config {
	return &Config{
		SkipCleanContent:     true,
		DetectCodeExport:     true,
		VendorCleanup:        VendorAuto,
		VendorStyleThreshold: DefaultVendorStyleThreshold,

		DetectHeadings:      true,
		DetectBullets:       true,
		StripAttributes:     true,
		EnforceVocabulary:   true,
		CheckAnchors:        true,
		FormatBlocks:        true,
		NormalizeWhitespace: true,

		Debug: false,
	}
}

// PresetMinimal only removes attributes and foreign tags. Text is never
// reinterpreted as headings or lists and vendor stripping is off.
func PresetMinimal() *Config {
	return &Config{
		SkipCleanContent:     true,
		VendorCleanup:        VendorNever,
		VendorStyleThreshold: DefaultVendorStyleThreshold,
		StripAttributes:      true,
		EnforceVocabulary:    true,
		FormatBlocks:         true,
		NormalizeWhitespace:  true,
	}
}

// PresetVendor treats every dirty input as a vendor export, which suits
// pastes from editors that do not leave Office fingerprints.
func PresetVendor() *Config {
	cfg := DefaultConfig()
	cfg.VendorCleanup = VendorAlways
	return cfg
}

// Preset returns the named preset: default, minimal or vendor.
func Preset(name string) (*Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultConfig(), nil
	case "minimal":
		return PresetMinimal(), nil
	case "vendor":
		return PresetVendor(), nil
	default:
		return nil, fmt.Errorf("unknown preset %q (use default, minimal or vendor)", name)
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("invalid cleaner config: %s failed %q (value %v)", e.Field(), e.Tag(), e.Value())
		}
		return fmt.Errorf("invalid cleaner config: %w", err)
	}
	return nil
}

// Merge merges another config into this one.
// Enabled options in other switch the option on; a non-empty VendorCleanup and a
// positive VendorStyleThreshold replace the current values.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	merged := *c

	if other.SkipCleanContent {
		merged.SkipCleanContent = true
	}
	if other.DetectCodeExport {
		merged.DetectCodeExport = true
	}
	if other.VendorCleanup != "" {
		merged.VendorCleanup = other.VendorCleanup
	}
	if other.VendorStyleThreshold > 0 {
		merged.VendorStyleThreshold = other.VendorStyleThreshold
	}

	if other.DetectHeadings {
		merged.DetectHeadings = true
	}
	if other.DetectBullets {
		merged.DetectBullets = true
	}
	if other.StripAttributes {
		merged.StripAttributes = true
	}
	if other.EnforceVocabulary {
		merged.EnforceVocabulary = true
	}
	if other.CheckAnchors {
		merged.CheckAnchors = true
	}
	if other.FormatBlocks {
		merged.FormatBlocks = true
	}
	if other.NormalizeWhitespace {
		merged.NormalizeWhitespace = true
	}
	if other.Debug {
		merged.Debug = true
	}

	return &merged
}
