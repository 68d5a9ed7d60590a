package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pasteclean/internal/diagnostics"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
	"github.com/jmylchreest/pasteclean/pkg/source"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "enabled")
	v.SetDefault("preset", "default")
	v.SetDefault("format", "html")
	v.SetDefault("max_size", "10MB")

	v.SetDefault("diagnostics.enabled", false)
	v.SetDefault("diagnostics.dir", "")
	v.SetDefault("diagnostics.keep", diagnostics.DefaultKeep)

	v.SetDefault("clipboard.html_command", []string{})
	v.SetDefault("clipboard.plain_only", false)
	v.SetDefault("clipboard.timeout", source.DefaultClipboardConfig().Timeout)
}

// cleanerBoolKeys maps the cleaner.* config keys to their paste.Config fields.
var cleanerBoolKeys = map[string]func(*paste.Config) *bool{
	"skip_clean_content":   func(c *paste.Config) *bool { return &c.SkipCleanContent },
	"detect_code_export":   func(c *paste.Config) *bool { return &c.DetectCodeExport },
	"detect_headings":      func(c *paste.Config) *bool { return &c.DetectHeadings },
	"detect_bullets":       func(c *paste.Config) *bool { return &c.DetectBullets },
	"strip_attributes":     func(c *paste.Config) *bool { return &c.StripAttributes },
	"enforce_vocabulary":   func(c *paste.Config) *bool { return &c.EnforceVocabulary },
	"check_anchors":        func(c *paste.Config) *bool { return &c.CheckAnchors },
	"format_blocks":        func(c *paste.Config) *bool { return &c.FormatBlocks },
	"normalize_whitespace": func(c *paste.Config) *bool { return &c.NormalizeWhitespace },
	"debug":                func(c *paste.Config) *bool { return &c.Debug },
}

// cleanerConfig builds the pipeline configuration: the preset first, then every
// cleaner.* key set in the config file, environment or flags.
func cleanerConfig(v *viper.Viper) (*paste.Config, error) {
	cfg, err := paste.Preset(v.GetString("preset"))
	if err != nil {
		return nil, err
	}

	for key, field := range cleanerBoolKeys {
		if v.IsSet("cleaner." + key) {
			*field(cfg) = v.GetBool("cleaner." + key)
		}
	}
	if v.IsSet("cleaner.vendor_cleanup") {
		if mode := strings.ToLower(v.GetString("cleaner.vendor_cleanup")); mode != "" {
			cfg.VendorCleanup = paste.VendorMode(mode)
		}
	}
	if v.IsSet("cleaner.vendor_style_threshold") {
		cfg.VendorStyleThreshold = v.GetInt("cleaner.vendor_style_threshold")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func clipboardConfig(v *viper.Viper) source.ClipboardConfig {
	cfg := source.DefaultClipboardConfig()
	cfg.HTMLCommand = v.GetStringSlice("clipboard.html_command")
	cfg.PlainOnly = v.GetBool("clipboard.plain_only")
	if d := v.GetDuration("clipboard.timeout"); d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// maxSize parses max_size ("10MB", "512KiB", "0" for unlimited).
func maxSize(v *viper.Viper) (uint64, error) {
	raw := strings.TrimSpace(v.GetString("max_size"))
	if raw == "" || raw == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid max_size %q: %w", raw, err)
	}
	return n, nil
}

// diagnosticsRecorder returns the dump recorder, or nil when diagnostics are off.
func diagnosticsRecorder(v *viper.Viper) *diagnostics.Recorder {
	if !v.GetBool("diagnostics.enabled") {
		return nil
	}
	dir := v.GetString("diagnostics.dir")
	if dir == "" {
		dir = diagnostics.DefaultDir()
	}
	return diagnostics.NewOS(dir, v.GetInt("diagnostics.keep"))
}

// durationMs rounds d for display.
func durationMs(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
