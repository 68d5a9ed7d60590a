// Package output renders CLI reports as text, JSON, JSON lines or YAML.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format names a report encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts a format name, case-insensitively, plus the aliases
// "txt" and "yml". An empty name means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	case "", "txt":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (use text, json, jsonl or yaml)", s)
	}
}

// Writer encodes reports to an underlying stream. Nothing is guaranteed to
// reach the stream until Close.
type Writer interface {
	Write(report any) error
	Close() error
}

// NewWriter returns the writer for format. JSON is indented; JSON lines is
// the same encoding with one compact report per line.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatText:
		return NewTextWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, "  "), nil
	case FormatJSONL:
		return NewJSONWriter(w, ""), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}
