// Package cleaner provides interfaces and implementations for converting cleaned
// paste markup into the format a destination document expects.
package cleaner

import (
	"fmt"
	"strings"
)

// Cleaner transforms markup into another representation.
// The paste pipeline itself implements Cleaner, as do the output converters
// (html, markdown, plain text) that run after it.
type Cleaner interface {
	// Clean transforms the input markup.
	// The output format depends on the implementation (html, markdown, plain text).
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

// Output formats understood by ForFormat.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Formats lists the supported output formats.
var Formats = []string{FormatHTML, FormatMarkdown, FormatText}

// ForFormat returns the converter that turns normalized markup into the named
// output format.
func ForFormat(format string) (Cleaner, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHTML:
		return NewHTML(), nil
	case FormatMarkdown, "md":
		return NewMarkdown(), nil
	case FormatText, "txt", "plain":
		return NewText(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use %s)", format, strings.Join(Formats, ", "))
	}
}
