package cleaner

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// Closing block tags and line breaks become newlines before tags are stripped.
	textBreakRegex = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|h[1-6]|li|ul|ol|blockquote|pre|tr|table)>`)
	blankRunRegex  = regexp.MustCompile(`\n{3,}`)

	stripPolicy = bluemonday.StripTagsPolicy()
)

// TextCleaner reduces markup to plain text. Block boundaries become line breaks,
// entities are decoded and indentation is kept, so it also recovers source code
// from syntax-highlighted editor exports.
type TextCleaner struct{}

// NewText creates a new plain-text cleaner.
func NewText() *TextCleaner {
	return &TextCleaner{}
}

// Clean strips all tags and returns the text content.
func (c *TextCleaner) Clean(markup string) (string, error) {
	return PlainText(markup), nil
}

// Name returns the cleaner type.
func (c *TextCleaner) Name() string {
	return "text"
}

// PlainText returns the text content of markup with one line per block.
func PlainText(markup string) string {
	if markup == "" {
		return ""
	}

	s := textBreakRegex.ReplaceAllStringFunc(markup, func(tag string) string {
		return tag + "\n"
	})
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")
	s = blankRunRegex.ReplaceAllString(s, "\n\n")

	return strings.Trim(s, "\n")
}
