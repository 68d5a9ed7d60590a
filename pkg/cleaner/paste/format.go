package paste

import (
	"regexp"
	"strings"
)

var (
	blockCloseRegex = regexp.MustCompile(`(?i)(</(?:h[1-6]|p|ul|ol|blockquote|pre)>)[ \t]*`)
	newlineRunRegex = regexp.MustCompile(`\n{2,}`)
)

// FormatBlocks puts a line break after every closing heading, paragraph, list,
// quote and preformatted block. List items and inline elements stay on the line
// of their siblings. Spaces after a block are dropped, consecutive breaks
// collapse to one and the result is trimmed.
func FormatBlocks(html string) string {
	result := blockCloseRegex.ReplaceAllString(html, "$1\n")
	result = newlineRunRegex.ReplaceAllString(result, "\n")
	return strings.TrimSpace(result)
}
