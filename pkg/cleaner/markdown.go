package cleaner

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// MarkdownCleaner converts normalized paste markup to Markdown using html-to-markdown.
// It is the output converter for destinations such as .md files, where inserting
// HTML tags would be noise.
type MarkdownCleaner struct {
	conv   *converter.Converter
	config markdownConfig
}

// MarkdownOption configures the markdown cleaner.
type MarkdownOption func(*markdownConfig)

type markdownConfig struct {
	// Domain resolves relative link targets into absolute URLs.
	Domain string
	// MaxBlankLines is the number of consecutive blank lines kept in the output.
	MaxBlankLines int
}

// WithDomain resolves relative hrefs against the given domain.
func WithDomain(domain string) MarkdownOption {
	return func(c *markdownConfig) {
		c.Domain = domain
	}
}

// WithMaxBlankLines sets how many consecutive blank lines survive.
func WithMaxBlankLines(n int) MarkdownOption {
	return func(c *markdownConfig) {
		if n >= 0 {
			c.MaxBlankLines = n
		}
	}
}

// NewMarkdown creates a new Markdown cleaner.
func NewMarkdown(opts ...MarkdownOption) *MarkdownCleaner {
	cfg := markdownConfig{MaxBlankLines: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &MarkdownCleaner{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		config: cfg,
	}
}

// Clean converts HTML to Markdown.
func (c *MarkdownCleaner) Clean(html string) (string, error) {
	var (
		markdown string
		err      error
	)
	if c.config.Domain != "" {
		markdown, err = c.conv.ConvertString(html, converter.WithDomain(c.config.Domain))
	} else {
		markdown, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}

	return cleanWhitespace(markdown, c.config.MaxBlankLines), nil
}

// Name returns the cleaner type.
func (c *MarkdownCleaner) Name() string {
	return "markdown"
}

// cleanWhitespace collapses runs of blank lines to at most maxBlank, strips
// trailing spaces and trims the result.
func cleanWhitespace(s string, maxBlank int) string {
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	blankCount := 0

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blankCount++
			if blankCount <= maxBlank {
				result = append(result, "")
			}
		} else {
			blankCount = 0
			result = append(result, line)
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
