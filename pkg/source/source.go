// Package source defines where pasted content comes from.
// Implement the Source interface to read from a different clipboard
// backend, an editor bridge, or any other provider of rich markup.
package source

import (
	"context"
	"errors"
	"strings"
)

// Source provides the content of a single paste.
type Source interface {
	// Read returns the current content. Implementations return ErrUnavailable
	// when there is nothing to paste.
	Read(ctx context.Context) (Content, error)

	// Name returns a string identifying the source (e.g., "clipboard", "file").
	Name() string
}

// Content is what a source offers for one paste: the rich markup, if any, and
// the plain-text representation the source would fall back to.
type Content struct {
	HTML string
	Text string
}

// Empty reports whether the content carries neither markup nor non-blank text.
func (c Content) Empty() bool {
	return strings.TrimSpace(c.HTML) == "" && strings.TrimSpace(c.Text) == ""
}

// HasHTML reports whether rich markup is available.
func (c Content) HasHTML() bool {
	return strings.TrimSpace(c.HTML) != ""
}

// Error types for distinguishing failure reasons.
// Check with errors.Is(err, source.ErrUnavailable).
var (
	// ErrUnavailable indicates the source has no content to paste.
	ErrUnavailable = errors.New("no content available")
	// ErrUnsupported indicates the platform offers no way to read the source.
	ErrUnsupported = errors.New("source not supported on this platform")
)

// Static is a Source holding fixed content.
type Static struct {
	Content Content
}

// NewStatic returns a source that always yields the given markup and text.
func NewStatic(html, text string) *Static {
	return &Static{Content: Content{HTML: html, Text: text}}
}

// Read returns the fixed content.
func (s *Static) Read(ctx context.Context) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	if s.Content.Empty() {
		return Content{}, ErrUnavailable
	}
	return s.Content, nil
}

// Name returns the source type.
func (s *Static) Name() string {
	return "static"
}
