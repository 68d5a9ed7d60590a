package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Reader reads a paste from an io.Reader, such as standard input.
// Input that looks like markup becomes Content.HTML, anything else is plain text.
type Reader struct {
	r    io.Reader
	name string
}

// NewReader creates a source reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, name: "reader"}
}

// Read consumes the reader. A reader can only be read once.
func (s *Reader) Read(ctx context.Context) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}

	data, err := io.ReadAll(s.r)
	if err != nil {
		return Content{}, fmt.Errorf("reading %s: %w", s.name, err)
	}
	return contentFrom(string(data))
}

// Name returns the source type.
func (s *Reader) Name() string {
	return s.name
}

// File reads a paste from a file. Files with an .html or .htm extension, or
// whose content looks like markup, are treated as rich content.
type File struct {
	Path string
}

// NewFile creates a source for the file at path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Read loads the file.
func (f *File) Read(ctx context.Context) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Content{}, fmt.Errorf("reading %s: %w", f.Path, err)
	}

	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".html", ".htm":
		if strings.TrimSpace(string(data)) == "" {
			return Content{}, ErrUnavailable
		}
		return Content{HTML: string(data), Text: TextOf(string(data))}, nil
	}
	return contentFrom(string(data))
}

// Name returns the source type.
func (f *File) Name() string {
	return "file"
}

func contentFrom(s string) (Content, error) {
	if strings.TrimSpace(s) == "" {
		return Content{}, ErrUnavailable
	}
	if looksLikeMarkup(s) {
		return Content{HTML: s, Text: TextOf(s)}, nil
	}
	return Content{Text: s}, nil
}

func looksLikeMarkup(s string) bool {
	return strings.Contains(s, "<") && strings.Contains(s, ">")
}

// TextOf returns the text a clipboard would offer alongside the markup: the
// document's text nodes with script and style content removed.
func TextOf(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	doc.Find("script, style, head").Remove()
	return strings.TrimSpace(doc.Text())
}
