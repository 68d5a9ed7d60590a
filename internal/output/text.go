package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TextWriter writes human-readable reports. Values implementing fmt.Stringer
// are written with String; anything else with %+v.
type TextWriter struct {
	w       *bufio.Writer
	written int
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write writes one report, separated from the previous one by a blank line.
func (w *TextWriter) Write(data any) error {
	var s string
	switch v := data.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprintf("%+v", v)
	}

	if w.written > 0 {
		if _, err := w.w.WriteString("\n"); err != nil {
			return err
		}
	}
	w.written++

	if _, err := w.w.WriteString(strings.TrimRight(s, "\n") + "\n"); err != nil {
		return err
	}
	return nil
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.w.Flush()
}
