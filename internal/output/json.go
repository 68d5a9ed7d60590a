package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes each report as its own JSON value. Markup inside reports
// is kept readable: <, > and & are not escaped.
type JSONWriter struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

// NewJSONWriter creates a JSON writer. An empty indent gives one report per line.
func NewJSONWriter(w io.Writer, indent string) *JSONWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return &JSONWriter{bw: bw, enc: enc}
}

func (w *JSONWriter) Write(report any) error {
	return w.enc.Encode(report)
}

func (w *JSONWriter) Close() error {
	return w.bw.Flush()
}
