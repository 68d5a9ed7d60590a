package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes a YAML stream with one document per report.
type YAMLWriter struct {
	bw  *bufio.Writer
	enc *yaml.Encoder
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{bw: bufio.NewWriter(w)}
}

func (w *YAMLWriter) Write(report any) error {
	// Started on first use so that a writer with no reports emits nothing.
	if w.enc == nil {
		w.enc = yaml.NewEncoder(w.bw)
		w.enc.SetIndent(2)
	}
	return w.enc.Encode(report)
}

func (w *YAMLWriter) Close() error {
	if w.enc != nil {
		if err := w.enc.Close(); err != nil {
			return err
		}
	}
	return w.bw.Flush()
}
