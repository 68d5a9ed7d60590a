package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testReport struct {
	Route   string `json:"route" yaml:"route"`
	Content string `json:"content" yaml:"content"`
}

type stringerReport struct{}

func (r stringerReport) String() string { return "report\n" }

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"txt", FormatText, false},
		{"JSON", FormatJSON, false},
		{"jsonl", FormatJSONL, false},
		{"yml", FormatYAML, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format Format
		check  func(Writer) bool
	}{
		{FormatText, func(w Writer) bool { _, ok := w.(*TextWriter); return ok }},
		{FormatJSON, func(w Writer) bool { _, ok := w.(*JSONWriter); return ok }},
		{FormatJSONL, func(w Writer) bool { _, ok := w.(*JSONWriter); return ok }},
		{FormatYAML, func(w Writer) bool { _, ok := w.(*YAMLWriter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if !tt.check(w) {
				t.Errorf("unexpected writer type %T", w)
			}
		})
	}

	if _, err := NewWriter(&bytes.Buffer{}, Format("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTextWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)

	for _, item := range []any{"plain string", stringerReport{}, testReport{Route: "normalize"}} {
		if err := w.Write(item); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := "plain string\n\nreport\n\n{Route:normalize Content:}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestJSONWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatJSON)

	if err := w.Write(testReport{Route: "vendor_cleanup", Content: "<p>a & b</p>"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !strings.Contains(buf.String(), `  "content": "<p>a & b</p>"`) {
		t.Errorf("expected indented, unescaped markup, got %s", buf.String())
	}
	var got testReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a single object: %v", err)
	}
	if got.Route != "vendor_cleanup" {
		t.Errorf("Route = %q", got.Route)
	}
}

func TestJSONLinesWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatJSONL)

	_ = w.Write(testReport{Route: "a", Content: "<p>x</p>"})
	_ = w.Write(testReport{Route: "b"})
	_ = w.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != `{"route":"a","content":"<p>x</p>"}` {
		t.Errorf("unexpected first line %s", lines[0])
	}
}

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	_ = w.Write(testReport{Route: "a"})
	_ = w.Write(testReport{Route: "b"})
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	dec := yaml.NewDecoder(strings.NewReader(buf.String()))
	var routes []string
	for {
		var r testReport
		if err := dec.Decode(&r); err != nil {
			break
		}
		routes = append(routes, r.Route)
	}
	if strings.Join(routes, ",") != "a,b" {
		t.Errorf("expected two documents, got %v from %q", routes, buf.String())
	}
}

func TestWriters_Empty(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON, FormatJSONL, FormatYAML} {
		buf := &bytes.Buffer{}
		w, _ := NewWriter(buf, format)
		if err := w.Close(); err != nil {
			t.Errorf("%s: Close() error = %v", format, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: expected no output, got %q", format, buf.String())
		}
	}
}
