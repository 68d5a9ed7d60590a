package cleaner

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs become lines",
			html: `<p>Hello <strong>world</strong></p><p>a &amp; b</p>`,
			want: "Hello world\na & b",
		},
		{
			name: "list items become lines",
			html: `<ul><li>a</li><li>b</li></ul>`,
			want: "a\nb",
		},
		{
			name: "line breaks",
			html: `one<br>two<BR/>three`,
			want: "one\ntwo\nthree",
		},
		{
			name: "editor code export",
			html: `<meta charset='utf-8'><div style="font-family: Consolas, monospace"><div><span style="color:#569cd6;">&lt;div&gt;</span>hi<span>&lt;/div&gt;</span></div></div>`,
			want: "<div>hi</div>",
		},
		{
			name: "indentation survives",
			html: "<div>if x {</div><div>&nbsp;&nbsp;&nbsp;&nbsp;y()</div><div>}</div>",
			want: "if x {\n    y()\n}",
		},
		{
			name: "script and style content dropped",
			html: `<style>p{color:red}</style><script>alert(1)</script><p>kept</p>`,
			want: "kept",
		},
		{
			name: "blank line runs collapse",
			html: `<p>a</p><p></p><p></p><p></p><p>b</p>`,
			want: "a\n\nb",
		},
		{
			name: "plain text unchanged",
			html: "just text",
			want: "just text",
		},
		{
			name: "empty",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.html); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextCleaner_FromTestdata(t *testing.T) {
	got, err := NewText().Clean(readTestdata(t, "pasted.html"))
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	for _, want := range []string{"Quarterly Results\n", "third quarter & beyond.", "Alpha\nBeta", "See the report."} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output, got %q", want, got)
		}
	}
	if strings.Contains(got, "<") {
		t.Errorf("expected no tags, got %q", got)
	}
}

func TestTextCleaner_Name(t *testing.T) {
	if got := NewText().Name(); got != "text" {
		t.Errorf("Name() = %q, want %q", got, "text")
	}
}
