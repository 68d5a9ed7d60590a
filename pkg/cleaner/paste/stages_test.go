package paste

import (
	"reflect"
	"strings"
	"testing"
)

func TestDetectHeadings(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"paragraph prefix", `<p>H2: Quarterly Results</p>`, `<h2>Quarterly Results</h2>`},
		{"paragraph with attributes", `<p class="x">H1: Intro</p>`, `<h1>Intro</h1>`},
		{"title qualifier", `<p>H3 Title: Summary</p>`, `<h3>Summary</h3>`},
		{"lower-case tag qualifier", `<p>h1 tag: Intro</p>`, `<h1>Intro</h1>`},
		{"emphasized prefix", `<p><strong>H2 Tag: Outlook </strong></p>`, `<h2>Outlook</h2>`},
		{"italic prefix", `<p><em>H4: Notes</em></p>`, `<h4>Notes</h4>`},
		{"mismatched emphasis", `<p><strong>H2: A</em></p>`, `<p><strong>H2: A</em></p>`},
		{"empty heading before emphasis", `<p><h3></h3><em>Details</em></p>`, `<h3>Details</h3>`},
		{"mismatched empty heading", `<p><h3></h2><em>Details</em></p>`, `<p><h3></h2><em>Details</em></p>`},
		{"heading wrapped in paragraph", `<p> <h2>Title</h2> </p>`, `<h2>Title</h2>`},
		{"bare line", "H4: Notes\n<p>x</p>", "<h4>Notes</h4>\n<p>x</p>"},
		{"level out of range", `<p>H5: Too deep</p>`, `<p>H5: Too deep</p>`},
		{"empty text", `<p>H2:   </p>`, `<p>H2:   </p>`},
		{"ordinary paragraph", `<p>Height: 5cm</p>`, `<p>Height: 5cm</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectHeadings(tt.html); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectBullets(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "dash bullets",
			html: `<p>- Alpha</p><p>- Beta</p><p>- Gamma</p>`,
			want: `<ul><li>Alpha</li><li>Beta</li><li>Gamma</li></ul>`,
		},
		{
			name: "separate runs",
			html: "<p>• One</p>\n<p>• Two</p><p>Not a bullet</p><p>· Three</p>",
			want: `<ul><li>One</li><li>Two</li></ul><p>Not a bullet</p><ul><li>Three</li></ul>`,
		},
		{
			name: "inline markup in item",
			html: `<p>- <strong>Bold</strong> item</p>`,
			want: `<ul><li><strong>Bold</strong> item</li></ul>`,
		},
		{
			name: "paragraph with attributes",
			html: `<p style="margin:0">- a</p>`,
			want: `<ul><li>a</li></ul>`,
		},
		{
			name: "glyph only",
			html: `<p>-</p><p>- </p>`,
			want: `<p>-</p><p>- </p>`,
		},
		{
			name: "dash inside text",
			html: `<p>well-known</p>`,
			want: `<p>well-known</p>`,
		},
		{
			name: "sentinels in content",
			html: "\uE000<p>- a</p>",
			want: "\uE000<p>- a</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectBullets(tt.html)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if strings.ContainsAny(got, "\n") && !strings.ContainsAny(tt.html, "\n") {
				t.Error("bullet fusion must not introduce line breaks")
			}
		})
	}
}

func TestStripAttributes(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "all stripped attributes",
			html: `<p class="a" id='b' style=c data-x="1" aria-label="y" role="note" lang="en" dir="ltr" title="t">Text</p>`,
			want: `<p>Text</p>`,
		},
		{
			name: "behavioural attributes",
			html: `<div contenteditable="true" spellcheck="false" tabindex="0">x</div>`,
			want: `<div>x</div>`,
		},
		{
			name: "anchor keeps only href",
			html: `<a class="x" href='https://a.example/?q=1' target="_blank" rel="noopener">x</a>`,
			want: `<a href="https://a.example/?q=1">x</a>`,
		},
		{
			name: "data-href does not count",
			html: `<a data-href="x" href="y">z</a>`,
			want: `<a href="y">z</a>`,
		},
		{
			name: "meta and link elements",
			html: `<meta charset="utf-8"><link rel="stylesheet" href="x.css"><p>x</p>`,
			want: `<p>x</p>`,
		},
		{
			name: "text is untouched",
			html: `<p>set id="keep" and  two spaces</p>`,
			want: `<p>set id="keep" and  two spaces</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripAttributes(tt.html); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnforceVocabulary(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"lower-cases allowed tags", `<P CLASS="x">Hi<SPAN>there</SPAN></P>`, `<p>Hi<span>there</span></p>`},
		{"legacy emphasis", `<b>a</b><i>b</i>`, `<strong>a</strong><em>b</em>`},
		{"line breaks", `<p>a<br/>b<br>c</br></p>`, `<p>a<br>b<br>c<br></p>`},
		{"drops non-rendered content", `<style>p{}</style><script>x()</script><p>kept</p><!-- c -->`, `<p>kept</p>`},
		{"drops nested xml islands", `<xml><w:data>secret</w:data></xml><p>x</p>`, `<p>x</p>`},
		{"drops doctype", `<!DOCTYPE html><p>x</p>`, `<p>x</p>`},
		{"unwraps vendor tags", `<o:p></o:p><p>x</p>`, `<p>x</p>`},
		{"keeps raw href", `<a href="https://x.example/?a=1&amp;b=2" onclick="y">go</a>`, `<a href="https://x.example/?a=1&amp;b=2">go</a>`},
		{"anchor without href", `<a name="top">Top</a>`, `<a>Top</a>`},
		{"keeps entities in text", `<p>5 &lt; 6 &amp; 7</p>`, `<p>5 &lt; 6 &amp; 7</p>`},
		{"unwraps inline unknown tags", `<p>a<mark>b</mark>c</p>`, `<p>abc</p>`},
		{"drops xmp body", `<p>x</p><xmp><img src=x onerror=alert(1)></xmp>`, `<p>x</p>`},
		{"drops textarea body", `<textarea><b onclick="y">hi</b></textarea><p>x</p>`, `<p>x</p>`},
		{"drops everything after plaintext", `<p>x</p><plaintext><b onclick="y">hi</b><p>more</p>`, `<p>x</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnforceVocabulary(tt.html); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnforceVocabulary_SpacesBlocks(t *testing.T) {
	got := EnforceVocabulary(`<table><tr><td>A</td><td>B</td></tr></table>`)
	if strings.Contains(got, "<") {
		t.Errorf("expected table markup to be removed, got %q", got)
	}
	if fields := strings.Fields(got); !reflect.DeepEqual(fields, []string{"A", "B"}) {
		t.Errorf("expected cells to stay separate words, got %q", got)
	}
}

func TestFormatBlocks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "breaks after blocks",
			html: `<h1>T</h1><p>a</p><ul><li>x</li><li>y</li></ul><p>b</p>`,
			want: "<h1>T</h1>\n<p>a</p>\n<ul><li>x</li><li>y</li></ul>\n<p>b</p>",
		},
		{
			name: "collapses breaks and trims",
			html: "  <p>a</p>\n\n\n<p>b</p>  ",
			want: "<p>a</p>\n<p>b</p>",
		},
		{
			name: "drops spaces after blocks",
			html: `<p>a</p> <blockquote>q</blockquote> <pre>c</pre> <ol><li>1</li></ol>`,
			want: "<p>a</p>\n<blockquote>q</blockquote>\n<pre>c</pre>\n<ol><li>1</li></ol>",
		},
		{
			name: "inline elements stay on the line",
			html: `<p>a <strong>b</strong> <a href="x">c</a></p>`,
			want: `<p>a <strong>b</strong> <a href="x">c</a></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBlocks(tt.html)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if again := FormatBlocks(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double nbsp", "\u00a0\u00a0word", " word"},
		{"zero width", "a\u200bb\u200c\u200dc\ufeff", "abc"},
		{"entities", "a&nbsp;&nbsp;b&#160;c&#xA0;d", "a b c d"},
		{"space variants", "a\u2007b\u202fc\u2009d\u200ae\u2003f\u2002g", "a b c d e f g"},
		{"plain", "nothing to do", "nothing to do"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeWhitespace(tt.in)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if again := NormalizeWhitespace(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCountSpecialWhitespace(t *testing.T) {
	if got := countSpecialWhitespace("&nbsp;\u00a0\u200b x"); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := countSpecialWhitespace("plain"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestAnchorHref(t *testing.T) {
	tests := []struct {
		tag    string
		want   string
		wantOK bool
	}{
		{`<a href="x">`, "x", true},
		{`<a href='y'>`, "y", true},
		{`<a href=z>`, "z", true},
		{`<a HREF = "w">`, "w", true},
		{`<a class="c" href="first" href="second">`, "first", true},
		{`<a href="a&amp;b">`, "a&amp;b", true},
		{`<a href="">`, "", false},
		{`<a data-href="x">`, "", false},
		{`<a name="n">`, "", false},
	}

	for _, tt := range tests {
		got, ok := anchorHref(tt.tag)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("anchorHref(%q) = %q, %v, want %q, %v", tt.tag, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNormalizeAnchors(t *testing.T) {
	got := normalizeAnchors(`<a target=_blank href='u'>x</a><a name=n>y</a><A HREF="v" CLASS="c">z</A>`)
	want := `<a href="u">x</a><a name=n>y</a><a href="v">z</A>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := formatAnchor(`a"b`); got != `<a href="a&quot;b">` {
		t.Errorf("expected quote to be escaped, got %q", got)
	}
}

func TestInventory(t *testing.T) {
	before, err := takeInventory(`<p><a href="one">1</a><a href="two">2</a><a href="one">again</a><a href="">x</a><span>s</span></p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(before.hrefs, []string{"one", "two"}) {
		t.Errorf("expected distinct hrefs, got %v", before.hrefs)
	}

	after, err := takeInventory(`<p><a href="two">2</a></p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing := missingHrefs(before, after); !reflect.DeepEqual(missing, []string{"one"}) {
		t.Errorf("expected one missing href, got %v", missing)
	}

	removed := removedTags(before, after)
	if removed["a"] != 3 || removed["span"] != 1 || removed["p"] != 0 {
		t.Errorf("unexpected removed tags: %v", removed)
	}

	if n := CountAnchors(`<a href="x">x</a><a href="x">x</a>`); n != 1 {
		t.Errorf("expected 1 distinct anchor, got %d", n)
	}
}
