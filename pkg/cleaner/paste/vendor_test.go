package paste

import (
	"errors"
	"strings"
	"testing"
)

func TestStripVendorMarkup(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		want     string
		contains []string
		excludes []string
	}{
		{
			name: "extracts body",
			html: `<html><head><title>T</title></head><body class="b"><p>x</p></body></html>`,
			want: `<p>x</p>`,
		},
		{
			name: "removes conditional comments",
			html: `<p>a</p><!--[if gte mso 9]><xml><o:x/></xml><![endif]--><p>b</p>`,
			want: `<p>a</p><p>b</p>`,
		},
		{
			name: "removes bracket-only conditionals",
			html: `<p><![if !supportLists]>-<![endif]>a</p>`,
			want: `<p>-a</p>`,
		},
		{
			name: "removes style script and xml blocks",
			html: `<style>p{}</style><script>x()</script><xml><w:data>d</w:data></xml><p>kept</p>`,
			want: `<p>kept</p>`,
		},
		{
			name:     "removes namespaced tags",
			html:     `<p>a<o:p></o:p><w:sdt>b</w:sdt><v:shape id="s"></v:shape><m:oMath>c</m:oMath></p>`,
			want:     `<p>abc</p>`,
			excludes: []string{"o:p", "w:sdt", "v:shape", "m:oMath"},
		},
		{
			name: "removes comments meta and link",
			html: `<meta charset="utf-8"><link rel="stylesheet" href="x.css"><!-- note --><p>x</p>`,
			want: `<p>x</p>`,
		},
		{
			name: "unwraps containers",
			html: `<div class="c"><span style="x">a</span><font face="Arial">b</font></div>`,
			want: `ab`,
		},
		{
			name:     "rewrites legacy emphasis",
			html:     `<p><b>bold</b> and <i class="x">italic</i></p>`,
			contains: []string{"<strong>bold</strong> and", "<em>italic</em>"},
			excludes: []string{"<b>", "<i"},
		},
		{
			name: "strips structural attributes",
			html: `<p class="MsoNormal" style="margin:0">x</p><h1 id="t">h</h1><td width="5">c</td>`,
			want: `<p>x</p><h1>h</h1><td>c</td>`,
		},
		{
			name: "normalizes anchors",
			html: `<a class="x" href='https://example.com/a' target=_blank>a</a>`,
			want: `<a href="https://example.com/a">a</a>`,
		},
		{
			name: "expands non-breaking spaces",
			html: "<p>a&nbsp;b\u00a0c\u200bd</p>",
			want: `<p>a b cd</p>`,
		},
		{
			name: "collapses nested empty elements",
			html: `<p><strong> </strong></p><p>x</p><ul><li><em></em></li></ul>`,
			want: `<p>x</p>`,
		},
		{
			name: "removes newlines and space before punctuation",
			html: "<p>one\n two\r\n  three .</p>",
			want: `<p>one two three.</p>`,
		},
		{
			name: "separates inline closing tags",
			html: `<p><strong>a</strong>b</p>`,
			want: `<p><strong>a</strong> b</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripVendorMarkup(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("expected output to contain %q, got %q", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("expected output to not contain %q, got %q", s, got)
				}
			}
		})
	}
}

func TestStripVendorMarkup_Fixture(t *testing.T) {
	got, err := StripVendorMarkup(loadFixture(t, "word.html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range []string{"xmlns:w", "class=", "style=", "<o:", "<w:", "<span", "<div", "StartFragment", "&nbsp;", "\n"} {
		if strings.Contains(got, s) {
			t.Errorf("expected output to not contain %q, got %q", s, got)
		}
	}
	for _, s := range []string{
		"<strong>H2: Quarterly Results</strong>",
		"<p>Revenue grew strongly in the <em>third</em> quarter.</p>",
		"<p>· Alpha</p>",
		`<a href="https://example.com/report">the report</a>.`,
	} {
		if !strings.Contains(got, s) {
			t.Errorf("expected output to contain %q, got %q", s, got)
		}
	}
}

func TestStripVendorMarkup_RecoversFault(t *testing.T) {
	saved := vendorRewrites
	defer func() { vendorRewrites = saved }()
	vendorRewrites = append([]rewrite{}, saved[:2]...)
	vendorRewrites = append(vendorRewrites, rewrite{"exploding", func(string) string { panic("boom") }})

	input := `<p class="MsoNormal">x</p>`
	got, err := StripVendorMarkup(input)
	if got != input {
		t.Errorf("expected original input back, got %q", got)
	}
	if !errors.Is(err, ErrVendorCleanup) {
		t.Fatalf("expected ErrVendorCleanup, got %v", err)
	}
	if !strings.Contains(err.Error(), "exploding") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected error to name the rewrite and cause, got %v", err)
	}
}
