package paste

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrVendorCleanup is wrapped by errors from a failed vendor stripping pass.
var ErrVendorCleanup = errors.New("vendor cleanup failed")

// rewrite is one named text substitution.
type rewrite struct {
	name string
	fn   func(string) string
}

func replaceAll(re *regexp.Regexp, repl string) func(string) string {
	return func(s string) string {
		return re.ReplaceAllString(s, repl)
	}
}

var (
	bodyRegex             = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)
	conditionalBlockRegex = regexp.MustCompile(`(?i)<!--\[if[^\]]*\]>[\s\S]*?<!\[endif\]-->`)
	conditionalOpenRegex  = regexp.MustCompile(`(?i)<!\[if[^\]]*\]>`)
	conditionalCloseRegex = regexp.MustCompile(`(?i)<!\[endif\]>`)
	styleBlockRegex       = regexp.MustCompile(`(?i)<style[^>]*>[\s\S]*?</style>`)
	scriptBlockRegex      = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`)
	xmlBlockRegex         = regexp.MustCompile(`(?i)<xml[^>]*>[\s\S]*?</xml>`)
	vendorNamespaceRegex  = regexp.MustCompile(`(?i)</?(?:w|o|v|m):[^>]*>`)
	commentRegex          = regexp.MustCompile(`<!--[\s\S]*?-->`)
	metaLinkRegex         = regexp.MustCompile(`(?i)</?(?:meta|link)\b[^>]*>`)
	containerRegex        = regexp.MustCompile(`(?i)</?(?:div|span|font)\b[^>]*>`)
	boldRegex             = regexp.MustCompile(`(?is)<b(?:\s[^>]*)?>(.*?)</b>`)
	italicRegex           = regexp.MustCompile(`(?is)<i(?:\s[^>]*)?>(.*?)</i>`)
	structuralAttrRegex   = regexp.MustCompile(`(?i)<(` + strings.Join(structuralTags, "|") + `)\s+[^>]*?>`)
	horizontalSpaceRegex  = regexp.MustCompile(`[ \t\x{00A0}]+`)
	newlineRegex          = regexp.MustCompile(`[\r\n]+`)
	inlineCloseRegex      = regexp.MustCompile(`(?i)</(strong|em|u|a)>`)
	spaceBeforePunctRegex = regexp.MustCompile(`\s+([.,;:!?])`)
	emptyElementRegexes   = emptyElementPatterns(emptyCollapsibleTags)
)

// emptyElementPasses catches empty parents left behind by removed children.
const emptyElementPasses = 3

// emptyElementPatterns builds one pattern per tag; RE2 has no back-references to
// pair an opening tag with its own closing tag.
func emptyElementPatterns(tags []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(tags))
	for i, tag := range tags {
		res[i] = regexp.MustCompile(`(?i)<` + tag + `>\s*</` + tag + `>`)
	}
	return res
}

func extractBody(html string) string {
	if m := bodyRegex.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return html
}

func collapseEmptyElements(html string) string {
	for pass := 0; pass < emptyElementPasses; pass++ {
		for _, re := range emptyElementRegexes {
			html = re.ReplaceAllString(html, "")
		}
	}
	return html
}

// vendorRewrites is the ordered vendor stripping sequence. Each rewrite consumes
// the output of the previous one.
var vendorRewrites = []rewrite{
	{"extract_body", extractBody},
	{"conditional_comments", func(s string) string {
		s = conditionalBlockRegex.ReplaceAllString(s, "")
		s = conditionalOpenRegex.ReplaceAllString(s, "")
		return conditionalCloseRegex.ReplaceAllString(s, "")
	}},
	{"style_blocks", replaceAll(styleBlockRegex, "")},
	{"script_blocks", replaceAll(scriptBlockRegex, "")},
	{"xml_blocks", replaceAll(xmlBlockRegex, "")},
	{"vendor_namespaces", replaceAll(vendorNamespaceRegex, "")},
	{"comments", replaceAll(commentRegex, "")},
	{"meta_link", replaceAll(metaLinkRegex, "")},
	{"unwrap_containers", replaceAll(containerRegex, "")},
	{"semantic_emphasis", func(s string) string {
		s = boldRegex.ReplaceAllString(s, "<strong>$1</strong>")
		return italicRegex.ReplaceAllString(s, "<em>$1</em>")
	}},
	{"structural_attributes", replaceAll(structuralAttrRegex, "<$1>")},
	{"anchors", normalizeAnchors},
	{"entities", func(s string) string {
		return replaceSpecialSpaces(nbspEntityRegex.ReplaceAllString(s, " "))
	}},
	{"empty_elements", collapseEmptyElements},
	{"whitespace", func(s string) string {
		s = horizontalSpaceRegex.ReplaceAllString(s, " ")
		s = newlineRegex.ReplaceAllString(s, " ")
		s = inlineCloseRegex.ReplaceAllString(s, "</$1> ")
		s = spaceBeforePunctRegex.ReplaceAllString(s, "$1")
		s = multiSpaceRegex.ReplaceAllString(s, " ")
		return strings.TrimSpace(s)
	}},
}

// StripVendorMarkup reduces a word processor export to body-level semantic markup.
// It is best effort: if any rewrite fails the original input is returned together
// with an error wrapping ErrVendorCleanup.
func StripVendorMarkup(html string) (out string, err error) {
	current := ""
	defer func() {
		if r := recover(); r != nil {
			out = html
			err = fmt.Errorf("%w: %s: %v", ErrVendorCleanup, current, r)
		}
	}()

	out = html
	for _, rw := range vendorRewrites {
		current = rw.name
		out = rw.fn(out)
	}
	return out, nil
}
