package paste

import (
	"regexp"
	"strings"
)

// An href attribute is the name "href" preceded by whitespace, an '=' with optional
// whitespace around it, and a double-quoted, single-quoted or unquoted value.
// Values are kept byte-for-byte; entities are not decoded.
var (
	hrefAttrRegex   = regexp.MustCompile("(?i)\\shref\\s*=\\s*(?:\"([^\"]*)\"|'([^']*)'|([^\\s\"'=<>`]+))")
	anchorOpenRegex = regexp.MustCompile(`(?i)<a\s[^>]*>`)
)

// anchorHref extracts the first href value from the text of an opening anchor tag.
// An empty value counts as no href.
func anchorHref(tag string) (string, bool) {
	m := hrefAttrRegex.FindStringSubmatch(tag)
	if m == nil {
		return "", false
	}
	for _, v := range m[1:] {
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// formatAnchor renders the canonical opening tag for href.
func formatAnchor(href string) string {
	return `<a href="` + strings.ReplaceAll(href, `"`, "&quot;") + `">`
}

// normalizeAnchors rewrites every opening anchor that carries an href to
// <a href="value">. Anchors without a recognizable href are left as they are.
func normalizeAnchors(html string) string {
	return anchorOpenRegex.ReplaceAllStringFunc(html, func(tag string) string {
		href, ok := anchorHref(tag)
		if !ok {
			return tag
		}
		return formatAnchor(href)
	})
}
