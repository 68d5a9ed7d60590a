package paste

import (
	"regexp"
	"strings"
)

const (
	// headingPrefix matches "H2:", "h3 Title:", "H1 Tag:" and friends.
	headingPrefix = `H([1-4])(?:\s+(?:Title|Tag))?\s*:`

	// paragraphOpen matches <p> with or without attributes.
	paragraphOpen = `<p(?:\s[^>]*)?>`
)

var (
	// <p><strong>H2: text</strong></p>
	emphasizedPrefixRegex = regexp.MustCompile(`(?i)` + paragraphOpen + `\s*<(strong|em|b|i|u)>\s*` + headingPrefix + `\s*([^<]+)</(strong|em|b|i|u)>\s*</p>`)

	// <p>H2: text</p>
	paragraphPrefixRegex = regexp.MustCompile(`(?i)` + paragraphOpen + `\s*` + headingPrefix + `\s*([^<]+)</p>`)

	// <p><h3></h3><strong>text</strong></p>
	emptyHeadingRegex = regexp.MustCompile(`(?i)` + paragraphOpen + `\s*<h([1-4])>\s*</h([1-4])>\s*<(strong|em|b|i|u)>([^<]+)</(strong|em|b|i|u)>\s*</p>`)

	// <p><h2>text</h2></p>
	wrappedHeadingRegex = regexp.MustCompile(`(?i)` + paragraphOpen + `\s*<h([1-6])>([^<]*)</h([1-6])>\s*</p>`)

	// H2: text on a line of its own
	barePrefixRegex = regexp.MustCompile(`(?im)^H([1-4])(?:[ \t]+(?:Title|Tag))?[ \t]*:[ \t]*(.+)$`)
)

func heading(level, text string) string {
	return "<h" + level + ">" + text + "</h" + level + ">"
}

// DetectHeadings rewrites paragraphs and bare lines carrying an "Hn:" prefix into
// heading tags and unwraps headings nested in paragraphs. Matches whose text is
// empty are left alone.
func DetectHeadings(html string) string {
	result := emphasizedPrefixRegex.ReplaceAllStringFunc(html, func(match string) string {
		m := emphasizedPrefixRegex.FindStringSubmatch(match)
		text := strings.TrimSpace(m[3])
		if !strings.EqualFold(m[1], m[4]) || text == "" {
			return match
		}
		return heading(m[2], text)
	})

	result = paragraphPrefixRegex.ReplaceAllStringFunc(result, func(match string) string {
		m := paragraphPrefixRegex.FindStringSubmatch(match)
		text := strings.TrimSpace(m[2])
		if text == "" {
			return match
		}
		return heading(m[1], text)
	})

	result = emptyHeadingRegex.ReplaceAllStringFunc(result, func(match string) string {
		m := emptyHeadingRegex.FindStringSubmatch(match)
		text := strings.TrimSpace(m[4])
		if m[1] != m[2] || !strings.EqualFold(m[3], m[5]) || text == "" {
			return match
		}
		return heading(m[1], text)
	})

	result = wrappedHeadingRegex.ReplaceAllStringFunc(result, func(match string) string {
		m := wrappedHeadingRegex.FindStringSubmatch(match)
		if m[1] != m[3] {
			return match
		}
		return heading(m[1], m[2])
	})

	return barePrefixRegex.ReplaceAllStringFunc(result, func(match string) string {
		m := barePrefixRegex.FindStringSubmatch(match)
		text := strings.TrimSpace(m[2])
		if text == "" {
			return match
		}
		return heading(m[1], text)
	})
}
