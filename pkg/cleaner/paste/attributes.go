package paste

import "regexp"

// strippedAttributes are removed from every tag in any quoting style.
const strippedAttributes = `data-[\w.:-]*|aria-[\w-]*|class|id|style|role|title|rel|target|contenteditable|spellcheck|tabindex|dir|lang`

var (
	openTagRegex          = regexp.MustCompile(`<[a-zA-Z][^<>]*>`)
	unwantedAttrRegex     = regexp.MustCompile("(?i)\\s(?:" + strippedAttributes + ")\\s*=\\s*(?:\"[^\"]*\"|'[^']*'|[^\\s\"'=<>`]+)")
	tagWhitespaceRegex    = regexp.MustCompile(`\s{2,}`)
	tagTrailingSpaceRegex = regexp.MustCompile(`\s+(/?>)$`)
)

// StripAttributes removes presentational and behavioural attributes together with
// any <meta> and <link> elements. Anchors are normalized to a lone
// href="value" before and after the purge. Text between tags is not touched.
func StripAttributes(html string) string {
	result := metaLinkRegex.ReplaceAllString(html, "")
	result = normalizeAnchors(result)

	result = openTagRegex.ReplaceAllStringFunc(result, func(tag string) string {
		tag = unwantedAttrRegex.ReplaceAllString(tag, "")
		tag = tagWhitespaceRegex.ReplaceAllString(tag, " ")
		return tagTrailingSpaceRegex.ReplaceAllString(tag, "$1")
	})

	return normalizeAnchors(result)
}
