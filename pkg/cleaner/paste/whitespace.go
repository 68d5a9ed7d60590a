package paste

import (
	"regexp"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// specialSpaces are rendered as a regular space.
var specialSpaces = map[rune]bool{
	'\u00a0': true, // no-break space
	'\u2007': true, // figure space
	'\u202f': true, // narrow no-break space
	'\u2009': true, // thin space
	'\u200a': true, // hair space
	'\u2003': true, // em space
	'\u2002': true, // en space
}

// zeroWidth characters are removed; editors flag them as invisible anomalies.
var zeroWidth = map[rune]bool{
	'\ufeff': true, // BOM / zero-width no-break space
	'\u200b': true, // zero-width space
	'\u200c': true, // zero-width non-joiner
	'\u200d': true, // zero-width joiner
}

var (
	nbspEntityRegex = regexp.MustCompile(`(?i)&nbsp;|&#160;|&#x0*a0;`)
	multiSpaceRegex = regexp.MustCompile(` {2,}`)
)

// spaceTransformer returns a fresh transformer; transformers carry state and are
// not shared between calls.
func spaceTransformer() transform.Transformer {
	return transform.Chain(
		runes.Remove(runes.Predicate(func(r rune) bool { return zeroWidth[r] })),
		runes.Map(func(r rune) rune {
			if specialSpaces[r] {
				return ' '
			}
			return r
		}),
	)
}

// replaceSpecialSpaces maps special spaces to ' ' and drops zero-width characters
// without collapsing anything.
func replaceSpecialSpaces(s string) string {
	out, _, err := transform.String(spaceTransformer(), s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeWhitespace converts non-breaking space entities and special Unicode
// spaces to plain spaces, deletes zero-width characters and collapses runs of
// spaces. It is idempotent.
func NormalizeWhitespace(html string) string {
	result := nbspEntityRegex.ReplaceAllString(html, " ")
	result = replaceSpecialSpaces(result)
	return multiSpaceRegex.ReplaceAllString(result, " ")
}

// countSpecialWhitespace counts the characters and entities NormalizeWhitespace rewrites.
func countSpecialWhitespace(s string) int {
	n := len(nbspEntityRegex.FindAllStringIndex(s, -1))
	for _, r := range s {
		if specialSpaces[r] || zeroWidth[r] {
			n++
		}
	}
	return n
}
