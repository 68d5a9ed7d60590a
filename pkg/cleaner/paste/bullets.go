package paste

import (
	"regexp"
	"strings"
)

// Bullet paragraphs are marked with private-use runes while runs are grouped.
const (
	bulletOpen  = "\uE000"
	bulletClose = "\uE001"
)

var (
	// paragraph text up to, but never across, its closing </p>
	bulletItemRegex = regexp.MustCompile(`(?i)` + paragraphOpen + `\s*(?:-|•|·)\s*((?:[^<]|<[^/]|</[^pP]|</[pP][^>])+)</p>\s*`)
	bulletRunRegex  = regexp.MustCompile(`(?:\x{E000}[^\x{E001}]*\x{E001})+`)
	bulletMarkRegex = regexp.MustCompile(`\x{E000}([^\x{E001}]*)\x{E001}`)
)

// DetectBullets fuses consecutive paragraphs that start with "-", "•" or "·" into
// one unordered list. Items keep their order, lose the glyph and stay on one line.
func DetectBullets(html string) string {
	if strings.Contains(html, bulletOpen) || strings.Contains(html, bulletClose) {
		return html
	}

	marked := bulletItemRegex.ReplaceAllStringFunc(html, func(match string) string {
		m := bulletItemRegex.FindStringSubmatch(match)
		if strings.TrimSpace(m[1]) == "" {
			return match
		}
		return bulletOpen + m[1] + bulletClose
	})

	return bulletRunRegex.ReplaceAllStringFunc(marked, func(run string) string {
		var sb strings.Builder
		sb.WriteString("<ul>")
		for _, m := range bulletMarkRegex.FindAllStringSubmatch(run, -1) {
			sb.WriteString("<li>")
			sb.WriteString(strings.TrimSpace(m[1]))
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
		return sb.String()
	})
}
