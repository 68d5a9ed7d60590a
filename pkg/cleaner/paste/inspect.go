package paste

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// inventory is what a document contains, as seen by an HTML parser.
type inventory struct {
	hrefs []string
	tags  map[string]int
}

// takeInventory lists the distinct non-empty anchor hrefs of markup, in document
// order, and counts its elements by tag name.
func takeInventory(markup string) (*inventory, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	inv := &inventory{tags: make(map[string]int)}
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || seen[href] {
			return
		}
		seen[href] = true
		inv.hrefs = append(inv.hrefs, href)
	})

	// html, head and body are implied by the parser and not counted
	doc.Find("*").Not("html, head, body").Each(func(_ int, s *goquery.Selection) {
		inv.tags[goquery.NodeName(s)]++
	})
	return inv, nil
}

// missingHrefs returns the hrefs of before that after no longer carries.
func missingHrefs(before, after *inventory) []string {
	kept := make(map[string]bool, len(after.hrefs))
	for _, h := range after.hrefs {
		kept[h] = true
	}
	var missing []string
	for _, h := range before.hrefs {
		if !kept[h] {
			missing = append(missing, h)
		}
	}
	return missing
}

// removedTags returns, per tag name, how many more elements before had than after.
func removedTags(before, after *inventory) map[string]int {
	removed := make(map[string]int)
	for tag, n := range before.tags {
		if d := n - after.tags[tag]; d > 0 {
			removed[tag] = d
		}
	}
	return removed
}

// CountAnchors returns the number of distinct non-empty hrefs in markup.
func CountAnchors(markup string) int {
	inv, err := takeInventory(markup)
	if err != nil {
		return 0
	}
	return len(inv.hrefs)
}
