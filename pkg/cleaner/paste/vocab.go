package paste

import "strings"

// AllowedTags is the closed vocabulary of semantic tags that clean output may contain.
var AllowedTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"strong": true, "em": true, "u": true,
	"ul": true, "ol": true, "li": true,
	"a": true, "br": true,
	"blockquote": true, "pre": true, "code": true,
	"span": true, "div": true,
}

// AllowedAttributes lists, per tag, the only attributes clean output may carry.
var AllowedAttributes = map[string][]string{
	"a": {"href"},
}

// IsAllowedTag reports whether name (any case) belongs to the semantic vocabulary.
func IsAllowedTag(name string) bool {
	return AllowedTags[strings.ToLower(name)]
}

// dirtyMarkers disqualify content from the already-clean fast path.
var dirtyMarkers = []string{
	// Word/Office
	"xmlns:w=",
	"xmlns:o=",
	"xmlns:m=",
	"<w:",
	"<o:",
	`class="Mso`,
	"urn:schemas-microsoft-com",
	"StartFragment",
	"EndFragment",
	"/* Style Definitions */",

	// full document scaffolding
	"<html",
	"<head",
	"<body",
	"<!DOCTYPE",

	// attributes
	"style=",
	"class=",
	"id=",
	"data-",

	// metadata
	"<meta",
	"<link",
	"<style",
	"<script",
}

// vendorMarkers identify exports from heavyweight document editors.
var vendorMarkers = []string{
	`xmlns:w="urn:schemas-microsoft-com:office:word"`,
	`xmlns:o="urn:schemas-microsoft-com:office:office"`,
	`xmlns:m="http://schemas.microsoft.com/office`,
	"<w:",
	"<o:",
	`class="Mso`,
	"urn:schemas-microsoft-com",
	"StartFragment",
	"EndFragment",
	"<style>\n<!--",
	"/* Style Definitions */",
}

// codeExportMarkers accompany HTML-encoded source copied from a code editor.
var codeExportMarkers = []string{
	"cascadia code",
	"monospace",
	"<meta charset",
}

// semanticRenames maps legacy presentational tags to their semantic equivalents.
var semanticRenames = map[string]string{
	"b": "strong",
	"i": "em",
}

// structuralTags lose all attributes during vendor stripping.
var structuralTags = []string{
	"p", "h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li",
	"strong", "em", "u", "br",
	"table", "thead", "tbody", "tr", "th", "td",
	"blockquote", "pre", "code",
}

// emptyCollapsibleTags are removed when they contain only whitespace.
var emptyCollapsibleTags = []string{
	"p", "h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li",
	"strong", "em", "u",
	"table", "thead", "tbody", "tr", "th", "td",
	"blockquote", "pre", "code",
}

// droppedContentTags are removed together with everything inside them.
var droppedContentTags = map[string]bool{
	"head": true, "title": true, "style": true, "script": true,
	"xml": true, "template": true, "noscript": true, "object": true,
	"iframe": true, "noembed": true, "noframes": true,
	// raw text elements: the tokenizer returns their bodies as unparsed text
	"xmp": true, "textarea": true, "plaintext": true,
}

// spacedTags are block-like tags outside the vocabulary; unwrapping one leaves a space
// so neighbouring words stay apart.
var spacedTags = map[string]bool{
	"table": true, "thead": true, "tbody": true, "tfoot": true,
	"tr": true, "td": true, "th": true, "caption": true,
	"section": true, "article": true, "header": true, "footer": true,
	"aside": true, "nav": true, "main": true, "figure": true, "figcaption": true,
	"dl": true, "dt": true, "dd": true, "hr": true, "img": true,
	"address": true, "center": true, "body": true, "html": true,
}

func containsAny(s string, needles []string) (string, bool) {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return n, true
		}
	}
	return "", false
}
