package paste

import (
	"strings"

	"golang.org/x/net/html"
)

// EnforceVocabulary re-emits every allowed tag bare and lower-case, keeps only the
// href of anchors and turns <b> and <i> into <strong> and <em>. Every other tag is
// unwrapped; comments, doctypes and the content of non-rendered elements such as
// <style> and <script> are dropped. Text is copied byte-for-byte, so entities
// survive as written.
func EnforceVocabulary(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var sb strings.Builder
	sb.Grow(len(markup))

	skipDepth := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a malformed tail; either way the rest is unusable
			break
		}

		// Raw must be copied before TagName, which lower-cases the buffer in place.
		raw := string(z.Raw())

		switch tt {
		case html.TextToken:
			if skipDepth == 0 {
				sb.WriteString(raw)
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := rename(string(name))
			if droppedContentTags[tag] {
				if tt == html.StartTagToken {
					skipDepth++
				}
				continue
			}
			if skipDepth > 0 {
				continue
			}
			writeStartTag(&sb, tag, raw)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := rename(string(name))
			if droppedContentTags[tag] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if skipDepth > 0 {
				continue
			}
			writeEndTag(&sb, tag)

		case html.CommentToken, html.DoctypeToken:
			// dropped
		}
	}

	return sb.String()
}

func rename(tag string) string {
	if to, ok := semanticRenames[tag]; ok {
		return to
	}
	return tag
}

func writeStartTag(sb *strings.Builder, tag, raw string) {
	switch {
	case tag == "a":
		if href, ok := anchorHref(raw); ok {
			sb.WriteString(formatAnchor(href))
		} else {
			sb.WriteString("<a>")
		}
	case AllowedTags[tag]:
		sb.WriteString("<" + tag + ">")
	case spacedTags[tag]:
		sb.WriteByte(' ')
	}
}

func writeEndTag(sb *strings.Builder, tag string) {
	switch {
	case tag == "br":
		sb.WriteString("<br>")
	case AllowedTags[tag]:
		sb.WriteString("</" + tag + ">")
	case spacedTags[tag]:
		sb.WriteByte(' ')
	}
}
