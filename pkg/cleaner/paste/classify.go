package paste

import (
	"regexp"
	"strings"
)

// Classification is the outcome of inspecting pasted content once, before any rewriting.
type Classification int

const (
	// NotMarkup is plain text; it is inserted verbatim.
	NotMarkup Classification = iota
	// AlreadyClean is markup that already satisfies the semantic vocabulary.
	AlreadyClean
	// NeedsCleaning is markup that has to go through the normalization stages.
	NeedsCleaning
)

// String returns the classification name.
func (c Classification) String() string {
	switch c {
	case NotMarkup:
		return "not_markup"
	case AlreadyClean:
		return "already_clean"
	case NeedsCleaning:
		return "needs_cleaning"
	default:
		return "unknown"
	}
}

// MarshalText renders the classification name in JSON and YAML reports.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Route is the code path picked for a piece of content.
type Route int

const (
	// RouteVerbatim inserts the content unchanged.
	RouteVerbatim Route = iota
	// RoutePlainText inserts the plain-text form of the content instead of its markup.
	RoutePlainText
	// RouteVendorCleanup runs every stage, vendor stripping included.
	RouteVendorCleanup
	// RouteNormalize runs every stage except vendor stripping.
	RouteNormalize
)

// String returns the route name.
func (r Route) String() string {
	switch r {
	case RouteVerbatim:
		return "verbatim"
	case RoutePlainText:
		return "plain_text"
	case RouteVendorCleanup:
		return "vendor_cleanup"
	case RouteNormalize:
		return "normalize"
	default:
		return "unknown"
	}
}

// MarshalText renders the route name in JSON and YAML reports.
func (r Route) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Cleans reports whether the route runs the normalization stages.
func (r Route) Cleans() bool {
	return r == RouteVendorCleanup || r == RouteNormalize
}

var (
	tagNameRegex     = regexp.MustCompile(`(?i)</?([a-z][a-z0-9:._-]*)[^>]*>`)
	anchorAttrsRegex = regexp.MustCompile(`(?i)<a\s+([^>]*)>`)
	cleanAnchorRegex = regexp.MustCompile(`^href="[^"]*"$`)
	styleAttrRegex   = regexp.MustCompile(`style="[^"]*"`)
	classAttrRegex   = regexp.MustCompile(`class="[^"]*"`)
)

// IsMarkup reports whether content contains at least one '<' and one '>'.
func IsMarkup(content string) bool {
	return strings.Contains(content, "<") && strings.Contains(content, ">")
}

// IsAlreadyClean reports whether content uses only the semantic vocabulary with
// no attributes other than a lone href on anchors. It is a structural whitelist
// check, not a parse.
func IsAlreadyClean(content string) bool {
	if _, dirty := containsAny(content, dirtyMarkers); dirty {
		return false
	}

	for _, m := range tagNameRegex.FindAllStringSubmatch(content, -1) {
		if !IsAllowedTag(m[1]) {
			return false
		}
	}

	for _, m := range anchorAttrsRegex.FindAllStringSubmatch(content, -1) {
		if !cleanAnchorRegex.MatchString(strings.TrimSpace(m[1])) {
			return false
		}
	}
	return true
}

// NeedsVendorCleanup reports whether content looks like a word processor export,
// using DefaultVendorStyleThreshold for the inline styling heuristic.
func NeedsVendorCleanup(content string) bool {
	return needsVendorCleanup(content, DefaultVendorStyleThreshold)
}

func needsVendorCleanup(content string, threshold int) bool {
	if _, ok := containsAny(content, vendorMarkers); ok {
		return true
	}
	return isFullDocument(content) && excessiveStyling(content, threshold)
}

func isFullDocument(content string) bool {
	return strings.Contains(content, "<html") &&
		strings.Contains(content, "<head") &&
		strings.Contains(content, "<body")
}

func excessiveStyling(content string, threshold int) bool {
	styles := len(styleAttrRegex.FindAllStringIndex(content, -1))
	classes := len(classAttrRegex.FindAllStringIndex(content, -1))
	return styles > threshold || classes > threshold
}

// IsEditorCodeExport reports whether content is syntax-highlighted source copied
// from a code editor: HTML-encoded angle brackets plus monospace or charset markers.
// Such content is better inserted as plain text.
func IsEditorCodeExport(content string) bool {
	if !strings.Contains(content, "&lt;") || !strings.Contains(content, "&gt;") {
		return false
	}
	_, ok := containsAny(content, codeExportMarkers)
	return ok
}

// Classify computes the three-way classification of content.
func Classify(content string) Classification {
	switch {
	case !IsMarkup(content):
		return NotMarkup
	case IsAlreadyClean(content):
		return AlreadyClean
	default:
		return NeedsCleaning
	}
}

// MatchedMarkers lists the dirty and vendor markers found in content, in
// declaration order and without duplicates.
func MatchedMarkers(content string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, list := range [][]string{vendorMarkers, dirtyMarkers} {
		for _, m := range list {
			if !seen[m] && strings.Contains(content, m) {
				seen[m] = true
				found = append(found, m)
			}
		}
	}
	return found
}
