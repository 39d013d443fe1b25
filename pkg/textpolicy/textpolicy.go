// Package textpolicy caps text length before placement so oversized input
// can never overflow a slide region. Limits are keyed by usage site, not a
// single global constant: wide free-text regions tolerate far more
// characters than a narrow table cell.
package textpolicy

// Ellipsis is appended when text is cut. It consumes three characters of
// the site's budget, so truncated output never exceeds the limit.
const Ellipsis = "..."

// Site identifies where a piece of text will be placed.
type Site int

const (
	// SiteTitle is the slide title band.
	SiteTitle Site = iota
	// SiteHeadline is the bold lead-in line of a content slide.
	SiteHeadline
	// SiteSummary is the wide free-text region of a summary slide.
	SiteSummary
	// SiteBody is the main text region of a generic content slide.
	SiteBody
	// SiteCellShort is a narrow table cell (names, categories, levels).
	SiteCellShort
	// SiteCellMedium is a mid-width table cell (sources, impact areas).
	SiteCellMedium
	// SiteCellLong is a wide table cell (justifications, rationale).
	SiteCellLong
)

// limits maps each site to its character budget.
var limits = map[Site]int{
	SiteTitle:      120,
	SiteHeadline:   200,
	SiteSummary:    800,
	SiteBody:       800,
	SiteCellShort:  100,
	SiteCellMedium: 150,
	SiteCellLong:   300,
}

// Limit returns the character budget for a site.
func Limit(site Site) int {
	if n, ok := limits[site]; ok {
		return n
	}
	return limits[SiteBody]
}

// Truncate caps s at max characters. If truncation occurs, the result ends
// with the ellipsis marker and is exactly max characters long. Truncation
// counts runes, not bytes, so multibyte text is never cut mid-character.
//
// Truncate is idempotent: an already-short string passes through, and
// re-truncating at the same limit is a fixed point.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	if max <= len(Ellipsis) {
		return Ellipsis[:max]
	}

	return string(runes[:max-len(Ellipsis)]) + Ellipsis
}

// TruncateAt caps s at the budget of the given site.
func TruncateAt(s string, site Site) string {
	return Truncate(s, Limit(site))
}
