// Package tablegrid computes the physical layout of tabular content:
// slicing body rows into fixed-budget pages, deriving proportional column
// widths from relative weights, and sizing rows so a whole page always
// fits the vertical space it was given.
//
// The engine is pure layout. It never touches a slide; builders consume
// its pages and widths when placing table shapes.
package tablegrid

import (
	"fmt"
	"math"
)

const eps = 1e-9

// DefaultRowBudget is the maximum number of body rows per physical page.
const DefaultRowBudget = 10

// Row heights in inches.
const (
	// HeaderHeight is the fixed height of the repeated header row.
	HeaderHeight = 0.5
	// PreferredRowHeight is the body row height when space allows.
	PreferredRowHeight = 0.4
	// MinRowHeight is the floor below which rows stop compressing; cell
	// text below the floor relies on shape autofit, not geometric growth.
	MinRowHeight = 0.3
)

// Cell is one table cell: display text plus an optional hyperlink.
type Cell struct {
	Text string
	URL  string
}

// Run is one styled text run inside a cell.
type Run struct {
	Text      string
	URL       string
	Underline bool
}

// Runs expands a cell into its text runs. A cell with a URL yields the
// label run followed by a second underlined run carrying the hyperlink,
// so label and link coexist in one cell.
func (c Cell) Runs() []Run {
	if c.URL == "" {
		return []Run{{Text: c.Text}}
	}
	return []Run{
		{Text: c.Text},
		{Text: c.URL, URL: c.URL, Underline: true},
	}
}

// Spec describes one logical table before pagination.
type Spec struct {
	Header    []string
	Rows      [][]Cell
	Weights   []float64 // relative column weights, len == len(Header)
	RowBudget int       // max body rows per page; DefaultRowBudget when <= 0
}

// Page is a contiguous slice of at most RowBudget body rows. Pages are
// derived values: recomputed on every Paginate call, never cached.
type Page struct {
	Rows  [][]Cell
	Index int // 0-based page index
	Total int // total page count for the logical table
}

// Title decorates a base slide title with the page position. Single-page
// tables keep the bare title.
func (p Page) Title(base string) string {
	if p.Total <= 1 {
		return base
	}
	return fmt.Sprintf("%s (Page %d of %d)", base, p.Index+1, p.Total)
}

// Paginate slices the spec's body rows into contiguous pages of at most
// RowBudget rows. Page count is ceil(rows/budget); the last page may be
// shorter. An empty table yields no pages.
func Paginate(spec Spec) []Page {
	budget := spec.RowBudget
	if budget <= 0 {
		budget = DefaultRowBudget
	}
	if len(spec.Rows) == 0 {
		return nil
	}

	total := (len(spec.Rows) + budget - 1) / budget
	pages := make([]Page, 0, total)
	for start := 0; start < len(spec.Rows); start += budget {
		end := start + budget
		if end > len(spec.Rows) {
			end = len(spec.Rows)
		}
		pages = append(pages, Page{
			Rows:  spec.Rows[start:end],
			Index: start / budget,
			Total: total,
		})
	}
	return pages
}

// ColumnWidths distributes total width across columns in proportion to
// their weights. Weights are normalized by their sum, not assumed
// pre-normalized; non-positive weights contribute nothing. A zero or
// empty weight vector degrades to a uniform split.
func ColumnWidths(weights []float64, total float64) []float64 {
	if len(weights) == 0 {
		return nil
	}

	var sum float64
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}

	widths := make([]float64, len(weights))
	if sum <= eps {
		unit := total / float64(len(weights))
		for i := range widths {
			widths[i] = unit
		}
		return widths
	}

	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		widths[i] = total * w / sum
	}
	return widths
}

// UniformWeights returns a weight vector of n equal entries.
func UniformWeights(n int) []float64 {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// RowHeights returns the header height and the uniform body row height for
// a page of bodyRows rows in avail vertical inches. Rows compress from the
// preferred height down to the floor before they would be clipped.
func RowHeights(bodyRows int, avail float64) (header, body float64) {
	header = HeaderHeight
	if bodyRows <= 0 {
		return header, 0
	}

	body = (avail - header) / float64(bodyRows)
	body = math.Min(body, PreferredRowHeight)
	body = math.Max(body, MinRowHeight)
	return header, body
}

// DarkRow reports whether a body row gets the dark zebra fill. Parity is
// computed from the row's index within its physical page, not across the
// whole logical table, so striping can reset at page boundaries. That is
// the observed surface behavior and is preserved, not corrected.
func DarkRow(rowIndex int) bool {
	return rowIndex%2 == 0
}
