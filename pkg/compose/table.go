package compose

import (
	"github.com/matzehuels/deckgen/pkg/canvas"
	"github.com/matzehuels/deckgen/pkg/pptx"
	"github.com/matzehuels/deckgen/pkg/tablegrid"
	"github.com/matzehuels/deckgen/pkg/textpolicy"
)

// column describes one table column: header label, relative width and
// the truncation site its cells belong to.
type column struct {
	name   string
	weight float64
	site   textpolicy.Site
}

func columnNames(cols []column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

func columnWeights(cols []column) []float64 {
	weights := make([]float64, len(cols))
	for i, c := range cols {
		weights[i] = c.weight
	}
	return weights
}

// tableSlides renders one logical table across as many slides as its
// pagination demands, repeating the header on every page and suffixing
// the title with the page position when there is more than one. Empty
// tables emit nothing.
func (d *deckBuilder) tableSlides(baseTitle string, cols []column, rows [][]tablegrid.Cell) {
	if len(rows) == 0 {
		d.logger.Debug("table section empty, skipping", "title", baseTitle)
		return
	}

	for i, row := range rows {
		rows[i] = squareRow(row, len(cols))
		for j := range rows[i] {
			rows[i][j].Text = textpolicy.TruncateAt(rows[i][j].Text, cols[j].site)
		}
	}

	spec := tablegrid.Spec{
		Header:    columnNames(cols),
		Rows:      rows,
		Weights:   columnWeights(cols),
		RowBudget: d.rowBudget,
	}
	for _, page := range tablegrid.Paginate(spec) {
		s := d.addSlide()
		d.addTitle(s, page.Title(baseTitle))
		d.addTablePage(s, cols, page)
	}
}

// squareRow clips or pads a row to exactly n cells. Ragged payload rows
// are tolerated rather than rejected.
func squareRow(row []tablegrid.Cell, n int) []tablegrid.Cell {
	if len(row) > n {
		return row[:n]
	}
	for len(row) < n {
		row = append(row, tablegrid.Cell{})
	}
	return row
}

// addTablePage places one paginated table page on the slide: centered,
// 80% of the content width, rows compressed to fit the page.
func (d *deckBuilder) addTablePage(s *pptx.Slide, cols []column, page tablegrid.Page) {
	content := d.canvas.ContentRect()
	width := content.Width * 0.8
	top := content.Top + 0.5
	header, body := tablegrid.RowHeights(len(page.Rows), content.Bottom()-top)

	rect := d.canvas.ClampRect(canvas.Rect{
		Left:   content.Left + (content.Width-width)/2,
		Top:    top,
		Width:  width,
		Height: header + body*float64(len(page.Rows)),
	})

	widths := tablegrid.ColumnWidths(columnWeights(cols), rect.Width)
	colWidths := make([]int64, len(widths))
	for i, w := range widths {
		colWidths[i] = pptx.Inch(w)
	}

	table := &pptx.Table{Box: box(rect), ColWidths: colWidths}

	hdr := pptx.TableRow{Height: pptx.Inch(header)}
	for _, c := range cols {
		font := d.theme.titleFont(sizeCell)
		hdr.Cells = append(hdr.Cells, pptx.TableCell{
			Paragraphs: []pptx.Paragraph{pptx.Text(c.name, font)},
			Fill:       d.theme.TitleBG,
			Anchor:     pptx.AnchorMiddle,
		})
	}
	table.Rows = append(table.Rows, hdr)

	for i, row := range page.Rows {
		fill := ""
		if tablegrid.DarkRow(i) {
			fill = d.theme.DarkRow
		}
		tr := pptx.TableRow{Height: pptx.Inch(body)}
		for _, cell := range row {
			tr.Cells = append(tr.Cells, d.tableCell(cell, fill))
		}
		table.Rows = append(table.Rows, tr)
	}

	s.Add(table)
}

// tableCell renders one grid cell. A cell carrying a URL expands to a
// label paragraph plus an underlined hyperlink paragraph in the link
// color, so label and link coexist in the cell.
func (d *deckBuilder) tableCell(cell tablegrid.Cell, fill string) pptx.TableCell {
	var paras []pptx.Paragraph
	for _, r := range cell.Runs() {
		font := d.theme.font(sizeCell, false)
		if r.Underline {
			font.Underline = true
			font.Color = d.theme.LinkColor
		}
		paras = append(paras, pptx.Paragraph{
			Runs: []pptx.Run{{Text: r.Text, Font: font, Hyperlink: r.URL}},
		})
	}
	return pptx.TableCell{Paragraphs: paras, Fill: fill, Anchor: pptx.AnchorMiddle}
}
