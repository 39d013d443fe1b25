package compose

import (
	"fmt"

	"github.com/matzehuels/deckgen/pkg/canvas"
	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/deck"
	"github.com/matzehuels/deckgen/pkg/pptx"
	"github.com/matzehuels/deckgen/pkg/tablegrid"
	"github.com/matzehuels/deckgen/pkg/textpolicy"
)

// buildGeneric runs the generic builders: title slide, one content
// slide per block, and a takeaways slide whenever the deck has more
// than one block.
func (d *deckBuilder) buildGeneric(p *deck.Payload) {
	title := fmt.Sprintf("Business Analysis: %s", p.SearchPhrase)
	d.prs.Properties.Title = title
	d.addTitleSlide(title, "Comprehensive Analysis & Strategic Insights")

	for _, block := range p.Slides {
		d.addContentSlide(block)
	}
	if len(p.Slides) > 1 {
		d.addTakeawaysSlide(p.Slides)
	}
}

// addContentSlide lays out one block: headline and body text on the
// left, chart on the right, table underneath. Each part is optional and
// skipped when its data is empty.
func (d *deckBuilder) addContentSlide(b deck.ContentBlock) {
	s := d.addSlide()
	if _, ok := chart.ParseHex(b.BackgroundColor); ok {
		s.Background = b.BackgroundColor
	}
	d.addTitle(s, fallback(b.Title, "Content Slide"))

	content := d.canvas.ContentRect()
	if b.Headline != "" || b.Content != "" {
		var paras []pptx.Paragraph
		if b.Headline != "" {
			paras = append(paras, pptx.Text(
				textpolicy.TruncateAt(b.Headline, textpolicy.SiteHeadline),
				d.theme.font(sizeHeadline, true),
			))
			if b.Content != "" {
				paras = append(paras, pptx.Paragraph{})
			}
		}
		if b.Content != "" {
			paras = append(paras, pptx.Text(
				textpolicy.TruncateAt(b.Content, textpolicy.SiteBody),
				d.theme.font(d.theme.BodySize, false),
			))
		}

		text := d.canvas.ClampRect(canvas.Rect{
			Left:   content.Left,
			Top:    content.Top,
			Width:  content.Width * 0.6,
			Height: 3,
		})
		s.Add(&pptx.TextBox{
			Box:          box(text),
			Paragraphs:   paras,
			WordWrap:     true,
			AutofitScale: pptx.AutofitNormal,
		})
	}

	if b.HasChart() {
		d.addChart(s, blockChartSpec(b), canvas.Rect{
			Left:   content.Right() - 4,
			Top:    content.Top,
			Width:  4,
			Height: 3,
		})
	}

	if b.HasTable() {
		d.addInlineTable(s, b.TableData)
	}
}

// blockChartSpec maps a block's chart data onto a render spec. The
// chart's own title wins over the block title.
func blockChartSpec(b deck.ContentBlock) chart.Spec {
	cd := b.ChartData
	return chart.Spec{
		Kind:    chart.Kind(b.ChartType),
		Title:   fallback(cd.Title, b.Title),
		Labels:  cd.Labels,
		Values:  cd.Values,
		Palette: cd.Colors,
	}
}

// addInlineTable places a block's table below the text region. Inline
// tables clip at the row budget instead of paginating; tables meant to
// span slides go through tableSlides.
func (d *deckBuilder) addInlineTable(s *pptx.Slide, td *deck.TableData) {
	budget := d.rowBudget
	if budget <= 0 {
		budget = tablegrid.DefaultRowBudget
	}
	src := td.Rows
	if len(src) > budget {
		src = src[:budget]
	}

	cols := make([]column, len(td.Headers))
	for i, h := range td.Headers {
		cols[i] = column{name: h, weight: 1, site: textpolicy.SiteCellMedium}
	}
	rows := make([][]tablegrid.Cell, len(src))
	for i, row := range src {
		cells := make([]tablegrid.Cell, 0, len(row))
		for _, v := range row {
			cells = append(cells, tablegrid.Cell{Text: textpolicy.TruncateAt(string(v), textpolicy.SiteCellMedium)})
		}
		rows[i] = squareRow(cells, len(cols))
	}

	d.addTablePage(s, cols, tablegrid.Page{Rows: rows, Index: 0, Total: 1})
}

// addTakeawaysSlide closes a multi-block deck with the key findings and
// the recommended next steps.
func (d *deckBuilder) addTakeawaysSlide(blocks []deck.ContentBlock) {
	s := d.addSlide()
	d.addTitle(s, "Key Takeaways & Next Steps")

	paras := []pptx.Paragraph{
		pptx.Text("Summary of Key Findings:", d.theme.font(sizeHeadline, true)),
	}
	for i, b := range blocks {
		if i == 4 {
			break
		}
		title := fallback(b.Title, fmt.Sprintf("Point %d", i+1))
		paras = append(paras, pptx.Text(
			fmt.Sprintf("• %s: Strategic importance for business growth", title),
			d.theme.font(d.theme.BodySize, false),
		))
	}

	paras = append(paras,
		pptx.Paragraph{},
		pptx.Text("Recommended Next Steps:", d.theme.font(sizeNextSteps, true)),
	)
	for _, step := range []string{
		"Develop detailed implementation roadmap",
		"Allocate necessary resources and budget",
		"Establish key performance indicators",
		"Begin pilot program execution",
	} {
		paras = append(paras, pptx.Text("• "+step, d.theme.font(d.theme.BodySize, false)))
	}

	s.Add(&pptx.TextBox{
		Box:        box(d.canvas.ContentRect()),
		Paragraphs: paras,
		WordWrap:   true,
	})
}
