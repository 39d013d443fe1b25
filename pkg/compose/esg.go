package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/deckgen/pkg/canvas"
	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/deck"
	"github.com/matzehuels/deckgen/pkg/pptx"
	"github.com/matzehuels/deckgen/pkg/tablegrid"
	"github.com/matzehuels/deckgen/pkg/textpolicy"
)

var impactColumns = []column{
	{"Country", 1.0, textpolicy.SiteCellShort},
	{"Theme", 1.4, textpolicy.SiteCellMedium},
	{"Impact Area", 1.4, textpolicy.SiteCellMedium},
	{"Impact Level", 1.0, textpolicy.SiteCellShort},
	{"Rationale", 2.2, textpolicy.SiteCellLong},
}

var regionalColumns = []column{
	{"Country", 1.0, textpolicy.SiteCellShort},
	{"Category", 1.0, textpolicy.SiteCellShort},
	{"Theme", 1.6, textpolicy.SiteCellMedium},
	{"Sentiment", 1.0, textpolicy.SiteCellShort},
	{"Articles", 0.7, textpolicy.SiteCellShort},
}

var justificationColumns = []column{
	{"Country", 1.0, textpolicy.SiteCellShort},
	{"Theme", 1.3, textpolicy.SiteCellMedium},
	{"Sentiment", 0.9, textpolicy.SiteCellShort},
	{"Justification", 2.8, textpolicy.SiteCellLong},
}

var sourceColumns = []column{
	{"Source", 1.4, textpolicy.SiteCellMedium},
	{"Reliability", 0.9, textpolicy.SiteCellShort},
	{"Justification", 2.7, textpolicy.SiteCellLong},
}

// buildESG runs the ESG builders in their fixed order: title, summary
// with charts, impact tables, regional trend tables, then a divider
// ahead of the justification tables, and finally the source list.
func (d *deckBuilder) buildESG(p *deck.Payload) {
	esg := p.ESG
	title := fallback(esg.Title, fmt.Sprintf("ESG Analysis: %s", p.SearchPhrase))
	d.prs.Properties.Title = title
	d.addTitleSlide(title, fallback(esg.Subtitle, "Environmental, Social & Governance Insights"))

	d.addSummarySlide(esg)
	d.addImpactSlides(esg.ImpactAnalysis)
	d.addRegionalSlides(esg.RegionalData)

	if rows := justificationRows(esg.RegionalData); len(rows) > 0 {
		d.addDividerSlide("Detailed Findings")
		d.tableSlides("Sentiment Justifications", justificationColumns, rows)
	}

	d.addSourceSlides(esg.DataSources)
}

// addSummarySlide pairs the executive summary text with the sentiment
// charts: summary on the left, doughnut and regional breakdown stacked
// on the right.
func (d *deckBuilder) addSummarySlide(esg *deck.ESG) {
	s := d.addSlide()
	d.addTitle(s, "Executive Summary")

	content := d.canvas.ContentRect()
	text := canvas.Rect{
		Left:   content.Left,
		Top:    content.Top,
		Width:  content.Width * 0.55,
		Height: content.Height,
	}
	s.Add(&pptx.TextBox{
		Box: box(d.canvas.ClampRect(text)),
		Paragraphs: []pptx.Paragraph{pptx.Text(
			textpolicy.TruncateAt(esg.ExecutiveSummary, textpolicy.SiteSummary),
			d.theme.font(d.theme.BodySize, false),
		)},
		WordWrap:     true,
		AutofitScale: pptx.AutofitNormal,
	})

	chartLeft := text.Right() + 0.3
	chartWidth := content.Right() - chartLeft
	half := (content.Height - 0.3) / 2
	d.addChart(s, sentimentSpec(esg.SentimentSummary),
		canvas.Rect{Left: chartLeft, Top: content.Top, Width: chartWidth, Height: half})
	d.addChart(s, regionalSentimentSpec(esg.RegionalData),
		canvas.Rect{Left: chartLeft, Top: content.Top + half + 0.3, Width: chartWidth, Height: half})
}

// sentimentSpec shapes the sentiment counts into a doughnut in the
// canonical positive, neutral, negative order.
func sentimentSpec(s deck.SentimentSummary) chart.Spec {
	labels, values := s.Ordered()
	return chart.Spec{
		Kind:    chart.KindDoughnut,
		Title:   "Sentiment Distribution",
		Labels:  labels,
		Values:  values,
		Palette: chart.SentimentPalette,
	}
}

// regionalSentimentSpec aggregates theme article counts per region into
// stacked positive, neutral and negative series. Entries with any other
// sentiment label are left out of the chart.
func regionalSentimentSpec(rd deck.RegionalData) chart.Spec {
	regions := rd.Regions()
	pos := make([]float64, len(regions))
	neu := make([]float64, len(regions))
	neg := make([]float64, len(regions))
	for i, region := range regions {
		for _, country := range rd.Countries(region) {
			for _, entries := range rd[region][country] {
				for _, e := range entries {
					switch {
					case strings.EqualFold(e.Sentiment, "positive"):
						pos[i] += float64(e.ArticleCount)
					case strings.EqualFold(e.Sentiment, "neutral"):
						neu[i] += float64(e.ArticleCount)
					case strings.EqualFold(e.Sentiment, "negative"):
						neg[i] += float64(e.ArticleCount)
					}
				}
			}
		}
	}
	return chart.Spec{
		Kind:   chart.KindStackedBar,
		Title:  "Sentiment by Region",
		Labels: regions,
		Series: []chart.Series{
			{Name: "Positive", Values: pos},
			{Name: "Neutral", Values: neu},
			{Name: "Negative", Values: neg},
		},
		Palette: chart.SentimentPalette,
	}
}

// addImpactSlides renders the impact analysis as one paginated table.
func (d *deckBuilder) addImpactSlides(entries []deck.ImpactEntry) {
	rows := make([][]tablegrid.Cell, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []tablegrid.Cell{
			{Text: e.Country},
			{Text: e.Theme},
			{Text: e.ImpactArea},
			{Text: e.ImpactLevel},
			{Text: e.Rationale},
		})
	}
	d.tableSlides("Impact Analysis", impactColumns, rows)
}

// addRegionalSlides renders one paginated trend table per region, in
// sorted region order.
func (d *deckBuilder) addRegionalSlides(rd deck.RegionalData) {
	for _, region := range rd.Regions() {
		var rows [][]tablegrid.Cell
		for _, country := range rd.Countries(region) {
			themes := rd[region][country]
			for _, category := range themes.Categories() {
				for _, e := range themes[category] {
					rows = append(rows, []tablegrid.Cell{
						{Text: country},
						{Text: category},
						{Text: e.Theme},
						{Text: e.Sentiment},
						{Text: strconv.Itoa(e.ArticleCount)},
					})
				}
			}
		}
		d.tableSlides("Regional Trends: "+region, regionalColumns, rows)
	}
}

// justificationRows flattens the regional data into justification table
// rows, dropping entries that carry no justification text.
func justificationRows(rd deck.RegionalData) [][]tablegrid.Cell {
	var rows [][]tablegrid.Cell
	for _, region := range rd.Regions() {
		for _, country := range rd.Countries(region) {
			themes := rd[region][country]
			for _, category := range themes.Categories() {
				for _, e := range themes[category] {
					if e.Justification == "" {
						continue
					}
					rows = append(rows, []tablegrid.Cell{
						{Text: country},
						{Text: e.Theme},
						{Text: e.Sentiment},
						{Text: e.Justification},
					})
				}
			}
		}
	}
	return rows
}

// addSourceSlides renders the data sources as one paginated table. A
// source with a URL gets the link appended inside its source cell.
func (d *deckBuilder) addSourceSlides(sources []deck.DataSource) {
	rows := make([][]tablegrid.Cell, 0, len(sources))
	for _, src := range sources {
		rows = append(rows, []tablegrid.Cell{
			{Text: src.Source, URL: src.URL},
			{Text: src.ReliabilityScore},
			{Text: src.Justification},
		})
	}
	d.tableSlides("Data Sources", sourceColumns, rows)
}
