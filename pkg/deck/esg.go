package deck

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// ESG is the research payload: an executive summary, sentiment share
// percentages, per-region theme data, impact analysis rows and the data
// sources behind them. Title and Subtitle are optional; builders derive
// fallbacks from the search phrase.
type ESG struct {
	Title            string           `json:"title,omitempty"`
	Subtitle         string           `json:"subtitle,omitempty"`
	ExecutiveSummary string           `json:"executiveSummary"`
	SentimentSummary SentimentSummary `json:"sentimentSummary"`
	RegionalData     RegionalData     `json:"regionalData"`
	ImpactAnalysis   []ImpactEntry    `json:"impactAnalysis"`
	DataSources      []DataSource     `json:"dataSources"`
}

// SentimentSummary maps sentiment labels to their percentage share.
// The canonical labels are Positive, Neutral and Negative; extra labels
// are carried along and ordered after them.
type SentimentSummary map[string]int

// sentimentOrder fixes the presentation order of the canonical labels so
// charts and legends render identically across builds.
var sentimentOrder = []string{"Positive", "Neutral", "Negative"}

// Ordered returns labels and values in presentation order: canonical
// sentiment labels first, remaining labels sorted.
func (s SentimentSummary) Ordered() ([]string, []float64) {
	labels := make([]string, 0, len(s))
	for _, l := range sentimentOrder {
		if _, ok := s[l]; ok {
			labels = append(labels, l)
		}
	}
	extras := make([]string, 0)
	for l := range s {
		if !slices.Contains(sentimentOrder, l) {
			extras = append(extras, l)
		}
	}
	slices.Sort(extras)
	labels = append(labels, extras...)

	values := make([]float64, len(labels))
	for i, l := range labels {
		values[i] = float64(s[l])
	}
	return labels, values
}

// Total returns the sum of all percentage values.
func (s SentimentSummary) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Normalize rescales the percentages to sum to exactly 100. All labels
// but the last in presentation order are rounded; the last absorbs the
// remainder so the total is exact. A summary that already sums to 100,
// or has no labels, is left untouched.
func (s SentimentSummary) Normalize() {
	labels, _ := s.Ordered()
	if len(labels) == 0 {
		return
	}
	total := s.Total()
	if total == 100 {
		return
	}
	factor := 1.0
	if total > 0 {
		factor = 100 / float64(total)
	}
	rest := 0
	for _, l := range labels[:len(labels)-1] {
		s[l] = int(math.Round(float64(s[l]) * factor))
		rest += s[l]
	}
	s[labels[len(labels)-1]] = 100 - rest
}

// RegionalData maps region → country → ESG category → theme entries.
type RegionalData map[string]map[string]CategoryThemes

// CategoryThemes maps an ESG category (Environmental, Social,
// Governance) to its reported themes.
type CategoryThemes map[string][]ThemeEntry

// categoryOrder fixes the presentation order of the canonical categories.
var categoryOrder = []string{"Environmental", "Social", "Governance"}

// Regions returns the region names in sorted order.
func (rd RegionalData) Regions() []string {
	return slices.Sorted(maps.Keys(rd))
}

// Countries returns the country names of a region in sorted order.
func (rd RegionalData) Countries(region string) []string {
	return slices.Sorted(maps.Keys(rd[region]))
}

// Empty reports whether no theme entries exist anywhere. The default
// regional skeleton has regions and countries but no entries, so builders
// check Empty rather than len.
func (rd RegionalData) Empty() bool {
	for _, countries := range rd {
		for _, categories := range countries {
			for _, entries := range categories {
				if len(entries) > 0 {
					return false
				}
			}
		}
	}
	return true
}

// Categories returns category names in presentation order: canonical ESG
// categories first, remaining categories sorted.
func (ct CategoryThemes) Categories() []string {
	names := make([]string, 0, len(ct))
	for _, c := range categoryOrder {
		if _, ok := ct[c]; ok {
			names = append(names, c)
		}
	}
	extras := make([]string, 0)
	for c := range ct {
		if !slices.Contains(categoryOrder, c) {
			extras = append(extras, c)
		}
	}
	slices.Sort(extras)
	return append(names, extras...)
}

// ThemeEntry is one reported theme within a country and category.
type ThemeEntry struct {
	Theme         string `json:"theme"`
	Sentiment     string `json:"sentiment"`
	ArticleCount  int    `json:"articleCount"`
	Justification string `json:"justification"`
}

// ImpactEntry is one row of the impact analysis table.
type ImpactEntry struct {
	Country     string `json:"country"`
	Theme       string `json:"theme"`
	ImpactArea  string `json:"impactArea"`
	ImpactLevel string `json:"impactLevel"`
	Rationale   string `json:"rationale"`
}

// DataSource is one entry of the sources table. URL, when present, is
// rendered as a hyperlink run inside the source cell.
type DataSource struct {
	Source           string `json:"source"`
	ReliabilityScore string `json:"reliabilityScore"`
	Justification    string `json:"justification"`
	URL              string `json:"url,omitempty"`
}

// ApplyDefaults fills the optional sections that upstream research
// sometimes omits, then normalizes the sentiment percentages. Defaults
// are phrased around the search phrase where text is needed.
func (e *ESG) ApplyDefaults(phrase string) {
	if e.ExecutiveSummary == "" {
		e.ExecutiveSummary = fmt.Sprintf(
			"ESG analysis for %s focusing on environmental, social, and governance factors.", phrase)
	}
	if e.SentimentSummary == nil {
		e.SentimentSummary = SentimentSummary{"Positive": 60, "Neutral": 25, "Negative": 15}
	}
	e.SentimentSummary.Normalize()
	if e.RegionalData == nil {
		e.RegionalData = RegionalData{
			"North America": {
				"United States": {"Environmental": {}, "Social": {}, "Governance": {}},
			},
		}
	}
	if e.DataSources == nil {
		e.DataSources = []DataSource{{
			Source:           "Industry Research",
			ReliabilityScore: "7/10",
			Justification:    "General industry analysis",
			URL:              "https://example.com",
		}}
	}
}
