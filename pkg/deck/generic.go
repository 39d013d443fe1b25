package deck

import (
	"bytes"
	"encoding/json"
)

// ContentBlock is one generic slide's semantic payload: a title, an
// optional headline and body text, an optional inline chart and table,
// and an optional background color overriding the theme for that slide.
// Each block is consumed by exactly one builder.
type ContentBlock struct {
	Title           string     `json:"title"`
	Headline        string     `json:"headline,omitempty"`
	Content         string     `json:"content,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	ChartType       string     `json:"chartType,omitempty"`
	ChartData       *ChartData `json:"chartData,omitempty"`
	TableData       *TableData `json:"tableData,omitempty"`
}

// ChartData is the inline chart spec of a content block. Labels and
// Values are parallel; Colors optionally overrides the default palette.
type ChartData struct {
	Title  string    `json:"title,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

// TableData is the inline table of a content block. Ragged rows are
// tolerated: extra cells are dropped and short rows padded when the
// table is laid out.
type TableData struct {
	Headers []string      `json:"headers"`
	Rows    [][]CellValue `json:"rows"`
}

// CellValue holds one table cell as text regardless of the JSON type it
// arrived as. Numbers and booleans keep their literal form; null becomes
// the empty string.
type CellValue string

func (c *CellValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = CellValue(s)
		return nil
	}
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*c = ""
		return nil
	}
	*c = CellValue(data)
	return nil
}

// ApplyDefaults fills the block defaults: charts draw as bars unless a
// kind is named.
func (b *ContentBlock) ApplyDefaults() {
	if b.ChartType == "" {
		b.ChartType = "bar"
	}
}

// HasChart reports whether the block carries chart data worth rendering.
// All-zero value sets still count here; the chart spec's own emptiness
// check decides whether anything is drawn.
func (b *ContentBlock) HasChart() bool {
	return b.ChartData != nil && len(b.ChartData.Values) > 0
}

// HasTable reports whether the block carries a renderable table.
func (b *ContentBlock) HasTable() bool {
	return b.TableData != nil && len(b.TableData.Headers) > 0 && len(b.TableData.Rows) > 0
}
