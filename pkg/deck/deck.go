// Package deck defines the payload schema consumed by the document
// assembler.
//
// Two payload formats are accepted. An ESG research payload carries an
// executive summary, sentiment percentages, regional theme data, impact
// analysis rows and data sources; it produces the full analysis deck. A
// generic payload carries a flat list of content blocks, one slide each.
//
// Parse resolves the envelope conventions of upstream callers: the payload
// may arrive bare, nested under a "data" key, or nested as a JSON-encoded
// string under "data". Missing optional keys are filled with defaults and
// never fail the parse; a structurally invalid payload fails before any
// build starts.
package deck

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/errors"
)

// Format identifies the payload shape.
type Format string

const (
	// FormatESG is the research payload with summary, sentiment,
	// regional and source sections.
	FormatESG Format = "esg"

	// FormatGeneric is a flat sequence of content blocks.
	FormatGeneric Format = "generic"
)

// DefaultSearchPhrase is used when no phrase can be derived from the
// payload. It seeds fallback titles and the output filename.
const DefaultSearchPhrase = "Business Analysis"

// Payload is one decoded, validated document request. Exactly one of ESG
// or Slides is populated, per Format.
type Payload struct {
	Format        Format
	SearchPhrase  string
	Customization *Customization
	ESG           *ESG
	Slides        []ContentBlock
}

// Customization carries the optional per-request theme overrides accepted
// alongside the payload. Zero values mean "use the configured theme".
type Customization struct {
	SlideBGColor   string `json:"slide_bg_color,omitempty"`
	TitleFontColor string `json:"title_font_color,omitempty"`
	TitleBGColor   string `json:"title_bg_color,omitempty"`
	BodyTextColor  string `json:"body_text_color,omitempty"`
	TitlePosition  string `json:"title_position,omitempty"`
	FontSize       int    `json:"font_size,omitempty"`
}

// Parse decodes a payload from JSON.
//
// The top level must be a JSON object. If it contains a "data" key the
// payload body is taken from there, decoding it first if it arrives as a
// JSON-encoded string. A "search_phrase" key is honored on either level,
// the outer one winning; "customization" is read from the outer level
// only.
//
// The body is a generic payload when it has a "slides" key and an ESG
// payload when it has an "executiveSummary" key. Anything else fails with
// ErrCodeInvalidPayload. Optional keys are defaulted, sentiment
// percentages are normalized to sum to 100, and generic chart specs are
// validated; the returned Payload is ready to build.
func Parse(data []byte) (*Payload, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "payload must be a JSON object")
	}

	p := &Payload{}
	if raw, ok := outer["search_phrase"]; ok {
		if err := json.Unmarshal(raw, &p.SearchPhrase); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "invalid search_phrase")
		}
	}
	if raw, ok := outer["customization"]; ok && string(raw) != "null" {
		p.Customization = &Customization{}
		if err := json.Unmarshal(raw, p.Customization); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "invalid customization")
		}
	}

	body, inner, err := unwrapBody(data, outer)
	if err != nil {
		return nil, err
	}
	if p.SearchPhrase == "" {
		if raw, ok := inner["search_phrase"]; ok {
			// Best effort; a non-string phrase inside a nested body
			// falls back to the default rather than failing the parse.
			_ = json.Unmarshal(raw, &p.SearchPhrase)
		}
	}

	switch {
	case hasKey(inner, "slides"):
		p.Format = FormatGeneric
		var g genericBody
		if err := json.Unmarshal(body, &g); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decoding slides")
		}
		p.Slides = g.Slides
	case hasKey(inner, "executiveSummary"):
		p.Format = FormatESG
		p.ESG = &ESG{}
		if err := json.Unmarshal(body, p.ESG); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decoding ESG payload")
		}
	default:
		keys := slices.Sorted(maps.Keys(inner))
		return nil, errors.New(errors.ErrCodeInvalidPayload,
			"payload has neither slides nor executiveSummary (keys: %s)", strings.Join(keys, ", "))
	}

	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseFile reads and parses a payload from a JSON file.
func ParseFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

type genericBody struct {
	Slides []ContentBlock `json:"slides"`
}

// unwrapBody resolves the "data" envelope. It returns the payload body
// bytes and the body's top-level keys.
func unwrapBody(data []byte, outer map[string]json.RawMessage) ([]byte, map[string]json.RawMessage, error) {
	raw, ok := outer["data"]
	if !ok {
		return data, outer, nil
	}
	body := []byte(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		body = []byte(s)
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal(body, &inner); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "data field must hold a JSON object")
	}
	return body, inner, nil
}

func hasKey(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}

// applyDefaults fills missing optional data and derives the search phrase
// when none was given: a generic deck borrows its first slide title,
// otherwise DefaultSearchPhrase applies.
func (p *Payload) applyDefaults() {
	if p.SearchPhrase == "" && p.Format == FormatGeneric && len(p.Slides) > 0 {
		p.SearchPhrase = p.Slides[0].Title
	}
	if p.SearchPhrase == "" {
		p.SearchPhrase = DefaultSearchPhrase
	}
	switch p.Format {
	case FormatESG:
		p.ESG.ApplyDefaults(p.SearchPhrase)
	case FormatGeneric:
		for i := range p.Slides {
			p.Slides[i].ApplyDefaults()
		}
	}
}

// Validate checks the payload for shapes the builders cannot recover
// from. Generic chart specs must name a known chart kind and carry
// parallel labels and values; everything else is tolerated and resolved
// downstream by defaulting, truncation or pagination.
func (p *Payload) Validate() error {
	if p.Format != FormatGeneric {
		return nil
	}
	for i, b := range p.Slides {
		if b.ChartData == nil {
			continue
		}
		if !chart.ValidKind(chart.Kind(b.ChartType)) {
			return errors.New(errors.ErrCodeInvalidChart, "slide %d: unknown chart type %q", i+1, b.ChartType)
		}
		if len(b.ChartData.Labels) != len(b.ChartData.Values) {
			return errors.New(errors.ErrCodeInvalidChart,
				"slide %d: chart has %d labels but %d values", i+1, len(b.ChartData.Labels), len(b.ChartData.Values))
		}
	}
	return nil
}
