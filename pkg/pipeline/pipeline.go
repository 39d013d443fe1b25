// Package pipeline provides the core document build pipeline for deckgen.
//
// This package implements the complete decode → compose → encode → verify
// pipeline that can be used by CLI and server components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Decode: Parse and validate the JSON payload (ESG or generic blocks)
//  2. Compose: Assemble slides, rendering charts through the chart cache
//  3. Encode: Serialize the presentation to pptx bytes
//  4. Verify: Reopen the archive and check its required parts
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    InputPath:  "payload.json",
//	    OutputPath: "deck.pptx",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Filename, result.SlideCount)
//
// Run individual stages:
//
//	// Decode only
//	payload, err := runner.Decode(opts)
//
//	// Compose with an existing payload
//	prs, err := runner.Compose(ctx, payload, opts)
//
//	// Encode without verification
//	data, err := pipeline.Encode(prs)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckgen/pkg/cache"
	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/compose"
	"github.com/matzehuels/deckgen/pkg/tablegrid"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultRowBudget is the maximum table body rows per slide before
	// pagination. This matches tablegrid.DefaultRowBudget to maintain
	// consistency; callers can override it per request.
	DefaultRowBudget = tablegrid.DefaultRowBudget
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the build pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Payload wins when both are set.
	Payload   json.RawMessage `json:"payload,omitempty"`
	InputPath string          `json:"input_path,omitempty"`

	// OutputPath, when set, receives the encoded document after a
	// successful build.
	OutputPath string `json:"output_path,omitempty"`

	// Theme overrides. Empty strings keep the configured theme.
	Background string `json:"background,omitempty"`
	TextColor  string `json:"text_color,omitempty"`
	Accent     string `json:"accent,omitempty"`

	// Compose options
	RowBudget int `json:"row_budget,omitempty"`

	// NoVerify skips reopening the encoded archive after the build.
	NoVerify bool `json:"no_verify,omitempty"`

	// Refresh bypasses the chart cache and re-renders every chart.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PPTX is the encoded document.
	PPTX []byte

	// Filename is the suggested download filename, derived from the
	// payload search phrase.
	Filename string

	// SlideCount is the number of slides in the document.
	SlideCount int

	// Stats contains timing and cache information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DecodeTime  time.Duration
	ComposeTime time.Duration
	EncodeTime  time.Duration
	VerifyTime  time.Duration
	Total       time.Duration
	Cache       CacheInfo
}

// CacheInfo tracks chart cache traffic during compose.
type CacheInfo struct {
	ChartHits   int // Charts served from cache
	ChartMisses int // Charts rendered fresh
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateColor checks that a theme override is a parseable hex color.
func ValidateColor(value string) error {
	if _, ok := chart.ParseHex(value); !ok {
		return fmt.Errorf("invalid color: %q (must be #RRGGBB or #RGB)", value)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	if err := o.ValidateForCompose(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks required fields for decoding.
func (o *Options) ValidateForDecode() error {
	if len(o.Payload) == 0 && o.InputPath == "" {
		return fmt.Errorf("payload or input_path is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetComposeDefaults sets default values for slide assembly.
func (o *Options) SetComposeDefaults() {
	if o.RowBudget == 0 {
		o.RowBudget = DefaultRowBudget
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForCompose validates and sets defaults for slide assembly.
func (o *Options) ValidateForCompose() error {
	o.SetComposeDefaults()
	for _, c := range []string{o.Background, o.TextColor, o.Accent} {
		if c == "" {
			continue
		}
		if err := ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// ShouldVerify returns whether the encoded archive should be reopened
// and checked after the build.
func (o *Options) ShouldVerify() bool {
	return !o.NoVerify
}

// Theme resolves the configured theme with the option overrides applied.
func (o *Options) Theme() compose.Theme {
	t := compose.DefaultTheme()
	if o.Background != "" {
		t.Background = o.Background
	}
	if o.TextColor != "" {
		t.TextColor = o.TextColor
	}
	if o.Accent != "" {
		// Palette[0] doubles as the accent color for rules and bars.
		p := append([]string(nil), t.Palette...)
		if len(p) == 0 {
			p = []string{o.Accent}
		} else {
			p[0] = o.Accent
		}
		t.Palette = p
	}
	return t
}

// ChartKeyOpts returns cache key options for one chart render.
func (o *Options) ChartKeyOpts(width, height int) cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Width:     width,
		Height:    height,
		TextColor: o.Theme().TextColor,
	}
}
