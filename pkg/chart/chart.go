// Package chart converts a chart specification into a rendered raster
// image sized to fit a slide region.
//
// Every Render call constructs its own drawing context, draws, encodes and
// returns; no package-level drawing state exists, so concurrent calls can
// never observe each other. This mirrors the per-figure discipline the
// deck engine requires of its plotting backend.
package chart

import (
	"bytes"
	"errors"
	"image/color"

	"github.com/fogleman/gg"
)

// Kind identifies a chart type.
type Kind string

const (
	KindBar        Kind = "bar"
	KindColumn     Kind = "column"
	KindPie        Kind = "pie"
	KindDoughnut   Kind = "doughnut"
	KindLine       Kind = "line"
	KindArea       Kind = "area"
	KindStackedBar Kind = "stackedbar"
)

// ValidKind reports whether k names a supported chart kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindBar, KindColumn, KindPie, KindDoughnut, KindLine, KindArea, KindStackedBar:
		return true
	}
	return false
}

// Sentinel errors for chart rendering.
var (
	// ErrNoData is returned for specs with no values or an all-zero total.
	// Builders are expected to skip rendering upstream; the renderer
	// refuses rather than divide by zero.
	ErrNoData = errors.New("chart: no data")

	// ErrMismatch is returned when labels and values have different lengths.
	ErrMismatch = errors.New("chart: labels and values length mismatch")

	// ErrKind is returned for an unknown chart kind.
	ErrKind = errors.New("chart: unsupported kind")
)

// Series is one named value sequence of a stacked chart, parallel to the
// spec's labels.
type Series struct {
	Name   string
	Values []float64
}

// Spec describes one chart. It is rendered exactly once.
type Spec struct {
	Kind    Kind
	Title   string
	Labels  []string
	Values  []float64
	Series  []Series // stacked breakdown; used by KindStackedBar
	Palette []string // hex colors; DefaultPalette when empty
}

// Empty reports whether the spec has nothing to draw. Stacked specs are
// empty when every series value is zero; flat specs when values are
// absent or sum to zero.
func (s Spec) Empty() bool {
	if s.Kind == KindStackedBar {
		for _, ser := range s.Series {
			for _, v := range ser.Values {
				if v != 0 {
					return false
				}
			}
		}
		return true
	}
	if len(s.Values) == 0 {
		return true
	}
	for _, v := range s.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Image is an immutable rendered chart: PNG bytes plus pixel dimensions.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// Aspect returns height/width, used by embedders that supply only a
// target width and derive height to preserve proportion.
func (img *Image) Aspect() float64 {
	if img.Width == 0 {
		return 0
	}
	return float64(img.Height) / float64(img.Width)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTextColor sets the color for axis text, labels and legends.
func WithTextColor(c color.Color) Option {
	return func(r *Renderer) { r.text = c }
}

// WithBackground sets an opaque background fill. The default is a fully
// transparent canvas so charts composite onto any slide background.
func WithBackground(c color.Color) Option {
	return func(r *Renderer) { r.background = c }
}

// Renderer rasterizes chart specs. It is stateless across calls and safe
// for concurrent use.
type Renderer struct {
	text       color.Color
	background color.Color
}

// NewRenderer creates a renderer. Defaults suit dark slide backgrounds:
// white text on a transparent canvas.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		text:       color.White,
		background: nil,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render rasterizes the spec at the given pixel dimensions.
//
// The drawing context lives entirely within this call: constructed first,
// encoded to PNG last, and unreachable afterwards.
func (r *Renderer) Render(spec Spec, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("chart: non-positive dimensions")
	}
	if spec.Kind == KindStackedBar {
		if len(spec.Series) == 0 || spec.Empty() {
			return nil, ErrNoData
		}
		for _, ser := range spec.Series {
			if len(ser.Values) != len(spec.Labels) {
				return nil, ErrMismatch
			}
		}
	} else {
		if spec.Empty() {
			return nil, ErrNoData
		}
		if len(spec.Labels) != len(spec.Values) {
			return nil, ErrMismatch
		}
	}

	dc := gg.NewContext(width, height)
	if r.background != nil {
		dc.SetColor(r.background)
		dc.Clear()
	}

	var err error
	switch spec.Kind {
	case KindBar, KindColumn:
		err = r.drawBars(dc, spec)
	case KindPie:
		err = r.drawPie(dc, spec, 0)
	case KindDoughnut:
		err = r.drawPie(dc, spec, donutWidthRatio)
	case KindLine:
		err = r.drawLine(dc, spec, false)
	case KindArea:
		err = r.drawLine(dc, spec, true)
	case KindStackedBar:
		err = r.drawStackedBars(dc, spec)
	default:
		err = ErrKind
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return &Image{PNG: buf.Bytes(), Width: width, Height: height}, nil
}
