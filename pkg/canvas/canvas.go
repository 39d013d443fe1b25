// Package canvas defines the fixed slide geometry and the clamping rules
// that keep every placed shape inside the printable content area.
//
// All coordinates are in inches. Rects are value types: functions return
// new rects rather than mutating in place, so no two builders ever share
// a mutable rectangle.
package canvas

// Default canvas dimensions in inches.
const (
	DefaultWidth      = 16.0
	DefaultHeight     = 9.0
	DefaultMargin     = 0.5
	DefaultTitleBand  = 0.8
	DefaultContentTop = 1.2
)

// Canvas describes the fixed physical slide area for a document build.
// It is initialized once per build and never mutated.
type Canvas struct {
	Width  float64 // full slide width
	Height float64 // full slide height
	Margin float64 // outer margin on all four sides

	// TitleBand is the height of the reserved title strip at the top of
	// each slide. Content never flows into it.
	TitleBand float64

	// ContentTop is the y coordinate where the content area begins.
	ContentTop float64
}

// Default returns the standard 16x9 inch canvas.
func Default() Canvas {
	return Canvas{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Margin:     DefaultMargin,
		TitleBand:  DefaultTitleBand,
		ContentTop: DefaultContentTop,
	}
}

// ContentWidth returns the maximum width available to content.
func (c Canvas) ContentWidth() float64 { return c.Width - 2*c.Margin }

// ContentHeight returns the maximum height available to content.
func (c Canvas) ContentHeight() float64 { return c.Height - c.ContentTop - c.Margin }

// ContentRect returns the full content area as a rect.
func (c Canvas) ContentRect() Rect {
	return Rect{Left: c.Margin, Top: c.ContentTop, Width: c.ContentWidth(), Height: c.ContentHeight()}
}

// TitleRect returns the full-width title band at the top of the slide.
// Titles bleed to the slide edges rather than honoring the content margin.
func (c Canvas) TitleRect() Rect {
	return Rect{Left: 0, Top: 0.2, Width: c.Width, Height: c.TitleBand}
}

// ClampRect maps a requested rect to one guaranteed to lie inside the
// content area. Position is resolved before size: a shape pinned near an
// edge shrinks rather than being pushed further off-canvas. Clamping is
// total and never fails.
func (c Canvas) ClampRect(r Rect) Rect {
	left := clampValue(r.Left, c.Margin, c.Width-c.Margin)
	top := clampValue(r.Top, c.ContentTop, c.Height-c.Margin)

	width := r.Width
	if width < 0 {
		width = 0
	}
	if maxW := c.Width - left - c.Margin; width > maxW {
		width = maxW
	}

	height := r.Height
	if height < 0 {
		height = 0
	}
	if maxH := c.Height - top - c.Margin; height > maxH {
		height = maxH
	}

	return Rect{Left: left, Top: top, Width: width, Height: height}
}

const eps = 1e-9

// Contains reports whether r lies fully inside the content area, within
// floating-point tolerance.
func (c Canvas) Contains(r Rect) bool {
	return r.Left >= c.Margin-eps &&
		r.Top >= c.ContentTop-eps &&
		r.Right() <= c.Width-c.Margin+eps &&
		r.Bottom() <= c.Height-c.Margin+eps
}

func clampValue(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect is a rectangle in inches. Produced fresh per shape, never shared.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center point of the rect.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center point of the rect.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }
