package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/matzehuels/deckgen/pkg/fonts"
)

// Fixed drawing constants. Wedge thickness and label distances are ratios
// of the pie radius; the legend always spans three columns.
const (
	donutWidthRatio    = 0.45
	pieLabelDistance   = 0.60
	donutLabelDistance = 0.775
	rimLabelDistance   = 1.15

	legendColumns   = 3
	legendRowHeight = 22.0

	marginLeft   = 64.0
	marginRight  = 24.0
	marginBottom = 48.0
	marginTop    = 24.0
	titleBand    = 30.0

	barSlotFill = 0.6
	lineWidth   = 3.0
	markerSize  = 5.0
	gridAlpha   = 77 // 0.3 of full
)

type plotRect struct {
	x, y, w, h float64
}

// frame draws the optional title and returns the plot area left over after
// margins, title band and legend rows are reserved.
func (r *Renderer) frame(dc *gg.Context, title string, legendRows int) plotRect {
	w, h := float64(dc.Width()), float64(dc.Height())
	top := marginTop
	if title != "" {
		dc.SetColor(r.text)
		dc.SetFontFace(fonts.BoldFace(16))
		dc.DrawStringAnchored(title, w/2, top, 0.5, 0.5)
		top += titleBand
	}
	top += float64(legendRows) * legendRowHeight
	return plotRect{
		x: marginLeft,
		y: top,
		w: w - marginLeft - marginRight,
		h: h - top - marginBottom,
	}
}

// axes strokes the left and bottom spines and writes y tick labels from
// zero to top in steps of step.
func (r *Renderer) axes(dc *gg.Context, plot plotRect, top, step float64, grid bool) {
	dc.SetFontFace(fonts.Face(11))
	for v := 0.0; v <= top+1e-9; v += step {
		y := plot.y + plot.h - plot.h*v/top
		if grid && v > 0 {
			dc.SetColor(withAlpha(r.text, gridAlpha))
			dc.SetLineWidth(1)
			dc.DrawLine(plot.x, y, plot.x+plot.w, y)
			dc.Stroke()
		}
		dc.SetColor(r.text)
		dc.DrawStringAnchored(formatValue(v), plot.x-8, y, 1, 0.5)
	}
	dc.SetColor(r.text)
	dc.SetLineWidth(1.5)
	dc.DrawLine(plot.x, plot.y, plot.x, plot.y+plot.h)
	dc.DrawLine(plot.x, plot.y+plot.h, plot.x+plot.w, plot.y+plot.h)
	dc.Stroke()
}

// categoryLabels writes one label centered under each slot, ellipsized to
// the slot width.
func (r *Renderer) categoryLabels(dc *gg.Context, plot plotRect, labels []string) {
	slot := plot.w / float64(len(labels))
	dc.SetColor(r.text)
	dc.SetFontFace(fonts.Face(11))
	for i, label := range labels {
		cx := plot.x + slot*(float64(i)+0.5)
		dc.DrawStringAnchored(fitString(dc, label, slot-6), cx, plot.y+plot.h+16, 0.5, 0.5)
	}
}

func (r *Renderer) drawBars(dc *gg.Context, spec Spec) error {
	maxV := maxOf(spec.Values)
	if maxV <= 0 {
		return ErrNoData
	}
	plot := r.frame(dc, spec.Title, 0)
	step := niceStep(maxV)
	top := math.Ceil(maxV/step) * step
	r.axes(dc, plot, top, step, false)

	slot := plot.w / float64(len(spec.Values))
	barW := slot * barSlotFill
	dc.SetFontFace(fonts.Face(12))
	for i, v := range spec.Values {
		if v < 0 {
			v = 0
		}
		barH := plot.h * v / top
		x := plot.x + slot*float64(i) + (slot-barW)/2
		y := plot.y + plot.h - barH
		dc.SetColor(paletteColor(spec.Palette, i))
		dc.DrawRectangle(x, y, barW, barH)
		dc.Fill()
		dc.SetColor(r.text)
		dc.DrawStringAnchored(formatValue(spec.Values[i]), x+barW/2, y-8, 0.5, 0.5)
	}
	r.categoryLabels(dc, plot, spec.Labels)
	return nil
}

func (r *Renderer) drawLine(dc *gg.Context, spec Spec, filled bool) error {
	maxV := maxOf(spec.Values)
	if maxV <= 0 {
		return ErrNoData
	}
	plot := r.frame(dc, spec.Title, 0)
	step := niceStep(maxV)
	top := math.Ceil(maxV/step) * step
	r.axes(dc, plot, top, step, true)

	n := len(spec.Values)
	slot := plot.w / float64(n)
	px := func(i int) float64 { return plot.x + slot*(float64(i)+0.5) }
	py := func(v float64) float64 { return plot.y + plot.h - plot.h*v/top }

	line := paletteColor(spec.Palette, 0)
	if filled {
		dc.SetColor(withAlpha(line, 128))
		dc.MoveTo(px(0), plot.y+plot.h)
		for i, v := range spec.Values {
			dc.LineTo(px(i), py(v))
		}
		dc.LineTo(px(n-1), plot.y+plot.h)
		dc.ClosePath()
		dc.Fill()
	}

	dc.SetColor(line)
	dc.SetLineWidth(lineWidth)
	for i, v := range spec.Values {
		if i == 0 {
			dc.MoveTo(px(i), py(v))
		} else {
			dc.LineTo(px(i), py(v))
		}
	}
	dc.Stroke()
	for i, v := range spec.Values {
		dc.DrawCircle(px(i), py(v), markerSize)
		dc.Fill()
	}
	r.categoryLabels(dc, plot, spec.Labels)
	return nil
}

// shares converts positive values to percentage shares of their sum.
// Non-positive values get a zero share; an all-non-positive input is all
// zeros.
func shares(values []float64) []float64 {
	sum := 0.0
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	out := make([]float64, len(values))
	if sum <= 0 {
		return out
	}
	for i, v := range values {
		if v > 0 {
			out[i] = v / sum * 100
		}
	}
	return out
}

// drawPie renders a pie, or an annular doughnut when widthRatio is
// positive. Wedges start at twelve o'clock and advance counter-clockwise.
func (r *Renderer) drawPie(dc *gg.Context, spec Spec, widthRatio float64) error {
	sh := shares(spec.Values)
	drawn := false
	for _, s := range sh {
		if s > 0 {
			drawn = true
		}
	}
	if !drawn {
		return ErrNoData
	}
	plot := r.frame(dc, spec.Title, 0)
	cx := plot.x + plot.w/2
	cy := plot.y + plot.h/2
	radius := 0.8 * math.Min(plot.w, plot.h) / 2

	labelDist := pieLabelDistance
	if widthRatio > 0 {
		labelDist = donutLabelDistance
	}

	angle := -math.Pi / 2
	for i, s := range sh {
		if s <= 0 {
			continue
		}
		sweep := -2 * math.Pi * s / 100
		r.wedge(dc, cx, cy, radius, widthRatio, angle, angle+sweep, paletteColor(spec.Palette, i))

		mid := angle + sweep/2
		dc.SetColor(r.text)
		dc.SetFontFace(fonts.Face(12))
		dc.DrawStringAnchored(
			fmt.Sprintf("%.1f%%", s),
			cx+math.Cos(mid)*radius*labelDist,
			cy+math.Sin(mid)*radius*labelDist,
			0.5, 0.5,
		)
		if i < len(spec.Labels) && spec.Labels[i] != "" {
			ax := 0.5 - 0.5*math.Cos(mid)
			dc.DrawStringAnchored(
				spec.Labels[i],
				cx+math.Cos(mid)*radius*rimLabelDistance,
				cy+math.Sin(mid)*radius*rimLabelDistance,
				ax, 0.5,
			)
		}
		angle += sweep
	}
	return nil
}

// wedge fills one sector between a1 and a2. A positive widthRatio leaves
// a hole of radius*(1-widthRatio) in the middle.
func (r *Renderer) wedge(dc *gg.Context, cx, cy, radius, widthRatio, a1, a2 float64, c color.Color) {
	dc.SetColor(c)
	if widthRatio <= 0 {
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, a1, a2)
		dc.ClosePath()
		dc.Fill()
		return
	}
	inner := radius * (1 - widthRatio)
	dc.MoveTo(cx+math.Cos(a1)*radius, cy+math.Sin(a1)*radius)
	dc.DrawArc(cx, cy, radius, a1, a2)
	dc.LineTo(cx+math.Cos(a2)*inner, cy+math.Sin(a2)*inner)
	dc.DrawArc(cx, cy, inner, a2, a1)
	dc.ClosePath()
	dc.Fill()
}

func (r *Renderer) drawStackedBars(dc *gg.Context, spec Spec) error {
	palette := spec.Palette
	if len(palette) == 0 {
		palette = SentimentPalette
	}
	legendRows := (len(spec.Series) + legendColumns - 1) / legendColumns
	plot := r.frame(dc, spec.Title, legendRows)
	r.legend(dc, plot, spec.Series, palette, legendRows)

	maxV := 0.0
	for i := range spec.Labels {
		total := 0.0
		for _, ser := range spec.Series {
			if ser.Values[i] > 0 {
				total += ser.Values[i]
			}
		}
		maxV = math.Max(maxV, total)
	}
	if maxV <= 0 {
		return ErrNoData
	}
	step := niceStep(maxV)
	top := math.Ceil(maxV/step) * step
	r.axes(dc, plot, top, step, false)

	slot := plot.w / float64(len(spec.Labels))
	barW := slot * barSlotFill
	for i := range spec.Labels {
		x := plot.x + slot*float64(i) + (slot-barW)/2
		base := plot.y + plot.h
		for s, ser := range spec.Series {
			v := ser.Values[i]
			if v <= 0 {
				continue
			}
			segH := plot.h * v / top
			dc.SetColor(paletteColor(palette, s))
			dc.DrawRectangle(x, base-segH, barW, segH)
			dc.Fill()
			base -= segH
		}
	}
	r.categoryLabels(dc, plot, spec.Labels)
	return nil
}

// legend draws a frameless swatch legend centered above the plot, three
// entries per row.
func (r *Renderer) legend(dc *gg.Context, plot plotRect, series []Series, palette []string, rows int) {
	dc.SetFontFace(fonts.Face(12))
	colW := plot.w / legendColumns
	topY := plot.y - float64(rows)*legendRowHeight
	for i, ser := range series {
		row := i / legendColumns
		col := i % legendColumns
		x := plot.x + colW*float64(col) + colW/2
		y := topY + legendRowHeight*float64(row) + legendRowHeight/2
		tw, _ := dc.MeasureString(ser.Name)
		swatch := 12.0
		startX := x - (tw+swatch+6)/2
		dc.SetColor(paletteColor(palette, i))
		dc.DrawRectangle(startX, y-swatch/2, swatch, swatch)
		dc.Fill()
		dc.SetColor(r.text)
		dc.DrawStringAnchored(ser.Name, startX+swatch+6, y, 0, 0.5)
	}
}

// fitString ellipsizes s until it fits maxW pixels under the current face.
func fitString(dc *gg.Context, s string, maxW float64) string {
	if w, _ := dc.MeasureString(s); w <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if w, _ := dc.MeasureString(candidate); w <= maxW {
			return candidate
		}
	}
	return "..."
}

func maxOf(values []float64) float64 {
	m := math.Inf(-1)
	for _, v := range values {
		m = math.Max(m, v)
	}
	return m
}

// niceStep picks a 1-2-5 series tick step giving roughly four divisions.
func niceStep(max float64) float64 {
	raw := max / 4
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
