// Package compose assembles parsed payloads into finished presentations.
//
// The Assembler runs one builder per content archetype in a fixed order
// per deck format, skipping any builder whose data is absent or empty.
// Builders lay shapes out on the shared canvas, truncate text per usage
// site and paginate tables, so a build can never fail on oversized
// content. A final guardrail pass strips template placeholders that no
// builder populated.
package compose

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckgen/pkg/canvas"
	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/deck"
	"github.com/matzehuels/deckgen/pkg/errors"
	"github.com/matzehuels/deckgen/pkg/pptx"
	"github.com/matzehuels/deckgen/pkg/tablegrid"
	"github.com/matzehuels/deckgen/pkg/textpolicy"
)

// Chart raster dimensions in pixels. 4:3, matching the 4x3 inch frame
// charts are embedded into.
const (
	chartWidthPx  = 800
	chartHeightPx = 600
)

// Font sizes in points. Body text size comes from the theme instead.
const (
	sizeDeckTitle    = 36
	sizeDeckSubtitle = 24
	sizeSlideTitle   = 28
	sizeDivider      = 30
	sizeHeadline     = 20
	sizeNextSteps    = 18
	sizeCell         = 12
)

// RenderFunc rasterizes one chart spec at the given pixel dimensions.
// The assembler's default renders directly; callers may inject a
// wrapper, for example to cache rendered images across builds.
type RenderFunc func(spec chart.Spec, width, height int) (*chart.Image, error)

// ChartRenderer builds a chart renderer styled for the theme: text in
// the theme's text color on a transparent canvas, so charts composite
// onto any slide background.
func ChartRenderer(t Theme) *chart.Renderer {
	var opts []chart.Option
	if c, ok := chart.ParseHex(t.TextColor); ok {
		opts = append(opts, chart.WithTextColor(c))
	}
	return chart.NewRenderer(opts...)
}

// Assembler builds presentations from parsed payloads. A single
// Assembler is safe for concurrent use; all per-build state lives in
// the build itself.
type Assembler struct {
	canvas    canvas.Canvas
	theme     Theme
	rowBudget int
	logger    *log.Logger
	render    RenderFunc
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithCanvas overrides the default slide canvas.
func WithCanvas(c canvas.Canvas) Option { return func(a *Assembler) { a.canvas = c } }

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option { return func(a *Assembler) { a.theme = t } }

// WithRowBudget overrides the maximum body rows per table page.
func WithRowBudget(n int) Option { return func(a *Assembler) { a.rowBudget = n } }

// WithLogger sets the logger. The default discards.
func WithLogger(l *log.Logger) Option { return func(a *Assembler) { a.logger = l } }

// WithRenderFunc replaces the chart renderer.
func WithRenderFunc(fn RenderFunc) Option { return func(a *Assembler) { a.render = fn } }

// New creates an Assembler with the house theme on the 16x9 canvas.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		canvas:    canvas.Default(),
		theme:     DefaultTheme(),
		rowBudget: tablegrid.DefaultRowBudget,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build assembles the payload into a presentation. The payload's
// customization is merged over the assembler's theme for this build
// only. Empty sections are skipped, never an error; Build fails only
// on a payload whose format it does not recognize.
func (a *Assembler) Build(p *deck.Payload) (*pptx.Presentation, error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "payload is nil")
	}

	render := a.render
	if render == nil {
		render = ChartRenderer(a.theme).Render
	}

	d := &deckBuilder{
		prs:       pptx.New(),
		canvas:    a.canvas,
		theme:     a.theme.Merge(p.Customization),
		rowBudget: a.rowBudget,
		logger:    a.logger,
		render:    render,
	}

	switch p.Format {
	case deck.FormatESG:
		if p.ESG == nil {
			return nil, errors.New(errors.ErrCodeInvalidPayload, "esg payload has no data")
		}
		d.buildESG(p)
	case deck.FormatGeneric:
		d.buildGeneric(p)
	default:
		return nil, errors.New(errors.ErrCodeInvalidPayload, "unknown deck format %q", p.Format)
	}

	d.prs.Properties.Subject = p.SearchPhrase
	for _, s := range d.prs.Slides() {
		d.cleanup(s)
	}
	return d.prs, nil
}

// deckBuilder carries the state of one build: the presentation under
// construction plus the resolved styling. It lives for exactly one
// Build call.
type deckBuilder struct {
	prs       *pptx.Presentation
	canvas    canvas.Canvas
	theme     Theme
	rowBudget int
	logger    *log.Logger
	render    RenderFunc
}

// addSlide appends a slide carrying the theme background.
func (d *deckBuilder) addSlide() *pptx.Slide {
	s := d.prs.AddSlide()
	s.Background = d.theme.Background
	return s
}

// addTitle places the slide's title band: full width, outlined, no
// fill, above the content area.
func (d *deckBuilder) addTitle(s *pptx.Slide, title string) {
	band := d.canvas.TitleRect()
	s.Add(&pptx.Placeholder{
		Box:  box(band),
		Kind: pptx.PlaceholderTitle,
		Paragraphs: []pptx.Paragraph{{
			Runs: []pptx.Run{{
				Text: textpolicy.TruncateAt(title, textpolicy.SiteTitle),
				Font: d.theme.titleFont(sizeSlideTitle),
			}},
			Align: d.theme.titleAlign(),
		}},
		Anchor:     pptx.AnchorMiddle,
		Outline:    d.theme.TitleBG,
		OutlinePts: 1,
	})
}

// addTitleSlide opens the deck: centered title and subtitle over a
// short accent bar. The subtitle rides in a body placeholder like the
// stock title layout it stands in for.
func (d *deckBuilder) addTitleSlide(title, subtitle string) {
	s := d.addSlide()

	s.Add(&pptx.Placeholder{
		Box:  box(canvas.Rect{Left: 1, Top: 2.8, Width: d.canvas.Width - 2, Height: 1.4}),
		Kind: pptx.PlaceholderTitle,
		Paragraphs: []pptx.Paragraph{{
			Runs: []pptx.Run{{
				Text: textpolicy.TruncateAt(title, textpolicy.SiteTitle),
				Font: d.theme.titleFont(sizeDeckTitle),
			}},
			Align: pptx.AlignCenter,
		}},
		Anchor: pptx.AnchorMiddle,
	})

	s.Add(&pptx.Placeholder{
		Box:   box(canvas.Rect{Left: 1, Top: 4.3, Width: d.canvas.Width - 2, Height: 0.9}),
		Kind:  pptx.PlaceholderBody,
		Index: 1,
		Paragraphs: []pptx.Paragraph{{
			Runs: []pptx.Run{{
				Text: textpolicy.TruncateAt(subtitle, textpolicy.SiteHeadline),
				Font: d.theme.font(sizeDeckSubtitle, false),
			}},
			Align: pptx.AlignCenter,
		}},
		Anchor: pptx.AnchorMiddle,
	})

	s.Add(&pptx.AutoShape{
		Box:  box(canvas.Rect{Left: d.canvas.Width/2 - 1.5, Top: 5.5, Width: 3, Height: 0.08}),
		Name: "Accent Bar",
		Fill: d.theme.Accent(),
	})
}

// addDividerSlide marks the transition into a new section: one centered
// heading over an accent rule, nothing else.
func (d *deckBuilder) addDividerSlide(title string) {
	s := d.addSlide()
	mid := d.canvas.Height / 2

	s.Add(&pptx.TextBox{
		Box: box(canvas.Rect{Left: 1, Top: mid - 1.2, Width: d.canvas.Width - 2, Height: 1.2}),
		Paragraphs: []pptx.Paragraph{{
			Runs: []pptx.Run{{
				Text: textpolicy.TruncateAt(title, textpolicy.SiteTitle),
				Font: d.theme.font(sizeDivider, true),
			}},
			Align: pptx.AlignCenter,
		}},
		Anchor:   pptx.AnchorMiddle,
		WordWrap: true,
	})

	s.Add(&pptx.Line{
		Box:      box(canvas.Rect{Left: d.canvas.Width/2 - 2, Top: mid + 0.2, Width: 4, Height: 0}),
		Color:    d.theme.Accent(),
		WidthPts: 3,
	})
}

// addChart renders the spec and embeds the image. Specs with nothing to
// draw are skipped upstream of the renderer; render failures drop the
// chart and keep the slide.
func (d *deckBuilder) addChart(s *pptx.Slide, spec chart.Spec, r canvas.Rect) {
	if spec.Empty() {
		return
	}
	img, err := d.render(spec, chartWidthPx, chartHeightPx)
	if err != nil {
		d.logger.Warn("chart render failed", "kind", spec.Kind, "title", spec.Title, "err", err)
		return
	}
	fit := d.canvas.ClampRect(fitRect(img, r))
	s.Add(&pptx.Picture{
		Box:     box(fit),
		Name:    "Chart",
		AltText: spec.Title,
		Data:    img.PNG,
		Format:  "png",
	})
}

// fitRect fits the image into r preserving its pixel aspect ratio,
// centered on both axes. The image never distorts; it shrinks along
// whichever axis binds first.
func fitRect(img *chart.Image, r canvas.Rect) canvas.Rect {
	aspect := img.Aspect()
	if aspect <= 0 {
		return r
	}
	w := r.Width
	h := w * aspect
	if h > r.Height {
		h = r.Height
		w = h / aspect
	}
	return canvas.Rect{
		Left:   r.Left + (r.Width-w)/2,
		Top:    r.Top + (r.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// box converts an inch rect to an EMU box.
func box(r canvas.Rect) pptx.Box {
	return pptx.Box{
		X: pptx.Inch(r.Left),
		Y: pptx.Inch(r.Top),
		W: pptx.Inch(r.Width),
		H: pptx.Inch(r.Height),
	}
}

// fallback returns s, or alt when s is empty.
func fallback(s, alt string) string {
	if s == "" {
		return alt
	}
	return s
}
