package pptx

// Box is a shape frame in EMU, origin at the slide's top-left corner.
type Box struct {
	X, Y int64
	W, H int64
}

// Shape is anything placeable on a slide.
type Shape interface {
	Frame() Box
}

// Align is a paragraph alignment ("l", "ctr", "r", "just"). Empty leaves
// the default.
type Align string

const (
	AlignLeft    Align = "l"
	AlignCenter  Align = "ctr"
	AlignRight   Align = "r"
	AlignJustify Align = "just"
)

// Anchor is a vertical text anchor within a shape ("t", "ctr", "b").
// Empty leaves the default.
type Anchor string

const (
	AnchorTop    Anchor = "t"
	AnchorMiddle Anchor = "ctr"
	AnchorBottom Anchor = "b"
)

// PlaceholderKind marks the semantic role of a Placeholder shape.
type PlaceholderKind string

const (
	PlaceholderTitle PlaceholderKind = "title"
	PlaceholderBody  PlaceholderKind = "body"
)

// Font describes run-level text formatting. Size is in points; zero
// falls back to 18. Color is "#RRGGBB"; empty inherits.
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	Color     string
}

// Run is a span of uniformly formatted text. A non-empty Hyperlink makes
// the run an external link.
type Run struct {
	Text      string
	Font      Font
	Hyperlink string
}

// Paragraph is a sequence of runs sharing alignment.
type Paragraph struct {
	Runs  []Run
	Align Align
}

// Text builds a single-run paragraph, the common case.
func Text(s string, f Font) Paragraph {
	return Paragraph{Runs: []Run{{Text: s, Font: f}}}
}

// AutofitNormal enables shrink-to-fit at full size: the frame carries a
// normAutofit hint and the viewer rescales text only when it overflows.
const AutofitNormal = 100000

// TextBox is a free-floating text frame.
type TextBox struct {
	Box        Box
	Name       string
	Paragraphs []Paragraph
	Anchor     Anchor
	WordWrap   bool
	// AutofitScale shrinks text to fit. Values below AutofitNormal are a
	// fixed per-hundred-thousand font scale; AutofitNormal defers the
	// scaling to the viewer. Zero disables autofit.
	AutofitScale int
}

func (t *TextBox) Frame() Box { return t.Box }

// Placeholder is a text frame bound to a layout role. The deck composer
// can strip unused non-title placeholders before encoding.
type Placeholder struct {
	Box        Box
	Kind       PlaceholderKind
	Index      int
	Paragraphs []Paragraph
	Anchor     Anchor
	Outline    string // border color "#RRGGBB"; empty for no border
	OutlinePts float64
}

func (p *Placeholder) Frame() Box { return p.Box }

// Text returns the concatenated run text of all paragraphs.
func (p *Placeholder) Text() string {
	out := ""
	for _, para := range p.Paragraphs {
		for _, run := range para.Runs {
			out += run.Text
		}
	}
	return out
}

// Picture places raster image bytes on the slide. Format is "png" or
// "jpeg"; empty means "png".
type Picture struct {
	Box     Box
	Name    string
	AltText string
	Data    []byte
	Format  string
}

func (p *Picture) Frame() Box { return p.Box }

// TableCell is one cell: paragraphs plus an optional solid fill
// "#RRGGBB". Anchor defaults to middle.
type TableCell struct {
	Paragraphs []Paragraph
	Fill       string
	Anchor     Anchor
}

// TableRow is one row with an explicit height in EMU.
type TableRow struct {
	Height int64
	Cells  []TableCell
}

// Table is a grid frame. ColWidths are per-column EMU widths and must
// match the cell count of every row.
type Table struct {
	Box       Box
	Name      string
	ColWidths []int64
	Rows      []TableRow
}

func (t *Table) Frame() Box { return t.Box }

// AutoShape is a preset-geometry shape, a solid-filled rectangle unless
// Preset overrides. Border is optional.
type AutoShape struct {
	Box     Box
	Name    string
	Preset  string // "rect" when empty
	Fill    string // "#RRGGBB"; empty for no fill
	Line    string // border color; empty for no border
	LinePts float64
}

func (a *AutoShape) Frame() Box { return a.Box }

// Line is a straight connector from the box origin to its far corner.
type Line struct {
	Box      Box
	Name     string
	Color    string
	WidthPts float64
}

func (l *Line) Frame() Box { return l.Box }
