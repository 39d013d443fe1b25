package compose

import (
	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/deck"
	"github.com/matzehuels/deckgen/pkg/pptx"
)

// Theme is the visual identity applied across a build: colors, fonts and
// the chart palette. A Theme is a value; builders never mutate it.
type Theme struct {
	// Background is the slide background fill.
	Background string

	// TitleBG outlines the title band and fills table header rows.
	TitleBG string

	// TitleColor is the title font color.
	TitleColor string

	// TextColor is the body and cell text color.
	TextColor string

	// DarkRow fills the dark rows of zebra-striped tables.
	DarkRow string

	// LinkColor styles hyperlink runs inside table cells.
	LinkColor string

	// Palette supplies chart series colors. Palette[0] doubles as the
	// accent color for rules and bars.
	Palette []string

	// FontName is the typeface for all text.
	FontName string

	// BodySize is the body text size in points.
	BodySize float64

	// TitlePosition aligns slide titles: "left" or "center".
	TitlePosition string
}

// DefaultTheme returns the dark deck styling.
func DefaultTheme() Theme {
	return Theme{
		Background:    "#0F1632",
		TitleBG:       "#44546A",
		TitleColor:    "#FFFFFF",
		TextColor:     "#FFFFFF",
		DarkRow:       "#2A3950",
		LinkColor:     "#9BC1E4",
		Palette:       chart.DefaultPalette,
		FontName:      "Arial",
		BodySize:      16,
		TitlePosition: "left",
	}
}

// Accent returns the primary accent color.
func (t Theme) Accent() string {
	if len(t.Palette) > 0 {
		return t.Palette[0]
	}
	return "#007ACC"
}

// Merge returns a copy of the theme with the customization applied.
// Color overrides that are not valid hex colors are ignored rather than
// poisoning the build.
func (t Theme) Merge(c *deck.Customization) Theme {
	if c == nil {
		return t
	}
	applyColor(&t.Background, c.SlideBGColor)
	applyColor(&t.TitleColor, c.TitleFontColor)
	applyColor(&t.TitleBG, c.TitleBGColor)
	applyColor(&t.TextColor, c.BodyTextColor)
	if c.TitlePosition != "" {
		t.TitlePosition = c.TitlePosition
	}
	if c.FontSize > 0 {
		t.BodySize = float64(c.FontSize)
	}
	return t
}

func applyColor(dst *string, override string) {
	if _, ok := chart.ParseHex(override); ok {
		*dst = override
	}
}

// titleAlign maps the theme's title position to a paragraph alignment.
func (t Theme) titleAlign() pptx.Align {
	if t.TitlePosition == "center" {
		return pptx.AlignCenter
	}
	return pptx.AlignLeft
}

// font builds a body font at the given size.
func (t Theme) font(size float64, bold bool) pptx.Font {
	return pptx.Font{Name: t.FontName, Size: size, Bold: bold, Color: t.TextColor}
}

// titleFont builds a bold font in the title color.
func (t Theme) titleFont(size float64) pptx.Font {
	return pptx.Font{Name: t.FontName, Size: size, Bold: true, Color: t.TitleColor}
}
