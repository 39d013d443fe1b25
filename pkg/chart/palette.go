package chart

import "image/color"

// DefaultPalette is the house color cycle applied when a spec carries no
// palette of its own. Specs with fewer colors than categories wrap around.
var DefaultPalette = []string{
	"#007ACC",
	"#09534F",
	"#4CAF50",
	"#FF9800",
	"#F44336",
	"#9C27B0",
}

// SentimentPalette colors the positive, neutral and negative series of
// stacked sentiment charts, in that order.
var SentimentPalette = []string{
	"#4CAF50",
	"#FF9800",
	"#F44336",
}

// paletteColor returns the i-th color of the palette, cycling when i
// exceeds its length. Unparseable entries fall back to the default cycle.
func paletteColor(palette []string, i int) color.Color {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	c, ok := ParseHex(palette[i%len(palette)])
	if !ok {
		c, _ = ParseHex(DefaultPalette[i%len(DefaultPalette)])
	}
	return c
}

// ParseHex decodes "#RRGGBB" or "#RGB" into an opaque color.
func ParseHex(s string) (color.NRGBA, bool) {
	if len(s) == 0 || s[0] != '#' {
		return color.NRGBA{}, false
	}
	hex := s[1:]
	nib := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	byteAt := func(i int) (uint8, bool) {
		hi, ok1 := nib(hex[i])
		lo, ok2 := nib(hex[i+1])
		return hi<<4 | lo, ok1 && ok2
	}
	switch len(hex) {
	case 6:
		r, ok1 := byteAt(0)
		g, ok2 := byteAt(2)
		b, ok3 := byteAt(4)
		if !ok1 || !ok2 || !ok3 {
			return color.NRGBA{}, false
		}
		return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, true
	case 3:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			n, ok := nib(hex[i])
			if !ok {
				return color.NRGBA{}, false
			}
			v[i] = n<<4 | n
		}
		return color.NRGBA{R: v[0], G: v[1], B: v[2], A: 0xFF}, true
	}
	return color.NRGBA{}, false
}

// withAlpha returns c with its alpha scaled to a (0..255), used for the
// translucent fill under area charts and the faint plot grid.
func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
