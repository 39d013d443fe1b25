package pptx

import (
	"fmt"
	"strings"
)

// Validate checks the presentation for structural problems before
// encoding and returns an error listing everything found, or nil.
func (p *Presentation) Validate() error {
	var errs []string

	if p.layout.CX <= 0 || p.layout.CY <= 0 {
		errs = append(errs, "layout dimensions must be positive")
	}
	if len(p.slides) == 0 {
		errs = append(errs, "presentation must have at least one slide")
	}

	for i, slide := range p.slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if slide.Background != "" && !isHexColor(slide.Background) {
			errs = append(errs, prefix+": background is not a hex color")
		}
		for _, e := range validateSlide(slide) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSlide(s *Slide) []string {
	var errs []string
	for j, shape := range s.shapes {
		prefix := fmt.Sprintf("shape %d", j+1)
		if shape == nil {
			errs = append(errs, prefix+": shape is nil")
			continue
		}
		frame := shape.Frame()
		if frame.W < 0 || frame.H < 0 {
			errs = append(errs, prefix+": negative dimensions")
		}

		switch sh := shape.(type) {
		case *Picture:
			if len(sh.Data) == 0 {
				errs = append(errs, prefix+": picture has no image data")
			}
			if sh.Format != "" && sh.Format != "png" && sh.Format != "jpeg" {
				errs = append(errs, prefix+": unsupported picture format: "+sh.Format)
			}
		case *Table:
			if len(sh.Rows) == 0 || len(sh.ColWidths) == 0 {
				errs = append(errs, prefix+": table must have at least 1 row and 1 column")
			}
			for r, row := range sh.Rows {
				if len(row.Cells) != len(sh.ColWidths) {
					errs = append(errs, fmt.Sprintf("%s: row %d has %d cells, want %d", prefix, r+1, len(row.Cells), len(sh.ColWidths)))
				}
				for c, cell := range row.Cells {
					if cell.Fill != "" && !isHexColor(cell.Fill) {
						errs = append(errs, fmt.Sprintf("%s: row %d cell %d fill is not a hex color", prefix, r+1, c+1))
					}
				}
			}
		case *TextBox:
			if len(sh.Paragraphs) == 0 {
				errs = append(errs, prefix+": text box has no paragraphs")
			}
		case *Placeholder:
			if sh.Kind == "" {
				errs = append(errs, prefix+": placeholder kind is empty")
			}
			if sh.Outline != "" && !isHexColor(sh.Outline) {
				errs = append(errs, prefix+": outline is not a hex color")
			}
		case *AutoShape:
			if sh.Fill != "" && !isHexColor(sh.Fill) {
				errs = append(errs, prefix+": fill is not a hex color")
			}
		case *Line:
			if sh.Color != "" && !isHexColor(sh.Color) {
				errs = append(errs, prefix+": line color is not a hex color")
			}
		}
	}
	return errs
}

// isHexColor accepts "#RRGGBB" and "#RGB".
func isHexColor(s string) bool {
	if len(s) == 0 || s[0] != '#' {
		return false
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 3 {
		return false
	}
	for i := 0; i < len(hex); i++ {
		b := hex[i]
		ok := (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
		if !ok {
			return false
		}
	}
	return true
}

// hexRGB normalizes a "#RRGGBB" or "#RGB" string to the bare uppercase
// six-digit form OOXML expects. Invalid input maps to white rather than
// corrupting the part.
func hexRGB(s string) string {
	if !isHexColor(s) {
		return "FFFFFF"
	}
	hex := strings.ToUpper(s[1:])
	if len(hex) == 3 {
		return strings.Repeat(string(hex[0]), 2) +
			strings.Repeat(string(hex[1]), 2) +
			strings.Repeat(string(hex[2]), 2)
	}
	return hex
}
