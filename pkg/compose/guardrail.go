package compose

import (
	"strings"

	"github.com/matzehuels/deckgen/pkg/pptx"
)

// stockPrompt is the text a template placeholder carries before anyone
// types into it.
const stockPrompt = "Click to add"

// cleanup strips leftover template placeholders from a finished slide:
// content-like placeholders that never received text or still carry the
// stock prompt. The title placeholder always survives. Removal failures
// are logged and swallowed; a stray empty frame is cosmetic, never
// fatal.
func (d *deckBuilder) cleanup(s *pptx.Slide) {
	shapes := s.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		ph, ok := shapes[i].(*pptx.Placeholder)
		if !ok || ph.Kind == pptx.PlaceholderTitle {
			continue
		}
		text := strings.TrimSpace(ph.Text())
		if text != "" && !strings.HasPrefix(text, stockPrompt) {
			continue
		}
		if err := s.Remove(i); err != nil {
			d.logger.Warn("placeholder cleanup failed", "shape", i, "err", err)
		}
	}
}
