package pipeline

import (
	"github.com/matzehuels/deckgen/pkg/compose"
	"github.com/matzehuels/deckgen/pkg/deck"
	"github.com/matzehuels/deckgen/pkg/pptx"
)

// Compose assembles a presentation from a decoded payload.
//
// The assembler is configured from the options: resolved theme, row
// budget and logger. A nil render falls back to the theme's direct
// chart renderer; the Runner passes its cache-wrapping render func
// here so standalone callers stay cache-free.
func Compose(payload *deck.Payload, render compose.RenderFunc, opts Options) (*pptx.Presentation, error) {
	asmOpts := []compose.Option{
		compose.WithTheme(opts.Theme()),
	}
	if opts.RowBudget > 0 {
		asmOpts = append(asmOpts, compose.WithRowBudget(opts.RowBudget))
	}
	if opts.Logger != nil {
		asmOpts = append(asmOpts, compose.WithLogger(opts.Logger))
	}
	if render != nil {
		asmOpts = append(asmOpts, compose.WithRenderFunc(render))
	}

	return compose.New(asmOpts...).Build(payload)
}
