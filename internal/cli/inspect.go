package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/config"
	"github.com/matzehuels/deckgen/pkg/deck"
	"github.com/matzehuels/deckgen/pkg/httputil"
	"github.com/matzehuels/deckgen/pkg/pipeline"
	"github.com/matzehuels/deckgen/pkg/pptx"
)

// slideOutline summarizes one composed slide for the inspect views.
type slideOutline struct {
	Index  int
	Kind   string // title, content, chart, table, divider
	Title  string
	Texts  int      // text-bearing shapes
	Charts int      // embedded chart images
	Rows   int      // table body rows
	Detail []string // per-shape description lines
}

// inspectCommand creates the inspect command for browsing slide outlines.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect <payload.json|url>",
		Short: "Browse a payload's slide outline",
		Long: `Browse the slide outline a payload would build.

The payload is composed without rendering charts, and the resulting
slides are listed with their titles and content counts. Enter shows a
slide's block detail; q quits. Use --plain for non-interactive output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), cfg, args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the outline without the interactive browser")

	return cmd
}

// runInspect composes the payload into an outline and shows it.
func (c *CLI) runInspect(ctx context.Context, cfg *config.Config, input string, plain bool) error {
	data, err := c.readPayload(ctx, cfg, input)
	if err != nil {
		return err
	}

	payload, err := deck.Parse(data)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Payload:    data,
		RowBudget:  cfg.Deck.RowBudget,
		Background: cfg.Deck.Background,
		TextColor:  cfg.Deck.TextColor,
		Accent:     cfg.Deck.Accent,
		Logger:     c.Logger,
	}
	if err := opts.ValidateForCompose(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	outlines, err := outlineSlides(payload, opts)
	if err != nil {
		return fmt.Errorf("compose outline: %w", err)
	}
	prog.done(fmt.Sprintf("Composed %d slides", len(outlines)))

	if plain {
		printOutline(payload, outlines)
		return nil
	}

	p := tea.NewProgram(newOutlineModel(payload.SearchPhrase, outlines))
	_, err = p.Run()
	return err
}

// readPayload loads a payload from a local file or an http(s) URL.
func (c *CLI) readPayload(ctx context.Context, cfg *config.Config, input string) ([]byte, error) {
	if httputil.IsURL(input) {
		cch := c.newCache(cfg, false)
		defer cch.Close()

		data, err := httputil.NewFetcher(cch, nil).Fetch(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", input, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read payload %s: %w", input, err)
	}
	return data, nil
}

// outlineSlides composes the payload with a stub chart renderer and
// summarizes the resulting slides. Charts are counted, never drawn, so
// the outline is cheap even for chart-heavy decks.
func outlineSlides(p *deck.Payload, opts pipeline.Options) ([]slideOutline, error) {
	stub := func(spec chart.Spec, width, height int) (*chart.Image, error) {
		return &chart.Image{Width: width, Height: height}, nil
	}

	prs, err := pipeline.Compose(p, stub, opts)
	if err != nil {
		return nil, err
	}

	outlines := make([]slideOutline, 0, prs.SlideCount())
	for i, s := range prs.Slides() {
		outlines = append(outlines, summarizeSlide(i, s))
	}
	return outlines, nil
}

// summarizeSlide reduces a slide's shapes to outline counts and detail lines.
func summarizeSlide(index int, s *pptx.Slide) slideOutline {
	o := slideOutline{Index: index}
	titled := false

	for _, shape := range s.Shapes() {
		switch sh := shape.(type) {
		case *pptx.Placeholder:
			text := sh.Text()
			if sh.Kind == pptx.PlaceholderTitle {
				titled = true
				if o.Title == "" {
					o.Title = text
				}
			}
			if text != "" {
				o.Texts++
				o.Detail = append(o.Detail, text)
			}
		case *pptx.TextBox:
			text := paragraphText(sh.Paragraphs)
			if o.Title == "" {
				o.Title = firstLine(text)
			}
			if text != "" {
				o.Texts++
				o.Detail = append(o.Detail, text)
			}
		case *pptx.Picture:
			o.Charts++
			name := sh.AltText
			if name == "" {
				name = sh.Name
			}
			o.Detail = append(o.Detail, "[chart] "+name)
		case *pptx.Table:
			rows := len(sh.Rows)
			if rows > 0 {
				rows-- // header row
			}
			o.Rows += rows
			cols := 0
			if len(sh.Rows) > 0 {
				cols = len(sh.Rows[0].Cells)
			}
			o.Detail = append(o.Detail, fmt.Sprintf("[table] %d columns, %d rows", cols, rows))
		}
	}

	o.Kind = classifySlide(index, titled, o)
	return o
}

// classifySlide names the slide by its dominant content.
func classifySlide(index int, titled bool, o slideOutline) string {
	switch {
	case index == 0:
		return "title"
	case o.Rows > 0:
		return "table"
	case o.Charts > 0:
		return "chart"
	case !titled:
		return "divider"
	default:
		return "content"
	}
}

// printOutline prints the outline as plain indented lines.
func printOutline(p *deck.Payload, outlines []slideOutline) {
	printInfo("%s (%s, %d slides)", p.SearchPhrase, p.Format, len(outlines))
	for _, o := range outlines {
		extra := ""
		if o.Charts > 0 {
			extra += fmt.Sprintf("  charts:%d", o.Charts)
		}
		if o.Rows > 0 {
			extra += fmt.Sprintf("  rows:%d", o.Rows)
		}
		printDetail("%2d  %-8s %s%s", o.Index+1, o.Kind, o.Title, extra)
	}
}

// paragraphText joins paragraph runs, one line per paragraph.
func paragraphText(paragraphs []pptx.Paragraph) string {
	lines := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		var b strings.Builder
		for _, run := range para.Runs {
			b.WriteString(run.Text)
		}
		if b.Len() > 0 {
			lines = append(lines, b.String())
		}
	}
	return strings.Join(lines, "\n")
}

// firstLine returns the text up to the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
