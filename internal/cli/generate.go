package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckgen/pkg/config"
	"github.com/matzehuels/deckgen/pkg/httputil"
	"github.com/matzehuels/deckgen/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output    string // output file path (derived from the search phrase if empty)
	noCache   bool   // disable the chart/payload cache
	refresh   bool   // re-render charts even when cached
	noVerify  bool   // skip reopening the finished archive
	rowBudget int    // table rows per slide (0 = config default)
}

// generateCommand creates the generate command for building decks.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <payload.json|url>",
		Short: "Build a PowerPoint deck from a payload",
		Long: `Build a PowerPoint deck from a JSON payload.

The payload is a local file or an http(s) URL. Generic payloads carry a
"slides" array; ESG research payloads carry an "executiveSummary"
section. Rendered charts and fetched payloads are cached between runs.

Examples:
  deckgen generate payload.json
  deckgen generate payload.json -o board_deck.pptx --row-budget 8
  deckgen generate https://example.com/deck.json --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cfg, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from the search phrase)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render charts even when cached")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "skip reopening the finished archive")
	cmd.Flags().IntVar(&opts.rowBudget, "row-budget", 0, "table rows per slide (default from config)")

	return cmd
}

// runGenerate resolves the payload input, runs the build pipeline, and
// prints the result summary.
func (c *CLI) runGenerate(ctx context.Context, cfg *config.Config, input string, gopts generateOpts) error {
	runner := c.newRunner(cfg, gopts.noCache)
	defer runner.Close()

	opts := pipeline.Options{
		OutputPath: gopts.output,
		RowBudget:  cfg.Deck.RowBudget,
		Background: cfg.Deck.Background,
		TextColor:  cfg.Deck.TextColor,
		Accent:     cfg.Deck.Accent,
		NoVerify:   gopts.noVerify,
		Refresh:    gopts.refresh,
		Logger:     c.Logger,
	}
	if gopts.rowBudget > 0 {
		opts.RowBudget = gopts.rowBudget
	}

	if httputil.IsURL(input) {
		data, err := c.fetchPayload(ctx, runner, input)
		if err != nil {
			return err
		}
		opts.Payload = data
	} else {
		opts.InputPath = input
	}

	spinner := newSpinnerWithContext(ctx, "Building deck...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return fmt.Errorf("generate: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Execute only writes when an explicit output path is set; default
	// to the derived filename in the working directory.
	outputPath := gopts.output
	if outputPath == "" {
		outputPath = res.Filename
		if err := os.WriteFile(outputPath, res.PPTX, 0644); err != nil {
			return fmt.Errorf("write output %s: %w", outputPath, err)
		}
	}

	printSuccess("Deck complete")
	printFile(outputPath)
	printDeckStats(res.SlideCount, len(res.PPTX), res.Stats.Cache.ChartHits, res.Stats.Cache.ChartMisses, res.Stats.Total)
	printNewline()
	printNextStep("Inspect the outline", appName+" inspect "+input)

	return nil
}

// fetchPayload downloads a payload URL through the runner's cache.
func (c *CLI) fetchPayload(ctx context.Context, runner *pipeline.Runner, url string) ([]byte, error) {
	spinner := newSpinnerWithContext(ctx, "Fetching payload...")
	spinner.Start()

	f := httputil.NewFetcher(runner.Cache, runner.Keyer)
	data, err := f.Fetch(ctx, url)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	spinner.Stop()
	return data, nil
}
