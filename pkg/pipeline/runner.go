package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckgen/pkg/cache"
	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/compose"
	"github.com/matzehuels/deckgen/pkg/deck"
	"github.com/matzehuels/deckgen/pkg/observability"
	"github.com/matzehuels/deckgen/pkg/pptx"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store build results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → compose → encode → verify pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	start := time.Now()
	result := &Result{}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Build().OnDecodeStart(ctx)
	payload, err := Decode(opts)
	result.Stats.DecodeTime = time.Since(decodeStart)
	if err != nil {
		observability.Build().OnDecodeComplete(ctx, "", result.Stats.DecodeTime, err)
		return nil, fmt.Errorf("decode: %w", err)
	}
	observability.Build().OnDecodeComplete(ctx, string(payload.Format), result.Stats.DecodeTime, nil)

	r.Logger.Info("decoded payload",
		"format", payload.Format,
		"phrase", payload.SearchPhrase,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Compose
	composeStart := time.Now()
	observability.Build().OnComposeStart(ctx, string(payload.Format))
	prs, cacheInfo, err := r.ComposeWithCacheInfo(ctx, payload, opts)
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.Cache = cacheInfo
	if err != nil {
		observability.Build().OnComposeComplete(ctx, string(payload.Format), 0, result.Stats.ComposeTime, err)
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.SlideCount = prs.SlideCount()
	observability.Build().OnComposeComplete(ctx, string(payload.Format), result.SlideCount, result.Stats.ComposeTime, nil)

	r.Logger.Info("composed slides",
		"slides", result.SlideCount,
		"chart_hits", cacheInfo.ChartHits,
		"chart_misses", cacheInfo.ChartMisses,
		"duration", result.Stats.ComposeTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	data, err := Encode(prs)
	result.Stats.EncodeTime = time.Since(encodeStart)
	observability.Build().OnEncodeComplete(ctx, len(data), result.Stats.EncodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.PPTX = data
	result.Filename = Filename(payload.SearchPhrase)

	r.Logger.Info("encoded document",
		"bytes", len(data),
		"duration", result.Stats.EncodeTime)

	// Stage 4: Verify
	if opts.ShouldVerify() {
		verifyStart := time.Now()
		err := Verify(data)
		result.Stats.VerifyTime = time.Since(verifyStart)
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
		r.Logger.Info("verified archive", "duration", result.Stats.VerifyTime)
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, data, 0644); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		r.Logger.Info("wrote output", "path", opts.OutputPath)
	}

	result.Stats.Total = time.Since(start)
	return result, nil
}

// Decode parses the configured payload input into a validated payload.
func (r *Runner) Decode(opts Options) (*deck.Payload, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	return Decode(opts)
}

// ComposeWithCacheInfo assembles a presentation, rendering charts through
// the runner's cache, and returns chart cache hit/miss counts.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, payload *deck.Payload, opts Options) (*pptx.Presentation, CacheInfo, error) {
	if err := opts.ValidateForCompose(); err != nil {
		return nil, CacheInfo{}, err
	}
	r.applyLogger(&opts)

	var info CacheInfo
	prs, err := Compose(payload, r.chartRenderFunc(ctx, opts, &info), opts)
	if err != nil {
		return nil, info, err
	}
	return prs, info, nil
}

// Compose is a convenience wrapper that calls ComposeWithCacheInfo and discards the cache info.
func (r *Runner) Compose(ctx context.Context, payload *deck.Payload, opts Options) (*pptx.Presentation, error) {
	prs, _, err := r.ComposeWithCacheInfo(ctx, payload, opts)
	return prs, err
}

// chartRenderFunc wraps the theme's chart renderer with the runner's
// cache. Keys combine the spec content hash with the render dimensions
// and text color, so a styling change never serves a stale image. The
// returned func counts traffic into info and is only safe for one
// build at a time.
func (r *Runner) chartRenderFunc(ctx context.Context, opts Options, info *CacheInfo) compose.RenderFunc {
	base := compose.ChartRenderer(opts.Theme())

	return func(spec chart.Spec, width, height int) (*chart.Image, error) {
		specData, _ := json.Marshal(spec)
		key := r.Keyer.ChartKey(cache.Hash(specData), opts.ChartKeyOpts(width, height))

		// Try cache first (unless refresh requested)
		start := time.Now()
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				info.ChartHits++
				observability.Cache().OnCacheHit(ctx, "chart")
				observability.Build().OnChartRender(ctx, string(spec.Kind), true, time.Since(start))
				return &chart.Image{PNG: data, Width: width, Height: height}, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "chart")

		// Render
		img, err := base.Render(spec, width, height)
		if err != nil {
			return nil, err
		}
		info.ChartMisses++
		observability.Build().OnChartRender(ctx, string(spec.Kind), false, time.Since(start))

		// Cache the result
		_ = r.Cache.Set(ctx, key, img.PNG, cache.TTLChart)
		observability.Cache().OnCacheSet(ctx, "chart", len(img.PNG))

		return img, nil
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
