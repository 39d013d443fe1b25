// Package pkg provides the core libraries for Deckgen presentation generation.
//
// # Overview
//
// Deckgen turns structured research payloads (JSON) into PowerPoint
// presentations. The pkg directory is organized into three main areas:
//
//  1. Domain - payload schema, slide composition, chart drawing, PPTX encoding
//  2. Infrastructure - caching, artifact storage, configuration, observability
//  3. Orchestration - the staged build pipeline shared by CLI and server
//
// # Architecture
//
// The typical data flow through Deckgen:
//
//	JSON payload (file, inline, or URL)
//	         ↓
//	    [deck] package (envelope decode + validation + defaults)
//	         ↓
//	    [compose] package (slide builders + theme + guardrail)
//	         ↓          ↘ [chart] (gg rasterization) + [tablegrid] (pagination)
//	    [pptx] package (OOXML encode + archive verify)
//	         ↓
//	    .pptx output
//
// # Quick Start
//
// Build a deck from a payload file:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/deckgen/pkg/cache"
//	    "github.com/matzehuels/deckgen/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	defer runner.Close()
//
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    InputPath: "payload.json",
//	})
//	if err != nil {
//	    // handle err
//	}
//	os.WriteFile(res.Filename, res.PPTX, 0644)
//
// # Main Packages
//
// ## Domain
//
// [deck] - Payload schema and envelope decoding. Detects the generic and
// ESG formats, fills upstream defaults, and validates before composition.
//
// [compose] - Slide builders and the document assembler. Dispatches per
// payload format, applies the theme and customization overrides, and runs
// the post-build guardrail that removes empty placeholders.
//
// [chart] - Chart rasterization on fogleman/gg: bar, column, line, pie,
// doughnut and stacked sentiment charts rendered to PNG for embedding.
//
// [canvas] - Slide geometry: the 16x9in frame, margins, title band and
// content rectangle, with position-then-size clamping.
//
// [tablegrid] - Table layout policy: row-budget pagination, proportional
// column widths and zebra striping.
//
// [textpolicy] - Site-keyed text truncation budgets.
//
// [pptx] - Write-only OOXML encoder (zip container, slide parts, shapes,
// media) plus archive verification by reopening the produced file.
//
// [fonts] - TTF discovery and freetype face caching for chart text.
//
// ## Infrastructure
//
// [cache] - Byte cache for chart renders and fetched payloads. File-backed
// for the CLI, Redis-backed for the server, null for tests.
//
// [store] - Transient artifact store handing built decks from the build
// request to the download request. Memory and Redis backends, TTL expiry.
//
// [config] - TOML configuration layered over defaults.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Hook interfaces for build, cache and server events.
//
// [httputil] - Retrying payload fetcher for URL inputs.
//
// [buildinfo] - Version information injected at build time.
//
// ## Orchestration
//
// [pipeline] - The staged build runner (decode → compose → encode →
// verify) used by both the CLI and the HTTP server, with chart-render
// caching layered in between.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/compose/...    # Specific package
//
// [deck]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/deck
// [compose]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/compose
// [chart]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/chart
// [canvas]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/canvas
// [tablegrid]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/tablegrid
// [textpolicy]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/textpolicy
// [pptx]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/pptx
// [fonts]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/fonts
// [cache]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/buildinfo
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/deckgen/pkg/pipeline
package pkg
