// Package cli implements the deckgen command-line interface.
//
// This package provides commands for building PowerPoint decks from
// structured JSON payloads, serving the same build over HTTP, browsing
// a payload's slide outline, and managing the chart cache. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Build a .pptx deck from a payload file or URL
//   - serve: Run the HTTP build service
//   - inspect: Browse a payload's slide outline interactively
//   - cache: Manage the chart cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --config for an explicit configuration file.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deckgen/pkg/buildinfo"
	"github.com/matzehuels/deckgen/pkg/cache"
	"github.com/matzehuels/deckgen/pkg/config"
	"github.com/matzehuels/deckgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "deckgen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Deckgen builds PowerPoint decks from structured payloads",
		Long:         `Deckgen turns structured JSON payloads - generic slide lists or ESG research summaries - into finished PowerPoint decks, with rendered charts, paginated tables and verified archives.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(log.DebugLevel)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFilename+")")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configuration honoring the --config flag.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg *config.Config, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(cfg, noCache), nil, c.Logger)
}

// newCache resolves the chart cache from config and flags. A cache
// directory that cannot be opened degrades to a null cache with a
// warning instead of failing the command.
func (c *CLI) newCache(cfg *config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		printWarning("Cache disabled: %v", err)
		return cache.NewNullCache()
	}
	return fc
}
