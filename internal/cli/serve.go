package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckgen/internal/server"
	"github.com/matzehuels/deckgen/pkg/config"
	"github.com/matzehuels/deckgen/pkg/store"
)

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve deck builds over HTTP",
		Long: `Serve deck builds over HTTP.

POST /v1/decks builds a deck from the request payload and stages it for
download under GET /v1/decks/{id}/file. Staged decks expire after the
configured TTL. The artifact store backend (in-memory or Redis) comes
from the [server] config section.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// runServe wires the store and runner into the HTTP server and blocks
// until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	st, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	runner := c.newRunner(cfg, false)
	defer runner.Close()

	printInfo("Serving on %s (%s store, artifacts expire after %s)",
		cfg.Server.Addr, cfg.Server.Store, cfg.Server.ArtifactTTL.Std())

	return server.New(cfg, runner, st, c.Logger).Run(ctx)
}

// newStore opens the artifact store backend named in the config.
func newStore(cfg *config.Config) (store.Store, error) {
	ttl := cfg.Server.ArtifactTTL.Std()
	switch cfg.Server.Store {
	case config.StoreRedis:
		return store.NewRedisStore(cfg.Server.RedisAddr, ttl)
	default:
		return store.NewMemoryStore(ttl), nil
	}
}
