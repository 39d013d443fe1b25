// Package server exposes deck generation over HTTP.
//
// The surface is small: POST a payload, get back an artifact id, fetch
// the file. Builds run synchronously in the request; finished decks are
// staged in a store and served from there, so download URLs survive as
// long as the artifact TTL.
//
//	POST /v1/decks           build a deck, respond 201 with its id
//	GET  /v1/decks/{id}/file download a staged deck
//	GET  /healthz            liveness probe
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/deckgen/pkg/config"
	"github.com/matzehuels/deckgen/pkg/pipeline"
	"github.com/matzehuels/deckgen/pkg/store"
)

const (
	// drainTimeout bounds graceful shutdown once the context is done.
	drainTimeout = 10 * time.Second

	// maxBodySize caps an incoming payload request body.
	maxBodySize = 20 << 20
)

// Server wires the build pipeline and artifact store into HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	deck   config.DeckConfig
	addr   string
	logger *log.Logger
}

// New creates a server. The deck section of the config supplies the
// build defaults applied to every request.
func New(cfg *config.Config, runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  st,
		deck:   cfg.Deck,
		addr:   cfg.Server.Addr,
		logger: logger,
	}
}

// Routes builds the router with the request id, logging and recovery
// middleware applied.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Post("/v1/decks", s.handleCreateDeck)
	r.Get("/v1/decks/{id}/file", s.handleDownloadDeck)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Routes(),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "drain", drainTimeout)
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
