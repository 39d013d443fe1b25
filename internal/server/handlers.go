package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/deckgen/pkg/buildinfo"
	"github.com/matzehuels/deckgen/pkg/errors"
	"github.com/matzehuels/deckgen/pkg/pipeline"
	"github.com/matzehuels/deckgen/pkg/pptx"
	"github.com/matzehuels/deckgen/pkg/store"
)

// deckResponse is the body returned after a successful build.
type deckResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Slides   int    `json:"slides"`
	Size     int    `json:"size"`
	URL      string `json:"url"`
}

// errorResponse carries a coded error back to the client.
type errorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// healthResponse is the liveness probe body.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// handleCreateDeck builds a deck from the request payload and stages the
// artifact for download.
func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidPayload, err, "read request body"))
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Payload:    body,
		RowBudget:  s.deck.RowBudget,
		Background: s.deck.Background,
		TextColor:  s.deck.TextColor,
		Accent:     s.deck.Accent,
		Logger:     s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	art := &store.Artifact{
		ID:         store.NewID(),
		Filename:   res.Filename,
		Data:       res.PPTX,
		SlideCount: res.SlideCount,
	}
	if err := s.store.Put(r.Context(), art); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "stage artifact"))
		return
	}

	s.writeJSON(w, http.StatusCreated, deckResponse{
		ID:       art.ID,
		Filename: art.Filename,
		Slides:   art.SlideCount,
		Size:     art.Size(),
		URL:      fmt.Sprintf("/v1/decks/%s/file", art.ID),
	})
}

// handleDownloadDeck streams a staged artifact as a file attachment.
func (s *Server) handleDownloadDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	art, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "load artifact"))
		return
	}
	if art == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeArtifactNotFound, "deck %s not found or expired", id))
		return
	}

	w.Header().Set("Content-Type", pptx.ContentTypePresentation)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(art.Size()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Data)
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: "deckgen",
		Version: buildinfo.Version,
	})
}

// writeJSON serializes v with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

// writeError maps a coded error onto an HTTP status and JSON body.
// Server-side failures log the full chain; the client only sees the
// user message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	s.writeJSON(w, status, errorResponse{
		Code:  string(code),
		Error: errors.UserMessage(err),
	})
}

// statusForCode maps error codes onto HTTP statuses. Payload problems
// are the client's fault, failed build stages on a well-formed payload
// are unprocessable, everything else is internal.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidPayload,
		errors.ErrCodeInvalidBlock,
		errors.ErrCodeInvalidChart,
		errors.ErrCodeInvalidTable,
		errors.ErrCodeDecodeFailed:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeArtifactNotFound:
		return http.StatusNotFound
	case errors.ErrCodeChartFailed,
		errors.ErrCodeEncodeFailed,
		errors.ErrCodeVerifyFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
