// Package server exposes the narration pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/readaloud/narrator/internal/article"
	"github.com/readaloud/narrator/internal/audio"
	"github.com/readaloud/narrator/internal/narrator"
	"github.com/readaloud/narrator/internal/observability"
	"github.com/readaloud/narrator/internal/tts"
)

// NarrationService runs the pipeline for one article URL.
type NarrationService interface {
	Narrate(ctx context.Context, url string) ([]byte, error)
}

// ErrorResponse is the JSON body returned for failed narration requests.
// Stage names which part of the pipeline failed.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage"`
}

// Handler serves narration requests.
type Handler struct {
	svc NarrationService
}

// NewHandler creates an HTTP handler around a narration service.
func NewHandler(svc NarrationService) *Handler {
	return &Handler{svc: svc}
}

// Narrate handles GET /?url=U: it synthesizes a narration for the article
// at U and responds with the WAV stream, or with a JSON error naming the
// failed stage. Never a 200 with empty or partial audio.
func (h *Handler) Narrate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "request")
		return
	}

	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing required query parameter: url", "request")
		return
	}

	logger := observability.WithRequestID("")
	logger.Info().Str("url", url).Msg("narration requested")

	wavBytes, err := h.svc.Narrate(r.Context(), url)
	if err != nil {
		status, stage := classify(err)
		logger.Error().Err(err).Str("stage", stage).Msg("narration failed")
		writeError(w, status, err.Error(), stage)
		return
	}

	logger.Info().Int("bytes", len(wavBytes)).Msg("narration served")

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	w.Write(wavBytes)
}

// classify maps a pipeline error to an HTTP status and a stage name.
func classify(err error) (int, string) {
	var fetchErr *article.FetchError
	if errors.As(err, &fetchErr) {
		return http.StatusBadGateway, "fetch"
	}
	if errors.Is(err, narrator.ErrNoSentences) {
		return http.StatusUnprocessableEntity, "fetch"
	}

	var synthErr *tts.SynthesisError
	if errors.As(err, &synthErr) {
		return http.StatusBadGateway, "synthesis"
	}

	var decodeErr *audio.DecodeError
	if errors.As(err, &decodeErr) {
		return http.StatusBadGateway, "decode"
	}

	return http.StatusInternalServerError, "internal"
}

func writeError(w http.ResponseWriter, status int, message, stage string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Stage: stage})
}
