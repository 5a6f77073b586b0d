// Package httpapi exposes the expansion pipeline over HTTP. Degraded
// results are successful responses by contract; only malformed requests
// and unresolvable articles map to error statuses.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/versolabs/verso/internal/logger"
	"github.com/versolabs/verso/internal/model"
)

// Pipeline is the orchestrator surface the server needs.
type Pipeline interface {
	Expand(ctx context.Context, req model.ExpandRequest) (*model.ExpansionResult, error)
	Trending(ctx context.Context, limit int) ([]model.StorySummary, error)
}

// Server wraps the chi router around the pipeline.
type Server struct {
	router   *chi.Mux
	pipeline Pipeline
}

// NewServer creates the HTTP server for the given pipeline.
func NewServer(pipeline Pipeline) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	s := &Server{router: r, pipeline: pipeline}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/expand", s.handleExpand)
		r.Get("/trending", s.handleTrending)
	})
}

// Handler returns the root handler for http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	req := model.DefaultExpandRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.pipeline.Expand(r.Context(), req)
	if err != nil {
		switch {
		case model.IsValidation(err):
			writeError(w, http.StatusBadRequest, err.Error())
		case model.IsNotFound(err):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			logger.Log.WithError(err).Error("expansion failed")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	stories, err := s.pipeline.Trending(r.Context(), limit)
	if err != nil {
		if errors.Is(err, model.ErrUpstreamUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "article store unavailable")
			return
		}
		logger.Log.WithError(err).Error("trending query failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"stories": stories})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
