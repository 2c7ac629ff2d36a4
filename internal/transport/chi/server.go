// Package chi exposes the assistant over HTTP: a streaming chat endpoint,
// a filter-based search endpoint, catalog listing, health and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hotelgenx/concierge/internal/domain"
	hotelsrepo "github.com/hotelgenx/concierge/internal/repository/hotels"
	chatuc "github.com/hotelgenx/concierge/internal/usecase/chat"
)

// StreamOptions paces SSE delivery. Zero delays stream at full speed.
type StreamOptions struct {
	WordDelay time.Duration
	CardDelay time.Duration
}

// Server handles the concierge HTTP API.
type Server struct {
	chat    *chatuc.Service
	catalog *hotelsrepo.Repo
	health  healthChecker
	stream  StreamOptions
	logger  *zap.Logger
}

// healthChecker probes the backing store.
type healthChecker interface {
	Ping(ctx context.Context) error
}

// NewServer creates an HTTP API server.
func NewServer(
	chat *chatuc.Service,
	catalog *hotelsrepo.Repo,
	health healthChecker,
	stream StreamOptions,
	logger *zap.Logger,
) *Server {
	return &Server{
		chat:    chat,
		catalog: catalog,
		health:  health,
		stream:  stream,
		logger:  logger,
	}
}

// Routes registers all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/chat", s.handleChat)
	r.Post("/api/hotels/search", s.handleHotelSearch)
	r.Get("/api/hotels", s.handleListHotels)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// handleChat streams the assistant's answer over SSE, one event per
// outbound message. Text messages are split into word chunks to simulate
// incremental typing; the chunk order matches production order.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "message is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, codeInternalError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sink := newSSESink(w, flusher, s.stream)
	q := domain.NewQuery(req.Message, req.SessionID, time.Now())

	if err := s.chat.Handle(r.Context(), q, sink); err != nil {
		// The stream is already open; all we can do is log and stop.
		s.logger.Warn("chat stream aborted", zap.Error(err))
		return
	}
	sink.Done()
}

// handleHotelSearch serves filter-based search without text extraction.
func (s *Server) handleHotelSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}

	results, err := s.chat.SearchDirect(r.Context(), req.Query, req.Filters.toConstraints(), req.TopK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Items: results,
		Total: len(results),
	})
}

// handleListHotels pages through the raw catalog.
func (s *Server) handleListHotels(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 20)
	if limit <= 0 || limit > 100 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be between 1 and 100")
		return
	}
	if offset < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "offset must not be negative")
		return
	}

	items, total, err := s.catalog.List(r.Context(), offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Items:  items,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// handleHealth reports store connectivity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := "healthy"
	httpStatus := http.StatusOK

	if err := s.health.Ping(r.Context()); err != nil {
		checks["database"] = "unavailable"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
		s.logger.Warn("health check failed", zap.Error(err))
	}

	writeJSON(w, httpStatus, healthResponse{Status: status, Checks: checks})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, codeValidationFailed, domain.ErrInvalidQuery.Error())
	case errors.Is(err, domain.ErrIndexUnavailable):
		s.logger.Error("catalog unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, codeIndexUnavailable, domain.ErrIndexUnavailable.Error())
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		s.logger.Error("embedding unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeEmbeddingUnavailable, domain.ErrEmbeddingUnavailable.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
