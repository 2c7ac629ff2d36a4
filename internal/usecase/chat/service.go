// Package chat orchestrates the assistant pipeline: route the utterance,
// run retrieval for hotel queries, or hand off to a collaborator.
package chat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hotelgenx/concierge/internal/domain"
	"github.com/hotelgenx/concierge/internal/domain/constraint"
	"github.com/hotelgenx/concierge/internal/metrics"
)

const (
	emptyQueryText = "Напишите, какой отель вы ищете, и я подберу варианты 🏨"
	failureText    = "❌ Произошла техническая ошибка. Попробуйте ещё раз."
)

// Service runs the query pipeline and emits messages through a Sink.
type Service struct {
	router    Router
	extractor Extractor
	embedder  Embedder
	gateway   Gateway
	presenter Presenter
	research  Collaborator
	smallTalk Collaborator

	topK          int
	embedTimeout  time.Duration
	searchTimeout time.Duration
	logger        *zap.Logger
}

// Options bounds the pipeline's external calls.
type Options struct {
	TopK          int
	EmbedTimeout  time.Duration
	SearchTimeout time.Duration
}

// New creates the chat service.
func New(
	router Router,
	extractor Extractor,
	embedder Embedder,
	gateway Gateway,
	presenter Presenter,
	research Collaborator,
	smallTalk Collaborator,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.EmbedTimeout <= 0 {
		opts.EmbedTimeout = 10 * time.Second
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = 5 * time.Second
	}

	return &Service{
		router:        router,
		extractor:     extractor,
		embedder:      embedder,
		gateway:       gateway,
		presenter:     presenter,
		research:      research,
		smallTalk:     smallTalk,
		topK:          opts.TopK,
		embedTimeout:  opts.EmbedTimeout,
		searchTimeout: opts.SearchTimeout,
		logger:        logger,
	}
}

// Handle routes a query and delivers the resulting messages through sink,
// in production order. A sink error (including ctx cancellation) stops
// delivery immediately.
func (s *Service) Handle(ctx context.Context, q domain.Query, sink Sink) error {
	if q.IsEmpty() {
		return sink.Send(ctx, domain.NewTextMessage(emptyQueryText))
	}

	intent := s.router.Route(q.Text())
	metrics.IntentRoutedTotal.WithLabelValues(string(intent)).Inc()

	s.logger.Info("query routed",
		zap.String("session_id", q.SessionID()),
		zap.String("intent", string(intent)))

	switch intent {
	case domain.IntentHotelSearch:
		return s.handleHotelSearch(ctx, q, sink)
	case domain.IntentResearch:
		return s.handleCollaborator(ctx, q, s.research, sink)
	default:
		return s.handleCollaborator(ctx, q, s.smallTalk, sink)
	}
}

// handleHotelSearch runs extract + embed, searches the catalog, and
// presents the ranked results.
func (s *Service) handleHotelSearch(ctx context.Context, q domain.Query, sink Sink) error {
	cons := s.extractor.Extract(q.Text())
	vector := s.embedOrFallback(ctx, q.Text())

	searchCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	start := time.Now()
	results, err := s.gateway.Search(searchCtx, vector, cons, s.topK)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Error("hotel search failed",
			zap.String("session_id", q.SessionID()), zap.Error(err))
		return sink.Send(ctx, domain.NewErrorMessage(failureText))
	}
	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()

	for _, msg := range s.presenter.Present(results) {
		if err := sink.Send(ctx, msg); err != nil {
			return fmt.Errorf("deliver message: %w", err)
		}
	}
	return nil
}

// SearchDirect serves the REST search endpoint: the caller supplies
// explicit filters instead of free-form text, so extraction is skipped
// and the query text is used for ranking only.
func (s *Service) SearchDirect(
	ctx context.Context, query string, cons constraint.Set, topK int,
) ([]domain.Hotel, error) {
	if topK <= 0 {
		topK = s.topK
	}

	vector := s.embedOrFallback(ctx, query)

	searchCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	start := time.Now()
	results, err := s.gateway.Search(searchCtx, vector, cons, topK)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("direct search: %w", err)
	}
	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()
	return results, nil
}

// embedOrFallback vectorizes the utterance, degrading to a deterministic
// fallback vector when the provider is down. Search quality drops but the
// pipeline never crashes on an embedding outage.
func (s *Service) embedOrFallback(ctx context.Context, text string) []float32 {
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	vector, err := s.embedder.Embed(embedCtx, text)
	if err == nil && len(vector) > 0 {
		return vector
	}

	metrics.EmbeddingFallbacksTotal.Inc()
	s.logger.Warn("embedding unavailable, using fallback vector", zap.Error(err))
	return fallbackVector(text, s.embedder.Dimensions())
}

func (s *Service) handleCollaborator(
	ctx context.Context, q domain.Query, c Collaborator, sink Sink,
) error {
	answer, err := c.Answer(ctx, q.Text())
	if err != nil {
		s.logger.Error("collaborator failed",
			zap.String("session_id", q.SessionID()), zap.Error(err))
		return sink.Send(ctx, domain.NewErrorMessage(failureText))
	}
	return sink.Send(ctx, domain.NewTextMessage(answer))
}
