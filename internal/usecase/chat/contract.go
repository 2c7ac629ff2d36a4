package chat

import (
	"context"

	"github.com/hotelgenx/concierge/internal/domain"
	"github.com/hotelgenx/concierge/internal/domain/constraint"
)

// Router classifies an utterance into an intent.
type Router interface {
	Route(text string) domain.Intent
}

// Extractor derives explicit filters from an utterance.
type Extractor interface {
	Extract(text string) constraint.Set
}

// Embedder vectorizes text into an embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// Gateway searches the hotel catalog.
type Gateway interface {
	Search(ctx context.Context, vector []float32, cons constraint.Set, topK int) ([]domain.Hotel, error)
}

// Presenter renders results as outbound messages.
type Presenter interface {
	Present(results []domain.Hotel) []domain.Message
}

// Collaborator answers a query outside the retrieval pipeline (research
// lookups, small talk).
type Collaborator interface {
	Answer(ctx context.Context, text string) (string, error)
}

// Sink receives outbound messages in production order. Send blocks until
// the message is accepted or ctx is done.
type Sink interface {
	Send(ctx context.Context, msg domain.Message) error
}
