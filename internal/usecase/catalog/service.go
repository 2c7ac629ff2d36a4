// Package catalog ingests hotel records from a JSON file into the vector
// store, embedding descriptions for records that do not carry a
// precomputed vector.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hotelgenx/concierge/internal/domain"
)

// Repository is the storage contract for ingestion.
type Repository interface {
	EnsureIndex(ctx context.Context, dim int) error
	Upsert(ctx context.Context, entries []domain.CatalogEntry) error
	Count(ctx context.Context) (int, error)
}

// Embedder vectorizes hotel descriptions in bulk.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// Service loads and indexes the hotel catalog.
type Service struct {
	repo      Repository
	embedder  Embedder
	batchSize int
	logger    *zap.Logger
}

// New creates an ingestion service.
func New(repo Repository, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embedder: embedder, batchSize: 100, logger: logger}
}

// record mirrors one hotels.json entry. An optional precomputed embedding
// skips the provider call for that record.
type record struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Country       string    `json:"country"`
	City          string    `json:"city"`
	Stars         *int      `json:"stars"`
	PricePerNight *float64  `json:"price_per_night"`
	Rating        *float64  `json:"rating"`
	Description   string    `json:"description"`
	KidsClub      *bool     `json:"kids_club"`
	AllInclusive  *bool     `json:"all_inclusive"`
	Aquapark      *bool     `json:"aquapark"`
	Embedding     []float32 `json:"embedding,omitempty"`
}

// IngestFile loads a JSON catalog file and indexes it. Returns the number
// of records written. An already-populated catalog is left untouched
// unless force is set.
func (s *Service) IngestFile(ctx context.Context, path string, force bool) (int, error) {
	records, err := loadRecords(path)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("catalog file %s holds no records", path)
	}

	dim := detectDimension(records, s.embedder.Dimensions())
	if err := s.repo.EnsureIndex(ctx, dim); err != nil {
		return 0, fmt.Errorf("ensure index: %w", err)
	}

	if !force {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("count catalog: %w", err)
		}
		if count > 0 {
			s.logger.Info("catalog already populated, skipping ingestion",
				zap.Int("existing", count))
			return 0, nil
		}
	}

	written := 0
	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))
		batch := records[start:end]

		entries, err := s.buildEntries(ctx, batch)
		if err != nil {
			return written, err
		}
		if err := s.repo.Upsert(ctx, entries); err != nil {
			return written, fmt.Errorf("upsert batch at %d: %w", start, err)
		}

		written += len(entries)
		s.logger.Info("catalog batch written",
			zap.Int("written", written), zap.Int("total", len(records)))
	}

	return written, nil
}

// buildEntries converts a batch, embedding the descriptions that need it
// in a single provider call.
func (s *Service) buildEntries(ctx context.Context, batch []record) ([]domain.CatalogEntry, error) {
	var missing []int
	var texts []string
	for i := range batch {
		if len(batch[i].Embedding) == 0 {
			missing = append(missing, i)
			texts = append(texts, embeddingText(&batch[i]))
		}
	}

	if len(missing) > 0 {
		vectors, err := s.embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch: %w", err)
		}
		for j, i := range missing {
			batch[i].Embedding = vectors[j]
		}
	}

	entries := make([]domain.CatalogEntry, 0, len(batch))
	for i := range batch {
		r := &batch[i]
		entries = append(entries, domain.CatalogEntry{
			Hotel: domain.Hotel{
				ID:            r.ID,
				Name:          r.Name,
				Country:       r.Country,
				City:          r.City,
				Stars:         r.Stars,
				PricePerNight: r.PricePerNight,
				Rating:        r.Rating,
				Description:   r.Description,
				KidsClub:      r.KidsClub,
				AllInclusive:  r.AllInclusive,
				Aquapark:      r.Aquapark,
			},
			Vector: r.Embedding,
		})
	}
	return entries, nil
}

// embeddingText renders the searchable text of a record. Name and location
// are included so that destination queries land near the right hotels.
func embeddingText(r *record) string {
	parts := []string{r.Name, r.Country, r.City, r.Description}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ". ")
}

// detectDimension takes the width of the first precomputed embedding,
// falling back to the provider's configured width.
func detectDimension(records []record, fallback int) int {
	for i := range records {
		if n := len(records[i].Embedding); n > 0 {
			return n
		}
	}
	return fallback
}

func loadRecords(path string) ([]record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return records, nil
}
