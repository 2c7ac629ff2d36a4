// Package hotels is the gateway between the search pipeline and the vector
// store. It owns the translation of constraint sets into store-native
// filters and the decoding of loosely-typed record payloads into typed
// hotel records.
package hotels

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hotelgenx/concierge/internal/db"
	"github.com/hotelgenx/concierge/internal/domain"
	"github.com/hotelgenx/concierge/internal/domain/constraint"
	"github.com/hotelgenx/concierge/internal/domain/filter"
	"github.com/hotelgenx/concierge/internal/metrics"
)

const (
	keyPrefix = "concierge:hotels:"
	indexName = "concierge:hotels:idx"

	// overFetchFactor compensates for application-side skipping of
	// malformed records: the store is asked for topK times this many
	// candidates and the decoded list is truncated back to topK.
	overFetchFactor = 5
)

// store is the consumer interface for catalog operations.
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig tunes the vector index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the hotel catalog gateway over a RediSearch store.
type Repo struct {
	store  store
	hnsw   HNSWConfig
	logger *zap.Logger
}

// New creates a hotel catalog repository.
func New(s store, logger *zap.Logger) *Repo {
	return &Repo{
		store:  s,
		hnsw:   HNSWConfig{M: 16, EFConstruct: 200},
		logger: logger,
	}
}

// WithHNSW overrides the index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	if cfg.M > 0 {
		r.hnsw.M = cfg.M
	}
	if cfg.EFConstruct > 0 {
		r.hnsw.EFConstruct = cfg.EFConstruct
	}
	return r
}

// Search runs a filtered nearest-neighbor search and decodes the hits.
//
// Results keep the store's native distance order (closest first); the
// gateway never re-sorts. A single undecodable record is skipped and
// logged, not propagated. Store failures wrap domain.ErrIndexUnavailable
// and are not retried here.
func (r *Repo) Search(
	ctx context.Context, vector []float32, cons constraint.Set, topK int,
) ([]domain.Hotel, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("empty query vector: %w", domain.ErrInvalidQuery)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d: %w", topK, domain.ErrInvalidQuery)
	}

	filters, err := translateConstraints(cons)
	if err != nil {
		return nil, fmt.Errorf("translate constraints: %w", domain.ErrInvalidQuery)
	}

	q := &db.KNNQuery{
		IndexName: indexName,
		Filters:   filters,
		Vector:    vector,
		K:         topK * overFetchFactor,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search hotels: %v: %w", err, domain.ErrIndexUnavailable)
	}

	results := r.decodeEntries(sr)
	if len(results) > topK {
		results = results[:topK]
	}

	metrics.SearchResultsReturned.Observe(float64(len(results)))
	return results, nil
}

// List returns a page of the catalog together with the total record count.
func (r *Repo) List(ctx context.Context, offset, limit int) ([]domain.Hotel, int, error) {
	sr, err := r.store.SearchList(ctx, indexName, "*", offset, limit, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("list hotels: %v: %w", err, domain.ErrIndexUnavailable)
	}
	return r.decodeEntries(sr), sr.Total, nil
}

// Count returns the number of records in the catalog.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count hotels: %v: %w", err, domain.ErrIndexUnavailable)
	}
	return n, nil
}

// EnsureIndex creates the catalog FT index with the given vector dimension
// if it does not exist yet. The dimension must match the embedding provider
// or every subsequent search call fails.
func (r *Repo) EnsureIndex(ctx context.Context, dim int) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("probe index: %v: %w", err, domain.ErrIndexUnavailable)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(indexName).
		Prefix(keyPrefix).
		Tag(fieldCountry).
		Tag(fieldCity).
		Tag(fieldKidsClub).
		Tag(fieldAllInclusive).
		Tag(fieldAquapark).
		Numeric(fieldStars).
		Numeric(fieldPrice).
		Numeric(fieldRating).
		VectorHNSW(fieldVector, dim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %v: %w", err, domain.ErrIndexUnavailable)
	}

	r.logger.Info("catalog index created", zap.String("index", indexName), zap.Int("dim", dim))
	return nil
}

// Upsert writes catalog entries as hashes under the index prefix.
func (r *Repo) Upsert(ctx context.Context, entries []domain.CatalogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.Hotel.ID == "" {
			return fmt.Errorf("catalog entry %d has no id: %w", i, domain.ErrInvalidQuery)
		}
		items = append(items, db.HashSetItem{
			Key:    keyPrefix + e.Hotel.ID,
			Fields: encodeHotel(e),
		})
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert hotels: %v: %w", err, domain.ErrIndexUnavailable)
	}
	return nil
}

// decodeEntries converts raw hits into hotel records, skipping anomalies.
func (r *Repo) decodeEntries(sr *db.SearchResult) []domain.Hotel {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	results := make([]domain.Hotel, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		h, err := decodeHotel(entry)
		if err != nil {
			metrics.SearchDecodeAnomalies.Inc()
			r.logger.Warn("skipping malformed catalog record",
				zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		results = append(results, h)
	}
	return results
}

// translateConstraints maps a constraint set onto the store's filter
// predicate. Absent fields contribute no condition; an all-absent set
// yields an empty (unconditioned) expression.
func translateConstraints(cons constraint.Set) (filter.Expression, error) {
	var conditions []filter.Condition

	addRange := func(key string, lo, hi *int) error {
		if lo == nil && hi == nil {
			return nil
		}
		r, err := filter.NewRangeFilter(intToFloat(lo), intToFloat(hi))
		if err != nil {
			return err
		}
		c, err := filter.NewRange(key, r)
		if err != nil {
			return err
		}
		conditions = append(conditions, c)
		return nil
	}

	addMatch := func(key, value string) error {
		if value == "" {
			return nil
		}
		c, err := filter.NewMatch(key, value)
		if err != nil {
			return err
		}
		conditions = append(conditions, c)
		return nil
	}

	if err := addRange(fieldPrice, cons.PriceMin(), cons.PriceMax()); err != nil {
		return filter.Expression{}, err
	}
	if err := addRange(fieldStars, cons.StarsMin(), cons.StarsMax()); err != nil {
		return filter.Expression{}, err
	}
	if err := addMatch(fieldCountry, cons.Country()); err != nil {
		return filter.Expression{}, err
	}
	if err := addMatch(fieldCity, cons.City()); err != nil {
		return filter.Expression{}, err
	}

	// Amenity flags are persisted as the text literals "true"/"false", so a
	// required amenity is an exact tag match on "true". Only required (true)
	// flags filter; an unset flag is unconstrained, not false.
	if cons.KidsClub() {
		if err := addMatch(fieldKidsClub, boolLiteralTrue); err != nil {
			return filter.Expression{}, err
		}
	}
	if cons.AllInclusive() {
		if err := addMatch(fieldAllInclusive, boolLiteralTrue); err != nil {
			return filter.Expression{}, err
		}
	}
	if cons.Aquapark() {
		if err := addMatch(fieldAquapark, boolLiteralTrue); err != nil {
			return filter.Expression{}, err
		}
	}

	return filter.NewExpression(conditions)
}

func intToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}
