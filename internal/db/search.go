package db

import "github.com/hotelgenx/concierge/internal/domain/filter"

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Filters      filter.Expression
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single record hit. Fields is the loosely-typed payload
// as stored: every value, booleans included, is a text literal.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
