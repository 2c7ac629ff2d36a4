package domain

import "errors"

var (
	// ErrInvalidQuery signals malformed input to the search gateway
	// (empty vector, non-positive topK). Caller error, never retried.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingUnavailable signals an embedding provider failure.
	// The pipeline degrades to a fallback vector instead of failing.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrIndexUnavailable signals that the vector store is unreachable
	// or misconfigured (e.g. dimension mismatch). Surfaced to the user
	// as "search temporarily unavailable", not retried internally.
	ErrIndexUnavailable = errors.New("vector index unavailable")
	// ErrDecodingAnomaly signals a single malformed stored record.
	// The record is skipped; the search as a whole never fails on it.
	ErrDecodingAnomaly = errors.New("record decoding anomaly")
)
