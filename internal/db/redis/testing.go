package redis

import "github.com/redis/rueidis"

// NewStoreForTest creates a Store around an externally constructed client.
// Used by tests to inject a mock client.
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}
