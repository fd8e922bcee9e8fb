// Package cache stores synthesized audio keyed by sanitized sentence text.
// Entries have no TTL and are never evicted by this service; two concurrent
// first-writers for the same key are not deduplicated, the last Set wins.
package cache

import (
	"context"
	"fmt"
)

// Store is the key/value contract between the orchestrator and the cache
// backend. Implemented by RedisStore (prod) and MemoryStore (dev, tests).
type Store interface {
	// Get returns the cached bytes for key. A missing key is not an error:
	// it returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores or overwrites the entry for key.
	Set(ctx context.Context, key string, value []byte) error
}

// StoreError reports a cache backend failure. Callers may treat a Get
// failure as a miss and fall back to fresh synthesis.
type StoreError struct {
	Op  string // "get" or "set"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("cache %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
