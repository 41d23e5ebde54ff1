package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so implementations can be
// swapped (Redis in production, in-memory in tests).
type Cache interface {
	// Get fetches a key and unmarshals it into dest. The bool reports
	// whether the key was found; on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
