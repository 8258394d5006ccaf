package cache

import (
	"context"
	"time"
)

// Cache is the contract for the caching layer.
// Implementations: Redis (production), miniredis-backed Redis in tests.
type Cache interface {
	// Get loads the cached value into dest.
	// Returns (true, nil) on hit, (false, nil) on miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
