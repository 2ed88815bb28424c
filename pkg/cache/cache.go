// Package cache stores solved placements so repeated runs over the same
// tiles skip the search.
//
// Entries are opaque byte slices addressed by string keys produced by a
// [Keyer]. Three backends are provided:
//
//   - [FileCache]: JSON files under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance (API server)
//   - [NullCache]: never stores anything (--no-cache)
package cache

import (
	"context"
	"time"
)

// TTLPlacement is the default lifetime of a cached placement.
const TTLPlacement = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
