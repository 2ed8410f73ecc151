// Package cache stores rendered artifacts keyed by their inputs.
//
// # Backends
//
//   - [FileCache]: one JSON envelope per key under a directory, for the CLI
//   - [RedisCache]: shared cache for parallel batch runs and the HTTP server
//   - [NullCache]: never stores anything, used by --no-cache
//
// # Keys
//
// [ArtifactKey] hashes everything that influences the encoded image: the
// letter pair, the compositor parameters, the seed, the output format and
// scale. Two requests that would produce byte-identical files share a key.
//
// # Expiry
//
// Set takes a TTL; zero means the entry never expires. Expired file entries
// are removed lazily on Get.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. The boolean reports a hit; a miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key for ttl. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
