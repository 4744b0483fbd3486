// Package cache stores computed peel results and rendered artifacts.
//
// A [Cache] is a plain byte store with optional expiry. Three backends are
// provided:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing
//
// Keys are derived by a [Keyer] from the content hash of the point set and
// the options that influence the result, so equal inputs map to equal keys
// regardless of file names or request ids.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.PeelKey(cache.Hash(data), cache.PeelKeyOpts{Diameters: []float64{60, 40}})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
// A zero ttl means the entry never expires.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs used by the pipeline.
const (
	PeelTTL     = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)
