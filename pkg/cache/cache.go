// Package cache stores rendered charts keyed by dataset and options.
//
// Three backends implement [Cache]: [NullCache] (disabled), [FileCache]
// (one JSON entry per key under a sharded directory, used by the CLI) and
// [RedisCache] (shared by server replicas). Keys come from a [Keyer] so that
// every caller derives the same key for the same chart.
package cache

import (
	"context"
	"time"
)

// TTLChart is the default lifetime of a rendered chart.
const TTLChart = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss. Expired and
	// unreadable entries are misses, not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
