// Package cache stores fetched week data and rendered timetable artifacts.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON envelopes under ~/.cache/weekgrid/ for the CLI
//   - [RedisCache]: shared cache for `weekgrid serve` deployments
//   - [NullCache]: caching disabled (--no-cache, tests)
//
// Keys are produced by a [Keyer] so that every layer agrees on the key
// layout. Period tables change rarely and are cached with a long TTL;
// session lists use the shorter [SessionTTL].
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	SessionTTL  = 15 * time.Minute
	PeriodTTL   = 7 * 24 * time.Hour
	WeekListTTL = time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
