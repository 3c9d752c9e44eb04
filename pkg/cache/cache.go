// Package cache stores generated drawings and rendered artifacts so repeated
// runs with the same parameters skip the expensive stages.
//
// Three backends implement [Cache]:
//   - [FileCache] for the CLI, one JSON envelope per key under a directory
//   - [RedisCache] for the HTTP server, shared between replicas
//   - [NullCache] when caching is disabled
//
// Keys are produced by a [Keyer]. Drawing keys hash every parameter that
// influences geometry; artifact keys hash the drawing content plus the
// sink options, so a restyled render of the same drawing is a separate entry.
//
// Only deterministic drawings are cached. A run with an entropy jitter seed
// produces different geometry each time and always misses.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	// TTLDrawing keeps generated geometry for a week.
	TTLDrawing = 7 * 24 * time.Hour

	// TTLArtifact keeps rendered outputs for a day. Sinks change more often
	// than the generator does.
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
//
// Get reports a miss with hit=false and a nil error. Errors are reserved for
// backend failures; callers in the pipeline treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
