// Package cache provides pluggable byte caches and the key scheme used by
// the pipeline to memoize hierarchy construction stages.
//
// Three backends exist: a file cache for CLI usage, a Redis cache for server
// deployments, and a null cache that disables caching entirely. All share
// the same interface, so the pipeline never knows which one it talks to.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs per pipeline stage. Snapshots and matrices are pure functions of
// their inputs, so the TTLs bound disk usage rather than staleness.
const (
	// TTLSnapshot applies to parsed source snapshots.
	TTLSnapshot = 24 * time.Hour

	// TTLMatrix applies to serialized closure matrices.
	TTLMatrix = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered outputs (DOT, SVG).
	TTLArtifact = 7 * 24 * time.Hour
)
