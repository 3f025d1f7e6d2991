// Package cache provides pluggable byte caching for pipeline stage results.
//
// The CLI uses the file backend (XDG cache dir) so repeated runs over the
// same netlist skip extraction; the hosted deployment can swap in the redis
// or mongo backends without touching pipeline code. The null backend
// disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Key namespaces for pipeline stage results.
const (
	nsDesign = "design"
	nsDEF    = "def"
)

// DesignKey returns the cache key for an extracted design, derived from
// the netlist source text.
func DesignKey(src []byte) string {
	return hashKey(nsDesign, Hash(src))
}

// DEFKey returns the cache key for a rendered DEF document, derived from
// the design content hash and the geometry options that shaped it.
func DEFKey(designHash string, dieW, dieH float64, designName string, units int) string {
	return hashKey(nsDEF, designHash, dieW, dieH, designName, units)
}
