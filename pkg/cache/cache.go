// Package cache provides content-addressed caching for the deck
// pipeline: rendered chart images and fetched payloads.
//
// Backends share one interface so callers never care where bytes live:
// FileCache for the CLI, RedisCache for the server, NullCache to
// disable caching entirely. Keys are produced by a Keyer so every
// entry point derives identical keys for identical work.
package cache

import (
	"context"
	"time"
)

// Cache entry lifetimes per kind of content.
const (
	// TTLChart bounds rendered chart images. Chart output is fully
	// deterministic for a spec, so the TTL exists to cap disk growth,
	// not to invalidate.
	TTLChart = 7 * 24 * time.Hour

	// TTLHTTP bounds fetched payload documents.
	TTLHTTP = time.Hour
)

// Cache stores binary blobs with per-entry TTLs.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ChartKeyOpts are the render parameters that shape a chart image
// beyond its spec. Two renders differing in any field must never share
// a cache entry.
type ChartKeyOpts struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	TextColor string `json:"text_color,omitempty"`
}

// Keyer derives cache keys. Implementations must be deterministic:
// equal inputs yield equal keys across processes.
type Keyer interface {
	// HTTPKey generates a key for a fetched payload document.
	HTTPKey(namespace, key string) string

	// ChartKey generates a key for a rendered chart image, from the
	// hash of its spec plus the render parameters.
	ChartKey(specHash string, opts ChartKeyOpts) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching. The key is plain
// text so operators can read cache listings.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ChartKey generates a key for a rendered chart image.
func (k *DefaultKeyer) ChartKey(specHash string, opts ChartKeyOpts) string {
	return hashKey("chart", specHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
