// Package cache stores negotiated layouts and rendered artifacts.
//
// Entries are opaque byte slices under string keys. A [Keyer] derives keys
// from content hashes so identical charts share entries across runs:
//
//	layout:<sha256(data hash, viewport, options)>
//	artifact:<sha256(layout hash, format, render options)>
//
// Three backends are provided: [FileCache] for the CLI, [RedisCache] for the
// HTTP server, and [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value and whether it was found. Expired entries are
	// misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
