// Package cache provides the caching layers used by jigsaw.
//
// Two kinds of cache live here:
//
//   - [Cache]: a byte-oriented store with TTLs, used by the pipeline, CLI and
//     HTTP server to persist generated outlines between runs. Backends:
//     [FileCache] (CLI), [RedisCache] (shared server deployments) and
//     [NullCache] (caching disabled).
//   - [Bounded]: an in-memory, fixed-capacity map with insertion-order
//     eviction. The optimized shape generator owns one to memoize outlines
//     per canvas size.
//
// Keys are produced by a [Keyer] so that every caller derives identical keys
// for identical inputs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiration.
type Cache interface {
	// Get returns the value for key. A miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs. Outlines are deterministic for a given seed and can live
// long; puzzles are cheap to rebuild.
const (
	TTLShape  = 7 * 24 * time.Hour
	TTLPuzzle = 24 * time.Hour
)

// ShapeKeyOpts identifies one generated outline.
type ShapeKeyOpts struct {
	Family string  `json:"family"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Seed   uint64  `json:"seed"`
}

// PuzzleKeyOpts identifies one cut-and-scattered puzzle.
type PuzzleKeyOpts struct {
	Shape ShapeKeyOpts `json:"shape"`
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
}

// Keyer derives cache keys.
type Keyer interface {
	ShapeKey(opts ShapeKeyOpts) string
	PuzzleKey(opts PuzzleKeyOpts) string
}

// DefaultKeyer hashes the key options into "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ShapeKey returns the key for a generated outline.
func (DefaultKeyer) ShapeKey(opts ShapeKeyOpts) string {
	return hashKey("shape", opts)
}

// PuzzleKey returns the key for a full puzzle.
func (DefaultKeyer) PuzzleKey(opts PuzzleKeyOpts) string {
	return hashKey("puzzle", opts)
}

// ScopedKeyer wraps a Keyer with a prefix, so several hosts can share one
// backend (e.g. one Redis) without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ShapeKey returns a prefixed shape key.
func (k *ScopedKeyer) ShapeKey(opts ShapeKeyOpts) string {
	return k.prefix + k.inner.ShapeKey(opts)
}

// PuzzleKey returns a prefixed puzzle key.
func (k *ScopedKeyer) PuzzleKey(opts PuzzleKeyOpts) string {
	return k.prefix + k.inner.PuzzleKey(opts)
}
