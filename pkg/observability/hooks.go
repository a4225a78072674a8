// Package observability provides diagnostics hooks for the jigsaw core.
//
// The geometry core never writes to an output stream. Instead it emits events
// through the hook interfaces defined here, and the host decides what to do
// with them (log them, count them, ignore them).
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//   - Allow per-component injection (components accept hooks in their
//     options and fall back to the registry when none is given)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAll(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Components call hooks to emit events:
//
//	hooks.OnAdaptStart(ctx, "scattered", len(pieces))
//	// ... adapt ...
//	hooks.OnAdaptComplete(ctx, "scattered", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Adapt Hooks
// =============================================================================

// AdaptHooks receives events from the adaptation engine.
type AdaptHooks interface {
	OnAdaptStart(ctx context.Context, mode string, items int)
	OnAdaptComplete(ctx context.Context, mode string, duration time.Duration, err error)

	// OnInvalidPoint records a vertex degraded to the invalid sentinel.
	// piece is -1 for bare shapes.
	OnInvalidPoint(ctx context.Context, mode string, piece, vertex int)

	// OnBoundaryCorrection records a scattered piece shifted back inside the
	// safety margin. oversized is true when the piece is larger than the
	// safe area on at least one axis and could not be fully corrected.
	OnBoundaryCorrection(ctx context.Context, piece int, dx, dy float64, oversized bool)
}

// =============================================================================
// Scatter Hooks
// =============================================================================

// ScatterHooks receives events from scatter placement.
type ScatterHooks interface {
	OnScatterStart(ctx context.Context, pieces int, width, height float64)
	OnScatterComplete(ctx context.Context, pieces, failed int, duration time.Duration)

	// OnMarginViolation records a piece whose final bounds still cross its
	// margin after clamping. edges lists the violated sides.
	OnMarginViolation(ctx context.Context, piece int, edges []string)

	// OnPieceFailed records a piece that could not be placed and was
	// substituted by its unscattered original.
	OnPieceFailed(ctx context.Context, piece int, err error)
}

// =============================================================================
// Shape Hooks
// =============================================================================

// ShapeHooks receives events from the shape generators.
type ShapeHooks interface {
	OnGenerate(ctx context.Context, family string, points, attempts int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)

	// OnCacheEvict records an entry dropped to respect a capacity bound.
	OnCacheEvict(ctx context.Context, keyType string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAdaptHooks is a no-op implementation of AdaptHooks.
type NoopAdaptHooks struct{}

func (NoopAdaptHooks) OnAdaptStart(context.Context, string, int)                          {}
func (NoopAdaptHooks) OnAdaptComplete(context.Context, string, time.Duration, error)      {}
func (NoopAdaptHooks) OnInvalidPoint(context.Context, string, int, int)                   {}
func (NoopAdaptHooks) OnBoundaryCorrection(context.Context, int, float64, float64, bool) {}

// NoopScatterHooks is a no-op implementation of ScatterHooks.
type NoopScatterHooks struct{}

func (NoopScatterHooks) OnScatterStart(context.Context, int, float64, float64)        {}
func (NoopScatterHooks) OnScatterComplete(context.Context, int, int, time.Duration) {}
func (NoopScatterHooks) OnMarginViolation(context.Context, int, []string)           {}
func (NoopScatterHooks) OnPieceFailed(context.Context, int, error)                  {}

// NoopShapeHooks is a no-op implementation of ShapeHooks.
type NoopShapeHooks struct{}

func (NoopShapeHooks) OnGenerate(context.Context, string, int, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}
func (NoopCacheHooks) OnCacheEvict(context.Context, string)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	adaptHooks   AdaptHooks   = NoopAdaptHooks{}
	scatterHooks ScatterHooks = NoopScatterHooks{}
	shapeHooks   ShapeHooks   = NoopShapeHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetAdaptHooks registers custom adaptation hooks.
// This should be called once at application startup.
func SetAdaptHooks(h AdaptHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		adaptHooks = h
	}
}

// SetScatterHooks registers custom scatter hooks.
func SetScatterHooks(h ScatterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scatterHooks = h
	}
}

// SetShapeHooks registers custom shape hooks.
func SetShapeHooks(h ShapeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		shapeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// AllHooks is implemented by types that handle every event category, such
// as [LogHooks].
type AllHooks interface {
	AdaptHooks
	ScatterHooks
	ShapeHooks
	CacheHooks
}

// SetAll registers h for every event category.
func SetAll(h AllHooks) {
	SetAdaptHooks(h)
	SetScatterHooks(h)
	SetShapeHooks(h)
	SetCacheHooks(h)
}

// Adapt returns the registered adaptation hooks.
func Adapt() AdaptHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return adaptHooks
}

// Scatter returns the registered scatter hooks.
func Scatter() ScatterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scatterHooks
}

// Shape returns the registered shape hooks.
func Shape() ShapeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return shapeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	adaptHooks = NoopAdaptHooks{}
	scatterHooks = NoopScatterHooks{}
	shapeHooks = NoopShapeHooks{}
	cacheHooks = NoopCacheHooks{}
}
