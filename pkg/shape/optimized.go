package shape

import (
	"context"
	"sync"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/observability"
)

const (
	// DefaultCacheCapacity bounds the number of memoized outlines.
	DefaultCacheCapacity = 50

	// FitRatio is the share of the canvas's shorter side that the fitted
	// outline's longest bounding-box dimension occupies.
	FitRatio = 0.4

	cacheKeyType = "shape"
)

type cacheKey struct {
	family        Family
	width, height float64
}

// OptimizedGenerator memoizes raw outlines per (family, canvas size) and fits
// them to the canvas with a single-pass analysis.
//
// The cache belongs to the generator instance; create one per session.
// Methods are safe for concurrent use.
type OptimizedGenerator struct {
	mu    sync.Mutex
	gen   *Generator
	cache *cache.Bounded[cacheKey, []geometry.Point]
	hooks observability.CacheHooks
}

// OptimizedOptions configures an [OptimizedGenerator].
type OptimizedOptions struct {
	Options

	// CacheCapacity defaults to [DefaultCacheCapacity].
	CacheCapacity int

	// CacheHooks receives hit/miss/evict events. Nil uses the registry.
	CacheHooks observability.CacheHooks
}

// NewOptimizedGenerator returns a caching generator seeded with seed.
func NewOptimizedGenerator(seed uint64, opts *OptimizedOptions) *OptimizedGenerator {
	var o OptimizedOptions
	if opts != nil {
		o = *opts
	}
	if o.CacheCapacity <= 0 {
		o.CacheCapacity = DefaultCacheCapacity
	}
	return &OptimizedGenerator{
		gen:   NewGenerator(seed, &o.Options),
		cache: cache.NewBounded[cacheKey, []geometry.Point](o.CacheCapacity),
		hooks: o.CacheHooks,
	}
}

// Generate returns an outline of family fitted to canvas. Repeated calls with
// the same family and canvas size reuse the memoized raw outline.
func (o *OptimizedGenerator) Generate(ctx context.Context, family Family, canvas geometry.CanvasSize) ([]geometry.Point, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	key := cacheKey{family: family, width: canvas.Width, height: canvas.Height}
	raw, ok := o.cache.Get(key)
	if ok {
		o.cacheHooks().OnCacheHit(ctx, cacheKeyType)
	} else {
		o.cacheHooks().OnCacheMiss(ctx, cacheKeyType)
		var err error
		raw, err = o.gen.Generate(ctx, family, canvas)
		if err != nil {
			return nil, err
		}
		if o.cache.Put(key, raw) {
			o.cacheHooks().OnCacheEvict(ctx, cacheKeyType)
		}
		o.cacheHooks().OnCacheSet(ctx, cacheKeyType, len(raw))
	}
	return Fit(raw, canvas), nil
}

// CacheLen returns the number of memoized outlines.
func (o *OptimizedGenerator) CacheLen() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cache.Len()
}

// ClearCache drops every memoized outline.
func (o *OptimizedGenerator) ClearCache() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache.Clear()
}

func (o *OptimizedGenerator) cacheHooks() observability.CacheHooks {
	if o.hooks != nil {
		return o.hooks
	}
	return observability.Cache()
}

// analysis is the result of one pass over an outline.
type analysis struct {
	bounds   geometry.Bounds
	centroid geometry.Point
}

// analyze computes bounds and vertex centroid in a single loop.
func analyze(points []geometry.Point) analysis {
	var a analysis
	if len(points) == 0 {
		return a
	}
	first := points[0]
	a.bounds = geometry.Bounds{MinX: first.X, MaxX: first.X, MinY: first.Y, MaxY: first.Y}
	var sx, sy float64
	for _, p := range points {
		a.bounds.MinX = min(a.bounds.MinX, p.X)
		a.bounds.MaxX = max(a.bounds.MaxX, p.X)
		a.bounds.MinY = min(a.bounds.MinY, p.Y)
		a.bounds.MaxY = max(a.bounds.MaxY, p.Y)
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	a.centroid = geometry.Point{X: sx / n, Y: sy / n}
	return a
}

// Fit moves the outline's vertex centroid to the canvas center and scales it
// so its longest bounding-box dimension equals [FitRatio] of the canvas's
// shorter side. The input is not modified.
func Fit(points []geometry.Point, canvas geometry.CanvasSize) []geometry.Point {
	a := analyze(points)
	scale := 1.0
	if extent := max(a.bounds.Width(), a.bounds.Height()); extent > 0 {
		scale = FitRatio * canvas.MinEdge() / extent
	}
	center := canvas.Center()

	out := make([]geometry.Point, len(points))
	for i, p := range points {
		out[i] = geometry.Point{
			X:          center.X + (p.X-a.centroid.X)*scale,
			Y:          center.Y + (p.Y-a.centroid.Y)*scale,
			IsOriginal: p.IsOriginal,
		}
	}
	return out
}
