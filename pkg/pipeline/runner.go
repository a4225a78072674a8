package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/jigsaw/pkg/adapt"
	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/cut"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	jio "github.com/matzehuels/jigsaw/pkg/io"
	"github.com/matzehuels/jigsaw/pkg/pieces"
	"github.com/matzehuels/jigsaw/pkg/projection"
	"github.com/matzehuels/jigsaw/pkg/scatter"
	"github.com/matzehuels/jigsaw/pkg/shape"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner holds no puzzle state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Engine *adapt.Engine

	// TTL overrides the cache lifetime of outlines and puzzles when set.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Engine: adapt.NewEngine(nil),
	}
}

// Execute runs the complete generate → cut → scatter pipeline with caching.
// Every run gets a fresh puzzle ID, cached or not.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	puzzleKey := r.Keyer.PuzzleKey(opts.PuzzleKeyOpts())
	cacheable := !opts.Solved && opts.Device == nil && opts.Margins == nil && opts.ShapeOptions == nil
	if !opts.Refresh && cacheable {
		if data, hit, err := r.Cache.Get(ctx, puzzleKey); err == nil && hit {
			if doc, err := jio.Unmarshal(data); err == nil {
				if p, err := FromDocument(doc); err == nil {
					p.ID = uuid.NewString()
					result.Puzzle = p
					result.CacheInfo.PuzzleHit = true
					result.CacheInfo.ShapeHit = true
					result.Stats.Points = len(p.Shape)
					result.Stats.Pieces = len(p.Pieces)
					r.Logger.Info("loaded puzzle from cache", "pieces", len(p.Pieces))
					return result, nil
				}
			}
		}
	}

	// Stage 1: Generate
	start := time.Now()
	outline, hit, err := r.ShapeWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Stats.ShapeTime = time.Since(start)
	result.Stats.Points = len(outline)
	result.CacheInfo.ShapeHit = hit
	r.Logger.Info("generated outline",
		"family", opts.Family,
		"points", len(outline),
		"duration", result.Stats.ShapeTime)

	// Stage 2: Cut
	start = time.Now()
	cutPieces, err := cut.Grid(outline, opts.Rows, opts.Cols)
	if err != nil {
		return nil, fmt.Errorf("cut: %w", err)
	}
	result.Stats.CutTime = time.Since(start)
	result.Stats.Pieces = len(cutPieces)
	r.Logger.Info("cut outline",
		"pieces", len(cutPieces),
		"grid", fmt.Sprintf("%dx%d", opts.Rows, opts.Cols),
		"duration", result.Stats.CutTime)

	p := &Puzzle{
		ID:     uuid.NewString(),
		Family: shape.Family(opts.Family),
		Seed:   opts.Seed,
		Canvas: opts.Canvas(),
		Shape:  outline,
		Pieces: cutPieces,
	}
	result.Puzzle = p

	if opts.Solved {
		return result, nil
	}

	// Stage 3: Scatter
	start = time.Now()
	if err := r.scatter(ctx, p, opts, result); err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	result.Stats.ScatterTime = time.Since(start)
	r.Logger.Info("scattered pieces",
		"failed", len(result.Failures),
		"duration", result.Stats.ScatterTime)

	if cacheable && len(result.Failures) == 0 {
		if data, err := jio.Marshal(p.Document()); err == nil {
			_ = r.Cache.Set(ctx, puzzleKey, data, r.ttl(cache.TTLPuzzle))
		}
	}
	return result, nil
}

func (r *Runner) scatter(ctx context.Context, p *Puzzle, opts Options, result *Result) error {
	res, err := scatter.Scatter(ctx, p.Pieces, p.Canvas, &scatter.Options{
		Device:  opts.Device,
		Margins: opts.Margins,
	})
	if err != nil {
		return err
	}
	if res.Skipped {
		r.Logger.Warn("scatter skipped: a piece has no points")
		return nil
	}
	p.Pieces = res.Pieces
	p.ScatterCanvas = p.Canvas
	p.Scattered = true
	result.Failures = res.Failures
	for _, f := range res.Failures {
		r.Logger.Warn("piece kept in place", "piece", f.Index, "err", f.Err)
	}
	return nil
}

// ShapeWithCacheInfo generates the fitted outline with caching and reports
// whether it came from cache.
func (r *Runner) ShapeWithCacheInfo(ctx context.Context, opts Options) ([]geometry.Point, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Custom generator options are not part of the key.
	cacheable := opts.ShapeOptions == nil
	cacheKey := r.Keyer.ShapeKey(opts.ShapeKeyOpts())
	if !opts.Refresh && cacheable {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := jio.Unmarshal(data); err == nil && len(doc.Shape) > 0 {
				return doc.Shape, true, nil // Cache hit
			}
			// If deserialization fails, fall through to regenerate
		}
	}

	canvas := opts.Canvas()
	raw, err := shape.NewGenerator(opts.Seed, opts.ShapeOptions).Generate(ctx, shape.Family(opts.Family), canvas)
	if err != nil {
		return nil, false, err
	}
	outline := shape.Fit(raw, canvas)

	if cacheable {
		doc := &jio.Document{Family: opts.Family, Seed: opts.Seed, Canvas: &canvas, Shape: outline}
		if data, err := jio.Marshal(doc); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLShape))
		}
	}
	return outline, false, nil // Cache miss
}

// Shape is a convenience wrapper that calls ShapeWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Shape(ctx context.Context, opts Options) ([]geometry.Point, error) {
	outline, _, err := r.ShapeWithCacheInfo(ctx, opts)
	return outline, err
}

// Resize adapts the puzzle onto target. The outline is adapted in shape
// mode from the build canvas; pieces in scattered mode from the scatter
// canvas, or in puzzle mode when they were never scattered. The pieces'
// solved placement follows the outline, so targets stay on it. The puzzle is
// not modified.
//
// On failure the returned view holds a copy of the puzzle's geometry on its
// own canvas, so callers can keep showing it.
func (r *Runner) Resize(ctx context.Context, p *Puzzle, target geometry.CanvasSize, opts adapt.Options) (*View, error) {
	engine := r.Engine
	if engine == nil {
		engine = adapt.NewEngine(nil)
	}
	fallback := func(err error) (*View, error) {
		return &View{
			Canvas: p.Canvas,
			Shape:  geometry.ClonePoints(p.Shape),
			Pieces: geometry.ClonePieces(p.Pieces),
		}, err
	}

	view := &View{Canvas: target}
	if p.Shape != nil {
		res := engine.Adapt(ctx, adapt.Config{
			Mode:           adapt.ModeShape,
			Shape:          p.Shape,
			OriginalCanvas: p.Canvas,
			TargetCanvas:   target,
			Options:        opts,
		})
		if !res.Success {
			return fallback(fmt.Errorf("adapt shape: %w", res.Err))
		}
		view.Shape = res.Shape
		view.Metrics = res.Metrics
	}

	if p.Pieces != nil {
		cfg := adapt.Config{
			Mode:           adapt.ModePuzzle,
			Pieces:         p.Pieces,
			OriginalCanvas: p.Canvas,
			TargetCanvas:   target,
			Options:        opts,
		}
		if p.Scattered {
			sc := p.ScatterCanvas
			cfg.Mode = adapt.ModeScattered
			cfg.ScatterCanvas = &sc
		}
		res := engine.Adapt(ctx, cfg)
		if !res.Success {
			return fallback(fmt.Errorf("adapt pieces: %w", res.Err))
		}
		targets, err := projection.New(opts.Strategy, p.Canvas, target)
		if err != nil {
			return fallback(fmt.Errorf("retarget pieces: %w", err))
		}
		view.Pieces = pieces.Retarget(res.Pieces, targets)
		view.Metrics = res.Metrics
	}

	r.Logger.Debug("resized puzzle",
		"width", target.Width,
		"height", target.Height,
		"scale_x", view.Metrics.ScaleFactor.X,
		"scale_y", view.Metrics.ScaleFactor.Y,
		"corrected", view.Metrics.Corrected)
	return view, nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
