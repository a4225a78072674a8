// Package pipeline runs the jigsaw puzzle pipeline for the CLI and the HTTP
// server.
//
// # Architecture
//
// A puzzle is built in three stages:
//
//  1. Generate: produce an outline for the requested family and canvas
//  2. Cut: split the outline into a rows x cols grid of pieces
//  3. Scatter: spread the pieces over the canvas
//
// Afterwards every canvas change goes through [Runner.Resize], which adapts
// the puzzle as built onto the new canvas. The puzzle itself is never
// modified by a resize, so chains of resizes do not accumulate error.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Family: "cloud",
//	    Rows:   4,
//	    Cols:   4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	view, err := runner.Resize(ctx, res.Puzzle, geometry.Size(390, 844), adapt.Options{})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/adapt"
	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	jio "github.com/matzehuels/jigsaw/pkg/io"
	"github.com/matzehuels/jigsaw/pkg/pieces"
	"github.com/matzehuels/jigsaw/pkg/scatter"
	"github.com/matzehuels/jigsaw/pkg/shape"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultRows and DefaultCols give a 9 piece puzzle.
	DefaultRows = 3
	DefaultCols = 3

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultPlacedTolerance is how far in pixels a piece center may be
	// from its solved position and still count as placed.
	DefaultPlacedTolerance = 5.0
)

// DefaultFamily is the default shape family.
const DefaultFamily = shape.Polygon

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for building a puzzle.
// This struct supports JSON serialization for API requests.
type Options struct {
	Family  string  `json:"family,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Seed    uint64  `json:"seed,omitempty"`
	Rows    int     `json:"rows,omitempty"`
	Cols    int     `json:"cols,omitempty"`
	Solved  bool    `json:"solved,omitempty"` // Skip the scatter stage
	Refresh bool    `json:"refresh,omitempty"`

	// Device overrides the device class derived from the canvas.
	Device *scatter.Device `json:"device,omitempty"`

	// Runtime options (not serialized)
	Logger       *log.Logger      `json:"-"`
	ShapeOptions *shape.Options   `json:"-"`
	Margins      *scatter.Margins `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Family == "" {
		o.Family = string(DefaultFamily)
	}
	f, err := shape.ParseFamily(o.Family)
	if err != nil {
		return err
	}
	o.Family = string(f)
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateCanvas("canvas", o.Width, o.Height); err != nil {
		return err
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if err := errors.ValidateGrid(o.Rows, o.Cols); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Canvas returns the configured canvas.
func (o *Options) Canvas() geometry.CanvasSize {
	return geometry.Size(o.Width, o.Height)
}

// ShapeKeyOpts returns cache key options for the outline.
func (o *Options) ShapeKeyOpts() cache.ShapeKeyOpts {
	return cache.ShapeKeyOpts{
		Family: o.Family,
		Width:  o.Width,
		Height: o.Height,
		Seed:   o.Seed,
	}
}

// PuzzleKeyOpts returns cache key options for the full puzzle.
func (o *Options) PuzzleKeyOpts() cache.PuzzleKeyOpts {
	return cache.PuzzleKeyOpts{Shape: o.ShapeKeyOpts(), Rows: o.Rows, Cols: o.Cols}
}

// =============================================================================
// Puzzle
// =============================================================================

// Puzzle is a built puzzle in the coordinates of the canvas it was built on.
type Puzzle struct {
	ID     string
	Family shape.Family
	Seed   uint64

	// Canvas is the canvas the outline was generated and cut on.
	Canvas geometry.CanvasSize
	// ScatterCanvas is the canvas the pieces were scattered on.
	ScatterCanvas geometry.CanvasSize
	Scattered     bool

	Shape  []geometry.Point
	Pieces []geometry.Piece
}

// Solved reports whether every piece sits in its solved position.
func (p *Puzzle) Solved(tolerance float64) bool {
	return p.PlacedCount(tolerance) == len(p.Pieces)
}

// PlacedCount returns how many pieces sit in their solved position.
func (p *Puzzle) PlacedCount(tolerance float64) int {
	return pieces.PlacedCount(p.Pieces, tolerance)
}

// Document converts the puzzle to its JSON interchange form.
func (p *Puzzle) Document() *jio.Document {
	canvas, scatterCanvas := p.Canvas, p.ScatterCanvas
	doc := &jio.Document{
		ID:        p.ID,
		Family:    string(p.Family),
		Seed:      p.Seed,
		Canvas:    &canvas,
		Scattered: p.Scattered,
		Shape:     p.Shape,
		Pieces:    p.Pieces,
	}
	if p.Scattered {
		doc.ScatterCanvas = &scatterCanvas
	}
	return doc
}

// FromDocument rebuilds a puzzle from a document. The document must carry a
// canvas, and a scatter canvas when its pieces are scattered.
func FromDocument(doc *jio.Document) (*Puzzle, error) {
	if doc.Canvas == nil {
		return nil, errors.New(errors.ErrCodeMissingData, "document has no canvas")
	}
	p := &Puzzle{
		ID:        doc.ID,
		Family:    shape.Family(doc.Family),
		Seed:      doc.Seed,
		Canvas:    *doc.Canvas,
		Scattered: doc.Scattered,
		Shape:     doc.Shape,
		Pieces:    doc.Pieces,
	}
	if doc.Scattered {
		if doc.ScatterCanvas == nil {
			return nil, errors.New(errors.ErrCodeMissingScatterCanvas, "scattered document has no scatter canvas")
		}
		p.ScatterCanvas = *doc.ScatterCanvas
	}
	return p, nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	Puzzle *Puzzle

	// Failures lists pieces the scatter stage left in place.
	Failures []*scatter.PieceError

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points      int
	Pieces      int
	ShapeTime   time.Duration
	CutTime     time.Duration
	ScatterTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ShapeHit  bool // Whether the outline came from cache
	PuzzleHit bool // Whether cut and scatter came from cache
}

// View is a puzzle adapted to a particular canvas.
//
// The solved placement of every piece (Original* fields) is expressed on
// Canvas as well, mapped the same way as Shape, so targets sit on the adapted
// outline and placement checks work in view coordinates.
type View struct {
	Canvas geometry.CanvasSize
	Shape  []geometry.Point
	Pieces []geometry.Piece
	// Metrics describes the piece adaptation, or the shape adaptation when
	// the puzzle has no pieces.
	Metrics adapt.Metrics
}

// Solved reports whether every piece of the view sits on its target.
func (v *View) Solved(tolerance float64) bool {
	return v.PlacedCount(tolerance) == len(v.Pieces)
}

// PlacedCount returns how many pieces of the view sit on their target.
// Tolerance is in view pixels.
func (v *View) PlacedCount(tolerance float64) int {
	return pieces.PlacedCount(v.Pieces, tolerance)
}
