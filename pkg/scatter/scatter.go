// Package scatter spreads cut pieces over a canvas at the start of play.
//
// Pieces are assigned to cells of a square grid laid over the canvas minus a
// device-dependent margin, nudged by a small deterministic offset inside
// their cell, clamped so their bounding box keeps a per-piece margin from
// every edge, and given a discrete rotation. Portrait mobile layouts fill
// the grid in spiral order from the center to reduce clustering.
package scatter

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/observability"
)

// Options configures a scatter.
type Options struct {
	// Device overrides Classify(canvas).
	Device *Device
	// Margins overrides DefaultMargins().
	Margins *Margins
	// Hooks receives diagnostics. Nil uses observability.Scatter().
	Hooks observability.ScatterHooks
}

// PieceError records a piece that could not be placed. The piece keeps its
// unscattered position in the result.
type PieceError struct {
	Index int
	Err   error
}

func (e *PieceError) Error() string {
	return fmt.Sprintf("piece %d: %v", e.Index, e.Err)
}

func (e *PieceError) Unwrap() error { return e.Err }

// Result is the outcome of a scatter.
type Result struct {
	Pieces   []geometry.Piece
	Device   Device
	Margin   float64
	GridSize int
	// Failures lists pieces that kept their original placement.
	Failures []*PieceError
	// Skipped is set when some piece had no points; nothing was scattered.
	Skipped bool
}

// Scatter places pieces on canvas. The input is never modified.
//
// A piece without points aborts the whole scatter: the result holds a copy
// of the input and Skipped is set. Any other per-piece failure only affects
// that piece, which keeps its original placement and is listed in Failures.
// The returned error is reserved for an invalid canvas.
func Scatter(ctx context.Context, in []geometry.Piece, canvas geometry.CanvasSize, opts *Options) (*Result, error) {
	if err := errors.ValidateCanvas("scatter canvas", canvas.Width, canvas.Height); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}
	hooks := opts.Hooks
	if hooks == nil {
		hooks = observability.Scatter()
	}
	device := Classify(canvas)
	if opts.Device != nil {
		device = *opts.Device
	}
	margins := DefaultMargins()
	if opts.Margins != nil {
		margins = *opts.Margins
	}

	start := time.Now()
	hooks.OnScatterStart(ctx, len(in), canvas.Width, canvas.Height)

	res := &Result{
		Device:   device,
		Margin:   margins.Margin(canvas, device),
		GridSize: GridSize(len(in), device),
	}
	for _, p := range in {
		if len(p.Points) == 0 {
			res.Pieces = geometry.ClonePieces(in)
			res.Skipped = true
			hooks.OnScatterComplete(ctx, len(in), 0, time.Since(start))
			return res, nil
		}
	}

	l := layout{
		canvas: canvas,
		device: device,
		margin: res.Margin,
		grid:   res.GridSize,
		hooks:  hooks,
	}
	if device.PortraitMobile() {
		l.spiral = Spiral(l.grid)
	}
	if l.grid > 0 {
		l.cellW = (canvas.Width - 2*l.margin) / float64(l.grid)
		l.cellH = (canvas.Height - 2*l.margin) / float64(l.grid)
	}

	res.Pieces = make([]geometry.Piece, len(in))
	for i, p := range in {
		placed, err := l.place(ctx, i, p)
		if err != nil {
			pe := &PieceError{Index: i, Err: err}
			res.Failures = append(res.Failures, pe)
			hooks.OnPieceFailed(ctx, i, pe)
			res.Pieces[i] = p.Clone()
			continue
		}
		res.Pieces[i] = placed
	}

	hooks.OnScatterComplete(ctx, len(in), len(res.Failures), time.Since(start))
	return res, nil
}

type layout struct {
	canvas       geometry.CanvasSize
	device       Device
	margin       float64
	grid         int
	cellW, cellH float64
	spiral       []Cell
	hooks        observability.ScatterHooks
}

func (l *layout) cell(i int) Cell {
	if l.spiral != nil {
		return l.spiral[i%len(l.spiral)]
	}
	return RowMajor(i, l.grid)
}

// place computes the scattered copy of piece i.
func (l *layout) place(ctx context.Context, i int, p geometry.Piece) (out geometry.Piece, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeInternal, "placement panicked: %v", r)
		}
	}()

	for j, pt := range p.Points {
		if !pt.Finite() {
			return geometry.Piece{}, errors.New(errors.ErrCodeNonFinite, "vertex %d is not finite", j)
		}
	}
	if err := errors.ValidateFinite("piece center", p.X, p.Y); err != nil {
		return geometry.Piece{}, err
	}

	b := p.Bounds()
	mx := max(l.margin, 0.1*b.Width())
	my := max(l.margin, 0.1*b.Height())

	c := l.cell(i)
	ox, oy := jitter(i, l.cellW, l.cellH)
	tx := l.margin + (float64(c.Col)+0.5)*l.cellW + ox
	ty := l.margin + (float64(c.Row)+0.5)*l.cellH + oy

	// Recentering moves the bounds by the same delta as the center.
	dx := clampEdge(tx-p.X, b.MinX, b.MaxX, l.canvas.Width, mx)
	dy := clampEdge(ty-p.Y, b.MinY, b.MaxY, l.canvas.Height, my)
	if !geometry.IsFinite(dx, dy) {
		return geometry.Piece{}, errors.New(errors.ErrCodeNonFinite, "placement offset is not finite")
	}

	out = p.Clone()
	out.Points = geometry.Translate(p.Points, dx, dy)
	out.X += dx
	out.Y += dy
	out.Rotation = Rotation(i, l.device)

	if edges := violations(out.Bounds(), l.canvas, mx, my); len(edges) > 0 {
		l.hooks.OnMarginViolation(ctx, i, edges)
	}
	return out, nil
}

// clampEdge adjusts delta so [lo+delta, hi+delta] keeps margin from both
// ends of [0, size]. The left edge is fixed first, then the right edge.
func clampEdge(delta, lo, hi, size, margin float64) float64 {
	if lo+delta < margin {
		delta = margin - lo
	}
	if hi+delta > size-margin {
		delta = size - margin - hi
	}
	return delta
}

func violations(b geometry.Bounds, canvas geometry.CanvasSize, mx, my float64) []string {
	// Allow for rounding in the clamp arithmetic.
	const eps = 1e-6
	var edges []string
	if b.MinX < mx-eps {
		edges = append(edges, "left")
	}
	if b.MaxX > canvas.Width-mx+eps {
		edges = append(edges, "right")
	}
	if b.MinY < my-eps {
		edges = append(edges, "top")
	}
	if b.MaxY > canvas.Height-my+eps {
		edges = append(edges, "bottom")
	}
	return edges
}
