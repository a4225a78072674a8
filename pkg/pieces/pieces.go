// Package pieces adapts puzzle pieces to a new canvas.
//
// The general point re-projection lives in package projection; this package
// only knows about pieces. It depends on projection through the one-method
// [Projector] interface, so any transform mapping a point to a point can
// drive it.
package pieces

import (
	"context"
	"math"

	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/observability"
)

// DefaultSafetyMargin is the distance in pixels a scattered piece keeps from
// every canvas edge after adaptation.
const DefaultSafetyMargin = 10.0

// Projector maps a point laid out on one canvas onto another. Non-finite
// results must come back as the invalid sentinel.
type Projector interface {
	Project(p geometry.Point) geometry.Point
}

// Options configures piece adaptation.
type Options struct {
	// Mode names the adaptation in diagnostics ("puzzle" or "scattered").
	Mode string
	// SafetyMargin overrides DefaultSafetyMargin for boundary correction.
	SafetyMargin float64
	// Hooks receives invalid-point and boundary-correction events. Nil uses
	// the global observability registry.
	Hooks observability.AdaptHooks
}

func (o *Options) hooks() observability.AdaptHooks {
	if o.Hooks != nil {
		return o.Hooks
	}
	return observability.Adapt()
}

func (o *Options) margin() float64 {
	if o.SafetyMargin > 0 {
		return o.SafetyMargin
	}
	return DefaultSafetyMargin
}

// Report summarizes one adaptation pass.
type Report struct {
	InvalidPoints int
	Corrected     int
	Oversized     int
}

// Project moves every piece with proj: the center and every live vertex.
// Rotation, vertex order and the Original* snapshots are left untouched.
// Points whose projection is not finite become invalid sentinels; a piece
// whose center cannot be projected keeps its previous center.
func Project(ctx context.Context, in []geometry.Piece, proj Projector, opts *Options) ([]geometry.Piece, Report) {
	if opts == nil {
		opts = &Options{}
	}
	hooks := opts.hooks()

	var rep Report
	out := make([]geometry.Piece, len(in))
	for i, p := range in {
		q := p.Clone()
		if c := proj.Project(p.Center()); c.Invalid {
			rep.InvalidPoints++
			hooks.OnInvalidPoint(ctx, opts.Mode, i, -1)
		} else {
			q.X, q.Y = c.X, c.Y
		}
		for j, pt := range p.Points {
			q.Points[j] = proj.Project(pt)
			if q.Points[j].Invalid && !pt.Invalid {
				rep.InvalidPoints++
				hooks.OnInvalidPoint(ctx, opts.Mode, i, j)
			}
		}
		out[i] = q
	}
	return out, rep
}

// Retarget returns copies of in whose solved placement (OriginalX,
// OriginalY and OriginalPoints) is mapped with proj. Live geometry and
// rotations are left as they are. A target center that cannot be projected
// is kept.
func Retarget(in []geometry.Piece, proj Projector) []geometry.Piece {
	out := make([]geometry.Piece, len(in))
	for i, p := range in {
		q := p.Clone()
		if c := proj.Project(geometry.Point{X: p.OriginalX, Y: p.OriginalY}); !c.Invalid {
			q.OriginalX, q.OriginalY = c.X, c.Y
		}
		for j, pt := range p.OriginalPoints {
			q.OriginalPoints[j] = proj.Project(pt)
		}
		out[i] = q
	}
	return out
}

// PlacedCount returns how many of ps sit in their solved position.
func PlacedCount(ps []geometry.Piece, tolerance float64) int {
	n := 0
	for _, p := range ps {
		if IsPlaced(p, tolerance) {
			n++
		}
	}
	return n
}

// Fit shifts every piece so its rotated bounding box keeps the safety margin
// from each edge of canvas. Left and top are corrected first, then right and
// bottom against the shifted box, so a piece larger than the safe area ends
// flush with the right and bottom margin. Such pieces are counted as
// oversized and reported through the hooks; they are not shrunk.
func Fit(ctx context.Context, in []geometry.Piece, canvas geometry.CanvasSize, opts *Options) ([]geometry.Piece, Report) {
	if opts == nil {
		opts = &Options{}
	}
	hooks := opts.hooks()
	m := opts.margin()

	var rep Report
	out := make([]geometry.Piece, len(in))
	for i, p := range in {
		if !hasValidPoint(p.Points) {
			out[i] = p.Clone()
			continue
		}
		b := p.RotatedBounds()
		dx := edgeCorrection(b.MinX, b.MaxX, canvas.Width, m)
		dy := edgeCorrection(b.MinY, b.MaxY, canvas.Height, m)
		oversized := b.Width() > canvas.Width-2*m || b.Height() > canvas.Height-2*m

		if dx == 0 && dy == 0 {
			out[i] = p.Clone()
			continue
		}
		out[i] = Shift(p, dx, dy)
		rep.Corrected++
		if oversized {
			rep.Oversized++
		}
		hooks.OnBoundaryCorrection(ctx, i, dx, dy, oversized)
	}
	return out, rep
}

// edgeCorrection returns the shift along one axis needed to bring
// [lo, hi] inside [margin, size-margin].
func edgeCorrection(lo, hi, size, margin float64) float64 {
	d := 0.0
	if lo < margin {
		d = margin - lo
	}
	if hi+d > size-margin {
		d = size - margin - hi
	}
	return d
}

// Shift returns a copy of p with its center and live vertices moved by
// (dx, dy).
func Shift(p geometry.Piece, dx, dy float64) geometry.Piece {
	q := p.Clone()
	q.Points = geometry.Translate(p.Points, dx, dy)
	q.X += dx
	q.Y += dy
	return q
}

// IsPlaced reports whether the piece sits in its solved position: its center
// within tolerance of the original center and its rotation equal to the
// original rotation modulo 360 degrees.
func IsPlaced(p geometry.Piece, tolerance float64) bool {
	if geometry.Distance(p.Center(), geometry.Point{X: p.OriginalX, Y: p.OriginalY}) > tolerance {
		return false
	}
	diff := math.Mod(p.Rotation-p.OriginalRotation, 360)
	if diff < 0 {
		diff += 360
	}
	const eps = 1e-6
	return diff < eps || 360-diff < eps
}

func hasValidPoint(points []geometry.Point) bool {
	for _, p := range points {
		if !p.Invalid {
			return true
		}
	}
	return false
}
