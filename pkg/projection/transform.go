package projection

import (
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
)

// Transform maps points laid out around From onto To.
type Transform struct {
	From  geometry.Point
	To    geometry.Point
	Scale ScaleFactor
}

// New builds the transform projecting from one canvas onto another.
func New(strategy Strategy, from, to geometry.CanvasSize) (Transform, error) {
	if err := errors.ValidateCanvas("source canvas", from.Width, from.Height); err != nil {
		return Transform{}, err
	}
	if err := errors.ValidateCanvas("target canvas", to.Width, to.Height); err != nil {
		return Transform{}, err
	}
	sf, err := Scale(strategy, from, to)
	if err != nil {
		return Transform{}, err
	}
	return Transform{From: from.Center(), To: to.Center(), Scale: sf}, nil
}

// Offset is the translation between the two canvas centers.
func (t Transform) Offset() geometry.Point {
	return geometry.Point{X: t.To.X - t.From.X, Y: t.To.Y - t.From.Y}
}

// Inverse returns the transform undoing t.
func (t Transform) Inverse() Transform {
	return Transform{
		From:  t.To,
		To:    t.From,
		Scale: ScaleFactor{X: 1 / t.Scale.X, Y: 1 / t.Scale.Y},
	}
}

// Project maps a single point. The IsOriginal flag is carried over. A point
// that is already invalid, or whose projection is not finite, comes back as
// the invalid sentinel.
func (t Transform) Project(p geometry.Point) geometry.Point {
	if p.Invalid {
		return geometry.Point{IsOriginal: p.IsOriginal, Invalid: true}
	}
	rx, ry := p.X-t.From.X, p.Y-t.From.Y
	x := rx*t.Scale.X + t.To.X
	y := ry*t.Scale.Y + t.To.Y
	if !geometry.IsFinite(rx, ry, x, y) {
		return geometry.Point{IsOriginal: p.IsOriginal, Invalid: true}
	}
	return geometry.Point{X: x, Y: y, IsOriginal: p.IsOriginal}
}

// ProjectAll maps every point and returns the indices of the points that
// came back invalid. The input slice is not modified.
func (t Transform) ProjectAll(points []geometry.Point) ([]geometry.Point, []int) {
	if points == nil {
		return nil, nil
	}
	out := make([]geometry.Point, len(points))
	var invalid []int
	for i, p := range points {
		out[i] = t.Project(p)
		if out[i].Invalid {
			invalid = append(invalid, i)
		}
	}
	return out, invalid
}
