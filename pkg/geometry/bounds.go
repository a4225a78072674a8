package geometry

import "math"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Within reports whether b lies inside [margin, w-margin] x [margin, h-margin].
func (b Bounds) Within(canvas CanvasSize, margin float64) bool {
	return b.MinX >= margin && b.MaxX <= canvas.Width-margin &&
		b.MinY >= margin && b.MaxY <= canvas.Height-margin
}

// BoundsOf returns the axis-aligned bounds of points. Invalid points are
// skipped; the zero Bounds is returned when no valid point remains.
func BoundsOf(points []Point) Bounds {
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	n := 0
	for _, p := range points {
		if p.Invalid {
			continue
		}
		n++
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	if n == 0 {
		return Bounds{}
	}
	return b
}

// CanvasSize is the host's drawing surface. Both dimensions must be positive
// for any core call to succeed.
type CanvasSize struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Size is shorthand for a CanvasSize literal.
func Size(w, h float64) CanvasSize { return CanvasSize{Width: w, Height: h} }

// Center returns the canvas midpoint.
func (c CanvasSize) Center() Point { return Point{X: c.Width / 2, Y: c.Height / 2} }

// MinEdge returns the shorter side.
func (c CanvasSize) MinEdge() float64 { return min(c.Width, c.Height) }

// MaxEdge returns the longer side.
func (c CanvasSize) MaxEdge() float64 { return max(c.Width, c.Height) }

// Valid reports whether both dimensions are positive and finite.
func (c CanvasSize) Valid() bool {
	return c.Width > 0 && c.Height > 0 && IsFinite(c.Width, c.Height)
}
