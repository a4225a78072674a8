package geometry

import (
	"encoding/json"
	"math"
)

// Point is a single vertex.
//
// IsOriginal marks a vertex that belongs to the uncut outline. It is opaque
// to every algorithm in this module and must be propagated, never recomputed.
//
// Invalid is the sentinel for a vertex whose coordinates could not be
// computed (for example after a non-finite intermediate result). Invalid
// points carry no meaningful X/Y and encode to JSON as null coordinates.
type Point struct {
	X          float64
	Y          float64
	IsOriginal bool
	Invalid    bool
}

// Pt is shorthand for a plain point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{X: p.X + q.X, Y: p.Y + q.Y, IsOriginal: p.IsOriginal} }
func (p Point) Sub(q Point) Point     { return Point{X: p.X - q.X, Y: p.Y - q.Y, IsOriginal: p.IsOriginal} }
func (p Point) Scale(s float64) Point { return Point{X: p.X * s, Y: p.Y * s, IsOriginal: p.IsOriginal} }

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !p.Invalid && isFinite(p.X) && isFinite(p.Y)
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rotate rotates p around center by deg degrees (clockwise in screen space,
// where y grows downward).
func Rotate(p, center Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{
		X:          center.X + dx*cos - dy*sin,
		Y:          center.Y + dx*sin + dy*cos,
		IsOriginal: p.IsOriginal,
		Invalid:    p.Invalid,
	}
}

// Translate returns a copy of points shifted by (dx, dy). Invalid points are
// copied unchanged.
func Translate(points []Point, dx, dy float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		if !p.Invalid {
			p.X += dx
			p.Y += dy
		}
		out[i] = p
	}
	return out
}

// ClonePoints returns a copy of points. A nil slice stays nil.
func ClonePoints(points []Point) []Point {
	if points == nil {
		return nil
	}
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(vs ...float64) bool {
	for _, v := range vs {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// wirePoint is the JSON shape shared with the host. Coordinates are pointers
// so an invalid point can be written as null.
type wirePoint struct {
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	IsOriginal bool     `json:"isOriginal,omitempty"`
}

// MarshalJSON encodes the point as {"x":..,"y":..}. Invalid points encode
// their coordinates as null.
func (p Point) MarshalJSON() ([]byte, error) {
	w := wirePoint{IsOriginal: p.IsOriginal}
	if !p.Invalid {
		x, y := p.X, p.Y
		w.X, w.Y = &x, &y
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a point. A null coordinate yields an invalid point.
func (p *Point) UnmarshalJSON(data []byte) error {
	var w wirePoint
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Point{IsOriginal: w.IsOriginal}
	if w.X == nil || w.Y == nil {
		p.Invalid = true
		return nil
	}
	p.X, p.Y = *w.X, *w.Y
	return nil
}
