package geometry

import "math"

// PolygonArea returns the unsigned area of a closed polygon using the
// shoelace formula.
func PolygonArea(points []Point) float64 {
	n := len(points)
	sum := 0.0
	for i := range n {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// Centroid returns the arithmetic mean of the vertices. This is the vertex
// centroid, not the area centroid; it is what the shape fitter recenters on.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// PointInPolygon reports whether p lies inside polygon using ray casting.
// Strict comparisons keep horizontal edges from being counted twice.
func PointInPolygon(p Point, polygon []Point) bool {
	inside := false
	n := len(polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
