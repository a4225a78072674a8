package geometry

import "math"

// nearEpsilon absorbs floating point error in PointNearSegment.
const nearEpsilon = 0.1

// Segment is a line segment from A to B.
type Segment struct {
	A, B Point
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 { return Distance(s.A, s.B) }

// SegmentIntersection returns the intersection point of segments p1p2 and
// p3p4. It reports false for parallel segments or when the intersection lies
// outside either segment.
func SegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	denom := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if denom == 0 {
		return Point{}, false
	}
	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / denom
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / denom
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return Point{}, false
	}
	return Point{
		X: p1.X + ua*(p2.X-p1.X),
		Y: p1.Y + ua*(p2.Y-p1.Y),
	}, true
}

// PointToSegmentDistance returns the distance from p to the closest point of s.
func PointToSegmentDistance(p Point, s Segment) float64 {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / (dx*dx + dy*dy)
	t = max(0, min(1, t))
	return math.Hypot(p.X-(s.A.X+t*dx), p.Y-(s.A.Y+t*dy))
}

// PointNearSegment reports whether p is within threshold of s, using the
// slack of the triangle inequality: for a point on the segment d1+d2 equals
// the segment length, and the slack grows as p moves away from it.
func PointNearSegment(p Point, s Segment, threshold float64) bool {
	d1 := Distance(p, s.A)
	d2 := Distance(p, s.B)
	return d1+d2 <= s.Length()+threshold+nearEpsilon
}
