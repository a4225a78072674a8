package geometry

import (
	"encoding/json"
	"math"
	"testing"
)

func square(size float64) []Point {
	return []Point{Pt(0, 0), Pt(size, 0), Pt(size, size), Pt(0, size)}
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   float64
	}{
		{"unit square", square(1), 1},
		{"10x10 square", square(10), 100},
		{"clockwise square", []Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}, 100},
		{"triangle", []Point{Pt(0, 0), Pt(4, 0), Pt(0, 3)}, 6},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonArea(tt.points); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PolygonArea() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([]Point{Pt(3, -1), Pt(-2, 4), {Invalid: true}, Pt(5, 2)})
	want := Bounds{MinX: -2, MaxX: 5, MinY: -1, MaxY: 4}
	if b != want {
		t.Errorf("BoundsOf() = %+v, want %+v", b, want)
	}
	if b.Width() != 7 || b.Height() != 5 {
		t.Errorf("Width/Height = %v/%v, want 7/5", b.Width(), b.Height())
	}
	if c := b.Center(); c.X != 1.5 || c.Y != 1.5 {
		t.Errorf("Center() = %+v", c)
	}

	if got := BoundsOf([]Point{{Invalid: true}}); got != (Bounds{}) {
		t.Errorf("BoundsOf(all invalid) = %+v, want zero", got)
	}
}

func TestPointInPolygon(t *testing.T) {
	sq := square(10)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Pt(5, 5), true},
		{"outside right", Pt(15, 5), false},
		{"outside above", Pt(5, -1), false},
		{"near corner inside", Pt(0.1, 0.1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.p, sq); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	// Concave "U" shape: the notch is outside.
	u := []Point{Pt(0, 0), Pt(30, 0), Pt(30, 30), Pt(20, 30), Pt(20, 10), Pt(10, 10), Pt(10, 30), Pt(0, 30)}
	if PointInPolygon(Pt(15, 20), u) {
		t.Error("point in notch should be outside")
	}
	if !PointInPolygon(Pt(5, 20), u) {
		t.Error("point in left arm should be inside")
	}
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := SegmentIntersection(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0))
	if !ok {
		t.Fatal("expected crossing diagonals to intersect")
	}
	if math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
		t.Errorf("intersection = %+v, want (5,5)", p)
	}

	if _, ok := SegmentIntersection(Pt(0, 0), Pt(10, 0), Pt(0, 1), Pt(10, 1)); ok {
		t.Error("parallel segments should not intersect")
	}
	if _, ok := SegmentIntersection(Pt(0, 0), Pt(1, 1), Pt(0, 10), Pt(10, 0)); ok {
		t.Error("intersection beyond segment end should be rejected")
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	s := Segment{A: Pt(0, 0), B: Pt(10, 0)}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Pt(5, 3), 3},
		{"before start", Pt(-3, 4), 5},
		{"past end", Pt(13, 4), 5},
		{"on segment", Pt(7, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointToSegmentDistance(tt.p, s); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PointToSegmentDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointNearSegment(t *testing.T) {
	s := Segment{A: Pt(0, 0), B: Pt(100, 0)}
	if !PointNearSegment(Pt(50, 0), s, 0) {
		t.Error("point on segment should be near with zero threshold")
	}
	if !PointNearSegment(Pt(50, 5), s, 1) {
		t.Error("point 5px off a long segment has slack < 1")
	}
	if PointNearSegment(Pt(50, 40), s, 1) {
		t.Error("point far from segment should not be near")
	}
}

func TestRotate(t *testing.T) {
	got := Rotate(Point{X: 10, Y: 0, IsOriginal: true}, Pt(0, 0), 90)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("Rotate 90 = %+v, want (0,10)", got)
	}
	if !got.IsOriginal {
		t.Error("Rotate should propagate IsOriginal")
	}
}

func TestPieceRotatedBounds(t *testing.T) {
	p := Piece{Points: []Point{Pt(0, 45), Pt(100, 45), Pt(100, 55), Pt(0, 55)}, X: 50, Y: 50}
	if b := p.RotatedBounds(); b.Width() != 100 {
		t.Errorf("unrotated width = %v, want 100", b.Width())
	}
	p.Rotation = 90
	b := p.RotatedBounds()
	if math.Abs(b.Width()-10) > 1e-9 || math.Abs(b.Height()-100) > 1e-9 {
		t.Errorf("rotated bounds = %+v, want 10x100", b)
	}
}

func TestPieceClone(t *testing.T) {
	p := Piece{Points: square(1), OriginalPoints: square(1)}
	c := p.Clone()
	c.Points[0].X = 42
	if p.Points[0].X == 42 {
		t.Error("Clone should deep-copy points")
	}
}

func TestPointJSON(t *testing.T) {
	data, err := json.Marshal([]Point{{X: 1, Y: 2, IsOriginal: true}, {Invalid: true}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[{"x":1,"y":2,"isOriginal":true},{"x":null,"y":null}]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back []Point
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back[0].IsOriginal || back[0].X != 1 || back[0].Invalid {
		t.Errorf("first point = %+v", back[0])
	}
	if !back[1].Invalid {
		t.Error("null coordinates should decode as invalid")
	}
}

func TestTriangulate(t *testing.T) {
	tris, err := Triangulate(square(10))
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	total := 0.0
	for _, tri := range tris {
		total += tri.Area()
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("triangulated area = %v, want 100", total)
	}

	if _, err := Triangulate(square(1)[:2]); err == nil {
		t.Error("expected error for degenerate polygon")
	}
}

func TestCanvasSize(t *testing.T) {
	c := Size(800, 600)
	if c.MinEdge() != 600 || c.MaxEdge() != 800 {
		t.Errorf("edges = %v/%v", c.MinEdge(), c.MaxEdge())
	}
	if !c.Valid() {
		t.Error("800x600 should be valid")
	}
	if Size(0, 500).Valid() || Size(10, math.Inf(1)).Valid() {
		t.Error("zero or infinite canvas should be invalid")
	}
}
