package shape

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/observability"
)

var canvas800 = geometry.Size(800, 600)

func TestPolygonAreaLowerBound(t *testing.T) {
	g := NewGenerator(1, nil)
	threshold := MinShapeArea / 16

	for i := range 100 {
		pts, err := g.Polygon(canvas800)
		if err != nil {
			t.Fatalf("generation %d: %v", i, err)
		}
		if area := geometry.PolygonArea(pts); area < threshold {
			t.Fatalf("generation %d: area %v below threshold %v", i, area, threshold)
		}
		if n := len(pts); n < polygonMinVertices || n > polygonMaxVertices {
			t.Fatalf("generation %d: %d vertices, want 5..9", i, n)
		}
	}
}

func TestPolygonAreaLowerBoundSmallCanvas(t *testing.T) {
	g := NewGenerator(7, nil)
	small := geometry.Size(MinCanvasSide, MinCanvasSide)
	for i := range 100 {
		pts, err := g.Polygon(small)
		if err != nil {
			t.Fatalf("generation %d: %v", i, err)
		}
		if area := geometry.PolygonArea(pts); area < g.AreaThreshold() {
			t.Fatalf("generation %d: area %v below threshold", i, area)
		}
	}
}

func TestPolygonUnreachableArea(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		opts   Options
		canvas geometry.CanvasSize
	}{
		{"tiny diameters", Options{MinDiameter: 10, MaxDiameter: 20, MinArea: MinShapeArea}, canvas800},
		{"huge area", Options{MinDiameter: 300, MaxDiameter: 500, MinArea: 1e7}, canvas800},
		{"canvas caps diameter", Options{MinDiameter: 300, MaxDiameter: 500, MinArea: 400000}, geometry.Size(MinCanvasSide, MinCanvasSide)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan error, 1)
			go func() {
				_, err := NewGenerator(1, &tt.opts).Generate(ctx, Polygon, tt.canvas)
				done <- err
			}()
			select {
			case err := <-done:
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("polygon generation did not return")
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("DefaultOptions().Validate() = %v", err)
	}
	bad := Options{MinDiameter: 10, MaxDiameter: 20, MinArea: MinShapeArea}
	if err := bad.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestGeneratePointCounts(t *testing.T) {
	g := NewGenerator(42, nil)
	ctx := context.Background()

	tests := []struct {
		family Family
		want   int
	}{
		{Cloud, cloudPoints},
		{Jagged, jaggedPoints},
	}
	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			pts, err := g.Generate(ctx, tt.family, canvas800)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(pts) != tt.want {
				t.Errorf("got %d points, want %d", len(pts), tt.want)
			}
			for i, p := range pts {
				if !p.IsOriginal {
					t.Fatalf("point %d not marked original", i)
				}
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	ctx := context.Background()
	a, _ := NewGenerator(9, nil).Generate(ctx, Jagged, canvas800)
	b, _ := NewGenerator(9, nil).Generate(ctx, Jagged, canvas800)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs for equal seeds", i)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	g := NewGenerator(1, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		family Family
		canvas geometry.CanvasSize
		code   errors.Code
	}{
		{"unknown family", Family("star"), canvas800, errors.ErrCodeInvalidFamily},
		{"zero canvas", Polygon, geometry.Size(0, 600), errors.ErrCodeInvalidCanvas},
		{"tiny canvas", Polygon, geometry.Size(100, 600), errors.ErrCodeInvalidCanvas},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(ctx, tt.family, tt.canvas)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestParseFamily(t *testing.T) {
	for _, s := range []string{"polygon", "Cloud", " JAGGED "} {
		if _, err := ParseFamily(s); err != nil {
			t.Errorf("ParseFamily(%q): %v", s, err)
		}
	}
	if _, err := ParseFamily("hexagon"); !errors.Is(err, errors.ErrCodeInvalidFamily) {
		t.Errorf("ParseFamily(hexagon) = %v", err)
	}
}

func TestOptimizedCurveFit(t *testing.T) {
	g := NewOptimizedGenerator(3, nil)
	pts, err := g.Generate(context.Background(), Cloud, canvas800)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(pts) != 200 {
		t.Fatalf("got %d points, want 200", len(pts))
	}
	for i, p := range pts {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Fatalf("point %d (%v,%v) outside canvas", i, p.X, p.Y)
		}
	}
	c := geometry.Centroid(pts)
	if math.Abs(c.X-400) > 1 || math.Abs(c.Y-300) > 1 {
		t.Errorf("centroid = (%v,%v), want within 1px of (400,300)", c.X, c.Y)
	}
	b := geometry.BoundsOf(pts)
	if got := max(b.Width(), b.Height()); math.Abs(got-FitRatio*600) > 1e-6 {
		t.Errorf("longest dimension = %v, want %v", got, FitRatio*600)
	}
}

type cacheCounter struct {
	observability.NoopCacheHooks
	hits, misses, evictions int
}

func (c *cacheCounter) OnCacheHit(context.Context, string)   { c.hits++ }
func (c *cacheCounter) OnCacheMiss(context.Context, string)  { c.misses++ }
func (c *cacheCounter) OnCacheEvict(context.Context, string) { c.evictions++ }

func TestOptimizedCache(t *testing.T) {
	counter := &cacheCounter{}
	g := NewOptimizedGenerator(5, &OptimizedOptions{CacheCapacity: 2, CacheHooks: counter})
	ctx := context.Background()

	first, err := g.Generate(ctx, Polygon, canvas800)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, _ := g.Generate(ctx, Polygon, canvas800)
	if len(first) != len(second) {
		t.Fatal("cached outline should be reused")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs between cached calls", i)
		}
	}
	if counter.hits != 1 || counter.misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", counter.hits, counter.misses)
	}

	// Mutating a returned outline must not poison the cache.
	first[0].X = -1000
	third, _ := g.Generate(ctx, Polygon, canvas800)
	if third[0].X == -1000 {
		t.Error("cache returned a shared slice")
	}

	g.Generate(ctx, Polygon, geometry.Size(1024, 768))
	g.Generate(ctx, Polygon, geometry.Size(640, 480))
	if g.CacheLen() != 2 {
		t.Errorf("CacheLen() = %d, want 2", g.CacheLen())
	}
	if counter.evictions != 1 {
		t.Errorf("evictions = %d, want 1", counter.evictions)
	}

	g.ClearCache()
	if g.CacheLen() != 0 {
		t.Error("ClearCache should empty the cache")
	}
}

func TestFitPreservesFlags(t *testing.T) {
	pts := []geometry.Point{
		{X: 0, Y: 0, IsOriginal: true},
		{X: 10, Y: 0},
		{X: 10, Y: 10, IsOriginal: true},
		{X: 0, Y: 10},
	}
	fitted := Fit(pts, geometry.Size(100, 100))
	for i := range pts {
		if fitted[i].IsOriginal != pts[i].IsOriginal {
			t.Errorf("point %d flag changed", i)
		}
	}
	if pts[0].X != 0 {
		t.Error("Fit must not modify its input")
	}
	b := geometry.BoundsOf(fitted)
	if math.Abs(b.Width()-40) > 1e-9 || math.Abs(b.MinX-30) > 1e-9 {
		t.Errorf("fitted bounds = %+v", b)
	}
}

func TestInspect(t *testing.T) {
	square := []geometry.Point{geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(10, 10), geometry.Pt(0, 10)}
	r, err := Inspect(square)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if r.Area != 100 || r.Triangles != 2 || r.SelfOverlapping {
		t.Errorf("report = %+v", r)
	}

	pts, _ := NewGenerator(11, nil).Generate(context.Background(), Polygon, canvas800)
	r, err = Inspect(pts)
	if err != nil {
		t.Fatalf("Inspect polygon: %v", err)
	}
	if r.Triangles != len(pts)-2 {
		t.Errorf("triangles = %d, want %d", r.Triangles, len(pts)-2)
	}
}
