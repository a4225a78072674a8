package pipeline

import (
	"context"
	"io"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/adapt"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Family != "polygon" || o.Width != DefaultWidth || o.Rows != DefaultRows || o.Seed != DefaultSeed || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"family", Options{Family: "star"}, errors.ErrCodeInvalidFamily},
		{"canvas", Options{Width: -1}, errors.ErrCodeInvalidCanvas},
		{"grid", Options{Rows: 1000, Cols: 1000}, errors.ErrCodeInvalidGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Family: "cloud"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	p := res.Puzzle
	if p.ID == "" || !p.Scattered || p.ScatterCanvas != p.Canvas {
		t.Errorf("puzzle header = %+v", p)
	}
	if res.Stats.Points != 200 {
		t.Errorf("points = %d, want 200", res.Stats.Points)
	}
	if len(p.Pieces) == 0 || len(p.Pieces) > DefaultRows*DefaultCols {
		t.Fatalf("got %d pieces", len(p.Pieces))
	}
	for i, pc := range p.Pieces {
		if len(pc.Points) != len(pc.OriginalPoints) {
			t.Errorf("piece %d point count mismatch", i)
		}
		if !pc.Bounds().Within(p.Canvas, 0) {
			t.Errorf("piece %d outside canvas: %+v", i, pc.Bounds())
		}
	}
	if p.Solved(DefaultPlacedTolerance) {
		t.Error("scattered puzzle reports solved")
	}
}

func TestExecuteSolved(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Solved: true, Rows: 2, Cols: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Puzzle.Scattered {
		t.Error("solved puzzle marked scattered")
	}
	if !res.Puzzle.Solved(DefaultPlacedTolerance) {
		t.Error("unscattered puzzle should be solved")
	}
	if got := res.Puzzle.PlacedCount(DefaultPlacedTolerance); got != len(res.Puzzle.Pieces) {
		t.Errorf("PlacedCount = %d, want %d", got, len(res.Puzzle.Pieces))
	}
}

func TestExecuteCaching(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Family: "jagged", Seed: 9}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ShapeHit || first.CacheInfo.PuzzleHit {
		t.Errorf("first run hit cache: %+v", first.CacheInfo)
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2 (shape and puzzle)", c.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.PuzzleHit {
		t.Error("second run missed the puzzle cache")
	}
	if second.Puzzle.ID == first.Puzzle.ID {
		t.Error("cached puzzle reused the ID")
	}
	if !reflect.DeepEqual(second.Puzzle.Pieces, first.Puzzle.Pieces) {
		t.Error("cached pieces differ")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.PuzzleHit || third.CacheInfo.ShapeHit {
		t.Error("refresh used the cache")
	}
}

func TestShapeCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()

	a, hit, err := r.ShapeWithCacheInfo(ctx, Options{Seed: 3})
	if err != nil || hit {
		t.Fatalf("first: hit=%v err=%v", hit, err)
	}
	b, hit, err := r.ShapeWithCacheInfo(ctx, Options{Seed: 3})
	if err != nil || !hit {
		t.Fatalf("second: hit=%v err=%v", hit, err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("cached outline differs")
	}
}

func TestResize(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	res, err := r.Execute(ctx, Options{})
	if err != nil {
		t.Fatal(err)
	}
	p := res.Puzzle
	before := p.Document()

	target := geometry.Size(390, 844)
	view, err := r.Resize(ctx, p, target, adapt.Options{})
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if view.Canvas != target || len(view.Pieces) != len(p.Pieces) || len(view.Shape) != len(p.Shape) {
		t.Errorf("view = %+v", view)
	}
	for i, pc := range view.Pieces {
		if !pc.RotatedBounds().Within(target, 10-1e-9) {
			t.Errorf("piece %d outside safety margin: %+v", i, pc.RotatedBounds())
		}
	}
	if !reflect.DeepEqual(p.Document(), before) {
		t.Error("Resize modified the puzzle")
	}

	// Resizing back to the build canvas restores the layout.
	back, err := r.Resize(ctx, p, p.Canvas, adapt.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i := range p.Pieces {
		if math.Abs(back.Pieces[i].X-p.Pieces[i].X) > 1e-9 || math.Abs(back.Pieces[i].Y-p.Pieces[i].Y) > 1e-9 {
			t.Errorf("piece %d moved: (%v,%v) -> (%v,%v)", i, p.Pieces[i].X, p.Pieces[i].Y, back.Pieces[i].X, back.Pieces[i].Y)
		}
	}
}

func TestResizeKeepsTargetsOnOutline(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	target := geometry.Size(400, 300)

	for _, solved := range []bool{true, false} {
		res, err := r.Execute(ctx, Options{Rows: 2, Cols: 2, Solved: solved})
		if err != nil {
			t.Fatal(err)
		}
		view, err := r.Resize(ctx, res.Puzzle, target, adapt.Options{})
		if err != nil {
			t.Fatalf("solved=%v: Resize: %v", solved, err)
		}
		if solved && !view.Solved(DefaultPlacedTolerance) {
			t.Errorf("solved puzzle lost placement: %d/%d placed",
				view.PlacedCount(DefaultPlacedTolerance), len(view.Pieces))
		}

		const eps = 1e-6
		outline := geometry.BoundsOf(view.Shape)
		inside := func(p geometry.Point) bool {
			return p.X >= outline.MinX-eps && p.X <= outline.MaxX+eps &&
				p.Y >= outline.MinY-eps && p.Y <= outline.MaxY+eps
		}
		for i, pc := range view.Pieces {
			if !inside(geometry.Point{X: pc.OriginalX, Y: pc.OriginalY}) {
				t.Errorf("solved=%v: piece %d target (%v,%v) outside outline %+v", solved, i, pc.OriginalX, pc.OriginalY, outline)
			}
			for j, pt := range pc.OriginalPoints {
				if !inside(pt) {
					t.Errorf("solved=%v: piece %d target vertex %d %+v outside outline", solved, i, j, pt)
				}
			}
		}
	}
}

func TestResizeFailureKeepsGeometry(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	res, err := r.Execute(ctx, Options{Rows: 2, Cols: 2})
	if err != nil {
		t.Fatal(err)
	}
	view, err := r.Resize(ctx, res.Puzzle, geometry.Size(0, 300), adapt.Options{})
	if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Fatalf("err = %v, want INVALID_CANVAS", err)
	}
	if view.Canvas != res.Puzzle.Canvas || !reflect.DeepEqual(view.Pieces, res.Puzzle.Pieces) {
		t.Error("failed resize did not return the last good geometry")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	p, err := FromDocument(res.Puzzle.Document())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, res.Puzzle) {
		t.Error("document round trip changed the puzzle")
	}
}
