package scatter

import (
	"context"
	stderrors "errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
)

func square(cx, cy, half float64) geometry.Piece {
	pts := []geometry.Point{
		{X: cx - half, Y: cy - half, IsOriginal: true},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}
	return geometry.Piece{
		Points: pts, OriginalPoints: geometry.ClonePoints(pts),
		X: cx, Y: cy, OriginalX: cx, OriginalY: cy,
	}
}

func solvedGrid(n int, size float64) []geometry.Piece {
	var out []geometry.Piece
	for i := range n {
		out = append(out, square(300+float64(i%3)*size, 200+float64(i/3)*size, size/2))
	}
	return out
}

type hookRecorder struct {
	violations [][]string
	failed     []int
	completed  int
}

func (h *hookRecorder) OnScatterStart(context.Context, int, float64, float64) {}
func (h *hookRecorder) OnScatterComplete(context.Context, int, int, time.Duration) {
	h.completed++
}
func (h *hookRecorder) OnMarginViolation(_ context.Context, _ int, edges []string) {
	h.violations = append(h.violations, edges)
}
func (h *hookRecorder) OnPieceFailed(_ context.Context, piece int, _ error) {
	h.failed = append(h.failed, piece)
}

func TestClassifyAndMargin(t *testing.T) {
	m := DefaultMargins()
	tests := []struct {
		name   string
		canvas geometry.CanvasSize
		device Device
		margin float64
	}{
		{"desktop", geometry.Size(1280, 800), Device{}, 80},
		{"small desktop", geometry.Size(1000, 700), Device{IsSmallScreen: true}, 60},
		{"landscape phone", geometry.Size(700, 360), Device{IsMobile: true, IsSmallScreen: true}, 60},
		{"portrait phone", geometry.Size(375, 667), Device{IsMobile: true, IsPortrait: true, IsSmallScreen: true}, 37.5},
		{"narrow desktop", geometry.Size(900, 600), Device{IsSmallScreen: true}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.canvas)
			if d != tt.device {
				t.Errorf("Classify = %+v, want %+v", d, tt.device)
			}
			if got := m.Margin(tt.canvas, d); math.Abs(got-tt.margin) > 1e-9 {
				t.Errorf("Margin = %v, want %v", got, tt.margin)
			}
		})
	}
}

func TestGridSize(t *testing.T) {
	if got := GridSize(4, Device{}); got != 2 {
		t.Errorf("GridSize(4) = %d, want 2", got)
	}
	if got := GridSize(10, Device{}); got != 4 {
		t.Errorf("GridSize(10) = %d, want 4", got)
	}
	if got := GridSize(4, Device{IsMobile: true, IsPortrait: true}); got != 3 {
		t.Errorf("portrait GridSize(4) = %d, want 3", got)
	}
	if got := GridSize(0, Device{}); got != 0 {
		t.Errorf("GridSize(0) = %d, want 0", got)
	}
}

func TestSpiral(t *testing.T) {
	got := Spiral(3)
	want := []Cell{
		{1, 1},
		{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spiral(3) = %v, want %v", got, want)
	}

	for _, g := range []int{1, 2, 4, 5} {
		cells := Spiral(g)
		if len(cells) != g*g {
			t.Errorf("Spiral(%d) has %d cells, want %d", g, len(cells), g*g)
		}
		seen := map[Cell]bool{}
		for _, c := range cells {
			if c.Col < 0 || c.Col >= g || c.Row < 0 || c.Row >= g || seen[c] {
				t.Errorf("Spiral(%d): bad or duplicate cell %v", g, c)
			}
			seen[c] = true
		}
	}
}

func TestRotation(t *testing.T) {
	mobile := Device{IsMobile: true}
	for i, want := range []float64{0, 90, 180, 270, 0} {
		if got := Rotation(i, mobile); got != want {
			t.Errorf("mobile Rotation(%d) = %v, want %v", i, got, want)
		}
	}
	for i, want := range []float64{0, 45, 90, 135, 180, 225, 270, 315, 0} {
		if got := Rotation(i, Device{}); got != want {
			t.Errorf("desktop Rotation(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestScatterContainment(t *testing.T) {
	canvases := []geometry.CanvasSize{
		geometry.Size(800, 600),
		geometry.Size(1280, 800),
		geometry.Size(375, 667),
		geometry.Size(700, 360),
	}
	in := solvedGrid(9, 40)
	for _, canvas := range canvases {
		rec := &hookRecorder{}
		res, err := Scatter(context.Background(), in, canvas, &Options{Hooks: rec})
		if err != nil {
			t.Fatalf("%v: %v", canvas, err)
		}
		if len(res.Pieces) != len(in) || len(res.Failures) != 0 || res.Skipped {
			t.Fatalf("%v: unexpected result %+v", canvas, res)
		}
		for i, p := range res.Pieces {
			if !p.Bounds().Within(canvas, res.Margin) {
				t.Errorf("%v: piece %d bounds %+v outside margin %v", canvas, i, p.Bounds(), res.Margin)
			}
			if p.Rotation != Rotation(i, res.Device) {
				t.Errorf("%v: piece %d rotation %v", canvas, i, p.Rotation)
			}
			// Shape is preserved: only a translation was applied.
			dx, dy := p.X-in[i].X, p.Y-in[i].Y
			for j, pt := range p.Points {
				orig := in[i].Points[j]
				if math.Abs(pt.X-orig.X-dx) > 1e-9 || math.Abs(pt.Y-orig.Y-dy) > 1e-9 || pt.IsOriginal != orig.IsOriginal {
					t.Errorf("%v: piece %d vertex %d not translated rigidly", canvas, i, j)
				}
			}
		}
		if len(rec.violations) != 0 {
			t.Errorf("%v: unexpected margin violations %v", canvas, rec.violations)
		}
		if rec.completed != 1 {
			t.Errorf("%v: complete hook called %d times", canvas, rec.completed)
		}
	}
	if in[0].X != 300 || in[0].Points[0].X != 280 {
		t.Error("input modified")
	}
}

func TestScatterDeterministic(t *testing.T) {
	in := solvedGrid(6, 50)
	a, _ := Scatter(context.Background(), in, geometry.Size(800, 600), nil)
	b, _ := Scatter(context.Background(), in, geometry.Size(800, 600), nil)
	if !reflect.DeepEqual(a.Pieces, b.Pieces) {
		t.Error("scatter is not deterministic")
	}
}

func TestScatterEmptyPieceSkipsAll(t *testing.T) {
	in := solvedGrid(3, 40)
	in[1].Points = nil
	res, err := Scatter(context.Background(), in, geometry.Size(800, 600), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Error("Skipped not set")
	}
	if !reflect.DeepEqual(res.Pieces, in) {
		t.Error("pieces changed despite skip")
	}
}

func TestScatterPieceFailure(t *testing.T) {
	in := solvedGrid(3, 40)
	in[2].Points[1].Y = math.NaN()
	rec := &hookRecorder{}
	res, err := Scatter(context.Background(), in, geometry.Size(800, 600), &Options{Hooks: rec})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Failures) != 1 || res.Failures[0].Index != 2 {
		t.Fatalf("Failures = %v, want piece 2", res.Failures)
	}
	if !errors.Is(res.Failures[0], errors.ErrCodeNonFinite) {
		t.Errorf("failure = %v, want NON_FINITE", res.Failures[0])
	}
	var pe *PieceError
	if !stderrors.As(res.Failures[0], &pe) {
		t.Error("failure is not a *PieceError")
	}
	if res.Pieces[2].X != in[2].X || res.Pieces[2].Rotation != 0 {
		t.Error("failed piece was not kept in place")
	}
	if res.Pieces[0].X == in[0].X && res.Pieces[0].Y == in[0].Y {
		t.Error("healthy piece was not scattered")
	}
	if !reflect.DeepEqual(rec.failed, []int{2}) {
		t.Errorf("failed hook = %v", rec.failed)
	}
}

func TestScatterOversizedPieceWarns(t *testing.T) {
	in := []geometry.Piece{square(400, 300, 350)}
	rec := &hookRecorder{}
	res, err := Scatter(context.Background(), in, geometry.Size(800, 600), &Options{Hooks: rec})
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.violations) != 1 {
		t.Fatalf("violations = %v, want one", rec.violations)
	}
	if len(res.Pieces[0].Points) != 4 {
		t.Error("vertex count changed")
	}
}

func TestScatterInvalidCanvas(t *testing.T) {
	_, err := Scatter(context.Background(), solvedGrid(1, 10), geometry.Size(0, 100), nil)
	if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Errorf("err = %v, want INVALID_CANVAS", err)
	}
}
