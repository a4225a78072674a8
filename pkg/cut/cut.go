// Package cut turns an outline into puzzle pieces.
//
// [Grid] lays a rows x cols grid over the outline's bounding box and clips the
// outline against every cell (Sutherland-Hodgman). Vertices inherited from the
// outline keep their IsOriginal flag; vertices created where the outline
// crosses a cell edge are not original. Cells the outline does not reach are
// skipped, so a puzzle may have fewer than rows*cols pieces.
package cut

import (
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
)

// minPieceArea drops slivers produced where the outline barely touches a cell.
const minPieceArea = 1.0

// Grid cuts outline into at most rows*cols pieces in row-major order.
func Grid(outline []geometry.Point, rows, cols int) ([]geometry.Piece, error) {
	if err := errors.ValidateGrid(rows, cols); err != nil {
		return nil, err
	}
	if len(outline) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "outline needs at least 3 points, got %d", len(outline))
	}
	for i, p := range outline {
		if !p.Finite() {
			return nil, errors.New(errors.ErrCodeNonFinite, "outline point %d is not finite", i)
		}
	}

	b := geometry.BoundsOf(outline)
	if b.Width() <= 0 || b.Height() <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "outline has zero extent")
	}
	cellW := b.Width() / float64(cols)
	cellH := b.Height() / float64(rows)

	var pieces []geometry.Piece
	for r := range rows {
		for c := range cols {
			cell := geometry.Bounds{
				MinX: b.MinX + float64(c)*cellW,
				MaxX: b.MinX + float64(c+1)*cellW,
				MinY: b.MinY + float64(r)*cellH,
				MaxY: b.MinY + float64(r+1)*cellH,
			}
			pts := dedupe(clipToBox(outline, cell))
			if len(pts) < 3 || geometry.PolygonArea(pts) < minPieceArea {
				continue
			}
			pieces = append(pieces, newPiece(pts))
		}
	}
	if len(pieces) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "cutting produced no pieces")
	}
	return pieces, nil
}

func newPiece(points []geometry.Point) geometry.Piece {
	c := geometry.BoundsOf(points).Center()
	return geometry.Piece{
		Points:         points,
		OriginalPoints: geometry.ClonePoints(points),
		X:              c.X,
		Y:              c.Y,
		OriginalX:      c.X,
		OriginalY:      c.Y,
	}
}

// edge is one side of the clip box: a line segment plus the test for which
// side of it counts as inside.
type edge struct {
	a, b   geometry.Point
	inside func(p geometry.Point) bool
}

func clipToBox(subject []geometry.Point, box geometry.Bounds) []geometry.Point {
	// Clip lines extend past the box so every crossing lands on them.
	pad := max(box.Width(), box.Height())
	x0, x1 := box.MinX-pad, box.MaxX+pad
	y0, y1 := box.MinY-pad, box.MaxY+pad

	edges := []edge{
		{geometry.Pt(box.MinX, y0), geometry.Pt(box.MinX, y1), func(p geometry.Point) bool { return p.X >= box.MinX }},
		{geometry.Pt(box.MaxX, y0), geometry.Pt(box.MaxX, y1), func(p geometry.Point) bool { return p.X <= box.MaxX }},
		{geometry.Pt(x0, box.MinY), geometry.Pt(x1, box.MinY), func(p geometry.Point) bool { return p.Y >= box.MinY }},
		{geometry.Pt(x0, box.MaxY), geometry.Pt(x1, box.MaxY), func(p geometry.Point) bool { return p.Y <= box.MaxY }},
	}

	out := subject
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = nil
		prev := in[len(in)-1]
		for _, cur := range in {
			curIn, prevIn := e.inside(cur), e.inside(prev)
			switch {
			case curIn && !prevIn:
				out = append(out, crossing(prev, cur, e), cur)
			case curIn:
				out = append(out, cur)
			case prevIn:
				out = append(out, crossing(prev, cur, e))
			}
			prev = cur
		}
	}
	return out
}

// crossing returns where segment pq crosses the clip edge. The result is a
// cut vertex and never original.
func crossing(p, q geometry.Point, e edge) geometry.Point {
	if x, ok := geometry.SegmentIntersection(p, q, e.a, e.b); ok {
		return geometry.Point{X: x.X, Y: x.Y}
	}
	// Numerically parallel: interpolate on the clip axis instead.
	if e.a.X == e.b.X {
		t := (e.a.X - p.X) / (q.X - p.X)
		return geometry.Point{X: e.a.X, Y: p.Y + t*(q.Y-p.Y)}
	}
	t := (e.a.Y - p.Y) / (q.Y - p.Y)
	return geometry.Point{X: p.X + t*(q.X-p.X), Y: e.a.Y}
}

// dedupe removes consecutive duplicate vertices, including a closing
// duplicate of the first vertex.
func dedupe(points []geometry.Point) []geometry.Point {
	const eps = 1e-9
	same := func(a, b geometry.Point) bool {
		return geometry.Distance(a, b) < eps
	}
	out := make([]geometry.Point, 0, len(points))
	for _, p := range points {
		if n := len(out); n > 0 && same(out[n-1], p) {
			out[n-1].IsOriginal = out[n-1].IsOriginal || p.IsOriginal
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && same(out[0], out[len(out)-1]) {
		out[0].IsOriginal = out[0].IsOriginal || out[len(out)-1].IsOriginal
		out = out[:len(out)-1]
	}
	return out
}
