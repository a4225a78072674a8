package geometry

import (
	"fmt"

	"github.com/rclancey/earcut"
)

// Triangle is three vertices of a triangulated polygon.
type Triangle [3]Point

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 { return PolygonArea(t[:]) }

// Triangulate splits a simple polygon into triangles using ear clipping.
func Triangulate(polygon []Point) ([]Triangle, error) {
	if len(polygon) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(polygon))
	}

	// earcut wants a flat [x0, y0, x1, y1, ...] array.
	coords := make([]float64, len(polygon)*2)
	for i, p := range polygon {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d-vertex polygon: %w", len(polygon), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle index count %d", len(indices))
	}

	tris := make([]Triangle, len(indices)/3)
	for i := range tris {
		tris[i] = Triangle{
			polygon[indices[i*3]],
			polygon[indices[i*3+1]],
			polygon[indices[i*3+2]],
		}
	}
	return tris, nil
}
