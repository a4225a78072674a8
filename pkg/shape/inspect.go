package shape

import (
	"math"

	"github.com/matzehuels/jigsaw/pkg/geometry"
)

// selfOverlapTolerance is the relative deviation between the triangulated
// and the shoelace area above which an outline is reported as overlapping.
const selfOverlapTolerance = 0.01

// Report summarizes an outline.
type Report struct {
	Points          int             `json:"points"`
	Area            float64         `json:"area"`
	Bounds          geometry.Bounds `json:"bounds"`
	Centroid        geometry.Point  `json:"centroid"`
	Triangles       int             `json:"triangles"`
	SelfOverlapping bool            `json:"selfOverlapping"`
}

// Inspect measures an outline. For a simple polygon the ear-clipped
// triangles cover exactly the shoelace area; a self-intersecting outline
// makes the two disagree.
func Inspect(points []geometry.Point) (Report, error) {
	a := analyze(points)
	r := Report{
		Points:   len(points),
		Area:     geometry.PolygonArea(points),
		Bounds:   a.bounds,
		Centroid: a.centroid,
	}

	tris, err := geometry.Triangulate(points)
	if err != nil {
		return r, err
	}
	r.Triangles = len(tris)

	var triArea float64
	for _, t := range tris {
		triArea += t.Area()
	}
	if r.Area > 0 {
		r.SelfOverlapping = math.Abs(triArea-r.Area)/r.Area > selfOverlapTolerance
	}
	return r, nil
}
