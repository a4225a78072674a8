// Package projection re-projects point sets between canvas sizes.
//
// Every projection is absolute: a point is expressed relative to the center
// of the canvas it was laid out on, scaled, and re-anchored on the center of
// the target canvas,
//
//	p' = (p - from.Center()) * scale + to.Center()
//
// Nothing is accumulated between calls, so projecting A→B and then B→A
// returns the input up to floating point error no matter how many resizes
// happened in between.
package projection

import (
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
)

// Strategy selects how the scale factor is derived from two canvases.
type Strategy string

const (
	// MinEdge scales by the ratio of the shorter canvas sides. Aspect ratio
	// is preserved and the result always fits (letterboxing).
	MinEdge Strategy = "minEdge"
	// MaxEdge scales by the ratio of the longer canvas sides.
	MaxEdge Strategy = "maxEdge"
	// Independent scales each axis by its own ratio and distorts the aspect
	// ratio.
	Independent Strategy = "independent"
)

// Strategies lists the supported strategies.
var Strategies = []Strategy{MinEdge, MaxEdge, Independent}

// ParseStrategy converts a name to a Strategy. The empty string selects
// MinEdge.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return MinEdge, nil
	}
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidStrategy, "unknown scale strategy %q (want minEdge, maxEdge or independent)", s)
}

// ScaleFactor holds the per-axis scale. Uniform strategies set X == Y.
type ScaleFactor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Uniform reports whether both axes share one factor.
func (s ScaleFactor) Uniform() bool { return s.X == s.Y }

// Scale computes the scale factor for projecting from one canvas to another.
func Scale(strategy Strategy, from, to geometry.CanvasSize) (ScaleFactor, error) {
	var sf ScaleFactor
	switch strategy {
	case MinEdge, "":
		s := to.MinEdge() / from.MinEdge()
		sf = ScaleFactor{X: s, Y: s}
	case MaxEdge:
		s := to.MaxEdge() / from.MaxEdge()
		sf = ScaleFactor{X: s, Y: s}
	case Independent:
		sf = ScaleFactor{X: to.Width / from.Width, Y: to.Height / from.Height}
	default:
		return ScaleFactor{}, errors.New(errors.ErrCodeInvalidStrategy, "unknown scale strategy %q", strategy)
	}
	if err := errors.ValidateFinite("scale factor", sf.X, sf.Y); err != nil {
		return ScaleFactor{}, err
	}
	return sf, nil
}
