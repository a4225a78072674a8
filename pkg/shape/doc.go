// Package shape generates the closed outlines that puzzles are cut from.
//
// Three families are supported:
//
//   - [Polygon]: 5 to 9 vertices at evenly spaced, jittered angles with
//     random radii. Generation retries until the area exceeds
//     MinShapeArea/16.
//   - [Cloud]: a smooth curve. An ellipse with independent semi-axes is
//     perturbed by two sinusoids (frequency f and 1.5f) and sampled at 200
//     evenly spaced angles.
//   - [Jagged]: a lumpy circle of 100 points whose radius varies per point
//     with no smoothing pass.
//
// [Generator] produces raw outlines centered on the canvas. [OptimizedGenerator]
// wraps it with a bounded per-canvas-size cache and fits each outline to the
// canvas in one affine transform computed from a single pass over the points
// (see [Fit]).
package shape
