// Package geometry provides the 2D primitives shared by the shape generator,
// the scatter placement and the adaptation engine.
//
// All functions are pure and stateless. Callers are responsible for rejecting
// degenerate input (zero-length segments, polygons with fewer than three
// vertices) before calling them; no numeric safeguards are applied beyond what
// each function documents.
//
// # Types
//
//   - [Point]: a vertex with an opaque IsOriginal flag and an Invalid sentinel
//   - [Bounds]: an axis-aligned bounding box, always derived, never stored
//   - [CanvasSize]: the host's drawing surface dimensions
//   - [Piece]: one puzzle piece with live and original (solved) geometry
//
// # Polygon Utilities
//
//   - [PolygonArea]: unsigned shoelace area
//   - [BoundsOf]: axis-aligned bounds
//   - [PointInPolygon]: ray casting containment test
//   - [SegmentIntersection]: parametric segment intersection
//   - [PointToSegmentDistance], [PointNearSegment]: proximity tests
//   - [Triangulate]: ear-clipping triangulation backed by earcut
package geometry
