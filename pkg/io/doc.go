// Package io reads and writes jigsaw geometry as JSON.
//
// # Format
//
// A document carries an outline, its pieces, or both, together with the
// canvases they were laid out on:
//
//	{
//	  "version": 1,
//	  "id": "3f0c...",
//	  "family": "polygon",
//	  "canvas": {"width": 800, "height": 600},
//	  "scatterCanvas": {"width": 800, "height": 600},
//	  "scattered": true,
//	  "shape": [{"x": 312.5, "y": 190, "isOriginal": true}, ...],
//	  "pieces": [{"points": [...], "originalPoints": [...], "rotation": 90, ...}]
//	}
//
// Points use the host wire format of package geometry: an invalid point is
// written as {"x": null, "y": null}.
//
// [ReadJSON] also accepts a bare point array, which is read as a document
// holding only a shape. This keeps outlines written by other tools usable
// as input.
//
// # Validation
//
// Reading rejects pieces whose live and original point counts differ, and
// documents newer than [Version].
package io
