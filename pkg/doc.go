// Package pkg provides the core libraries for jigsaw puzzle geometry.
//
// # Overview
//
// Jigsaw generates a random outline, cuts it into pieces, scatters the
// pieces over a canvas and keeps all of that geometry consistent while the
// host's canvas changes size. The pkg directory is organized into three
// areas:
//
//  1. Geometry core: [geometry], [shape], [cut], [scatter], [projection],
//     [pieces] and [adapt]
//  2. Infrastructure: [cache], [config], [errors], [observability], [io]
//  3. Orchestration: [pipeline]
//
// # Architecture
//
// The typical data flow:
//
//	family + canvas + seed
//	         ↓
//	    [shape] (generate and fit an outline)
//	         ↓
//	    [cut] (split the outline into a grid of pieces)
//	         ↓
//	    [scatter] (spread the pieces over the canvas)
//	         ↓
//	    [adapt] (re-project onto every new canvas size)
//
// [adapt] is the public entry point for resizing. It splits its work between
// [projection], which maps point sets between canvases, and [pieces], which
// knows about piece centers, rotations and the safety margin.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/jigsaw/pkg/adapt"
//	    "github.com/matzehuels/jigsaw/pkg/geometry"
//	)
//
//	res := adapt.Adapt(context.Background(), adapt.Config{
//	    Mode:           adapt.ModeShape,
//	    Shape:          outline,
//	    OriginalCanvas: geometry.Size(800, 600),
//	    TargetCanvas:   geometry.Size(390, 844),
//	})
//	if !res.Success {
//	    // res.Shape still holds the input unchanged
//	}
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/adapt/...    # Specific package
//	go test -run Example ./... # Examples only
package pkg
