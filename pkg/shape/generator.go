package shape

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/observability"
)

const (
	// MinShapeDiameter and MaxShapeDiameter bound the outline diameter in
	// pixels before the canvas-size limits are applied.
	MinShapeDiameter = 300.0
	MaxShapeDiameter = 500.0

	// MinShapeArea is the reference area; polygons are regenerated until
	// their area exceeds MinShapeArea/16.
	MinShapeArea = 80000.0

	// MinCanvasSide is the smallest canvas side the generators accept. Below
	// it the default polygon area threshold could never be met.
	MinCanvasSide = 200.0

	// maxPolygonAttempts caps the area retry loop. Options that pass
	// [Options.Validate] succeed within a few attempts.
	maxPolygonAttempts = 1000

	polygonMinVertices = 5
	polygonMaxVertices = 9
	jaggedPoints       = 100
	cloudPoints        = 200
)

// Options tunes the generators.
type Options struct {
	MinDiameter float64
	MaxDiameter float64
	MinArea     float64

	// Hooks receives generation events. Nil uses the registered hooks.
	Hooks observability.ShapeHooks
}

// DefaultOptions returns the package constants as options.
func DefaultOptions() Options {
	return Options{
		MinDiameter: MinShapeDiameter,
		MaxDiameter: MaxShapeDiameter,
		MinArea:     MinShapeArea,
	}
}

func (o *Options) setDefaults() {
	if o.MinDiameter <= 0 {
		o.MinDiameter = MinShapeDiameter
	}
	if o.MaxDiameter <= 0 {
		o.MaxDiameter = MaxShapeDiameter
	}
	if o.MaxDiameter < o.MinDiameter {
		o.MinDiameter, o.MaxDiameter = o.MaxDiameter, o.MinDiameter
	}
	if o.MinArea <= 0 {
		o.MinArea = MinShapeArea
	}
}

// Validate reports options whose polygons could never clear the area
// threshold, on a canvas large enough not to limit the diameters.
func (o Options) Validate() error {
	return o.validateFor(math.Inf(1))
}

// validateFor checks the diameters and area against a canvas whose shorter
// side is side. The typical polygon, a regular pentagon at the mean radius,
// must exceed the threshold.
func (o Options) validateFor(side float64) error {
	if o.MinDiameter <= 0 || o.MaxDiameter < o.MinDiameter {
		return errors.New(errors.ErrCodeInvalidInput,
			"shape diameters must satisfy 0 < min <= max, got %v..%v", o.MinDiameter, o.MaxDiameter)
	}
	if o.MinArea <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "shape min_area must be positive, got %v", o.MinArea)
	}
	minR, maxR := radiiFor(o, side)
	if reachable, threshold := pentagonArea((minR+maxR)/2), o.MinArea/16; reachable <= threshold {
		return errors.New(errors.ErrCodeInvalidInput,
			"shape diameters %v..%v cannot reach area %v (min_area/16), typical polygon area is %.0f",
			o.MinDiameter, o.MaxDiameter, threshold, reachable)
	}
	return nil
}

func pentagonArea(r float64) float64 {
	return 2.5 * r * r * math.Sin(2*math.Pi/5)
}

// Generator produces raw outlines centered on the target canvas.
// It is not safe for concurrent use: it owns a seeded random source.
type Generator struct {
	rng  *rand.Rand
	opts Options
}

// NewGenerator returns a generator seeded with seed. A nil opts uses
// [DefaultOptions].
func NewGenerator(seed uint64, opts *Options) *Generator {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o.setDefaults()
	return &Generator{
		rng:  rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		opts: o,
	}
}

// AreaThreshold is the minimum area a generated polygon must exceed.
func (g *Generator) AreaThreshold() float64 { return g.opts.MinArea / 16 }

// Generate produces an outline of the given family for canvas.
func (g *Generator) Generate(ctx context.Context, family Family, canvas geometry.CanvasSize) ([]geometry.Point, error) {
	if err := validateCanvas(canvas); err != nil {
		return nil, err
	}

	start := time.Now()
	attempts := 1
	var points []geometry.Point
	switch family {
	case Polygon:
		var err error
		if points, attempts, err = g.polygon(canvas); err != nil {
			return nil, err
		}
	case Cloud:
		points = g.Curve(canvas)
	case Jagged:
		points = g.Jagged(canvas)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFamily, "invalid shape family: %q", family)
	}

	g.hooks().OnGenerate(ctx, string(family), len(points), attempts, time.Since(start))
	return points, nil
}

// Polygon returns a 5 to 9 vertex polygon whose area exceeds
// [Generator.AreaThreshold]. Options that cannot reach the threshold on
// canvas are rejected before the first attempt.
func (g *Generator) Polygon(canvas geometry.CanvasSize) ([]geometry.Point, error) {
	points, _, err := g.polygon(canvas)
	return points, err
}

func (g *Generator) polygon(canvas geometry.CanvasSize) ([]geometry.Point, int, error) {
	if err := g.opts.validateFor(canvas.MinEdge()); err != nil {
		return nil, 0, err
	}
	minR, maxR := g.radii(canvas)
	center := canvas.Center()
	threshold := g.AreaThreshold()

	for attempt := 1; attempt <= maxPolygonAttempts; attempt++ {
		n := polygonMinVertices + g.rng.IntN(polygonMaxVertices-polygonMinVertices+1)
		step := 2 * math.Pi / float64(n)
		points := make([]geometry.Point, n)
		for i := range points {
			angle := float64(i)*step + (g.rng.Float64()-0.5)*step*0.5
			r := minR + g.rng.Float64()*(maxR-minR)
			points[i] = polar(center, r, r, angle)
		}
		if geometry.PolygonArea(points) > threshold {
			return points, attempt, nil
		}
	}
	return nil, maxPolygonAttempts, errors.New(errors.ErrCodeInternal,
		"no polygon above area %v after %d attempts", threshold, maxPolygonAttempts)
}

// Curve returns the smooth "cloud" outline: an ellipse with independent
// semi-axes perturbed by two sinusoids, sampled at 200 points. This is the
// irregular circle; the per-point-radius lumpy circle is [Generator.Jagged].
func (g *Generator) Curve(canvas geometry.CanvasSize) []geometry.Point {
	minR, maxR := g.radii(canvas)
	base := (minR + maxR) / 2
	center := canvas.Center()

	a := base * (0.8 + 0.4*g.rng.Float64())
	b := base * (0.8 + 0.4*g.rng.Float64())
	amplitude := base * (0.04 + 0.08*g.rng.Float64())
	frequency := float64(3 + g.rng.IntN(5))
	phase1 := g.rng.Float64() * 2 * math.Pi
	phase2 := g.rng.Float64() * 2 * math.Pi

	points := make([]geometry.Point, cloudPoints)
	for i := range points {
		theta := float64(i) * 2 * math.Pi / cloudPoints
		noise := amplitude*math.Sin(frequency*theta+phase1) +
			amplitude*0.5*math.Sin(frequency*1.5*theta+phase2)
		points[i] = polar(center, a+noise, b+noise, theta)
	}
	return points
}

// Jagged returns a 100-point lumpy circle: evenly spaced angles with a radius
// drawn independently for every point.
func (g *Generator) Jagged(canvas geometry.CanvasSize) []geometry.Point {
	minR, maxR := g.radii(canvas)
	base := (minR + maxR) / 2
	center := canvas.Center()

	points := make([]geometry.Point, jaggedPoints)
	for i := range points {
		theta := float64(i) * 2 * math.Pi / jaggedPoints
		r := base * (0.85 + 0.3*g.rng.Float64())
		points[i] = polar(center, r, r, theta)
	}
	return points
}

// radii derives the radius range from the diameter limits and the canvas's
// shorter side.
func (g *Generator) radii(canvas geometry.CanvasSize) (minR, maxR float64) {
	return radiiFor(g.opts, canvas.MinEdge())
}

func radiiFor(o Options, side float64) (minR, maxR float64) {
	maxR = min(o.MaxDiameter, side*0.8) / 2
	minR = min(o.MinDiameter, side*0.5) / 2
	return min(minR, maxR), maxR
}

func (g *Generator) hooks() observability.ShapeHooks {
	if g.opts.Hooks != nil {
		return g.opts.Hooks
	}
	return observability.Shape()
}

func polar(center geometry.Point, rx, ry, theta float64) geometry.Point {
	sin, cos := math.Sincos(theta)
	return geometry.Point{
		X:          center.X + rx*cos,
		Y:          center.Y + ry*sin,
		IsOriginal: true,
	}
}

func validateCanvas(canvas geometry.CanvasSize) error {
	if err := errors.ValidateCanvas("canvas", canvas.Width, canvas.Height); err != nil {
		return err
	}
	if canvas.MinEdge() < MinCanvasSide {
		return errors.New(errors.ErrCodeInvalidCanvas,
			"canvas %vx%v too small for shape generation (min side %v)", canvas.Width, canvas.Height, MinCanvasSide)
	}
	return nil
}
