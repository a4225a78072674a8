// Package adapt is the public entry point for re-projecting geometry when
// the canvas size changes.
//
// An [Engine] adapts a bare shape, pieces in their solved layout, or
// scattered pieces. It validates the request before touching any data and
// never returns an error or panics past Adapt: failures come back as a
// [Result] with Success false and the input unchanged, so the host can keep
// showing the last good geometry.
package adapt

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/observability"
	"github.com/matzehuels/jigsaw/pkg/pieces"
	"github.com/matzehuels/jigsaw/pkg/projection"
)

// Engine runs adaptations. The zero value is ready to use and reports to
// the global observability hooks. An Engine holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	// Hooks receives diagnostics. Nil uses observability.Adapt().
	Hooks observability.AdaptHooks
}

// NewEngine returns an engine reporting to hooks.
func NewEngine(hooks observability.AdaptHooks) *Engine {
	return &Engine{Hooks: hooks}
}

var defaultEngine Engine

// Adapt runs cfg on a zero-value Engine.
func Adapt(ctx context.Context, cfg Config) Result {
	return defaultEngine.Adapt(ctx, cfg)
}

func (e *Engine) hooks(cfg *Config) observability.AdaptHooks {
	if cfg.Options.Hooks != nil {
		return cfg.Options.Hooks
	}
	if e.Hooks != nil {
		return e.Hooks
	}
	return observability.Adapt()
}

// Adapt re-projects cfg's data from its source canvas onto the target
// canvas.
func (e *Engine) Adapt(ctx context.Context, cfg Config) (res Result) {
	start := time.Now()
	hooks := e.hooks(&cfg)
	hooks.OnAdaptStart(ctx, string(cfg.Mode), cfg.items())

	defer func() {
		if r := recover(); r != nil {
			err := errors.New(errors.ErrCodeInternal, "adapt panicked: %v", r)
			if cfg.Options.Debug {
				err = errors.Wrap(errors.ErrCodeInternal, fmt.Errorf("%s", debug.Stack()), "adapt panicked: %v", r)
			}
			res = failure(&cfg, err)
		}
		res.Metrics.ProcessingTime = time.Since(start)
		hooks.OnAdaptComplete(ctx, string(cfg.Mode), res.Metrics.ProcessingTime, res.Err)
	}()

	if err := validate(&cfg); err != nil {
		return failure(&cfg, err)
	}

	var err error
	switch cfg.Mode {
	case ModeShape:
		res, err = adaptShape(ctx, &cfg, hooks)
	case ModePuzzle:
		res, err = adaptPuzzle(ctx, &cfg, hooks)
	case ModeScattered:
		res, err = adaptScattered(ctx, &cfg, hooks)
	}
	if err != nil {
		return failure(&cfg, err)
	}
	res.Mode = cfg.Mode
	res.Success = true
	return res
}

func failure(cfg *Config, err error) Result {
	return Result{
		Mode:    cfg.Mode,
		Shape:   geometry.ClonePoints(cfg.Shape),
		Pieces:  geometry.ClonePieces(cfg.Pieces),
		Success: false,
		Err:     err,
	}
}

// validate rejects a malformed request before any computation.
func validate(cfg *Config) error {
	switch cfg.Mode {
	case ModeShape:
		if cfg.Shape == nil {
			return errors.New(errors.ErrCodeMissingData, "shape mode needs a point array")
		}
	case ModePuzzle, ModeScattered:
		if cfg.Pieces == nil {
			return errors.New(errors.ErrCodeMissingData, "%s mode needs a piece array", cfg.Mode)
		}
	default:
		return errors.New(errors.ErrCodeInvalidMode, "unknown adaptation type %q (want shape, puzzle or scattered)", cfg.Mode)
	}

	if err := errors.ValidateCanvas("original canvas", cfg.OriginalCanvas.Width, cfg.OriginalCanvas.Height); err != nil {
		return err
	}
	if err := errors.ValidateCanvas("target canvas", cfg.TargetCanvas.Width, cfg.TargetCanvas.Height); err != nil {
		return err
	}
	if cfg.Mode == ModeScattered {
		if cfg.ScatterCanvas == nil {
			return errors.New(errors.ErrCodeMissingScatterCanvas, "scattered mode needs the scatter canvas size")
		}
		if err := errors.ValidateCanvas("scatter canvas", cfg.ScatterCanvas.Width, cfg.ScatterCanvas.Height); err != nil {
			return err
		}
	}

	if _, err := projection.ParseStrategy(string(cfg.Options.Strategy)); err != nil {
		return err
	}
	if m := cfg.Options.SafetyMargin; m < 0 || !geometry.IsFinite(m) {
		return errors.New(errors.ErrCodeInvalidInput, "safety margin must be a non-negative number, got %v", m)
	}
	return nil
}

func adaptShape(ctx context.Context, cfg *Config, hooks observability.AdaptHooks) (Result, error) {
	tr, err := projection.New(cfg.Options.Strategy, cfg.OriginalCanvas, cfg.TargetCanvas)
	if err != nil {
		return Result{}, err
	}
	out, invalid := tr.ProjectAll(cfg.Shape)
	for _, i := range invalid {
		hooks.OnInvalidPoint(ctx, string(ModeShape), -1, i)
	}
	return Result{
		Shape: out,
		Metrics: Metrics{
			ScaleFactor:   tr.Scale,
			CenterOffset:  tr.Offset(),
			InvalidPoints: len(invalid),
		},
	}, nil
}

func adaptPuzzle(ctx context.Context, cfg *Config, hooks observability.AdaptHooks) (Result, error) {
	tr, err := projection.New(cfg.Options.Strategy, cfg.OriginalCanvas, cfg.TargetCanvas)
	if err != nil {
		return Result{}, err
	}
	out, rep := pieces.Project(ctx, cfg.Pieces, tr, &pieces.Options{Mode: string(ModePuzzle), Hooks: hooks})
	return Result{
		Pieces: out,
		Metrics: Metrics{
			ScaleFactor:   tr.Scale,
			CenterOffset:  tr.Offset(),
			InvalidPoints: rep.InvalidPoints,
		},
	}, nil
}

func adaptScattered(ctx context.Context, cfg *Config, hooks observability.AdaptHooks) (Result, error) {
	tr, err := projection.New(projection.Independent, *cfg.ScatterCanvas, cfg.TargetCanvas)
	if err != nil {
		return Result{}, err
	}
	opts := &pieces.Options{
		Mode:         string(ModeScattered),
		SafetyMargin: cfg.Options.SafetyMargin,
		Hooks:        hooks,
	}
	projected, prep := pieces.Project(ctx, cfg.Pieces, tr, opts)
	out, frep := pieces.Fit(ctx, projected, cfg.TargetCanvas, opts)
	return Result{
		Pieces: out,
		Metrics: Metrics{
			ScaleFactor:   tr.Scale,
			CenterOffset:  tr.Offset(),
			InvalidPoints: prep.InvalidPoints,
			Corrected:     frep.Corrected,
		},
	}, nil
}
