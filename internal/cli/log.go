// Package cli implements the jigsaw command-line interface.
//
// The commands mirror the stages of a puzzle: shape generates an outline,
// cut splits it into pieces, scatter spreads the pieces over a canvas and
// adapt re-projects any of those onto a new canvas. new runs all stages at
// once, preview shows a puzzle in the terminal and re-adapts it whenever the
// terminal is resized, and serve exposes the same operations over HTTP.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Core
// diagnostics (boundary corrections, invalid points, cache events) are
// routed into the same logger.
//
// # Example
//
//	jigsaw shape --family cloud -o cloud.json
//	jigsaw cut cloud.json --rows 4 --cols 4 -o pieces.json
//	jigsaw scatter pieces.json -o scattered.json
//	jigsaw adapt scattered.json --width 390 --height 844
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond,
// e.g. "Cut 16 pieces (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
