package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks forwards every diagnostics event to a charmbracelet logger.
// Routine events are logged at debug level; soft failures at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to l. A nil logger uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnAdaptStart(_ context.Context, mode string, items int) {
	h.Logger.Debug("adapt start", "mode", mode, "items", items)
}

func (h *LogHooks) OnAdaptComplete(_ context.Context, mode string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("adapt failed", "mode", mode, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("adapt complete", "mode", mode, "duration", d)
}

func (h *LogHooks) OnInvalidPoint(_ context.Context, mode string, piece, vertex int) {
	h.Logger.Warn("invalid point", "mode", mode, "piece", piece, "vertex", vertex)
}

func (h *LogHooks) OnBoundaryCorrection(_ context.Context, piece int, dx, dy float64, oversized bool) {
	if oversized {
		h.Logger.Warn("piece larger than safe area", "piece", piece, "dx", dx, "dy", dy)
		return
	}
	h.Logger.Debug("boundary correction", "piece", piece, "dx", dx, "dy", dy)
}

func (h *LogHooks) OnScatterStart(_ context.Context, pieces int, width, height float64) {
	h.Logger.Debug("scatter start", "pieces", pieces, "width", width, "height", height)
}

func (h *LogHooks) OnScatterComplete(_ context.Context, pieces, failed int, d time.Duration) {
	h.Logger.Debug("scatter complete", "pieces", pieces, "failed", failed, "duration", d)
}

func (h *LogHooks) OnMarginViolation(_ context.Context, piece int, edges []string) {
	h.Logger.Warn("piece crosses margin after clamp", "piece", piece, "edges", edges)
}

func (h *LogHooks) OnPieceFailed(_ context.Context, piece int, err error) {
	h.Logger.Warn("piece kept unscattered", "piece", piece, "err", err)
}

func (h *LogHooks) OnGenerate(_ context.Context, family string, points, attempts int, d time.Duration) {
	h.Logger.Debug("generated shape", "family", family, "points", points, "attempts", attempts, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "size", size)
}

func (h *LogHooks) OnCacheEvict(_ context.Context, keyType string) {
	h.Logger.Debug("cache evict", "type", keyType)
}

var _ AllHooks = (*LogHooks)(nil)
