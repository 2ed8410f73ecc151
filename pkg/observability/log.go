package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// LogHooks reports every event to a logger at debug level, and batch
// summaries at info level. It implements all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnBatchStart(_ context.Context, runID string, pairs int) {
	h.logger.Debug("Batch started", "run", runID, "pairs", pairs)
}

func (h *LogHooks) OnBatchComplete(_ context.Context, runID string, s BatchStats, d time.Duration) {
	h.logger.Info("Batch finished",
		"run", runID,
		"rendered", s.Rendered,
		"cached", s.Cached,
		"failed", s.Failed,
		"written", humanize.Bytes(uint64(max(s.Bytes, 0))),
		"took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnPairComplete(_ context.Context, macro, micro string, cached bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("Pair failed", "macro", macro, "micro", micro, "err", err)
		return
	}
	h.logger.Debug("Pair done", "macro", macro, "micro", micro, "cached", cached, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("Cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("Cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("Cache set", "type", keyType, "size", humanize.Bytes(uint64(max(size, 0))))
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("Request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("Response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

// Ensure LogHooks implements every hook interface.
var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
