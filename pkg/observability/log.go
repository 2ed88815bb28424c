package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level events
// to a logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse start", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, tiles int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("parse complete", "source", source, "tiles", tiles, "took", d)
}

func (h *LogHooks) OnAssembleStart(_ context.Context, tiles, width int) {
	h.logger.Debug("assemble start", "tiles", tiles, "width", width)
}

func (h *LogHooks) OnAssembleComplete(_ context.Context, s AssembleStats, err error) {
	kv := []any{"seeds", s.Seeds, "calls", s.Calls, "backtracks", s.Backtracks, "took", s.Duration}
	if err != nil {
		h.logger.Debug("assemble failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug("assemble complete", kv...)
}

func (h *LogHooks) OnScanComplete(_ context.Context, motif string, matches, roughness int, d time.Duration) {
	h.logger.Debug("scan complete", "motif", motif, "matches", matches, "roughness", roughness, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "route", route, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
