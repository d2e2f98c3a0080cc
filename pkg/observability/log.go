package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries
// to a charmbracelet logger. Errors are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for all hook categories.
func (h *LogHooks) Register() {
	SetTimetableHooks(h)
	SetCacheHooks(h)
	SetServerHooks(h)
}

func (h *LogHooks) OnFetchStart(_ context.Context, source, kind string) {
	h.logger.Debug("fetch start", "source", source, "kind", kind)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, source, kind string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("fetch failed", "source", source, "kind", kind, "duration", d, "err", err)
		return
	}
	h.logger.Debug("fetch done", "source", source, "kind", kind, "count", count, "duration", d)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, view string, placed, dropped int, d time.Duration) {
	h.logger.Debug("layout", "view", view, "placed", placed, "dropped", dropped, "duration", d)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render", "format", format, "bytes", size, "duration", d)
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
	h.logger.Info("request", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ TimetableHooks = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
	_ ServerHooks    = (*LogHooks)(nil)
)
