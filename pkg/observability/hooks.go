// Package observability provides optional instrumentation hooks for fetches,
// layout computation, caching and the HTTP server.
//
// Libraries emit events through the registry accessors:
//
//	observability.Timetable().OnFetchComplete(ctx, "http", "sessions", n, d, err)
//
// and main registers implementations at startup:
//
//	observability.SetTimetableHooks(observability.NewLogHooks(logger))
//
// Every hook defaults to a no-op, so packages never need nil checks.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Timetable Hooks
// =============================================================================

// TimetableHooks receives events from data fetches, layout and rendering.
type TimetableHooks interface {
	// Fetch events. kind is "sessions", "periods" or "weeks".
	OnFetchStart(ctx context.Context, source, kind string)
	OnFetchComplete(ctx context.Context, source, kind string, count int, duration time.Duration, err error)

	// OnLayoutComplete reports a computed grid or agenda.
	OnLayoutComplete(ctx context.Context, view string, placed, dropped int, duration time.Duration)

	// OnRenderComplete reports one rendered artifact.
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	// OnRequest records a served request. route is the matched pattern,
	// e.g. "/semesters/{semester}/weeks/{week}/grid".
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTimetableHooks is a no-op implementation of TimetableHooks.
type NoopTimetableHooks struct{}

func (NoopTimetableHooks) OnFetchStart(context.Context, string, string) {}
func (NoopTimetableHooks) OnFetchComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopTimetableHooks) OnLayoutComplete(context.Context, string, int, int, time.Duration)   {}
func (NoopTimetableHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	timetableHooks TimetableHooks = NoopTimetableHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	serverHooks    ServerHooks    = NoopServerHooks{}
	hooksMu        sync.RWMutex
)

// SetTimetableHooks registers timetable hooks. nil is ignored.
func SetTimetableHooks(h TimetableHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		timetableHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers server hooks. nil is ignored.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Timetable returns the registered timetable hooks.
func Timetable() TimetableHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return timetableHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	timetableHooks = NoopTimetableHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
