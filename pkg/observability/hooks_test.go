package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	tt := NoopTimetableHooks{}
	tt.OnFetchStart(ctx, "demo", "sessions")
	tt.OnFetchComplete(ctx, "demo", "sessions", 12, time.Millisecond, nil)
	tt.OnLayoutComplete(ctx, "grid", 12, 0, time.Millisecond)
	tt.OnRenderComplete(ctx, "svg", 2048, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "sessions")
	c.OnCacheMiss(ctx, "periods")
	c.OnCacheSet(ctx, "artifact", 1024)

	NoopServerHooks{}.OnRequest(ctx, "GET", "/health", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Timetable().(NoopTimetableHooks); !ok {
		t.Error("Timetable() should default to NoopTimetableHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should default to NoopServerHooks")
	}

	h := NewLogHooks(log.New(&bytes.Buffer{}))
	h.Register()
	if Timetable() != TimetableHooks(h) || Cache() != CacheHooks(h) || Server() != ServerHooks(h) {
		t.Error("Register should install the hooks everywhere")
	}

	SetTimetableHooks(nil)
	if Timetable() != TimetableHooks(h) {
		t.Error("nil hooks should be ignored")
	}

	Reset()
	if _, ok := Timetable().(NoopTimetableHooks); !ok {
		t.Error("Reset should restore the no-op hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnFetchComplete(ctx, "http", "sessions", 7, time.Millisecond, nil)
	h.OnFetchComplete(ctx, "http", "periods", 0, time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "sessions")

	out := buf.String()
	for _, want := range []string{"fetch done", "count=7", "fetch failed", "boom", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
