package source

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekgrid/pkg/cache"
	"github.com/matzehuels/weekgrid/pkg/observability"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Cached stores the results of an inner Source as JSON in a cache.Cache.
// The period table is additionally kept in memory once loaded.
type Cached struct {
	inner   Source
	cache   cache.Cache
	keyer   cache.Keyer
	refresh bool
	logger  *log.Logger

	mu      sync.Mutex
	periods *timetable.PeriodTable
}

// CachedOption customizes NewCached.
type CachedOption func(*Cached)

// WithKeyer replaces the default cache keyer.
func WithKeyer(k cache.Keyer) CachedOption {
	return func(c *Cached) { c.keyer = k }
}

// WithRefresh bypasses cache reads; fresh results are still written.
func WithRefresh(refresh bool) CachedOption {
	return func(c *Cached) { c.refresh = refresh }
}

// WithLogger sets the logger for cache write failures.
func WithLogger(l *log.Logger) CachedOption {
	return func(c *Cached) { c.logger = l }
}

// NewCached wraps inner with c. A nil cache disables caching.
func NewCached(inner Source, c cache.Cache, opts ...CachedOption) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	cs := &Cached{
		inner:  inner,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// Name returns the inner source's name.
func (c *Cached) Name() string { return c.inner.Name() }

// Sessions returns the cached week or fetches it.
func (c *Cached) Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error) {
	key := c.keyer.SessionsKey(c.inner.Name(), sel)
	return cachedJSON(ctx, c, "sessions", key, cache.SessionTTL, func() ([]timetable.ClassSession, error) {
		return c.inner.Sessions(ctx, sel)
	})
}

// Periods returns the memoized, cached or freshly fetched period table.
func (c *Cached) Periods(ctx context.Context) (*timetable.PeriodTable, error) {
	c.mu.Lock()
	if c.periods != nil && !c.refresh {
		t := c.periods
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	t, err := cachedJSON(ctx, c, "periods", c.keyer.PeriodsKey(c.inner.Name()), cache.PeriodTTL, func() (*timetable.PeriodTable, error) {
		return c.inner.Periods(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.periods = t
	c.mu.Unlock()
	return t, nil
}

// Weeks returns the cached week list or fetches it.
func (c *Cached) Weeks(ctx context.Context, semesterID string) ([]string, error) {
	key := c.keyer.WeeksKey(c.inner.Name(), semesterID)
	return cachedJSON(ctx, c, "weeks", key, cache.WeekListTTL, func() ([]string, error) {
		return c.inner.Weeks(ctx, semesterID)
	})
}

func cachedJSON[T any](ctx context.Context, c *Cached, kind, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	hooks := observability.Cache()
	if !c.refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				hooks.OnCacheHit(ctx, kind)
				return v, nil
			}
			c.logger.Debug("discarding undecodable cache entry", "key", key)
		}
		hooks.OnCacheMiss(ctx, kind)
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := c.cache.Set(ctx, key, data, ttl); err != nil {
			c.logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, kind, len(data))
		}
	}
	return v, nil
}

var _ Source = (*Cached)(nil)
