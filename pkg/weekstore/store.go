// Package weekstore holds the currently selected week and its data.
//
// A [Store] owns one [Snapshot] at a time. [Store.Select] starts loading a
// new week: sessions and, if not yet loaded, the period table are fetched
// concurrently and the snapshot is replaced wholesale once both finish.
// Selecting again while a fetch is in flight cancels the older fetch; its
// result is never published.
//
// When a fetch fails the previous sessions stay in place and Snapshot.Err
// carries the failure so that a UI can report it without losing what it
// was showing.
package weekstore

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/weekgrid/pkg/layout"
	"github.com/matzehuels/weekgrid/pkg/source"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// ErrSuperseded is returned by Select when a newer selection replaced it
// before its fetch completed.
var ErrSuperseded = stderrors.New("selection superseded")

// Snapshot is an immutable view of the store.
//
// Sessions and Periods load independently: SessionsLoaded reports whether
// Sessions hold the result for Selection, and a nil Periods means the
// period table has not loaded yet.
type Snapshot struct {
	Selection      timetable.WeekSelection
	Sessions       []timetable.ClassSession
	SessionsFor    timetable.WeekSelection // week the Sessions belong to
	SessionsLoaded bool
	Periods        *timetable.PeriodTable
	Err            error
	Generation     uint64
}

// Loading reports whether either collection is still missing.
func (s Snapshot) Loading() bool { return !s.SessionsLoaded || s.Periods == nil }

// Grid lays out the snapshot's sessions.
func (s Snapshot) Grid(opts ...layout.Option) layout.Grid {
	return layout.ComputeGrid(s.Sessions, s.Periods, opts...)
}

// Agenda lists the snapshot's sessions by day.
func (s Snapshot) Agenda() layout.Agenda {
	return layout.ComputeAgenda(s.Sessions)
}

// Store coordinates week selection and fetching. It is safe for concurrent
// use.
type Store struct {
	sessions source.SessionProvider
	periods  source.PeriodProvider
	logger   *log.Logger

	snap atomic.Pointer[Snapshot]

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc

	subsMu sync.RWMutex
	subs   map[int]func(Snapshot)
	nextID int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithPeriods seeds the period table so it is not fetched.
func WithPeriods(t *timetable.PeriodTable) Option {
	return func(s *Store) {
		snap := *s.snap.Load()
		snap.Periods = t
		s.snap.Store(&snap)
	}
}

// New creates a store with an empty snapshot.
func New(sessions source.SessionProvider, periods source.PeriodProvider, opts ...Option) *Store {
	s := &Store{
		sessions: sessions,
		periods:  periods,
		logger:   log.New(io.Discard),
		subs:     make(map[int]func(Snapshot)),
	}
	s.snap.Store(&Snapshot{})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot { return *s.snap.Load() }

// Subscribe registers fn to be called after every published snapshot and
// returns a function that removes it. Callbacks run on the goroutine that
// published the snapshot and must not call Select or Refresh.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()
	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Select makes sel the current week and blocks until its data is loaded,
// the fetch fails, or a newer Select supersedes it.
//
// Invalid selections are rejected without touching the snapshot.
func (s *Store) Select(ctx context.Context, sel timetable.WeekSelection) error {
	if err := sel.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	prev := s.Snapshot()
	pending := prev
	pending.Selection = sel
	pending.SessionsLoaded = false
	pending.Err = nil
	pending.Generation = gen
	s.publishLocked(pending)
	s.mu.Unlock()
	defer cancel()

	s.logger.Debug("selecting week", "week", sel, "generation", gen)

	var (
		sessions  []timetable.ClassSession
		table     *timetable.PeriodTable
		sessErr   error
		periodErr error
		g         errgroup.Group
	)
	g.Go(func() error {
		sessions, sessErr = s.sessions.Sessions(fetchCtx, sel)
		return sessErr
	})
	if prev.Periods == nil {
		g.Go(func() error {
			table, periodErr = s.periods.Periods(fetchCtx)
			return periodErr
		})
	}
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.logger.Debug("discarding superseded fetch", "week", sel, "generation", gen)
		return ErrSuperseded
	}
	s.cancel = nil

	next := pending
	if table != nil {
		next.Periods = table
	}
	if sessErr == nil {
		next.Sessions = sessions
		next.SessionsFor = sel
		next.SessionsLoaded = true
	} else {
		next.Sessions = prev.Sessions
		next.SessionsFor = prev.SessionsFor
	}
	next.Err = err
	if err != nil {
		s.logger.Warn("week fetch failed", "week", sel, "err", err)
	}
	s.publishLocked(next)
	return err
}

// Refresh reloads the current selection.
func (s *Store) Refresh(ctx context.Context) error {
	sel := s.Snapshot().Selection
	if sel.IsZero() {
		return nil
	}
	return s.Select(ctx, sel)
}

// publishLocked swaps in snap and notifies subscribers. Callers hold s.mu,
// which keeps notifications in generation order.
func (s *Store) publishLocked(snap Snapshot) {
	s.snap.Store(&snap)
	s.subsMu.RLock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.RUnlock()
	for _, fn := range subs {
		fn(snap)
	}
}
