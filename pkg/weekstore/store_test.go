package weekstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/weekgrid/pkg/source"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

var (
	week1 = timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w01"}
	week2 = timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w02"}
)

// gatedSource blocks Sessions for gated weeks until release is closed.
type gatedSource struct {
	source.Source
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
	fail    map[string]error
}

func newGatedSource() *gatedSource {
	return &gatedSource{
		Source:  source.NewDemo(),
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 8),
		fail:    make(map[string]error),
	}
}

func (g *gatedSource) gate(week string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[week] = ch
	return ch
}

func (g *gatedSource) Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error) {
	g.started <- sel.WeekID
	g.mu.Lock()
	ch, gated := g.gates[sel.WeekID]
	err := g.fail[sel.WeekID]
	g.mu.Unlock()
	if gated {
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return g.Source.Sessions(ctx, sel)
}

func TestSelectLoadsSessionsAndPeriods(t *testing.T) {
	src := newGatedSource()
	store := New(src, src)

	if err := store.Select(context.Background(), week1); err != nil {
		t.Fatalf("Select: %v", err)
	}
	snap := store.Snapshot()
	if snap.Loading() {
		t.Error("snapshot still loading")
	}
	if snap.Selection != week1 || snap.SessionsFor != week1 {
		t.Errorf("selection = %v / %v", snap.Selection, snap.SessionsFor)
	}
	if len(snap.Sessions) == 0 || snap.Periods == nil {
		t.Fatal("missing data")
	}
	if g := snap.Grid(); g.Loading || g.Empty {
		t.Errorf("grid loading=%v empty=%v", g.Loading, g.Empty)
	}
	if a := snap.Agenda(); a.Len() != len(snap.Sessions) {
		t.Errorf("agenda has %d entries, want %d", a.Len(), len(snap.Sessions))
	}
}

func TestSelectSupersedesInFlightFetch(t *testing.T) {
	src := newGatedSource()
	gate1 := src.gate("w01")
	store := New(src, src)
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- store.Select(ctx, week1) }()
	<-src.started

	if err := store.Select(ctx, week2); err != nil {
		t.Fatalf("second Select: %v", err)
	}
	close(gate1)

	if err := <-first; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Select err = %v, want ErrSuperseded", err)
	}
	snap := store.Snapshot()
	if snap.Selection != week2 || snap.SessionsFor != week2 {
		t.Errorf("snapshot shows %v / %v, want w02", snap.Selection, snap.SessionsFor)
	}
	for _, s := range snap.Sessions {
		if s.Date < "2024-09-09" {
			t.Fatalf("session %s from the superseded week leaked in", s.ID)
		}
	}
}

func TestSelectErrorKeepsPreviousSessions(t *testing.T) {
	src := newGatedSource()
	boom := errors.New("portal down")
	src.fail["w02"] = boom
	store := New(src, src)
	ctx := context.Background()

	if err := store.Select(ctx, week1); err != nil {
		t.Fatal(err)
	}
	before := store.Snapshot()

	if err := store.Select(ctx, week2); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	after := store.Snapshot()
	if !errors.Is(after.Err, boom) {
		t.Errorf("snapshot Err = %v", after.Err)
	}
	if after.SessionsFor != week1 || len(after.Sessions) != len(before.Sessions) {
		t.Errorf("sessions changed after failed fetch")
	}
	if after.Periods != before.Periods {
		t.Error("period table should be kept")
	}
}

func TestSelectReplacesWholesale(t *testing.T) {
	src := newGatedSource()
	store := New(src, src)
	ctx := context.Background()

	_ = store.Select(ctx, week1)
	_ = store.Select(ctx, timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w04"})

	snap := store.Snapshot()
	if len(snap.Sessions) != 0 || !snap.SessionsLoaded {
		t.Errorf("empty week should replace sessions, got %d", len(snap.Sessions))
	}
	if g := snap.Grid(); !g.Empty {
		t.Error("grid should be empty")
	}
}

func TestSelectRejectsInvalid(t *testing.T) {
	store := New(source.NewDemo(), source.NewDemo())
	err := store.Select(context.Background(), timetable.WeekSelection{SemesterID: "../etc", WeekID: "w01"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if store.Snapshot().Generation != 0 {
		t.Error("invalid selection should not touch the snapshot")
	}
}

func TestSubscribe(t *testing.T) {
	store := New(source.NewDemo(), source.NewDemo(), WithPeriods(timetable.DefaultPeriodTable()))

	var (
		mu   sync.Mutex
		seen []bool
	)
	unsubscribe := store.Subscribe(func(s Snapshot) {
		mu.Lock()
		seen = append(seen, s.SessionsLoaded)
		mu.Unlock()
	})

	_ = store.Select(context.Background(), week1)
	unsubscribe()
	_ = store.Select(context.Background(), week2)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] || !seen[1] {
		t.Errorf("notifications = %v, want [false true]", seen)
	}
}

func TestRefresh(t *testing.T) {
	src := newGatedSource()
	store := New(src, src)
	ctx := context.Background()

	if err := store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh with no selection: %v", err)
	}
	_ = store.Select(ctx, week1)
	<-src.started

	if err := store.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	select {
	case w := <-src.started:
		if w != "w01" {
			t.Errorf("refreshed %s", w)
		}
	case <-time.After(time.Second):
		t.Fatal("Refresh did not refetch")
	}
	if store.Snapshot().Generation != 2 {
		t.Errorf("generation = %d, want 2", store.Snapshot().Generation)
	}
}
