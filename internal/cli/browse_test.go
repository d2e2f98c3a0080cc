package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/source"
	"github.com/matzehuels/weekgrid/pkg/timetable"
	"github.com/matzehuels/weekgrid/pkg/weekstore"
)

func newTestBrowser(t *testing.T, start int) (browseModel, *weekstore.Store) {
	t.Helper()
	demo := source.NewDemo()
	store := weekstore.New(demo, demo)
	weeks := []string{"w01", "w02", "w03", "w04"}
	return newBrowseModel(context.Background(), store, "2024-fall", weeks, start, nil), store
}

func press(t *testing.T, m browseModel, key tea.KeyMsg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	return next.(browseModel), cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestBrowseNavigation(t *testing.T) {
	m, _ := newTestBrowser(t, 0)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.index != 0 || cmd != nil {
		t.Errorf("left at first week: index=%d cmd=%v", m.index, cmd != nil)
	}

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.index != 1 || cmd == nil {
		t.Fatalf("right: index=%d cmd=%v", m.index, cmd != nil)
	}
	if got := m.selection(); got != (timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w02"}) {
		t.Errorf("selection = %v", got)
	}

	m, _ = press(t, m, runes("l"))
	m, _ = press(t, m, runes("l"))
	m, cmd = press(t, m, runes("l"))
	if m.index != 3 || cmd != nil {
		t.Errorf("right past last week: index=%d cmd=%v", m.index, cmd != nil)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != pipeline.ViewAgenda {
		t.Errorf("view after tab = %q", m.view)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != pipeline.ViewGrid {
		t.Errorf("view after second tab = %q", m.view)
	}

	_, cmd = press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestBrowseRendersSnapshots(t *testing.T) {
	m, store := newTestBrowser(t, 0)

	if !strings.Contains(m.View(), render.LoadingMessage) {
		t.Errorf("initial view not loading:\n%s", m.View())
	}

	msg := m.Init()()
	if done, ok := msg.(selectDoneMsg); !ok || done.err != nil {
		t.Fatalf("select: %#v", msg)
	}
	next, _ := m.Update(snapshotMsg(store.Snapshot()))
	m = next.(browseModel)
	if view := m.View(); !strings.Contains(view, "COMP3008") || !strings.Contains(view, "2024-fall/w01") {
		t.Errorf("grid view:\n%s", view)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if view := m.View(); !strings.Contains(view, "Software Engineering") {
		t.Errorf("agenda view:\n%s", view)
	}

	stale := store.Snapshot()
	stale.Generation = 0
	next, _ = m.Update(snapshotMsg(stale))
	if next.(browseModel).snap.Generation != store.Snapshot().Generation {
		t.Error("older snapshot replaced a newer one")
	}
}

func TestBrowseShowsErrors(t *testing.T) {
	m, store := newTestBrowser(t, 0)
	m.weeks = []string{"w01", "missing"}
	_ = m.Init()()

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if done := cmd().(selectDoneMsg); done.err == nil {
		t.Fatal("expected an error for an unknown week")
	}
	next, _ := m.Update(snapshotMsg(store.Snapshot()))
	view := next.(browseModel).View()
	if !strings.Contains(view, "not found") {
		t.Errorf("error not shown:\n%s", view)
	}
	if !strings.Contains(view, "COMP3008") {
		t.Errorf("previous week's classes should stay visible:\n%s", view)
	}
	if !strings.Contains(view, "showing 2024-fall/w01") {
		t.Errorf("stale week not labelled:\n%s", view)
	}
}
