package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

func TestResolveCrowdedWednesday(t *testing.T) {
	day := []timetable.ClassSession{
		session("A", "COMP3008", timetable.Wednesday, 1, 3),
		session("B", "COMP3013", timetable.Wednesday, 1, 2),
		session("C", "COMP3020", timetable.Wednesday, 1, 4),
		session("D", "COMP3030", timetable.Wednesday, 4, 6),
	}

	groups := Resolve(day)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}

	crowded := groups[0]
	if crowded.StartPeriod != 1 || len(crowded.Slots) != 3 {
		t.Fatalf("first group = start %d size %d, want start 1 size 3", crowded.StartPeriod, len(crowded.Slots))
	}
	if got := slotIDs(crowded.Slots); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("stack order = %v, want input order", got)
	}

	wantOffset := []float64{0, 5, 10}
	wantWidth := []float64{100, 95, 90}
	wantOpacity := []float64{1.0, 0.9, 0.8}
	for i, s := range crowded.Slots {
		if !approx(s.Offset, wantOffset[i]) {
			t.Errorf("slot %d Offset = %v, want %v", i, s.Offset, wantOffset[i])
		}
		if !approx(s.Width, wantWidth[i]) {
			t.Errorf("slot %d Width = %v, want %v", i, s.Width, wantWidth[i])
		}
		if !approx(s.Opacity, wantOpacity[i]) {
			t.Errorf("slot %d Opacity = %v, want %v", i, s.Opacity, wantOpacity[i])
		}
		if s.ZIndex != 1 {
			t.Errorf("slot %d ZIndex = %d, want 1", i, s.ZIndex)
		}
		if s.Stack != i || s.GroupSize != 3 {
			t.Errorf("slot %d Stack/GroupSize = %d/%d", i, s.Stack, s.GroupSize)
		}
	}

	single := groups[1]
	if len(single.Slots) != 1 || single.Slots[0].Session.ID != "D" {
		t.Fatalf("period 4 session should form its own group, got %v", slotIDs(single.Slots))
	}
	d := single.Slots[0]
	if d.Offset != 0 || d.Width != DefaultFullWidth || d.Opacity != 1 || d.ZIndex != 4 {
		t.Errorf("single slot hints = %+v", d)
	}
}

func TestResolveOffsetsAreDistinct(t *testing.T) {
	var day []timetable.ClassSession
	for i := range 7 {
		day = append(day, session(string(rune('a'+i)), "X", timetable.Friday, 2, 3))
	}
	groups := Resolve(day)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d", len(groups))
	}
	seen := map[float64]bool{}
	for i, s := range groups[0].Slots {
		if !approx(s.Offset, float64(i)*5) {
			t.Errorf("slot %d Offset = %v", i, s.Offset)
		}
		seen[s.Offset] = true
	}
	if len(seen) != 7 {
		t.Errorf("distinct offsets = %d, want 7", len(seen))
	}
}

func TestResolveOpacityClampsAtZero(t *testing.T) {
	var day []timetable.ClassSession
	for i := range 14 {
		day = append(day, session(string(rune('a'+i)), "X", timetable.Monday, 1, 1))
	}
	for _, s := range Resolve(day)[0].Slots {
		if s.Opacity < 0 {
			t.Errorf("slot %d Opacity = %v, must not be negative", s.Stack, s.Opacity)
		}
		if s.Stack >= 10 && s.Opacity != 0 {
			t.Errorf("slot %d Opacity = %v, want 0", s.Stack, s.Opacity)
		}
	}
}

func TestResolveWidthNeverNegative(t *testing.T) {
	var day []timetable.ClassSession
	for i := range 4 {
		day = append(day, session(string(rune('a'+i)), "X", timetable.Monday, 1, 1))
	}
	slots := Resolve(day, WithFullWidth(8), WithOffsetStep(5))[0].Slots
	want := []float64{8, 3, 0, 0}
	for i, s := range slots {
		if !approx(s.Width, want[i]) {
			t.Errorf("slot %d Width = %v, want %v", i, s.Width, want[i])
		}
	}
}

func TestResolveExactStartIgnoresOverlapByExtension(t *testing.T) {
	day := []timetable.ClassSession{
		session("long", "A", timetable.Monday, 1, 5),
		session("inner", "B", timetable.Monday, 3, 4),
	}
	groups := Resolve(day)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	for _, g := range groups {
		if g.Slots[0].Offset != 0 {
			t.Errorf("group at %d should not be offset", g.StartPeriod)
		}
	}
}

func TestResolveIntervalOverlap(t *testing.T) {
	day := []timetable.ClassSession{
		session("inner", "B", timetable.Monday, 3, 4),
		session("long", "A", timetable.Monday, 1, 5),
		session("chain", "C", timetable.Monday, 5, 6),
		session("apart", "D", timetable.Monday, 8, 9),
	}
	groups := Resolve(day, WithGrouper(IntervalOverlap{}))
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if got := slotIDs(groups[0].Slots); !slices.Equal(got, []string{"long", "inner", "chain"}) {
		t.Errorf("overlap group = %v", got)
	}
	if groups[0].StartPeriod != 1 {
		t.Errorf("StartPeriod = %d, want 1", groups[0].StartPeriod)
	}
	if groups[0].Slots[1].ZIndex != 3 {
		t.Errorf("ZIndex should stay the session's own start, got %d", groups[0].Slots[1].ZIndex)
	}
	if got := slotIDs(groups[1].Slots); !slices.Equal(got, []string{"apart"}) {
		t.Errorf("second group = %v", got)
	}
}

func TestGrouperByName(t *testing.T) {
	tests := []struct {
		name    string
		want    Grouper
		wantErr bool
	}{
		{"", ExactStart{}, false},
		{GroupingExact, ExactStart{}, false},
		{GroupingInterval, IntervalOverlap{}, false},
		{"graph", nil, true},
	}
	for _, tt := range tests {
		got, err := GrouperByName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("GrouperByName(%q) error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("GrouperByName(%q) = %T, want %T", tt.name, got, tt.want)
		}
	}
}

func TestResolveEmptyDay(t *testing.T) {
	if groups := Resolve(nil); len(groups) != 0 {
		t.Errorf("Resolve(nil) = %v", groups)
	}
}
