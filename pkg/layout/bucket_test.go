package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

func TestBucketByDayCompleteness(t *testing.T) {
	input := []timetable.ClassSession{
		session("a", "COMP1", timetable.Monday, 1, 2),
		session("b", "COMP2", 1, 1, 2),
		session("c", "COMP3", timetable.Sunday, 3, 4),
		session("d", "COMP4", 9, 1, 1),
		session("e", "COMP5", timetable.Monday, 5, 6),
	}

	b := BucketByDay(input)

	var union []string
	for _, d := range timetable.Days() {
		union = append(union, ids(b.Day(d))...)
	}
	slices.Sort(union)
	if want := []string{"a", "c", "e"}; !slices.Equal(union, want) {
		t.Errorf("union of buckets = %v, want %v", union, want)
	}
	if got := ids(b.Dropped()); !slices.Equal(got, []string{"b", "d"}) {
		t.Errorf("Dropped() = %v, want [b d]", got)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

func TestBucketByDayPreservesOrder(t *testing.T) {
	input := []timetable.ClassSession{
		session("late", "X1", timetable.Tuesday, 9, 10),
		session("other", "X2", timetable.Friday, 1, 1),
		session("early", "X3", timetable.Tuesday, 1, 2),
		session("mid", "X4", timetable.Tuesday, 4, 5),
	}
	b := BucketByDay(input)
	if got := ids(b.Day(timetable.Tuesday)); !slices.Equal(got, []string{"late", "early", "mid"}) {
		t.Errorf("Day(Tuesday) = %v, want input order", got)
	}
}

func TestBucketEmptyDays(t *testing.T) {
	b := BucketByDay(nil)
	for _, d := range timetable.Days() {
		day := b.Day(d)
		if day == nil {
			t.Errorf("Day(%v) = nil, want empty slice", d)
		}
		if len(day) != 0 {
			t.Errorf("Day(%v) has %d sessions", d, len(day))
		}
	}
	if b.Day(1) != nil {
		t.Error("out-of-domain day should return nil")
	}
	if len(b.Present()) != 0 {
		t.Errorf("Present() = %v, want none", b.Present())
	}
}

func TestBucketPresent(t *testing.T) {
	b := BucketByDay([]timetable.ClassSession{
		session("s", "A", timetable.Sunday, 1, 1),
		session("m", "B", timetable.Monday, 1, 1),
		session("th", "C", timetable.Thursday, 1, 1),
	})
	want := []timetable.Day{timetable.Monday, timetable.Thursday, timetable.Sunday}
	if got := b.Present(); !slices.Equal(got, want) {
		t.Errorf("Present() = %v, want %v", got, want)
	}
}

func TestBucketDayReturnsCopy(t *testing.T) {
	b := BucketByDay([]timetable.ClassSession{session("a", "A", timetable.Monday, 1, 1)})
	day := b.Day(timetable.Monday)
	day[0].ID = "mutated"
	if b.Day(timetable.Monday)[0].ID != "a" {
		t.Error("Day() must not expose internal storage")
	}
}
