package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Slot is the layout of one session inside its day column.
type Slot struct {
	Session   timetable.ClassSession
	RowSpan   int     // EndPeriod - StartPeriod + 1
	ZIndex    int     // StartPeriod; ties fall back to document order
	Offset    float64 // horizontal offset, Stack * offset step
	Width     float64 // full width minus Offset, never negative
	Opacity   float64 // 1 - Stack * opacity step, clamped at 0
	Color     Color
	Stack     int // position within the collision group
	GroupSize int
}

// Group is a set of colliding sessions on one day.
type Group struct {
	StartPeriod int // lowest start period among the members
	Slots       []Slot
}

// Grouper partitions one day's sessions into collision groups. Each session
// must appear in exactly one group; the member order defines stacking.
type Grouper interface {
	Group(day []timetable.ClassSession) [][]timetable.ClassSession
}

// ExactStart groups sessions sharing the exact same start period. Groups are
// ordered by start period and members keep their input order.
type ExactStart struct{}

// Group implements [Grouper].
func (ExactStart) Group(day []timetable.ClassSession) [][]timetable.ClassSession {
	byStart := make(map[int][]timetable.ClassSession)
	var starts []int
	for _, s := range day {
		if _, ok := byStart[s.StartPeriod]; !ok {
			starts = append(starts, s.StartPeriod)
		}
		byStart[s.StartPeriod] = append(byStart[s.StartPeriod], s)
	}
	slices.Sort(starts)

	groups := make([][]timetable.ClassSession, 0, len(starts))
	for _, p := range starts {
		groups = append(groups, byStart[p])
	}
	return groups
}

// IntervalOverlap groups sessions whose inclusive period ranges overlap,
// transitively. Members are ordered by start period, then input order.
type IntervalOverlap struct{}

// Group implements [Grouper].
func (IntervalOverlap) Group(day []timetable.ClassSession) [][]timetable.ClassSession {
	sorted := slices.Clone(day)
	slices.SortStableFunc(sorted, func(a, b timetable.ClassSession) int {
		return cmp.Compare(a.StartPeriod, b.StartPeriod)
	})

	var groups [][]timetable.ClassSession
	var current []timetable.ClassSession
	maxEnd := 0
	for _, s := range sorted {
		if len(current) > 0 && s.StartPeriod > maxEnd {
			groups = append(groups, current)
			current = nil
		}
		if len(current) == 0 || s.EndPeriod > maxEnd {
			maxEnd = s.EndPeriod
		}
		current = append(current, s)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Resolve groups one day's sessions and assigns stacking hints. The first
// member of a group gets full width, no offset and full opacity; each later
// member is shifted right, narrowed and faded by one step.
func Resolve(day []timetable.ClassSession, opts ...Option) []Group {
	return resolve(day, newConfig(opts))
}

func resolve(day []timetable.ClassSession, cfg config) []Group {
	parts := cfg.grouper.Group(day)
	groups := make([]Group, 0, len(parts))
	for _, members := range parts {
		if len(members) == 0 {
			continue
		}
		g := Group{StartPeriod: members[0].StartPeriod, Slots: make([]Slot, len(members))}
		for i, s := range members {
			g.StartPeriod = min(g.StartPeriod, s.StartPeriod)
			g.Slots[i] = newSlot(s, i, len(members), cfg)
		}
		groups = append(groups, g)
	}
	return groups
}

func newSlot(s timetable.ClassSession, stack, size int, cfg config) Slot {
	offset := float64(stack) * cfg.offsetStep
	return Slot{
		Session:   s,
		RowSpan:   s.RowSpan(),
		ZIndex:    s.StartPeriod,
		Offset:    offset,
		Width:     math.Max(cfg.fullWidth-offset, 0),
		Opacity:   math.Max(1-float64(stack)*cfg.opacityStep, 0),
		Color:     ColorFor(s.CourseCode),
		Stack:     stack,
		GroupSize: size,
	}
}
