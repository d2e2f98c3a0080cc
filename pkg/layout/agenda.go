package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Agenda is the chronological list view of a week.
type Agenda struct {
	Days    []AgendaDay
	Dropped int // sessions with an out-of-domain day or period range
}

// AgendaDay is one day header plus its sessions sorted by start period.
type AgendaDay struct {
	Day        timetable.Day
	Date       string // ISO date taken from the day's first session
	DayOfMonth string
	Entries    []AgendaEntry
}

// AgendaEntry is one row of the list view.
type AgendaEntry struct {
	Session   timetable.ClassSession
	TimeRange string
	Color     Color
}

// ComputeAgenda builds the list view. Only days with sessions are emitted,
// in ascending day order; each day's entries are stable-sorted by start
// period regardless of input order. Sessions outside the period domain are
// dropped, as in the grid.
func ComputeAgenda(sessions []timetable.ClassSession) Agenda {
	buckets := BucketByDay(sessions)
	a := Agenda{Dropped: len(buckets.Dropped())}

	for _, d := range buckets.Present() {
		var day []timetable.ClassSession
		for _, s := range buckets.Day(d) {
			if !inPeriodDomain(s) {
				a.Dropped++
				continue
			}
			day = append(day, s)
		}
		if len(day) == 0 {
			continue
		}
		slices.SortStableFunc(day, func(x, y timetable.ClassSession) int {
			return cmp.Compare(x.StartPeriod, y.StartPeriod)
		})

		ad := AgendaDay{
			Day:        d,
			Date:       day[0].Date,
			DayOfMonth: day[0].DayOfMonth(),
			Entries:    make([]AgendaEntry, len(day)),
		}
		for i, s := range day {
			ad.Entries[i] = AgendaEntry{Session: s, TimeRange: s.TimeRange(), Color: ColorFor(s.CourseCode)}
		}
		a.Days = append(a.Days, ad)
	}
	return a
}

func inPeriodDomain(s timetable.ClassSession) bool {
	return s.StartPeriod >= timetable.MinPeriod && s.StartPeriod <= s.EndPeriod && s.EndPeriod <= timetable.MaxPeriod
}

// Empty reports whether no day has sessions.
func (a Agenda) Empty() bool { return len(a.Days) == 0 }

// Len returns the number of entries across all days.
func (a Agenda) Len() int {
	n := 0
	for _, d := range a.Days {
		n += len(d.Entries)
	}
	return n
}
