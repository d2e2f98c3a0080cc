package layout

import (
	"slices"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Buckets holds one week's sessions split by day. It is built in a single
// pass by [BucketByDay] and never modified afterwards.
type Buckets struct {
	days    [timetable.DaysPerWeek][]timetable.ClassSession
	dropped []timetable.ClassSession
}

// BucketByDay groups sessions by day of week, preserving the relative input
// order inside each day. Sessions whose day lies outside {2..8} go to
// [Buckets.Dropped] instead of any bucket.
func BucketByDay(sessions []timetable.ClassSession) Buckets {
	var b Buckets
	for _, s := range sessions {
		idx := s.DayOfWeek.Index()
		if idx < 0 {
			b.dropped = append(b.dropped, s)
			continue
		}
		b.days[idx] = append(b.days[idx], s)
	}
	return b
}

// Day returns a copy of the sessions for d. Valid days with no sessions
// yield an empty, non-nil slice; days outside the domain yield nil.
func (b Buckets) Day(d timetable.Day) []timetable.ClassSession {
	idx := d.Index()
	if idx < 0 {
		return nil
	}
	if len(b.days[idx]) == 0 {
		return []timetable.ClassSession{}
	}
	return slices.Clone(b.days[idx])
}

// Present returns the days holding at least one session, ascending.
func (b Buckets) Present() []timetable.Day {
	var days []timetable.Day
	for _, d := range timetable.Days() {
		if len(b.days[d.Index()]) > 0 {
			days = append(days, d)
		}
	}
	return days
}

// Dropped returns the sessions whose day fell outside the domain, in input order.
func (b Buckets) Dropped() []timetable.ClassSession { return slices.Clone(b.dropped) }

// Len returns the number of bucketed (in-domain) sessions.
func (b Buckets) Len() int {
	n := 0
	for _, day := range b.days {
		n += len(day)
	}
	return n
}
