package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// session builds a test session dated in the week of 2024-09-02 (a Monday),
// so day 2 falls on the 2nd, day 8 on the 8th.
func session(id, code string, day timetable.Day, start, end int) timetable.ClassSession {
	return timetable.ClassSession{
		ID:          id,
		CourseCode:  code,
		CourseName:  "Course " + code,
		Room:        "A1-" + id,
		DayOfWeek:   day,
		StartPeriod: start,
		EndPeriod:   end,
		Date:        fmt.Sprintf("2024-09-%02d", int(day)),
	}
}

func ids(sessions []timetable.ClassSession) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}

func slotIDs(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Session.ID
	}
	return out
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
