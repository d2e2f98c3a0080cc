package render

import (
	"fmt"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

func session(id, code string, day timetable.Day, start, end int) timetable.ClassSession {
	s := timetable.ClassSession{
		ID:          id,
		CourseCode:  code,
		CourseName:  "Course " + code,
		Room:        "R-" + id,
		Instructor:  "Dr. " + id,
		ClassName:   "C-" + id,
		DayOfWeek:   day,
		StartPeriod: start,
		EndPeriod:   end,
		Date:        fmt.Sprintf("2024-09-%02d", int(day)),
	}
	return timetable.FillTimes(s, timetable.DefaultPeriodTable())
}

func crowdedWeek() []timetable.ClassSession {
	return []timetable.ClassSession{
		session("a", "COMP3008", timetable.Wednesday, 1, 3),
		session("b", "COMP3013", timetable.Wednesday, 1, 2),
		session("c", "COMP3020", timetable.Wednesday, 1, 1),
		session("d", "PHYS1004", timetable.Wednesday, 4, 6),
		session("e", "MATH2021", timetable.Monday, 6, 8),
	}
}
