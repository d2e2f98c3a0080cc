package source

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

type demoSemester struct {
	start time.Time // Monday of the first week
	weeks []string
	empty []string // weeks without classes
}

var demoSemesters = map[string]demoSemester{
	"2024-fall": {
		start: time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
		weeks: []string{"w01", "w02", "w03", "w04"},
		empty: []string{"w04"},
	},
	"2025-spring": {
		start: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		weeks: []string{"w01", "w02"},
	},
}

type demoClass struct {
	code, name, room, instructor, class string
	day                                 timetable.Day
	start, end                          int
}

var demoWeek = []demoClass{
	{"COMP3008", "Software Engineering", "B1-201", "Dr. Tran Minh", "SE-01", timetable.Monday, 1, 3},
	{"MATH2021", "Probability and Statistics", "A2-105", "Dr. Le Thu", "MA-02", timetable.Monday, 6, 8},
	{"COMP3013", "Computer Networks", "B1-305", "Dr. Pham Quang", "CN-01", timetable.Tuesday, 2, 4},
	{"COMP3008", "Software Engineering Lab", "LAB-3", "Dr. Tran Minh", "SE-01L", timetable.Wednesday, 1, 3},
	{"COMP3013", "Computer Networks Lab", "LAB-1", "Dr. Pham Quang", "CN-01L", timetable.Wednesday, 1, 2},
	{"COMP3020", "Operating Systems", "B2-110", "Dr. Nguyen Hoa", "OS-01", timetable.Wednesday, 1, 1},
	{"PHYS1004", "Physics II", "A1-012", "Dr. Vo Anh", "PH-03", timetable.Wednesday, 4, 6},
	{"ENGL2002", "Academic English", "C3-004", "Ms. Sarah Hill", "EN-07", timetable.Thursday, 7, 9},
	{"COMP3020", "Operating Systems", "B2-110", "Dr. Nguyen Hoa", "OS-01", timetable.Friday, 3, 5},
	{"PE1001", "Physical Education", "Gym", "Mr. Dang Khoa", "PE-11", timetable.Saturday, 1, 2},
}

// Demo serves built-in sample data: a fall semester with three regular
// weeks and an exam-break week without classes, and a short spring
// semester. Wednesday of every regular week is crowded.
type Demo struct{}

// NewDemo returns the demo source.
func NewDemo() *Demo { return &Demo{} }

// Name returns "demo".
func (*Demo) Name() string { return KindDemo }

// Sessions generates the week's sessions with dates relative to the
// semester start.
func (*Demo) Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error) {
	sem, ok := demoSemesters[sel.SemesterID]
	if !ok {
		return nil, errors.New(errors.ErrCodeSemesterNotFound, "semester %q not found", sel.SemesterID)
	}
	idx := slices.Index(sem.weeks, sel.WeekID)
	if idx < 0 {
		return nil, errors.New(errors.ErrCodeWeekNotFound, "week %q not found in %s", sel.WeekID, sel.SemesterID)
	}
	if slices.Contains(sem.empty, sel.WeekID) {
		return []timetable.ClassSession{}, nil
	}

	table := timetable.DefaultPeriodTable()
	monday := sem.start.AddDate(0, 0, 7*idx)
	out := make([]timetable.ClassSession, 0, len(demoWeek))
	for i, c := range demoWeek {
		s := timetable.ClassSession{
			ID:          fmt.Sprintf("%s-%s-%02d", sel.SemesterID, sel.WeekID, i+1),
			CourseCode:  c.code,
			CourseName:  c.name,
			Room:        c.room,
			Instructor:  c.instructor,
			ClassName:   c.class,
			DayOfWeek:   c.day,
			StartPeriod: c.start,
			EndPeriod:   c.end,
			Date:        monday.AddDate(0, 0, c.day.Index()).Format(time.DateOnly),
		}
		out = append(out, timetable.FillTimes(s, table))
	}
	return out, nil
}

// Periods returns the default period table.
func (*Demo) Periods(ctx context.Context) (*timetable.PeriodTable, error) {
	return timetable.DefaultPeriodTable(), nil
}

// Weeks lists the demo weeks of a semester.
func (*Demo) Weeks(ctx context.Context, semesterID string) ([]string, error) {
	sem, ok := demoSemesters[semesterID]
	if !ok {
		return nil, errors.New(errors.ErrCodeSemesterNotFound, "semester %q not found", semesterID)
	}
	return slices.Clone(sem.weeks), nil
}

var _ Source = (*Demo)(nil)
