package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// Day is a day of the week in the portal encoding: Monday(2) through Sunday(8).
type Day int

// The seven valid days.
const (
	Monday    Day = 2
	Tuesday   Day = 3
	Wednesday Day = 4
	Thursday  Day = 5
	Friday    Day = 6
	Saturday  Day = 7
	Sunday    Day = 8
)

// MinDay and MaxDay bound the valid day domain.
const (
	MinDay = Monday
	MaxDay = Sunday
)

// DaysPerWeek is the number of columns in a weekly grid.
const DaysPerWeek = int(MaxDay-MinDay) + 1

var dayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Days returns the seven valid days in ascending order.
func Days() []Day {
	days := make([]Day, 0, DaysPerWeek)
	for d := MinDay; d <= MaxDay; d++ {
		days = append(days, d)
	}
	return days
}

// Valid reports whether d is within {2..8}.
func (d Day) Valid() bool { return d >= MinDay && d <= MaxDay }

// Index returns the zero-based column index of d (Monday = 0).
// It returns -1 for days outside the domain.
func (d Day) Index() int {
	if !d.Valid() {
		return -1
	}
	return int(d - MinDay)
}

// String returns the English day name, or "Day(n)" outside the domain.
func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d.Index()]
}

// Short returns the three-letter abbreviation ("Mon").
func (d Day) Short() string {
	if !d.Valid() {
		return strconv.Itoa(int(d))
	}
	return dayNames[d.Index()][:3]
}

// ParseDay accepts either the numeric encoding ("4") or an English day
// name or abbreviation, case-insensitively ("wed", "Wednesday").
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		d := Day(n)
		if !d.Valid() {
			return 0, fmt.Errorf("day %d outside 2..8", n)
		}
		return d, nil
	}
	for i, name := range dayNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return MinDay + Day(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

// MarshalCSV writes the numeric encoding so that files round-trip.
func (d Day) MarshalCSV() (string, error) { return strconv.Itoa(int(d)), nil }

// UnmarshalCSV reads a numeric day (kept as-is, even outside the domain) or
// a day name.
func (d *Day) UnmarshalCSV(s string) error {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*d = Day(n)
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
