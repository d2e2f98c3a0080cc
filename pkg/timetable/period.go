package timetable

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/weekgrid/pkg/errors"
)

// MinPeriod and MaxPeriod bound the valid period domain.
const (
	MinPeriod = 1
	MaxPeriod = 12
)

// PeriodTime is the canonical clock range of one period.
type PeriodTime struct {
	Period int    `json:"period" toml:"period" bson:"period"`
	Start  string `json:"startTime" toml:"start" bson:"start_time"`
	End    string `json:"endTime" toml:"end" bson:"end_time"`
}

// PeriodTable maps periods 1..12 to their clock times.
// A table is immutable after construction; all methods are read-only.
type PeriodTable struct {
	times [MaxPeriod + 1]PeriodTime
}

var defaultPeriods = []PeriodTime{
	{1, "07:00", "07:50"},
	{2, "07:50", "08:40"},
	{3, "08:50", "09:40"},
	{4, "09:50", "10:40"},
	{5, "10:40", "11:30"},
	{6, "12:30", "13:20"},
	{7, "13:20", "14:10"},
	{8, "14:20", "15:10"},
	{9, "15:20", "16:10"},
	{10, "16:10", "17:00"},
	{11, "17:10", "18:00"},
	{12, "18:00", "18:50"},
}

// DefaultPeriodTable returns the portal's standard twelve-period day.
func DefaultPeriodTable() *PeriodTable {
	t, err := NewPeriodTable(defaultPeriods)
	if err != nil {
		panic(err) // static data
	}
	return t
}

// NewPeriodTable builds a table from entries in any order.
// Every period 1..12 must appear exactly once with valid HH:MM times and
// start before end.
func NewPeriodTable(entries []PeriodTime) (*PeriodTable, error) {
	if len(entries) != MaxPeriod {
		return nil, errors.New(errors.ErrCodeInvalidPeriod, "period table needs %d entries, got %d", MaxPeriod, len(entries))
	}
	var t PeriodTable
	for _, e := range entries {
		if e.Period < MinPeriod || e.Period > MaxPeriod {
			return nil, errors.New(errors.ErrCodeInvalidPeriod, "period %d outside %d..%d", e.Period, MinPeriod, MaxPeriod)
		}
		if t.times[e.Period].Period != 0 {
			return nil, errors.New(errors.ErrCodeInvalidPeriod, "duplicate period %d", e.Period)
		}
		if err := errors.ValidateClock(e.Start); err != nil {
			return nil, fmt.Errorf("period %d start: %w", e.Period, err)
		}
		if err := errors.ValidateClock(e.End); err != nil {
			return nil, fmt.Errorf("period %d end: %w", e.Period, err)
		}
		// HH:MM compares lexically.
		if e.Start >= e.End {
			return nil, errors.New(errors.ErrCodeInvalidClock, "period %d starts at %s but ends at %s", e.Period, e.Start, e.End)
		}
		t.times[e.Period] = e
	}
	return &t, nil
}

// Lookup returns the clock range for period p.
func (t *PeriodTable) Lookup(p int) (PeriodTime, bool) {
	if !t.Contains(p) {
		return PeriodTime{}, false
	}
	return t.times[p], true
}

// Contains reports whether p is a period of the table.
func (t *PeriodTable) Contains(p int) bool {
	return t != nil && p >= MinPeriod && p <= MaxPeriod
}

// Periods returns a copy of all entries ordered by period.
func (t *PeriodTable) Periods() []PeriodTime {
	if t == nil {
		return nil
	}
	return slices.Clone(t.times[MinPeriod:])
}

// Len returns the number of periods (12 for any non-nil table).
func (t *PeriodTable) Len() int {
	if t == nil {
		return 0
	}
	return MaxPeriod
}

// MarshalJSON encodes the table as an ordered array.
func (t *PeriodTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Periods())
}

// UnmarshalJSON decodes an array of entries and validates it.
func (t *PeriodTable) UnmarshalJSON(data []byte) error {
	var entries []PeriodTime
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	nt, err := NewPeriodTable(entries)
	if err != nil {
		return err
	}
	*t = *nt
	return nil
}
