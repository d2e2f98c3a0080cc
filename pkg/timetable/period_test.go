package timetable

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/errors"
)

func TestDefaultPeriodTable(t *testing.T) {
	table := DefaultPeriodTable()
	if table.Len() != MaxPeriod {
		t.Fatalf("Len() = %d, want %d", table.Len(), MaxPeriod)
	}
	periods := table.Periods()
	for i, p := range periods {
		if p.Period != i+1 {
			t.Errorf("Periods()[%d].Period = %d", i, p.Period)
		}
		if i > 0 && p.Start < periods[i-1].End {
			t.Errorf("period %d starts before period %d ends", p.Period, i)
		}
	}
	first, ok := table.Lookup(1)
	if !ok || first.Start != "07:00" {
		t.Errorf("Lookup(1) = %+v, %v", first, ok)
	}
}

func TestPeriodTableLookupOutOfRange(t *testing.T) {
	table := DefaultPeriodTable()
	for _, p := range []int{0, 13, -1} {
		if _, ok := table.Lookup(p); ok {
			t.Errorf("Lookup(%d) should miss", p)
		}
	}

	var nilTable *PeriodTable
	if _, ok := nilTable.Lookup(1); ok {
		t.Error("nil table should never resolve")
	}
	if nilTable.Len() != 0 || nilTable.Periods() != nil {
		t.Error("nil table should be empty")
	}
}

func TestPeriodsIsACopy(t *testing.T) {
	table := DefaultPeriodTable()
	periods := table.Periods()
	periods[0].Start = "00:00"
	if p, _ := table.Lookup(1); p.Start != "07:00" {
		t.Errorf("mutating Periods() leaked into table: %+v", p)
	}
}

func TestNewPeriodTableErrors(t *testing.T) {
	valid := DefaultPeriodTable().Periods()

	dup := append([]PeriodTime(nil), valid...)
	dup[11] = dup[0]

	badClock := append([]PeriodTime(nil), valid...)
	badClock[3].Start = "9:50"

	reversed := append([]PeriodTime(nil), valid...)
	reversed[5].Start, reversed[5].End = reversed[5].End, reversed[5].Start

	outOfRange := append([]PeriodTime(nil), valid...)
	outOfRange[0].Period = 13

	tests := []struct {
		name    string
		entries []PeriodTime
		code    errors.Code
	}{
		{"too few", valid[:11], errors.ErrCodeInvalidPeriod},
		{"duplicate", dup, errors.ErrCodeInvalidPeriod},
		{"bad clock", badClock, errors.ErrCodeInvalidClock},
		{"start after end", reversed, errors.ErrCodeInvalidClock},
		{"out of range", outOfRange, errors.ErrCodeInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPeriodTable(tt.entries)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %q, want %q (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestPeriodTableJSON(t *testing.T) {
	data, err := json.Marshal(DefaultPeriodTable())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded PeriodTable
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p, _ := decoded.Lookup(12); p.End != "18:50" {
		t.Errorf("decoded period 12 = %+v", p)
	}

	if err := json.Unmarshal([]byte(`[{"period":1,"startTime":"07:00","endTime":"07:50"}]`), &decoded); err == nil {
		t.Error("partial table should be rejected")
	}
}
