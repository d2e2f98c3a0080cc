//go:build integration

package source

import (
	"context"
	"os"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

func TestMongoSourceReplaceAndRead(t *testing.T) {
	uri := os.Getenv("WEEKGRID_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx := context.Background()
	m, err := NewMongoSource(ctx, uri, "weekgrid_test")
	if err != nil {
		t.Skipf("mongodb unavailable: %v", err)
	}
	defer m.Close(ctx)

	sel := timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w01"}
	sessions, _ := NewDemo().Sessions(ctx, sel)

	n, err := m.ReplaceWeek(ctx, sel, sessions)
	if err != nil || n != len(sessions) {
		t.Fatalf("ReplaceWeek = %d, %v", n, err)
	}
	got, err := m.Sessions(ctx, sel)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	for i := range sessions {
		if got[i] != sessions[i] {
			t.Errorf("session %d = %+v, want %+v", i, got[i], sessions[i])
		}
	}

	if err := m.ReplacePeriods(ctx, timetable.DefaultPeriodTable()); err != nil {
		t.Fatalf("ReplacePeriods: %v", err)
	}
	if table, err := m.Periods(ctx); err != nil || table.Len() != timetable.MaxPeriod {
		t.Errorf("Periods = %v, %v", table, err)
	}
	weeks, err := m.Weeks(ctx, "2024-fall")
	if err != nil || len(weeks) == 0 {
		t.Errorf("Weeks = %v, %v", weeks, err)
	}
}
