package render

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/layout"
)

func TestAgendaCSV(t *testing.T) {
	data, err := AgendaCSV(layout.ComputeAgenda(crowdedWeek()))
	if err != nil {
		t.Fatalf("AgendaCSV: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 6 {
		t.Fatalf("got %d records, want header + 5", len(records))
	}
	if records[0][0] != "date" || records[0][5] != "course_code" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "Monday" || records[1][5] != "MATH2021" {
		t.Errorf("first row = %v", records[1])
	}
	if records[5][5] != "PHYS1004" {
		t.Errorf("last row = %v", records[5])
	}
}
