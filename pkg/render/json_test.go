package render

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/layout"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

func TestGridJSON(t *testing.T) {
	g := layout.ComputeGrid(crowdedWeek(), timetable.DefaultPeriodTable())
	sel := timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w01"}

	data, err := GridJSON(g, WithJSONSelection(sel))
	if err != nil {
		t.Fatalf("GridJSON: %v", err)
	}

	var doc struct {
		WeekID  string `json:"weekId"`
		Days    []struct{ Name string }
		Periods []struct {
			Period    int
			StartTime string
		}
		Slots []struct {
			ID        string  `json:"id"`
			RowSpan   int     `json:"rowSpan"`
			Offset    float64 `json:"offset"`
			Opacity   float64 `json:"opacity"`
			GroupSize int     `json:"groupSize"`
		}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.WeekID != "w01" || len(doc.Days) != 7 || len(doc.Periods) != 12 {
		t.Errorf("header = %s, %d days, %d periods", doc.WeekID, len(doc.Days), len(doc.Periods))
	}
	if doc.Periods[0].StartTime != "07:00" {
		t.Errorf("period 1 start = %s", doc.Periods[0].StartTime)
	}
	if len(doc.Slots) != 5 {
		t.Fatalf("got %d slots, want 5", len(doc.Slots))
	}
	// Row-major order: period 1 holds the Wednesday group in stack order.
	if doc.Slots[1].ID != "b" || doc.Slots[1].Offset != 5 || doc.Slots[1].GroupSize != 3 {
		t.Errorf("second slot = %+v", doc.Slots[1])
	}
}

func TestGridJSONLoading(t *testing.T) {
	data, err := GridJSON(layout.ComputeGrid(crowdedWeek(), nil))
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Loading bool
		Periods []any
		Slots   []any
	}
	_ = json.Unmarshal(data, &doc)
	if !doc.Loading || len(doc.Periods) != 0 || len(doc.Slots) != 0 {
		t.Errorf("loading doc = %s", data)
	}
}

func TestAgendaJSON(t *testing.T) {
	data, err := AgendaJSON(layout.ComputeAgenda(crowdedWeek()), WithJSONIndent())
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Days []struct {
			Name       string
			DayOfMonth string `json:"dayOfMonth"`
			Entries    []struct {
				ID        string `json:"id"`
				TimeRange string `json:"timeRange"`
			}
		}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Days) != 2 || doc.Days[0].Name != "Monday" || doc.Days[1].DayOfMonth != "4" {
		t.Fatalf("days = %+v", doc.Days)
	}
	if got := doc.Days[1].Entries[0].TimeRange; got != "07:00 - 09:40" {
		t.Errorf("first Wednesday entry time = %q", got)
	}
}
