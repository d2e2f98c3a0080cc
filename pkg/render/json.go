package render

import (
	"encoding/json"

	"github.com/matzehuels/weekgrid/pkg/layout"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// JSONOption configures GridJSON and AgendaJSON.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	sel    timetable.WeekSelection
	indent bool
}

// WithJSONSelection records the week the document describes.
func WithJSONSelection(sel timetable.WeekSelection) JSONOption {
	return func(r *jsonRenderer) { r.sel = sel }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type gridDoc struct {
	SemesterID string      `json:"semesterId,omitempty"`
	WeekID     string      `json:"weekId,omitempty"`
	Loading    bool        `json:"loading"`
	Empty      bool        `json:"empty"`
	FullWidth  float64     `json:"fullWidth"`
	Days       []dayDoc    `json:"days"`
	Periods    []periodDoc `json:"periods"`
	Slots      []slotDoc   `json:"slots"`
	Dropped    []string    `json:"dropped,omitempty"`
}

type dayDoc struct {
	Day  timetable.Day `json:"day"`
	Name string        `json:"name"`
}

type periodDoc struct {
	Period    int    `json:"period"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type slotDoc struct {
	timetable.ClassSession
	RowSpan   int     `json:"rowSpan"`
	ZIndex    int     `json:"zIndex"`
	Offset    float64 `json:"offset"`
	Width     float64 `json:"width"`
	Opacity   float64 `json:"opacity"`
	Color     string  `json:"color"`
	Stack     int     `json:"stack"`
	GroupSize int     `json:"groupSize"`
}

// GridJSON encodes a grid. Slots are listed in row then column order, each
// carrying its session fields and layout hints.
func GridJSON(g layout.Grid, opts ...JSONOption) ([]byte, error) {
	r := newJSONRenderer(opts)
	doc := gridDoc{
		SemesterID: r.sel.SemesterID,
		WeekID:     r.sel.WeekID,
		Loading:    g.Loading,
		Empty:      g.Empty,
		FullWidth:  g.FullWidth,
		Days:       make([]dayDoc, 0, len(g.Days)),
		Periods:    []periodDoc{},
		Slots:      []slotDoc{},
	}
	for _, d := range g.Days {
		doc.Days = append(doc.Days, dayDoc{Day: d, Name: d.String()})
	}
	for _, row := range g.Rows {
		if row.Placeholder {
			continue
		}
		doc.Periods = append(doc.Periods, periodDoc{Period: row.Period, StartTime: row.Time.Start, EndTime: row.Time.End})
	}
	for _, s := range g.Slots() {
		doc.Slots = append(doc.Slots, slotDoc{
			ClassSession: s.Session,
			RowSpan:      s.RowSpan,
			ZIndex:       s.ZIndex,
			Offset:       s.Offset,
			Width:        s.Width,
			Opacity:      s.Opacity,
			Color:        s.Color.Hex,
			Stack:        s.Stack,
			GroupSize:    s.GroupSize,
		})
	}
	for _, s := range g.Dropped {
		doc.Dropped = append(doc.Dropped, s.ID)
	}
	return r.marshal(doc)
}

type agendaDoc struct {
	SemesterID string         `json:"semesterId,omitempty"`
	WeekID     string         `json:"weekId,omitempty"`
	Days       []agendaDayDoc `json:"days"`
	Dropped    int            `json:"dropped,omitempty"`
}

type agendaDayDoc struct {
	Day        timetable.Day    `json:"day"`
	Name       string           `json:"name"`
	Date       string           `json:"date"`
	DayOfMonth string           `json:"dayOfMonth"`
	Entries    []agendaEntryDoc `json:"entries"`
}

type agendaEntryDoc struct {
	timetable.ClassSession
	TimeRange string `json:"timeRange"`
	Color     string `json:"color"`
}

// AgendaJSON encodes an agenda. Days without sessions are absent.
func AgendaJSON(a layout.Agenda, opts ...JSONOption) ([]byte, error) {
	r := newJSONRenderer(opts)
	doc := agendaDoc{
		SemesterID: r.sel.SemesterID,
		WeekID:     r.sel.WeekID,
		Days:       make([]agendaDayDoc, 0, len(a.Days)),
		Dropped:    a.Dropped,
	}
	for _, d := range a.Days {
		day := agendaDayDoc{
			Day:        d.Day,
			Name:       d.Day.String(),
			Date:       d.Date,
			DayOfMonth: d.DayOfMonth,
			Entries:    make([]agendaEntryDoc, 0, len(d.Entries)),
		}
		for _, e := range d.Entries {
			day.Entries = append(day.Entries, agendaEntryDoc{ClassSession: e.Session, TimeRange: e.TimeRange, Color: e.Color.Hex})
		}
		doc.Days = append(doc.Days, day)
	}
	return r.marshal(doc)
}

func newJSONRenderer(opts []JSONOption) jsonRenderer {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r jsonRenderer) marshal(v any) ([]byte, error) {
	if r.indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
