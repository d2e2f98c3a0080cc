package render

import (
	"github.com/gocarina/gocsv"

	"github.com/matzehuels/weekgrid/pkg/layout"
)

type agendaRow struct {
	Date        string `csv:"date"`
	Day         string `csv:"day"`
	StartPeriod int    `csv:"start_period"`
	EndPeriod   int    `csv:"end_period"`
	Time        string `csv:"time"`
	CourseCode  string `csv:"course_code"`
	CourseName  string `csv:"course_name"`
	ClassName   string `csv:"class_name"`
	Room        string `csv:"room"`
	Instructor  string `csv:"instructor"`
}

// AgendaCSV writes a header row and one row per agenda entry in agenda
// order.
func AgendaCSV(a layout.Agenda) ([]byte, error) {
	rows := make([]agendaRow, 0, a.Len())
	for _, d := range a.Days {
		for _, e := range d.Entries {
			s := e.Session
			rows = append(rows, agendaRow{
				Date:        s.Date,
				Day:         d.Day.String(),
				StartPeriod: s.StartPeriod,
				EndPeriod:   s.EndPeriod,
				Time:        e.TimeRange,
				CourseCode:  s.CourseCode,
				CourseName:  s.CourseName,
				ClassName:   s.ClassName,
				Room:        s.Room,
				Instructor:  s.Instructor,
			})
		}
	}
	return gocsv.MarshalBytes(&rows)
}
