package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/weekgrid/pkg/layout"
)

var (
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dayHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
)

// coveredMark fills cells that lie inside a slot's span below its anchor.
const coveredMark = "┆"

// GridText renders the grid as a terminal table: one row per period, one
// column per day. Anchored cells show the course codes of their slots in
// stack order, colored by the first slot; crowded cells are marked with
// the group size.
func GridText(g layout.Grid) string {
	if g.Loading {
		return dimStyle.Render(LoadingMessage) + "\n"
	}

	headers := make([]string, 0, len(g.Days)+1)
	headers = append(headers, "")
	for _, d := range g.Days {
		headers = append(headers, d.Short())
	}

	rows := make([][]string, 0, len(g.Rows))
	colors := make([][]string, len(g.Rows))
	for i, row := range g.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, fmt.Sprintf("%2d %s", row.Period, row.Time.Start))
		colors[i] = make([]string, len(row.Cells)+1)
		for j, c := range row.Cells {
			switch {
			case len(c.Slots) > 0:
				cells = append(cells, cellText(c))
				colors[i][j+1] = c.Slots[0].Color.ANSI
			case c.Covered:
				cells = append(cells, coveredMark)
			default:
				cells = append(cells, "")
			}
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return labelStyle.Padding(0, 1)
			}
			if row >= 0 && row < len(colors) && colors[row][col] != "" {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(colors[row][col])).Bold(true).Padding(0, 1)
			}
			return dimStyle.Padding(0, 1)
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	if g.Empty {
		b.WriteString(dimStyle.Render(EmptyMessage))
		b.WriteString("\n")
	}
	if n := len(g.Dropped); n > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d session(s) could not be placed", n)))
		b.WriteString("\n")
	}
	return b.String()
}

func cellText(c layout.Cell) string {
	codes := make([]string, len(c.Slots))
	for i, s := range c.Slots {
		codes[i] = s.Session.CourseCode
	}
	text := strings.Join(codes, "\n")
	if c.Crowded() {
		text += fmt.Sprintf("\n(%d)", len(c.Slots))
	}
	return text
}

// AgendaText renders the agenda as one table per day, headed by the day
// name and day of month.
func AgendaText(a layout.Agenda) string {
	if a.Empty() {
		return dimStyle.Render(EmptyMessage) + "\n"
	}

	var b strings.Builder
	for i, d := range a.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		head := d.Day.String()
		if d.DayOfMonth != "" {
			head += " " + d.DayOfMonth
		}
		b.WriteString(dayHeadStyle.Render(head))
		b.WriteString("\n")

		rows := make([][]string, len(d.Entries))
		for j, e := range d.Entries {
			s := e.Session
			rows[j] = []string{e.TimeRange, s.CourseCode, s.CourseName, s.Room, s.Instructor, s.ClassName}
		}
		entries := d.Entries
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers("Time", "Code", "Course", "Room", "Instructor", "Section").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				base := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return headerStyle.Padding(0, 1)
				}
				if col == 1 && row >= 0 && row < len(entries) {
					return base.Foreground(lipgloss.Color(entries[row].Color.ANSI)).Bold(true)
				}
				return base
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	return b.String()
}
