package layout

import "github.com/matzehuels/weekgrid/pkg/timetable"

// Grid is the period × day timetable for one week.
//
// When the period table is not available yet, Loading is set and Rows holds
// a single placeholder row. Otherwise Rows has one entry per period, each
// with one cell per day in [timetable.Days] order.
type Grid struct {
	Loading   bool
	Empty     bool // no session landed on the grid
	Days      []timetable.Day
	Rows      []Row
	Dropped   []timetable.ClassSession // out-of-domain day or period range
	FullWidth float64
}

// Row is one period of the grid.
type Row struct {
	Period      int
	Time        timetable.PeriodTime
	Placeholder bool
	Cells       []Cell
}

// Cell is one (period, day) position. Slots are only anchored in the cell of
// their start period; the cells below them inside their span are Covered.
type Cell struct {
	Day     timetable.Day
	Period  int
	Slots   []Slot
	Covered bool
}

// Crowded reports whether more than one slot is anchored in the cell.
func (c Cell) Crowded() bool { return len(c.Slots) > 1 }

// ComputeGrid lays out sessions on the weekly grid. periods may be nil while
// the table is still loading.
//
// Sessions are bucketed by day, filtered to period ranges the table covers,
// resolved into collision groups and anchored at their start period. Every
// placed session appears exactly once in the grid.
func ComputeGrid(sessions []timetable.ClassSession, periods *timetable.PeriodTable, opts ...Option) Grid {
	cfg := newConfig(opts)
	buckets := BucketByDay(sessions)

	g := Grid{
		Days:      timetable.Days(),
		Dropped:   buckets.Dropped(),
		FullWidth: cfg.fullWidth,
	}
	if periods == nil {
		g.Loading = true
		g.Empty = buckets.Len() == 0
		g.Rows = []Row{{Placeholder: true}}
		return g
	}

	g.Rows = make([]Row, 0, periods.Len())
	for _, pt := range periods.Periods() {
		row := Row{Period: pt.Period, Time: pt, Cells: make([]Cell, len(g.Days))}
		for i, d := range g.Days {
			row.Cells[i] = Cell{Day: d, Period: pt.Period}
		}
		g.Rows = append(g.Rows, row)
	}

	placed := 0
	for col, d := range g.Days {
		var day []timetable.ClassSession
		for _, s := range buckets.Day(d) {
			if !fitsTable(s, periods) {
				g.Dropped = append(g.Dropped, s)
				continue
			}
			day = append(day, s)
		}
		for _, grp := range resolve(day, cfg) {
			for _, slot := range grp.Slots {
				start := slot.Session.StartPeriod
				g.Rows[start-1].Cells[col].Slots = append(g.Rows[start-1].Cells[col].Slots, slot)
				for p := start + 1; p <= slot.Session.EndPeriod; p++ {
					g.Rows[p-1].Cells[col].Covered = true
				}
				placed++
			}
		}
	}
	g.Empty = placed == 0
	return g
}

func fitsTable(s timetable.ClassSession, periods *timetable.PeriodTable) bool {
	return s.StartPeriod <= s.EndPeriod && periods.Contains(s.StartPeriod) && periods.Contains(s.EndPeriod)
}

// Slots returns every anchored slot in row-major, then column order.
func (g Grid) Slots() []Slot {
	var out []Slot
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			out = append(out, cell.Slots...)
		}
	}
	return out
}

// Cell returns the cell for (period, day), or false when out of range or
// while loading.
func (g Grid) Cell(period int, d timetable.Day) (Cell, bool) {
	if g.Loading || period < 1 || period > len(g.Rows) || d.Index() < 0 {
		return Cell{}, false
	}
	return g.Rows[period-1].Cells[d.Index()], true
}
