package render

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"

	"github.com/matzehuels/weekgrid/pkg/layout"
)

// SVGOption configures GridSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title     string
	colWidth  float64
	rowHeight float64
	labelW    float64
	headerH   float64
}

// WithSVGTitle draws a title above the grid.
func WithSVGTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithCellSize sets the day column width and period row height in pixels.
func WithCellSize(width, height float64) SVGOption {
	return func(r *svgRenderer) {
		if width > 0 {
			r.colWidth = width
		}
		if height > 0 {
			r.rowHeight = height
		}
	}
}

func newSVGRenderer(opts []SVGOption) svgRenderer {
	r := svgRenderer{colWidth: 150, rowHeight: 44, labelW: 92, headerH: 36}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// GridSVG draws the grid. Slots are anchored at their start row and span
// RowSpan rows; their horizontal offset and width are the layout hints
// scaled from the grid's FullWidth to the column width. Slots are painted
// by z-index, then stack position, so later members of a group lie on top.
func GridSVG(g layout.Grid, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts)

	top := 0.0
	if r.title != "" {
		top = 32
	}
	width := r.labelW + float64(len(g.Days))*r.colWidth
	height := top + r.headerH + float64(len(g.Rows))*r.rowHeight

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" font-family="system-ui, sans-serif">`+"\n",
		width, height, width, height)
	buf.WriteString(`  <rect width="100%" height="100%" fill="#ffffff"/>` + "\n")
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="22" font-size="16" font-weight="600" fill="#111827">%s</text>`+"\n", r.labelW/4, html.EscapeString(r.title))
	}

	r.renderFrame(&buf, g, top)

	if g.Loading {
		fmt.Fprintf(&buf, `  <text class="placeholder" x="%.1f" y="%.1f" text-anchor="middle" font-size="14" fill="#6b7280">%s</text>`+"\n",
			width/2, top+r.headerH+r.rowHeight/2+5, LoadingMessage)
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	slots := g.Slots()
	slices.SortStableFunc(slots, func(a, b layout.Slot) int {
		return cmp.Or(cmp.Compare(a.ZIndex, b.ZIndex), cmp.Compare(a.Stack, b.Stack))
	})
	for _, s := range slots {
		r.renderSlot(&buf, g, s, top)
	}

	if g.Empty {
		fmt.Fprintf(&buf, `  <text class="empty" x="%.1f" y="%.1f" text-anchor="middle" font-size="16" fill="#6b7280">%s</text>`+"\n",
			r.labelW+(width-r.labelW)/2, top+r.headerH+float64(len(g.Rows))*r.rowHeight/2, EmptyMessage)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderFrame(buf *bytes.Buffer, g layout.Grid, top float64) {
	for i, d := range g.Days {
		x := r.labelW + float64(i)*r.colWidth
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="13" font-weight="600" fill="#374151">%s</text>`+"\n",
			x+r.colWidth/2, top+r.headerH-12, d.String())
	}
	for i, row := range g.Rows {
		y := top + r.headerH + float64(i)*r.rowHeight
		fmt.Fprintf(buf, `  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e5e7eb"/>`+"\n", y, r.labelW+float64(len(g.Days))*r.colWidth, y)
		if row.Placeholder {
			continue
		}
		fmt.Fprintf(buf, `  <text x="8" y="%.1f" font-size="12" font-weight="600" fill="#374151">Period %d</text>`+"\n", y+18, row.Period)
		fmt.Fprintf(buf, `  <text x="8" y="%.1f" font-size="10" fill="#6b7280">%s - %s</text>`+"\n", y+33, row.Time.Start, row.Time.End)
	}
	bottom := top + r.headerH + float64(len(g.Rows))*r.rowHeight
	for i := 0; i <= len(g.Days); i++ {
		x := r.labelW + float64(i)*r.colWidth
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e5e7eb"/>`+"\n", x, top, x, bottom)
	}
}

func (r svgRenderer) renderSlot(buf *bytes.Buffer, g layout.Grid, s layout.Slot, top float64) {
	col := s.Session.DayOfWeek.Index()
	full := g.FullWidth
	if full <= 0 {
		full = layout.DefaultFullWidth
	}
	scale := (r.colWidth - 4) / full

	x := r.labelW + float64(col)*r.colWidth + 2 + s.Offset*scale
	y := top + r.headerH + float64(s.Session.StartPeriod-1)*r.rowHeight + 2
	w := s.Width * scale
	h := float64(s.RowSpan)*r.rowHeight - 4

	fmt.Fprintf(buf, `  <g class="slot" id="slot-%s" opacity="%.2f">`+"\n", html.EscapeString(s.Session.ID), s.Opacity)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="#ffffff"/>`+"\n", x, y, w, h, s.Color.Hex)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="12" font-weight="600" fill="#ffffff">%s</text>`+"\n", x+6, y+16, html.EscapeString(s.Session.CourseCode))
	if h > 36 {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="10" fill="#ffffff">%s</text>`+"\n", x+6, y+30, html.EscapeString(s.Session.Room))
	}
	if h > 52 {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="10" fill="#ffffff">%s</text>`+"\n", x+6, y+44, s.Session.TimeRange())
	}
	fmt.Fprintf(buf, `    <title>%s</title>`+"\n", html.EscapeString(s.Session.CourseName+" ("+s.Session.ClassName+") · "+s.Session.Instructor))
	buf.WriteString("  </g>\n")
}
