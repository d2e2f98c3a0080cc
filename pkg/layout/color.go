package layout

import "unicode/utf8"

// Color is one entry of the course color palette.
type Color struct {
	Name string // stable identifier, e.g. "blue"
	Hex  string // SVG/CSS fill
	ANSI string // 256-color terminal code
}

// Palette is the fixed five-color course palette.
var Palette = [5]Color{
	{Name: "blue", Hex: "#3b82f6", ANSI: "33"},
	{Name: "green", Hex: "#10b981", ANSI: "36"},
	{Name: "amber", Hex: "#f59e0b", ANSI: "214"},
	{Name: "red", Hex: "#ef4444", ANSI: "203"},
	{Name: "purple", Hex: "#8b5cf6", ANSI: "99"},
}

// ColorIndex returns the palette index for a course code: the code point of
// its last character modulo the palette size. Different codes may collide.
func ColorIndex(courseCode string) int {
	if courseCode == "" {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(courseCode)
	return int(r) % len(Palette)
}

// ColorFor returns the palette entry for a course code.
func ColorFor(courseCode string) Color { return Palette[ColorIndex(courseCode)] }
