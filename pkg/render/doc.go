// Package render turns computed grids and agendas into output formats.
//
//   - [GridJSON], [AgendaJSON]: stable JSON documents for API clients
//   - [GridSVG]: a printable timetable image
//   - [GridText], [AgendaText]: lipgloss tables for the terminal
//   - [AgendaCSV]: one row per agenda entry
//
// Renderers are pure functions of their input. They never re-run layout;
// a Loading grid renders as a placeholder and an Empty grid renders its
// frame with a "No classes this week" notice.
package render

// Format names accepted by the pipeline and the HTTP API.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatText = "text"
	FormatCSV  = "csv"
)

// EmptyMessage is shown for a week without sessions.
const EmptyMessage = "No classes this week"

// LoadingMessage is shown while the period table is missing.
const LoadingMessage = "Loading timetable…"
