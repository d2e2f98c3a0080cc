// Package pkg provides the libraries behind weekgrid, a weekly timetable
// layout engine.
//
// # Overview
//
// Weekgrid takes the class sessions of one (semester, week) and produces two
// views: a period-by-day grid in which classes starting in the same slot are
// stacked into offset, translucent layers, and a chronological agenda
// grouped by day.
//
// # Architecture
//
//	Source (demo, files, HTTP, MongoDB)
//	         ↓
//	    [source] (+ [cache] decorator)
//	         ↓
//	    [layout] buckets, collision groups, grid and agenda
//	         ↓
//	    [render] text, JSON, SVG, CSV
//
// [pipeline] runs fetch, layout and render for the CLI and the HTTP API.
// [weekstore] drives the interactive browser: it owns the selected week and
// discards fetches that a newer selection superseded.
//
// # Quick Start
//
//	src := source.NewDemo()
//	sel := timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w01"}
//	sessions, _ := src.Sessions(ctx, sel)
//	periods, _ := src.Periods(ctx)
//
//	grid := layout.ComputeGrid(sessions, periods, layout.WithGrouper(layout.IntervalOverlap{}))
//	svg := render.GridSVG(grid, render.WithSVGTitle(sel.String()))
//
// # Main Packages
//
// [timetable] - Days, class sessions, the period table and week selections.
//
// [layout] - Pure layout computation. Sessions outside the timetable are
// dropped and counted, never placed.
//
// [render] - Output sinks for grids and agendas.
//
// [source] - Data providers and the caching and instrumentation decorators.
//
// [cache] - File, Redis and no-op caches with key derivation.
//
// [config] - TOML configuration with defaults and validation.
//
// [errors] - Coded errors shared by every layer.
//
// [observability] - No-op-by-default hooks for fetch, layout, render, cache
// and HTTP events.
//
// # Testing
//
//	go test ./...                        # Unit tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Redis and MongoDB tests
//
// [timetable]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/timetable
// [layout]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/render
// [source]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/pipeline
// [weekstore]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/weekstore
package pkg
