// Package timetable defines the data model shared by every weekgrid layer:
// class sessions, the day-of-week domain, the period-time table and the
// week selection that scopes a session collection.
//
// # Day Domain
//
// Days use the portal's non-ISO encoding: Monday is 2 and Sunday is 8.
// [Days] returns the seven valid days in ascending order and [Day.Valid]
// reports membership. Values outside {2..8} are representable on purpose;
// the layout engine drops them instead of failing.
//
// # Periods
//
// A period is a fixed teaching slot numbered 1..12. [PeriodTable] maps each
// period to its canonical clock times. Tables are immutable once built and
// may be shared freely between goroutines.
//
// # Validation
//
// The layout engine does not validate sessions. Callers that ingest
// external data run [Validate] (and optionally [CheckTimes]) upstream and
// decide what to do with rejected records.
package timetable
