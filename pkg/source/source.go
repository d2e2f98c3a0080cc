// Package source fetches class sessions and period tables for a selected
// week.
//
// A [Source] answers three questions: which sessions fall in a
// (semester, week), what the period table looks like, and which weeks a
// semester has. Implementations:
//
//   - [Demo]: built-in sample data
//   - [FileSource]: a directory of JSON or CSV week files
//   - [HTTPSource]: the portal's REST API
//   - [MongoSource]: a MongoDB collection
//
// [Cached] and [Instrument] decorate any Source.
//
// Sources return data as delivered. Validation of individual sessions is
// left to callers (see timetable.Validate); the layout engine drops
// sessions it cannot place.
package source

import (
	"context"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Source kinds accepted by [Open].
const (
	KindDemo  = "demo"
	KindFile  = "file"
	KindHTTP  = "http"
	KindMongo = "mongo"
)

// SessionProvider returns the sessions of one week, in source order.
type SessionProvider interface {
	Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error)
}

// PeriodProvider returns the period table.
type PeriodProvider interface {
	Periods(ctx context.Context) (*timetable.PeriodTable, error)
}

// WeekLister lists the week identifiers of a semester in display order.
type WeekLister interface {
	Weeks(ctx context.Context, semesterID string) ([]string, error)
}

// Source combines all providers with a short name used in cache keys and
// logs.
type Source interface {
	SessionProvider
	PeriodProvider
	WeekLister
	Name() string
}
