package source

import (
	"context"
	"time"

	"github.com/matzehuels/weekgrid/pkg/observability"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

type instrumented struct {
	Source
}

// Instrument reports every fetch of src to the registered timetable hooks.
func Instrument(src Source) Source {
	return instrumented{Source: src}
}

func (s instrumented) Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error) {
	done := observeFetch(ctx, s.Name(), "sessions")
	sessions, err := s.Source.Sessions(ctx, sel)
	done(len(sessions), err)
	return sessions, err
}

func (s instrumented) Periods(ctx context.Context) (*timetable.PeriodTable, error) {
	done := observeFetch(ctx, s.Name(), "periods")
	t, err := s.Source.Periods(ctx)
	done(t.Len(), err)
	return t, err
}

func (s instrumented) Weeks(ctx context.Context, semesterID string) ([]string, error) {
	done := observeFetch(ctx, s.Name(), "weeks")
	weeks, err := s.Source.Weeks(ctx, semesterID)
	done(len(weeks), err)
	return weeks, err
}

func observeFetch(ctx context.Context, source, kind string) func(int, error) {
	hooks := observability.Timetable()
	hooks.OnFetchStart(ctx, source, kind)
	start := time.Now()
	return func(count int, err error) {
		hooks.OnFetchComplete(ctx, source, kind, count, time.Since(start), err)
	}
}
