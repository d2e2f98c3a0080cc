package source

import (
	"context"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/cache"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

type countingSource struct {
	Source
	sessions, periods, weeks int
}

func (c *countingSource) Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error) {
	c.sessions++
	return c.Source.Sessions(ctx, sel)
}

func (c *countingSource) Periods(ctx context.Context) (*timetable.PeriodTable, error) {
	c.periods++
	return c.Source.Periods(ctx)
}

func (c *countingSource) Weeks(ctx context.Context, semesterID string) ([]string, error) {
	c.weeks++
	return c.Source.Weeks(ctx, semesterID)
}

func TestCachedServesRepeatsFromCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingSource{Source: NewDemo()}
	c := NewCached(inner, fc)
	sel := timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w01"}

	first, err := c.Sessions(ctx, sel)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Sessions(ctx, sel)
	if err != nil {
		t.Fatal(err)
	}
	if inner.sessions != 1 {
		t.Errorf("inner fetched %d times, want 1", inner.sessions)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Error("cached sessions differ from fetched")
	}

	for range 3 {
		if _, err := c.Periods(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if inner.periods != 1 {
		t.Errorf("periods fetched %d times, want 1", inner.periods)
	}

	// A second process sharing the cache directory hits the file cache.
	other := NewCached(inner, fc)
	if _, err := other.Periods(ctx); err != nil {
		t.Fatal(err)
	}
	if inner.periods != 1 {
		t.Errorf("periods fetched %d times after reopen, want 1", inner.periods)
	}
}

func TestCachedRefreshBypassesReads(t *testing.T) {
	ctx := context.Background()
	fc, _ := cache.NewFileCache(t.TempDir())
	inner := &countingSource{Source: NewDemo()}
	c := NewCached(inner, fc, WithRefresh(true))

	for range 2 {
		if _, err := c.Weeks(ctx, "2024-fall"); err != nil {
			t.Fatal(err)
		}
	}
	if inner.weeks != 2 {
		t.Errorf("weeks fetched %d times, want 2", inner.weeks)
	}
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{Source: NewDemo()}
	c := NewCached(inner, nil)
	sel := timetable.WeekSelection{SemesterID: "nope", WeekID: "w01"}
	for range 2 {
		if _, err := c.Sessions(ctx, sel); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.sessions != 2 {
		t.Errorf("sessions fetched %d times, want 2", inner.sessions)
	}
}
