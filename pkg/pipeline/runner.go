package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/weekgrid/pkg/cache"
	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/layout"
	"github.com/matzehuels/weekgrid/pkg/observability"
	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/source"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Runner executes the pipeline against a source with artifact caching.
// It holds no per-run state and is safe for concurrent use.
type Runner struct {
	Source source.Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables artifact caching, a nil
// keyer uses the default keyer and a nil logger uses log.Default().
func NewRunner(src source.Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: src, Cache: c, Keyer: keyer, Logger: logger}
}

// Execute fetches the week, computes the requested view and renders every
// requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{
		Selection: opts.Selection(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	sessions, periods, err := r.Fetch(ctx, result.Selection)
	if err != nil {
		return nil, err
	}
	result.Sessions = sessions
	result.Periods = periods
	result.Stats.Sessions = len(sessions)
	result.Stats.FetchTime = time.Since(fetchStart)
	result.InputHash = inputHash(sessions, periods)

	r.Logger.Debug("fetched week",
		"week", result.Selection,
		"sessions", len(sessions),
		"duration", result.Stats.FetchTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	switch opts.View {
	case ViewGrid:
		g := layout.ComputeGrid(sessions, periods, opts.LayoutOptions()...)
		result.Grid = &g
		result.Stats.Placed = len(g.Slots())
		result.Stats.Dropped = len(g.Dropped)
	case ViewAgenda:
		a := layout.ComputeAgenda(sessions)
		result.Agenda = &a
		result.Stats.Placed = a.Len()
		result.Stats.Dropped = a.Dropped
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Timetable().OnLayoutComplete(ctx, opts.View, result.Stats.Placed, result.Stats.Dropped, result.Stats.LayoutTime)

	if result.Stats.Dropped > 0 {
		r.Logger.Warn("sessions could not be placed", "week", result.Selection, "dropped", result.Stats.Dropped)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Fetch loads the week's sessions and the period table concurrently.
func (r *Runner) Fetch(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, *timetable.PeriodTable, error) {
	var (
		sessions []timetable.ClassSession
		periods  *timetable.PeriodTable
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = r.Source.Sessions(gctx, sel)
		return err
	})
	g.Go(func() error {
		var err error
		periods, err = r.Source.Periods(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sessions, periods, nil
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts. The boolean reports whether all formats were cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	hooks := observability.Cache()

	if result.ETags == nil {
		result.ETags = make(map[string]string, len(opts.Formats))
	}
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.InputHash, opts.ArtifactKeyOpts(format))
		result.ETags[format] = cache.Hash([]byte(key))[:16]
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		start := time.Now()
		data, err := Render(result, format)
		observability.Timetable().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, allHit, nil
}

// Render produces one format from a result whose view has been computed.
func Render(result *Result, format string) ([]byte, error) {
	sel := render.WithJSONSelection(result.Selection)
	switch {
	case result.Grid != nil:
		switch format {
		case render.FormatJSON:
			return render.GridJSON(*result.Grid, sel)
		case render.FormatSVG:
			return render.GridSVG(*result.Grid, render.WithSVGTitle(result.Selection.String())), nil
		case render.FormatText:
			return []byte(render.GridText(*result.Grid)), nil
		}
	case result.Agenda != nil:
		switch format {
		case render.FormatJSON:
			return render.AgendaJSON(*result.Agenda, sel)
		case render.FormatCSV:
			return render.AgendaCSV(*result.Agenda)
		case render.FormatText:
			return []byte(render.AgendaText(*result.Agenda)), nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "cannot render %s for this view", format)
}

// inputHash fingerprints the fetched data for artifact cache keys.
func inputHash(sessions []timetable.ClassSession, periods *timetable.PeriodTable) string {
	data, _ := json.Marshal(struct {
		Sessions []timetable.ClassSession `json:"sessions"`
		Periods  *timetable.PeriodTable   `json:"periods"`
	}{sessions, periods})
	return cache.Hash(data)
}
