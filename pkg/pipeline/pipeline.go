// Package pipeline runs the fetch → layout → render pipeline for one week.
//
// The CLI and the HTTP API both go through a [Runner], so that defaults,
// validation and artifact caching behave the same everywhere:
//
//	runner := pipeline.NewRunner(src, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SemesterID: "2024-fall",
//	    WeekID:     "w03",
//	    View:       pipeline.ViewGrid,
//	    Formats:    []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/weekgrid/pkg/cache"
	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/layout"
	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// =============================================================================
// Views and Formats
// =============================================================================

// Views of a week.
const (
	ViewGrid   = "grid"
	ViewAgenda = "agenda"
)

// DefaultView is used when Options.View is empty.
const DefaultView = ViewGrid

// viewFormats lists the formats each view can render, default first.
var viewFormats = map[string][]string{
	ViewGrid:   {render.FormatText, render.FormatJSON, render.FormatSVG},
	ViewAgenda: {render.FormatText, render.FormatJSON, render.FormatCSV},
}

// FormatsFor returns the formats a view supports.
func FormatsFor(view string) []string { return slices.Clone(viewFormats[view]) }

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	SemesterID string `json:"semester_id"`
	WeekID     string `json:"week_id"`

	View    string   `json:"view,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Layout options. Zero values use the layout package defaults.
	Grouping    string  `json:"grouping,omitempty"`
	OffsetStep  float64 `json:"offset_step,omitempty"`
	OpacityStep float64 `json:"opacity_step,omitempty"`
	FullWidth   float64 `json:"full_width,omitempty"`

	// Refresh skips artifact cache reads.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// Selection returns the week the options refer to.
func (o *Options) Selection() timetable.WeekSelection {
	return timetable.WeekSelection{SemesterID: o.SemesterID, WeekID: o.WeekID}
}

// ValidateAndSetDefaults checks the selection, view, formats and layout
// options and fills defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Selection().Validate(); err != nil {
		return err
	}
	if o.View == "" {
		o.View = DefaultView
	}
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{viewFormats[o.View][0]}
	}
	if err := ValidateFormats(o.View, o.Formats); err != nil {
		return err
	}
	if o.Grouping == "" {
		o.Grouping = layout.GroupingExact
	}
	if _, err := layout.GrouperByName(o.Grouping); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "grouping")
	}
	if o.OffsetStep < 0 || o.OpacityStep < 0 || o.FullWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout steps and width must not be negative")
	}
	o.validated = true
	return nil
}

// LayoutOptions converts the layout fields into layout.Options.
func (o *Options) LayoutOptions() []layout.Option {
	grouper, err := layout.GrouperByName(o.Grouping)
	if err != nil {
		grouper = layout.ExactStart{}
	}
	return []layout.Option{
		layout.WithGrouper(grouper),
		layout.WithOffsetStep(o.OffsetStep),
		layout.WithOpacityStep(o.OpacityStep),
		layout.WithFullWidth(o.FullWidth),
	}
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		View:        o.View,
		Format:      format,
		Grouping:    o.Grouping,
		OffsetStep:  o.OffsetStep,
		OpacityStep: o.OpacityStep,
		FullWidth:   o.FullWidth,
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateView checks that view is grid or agenda.
func ValidateView(view string) error {
	if _, ok := viewFormats[view]; !ok {
		return errors.New(errors.ErrCodeInvalidView, "invalid view %q (must be one of: grid, agenda)", view)
	}
	return nil
}

// ValidateFormats checks every format is supported by view.
func ValidateFormats(view string, formats []string) error {
	allowed := viewFormats[view]
	for _, f := range formats {
		if !slices.Contains(allowed, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q for %s view (must be one of: %s)",
				f, view, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result holds the outputs of a run. Only the requested view is computed.
type Result struct {
	Selection timetable.WeekSelection
	Sessions  []timetable.ClassSession
	Periods   *timetable.PeriodTable
	Grid      *layout.Grid
	Agenda    *layout.Agenda

	// InputHash identifies the fetched data; artifacts are cached under it.
	InputHash string
	Artifacts map[string][]byte
	// ETags fingerprint each artifact by input data and render options.
	ETags     map[string]string
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records sizes and stage timings.
type Stats struct {
	Sessions   int
	Placed     int
	Dropped    int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports whether every artifact came from the cache.
type CacheInfo struct {
	RenderHit bool
}

func (s Stats) String() string {
	return fmt.Sprintf("%d sessions (%d placed, %d dropped)", s.Sessions, s.Placed, s.Dropped)
}
