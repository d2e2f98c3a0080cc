package layout

import "fmt"

// Default stacking parameters.
const (
	DefaultOffsetStep  = 5.0
	DefaultOpacityStep = 0.1
	DefaultFullWidth   = 100.0
)

// Grouping strategy names accepted by [GrouperByName].
const (
	GroupingExact    = "exact"
	GroupingInterval = "interval"
)

// Option configures [Resolve], [ComputeGrid] and [ComputeAgenda].
type Option func(*config)

type config struct {
	grouper     Grouper
	offsetStep  float64
	opacityStep float64
	fullWidth   float64
}

func newConfig(opts []Option) config {
	c := config{
		grouper:     ExactStart{},
		offsetStep:  DefaultOffsetStep,
		opacityStep: DefaultOpacityStep,
		fullWidth:   DefaultFullWidth,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithGrouper replaces the collision grouping strategy. A nil grouper keeps
// the default.
func WithGrouper(g Grouper) Option {
	return func(c *config) {
		if g != nil {
			c.grouper = g
		}
	}
}

// WithOffsetStep sets the horizontal offset between stacked slots.
// Non-positive values keep the default.
func WithOffsetStep(step float64) Option {
	return func(c *config) {
		if step > 0 {
			c.offsetStep = step
		}
	}
}

// WithOpacityStep sets the opacity decrease per stacked slot.
// Non-positive values keep the default.
func WithOpacityStep(step float64) Option {
	return func(c *config) {
		if step > 0 {
			c.opacityStep = step
		}
	}
}

// WithFullWidth sets the width of an unstacked slot, in layout units.
// Non-positive values keep the default.
func WithFullWidth(w float64) Option {
	return func(c *config) {
		if w > 0 {
			c.fullWidth = w
		}
	}
}

// GrouperByName resolves a grouping strategy name. The empty name selects
// [ExactStart].
func GrouperByName(name string) (Grouper, error) {
	switch name {
	case "", GroupingExact:
		return ExactStart{}, nil
	case GroupingInterval:
		return IntervalOverlap{}, nil
	default:
		return nil, fmt.Errorf("unknown grouping %q (must be %q or %q)", name, GroupingExact, GroupingInterval)
	}
}
