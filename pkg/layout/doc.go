// Package layout computes the weekly timetable layout for one week's class
// sessions. Every function is pure: inputs are never retained or mutated and
// identical inputs produce deeply equal outputs.
//
// # Stages
//
//  1. [BucketByDay] splits the sessions into the seven day buckets,
//     preserving input order and setting aside out-of-domain days.
//  2. [Resolve] groups one day's sessions with a [Grouper] and assigns each
//     member its stacking hints (offset, width, opacity, z-index, color).
//  3. [ComputeGrid] places every slot on a period × day grid, anchored at its
//     start period and spanning its period range.
//  4. [ComputeAgenda] emits the chronological day-grouped list view.
//
// # Collision Grouping
//
// The default grouper, [ExactStart], only groups sessions that start on the
// same period. Two sessions whose ranges overlap without sharing a start
// period are not offset against each other and will draw on top of one
// another. [IntervalOverlap] groups by transitive range overlap instead and
// can be selected with [WithGrouper] without touching the renderers.
//
// # Grid vs Agenda
//
// The grid always shows all seven days and keeps bucket order inside a cell.
// The agenda omits empty days and sorts each day by start period.
package layout
