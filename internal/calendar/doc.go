// Package calendar defines the shared data model for the availability
// engine: events with their relationship bag, derived busy periods,
// candidate slots, and the wall-clock time types every component
// speaks.
//
// Timestamps are civil wall-clock values in a single fixed timezone
// chosen by the caller. The engine never converts zones; a Time is a
// point on the caller's wall, nothing more.
//
// All intervals are half-open: [start, end). Two intervals overlap iff
// a.start < b.end && a.end > b.start, so touching edges never collide.
// This predicate lives here, in exactly one place.
package calendar
