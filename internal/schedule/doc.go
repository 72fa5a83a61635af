// Package schedule holds the pure slot machinery: business-hours
// tables, candidate slot enumeration, availability filtering, and
// the ranking heuristic. Everything here is deterministic arithmetic
// over in-memory values; no I/O, no clocks except the `now` the
// caller passes in.
package schedule
