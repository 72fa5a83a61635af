// Package store provides the reference implementations of the
// engine's external boundary: a SQLite-backed event store and an
// in-memory one.
//
// Both implement availability.Store (event fetching plus directory
// lookups) and availability.Identity. The SQLite store persists the
// caller-owned visibleOnCalendars cache alongside each event; the
// engine itself never writes it.
//
// The memory store backs tests and the fixture-driven CLI. It is
// safe for concurrent use.
package store
