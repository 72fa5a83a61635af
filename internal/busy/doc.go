// Package busy loads the busy periods of a set of users over a date
// range. It is the only component of the engine that performs I/O:
// it resolves each user's readable calendar set, fetches the visible
// events from the event store, and projects them to (start, end,
// source) intervals. Recurring events are expanded into their
// occurrences within the queried range.
//
// Per-user loads fan out to independent goroutines and fan in before
// returning. Results are keyed by user id, so completion order is
// never observable.
package busy
