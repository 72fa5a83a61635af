// Package availability is the public entry point of the engine. It
// composes the visibility resolver, busy-period loader, and slot
// machinery to answer three questions: is this window free for these
// users, which windows are free, and which free windows are the best
// meeting suggestions.
//
// The engine is stateless and safe for concurrent use. Every
// operation is a single-pass, request-scoped computation: no
// persisted intermediate state, no retries, no partial success. The
// loader's store query is the only suspension point; a failed fetch
// propagates immediately as a STORE_UNAVAILABLE error.
//
// "No results" is never an error. A conflict check over a free
// window and a slot search with nothing available both return empty
// collections.
package availability
