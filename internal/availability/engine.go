package availability

import (
	"context"
	"log/slog"
	"time"

	"github.com/orgkit/avail/internal/busy"
	"github.com/orgkit/avail/internal/calendar"
	"github.com/orgkit/avail/internal/schedule"
	"github.com/orgkit/avail/internal/visibility"
)

// conflictLoadPad widens the busy-period load range around a checked
// window so occurrences straddling the window's edges (including
// recurring ones anchored on a neighboring day) are present before
// the overlap test runs.
const conflictLoadPad = 24 * time.Hour

// Store is the full external boundary the engine needs: event
// fetching plus the directory lookups behind calendar resolution.
type Store interface {
	busy.EventStore
	visibility.Directory
}

// Engine answers availability queries. Construct once with New and
// share freely; all state is per-request.
type Engine struct {
	resolver *visibility.Resolver
	loader   *busy.Loader
	identity Identity

	hours   schedule.WeekHours
	stride  int
	adjust  schedule.Adjuster
	tokens  TokenGenerator
	now     func() calendar.Time
	maxOccs int
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithWeekHours replaces the default Monday-Friday 09:00-17:00
// business-hours table used when a call supplies none.
func WithWeekHours(hours schedule.WeekHours) Option {
	return func(e *Engine) { e.hours = hours }
}

// WithStride sets the candidate slot spacing in minutes.
func WithStride(minutes int) Option {
	return func(e *Engine) { e.stride = minutes }
}

// WithScoreAdjuster installs a post-base-score hook applied during
// ranking, e.g. per-organization preference weighting.
func WithScoreAdjuster(adjust schedule.Adjuster) Option {
	return func(e *Engine) { e.adjust = adjust }
}

// WithTokenGenerator replaces the request-token source. Tests use
// NewFixedGenerator for deterministic logs.
func WithTokenGenerator(gen TokenGenerator) Option {
	return func(e *Engine) { e.tokens = gen }
}

// WithNow fixes the engine's notion of the current wall-clock time.
// Ranking proximity depends on it; tests must pin it.
func WithNow(now func() calendar.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMaxOccurrences caps per-event recurrence expansion in the
// busy-period loader.
func WithMaxOccurrences(n int) Option {
	return func(e *Engine) { e.maxOccs = n }
}

// New creates an Engine over the given store and identity lookup.
// Both are injected interfaces; the engine holds no globals.
func New(store Store, identity Identity, opts ...Option) *Engine {
	e := &Engine{
		identity: identity,
		hours:    schedule.DefaultWeekHours(),
		stride:   schedule.DefaultStrideMinutes,
		tokens:   UUIDGenerator{},
		now:      func() calendar.Time { return calendar.FromStd(time.Now()) },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = visibility.NewResolver(store)
	e.loader = busy.NewLoader(store, e.resolver, e.maxOccs)
	return e
}

// Resolver exposes the engine's visibility resolver for callers that
// need to compute or recompute an event's visible-calendar cache.
func (e *Engine) Resolver() *visibility.Resolver { return e.resolver }

// CheckConflicts reports, for each user, the visible events
// overlapping [start, end). Timestamps are wall-clock strings.
// Periods sourced from excludeEventID are ignored; pass "" to
// exclude nothing. An empty result means the window is free for
// everyone listed.
func (e *Engine) CheckConflicts(ctx context.Context, userIDs []string, start, end string, excludeEventID string) ([]Conflict, error) {
	const op = "CheckConflicts"
	token := e.tokens.Generate()

	from, to, err := parseWindow(op, userIDs, start, end)
	if err != nil {
		return nil, err
	}

	snap, err := e.loader.Load(ctx, userIDs, from.Add(-conflictLoadPad), to.Add(conflictLoadPad))
	if err != nil {
		return nil, storeUnavailable(op, err)
	}

	conflicts := detectConflicts(ctx, e.identity, snap, userIDs, from, to, excludeEventID)
	slog.Debug("conflict check complete",
		"token", token,
		"users", len(userIDs),
		"conflicts", len(conflicts),
	)
	return conflicts, nil
}

// IsUserAvailable is CheckConflicts restricted to a single user.
func (e *Engine) IsUserAvailable(ctx context.Context, userID string, start, end string) (bool, error) {
	conflicts, err := e.CheckConflicts(ctx, []string{userID}, start, end, "")
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// FindAvailableSlots enumerates candidate windows of
// durationMinutes over [from, to] within business hours and drops
// those colliding with any listed user's busy periods. A nil hours
// table selects the engine default. Zero free windows is a normal
// outcome, never an error.
func (e *Engine) FindAvailableSlots(ctx context.Context, userIDs []string, durationMinutes int, from, to string, hours schedule.WeekHours) ([]calendar.CandidateSlot, error) {
	const op = "FindAvailableSlots"
	token := e.tokens.Generate()

	slots, err := e.findAvailable(ctx, op, token, userIDs, durationMinutes, from, to, hours)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// SuggestMeetingTimes ranks the free windows of FindAvailableSlots
// (default business hours) by the scoring heuristic and returns the
// top maxResults (default 5). Empty input or zero free windows
// yields an empty list.
func (e *Engine) SuggestMeetingTimes(ctx context.Context, userIDs []string, durationMinutes int, from, to string, maxResults int) ([]schedule.RankedSlot, error) {
	const op = "SuggestMeetingTimes"
	token := e.tokens.Generate()

	free, err := e.findAvailable(ctx, op, token, userIDs, durationMinutes, from, to, nil)
	if err != nil {
		return nil, err
	}
	ranked := schedule.RankAndTruncate(free, e.now(), maxResults, e.adjust)
	slog.Debug("meeting suggestions ranked",
		"token", token,
		"free", len(free),
		"returned", len(ranked),
	)
	return ranked, nil
}

func (e *Engine) findAvailable(ctx context.Context, op, token string, userIDs []string, durationMinutes int, from, to string, hours schedule.WeekHours) ([]calendar.CandidateSlot, error) {
	if durationMinutes <= 0 {
		return nil, invalidInput(op, "duration must be positive, got %d", durationMinutes)
	}
	rangeFrom, rangeTo, err := parseRange(op, userIDs, from, to)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		hours = e.hours
	}

	candidates := schedule.GenerateCandidateSlots(rangeFrom, rangeTo, durationMinutes, hours, e.stride)
	if len(candidates) == 0 {
		return []calendar.CandidateSlot{}, nil
	}

	snap, err := e.loader.Load(ctx, userIDs, rangeFrom.Midnight(), rangeTo.NextDay())
	if err != nil {
		return nil, storeUnavailable(op, err)
	}

	free := schedule.FilterAvailable(candidates, snap.Periods)
	slog.Debug("availability search complete",
		"token", token,
		"candidates", len(candidates),
		"free", len(free),
	)
	return free, nil
}

// parseWindow validates a conflict-check window: at least one user,
// parseable timestamps, end strictly after start (a half-open window
// of zero length contains nothing). All violations surface as
// INVALID_INPUT before any I/O.
func parseWindow(op string, userIDs []string, start, end string) (calendar.Time, calendar.Time, error) {
	from, to, err := parseBounds(op, userIDs, start, end)
	if err != nil {
		return from, to, err
	}
	if !to.After(from) {
		return from, to, invalidInput(op, "window end %s must be after start %s", to, from)
	}
	return from, to, nil
}

// parseRange validates a slot-search date range. Unlike the conflict
// window it is inclusive of calendar days, so from == to means "this
// one day" and is valid.
func parseRange(op string, userIDs []string, start, end string) (calendar.Time, calendar.Time, error) {
	from, to, err := parseBounds(op, userIDs, start, end)
	if err != nil {
		return from, to, err
	}
	if to.Before(from) {
		return from, to, invalidInput(op, "range end %s must not be before start %s", to, from)
	}
	return from, to, nil
}

func parseBounds(op string, userIDs []string, start, end string) (calendar.Time, calendar.Time, error) {
	var zero calendar.Time
	if len(userIDs) == 0 {
		return zero, zero, invalidInput(op, "at least one user id is required")
	}
	for _, id := range userIDs {
		if id == "" {
			return zero, zero, invalidInput(op, "user ids must be non-empty")
		}
	}
	from, err := calendar.ParseTime(start)
	if err != nil {
		return zero, zero, invalidInput(op, "start: %v", err)
	}
	to, err := calendar.ParseTime(end)
	if err != nil {
		return zero, zero, invalidInput(op, "end: %v", err)
	}
	return from, to, nil
}
