package busy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/teambition/rrule-go"

	"github.com/orgkit/avail/internal/calendar"
	"github.com/orgkit/avail/internal/visibility"
)

// DefaultMaxOccurrences caps how many occurrences a single recurring
// event may contribute within one query range. Guards against
// pathological rules (e.g. minutely with no COUNT).
const DefaultMaxOccurrences = 1000

// EventStore is the external store boundary. One round trip fetches
// every event visible on any of the given calendars that intersects
// the range; the loader never issues per-event queries.
type EventStore interface {
	FetchEventsByCalendarAndRange(ctx context.Context, calendarIDs []string, from, to calendar.Time) ([]calendar.Event, error)
}

// Snapshot is the result of one load: busy periods keyed by user id,
// plus an index of the contributing events for conflict reporting.
type Snapshot struct {
	// Periods maps user id to that user's busy periods, sorted by
	// start then source event id. Users with no visible events map
	// to a nil slice.
	Periods map[string][]calendar.BusyPeriod

	// Events indexes every contributing event by id.
	Events map[string]calendar.Event
}

// Loader retrieves busy periods through the event store.
type Loader struct {
	store          EventStore
	resolver       *visibility.Resolver
	maxOccurrences int
}

// NewLoader creates a Loader. maxOccurrences <= 0 selects
// DefaultMaxOccurrences.
func NewLoader(store EventStore, resolver *visibility.Resolver, maxOccurrences int) *Loader {
	if maxOccurrences <= 0 {
		maxOccurrences = DefaultMaxOccurrences
	}
	return &Loader{store: store, resolver: resolver, maxOccurrences: maxOccurrences}
}

// Load fetches busy periods for every user over [from, to). Per-user
// fetches run concurrently; the first error wins and is returned
// unchanged. The store query is the only suspension point and
// respects ctx.
func (l *Loader) Load(ctx context.Context, userIDs []string, from, to calendar.Time) (*Snapshot, error) {
	snap := &Snapshot{
		Periods: make(map[string][]calendar.BusyPeriod, len(userIDs)),
		Events:  make(map[string]calendar.Event),
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()

			events, err := l.loadUserEvents(ctx, userID, from, to)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			periods := make([]calendar.BusyPeriod, 0, len(events))
			for _, ev := range events {
				periods = append(periods, l.project(ev, from, to)...)
				snap.Events[ev.ID] = ev
			}
			sortPeriods(periods)
			snap.Periods[userID] = periods
		}(userID)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return snap, nil
}

// LoadUser is Load restricted to one user, returning the periods
// directly.
func (l *Loader) LoadUser(ctx context.Context, userID string, from, to calendar.Time) ([]calendar.BusyPeriod, error) {
	snap, err := l.Load(ctx, []string{userID}, from, to)
	if err != nil {
		return nil, err
	}
	return snap.Periods[userID], nil
}

func (l *Loader) loadUserEvents(ctx context.Context, userID string, from, to calendar.Time) ([]calendar.Event, error) {
	calendars, err := l.resolver.ResolveUserCalendars(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := l.store.FetchEventsByCalendarAndRange(ctx, calendars, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch events for user %s: %w", userID, err)
	}
	return events, nil
}

// project reduces one event to its busy periods within [from, to).
// Non-recurring events contribute at most one period; recurring
// events contribute one per occurrence in range.
func (l *Loader) project(ev calendar.Event, from, to calendar.Time) []calendar.BusyPeriod {
	if ev.Recurrence == "" {
		if !intersectsRange(ev.Start, ev.End, from, to) {
			return nil
		}
		return []calendar.BusyPeriod{{Start: ev.Start, End: ev.End, SourceEventID: ev.ID}}
	}
	return l.expand(ev, from, to)
}

// expand materializes a recurring event's occurrences within the
// range. Each occurrence keeps the base event's duration. A rule
// that fails to parse contributes nothing: a malformed stored rule
// must not take conflict checking down with it.
func (l *Loader) expand(ev calendar.Event, from, to calendar.Time) []calendar.BusyPeriod {
	rule, err := rrule.StrToRRule(ev.Recurrence)
	if err != nil {
		slog.Warn("skipping event with unparseable recurrence rule",
			"event_id", ev.ID,
			"rrule", ev.Recurrence,
			"error", err,
		)
		return nil
	}
	rule.DTStart(ev.Start.Std())

	duration := ev.End.Sub(ev.Start)
	starts := rule.Between(from.Add(-duration).Std(), to.Std(), true)
	if len(starts) > l.maxOccurrences {
		slog.Warn("recurrence expansion truncated",
			"event_id", ev.ID,
			"cap", l.maxOccurrences,
		)
		starts = starts[:l.maxOccurrences]
	}

	periods := make([]calendar.BusyPeriod, 0, len(starts))
	for _, start := range starts {
		occStart := calendar.FromStd(start)
		occEnd := occStart.Add(duration)
		if !intersectsRange(occStart, occEnd, from, to) {
			continue
		}
		periods = append(periods, calendar.BusyPeriod{
			Start:         occStart,
			End:           occEnd,
			SourceEventID: ev.ID,
		})
	}
	return periods
}

// intersectsRange is the closed-boundary range test used for loading.
// Unlike the conflict predicate it keeps zero-length (all-day marker)
// events that sit exactly on a boundary, so they stay available for
// listing and reporting.
func intersectsRange(start, end, from, to calendar.Time) bool {
	return !end.Before(from) && !start.After(to)
}

func sortPeriods(periods []calendar.BusyPeriod) {
	sort.Slice(periods, func(i, j int) bool {
		if !periods[i].Start.Equal(periods[j].Start) {
			return periods[i].Start.Before(periods[j].Start)
		}
		return periods[i].SourceEventID < periods[j].SourceEventID
	})
}
