package availability

import (
	"context"
	"log/slog"
	"sort"

	"github.com/orgkit/avail/internal/busy"
	"github.com/orgkit/avail/internal/calendar"
)

// Conflict reports that one user has at least one visible event
// overlapping the checked window. Users without overlaps are omitted
// entirely: an empty conflict list means "no conflicts", not
// "not checked".
type Conflict struct {
	UserID      string           `json:"user_id"`
	DisplayName string           `json:"display_name"`
	Events      []calendar.Event `json:"events"`
}

// Identity resolves user ids to display names for conflict
// formatting. It has no part in any decision logic, so a lookup
// failure degrades to the raw id instead of failing the check.
type Identity interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// detectConflicts walks each user's busy periods in input order and
// collects the distinct source events that overlap [start, end) under
// the half-open predicate. Periods sourced from excludeEventID are
// skipped, which supports "check conflicts while editing this event".
func detectConflicts(ctx context.Context, identity Identity, snap *busy.Snapshot, userIDs []string, start, end calendar.Time, excludeEventID string) []Conflict {
	conflicts := make([]Conflict, 0)

	for _, userID := range userIDs {
		seen := make(map[string]struct{})
		var events []calendar.Event

		for _, period := range snap.Periods[userID] {
			if period.SourceEventID == excludeEventID && excludeEventID != "" {
				continue
			}
			if !period.Overlaps(start, end) {
				continue
			}
			if _, dup := seen[period.SourceEventID]; dup {
				continue
			}
			seen[period.SourceEventID] = struct{}{}
			if ev, ok := snap.Events[period.SourceEventID]; ok {
				events = append(events, ev)
			}
		}

		if len(events) == 0 {
			continue
		}
		sort.Slice(events, func(i, j int) bool {
			if !events[i].Start.Equal(events[j].Start) {
				return events[i].Start.Before(events[j].Start)
			}
			return events[i].ID < events[j].ID
		})
		conflicts = append(conflicts, Conflict{
			UserID:      userID,
			DisplayName: displayName(ctx, identity, userID),
			Events:      events,
		})
	}

	return conflicts
}

func displayName(ctx context.Context, identity Identity, userID string) string {
	if identity == nil {
		return userID
	}
	name, err := identity.DisplayName(ctx, userID)
	if err != nil || name == "" {
		if err != nil {
			slog.Warn("display name lookup failed, falling back to user id",
				"user_id", userID,
				"error", err,
			)
		}
		return userID
	}
	return name
}
