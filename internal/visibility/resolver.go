package visibility

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/orgkit/avail/internal/calendar"
)

// Directory is the identity/membership lookup the resolver depends
// on. Implemented by the store adapters; injected, never global.
type Directory interface {
	// ResolveUserByEmail maps an email address to a user id.
	// ok=false means the address is unknown, which is not an error.
	ResolveUserByEmail(ctx context.Context, email string) (userID string, ok bool, err error)

	// FetchUserCommittees returns the ids of committees the user
	// actively belongs to.
	FetchUserCommittees(ctx context.Context, userID string) ([]string, error)

	// UserHasBoardCapability reports whether the user holds a
	// board-level capability.
	UserHasBoardCapability(ctx context.Context, userID string) (bool, error)
}

// Resolver derives calendar identifier sets for events and users.
type Resolver struct {
	dir Directory
}

// NewResolver creates a Resolver backed by the given directory.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// ComputeVisibility derives the set of calendar identifiers an event
// appears on. Idempotent and order-independent: the result is a
// sorted slice with set semantics, stable under re-invocation.
//
// An event with an empty relationship bag resolves to an empty set
// and is therefore invisible to everyone outside a direct fetch by
// id. That is intentional.
//
// Attendee emails that cannot be resolved are dropped silently, as is
// any directory failure during resolution: visibility degrades, it
// never errors.
func (r *Resolver) ComputeVisibility(ctx context.Context, ev calendar.Event) []string {
	rel := ev.Relationships
	set := make(map[string]struct{})

	add := func(id string) {
		if id != "" {
			set[id] = struct{}{}
		}
	}

	// Category passes through verbatim, including a pre-shaped
	// committee_<id> value.
	add(rel.Category)

	if rel.SourceCommitteeID != "" {
		add(CommitteeCalendar(rel.SourceCommitteeID))
	}
	if rel.TargetCommitteeID != "" {
		add(CommitteeCalendar(rel.TargetCommitteeID))
	}

	if rel.AssignerID != "" {
		add(UserCalendar(rel.AssignerID))
	}
	if rel.AssigneeID != "" {
		add(UserCalendar(rel.AssigneeID))
	}
	if rel.CreatedBy != "" {
		add(UserCalendar(rel.CreatedBy))
	}

	for _, id := range rel.RelatedUserIDs {
		if id != "" {
			add(UserCalendar(id))
		}
	}

	for _, attendee := range rel.Attendees {
		if attendee == "" {
			continue
		}
		if !strings.Contains(attendee, "@") {
			add(UserCalendar(attendee))
			continue
		}
		userID, ok, err := r.dir.ResolveUserByEmail(ctx, NormalizeEmail(attendee))
		if err != nil {
			slog.Debug("attendee email resolution failed, dropping",
				"event_id", ev.ID,
				"error", err,
			)
			continue
		}
		if !ok {
			continue
		}
		add(UserCalendar(userID))
	}

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ResolveUserCalendars returns the sorted set of calendar identifiers
// the user may read: their personal calendar, "public", one group
// calendar per active committee membership, and "board" iff they hold
// the board capability.
func (r *Resolver) ResolveUserCalendars(ctx context.Context, userID string) ([]string, error) {
	set := map[string]struct{}{
		UserCalendar(userID): {},
		CalendarPublic:       {},
	}

	committees, err := r.dir.FetchUserCommittees(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch committees for user %s: %w", userID, err)
	}
	for _, cid := range committees {
		if cid != "" {
			set[CommitteeCalendar(cid)] = struct{}{}
		}
	}

	board, err := r.dir.UserHasBoardCapability(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check board capability for user %s: %w", userID, err)
	}
	if board {
		set[CalendarBoard] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// CanUserSeeEvent reports whether the user's calendar set intersects
// the event's visibility set. No side effects.
func (r *Resolver) CanUserSeeEvent(ctx context.Context, userID string, ev calendar.Event) (bool, error) {
	calendars, err := r.ResolveUserCalendars(ctx, userID)
	if err != nil {
		return false, err
	}
	return Intersects(calendars, r.ComputeVisibility(ctx, ev)), nil
}

// NormalizeEmail canonicalizes an email address for directory lookup:
// trimmed, lowercased, NFC-normalized. Two spellings of the same
// address must hit the same directory entry.
func NormalizeEmail(email string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(email)))
}
