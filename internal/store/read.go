package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/orgkit/avail/internal/calendar"
	"github.com/orgkit/avail/internal/visibility"
)

// FetchEventsByCalendarAndRange returns every event whose cached
// visibility set intersects calendarIDs and whose interval (or, for
// recurring events, whose recurrence anchored at start_at) can
// intersect [from, to]. One round trip covers all calendars; the
// loader never needs per-calendar queries.
func (s *SQLite) FetchEventsByCalendarAndRange(ctx context.Context, calendarIDs []string, from, to calendar.Time) ([]calendar.Event, error) {
	if len(calendarIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(calendarIDs)), ",")
	args := make([]any, 0, len(calendarIDs)+3)
	for _, id := range calendarIDs {
		args = append(args, id)
	}
	args = append(args, to.String(), from.String(), to.String())

	// Recurring events are range-checked on their anchor only; the
	// busy-period loader expands and trims the occurrences.
	query := fmt.Sprintf(`
		SELECT DISTINCT e.id, e.entity_type, e.entity_id, e.start_at, e.end_at,
			e.title, e.location, e.description, e.rrule,
			e.category, e.source_committee, e.target_committee,
			e.assigner, e.assignee, e.created_by
		FROM events e
		JOIN event_calendars ec ON ec.event_id = e.id
		WHERE ec.calendar_id IN (%s)
		  AND (
			(e.rrule = '' AND e.start_at <= ? AND e.end_at >= ?)
			OR (e.rrule != '' AND e.start_at <= ?)
		  )
		ORDER BY e.start_at, e.id
	`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	defer rows.Close()

	var events []calendar.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	if err := s.attachRelations(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (calendar.Event, error) {
	var ev calendar.Event
	var startAt, endAt string
	err := rows.Scan(
		&ev.ID, &ev.EntityType, &ev.EntityID, &startAt, &endAt,
		&ev.Title, &ev.Location, &ev.Description, &ev.Recurrence,
		&ev.Relationships.Category,
		&ev.Relationships.SourceCommitteeID,
		&ev.Relationships.TargetCommitteeID,
		&ev.Relationships.AssignerID,
		&ev.Relationships.AssigneeID,
		&ev.Relationships.CreatedBy,
	)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("scan event: %w", err)
	}
	if ev.Start, err = calendar.ParseTime(startAt); err != nil {
		return calendar.Event{}, fmt.Errorf("event %s start: %w", ev.ID, err)
	}
	if ev.End, err = calendar.ParseTime(endAt); err != nil {
		return calendar.Event{}, fmt.Errorf("event %s end: %w", ev.ID, err)
	}
	return ev, nil
}

// attachRelations batch-loads the per-event child rows (visibility
// cache, related users, attendees) for the fetched events.
func (s *SQLite) attachRelations(ctx context.Context, events []calendar.Event) error {
	if len(events) == 0 {
		return nil
	}

	index := make(map[string]*calendar.Event, len(events))
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(events)), ",")
	args := make([]any, len(events))
	for i := range events {
		index[events[i].ID] = &events[i]
		args[i] = events[i].ID
	}

	type childTable struct {
		query  string
		assign func(ev *calendar.Event, value string)
	}
	tables := []childTable{
		{
			query: fmt.Sprintf(`SELECT event_id, calendar_id FROM event_calendars
				WHERE event_id IN (%s) ORDER BY calendar_id`, placeholders),
			assign: func(ev *calendar.Event, v string) { ev.VisibleOn = append(ev.VisibleOn, v) },
		},
		{
			query: fmt.Sprintf(`SELECT event_id, user_id FROM event_related_users
				WHERE event_id IN (%s) ORDER BY user_id`, placeholders),
			assign: func(ev *calendar.Event, v string) {
				ev.Relationships.RelatedUserIDs = append(ev.Relationships.RelatedUserIDs, v)
			},
		},
		{
			query: fmt.Sprintf(`SELECT event_id, attendee FROM event_attendees
				WHERE event_id IN (%s) ORDER BY attendee`, placeholders),
			assign: func(ev *calendar.Event, v string) {
				ev.Relationships.Attendees = append(ev.Relationships.Attendees, v)
			},
		},
	}

	for _, table := range tables {
		rows, err := s.db.QueryContext(ctx, table.query, args...)
		if err != nil {
			return fmt.Errorf("fetch event relations: %w", err)
		}
		for rows.Next() {
			var eventID, value string
			if err := rows.Scan(&eventID, &value); err != nil {
				rows.Close()
				return fmt.Errorf("scan event relation: %w", err)
			}
			if ev, ok := index[eventID]; ok {
				table.assign(ev, value)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("fetch event relations: %w", err)
		}
		rows.Close()
	}
	return nil
}

// FetchUserCommittees returns the committee ids the user actively
// belongs to, sorted.
func (s *SQLite) FetchUserCommittees(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT committee_id FROM committee_members
		WHERE user_id = ? AND active = 1
		ORDER BY committee_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch committees: %w", err)
	}
	defer rows.Close()

	var committees []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan committee: %w", err)
		}
		committees = append(committees, id)
	}
	return committees, rows.Err()
}

// UserHasBoardCapability reports whether the user is flagged as
// board-level.
func (s *SQLite) UserHasBoardCapability(ctx context.Context, userID string) (bool, error) {
	var board int
	err := s.db.QueryRowContext(ctx,
		`SELECT board FROM users WHERE id = ?`, userID).Scan(&board)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check board capability: %w", err)
	}
	return board != 0, nil
}

// ResolveUserByEmail maps a normalized email to a user id. Unknown
// addresses return ok=false with no error.
func (s *SQLite) ResolveUserByEmail(ctx context.Context, email string) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE email = ?`, visibility.NormalizeEmail(email)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolve email: %w", err)
	}
	return id, true, nil
}

// DisplayName returns the user's display name, or the id itself when
// no name is stored.
func (s *SQLite) DisplayName(ctx context.Context, userID string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT display_name FROM users WHERE id = ?`, userID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && name == "") {
		return userID, nil
	}
	if err != nil {
		return "", fmt.Errorf("display name: %w", err)
	}
	return name, nil
}
