package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orgkit/avail/internal/calendar"
	"github.com/orgkit/avail/internal/visibility"
)

// User is a directory entry. Email is stored normalized so lookup
// and storage agree on one spelling.
type User struct {
	ID          string
	DisplayName string
	Email       string
	Board       bool
}

// SaveUser upserts a directory entry.
func (s *SQLite) SaveUser(ctx context.Context, u User) error {
	if u.ID == "" {
		return fmt.Errorf("save user: id is required")
	}
	board := 0
	if u.Board {
		board = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, display_name, email, board)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			email = excluded.email,
			board = excluded.board
	`, u.ID, u.DisplayName, visibility.NormalizeEmail(u.Email), board)
	if err != nil {
		return fmt.Errorf("save user %s: %w", u.ID, err)
	}
	return nil
}

// SetCommitteeMembership records (or deactivates) a user's committee
// membership.
func (s *SQLite) SetCommitteeMembership(ctx context.Context, userID, committeeID string, active bool) error {
	flag := 0
	if active {
		flag = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO committee_members (user_id, committee_id, active)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, committee_id) DO UPDATE SET active = excluded.active
	`, userID, committeeID, flag)
	if err != nil {
		return fmt.Errorf("set membership %s/%s: %w", userID, committeeID, err)
	}
	return nil
}

// SaveEvent upserts an event together with its relationship rows and
// the caller-computed visibleOnCalendars cache. The whole write is
// one transaction: child rows are replaced, never merged. An empty
// id gets a generated one; the stored id is returned.
func (s *SQLite) SaveEvent(ctx context.Context, ev calendar.Event) (string, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.End.Before(ev.Start) {
		return "", fmt.Errorf("save event %s: end before start", ev.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save event %s: %w", ev.ID, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (id, entity_type, entity_id, start_at, end_at,
			title, location, description, rrule,
			category, source_committee, target_committee,
			assigner, assignee, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entity_type = excluded.entity_type,
			entity_id = excluded.entity_id,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			title = excluded.title,
			location = excluded.location,
			description = excluded.description,
			rrule = excluded.rrule,
			category = excluded.category,
			source_committee = excluded.source_committee,
			target_committee = excluded.target_committee,
			assigner = excluded.assigner,
			assignee = excluded.assignee,
			created_by = excluded.created_by
	`,
		ev.ID, ev.EntityType, ev.EntityID, ev.Start.String(), ev.End.String(),
		ev.Title, ev.Location, ev.Description, ev.Recurrence,
		ev.Relationships.Category,
		ev.Relationships.SourceCommitteeID,
		ev.Relationships.TargetCommitteeID,
		ev.Relationships.AssignerID,
		ev.Relationships.AssigneeID,
		ev.Relationships.CreatedBy,
	)
	if err != nil {
		return "", fmt.Errorf("save event %s: %w", ev.ID, err)
	}

	children := []struct {
		table, column string
		values        []string
	}{
		{"event_calendars", "calendar_id", ev.VisibleOn},
		{"event_related_users", "user_id", ev.Relationships.RelatedUserIDs},
		{"event_attendees", "attendee", ev.Relationships.Attendees},
	}
	for _, child := range children {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE event_id = ?", child.table), ev.ID); err != nil {
			return "", fmt.Errorf("save event %s: clear %s: %w", ev.ID, child.table, err)
		}
		for _, value := range child.values {
			if value == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(
				"INSERT INTO %s (event_id, %s) VALUES (?, ?) ON CONFLICT DO NOTHING",
				child.table, child.column), ev.ID, value); err != nil {
				return "", fmt.Errorf("save event %s: insert %s: %w", ev.ID, child.table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save event %s: %w", ev.ID, err)
	}
	return ev.ID, nil
}
