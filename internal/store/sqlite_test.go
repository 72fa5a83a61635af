package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgkit/avail/internal/calendar"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "avail.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avail.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveUser(context.Background(), User{ID: "u1", DisplayName: "One"}))
	require.NoError(t, s.Close())

	// Schema application is idempotent across reopens.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	name, err := s.DisplayName(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "One", name)
}

func TestSQLite_UserDirectory(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUser(ctx, User{
		ID:          "alice",
		DisplayName: "Alice Johnson",
		Email:       "  Alice@Example.ORG ",
		Board:       true,
	}))
	require.NoError(t, s.SaveUser(ctx, User{ID: "bob", Email: "bob@example.org"}))

	t.Run("email lookup is normalized", func(t *testing.T) {
		id, ok, err := s.ResolveUserByEmail(ctx, "ALICE@example.org")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "alice", id)

		_, ok, err = s.ResolveUserByEmail(ctx, "nobody@example.org")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("display name falls back to id", func(t *testing.T) {
		name, err := s.DisplayName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice Johnson", name)

		name, err = s.DisplayName(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", name, "empty stored name yields the id")

		name, err = s.DisplayName(ctx, "ghost")
		require.NoError(t, err)
		assert.Equal(t, "ghost", name)
	})

	t.Run("board capability", func(t *testing.T) {
		board, err := s.UserHasBoardCapability(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, board)

		board, err = s.UserHasBoardCapability(ctx, "bob")
		require.NoError(t, err)
		assert.False(t, board)

		board, err = s.UserHasBoardCapability(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, board, "unknown users are not board")
	})
}

func TestSQLite_SaveUserUpsert(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUser(ctx, User{ID: "u1", DisplayName: "Before", Email: "before@example.org"}))
	require.NoError(t, s.SaveUser(ctx, User{ID: "u1", DisplayName: "After", Email: "after@example.org"}))

	name, err := s.DisplayName(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "After", name)

	id, ok, err := s.ResolveUserByEmail(ctx, "after@example.org")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "u1", id)
}

func TestSQLite_CommitteeMembership(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUser(ctx, User{ID: "alice"}))
	require.NoError(t, s.SetCommitteeMembership(ctx, "alice", "9", true))
	require.NoError(t, s.SetCommitteeMembership(ctx, "alice", "3", true))
	require.NoError(t, s.SetCommitteeMembership(ctx, "alice", "5", true))
	require.NoError(t, s.SetCommitteeMembership(ctx, "alice", "5", false))

	committees, err := s.FetchUserCommittees(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "9"}, committees, "sorted, inactive memberships excluded")
}

func TestSQLite_SaveEventRoundTrip(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	ev := calendar.Event{
		ID:         "ev-1",
		EntityType: "meeting",
		EntityID:   "m-42",
		Start:      calendar.MustParseTime("2024-06-04T10:00"),
		End:        calendar.MustParseTime("2024-06-04T11:00"),
		Title:      "Planning",
		Location:   "Room 2",
		Recurrence: "",
		Relationships: calendar.Relationships{
			Category:          "general",
			SourceCommitteeID: "3",
			CreatedBy:         "alice",
			RelatedUserIDs:    []string{"bob", "alice"},
			Attendees:         []string{"carol@example.org", "bob"},
		},
		VisibleOn: []string{"user_alice", "committee_3", "general"},
	}

	id, err := s.SaveEvent(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, "ev-1", id)

	events, err := s.FetchEventsByCalendarAndRange(ctx, []string{"user_alice"},
		calendar.MustParseTime("2024-06-04"), calendar.MustParseTime("2024-06-05"))
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, "ev-1", got.ID)
	assert.Equal(t, "meeting", got.EntityType)
	assert.Equal(t, "m-42", got.EntityID)
	assert.Equal(t, "2024-06-04T10:00:00", got.Start.String())
	assert.Equal(t, "Planning", got.Title)
	assert.Equal(t, "Room 2", got.Location)
	assert.Equal(t, "general", got.Relationships.Category)
	assert.Equal(t, "3", got.Relationships.SourceCommitteeID)
	assert.Equal(t, "alice", got.Relationships.CreatedBy)
	assert.Equal(t, []string{"alice", "bob"}, got.Relationships.RelatedUserIDs)
	assert.Equal(t, []string{"bob", "carol@example.org"}, got.Relationships.Attendees)
	assert.Equal(t, []string{"committee_3", "general", "user_alice"}, got.VisibleOn)
}

func TestSQLite_SaveEventUpsertReplacesChildren(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	ev := calendar.Event{
		ID:        "ev-1",
		Start:     calendar.MustParseTime("2024-06-04T10:00"),
		End:       calendar.MustParseTime("2024-06-04T11:00"),
		Title:     "Before",
		VisibleOn: []string{"user_alice"},
	}
	_, err := s.SaveEvent(ctx, ev)
	require.NoError(t, err)

	ev.Title = "After"
	ev.VisibleOn = []string{"user_bob"}
	_, err = s.SaveEvent(ctx, ev)
	require.NoError(t, err)

	from := calendar.MustParseTime("2024-06-04")
	to := calendar.MustParseTime("2024-06-05")

	events, err := s.FetchEventsByCalendarAndRange(ctx, []string{"user_alice"}, from, to)
	require.NoError(t, err)
	assert.Empty(t, events, "old calendar rows are replaced, not merged")

	events, err = s.FetchEventsByCalendarAndRange(ctx, []string{"user_bob"}, from, to)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "After", events[0].Title)
}

func TestSQLite_SaveEventValidation(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	id, err := s.SaveEvent(ctx, calendar.Event{
		Start:     calendar.MustParseTime("2024-06-04T10:00"),
		End:       calendar.MustParseTime("2024-06-04T11:00"),
		VisibleOn: []string{"user_alice"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id, "an empty id gets generated")

	_, err = s.SaveEvent(ctx, calendar.Event{
		ID:    "ev-bad",
		Start: calendar.MustParseTime("2024-06-04T11:00"),
		End:   calendar.MustParseTime("2024-06-04T10:00"),
	})
	assert.Error(t, err)
}

func TestSQLite_FetchRangeSemantics(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	save := func(id, start, end, rrule string) {
		_, err := s.SaveEvent(ctx, calendar.Event{
			ID:         id,
			Start:      calendar.MustParseTime(start),
			End:        calendar.MustParseTime(end),
			Recurrence: rrule,
			VisibleOn:  []string{"user_alice"},
		})
		require.NoError(t, err)
	}
	save("ev-before", "2024-05-01T10:00", "2024-05-01T11:00", "")
	save("ev-in", "2024-06-04T10:00", "2024-06-04T11:00", "")
	save("ev-after", "2024-07-01T10:00", "2024-07-01T11:00", "")
	// Recurring events are anchor-checked only; the anchor predates
	// the range but later occurrences may fall inside it.
	save("ev-weekly", "2024-05-07T14:00", "2024-05-07T15:00", "FREQ=WEEKLY")
	save("ev-future-rule", "2024-07-02T14:00", "2024-07-02T15:00", "FREQ=WEEKLY")

	events, err := s.FetchEventsByCalendarAndRange(ctx, []string{"user_alice"},
		calendar.MustParseTime("2024-06-01"), calendar.MustParseTime("2024-06-30"))
	require.NoError(t, err)

	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	assert.Equal(t, []string{"ev-weekly", "ev-in"}, ids, "ordered by start_at")
}

func TestSQLite_FetchNoCalendars(t *testing.T) {
	s := openTestDB(t)

	events, err := s.FetchEventsByCalendarAndRange(context.Background(), nil,
		calendar.MustParseTime("2024-06-01"), calendar.MustParseTime("2024-06-30"))
	require.NoError(t, err)
	assert.Empty(t, events)
}
