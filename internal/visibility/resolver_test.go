package visibility

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgkit/avail/internal/calendar"
)

// fakeDirectory is an in-test Directory with canned answers.
type fakeDirectory struct {
	emails     map[string]string
	committees map[string][]string
	board      map[string]bool
	failAll    bool
}

func (d *fakeDirectory) ResolveUserByEmail(ctx context.Context, email string) (string, bool, error) {
	if d.failAll {
		return "", false, errors.New("directory down")
	}
	id, ok := d.emails[email]
	return id, ok, nil
}

func (d *fakeDirectory) FetchUserCommittees(ctx context.Context, userID string) ([]string, error) {
	if d.failAll {
		return nil, errors.New("directory down")
	}
	return d.committees[userID], nil
}

func (d *fakeDirectory) UserHasBoardCapability(ctx context.Context, userID string) (bool, error) {
	if d.failAll {
		return false, errors.New("directory down")
	}
	return d.board[userID], nil
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		emails:     map[string]string{},
		committees: map[string][]string{},
		board:      map[string]bool{},
	}
}

func TestComputeVisibility_UnionsAllRelationshipFields(t *testing.T) {
	dir := newFakeDirectory()
	dir.emails["carol@example.org"] = "carol"
	r := NewResolver(dir)

	ev := calendar.Event{
		ID: "ev1",
		Relationships: calendar.Relationships{
			Category:          "general",
			SourceCommitteeID: "3",
			TargetCommitteeID: "9",
			AssignerID:        "alice",
			AssigneeID:        "bob",
			CreatedBy:         "alice",
			RelatedUserIDs:    []string{"dora", "bob"},
			Attendees:         []string{"erik", "carol@example.org", "ghost@example.org"},
		},
	}

	got := r.ComputeVisibility(context.Background(), ev)
	assert.Equal(t, []string{
		"committee_3",
		"committee_9",
		"general",
		"user_alice",
		"user_bob",
		"user_carol",
		"user_dora",
		"user_erik",
	}, got, "sorted set union of every populated field; unresolvable email dropped")
}

func TestComputeVisibility_CommitteeShapedCategoryPassesThrough(t *testing.T) {
	r := NewResolver(newFakeDirectory())
	ev := calendar.Event{
		Relationships: calendar.Relationships{Category: "committee_5"},
	}
	assert.Equal(t, []string{"committee_5"}, r.ComputeVisibility(context.Background(), ev))
}

func TestComputeVisibility_EmptyBagIsInvisible(t *testing.T) {
	r := NewResolver(newFakeDirectory())
	got := r.ComputeVisibility(context.Background(), calendar.Event{ID: "ev1"})
	assert.Empty(t, got, "an event with no relationships appears on no calendar")
}

func TestComputeVisibility_Idempotent(t *testing.T) {
	dir := newFakeDirectory()
	dir.emails["carol@example.org"] = "carol"
	r := NewResolver(dir)

	ev := calendar.Event{
		Relationships: calendar.Relationships{
			Category:       "board",
			RelatedUserIDs: []string{"b", "a"},
			Attendees:      []string{"carol@example.org"},
		},
	}

	first := r.ComputeVisibility(context.Background(), ev)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.ComputeVisibility(context.Background(), ev))
	}
}

func TestComputeVisibility_MonotonicUnderRelatedUserGrowth(t *testing.T) {
	r := NewResolver(newFakeDirectory())
	ev := calendar.Event{
		Relationships: calendar.Relationships{
			Category:       "public",
			RelatedUserIDs: []string{"a"},
		},
	}
	before := r.ComputeVisibility(context.Background(), ev)

	ev.Relationships.RelatedUserIDs = append(ev.Relationships.RelatedUserIDs, "z")
	after := r.ComputeVisibility(context.Background(), ev)

	for _, id := range before {
		assert.Contains(t, after, id, "growing related users never removes identifiers")
	}
}

func TestComputeVisibility_DuplicatesCollapse(t *testing.T) {
	r := NewResolver(newFakeDirectory())
	ev := calendar.Event{
		Relationships: calendar.Relationships{
			AssignerID:     "alice",
			AssigneeID:     "alice",
			CreatedBy:      "alice",
			RelatedUserIDs: []string{"alice", "alice"},
			Attendees:      []string{"alice"},
		},
	}
	assert.Equal(t, []string{"user_alice"}, r.ComputeVisibility(context.Background(), ev))
}

func TestComputeVisibility_DirectoryFailureDropsAttendee(t *testing.T) {
	dir := newFakeDirectory()
	dir.failAll = true
	r := NewResolver(dir)

	ev := calendar.Event{
		Relationships: calendar.Relationships{
			Category:  "public",
			Attendees: []string{"carol@example.org"},
		},
	}
	got := r.ComputeVisibility(context.Background(), ev)
	assert.Equal(t, []string{"public"}, got, "email resolution failure degrades silently")
}

func TestResolveUserCalendars(t *testing.T) {
	dir := newFakeDirectory()
	dir.committees["alice"] = []string{"3", "9"}
	dir.board["alice"] = true
	r := NewResolver(dir)

	got, err := r.ResolveUserCalendars(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"board", "committee_3", "committee_9", "public", "user_alice"}, got)

	plain, err := r.ResolveUserCalendars(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"public", "user_bob"}, plain)
}

func TestResolveUserCalendars_DirectoryErrorPropagates(t *testing.T) {
	dir := newFakeDirectory()
	dir.failAll = true
	r := NewResolver(dir)

	_, err := r.ResolveUserCalendars(context.Background(), "alice")
	assert.Error(t, err)
}

func TestCanUserSeeEvent_BoardCategory(t *testing.T) {
	dir := newFakeDirectory()
	dir.board["chair"] = true
	r := NewResolver(dir)

	ev := calendar.Event{
		ID:            "ev1",
		Relationships: calendar.Relationships{Category: CalendarBoard},
	}

	visible, err := r.CanUserSeeEvent(context.Background(), "chair", ev)
	require.NoError(t, err)
	assert.True(t, visible, "board member sees board events")

	hidden, err := r.CanUserSeeEvent(context.Background(), "member", ev)
	require.NoError(t, err)
	assert.False(t, hidden, "non-board user with no other match sees nothing")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "carol@example.org", NormalizeEmail("  Carol@Example.ORG "))
	assert.Equal(t, "carol@example.org", NormalizeEmail("carol@example.org"))
}
