package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/orgkit/avail/internal/calendar"
	"github.com/orgkit/avail/internal/visibility"
)

// Memory is an in-process event store and directory. It backs the
// fixture-driven CLI and the test suites. Safe for concurrent use.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]User
	emailIndex map[string]string
	committees map[string][]string // user id -> active committee ids
	events     map[string]calendar.Event
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]User),
		emailIndex: make(map[string]string),
		committees: make(map[string][]string),
		events:     make(map[string]calendar.Event),
	}
}

// SaveUser upserts a directory entry.
func (m *Memory) SaveUser(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = visibility.NormalizeEmail(u.Email)
	if old, ok := m.users[u.ID]; ok && old.Email != "" {
		delete(m.emailIndex, old.Email)
	}
	m.users[u.ID] = u
	if u.Email != "" {
		m.emailIndex[u.Email] = u.ID
	}
}

// SetCommitteeMembership records (or removes) an active membership.
func (m *Memory) SetCommitteeMembership(userID, committeeID string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := m.committees[userID]
	filtered := current[:0]
	for _, id := range current {
		if id != committeeID {
			filtered = append(filtered, id)
		}
	}
	if active {
		filtered = append(filtered, committeeID)
	}
	sort.Strings(filtered)
	m.committees[userID] = filtered
}

// SaveEvent upserts an event with its caller-computed visibility
// cache. An empty id gets a generated one; the stored id is returned.
func (m *Memory) SaveEvent(ev calendar.Event) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	m.events[ev.ID] = ev
	return ev.ID
}

// FetchEventsByCalendarAndRange implements busy.EventStore with the
// same range semantics as the SQLite adapter: non-recurring events
// are interval-checked, recurring events anchor-checked only.
func (m *Memory) FetchEventsByCalendarAndRange(ctx context.Context, calendarIDs []string, from, to calendar.Time) ([]calendar.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []calendar.Event
	for _, ev := range m.events {
		if !visibility.Intersects(ev.VisibleOn, calendarIDs) {
			continue
		}
		if ev.Recurrence == "" {
			if ev.End.Before(from) || ev.Start.After(to) {
				continue
			}
		} else if ev.Start.After(to) {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// FetchUserCommittees implements visibility.Directory.
func (m *Memory) FetchUserCommittees(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	committees := m.committees[userID]
	out := make([]string, len(committees))
	copy(out, committees)
	return out, nil
}

// UserHasBoardCapability implements visibility.Directory.
func (m *Memory) UserHasBoardCapability(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[userID].Board, nil
}

// ResolveUserByEmail implements visibility.Directory.
func (m *Memory) ResolveUserByEmail(ctx context.Context, email string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emailIndex[visibility.NormalizeEmail(email)]
	return id, ok, nil
}

// DisplayName implements availability.Identity, falling back to the
// id for unknown or unnamed users.
func (m *Memory) DisplayName(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[userID]; ok && u.DisplayName != "" {
		return u.DisplayName, nil
	}
	return userID, nil
}
