package availability

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/orgkit/avail/internal/calendar"
	"github.com/orgkit/avail/internal/schedule"
	"github.com/orgkit/avail/internal/visibility"
)

// availabilityReport is the golden snapshot of one scheduling flow:
// a conflict check for a proposed window followed by ranked
// suggestions over the surrounding days.
type availabilityReport struct {
	Conflicts   []Conflict            `json:"conflicts"`
	Suggestions []schedule.RankedSlot `json:"suggestions"`
}

func TestSchedulingFlowGolden(t *testing.T) {
	mem := newTestStore()
	mem.SaveEvent(calendar.Event{
		ID:        "ev-budget",
		Start:     calendar.MustParseTime("2024-06-04T10:00"),
		End:       calendar.MustParseTime("2024-06-04T11:30"),
		Title:     "Budget Review",
		VisibleOn: []string{visibility.UserCalendar("alice")},
	})
	mem.SaveEvent(calendar.Event{
		ID:         "ev-standup",
		Start:      calendar.MustParseTime("2024-06-03T09:00"),
		End:        calendar.MustParseTime("2024-06-03T09:30"),
		Title:      "Daily standup",
		Recurrence: "FREQ=DAILY",
		VisibleOn:  []string{visibility.UserCalendar("bob")},
	})

	e := New(mem, mem,
		WithNow(fixedNow("2024-06-03T08:00")),
		WithTokenGenerator(NewFixedGenerator("tok-check", "tok-suggest")),
	)
	ctx := context.Background()

	conflicts, err := e.CheckConflicts(ctx,
		[]string{"alice", "bob"}, "2024-06-04T10:00", "2024-06-04T11:00", "")
	require.NoError(t, err)

	suggestions, err := e.SuggestMeetingTimes(ctx,
		[]string{"alice", "bob"}, 60, "2024-06-03", "2024-06-05", 5)
	require.NoError(t, err)

	report := availabilityReport{Conflicts: conflicts, Suggestions: suggestions}
	data, err := json.MarshalIndent(report, "", "  ")
	require.NoError(t, err)
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "scheduling_flow", data)
}
