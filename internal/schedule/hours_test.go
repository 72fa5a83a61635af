package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgkit/avail/internal/calendar"
)

func TestDefaultWeekHours(t *testing.T) {
	hours := DefaultWeekHours()

	assert.Len(t, hours, 5)
	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		window, ok := hours[day]
		require.True(t, ok, "%s must be open", day)
		assert.Equal(t, calendar.Clock(9, 0), window.Open)
		assert.Equal(t, calendar.Clock(17, 0), window.Close)
	}
	_, sat := hours[time.Saturday]
	_, sun := hours[time.Sunday]
	assert.False(t, sat)
	assert.False(t, sun)
}

func TestParseWeekHours(t *testing.T) {
	hours, err := ParseWeekHours(map[string][2]string{
		"monday":   {"08:30", "12:00"},
		"saturday": {"10:00", "14:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, DayHours{Open: calendar.Clock(8, 30), Close: calendar.Clock(12, 0)}, hours[time.Monday])
	assert.Equal(t, DayHours{Open: calendar.Clock(10, 0), Close: calendar.Clock(14, 0)}, hours[time.Saturday])
	assert.Len(t, hours, 2)
}

func TestParseWeekHours_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		days map[string][2]string
	}{
		{"unknown day", map[string][2]string{"blursday": {"09:00", "17:00"}}},
		{"bad open", map[string][2]string{"monday": {"late", "17:00"}}},
		{"bad close", map[string][2]string{"monday": {"09:00", "late"}}},
		{"close before open", map[string][2]string{"monday": {"17:00", "09:00"}}},
		{"close equals open", map[string][2]string{"monday": {"09:00", "09:00"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseWeekHours(tc.days)
			assert.Error(t, err)
		})
	}
}
