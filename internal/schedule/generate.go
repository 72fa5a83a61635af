package schedule

import (
	"time"

	"github.com/orgkit/avail/internal/calendar"
)

// DefaultStrideMinutes is the candidate start spacing when the
// caller does not override it.
const DefaultStrideMinutes = 30

// GenerateCandidateSlots enumerates fixed-length candidate windows
// over every calendar day in [from, to] whose weekday has a
// business-hours entry. The cursor walks from the day's open time in
// steps of strideMinutes and emits (cursor, cursor+duration) while
// cursor+duration <= close.
//
// Overlapping candidates are expected when stride < duration;
// deduplication and ranking are the caller's concern. Output is in
// chronological order, which the ranker relies on for tie-breaks.
func GenerateCandidateSlots(from, to calendar.Time, durationMinutes int, hours WeekHours, strideMinutes int) []calendar.CandidateSlot {
	if durationMinutes <= 0 || len(hours) == 0 || to.Before(from) {
		return nil
	}
	if strideMinutes <= 0 {
		strideMinutes = DefaultStrideMinutes
	}

	duration := time.Duration(durationMinutes) * time.Minute
	stride := time.Duration(strideMinutes) * time.Minute

	var slots []calendar.CandidateSlot
	for day := from.Midnight(); !day.After(to); day = day.NextDay() {
		window, ok := hours[day.Weekday()]
		if !ok {
			continue
		}
		closeAt := window.Close.On(day)
		for cursor := window.Open.On(day); !cursor.Add(duration).After(closeAt); cursor = cursor.Add(stride) {
			slots = append(slots, calendar.CandidateSlot{
				Start: cursor,
				End:   cursor.Add(duration),
			})
		}
	}
	return slots
}
