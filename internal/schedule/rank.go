package schedule

import (
	"sort"
	"time"

	"github.com/orgkit/avail/internal/calendar"
)

// BaseScore is every slot's starting score before bonuses.
const BaseScore = 50

// DefaultMaxResults bounds a suggestion response when the caller
// does not say otherwise.
const DefaultMaxResults = 5

// RankedSlot pairs a candidate with its score for one orchestration
// call. Scores have no persisted identity.
type RankedSlot struct {
	Slot  calendar.CandidateSlot `json:"slot"`
	Score int                    `json:"score"`
}

// Adjuster is an optional post-processing hook applied after the
// base score, e.g. per-organization preference weighting. The base
// algorithm itself never changes.
type Adjuster func(slot calendar.CandidateSlot, base int) int

// ScoreSlot computes the base heuristic score for a slot: 50 plus
// independent, summed bonuses for hour of day, day of week, and
// proximity to now.
//
// Proximity uses civil-date floor difference with no timezone
// normalization; a slot earlier than now lands in the nearest bucket.
func ScoreSlot(slot calendar.CandidateSlot, now calendar.Time) int {
	score := BaseScore

	switch hour := slot.Start.Hour(); {
	case hour == 10 || hour == 11:
		score += 20
	case hour == 14 || hour == 15:
		score += 15
	case hour >= 9 && hour <= 16:
		score += 10
	}

	switch slot.Start.Weekday() {
	case time.Tuesday, time.Wednesday, time.Thursday:
		score += 15
	case time.Monday, time.Friday:
		score += 5
	}

	switch days := calendar.DaysBetween(now, slot.Start); {
	case days <= 3:
		score += 10
	case days <= 7:
		score += 5
	}

	return score
}

// RankAndTruncate scores every slot, stable-sorts descending by
// score, and returns the first maxResults. Ties keep the input
// order, which the generator guarantees is chronological, so equal
// scores resolve to the earlier slot. adjust may be nil.
func RankAndTruncate(slots []calendar.CandidateSlot, now calendar.Time, maxResults int, adjust Adjuster) []RankedSlot {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ranked := make([]RankedSlot, len(slots))
	for i, slot := range slots {
		score := ScoreSlot(slot, now)
		if adjust != nil {
			score = adjust(slot, score)
		}
		ranked[i] = RankedSlot{Slot: slot, Score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}
