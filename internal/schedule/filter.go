package schedule

import "github.com/orgkit/avail/internal/calendar"

// FilterAvailable drops every candidate that overlaps any busy
// period of any listed user. The check short-circuits per candidate
// on the first colliding period; accumulating every collision is the
// conflict detector's job, not the filter's.
func FilterAvailable(candidates []calendar.CandidateSlot, busy map[string][]calendar.BusyPeriod) []calendar.CandidateSlot {
	if len(busy) == 0 {
		return candidates
	}
	free := make([]calendar.CandidateSlot, 0, len(candidates))
	for _, slot := range candidates {
		if slotIsFree(slot, busy) {
			free = append(free, slot)
		}
	}
	return free
}

func slotIsFree(slot calendar.CandidateSlot, busy map[string][]calendar.BusyPeriod) bool {
	for _, periods := range busy {
		for _, p := range periods {
			if p.Overlaps(slot.Start, slot.End) {
				return false
			}
		}
	}
	return true
}
