package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/orgkit/avail/internal/availability"
	"github.com/orgkit/avail/internal/calendar"
	"github.com/orgkit/avail/internal/schedule"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderConflicts(w io.Writer, format string, conflicts []availability.Conflict) error {
	if format == "json" {
		return writeJSON(w, conflicts)
	}
	if len(conflicts) == 0 {
		fmt.Fprintln(w, "no conflicts")
		return nil
	}
	for _, c := range conflicts {
		fmt.Fprintf(w, "%s (%s):\n", c.DisplayName, c.UserID)
		for _, ev := range c.Events {
			title := ev.Title
			if title == "" {
				title = ev.ID
			}
			fmt.Fprintf(w, "  %s - %s  %s\n", ev.Start, ev.End, title)
		}
	}
	return nil
}

func renderSlots(w io.Writer, format string, slots []calendar.CandidateSlot) error {
	if format == "json" {
		return writeJSON(w, slots)
	}
	if len(slots) == 0 {
		fmt.Fprintln(w, "no available slots")
		return nil
	}
	for _, s := range slots {
		fmt.Fprintf(w, "%s - %s\n", s.Start, s.End)
	}
	return nil
}

func renderRanked(w io.Writer, format string, ranked []schedule.RankedSlot) error {
	if format == "json" {
		return writeJSON(w, ranked)
	}
	if len(ranked) == 0 {
		fmt.Fprintln(w, "no suggestions")
		return nil
	}
	for _, r := range ranked {
		fmt.Fprintf(w, "%s - %s  score=%d\n", r.Slot.Start, r.Slot.End, r.Score)
	}
	return nil
}
