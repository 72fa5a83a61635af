package schedule

import (
	"fmt"
	"time"

	"github.com/orgkit/avail/internal/calendar"
)

// DayHours is one weekday's open window. Close must be after Open.
type DayHours struct {
	Open  calendar.ClockTime
	Close calendar.ClockTime
}

// WeekHours maps weekdays to their open window. Days absent from the
// map contribute no slots at all.
type WeekHours map[time.Weekday]DayHours

// DefaultWeekHours is the table used when a caller supplies none:
// Monday-Friday 09:00-17:00, no weekend entries.
func DefaultWeekHours() WeekHours {
	day := DayHours{Open: calendar.Clock(9, 0), Close: calendar.Clock(17, 0)}
	return WeekHours{
		time.Monday:    day,
		time.Tuesday:   day,
		time.Wednesday: day,
		time.Thursday:  day,
		time.Friday:    day,
	}
}

// weekdayNames maps the lowercase day names used in configuration
// files to time.Weekday values.
var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekHours builds a WeekHours from day-name keyed open/close
// strings, e.g. {"monday": ["09:00", "17:00"]}.
func ParseWeekHours(days map[string][2]string) (WeekHours, error) {
	hours := make(WeekHours, len(days))
	for name, window := range days {
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		open, err := calendar.ParseClock(window[0])
		if err != nil {
			return nil, fmt.Errorf("%s open: %w", name, err)
		}
		close, err := calendar.ParseClock(window[1])
		if err != nil {
			return nil, fmt.Errorf("%s close: %w", name, err)
		}
		if close <= open {
			return nil, fmt.Errorf("%s: close %s not after open %s", name, close, open)
		}
		hours[weekday] = DayHours{Open: open, Close: close}
	}
	return hours, nil
}
