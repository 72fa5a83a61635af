package calendar

import (
	"fmt"
	"time"
)

// Layout is the canonical wall-clock form used for output.
const Layout = "2006-01-02T15:04:05"

// parseLayouts are the accepted input forms, tried in order.
// Callers may pass full timestamps, minute-granularity values, or
// bare dates (midnight).
var parseLayouts = []string{
	Layout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time is a civil wall-clock timestamp with no timezone semantics.
// It wraps time.Time for arithmetic but parses and renders as a plain
// local-wall string. Comparisons between Times from different callers'
// timezones are meaningless; that is the caller's contract to keep.
type Time struct {
	t time.Time
}

// ParseTime parses a wall-clock string in one of the accepted layouts.
func ParseTime(s string) (Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time{t: t}, nil
		}
	}
	return Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// MustParseTime is ParseTime that panics on error. Test fixtures only.
func MustParseTime(s string) Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromStd wraps a time.Time as a wall-clock Time.
func FromStd(t time.Time) Time {
	return Time{t: t}
}

// Std returns the underlying time.Time.
func (t Time) Std() time.Time { return t.t }

// String renders the canonical layout.
func (t Time) String() string { return t.t.Format(Layout) }

// IsZero reports whether t is the zero Time.
func (t Time) IsZero() bool { return t.t.IsZero() }

// Before reports whether t is strictly before u.
func (t Time) Before(u Time) bool { return t.t.Before(u.t) }

// After reports whether t is strictly after u.
func (t Time) After(u Time) bool { return t.t.After(u.t) }

// Equal reports whether t and u are the same instant.
func (t Time) Equal(u Time) bool { return t.t.Equal(u.t) }

// Add returns t shifted by d.
func (t Time) Add(d time.Duration) Time { return Time{t: t.t.Add(d)} }

// Sub returns the duration t-u.
func (t Time) Sub(u Time) time.Duration { return t.t.Sub(u.t) }

// Weekday returns the day of week.
func (t Time) Weekday() time.Weekday { return t.t.Weekday() }

// Hour returns the hour of day, 0-23.
func (t Time) Hour() int { return t.t.Hour() }

// Midnight returns t truncated to its own civil date.
func (t Time) Midnight() Time {
	y, m, d := t.t.Date()
	return Time{t: time.Date(y, m, d, 0, 0, 0, 0, t.t.Location())}
}

// NextDay returns midnight of the civil day after t.
func (t Time) NextDay() Time {
	return Time{t: t.Midnight().t.AddDate(0, 0, 1)}
}

// MarshalJSON renders the canonical wall-clock string.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts any of the input layouts.
func (t *Time) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", s)
	}
	parsed, err := ParseTime(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML renders the canonical wall-clock string.
func (t Time) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML accepts any of the input layouts.
func (t *Time) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ClockTime is a time of day expressed as minutes since midnight.
// Business-hours tables use it for open/close boundaries.
type ClockTime int

// ParseClock parses "HH:MM" into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return ClockTime(h*60 + m), nil
}

// MustParseClock is ParseClock that panics on error.
func MustParseClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Clock builds a ClockTime from hours and minutes.
func Clock(hour, min int) ClockTime { return ClockTime(hour*60 + min) }

// String renders "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On returns the instant at clock time c on the civil day of t.
func (c ClockTime) On(t Time) Time {
	return t.Midnight().Add(time.Duration(c) * time.Minute)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching edges do not overlap. A
// zero-length interval overlaps a window that strictly contains its
// instant.
func Overlaps(aStart, aEnd, bStart, bEnd Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DaysBetween returns the civil-date floor difference to - from in
// whole days. Both values are truncated to their own wall-clock
// midnight first; no timezone normalization is applied.
func DaysBetween(from, to Time) int {
	return int(to.Midnight().Sub(from.Midnight()).Hours() / 24)
}
