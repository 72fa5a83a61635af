package visibility

import "strings"

// Bare calendar tags with engine-level meaning. Callers may introduce
// additional bare tags; the engine passes them through untouched.
const (
	CalendarBoard   = "board"
	CalendarPublic  = "public"
	CalendarGeneral = "general"
)

const (
	userPrefix      = "user_"
	committeePrefix = "committee_"
)

// UserCalendar returns the personal calendar identifier for a user id.
func UserCalendar(userID string) string {
	return userPrefix + userID
}

// CommitteeCalendar returns the group calendar identifier for a
// committee id.
func CommitteeCalendar(committeeID string) string {
	return committeePrefix + committeeID
}

// IsUserCalendar reports whether id has the personal shape and, if
// so, returns the user id.
func IsUserCalendar(id string) (string, bool) {
	if rest, ok := strings.CutPrefix(id, userPrefix); ok && rest != "" {
		return rest, true
	}
	return "", false
}

// IsCommitteeCalendar reports whether id has the group shape and, if
// so, returns the committee id.
func IsCommitteeCalendar(id string) (string, bool) {
	if rest, ok := strings.CutPrefix(id, committeePrefix); ok && rest != "" {
		return rest, true
	}
	return "", false
}

// Intersects reports whether two sorted-or-not identifier slices
// share at least one identifier.
func Intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
