package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierGrammar(t *testing.T) {
	assert.Equal(t, "user_42", UserCalendar("42"))
	assert.Equal(t, "committee_7", CommitteeCalendar("7"))

	id, ok := IsUserCalendar("user_42")
	assert.True(t, ok)
	assert.Equal(t, "42", id)

	cid, ok := IsCommitteeCalendar("committee_7")
	assert.True(t, ok)
	assert.Equal(t, "7", cid)

	_, ok = IsUserCalendar("committee_7")
	assert.False(t, ok)
	_, ok = IsCommitteeCalendar("board")
	assert.False(t, ok)
	_, ok = IsUserCalendar("user_")
	assert.False(t, ok, "bare prefix is not a valid identifier")
}

func TestIntersects(t *testing.T) {
	testCases := []struct {
		name string
		a, b []string
		want bool
	}{
		{"shared tag", []string{"user_1", "public"}, []string{"public"}, true},
		{"disjoint", []string{"user_1"}, []string{"user_2", "board"}, false},
		{"empty a", nil, []string{"public"}, false},
		{"empty b", []string{"public"}, nil, false},
		{"both empty", nil, nil, false},
		{"larger second", []string{"committee_3"}, []string{"a", "b", "c", "committee_3"}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Intersects(tc.a, tc.b))
			assert.Equal(t, tc.want, Intersects(tc.b, tc.a), "intersection is symmetric")
		})
	}
}
