package cli

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/orgkit/avail/internal/calendar"
	"github.com/orgkit/avail/internal/schedule"
	"github.com/orgkit/avail/internal/store"
	"github.com/orgkit/avail/internal/visibility"
)

//go:embed schema.cue
var schemaCUE string

// fixtureUser mirrors one users[] entry in the calendar file.
type fixtureUser struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Email      string   `yaml:"email"`
	Board      bool     `yaml:"board"`
	Committees []string `yaml:"committees"`
}

type fixtureHours struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// fixture is the decoded calendar file.
type fixture struct {
	Users         []fixtureUser           `yaml:"users"`
	Events        []calendar.Event        `yaml:"events"`
	BusinessHours map[string]fixtureHours `yaml:"business_hours"`
}

// LoadCalendarFile validates and decodes a calendar file, builds an
// in-memory store from it (computing and caching each event's
// visibility set), and returns the store plus the file's
// business-hours table (nil when absent).
func LoadCalendarFile(ctx context.Context, path string) (*store.Memory, schedule.WeekHours, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read calendar file: %w", err)
	}
	if err := validateCalendarFile(path, data); err != nil {
		return nil, nil, err
	}

	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, nil, fmt.Errorf("decode calendar file: %w", err)
	}

	mem := store.NewMemory()
	for _, u := range fx.Users {
		mem.SaveUser(store.User{
			ID:          u.ID,
			DisplayName: u.Name,
			Email:       u.Email,
			Board:       u.Board,
		})
		for _, committee := range u.Committees {
			mem.SetCommitteeMembership(u.ID, committee, true)
		}
	}

	// Users first: attendee email resolution during visibility
	// computation needs the directory populated.
	resolver := visibility.NewResolver(mem)
	for _, ev := range fx.Events {
		if ev.End.Before(ev.Start) {
			return nil, nil, fmt.Errorf("event %q: end before start", ev.ID)
		}
		ev.VisibleOn = resolver.ComputeVisibility(ctx, ev)
		mem.SaveEvent(ev)
	}

	var hours schedule.WeekHours
	if len(fx.BusinessHours) > 0 {
		days := make(map[string][2]string, len(fx.BusinessHours))
		for name, h := range fx.BusinessHours {
			days[name] = [2]string{h.Open, h.Close}
		}
		hours, err = schedule.ParseWeekHours(days)
		if err != nil {
			return nil, nil, fmt.Errorf("business_hours: %w", err)
		}
	}

	return mem, hours, nil
}

// validateCalendarFile checks the YAML document against the embedded
// CUE schema before any decoding happens.
func validateCalendarFile(path string, data []byte) error {
	cctx := cuecontext.New()

	schema := cctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("internal: compile calendar schema: %w", err)
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return fmt.Errorf("parse calendar file: %w", err)
	}
	doc := cctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("parse calendar file: %w", err)
	}

	// Concrete validation makes missing required fields an error, not
	// an incomplete value.
	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("calendar file does not match schema: %w", err)
	}
	return nil
}
