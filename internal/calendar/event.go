package calendar

// Relationships is the optional-field bag that drives visibility.
// Every field's absence means "no contribution to the visibility
// set", never an error.
type Relationships struct {
	// Category is a calendar category tag: "board", "public",
	// "general", a caller-defined tag, or a pre-shaped
	// "committee_<id>" value which passes through verbatim.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	SourceCommitteeID string `json:"source_committee,omitempty" yaml:"source_committee,omitempty"`
	TargetCommitteeID string `json:"target_committee,omitempty" yaml:"target_committee,omitempty"`

	AssignerID string `json:"assigner,omitempty" yaml:"assigner,omitempty"`
	AssigneeID string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	CreatedBy  string `json:"created_by,omitempty" yaml:"created_by,omitempty"`

	// RelatedUserIDs are user ids the event should appear for.
	RelatedUserIDs []string `json:"related_users,omitempty" yaml:"related_users,omitempty"`

	// Attendees holds raw user ids or email addresses, mixed.
	// Emails are resolved through the directory at visibility time;
	// unresolvable ones are dropped silently.
	Attendees []string `json:"attendees,omitempty" yaml:"attendees,omitempty"`
}

// Empty reports whether no relationship field is populated.
func (r Relationships) Empty() bool {
	return r.Category == "" &&
		r.SourceCommitteeID == "" &&
		r.TargetCommitteeID == "" &&
		r.AssignerID == "" &&
		r.AssigneeID == "" &&
		r.CreatedBy == "" &&
		len(r.RelatedUserIDs) == 0 &&
		len(r.Attendees) == 0
}

// Event is the engine's projection of a stored calendar event.
// Immutable for this subsystem: components read it, never write it.
//
// All-day events use Start == End at midnight granularity by caller
// convention. Start <= End always holds.
type Event struct {
	ID string `json:"id" yaml:"id"`

	// EntityType and EntityID name the originating domain object
	// (task, meeting, shift). Carried through, never interpreted.
	EntityType string `json:"entity_type,omitempty" yaml:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty" yaml:"entity_id,omitempty"`

	Start Time `json:"start" yaml:"start"`
	End   Time `json:"end" yaml:"end"`

	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Recurrence is an optional RRULE string. A recurring event's
	// Start/End describe the first occurrence; the busy-period
	// loader expands occurrences within the queried range.
	Recurrence string `json:"rrule,omitempty" yaml:"rrule,omitempty"`

	Relationships Relationships `json:"relationships,omitempty" yaml:"relationships,omitempty"`

	// VisibleOn is the cached, sorted set of calendar identifiers
	// this event appears on, derived by the visibility resolver.
	// Persisting it is the caller's job, not the engine's.
	VisibleOn []string `json:"visible_on,omitempty" yaml:"visible_on,omitempty"`
}

// Overlaps reports whether the event's interval intersects the
// half-open window [start, end).
func (e Event) Overlaps(start, end Time) bool {
	return Overlaps(e.Start, e.End, start, end)
}

// BusyPeriod is one concrete busy interval derived from an event
// occurrence. Derived, never persisted.
type BusyPeriod struct {
	Start Time `json:"start"`
	End   Time `json:"end"`

	// SourceEventID is the event this period came from. Recurring
	// events contribute many periods with the same source.
	SourceEventID string `json:"source_event_id"`
}

// Overlaps reports whether the period intersects the half-open
// window [start, end).
func (p BusyPeriod) Overlaps(start, end Time) bool {
	return Overlaps(p.Start, p.End, start, end)
}

// CandidateSlot is one fixed-length window emitted by the slot
// generator. Score has no identity here; ranking wraps slots in
// schedule.RankedSlot within a single orchestration call.
type CandidateSlot struct {
	Start Time `json:"start"`
	End   Time `json:"end"`
}

// Overlaps reports whether the slot intersects the half-open
// window [start, end).
func (s CandidateSlot) Overlaps(start, end Time) bool {
	return Overlaps(s.Start, s.End, start, end)
}
