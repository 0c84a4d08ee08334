package domain

// Phase is a named swimlane in a schedule document. Array order in the
// document is display order.
type Phase struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScheduleItem is a time-boxed entry on the timeline. Start and End stay
// ISO date strings in the model so an unparseable value remains visible
// for the user to fix instead of being silently dropped.
type ScheduleItem struct {
	ID           string     `json:"id"`
	PhaseID      string     `json:"phase_id"`
	Type         ItemType   `json:"type"`
	Name         string     `json:"name"`
	Start        string     `json:"start"`
	End          string     `json:"end,omitempty"`
	Status       ItemStatus `json:"status"`
	Notes        string     `json:"notes"`
	Dependencies []string   `json:"dependencies"`
}

// ScheduleDocument is the persisted schedule shape. AnchorDate is the
// Monday that begins week index 0.
type ScheduleDocument struct {
	Version    int            `json:"version"`
	Type       string         `json:"type"`
	AnchorDate string         `json:"anchor_date"`
	Phases     []Phase        `json:"phases"`
	Items      []ScheduleItem `json:"items"`
}

const (
	DocumentVersion = 1
	DocumentType    = "schedule"
)

// IsMilestone reports whether the item occupies a single instant.
func (it ScheduleItem) IsMilestone() bool {
	return it.Type == TypeMilestone
}

// EffectiveEnd returns the item's end date, defaulting to its start when
// empty. Milestones always resolve to their start day.
func (it ScheduleItem) EffectiveEnd() string {
	if it.IsMilestone() || it.End == "" {
		return it.Start
	}
	return it.End
}

// Phase returns the phase with the given id, or nil.
func (d ScheduleDocument) Phase(id string) *Phase {
	for i := range d.Phases {
		if d.Phases[i].ID == id {
			return &d.Phases[i]
		}
	}
	return nil
}

// Item returns the item with the given id, or nil.
func (d ScheduleDocument) Item(id string) *ScheduleItem {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i]
		}
	}
	return nil
}

// ItemsByPhase returns the items belonging to a phase in document order.
func (d ScheduleDocument) ItemsByPhase(phaseID string) []ScheduleItem {
	var out []ScheduleItem
	for _, it := range d.Items {
		if it.PhaseID == phaseID {
			out = append(out, it)
		}
	}
	return out
}

// Clone returns a deep copy. Mutation operations clone first so the
// prior document value is never changed in place.
func (d ScheduleDocument) Clone() ScheduleDocument {
	out := d
	out.Phases = make([]Phase, len(d.Phases))
	copy(out.Phases, d.Phases)
	out.Items = make([]ScheduleItem, len(d.Items))
	for i, it := range d.Items {
		if it.Dependencies != nil {
			deps := make([]string, len(it.Dependencies))
			copy(deps, it.Dependencies)
			it.Dependencies = deps
		}
		out.Items[i] = it
	}
	return out
}
