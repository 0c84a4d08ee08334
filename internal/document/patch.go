package document

import (
	"github.com/shaqflair/timegrid/internal/domain"
)

// ItemPatch is a partial update to a schedule item. Nil fields are left
// untouched.
type ItemPatch struct {
	PhaseID      *string
	Type         *domain.ItemType
	Name         *string
	Start        *string
	End          *string
	Status       *domain.ItemStatus
	Notes        *string
	Dependencies *[]string
}

// ApplyItemPatch merges a patch into an item and returns the result.
// Becoming a milestone forces the end empty; leaving milestone defaults
// the end to the start so the item keeps a concrete interval. Dependency
// entries are kept as given apart from empties and self-references;
// duplicates are tolerated since edge emission treats the set
// idempotently.
func ApplyItemPatch(item domain.ScheduleItem, patch ItemPatch) domain.ScheduleItem {
	out := item
	wasMilestone := item.IsMilestone()

	if patch.PhaseID != nil {
		out.PhaseID = *patch.PhaseID
	}
	if patch.Type != nil {
		out.Type = *patch.Type
	}
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Start != nil {
		out.Start = *patch.Start
	}
	if patch.End != nil {
		out.End = *patch.End
	}
	if patch.Status != nil {
		out.Status = *patch.Status
	}
	if patch.Notes != nil {
		out.Notes = *patch.Notes
	}
	if patch.Dependencies != nil {
		deps := make([]string, 0, len(*patch.Dependencies))
		for _, d := range *patch.Dependencies {
			if d == "" || d == item.ID {
				continue
			}
			deps = append(deps, d)
		}
		out.Dependencies = deps
	}

	if out.IsMilestone() {
		out.End = ""
	} else if wasMilestone && out.End == "" {
		out.End = out.Start
	}

	return out
}
