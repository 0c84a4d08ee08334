package document

import (
	"github.com/google/uuid"
	"github.com/shaqflair/timegrid/internal/domain"
)

// Every mutation is a pure function of (prior document, arguments) and
// returns a fresh document; the input value is never changed in place.
// The surrounding editor session owns the single current value.

// AddPhase appends a phase. At the phase cap the document is returned
// unchanged (silent truncation policy).
func AddPhase(doc domain.ScheduleDocument, name string) (domain.ScheduleDocument, *domain.Phase) {
	if len(doc.Phases) >= MaxPhases {
		return doc, nil
	}
	next := doc.Clone()
	phase := domain.Phase{ID: uuid.New().String(), Name: name}
	next.Phases = append(next.Phases, phase)
	return next, &phase
}

// RemovePhase deletes a phase, cascades deletion to its items, and
// prunes the deleted items from every remaining dependency list.
func RemovePhase(doc domain.ScheduleDocument, phaseID string) domain.ScheduleDocument {
	next := doc.Clone()

	removed := make(map[string]bool)
	kept := next.Items[:0]
	for _, it := range next.Items {
		if it.PhaseID == phaseID {
			removed[it.ID] = true
			continue
		}
		kept = append(kept, it)
	}
	next.Items = kept

	phases := next.Phases[:0]
	for _, p := range next.Phases {
		if p.ID != phaseID {
			phases = append(phases, p)
		}
	}
	next.Phases = phases

	pruneDependencies(next.Items, removed)
	return next
}

// AddItem appends an item, assigning an id when empty and enforcing the
// milestone end invariant. At the item cap the document is returned
// unchanged.
func AddItem(doc domain.ScheduleDocument, item domain.ScheduleItem) (domain.ScheduleDocument, *domain.ScheduleItem) {
	if len(doc.Items) >= MaxItems {
		return doc, nil
	}
	next := doc.Clone()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if !domain.ValidItemTypes[string(item.Type)] {
		item.Type = domain.TypeTask
	}
	if !domain.ValidItemStatuses[string(item.Status)] {
		item.Status = domain.StatusOnTrack
	}
	if item.IsMilestone() {
		item.End = ""
	}
	deps := make([]string, 0, len(item.Dependencies))
	for _, d := range item.Dependencies {
		if d != "" && d != item.ID {
			deps = append(deps, d)
		}
	}
	item.Dependencies = deps

	next.Items = append(next.Items, item)
	return next, &item
}

// RemoveItem deletes an item and prunes it from every other item's
// dependency list.
func RemoveItem(doc domain.ScheduleDocument, itemID string) domain.ScheduleDocument {
	next := doc.Clone()
	kept := next.Items[:0]
	for _, it := range next.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	next.Items = kept
	pruneDependencies(next.Items, map[string]bool{itemID: true})
	return next
}

// PatchItem merges a partial update into one item. The second return is
// false when the item does not exist.
func PatchItem(doc domain.ScheduleDocument, itemID string, patch ItemPatch) (domain.ScheduleDocument, bool) {
	next := doc.Clone()
	for i := range next.Items {
		if next.Items[i].ID == itemID {
			next.Items[i] = ApplyItemPatch(next.Items[i], patch)
			return next, true
		}
	}
	return doc, false
}

// ShiftItemWeeks moves an item by whole weeks. Unparseable dates pass
// through unchanged.
func ShiftItemWeeks(doc domain.ScheduleDocument, itemID string, weeks int) domain.ScheduleDocument {
	next := doc.Clone()
	days := weeks * 7
	for i := range next.Items {
		if next.Items[i].ID != itemID {
			continue
		}
		next.Items[i].Start = domain.ShiftISO(next.Items[i].Start, days)
		if next.Items[i].End != "" {
			next.Items[i].End = domain.ShiftISO(next.Items[i].End, days)
		}
		break
	}
	return next
}

// DuplicateItem inserts a copy of an item directly after the original.
// The copy gets a fresh id and keeps the original's dependencies; at
// the item cap the document is returned unchanged.
func DuplicateItem(doc domain.ScheduleDocument, itemID string) (domain.ScheduleDocument, *domain.ScheduleItem) {
	if len(doc.Items) >= MaxItems {
		return doc, nil
	}
	next := doc.Clone()
	for i := range next.Items {
		if next.Items[i].ID != itemID {
			continue
		}
		dup := next.Items[i]
		dup.ID = uuid.New().String()
		dup.Name = dup.Name + " (copy)"
		deps := make([]string, len(next.Items[i].Dependencies))
		copy(deps, next.Items[i].Dependencies)
		dup.Dependencies = deps

		next.Items = append(next.Items, domain.ScheduleItem{})
		copy(next.Items[i+2:], next.Items[i+1:])
		next.Items[i+1] = dup
		return next, &dup
	}
	return doc, nil
}

func pruneDependencies(items []domain.ScheduleItem, removed map[string]bool) {
	for i := range items {
		deps := items[i].Dependencies[:0]
		for _, d := range items[i].Dependencies {
			if !removed[d] {
				deps = append(deps, d)
			}
		}
		items[i].Dependencies = deps
	}
}
