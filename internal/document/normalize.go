package document

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shaqflair/timegrid/internal/domain"
)

// Entry caps. Truncation is silent and keeps the first N entries in
// input order.
const (
	MaxPhases = 200
	MaxItems  = 4000
)

// Normalize coerces arbitrary or legacy JSON into a well-formed schedule
// document. Missing ids are assigned, orphaned items are dropped, the
// anchor date is rounded to its Monday, and entry counts are capped.
// Empty or malformed input falls back to the seeded default document;
// no error surfaces to the caller.
//
// Normalize is idempotent over its own output: for any doc it produces,
// Normalize(Serialize(doc)) == doc.
func Normalize(raw []byte) domain.ScheduleDocument {
	var root map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &root) != nil || root == nil {
		return Seed(time.Now().UTC())
	}

	doc := domain.ScheduleDocument{
		Version: domain.DocumentVersion,
		Type:    domain.DocumentType,
	}

	doc.AnchorDate = normalizeAnchor(asString(root["anchor_date"]))
	doc.Phases = normalizePhases(asList(root["phases"]))

	phaseIDs := make(map[string]bool, len(doc.Phases))
	for _, p := range doc.Phases {
		phaseIDs[p.ID] = true
	}
	doc.Items = normalizeItems(asList(root["items"]), phaseIDs)

	// Dependencies may only reference items that survived normalization.
	itemIDs := make(map[string]bool, len(doc.Items))
	for _, it := range doc.Items {
		itemIDs[it.ID] = true
	}
	for i := range doc.Items {
		doc.Items[i].Dependencies = filterDeps(doc.Items[i].Dependencies, doc.Items[i].ID, itemIDs)
	}

	return doc
}

func normalizeAnchor(s string) string {
	t := domain.ParseISODate(s)
	if t == nil {
		now := time.Now().UTC()
		t = &now
	}
	return domain.FormatISODate(domain.StartOfWeekMonday(*t))
}

func normalizePhases(raw []any) []domain.Phase {
	phases := make([]domain.Phase, 0, len(raw))
	seen := make(map[string]bool)
	for _, entry := range raw {
		if len(phases) >= MaxPhases {
			break
		}
		m := asMap(entry)
		if m == nil {
			continue
		}
		id := asString(m["id"])
		if id == "" || seen[id] {
			id = uuid.New().String()
		}
		seen[id] = true
		phases = append(phases, domain.Phase{
			ID:   id,
			Name: asString(m["name"]),
		})
	}
	return phases
}

func normalizeItems(raw []any, phaseIDs map[string]bool) []domain.ScheduleItem {
	items := make([]domain.ScheduleItem, 0, len(raw))
	seen := make(map[string]bool)
	for _, entry := range raw {
		if len(items) >= MaxItems {
			break
		}
		m := asMap(entry)
		if m == nil {
			continue
		}

		phaseID := asString(m["phase_id"])
		if !phaseIDs[phaseID] {
			// Orphaned item: its phase no longer exists.
			continue
		}

		id := asString(m["id"])
		if id == "" || seen[id] {
			id = uuid.New().String()
		}
		seen[id] = true

		itemType := asString(m["type"])
		if !domain.ValidItemTypes[itemType] {
			itemType = string(domain.TypeTask)
		}
		status := asString(m["status"])
		if !domain.ValidItemStatuses[status] {
			status = string(domain.StatusOnTrack)
		}

		it := domain.ScheduleItem{
			ID:           id,
			PhaseID:      phaseID,
			Type:         domain.ItemType(itemType),
			Name:         asString(m["name"]),
			Start:        asString(m["start"]),
			End:          asString(m["end"]),
			Status:       domain.ItemStatus(status),
			Notes:        asString(m["notes"]),
			Dependencies: asStringList(m["dependencies"]),
		}
		if it.IsMilestone() {
			it.End = ""
		}
		items = append(items, it)
	}
	return items
}

func filterDeps(deps []string, selfID string, itemIDs map[string]bool) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		if d == "" || d == selfID || !itemIDs[d] {
			continue
		}
		// Duplicates are tolerated; edge emission treats the set
		// idempotently.
		out = append(out, d)
	}
	return out
}

// asString coerces scalars to strings; non-scalar values collapse to "".
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func asStringList(v any) []string {
	raw := asList(v)
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s := asString(entry); s != "" {
			out = append(out, s)
		}
	}
	return out
}
