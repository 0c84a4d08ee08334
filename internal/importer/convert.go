package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shaqflair/timegrid/internal/document"
	"github.com/shaqflair/timegrid/internal/domain"
)

// Result reports the outcome of an append import. Changed is false for
// a no-op (empty or degenerate WBS); the import never partially applies.
type Result struct {
	Changed           bool
	Message           string
	PhasesAdded       int
	ItemsAdded        int
	DependenciesAdded int
}

// Append merges a WBS into an existing schedule document and returns the
// next document value. Phases come from each leaf's top-level ancestor,
// deduplicated by name in first-seen order; existing phases with a
// matching name are reused. Leaf rows (level > 0, no strictly deeper
// row immediately following) become task items starting at the project
// start date; a WBS holding only top-level rows degenerates to one
// milestone per phase. Imported item ids keep their row id unless it
// collides with an existing item id or an earlier row in the same WBS,
// in which case a fresh id is used consistently across the imported
// dependency set.
func Append(doc domain.ScheduleDocument, rows []Row, projectStart, projectFinish string) (domain.ScheduleDocument, Result) {
	if len(rows) == 0 {
		return doc, Result{Message: "WBS contains no rows; nothing to import"}
	}

	start := domain.ParseISODate(projectStart)
	if start == nil {
		start = domain.ParseISODate(doc.AnchorDate)
	}
	if start == nil {
		now := time.Now().UTC()
		m := domain.StartOfWeekMonday(now)
		start = &m
	}
	startISO := domain.FormatISODate(*start)
	finish := domain.ParseISODate(projectFinish)

	ancestors := topAncestors(rows)
	leaves := leafRows(rows)

	// Phase names in first-seen order: from leaves when present,
	// otherwise from the top-level rows themselves.
	var phaseOrder []string
	seenPhase := make(map[string]bool)
	addPhaseName := func(name string) {
		if name != "" && !seenPhase[name] {
			seenPhase[name] = true
			phaseOrder = append(phaseOrder, name)
		}
	}
	if len(leaves) > 0 {
		for _, i := range leaves {
			addPhaseName(ancestors[i].Name)
		}
	} else {
		for _, r := range rows {
			if r.Level == 0 {
				addPhaseName(r.Name)
			}
		}
	}
	if len(phaseOrder) == 0 {
		return doc, Result{Message: "WBS has no importable entries; nothing to import"}
	}

	next := doc.Clone()
	res := Result{}

	phaseIDs := make(map[string]string)
	for _, p := range next.Phases {
		if _, ok := phaseIDs[p.Name]; !ok {
			phaseIDs[p.Name] = p.ID
		}
	}
	for _, name := range phaseOrder {
		if _, ok := phaseIDs[name]; ok {
			continue
		}
		if len(next.Phases) >= document.MaxPhases {
			break
		}
		phase := domain.Phase{ID: uuid.New().String(), Name: name}
		next.Phases = append(next.Phases, phase)
		phaseIDs[name] = phase.ID
		res.PhasesAdded++
	}

	if len(leaves) == 0 {
		// Degenerate WBS: one milestone per phase, anchored at the
		// project start.
		for _, name := range phaseOrder {
			phaseID, ok := phaseIDs[name]
			if !ok || len(next.Items) >= document.MaxItems {
				continue
			}
			next.Items = append(next.Items, domain.ScheduleItem{
				ID:           uuid.New().String(),
				PhaseID:      phaseID,
				Type:         domain.TypeMilestone,
				Name:         name,
				Start:        startISO,
				Status:       domain.StatusOnTrack,
				Dependencies: []string{},
			})
			res.ItemsAdded++
		}
		if res.PhasesAdded == 0 && res.ItemsAdded == 0 {
			return doc, Result{Message: "nothing to import"}
		}
		res.Changed = true
		res.Message = fmt.Sprintf("WBS has no leaf rows; imported %d phase milestones", res.ItemsAdded)
		return next, res
	}

	// Build the id remap before inserting anything so imported
	// dependencies resolve consistently. Ids are assigned per leaf row,
	// not per row id: duplicate row ids each get their own fresh id, and
	// predecessor references resolve to the first occurrence.
	taken := make(map[string]bool, len(next.Items))
	for _, it := range next.Items {
		taken[it.ID] = true
	}
	leafIDs := make(map[int]string, len(leaves))
	firstID := make(map[string]string, len(leaves))
	for _, i := range leaves {
		id := rows[i].ID
		if id == "" || taken[id] {
			id = uuid.New().String()
		}
		taken[id] = true
		leafIDs[i] = id
		if _, ok := firstID[rows[i].ID]; !ok {
			firstID[rows[i].ID] = id
		}
	}

	// Decide up front which leaves fit under the item cap, so a
	// dependency whose target falls past the cap is never emitted and
	// the saved payload holds no dangling reference.
	slots := document.MaxItems - len(next.Items)
	willInsert := make(map[string]bool, len(leaves))
	for _, i := range leaves {
		if slots <= 0 {
			break
		}
		if _, ok := phaseIDs[ancestors[i].Name]; !ok {
			continue
		}
		willInsert[leafIDs[i]] = true
		slots--
	}

	for _, i := range leaves {
		if !willInsert[leafIDs[i]] {
			continue
		}
		row := rows[i]
		phaseID := phaseIDs[ancestors[i].Name]

		end := startISO
		if due := domain.ParseISODate(row.DueDate); due != nil {
			if due.Before(*start) {
				end = startISO
			} else if finish != nil && due.After(*finish) {
				end = domain.FormatISODate(*finish)
			} else {
				end = domain.FormatISODate(*due)
			}
		}

		deps := []string{}
		if row.Predecessor != "" {
			if target, ok := firstID[row.Predecessor]; ok && willInsert[target] && target != leafIDs[i] {
				deps = append(deps, target)
				res.DependenciesAdded++
			}
		}

		next.Items = append(next.Items, domain.ScheduleItem{
			ID:           leafIDs[i],
			PhaseID:      phaseID,
			Type:         domain.TypeTask,
			Name:         row.Name,
			Start:        startISO,
			End:          end,
			Status:       rowStatus(row.Status),
			Notes:        row.Description,
			Dependencies: deps,
		})
		res.ItemsAdded++
	}

	if res.PhasesAdded == 0 && res.ItemsAdded == 0 {
		return doc, Result{Message: "nothing to import"}
	}
	res.Changed = true
	res.Message = fmt.Sprintf("imported %d items into %d phases", res.ItemsAdded, len(phaseOrder))
	return next, res
}

// topAncestors walks rows in document order with a stack of ancestors
// keyed by level: a row pops any entries at its own level or deeper
// before pushing itself. The bottom of the stack is the row's top-level
// ancestor; a row with nothing above it is its own ancestor.
func topAncestors(rows []Row) []Row {
	out := make([]Row, len(rows))
	var stack []Row
	for i, row := range rows {
		for len(stack) > 0 && stack[len(stack)-1].Level >= row.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			out[i] = row
		} else {
			out[i] = stack[0]
		}
		stack = append(stack, row)
	}
	return out
}

// leafRows returns the indices of rows that become items: rows below
// the top level with no strictly deeper row immediately following.
// Top-level rows are phases, never items.
func leafRows(rows []Row) []int {
	var out []int
	for i, row := range rows {
		if row.Level <= 0 {
			continue
		}
		if i+1 < len(rows) && rows[i+1].Level > row.Level {
			continue
		}
		out = append(out, i)
	}
	return out
}

func rowStatus(s string) domain.ItemStatus {
	switch s {
	case "done", "complete", "completed":
		return domain.StatusDone
	case "at_risk", "at risk":
		return domain.StatusAtRisk
	case "delayed", "late", "blocked":
		return domain.StatusDelayed
	default:
		return domain.StatusOnTrack
	}
}
