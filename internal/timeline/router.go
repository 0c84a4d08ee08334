package timeline

import (
	"sort"
	"strings"

	"github.com/shaqflair/timegrid/internal/contract"
	"github.com/shaqflair/timegrid/internal/domain"
)

// MaxEdges bounds the emitted dependency edges against pathological
// fan-out. Truncation is silent.
const MaxEdges = 2500

// MaxSearchResults bounds dependency candidate searches.
const MaxSearchResults = 20

// Filter selects the items visible on the timeline: phases can be
// collapsed, and items can be narrowed by type and a case-insensitive
// name query.
type Filter struct {
	Types           []domain.ItemType
	Query           string
	CollapsedPhases map[string]bool
}

// Matches reports whether one item passes the type and text filters.
func (f Filter) Matches(it domain.ScheduleItem) bool {
	if f.CollapsedPhases[it.PhaseID] {
		return false
	}
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if it.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

// VisibleItems applies the filter to every item and returns the set of
// visible item ids.
func VisibleItems(doc domain.ScheduleDocument, f Filter) map[string]bool {
	out := make(map[string]bool, len(doc.Items))
	for _, it := range doc.Items {
		if f.Matches(it) {
			out[it.ID] = true
		}
	}
	return out
}

// VisibleEdges computes the dependency edges whose endpoints are both
// visible. The result is deduplicated (duplicate dependency entries in
// the document are tolerated and collapse here), deterministically
// ordered, and capped at MaxEdges. Cycles are not detected; edges are
// emitted flat, never walked transitively.
func VisibleEdges(doc domain.ScheduleDocument, visible map[string]bool) []contract.Edge {
	seen := make(map[contract.Edge]bool)
	var edges []contract.Edge
	for _, it := range doc.Items {
		if !visible[it.ID] {
			continue
		}
		for _, dep := range it.Dependencies {
			if dep == it.ID || !visible[dep] || doc.Item(dep) == nil {
				continue
			}
			e := contract.Edge{PredecessorID: dep, SuccessorID: it.ID}
			if seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].SuccessorID != edges[j].SuccessorID {
			return edges[i].SuccessorID < edges[j].SuccessorID
		}
		return edges[i].PredecessorID < edges[j].PredecessorID
	})

	if len(edges) > MaxEdges {
		edges = edges[:MaxEdges]
	}
	return edges
}

// SearchDependencyCandidates returns items matching a case-insensitive
// name query that selfID could depend on, in document order, capped at
// MaxSearchResults. The item itself is never a candidate.
func SearchDependencyCandidates(doc domain.ScheduleDocument, selfID, query string) []domain.ScheduleItem {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []domain.ScheduleItem
	for _, it := range doc.Items {
		if it.ID == selfID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		out = append(out, it)
		if len(out) == MaxSearchResults {
			break
		}
	}
	return out
}
