package importer

import (
	"fmt"
	"testing"

	"github.com/shaqflair/timegrid/internal/document"
	"github.com/shaqflair/timegrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyDoc() domain.ScheduleDocument {
	return domain.ScheduleDocument{
		Version:    domain.DocumentVersion,
		Type:       domain.DocumentType,
		AnchorDate: "2024-01-01",
		Phases:     []domain.Phase{},
		Items:      []domain.ScheduleItem{},
	}
}

func sampleWBS() []Row {
	return []Row{
		{ID: "1", Level: 0, Name: "Discovery"},
		{ID: "1.1", Level: 1, Name: "Stakeholder interviews", DueDate: "2024-01-19"},
		{ID: "1.2", Level: 1, Name: "Requirements doc", DueDate: "2024-02-02", Predecessor: "1.1"},
		{ID: "2", Level: 0, Name: "Delivery"},
		{ID: "2.1", Level: 1, Name: "Build"},
		{ID: "2.1.1", Level: 2, Name: "Backend", DueDate: "2024-03-01", Predecessor: "1.2"},
		{ID: "2.1.2", Level: 2, Name: "Frontend", DueDate: "2024-06-01"},
	}
}

func TestAppend_LeavesBecomeTasks(t *testing.T) {
	doc, res := Append(emptyDoc(), sampleWBS(), "2024-01-08", "2024-04-01")

	require.True(t, res.Changed)
	assert.Equal(t, 2, res.PhasesAdded)
	assert.Equal(t, 4, res.ItemsAdded)

	require.Len(t, doc.Phases, 2)
	assert.Equal(t, "Discovery", doc.Phases[0].Name)
	assert.Equal(t, "Delivery", doc.Phases[1].Name)

	// 1.1, 1.2 are leaves; 2.1 has children so only 2.1.1 and 2.1.2
	// import under Delivery.
	require.Len(t, doc.Items, 4)
	byID := map[string]domain.ScheduleItem{}
	for _, it := range doc.Items {
		byID[it.ID] = it
	}

	interviews := byID["1.1"]
	assert.Equal(t, doc.Phases[0].ID, interviews.PhaseID)
	assert.Equal(t, domain.TypeTask, interviews.Type)
	assert.Equal(t, "2024-01-08", interviews.Start, "every leaf starts at the project start")
	assert.Equal(t, "2024-01-19", interviews.End)

	backend := byID["2.1.1"]
	assert.Equal(t, doc.Phases[1].ID, backend.PhaseID, "phase comes from the top-level ancestor, not the direct parent")
	assert.Equal(t, []string{"1.2"}, backend.Dependencies, "predecessor resolves across phases")

	frontend := byID["2.1.2"]
	assert.Equal(t, "2024-04-01", frontend.End, "due dates past the project finish are clamped")
}

func TestAppend_MissingDueDateDefaultsToStart(t *testing.T) {
	rows := []Row{
		{ID: "1", Level: 0, Name: "Phase"},
		{ID: "1.1", Level: 1, Name: "Leaf", DueDate: "not a date"},
	}
	doc, res := Append(emptyDoc(), rows, "2024-01-08", "")
	require.True(t, res.Changed)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "2024-01-08", doc.Items[0].End)
}

func TestAppend_PredecessorOutsideWBSIgnored(t *testing.T) {
	rows := []Row{
		{ID: "1", Level: 0, Name: "Phase"},
		{ID: "1.1", Level: 1, Name: "Leaf", Predecessor: "ghost"},
	}
	doc, res := Append(emptyDoc(), rows, "2024-01-08", "")
	require.True(t, res.Changed)
	assert.Empty(t, doc.Items[0].Dependencies)
	assert.Equal(t, 0, res.DependenciesAdded)
}

func TestAppend_EmptyWBSIsNoOp(t *testing.T) {
	orig := emptyDoc()
	doc, res := Append(orig, nil, "2024-01-08", "")
	assert.False(t, res.Changed)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, orig, doc)
}

func TestAppend_OnlyTopLevelRowsFallBackToMilestones(t *testing.T) {
	rows := []Row{
		{ID: "1", Level: 0, Name: "Alpha"},
		{ID: "2", Level: 0, Name: "Beta"},
	}
	doc, res := Append(emptyDoc(), rows, "2024-01-08", "")

	require.True(t, res.Changed)
	require.Len(t, doc.Phases, 2)
	require.Len(t, doc.Items, 2)
	for _, it := range doc.Items {
		assert.Equal(t, domain.TypeMilestone, it.Type)
		assert.Equal(t, "2024-01-08", it.Start)
		assert.Empty(t, it.End)
	}
}

func TestAppend_MergesExistingPhasesByName(t *testing.T) {
	base := emptyDoc()
	base.Phases = []domain.Phase{{ID: "existing", Name: "Discovery"}}

	doc, res := Append(base, sampleWBS(), "2024-01-08", "")
	require.True(t, res.Changed)
	assert.Equal(t, 1, res.PhasesAdded, "only Delivery is new")
	assert.Equal(t, "existing", doc.Phases[0].ID, "matching phase keeps its id")
	for _, it := range doc.Items {
		if it.Name == "Stakeholder interviews" {
			assert.Equal(t, "existing", it.PhaseID)
		}
	}
}

func TestAppend_CollidingItemIDsRemappedConsistently(t *testing.T) {
	base := emptyDoc()
	base.Phases = []domain.Phase{{ID: "p", Name: "Other"}}
	base.Items = []domain.ScheduleItem{
		{ID: "1.2", PhaseID: "p", Type: domain.TypeTask, Name: "Occupies the id", Start: "2024-01-01", End: "2024-01-02", Status: domain.StatusOnTrack, Dependencies: []string{}},
	}

	doc, res := Append(base, sampleWBS(), "2024-01-08", "")
	require.True(t, res.Changed)

	var requirements, backend *domain.ScheduleItem
	for i := range doc.Items {
		switch doc.Items[i].Name {
		case "Requirements doc":
			requirements = &doc.Items[i]
		case "Backend":
			backend = &doc.Items[i]
		}
	}
	require.NotNil(t, requirements)
	require.NotNil(t, backend)

	assert.NotEqual(t, "1.2", requirements.ID, "colliding row id is regenerated")
	require.Len(t, backend.Dependencies, 1)
	assert.Equal(t, requirements.ID, backend.Dependencies[0], "dependency follows the remapped id")
}

func TestAppend_DuplicateRowIDsGetDistinctItemIDs(t *testing.T) {
	rows := []Row{
		{ID: "1", Level: 0, Name: "Phase"},
		{ID: "x", Level: 1, Name: "A"},
		{ID: "x", Level: 1, Name: "B"},
	}
	doc, res := Append(emptyDoc(), rows, "2024-01-08", "")

	require.True(t, res.Changed)
	require.Len(t, doc.Items, 2)

	seen := map[string]int{}
	for _, it := range doc.Items {
		seen[it.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "item id %q must be unique", id)
	}
	assert.Equal(t, "x", doc.Items[0].ID, "first occurrence keeps the row id")
	assert.NotEqual(t, "x", doc.Items[1].ID, "later occurrence is regenerated")
}

func TestAppend_PredecessorOnDuplicateRowIDResolvesToFirst(t *testing.T) {
	rows := []Row{
		{ID: "1", Level: 0, Name: "Phase"},
		{ID: "x", Level: 1, Name: "A"},
		{ID: "x", Level: 1, Name: "B"},
		{ID: "y", Level: 1, Name: "C", Predecessor: "x"},
	}
	doc, res := Append(emptyDoc(), rows, "2024-01-08", "")

	require.True(t, res.Changed)
	require.Len(t, doc.Items, 3)
	assert.Equal(t, []string{"x"}, doc.Items[2].Dependencies,
		"an ambiguous predecessor reference resolves to the first occurrence")
}

func TestAppend_ItemCapDropsDanglingDependencies(t *testing.T) {
	base := emptyDoc()
	base.Phases = []domain.Phase{{ID: "p", Name: "Filler"}}
	for i := 0; i < document.MaxItems-1; i++ {
		base.Items = append(base.Items, domain.ScheduleItem{
			ID: fmt.Sprintf("f%04d", i), PhaseID: "p", Type: domain.TypeTask,
			Name: "filler", Start: "2024-01-01", End: "2024-01-02",
			Status: domain.StatusOnTrack, Dependencies: []string{},
		})
	}

	// One free slot: A fits, its predecessor B does not.
	rows := []Row{
		{ID: "1", Level: 0, Name: "Phase"},
		{ID: "a", Level: 1, Name: "A", Predecessor: "b"},
		{ID: "b", Level: 1, Name: "B"},
	}
	doc, res := Append(base, rows, "2024-01-08", "")

	require.True(t, res.Changed)
	assert.Equal(t, 1, res.ItemsAdded)
	assert.Equal(t, 0, res.DependenciesAdded)

	a := doc.Item("a")
	require.NotNil(t, a)
	assert.Empty(t, a.Dependencies, "a dependency on an item past the cap is never emitted")
	assert.Nil(t, doc.Item("b"))
}

func TestAppend_TwiceKeepsPhasesDoublesItems(t *testing.T) {
	doc1, res1 := Append(emptyDoc(), sampleWBS(), "2024-01-08", "")
	require.True(t, res1.Changed)

	doc2, res2 := Append(doc1, sampleWBS(), "2024-01-08", "")
	require.True(t, res2.Changed)

	assert.Len(t, doc2.Phases, len(doc1.Phases), "phases dedupe by name across imports")
	assert.Len(t, doc2.Items, 2*len(doc1.Items), "re-import remaps colliding ids and doubles items")
}

func TestAppend_IsPure(t *testing.T) {
	orig := emptyDoc()
	before := orig.Clone()
	_, _ = Append(orig, sampleWBS(), "2024-01-08", "")
	assert.Equal(t, before, orig, "input document is never mutated")
}
