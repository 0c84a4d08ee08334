package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveEnd(t *testing.T) {
	task := ScheduleItem{Type: TypeTask, Start: "2024-01-01", End: "2024-01-05"}
	assert.Equal(t, "2024-01-05", task.EffectiveEnd())

	open := ScheduleItem{Type: TypeTask, Start: "2024-01-01"}
	assert.Equal(t, "2024-01-01", open.EffectiveEnd(), "empty end defaults to start")

	ms := ScheduleItem{Type: TypeMilestone, Start: "2024-01-10", End: "2024-02-01"}
	assert.Equal(t, "2024-01-10", ms.EffectiveEnd(), "milestones resolve to their start day")
}

func TestClone_IsDeep(t *testing.T) {
	doc := ScheduleDocument{
		Version:    DocumentVersion,
		Type:       DocumentType,
		AnchorDate: "2024-01-01",
		Phases:     []Phase{{ID: "p1", Name: "Planning"}},
		Items: []ScheduleItem{
			{ID: "a", PhaseID: "p1", Type: TypeTask, Name: "A", Start: "2024-01-01", End: "2024-01-05", Status: StatusOnTrack, Dependencies: []string{"b"}},
		},
	}

	clone := doc.Clone()
	require.Equal(t, doc, clone)

	clone.Phases[0].Name = "Renamed"
	clone.Items[0].Dependencies[0] = "c"
	assert.Equal(t, "Planning", doc.Phases[0].Name)
	assert.Equal(t, "b", doc.Items[0].Dependencies[0])
}

func TestDocumentLookups(t *testing.T) {
	doc := ScheduleDocument{
		Phases: []Phase{{ID: "p1", Name: "One"}, {ID: "p2", Name: "Two"}},
		Items: []ScheduleItem{
			{ID: "a", PhaseID: "p1"},
			{ID: "b", PhaseID: "p2"},
			{ID: "c", PhaseID: "p1"},
		},
	}

	require.NotNil(t, doc.Phase("p2"))
	assert.Equal(t, "Two", doc.Phase("p2").Name)
	assert.Nil(t, doc.Phase("missing"))

	require.NotNil(t, doc.Item("b"))
	assert.Nil(t, doc.Item("missing"))

	inPhase := doc.ItemsByPhase("p1")
	require.Len(t, inPhase, 2)
	assert.Equal(t, "a", inPhase[0].ID)
	assert.Equal(t, "c", inPhase[1].ID)
}
