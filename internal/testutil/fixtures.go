package testutil

import (
	"github.com/google/uuid"

	"github.com/shaqflair/timegrid/internal/domain"
)

// Item options
type ItemOption func(*domain.ScheduleItem)

func WithType(t domain.ItemType) ItemOption {
	return func(it *domain.ScheduleItem) {
		it.Type = t
		if t == domain.TypeMilestone {
			it.End = ""
		}
	}
}

func WithStatus(s domain.ItemStatus) ItemOption {
	return func(it *domain.ScheduleItem) {
		it.Status = s
	}
}

func WithEnd(end string) ItemOption {
	return func(it *domain.ScheduleItem) {
		it.End = end
	}
}

func WithDependencies(ids ...string) ItemOption {
	return func(it *domain.ScheduleItem) {
		it.Dependencies = ids
	}
}

func NewTestItem(id, phaseID, name, start string, opts ...ItemOption) domain.ScheduleItem {
	it := domain.ScheduleItem{
		ID:      id,
		PhaseID: phaseID,
		Type:    domain.TypeTask,
		Name:    name,
		Start:   start,
		Status:  domain.StatusOnTrack,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// NewTestDocument builds a small two-phase document anchored on a Monday,
// suitable for timeline and persistence tests.
func NewTestDocument() domain.ScheduleDocument {
	return domain.ScheduleDocument{
		Version:    domain.DocumentVersion,
		Type:       domain.DocumentType,
		AnchorDate: "2024-01-01",
		Phases: []domain.Phase{
			{ID: "p1", Name: "Discovery"},
			{ID: "p2", Name: "Delivery"},
		},
		Items: []domain.ScheduleItem{
			NewTestItem("i1", "p1", "Research", "2024-01-01", WithEnd("2024-01-05")),
			NewTestItem("i2", "p1", "Findings ready", "2024-01-08", WithType(domain.TypeMilestone), WithDependencies("i1")),
			NewTestItem("i3", "p2", "Build", "2024-01-08", WithEnd("2024-01-19"), WithDependencies("i2")),
		},
	}
}

// NewArtifactID returns a fresh artifact identifier for tests.
func NewArtifactID() string {
	return uuid.New().String()
}
