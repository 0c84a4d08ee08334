package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaqflair/timegrid/internal/domain"
)

// Seed builds the default example document used when an artifact has no
// stored schedule yet. The anchor is the Monday of the given time's week.
func Seed(now time.Time) domain.ScheduleDocument {
	anchor := domain.StartOfWeekMonday(now)
	iso := func(days int) string { return domain.FormatISODate(anchor.AddDate(0, 0, days)) }

	planning := domain.Phase{ID: uuid.New().String(), Name: "Planning"}
	build := domain.Phase{ID: uuid.New().String(), Name: "Build"}
	launch := domain.Phase{ID: uuid.New().String(), Name: "Launch"}

	kickoff := domain.ScheduleItem{
		ID:           uuid.New().String(),
		PhaseID:      planning.ID,
		Type:         domain.TypeMilestone,
		Name:         "Kickoff",
		Start:        iso(0),
		Status:       domain.StatusOnTrack,
		Dependencies: []string{},
	}
	requirements := domain.ScheduleItem{
		ID:           uuid.New().String(),
		PhaseID:      planning.ID,
		Type:         domain.TypeTask,
		Name:         "Requirements",
		Start:        iso(0),
		End:          iso(4),
		Status:       domain.StatusOnTrack,
		Dependencies: []string{},
	}
	implementation := domain.ScheduleItem{
		ID:           uuid.New().String(),
		PhaseID:      build.ID,
		Type:         domain.TypeTask,
		Name:         "Implementation",
		Start:        iso(7),
		End:          iso(18),
		Status:       domain.StatusOnTrack,
		Dependencies: []string{requirements.ID},
	}
	review := domain.ScheduleItem{
		ID:           uuid.New().String(),
		PhaseID:      build.ID,
		Type:         domain.TypeDeliverable,
		Name:         "Review package",
		Start:        iso(14),
		End:          iso(21),
		Status:       domain.StatusOnTrack,
		Dependencies: []string{implementation.ID},
	}
	golive := domain.ScheduleItem{
		ID:           uuid.New().String(),
		PhaseID:      launch.ID,
		Type:         domain.TypeMilestone,
		Name:         "Go live",
		Start:        iso(25),
		Status:       domain.StatusOnTrack,
		Dependencies: []string{review.ID},
	}

	return domain.ScheduleDocument{
		Version:    domain.DocumentVersion,
		Type:       domain.DocumentType,
		AnchorDate: domain.FormatISODate(anchor),
		Phases:     []domain.Phase{planning, build, launch},
		Items:      []domain.ScheduleItem{kickoff, requirements, implementation, review, golive},
	}
}
