package service

import (
	"github.com/shaqflair/timegrid/internal/contract"
	"github.com/shaqflair/timegrid/internal/domain"
	"github.com/shaqflair/timegrid/internal/timeline"
)

type timelineService struct{}

func NewTimelineService() TimelineService {
	return &timelineService{}
}

func (s *timelineService) BuildView(doc domain.ScheduleDocument, artifactID string, page contract.WeekRange, dayWidth int, filter timeline.Filter) contract.TimelineView {
	mapper := timeline.NewMapper(dayWidth)
	lanes := timeline.AssignLanes(doc)
	visible := timeline.VisibleItems(doc, filter)

	view := contract.TimelineView{
		ArtifactID: artifactID,
		AnchorDate: doc.AnchorDate,
		Page:       page,
		DayWidth:   mapper.DayWidth,
		Edges:      timeline.VisibleEdges(doc, visible),
	}

	for _, phase := range doc.Phases {
		pl := lanes[phase.ID]
		pv := contract.PhaseView{
			PhaseID:   phase.ID,
			Name:      phase.Name,
			LaneCount: pl.Count,
		}
		if filter.CollapsedPhases[phase.ID] {
			pv.LaneCount = 0
			view.Phases = append(view.Phases, pv)
			continue
		}
		for _, it := range doc.ItemsByPhase(phase.ID) {
			if !visible[it.ID] {
				continue
			}
			geo := mapper.ItemGeometry(doc, it, page)
			if geo == nil {
				continue
			}
			pv.Bars = append(pv.Bars, contract.BarView{
				ItemID: it.ID,
				Name:   it.Name,
				Type:   it.Type,
				Status: it.Status,
				Lane:   pl.Lanes[it.ID],
				Left:   geo.Left,
				Width:  geo.Width,
			})
		}
		view.Phases = append(view.Phases, pv)
	}
	return view
}
