package contract

import "github.com/shaqflair/timegrid/internal/domain"

// WeekRange is an inclusive window of week indices relative to the
// document anchor (the visible "page").
type WeekRange struct {
	FromWeek int `json:"from_week"`
	ToWeek   int `json:"to_week"`
}

// FirstDay is the day index of the page's first visible day.
func (w WeekRange) FirstDay() int { return w.FromWeek * 7 }

// LastDay is the day index of the page's last visible day.
func (w WeekRange) LastDay() int { return w.ToWeek*7 + 6 }

// Days is the number of visible days on the page.
func (w WeekRange) Days() int { return w.LastDay() - w.FirstDay() + 1 }

// BarGeometry is a clipped horizontal pixel interval for one item.
type BarGeometry struct {
	Left  int `json:"left"`
	Width int `json:"width"`
}

// BarView is one positioned item, ready for the rendering layer.
type BarView struct {
	ItemID string            `json:"item_id"`
	Name   string            `json:"name"`
	Type   domain.ItemType   `json:"type"`
	Status domain.ItemStatus `json:"status"`
	Lane   int               `json:"lane"`
	Left   int               `json:"left"`
	Width  int               `json:"width"`
}

// PhaseView groups the positioned bars of one phase with the vertical
// space (lane count) the phase needs.
type PhaseView struct {
	PhaseID   string    `json:"phase_id"`
	Name      string    `json:"name"`
	LaneCount int       `json:"lane_count"`
	Bars      []BarView `json:"bars"`
}

// Edge is one visible predecessor→successor dependency pair. Turning a
// pair into an on-screen path is the rendering layer's concern.
type Edge struct {
	PredecessorID string `json:"predecessor_id"`
	SuccessorID   string `json:"successor_id"`
}

// TimelineView is the full data contract handed to the rendering layer
// for one page of the timeline.
type TimelineView struct {
	ArtifactID string      `json:"artifact_id"`
	AnchorDate string      `json:"anchor_date"`
	Page       WeekRange   `json:"page"`
	DayWidth   int         `json:"day_width"`
	Phases     []PhaseView `json:"phases"`
	Edges      []Edge      `json:"edges"`
}
