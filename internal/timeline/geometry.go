package timeline

import (
	"math"

	"github.com/shaqflair/timegrid/internal/contract"
	"github.com/shaqflair/timegrid/internal/domain"
)

const (
	// DefaultDayWidth is the default horizontal pixel size of one day.
	DefaultDayWidth = 24
	// BarInset shrinks each bar from its day-cell edges.
	BarInset = 8
	// MilestoneWidth is the fixed marker width for milestones.
	MilestoneWidth = 10
)

// Mapper converts item date ranges into clipped pixel intervals for a
// visible week page. The mapping is a pure function of the anchor, the
// page, and the day width; any day width works.
type Mapper struct {
	DayWidth int
}

// NewMapper returns a mapper with the given day width, defaulting when
// non-positive.
func NewMapper(dayWidth int) Mapper {
	if dayWidth <= 0 {
		dayWidth = DefaultDayWidth
	}
	return Mapper{DayWidth: dayWidth}
}

// ItemGeometry maps one item onto the visible page. Returns nil when
// the item does not intersect the page or its start is unparseable.
// Tasks and deliverables clip exactly to the page boundary; milestones
// render as a fixed-width marker at their start day.
func (m Mapper) ItemGeometry(doc domain.ScheduleDocument, item domain.ScheduleItem, page contract.WeekRange) *contract.BarGeometry {
	anchor := anchorTime(doc)
	startDay, ok := domain.DayIndex(anchor, item.Start)
	if !ok {
		return nil
	}
	first, last := page.FirstDay(), page.LastDay()

	if item.IsMilestone() {
		if startDay < first || startDay > last {
			return nil
		}
		return &contract.BarGeometry{
			Left:  (startDay-first)*m.DayWidth + BarInset,
			Width: MilestoneWidth,
		}
	}

	endDay := startDay
	if e, ok := domain.DayIndex(anchor, item.EffectiveEnd()); ok && e > startDay {
		endDay = e
	}
	if endDay < first || startDay > last {
		return nil
	}

	clippedStart := max(startDay, first)
	clippedEnd := min(endDay, last)
	return &contract.BarGeometry{
		Left:  (clippedStart-first)*m.DayWidth + BarInset,
		Width: (clippedEnd-clippedStart+1)*m.DayWidth - 2*BarInset,
	}
}

// DaysForPixels converts an accumulated horizontal pixel delta into
// whole days, rounding to the nearest day. Used by drag sessions.
func (m Mapper) DaysForPixels(px int) int {
	return int(math.Round(float64(px) / float64(m.DayWidth)))
}
