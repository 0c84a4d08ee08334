package timeline

import (
	"github.com/shaqflair/timegrid/internal/domain"
)

type DragMode string

const (
	DragMove        DragMode = "move"
	DragResizeStart DragMode = "resize_start"
	DragResizeEnd   DragMode = "resize_end"
)

// Drag is one in-flight move/resize interaction. It captures the
// dragged item's original dates at begin time; every delta application
// re-derives the new dates from this immutable origin plus the
// accumulated day delta, so no rounding drift compounds across
// intermediate updates: only the final delta matters.
type Drag struct {
	ItemID      string
	Mode        DragMode
	OriginStart string
	OriginEnd   string
}

// StartDrag captures an item's origin for a new drag interaction.
func StartDrag(item domain.ScheduleItem, mode DragMode) Drag {
	return Drag{
		ItemID:      item.ID,
		Mode:        mode,
		OriginStart: item.Start,
		OriginEnd:   item.End,
	}
}

// Apply re-derives the dragged item's dates from the origin snapshot
// and the accumulated day delta, returning the next document value.
// Resizing clamps so the end never crosses the start; milestones only
// move. Unparseable origin dates pass through unchanged.
func (d Drag) Apply(doc domain.ScheduleDocument, deltaDays int) domain.ScheduleDocument {
	next := doc.Clone()
	for i := range next.Items {
		if next.Items[i].ID != d.ItemID {
			continue
		}
		it := &next.Items[i]
		switch d.Mode {
		case DragMove:
			it.Start = domain.ShiftISO(d.OriginStart, deltaDays)
			if !it.IsMilestone() && d.OriginEnd != "" {
				it.End = domain.ShiftISO(d.OriginEnd, deltaDays)
			}
		case DragResizeStart:
			if it.IsMilestone() {
				break
			}
			newStart := domain.ShiftISO(d.OriginStart, deltaDays)
			if s, e := domain.ParseISODate(newStart), domain.ParseISODate(it.EffectiveEnd()); s != nil && e != nil && s.After(*e) {
				newStart = domain.FormatISODate(*e)
			}
			it.Start = newStart
		case DragResizeEnd:
			if it.IsMilestone() {
				break
			}
			origin := d.OriginEnd
			if origin == "" {
				origin = d.OriginStart
			}
			newEnd := domain.ShiftISO(origin, deltaDays)
			if s, e := domain.ParseISODate(it.Start), domain.ParseISODate(newEnd); s != nil && e != nil && e.Before(*s) {
				newEnd = domain.FormatISODate(*s)
			}
			it.End = newEnd
		}
		break
	}
	return next
}
