package timeline

import (
	"sort"
	"time"

	"github.com/shaqflair/timegrid/internal/domain"
)

// PhaseLanes is the lane assignment for one phase: item id → 0-based
// lane, plus the total lane count (the vertical space the phase needs).
type PhaseLanes struct {
	Lanes map[string]int
	Count int
}

type packable struct {
	id       string
	name     string
	startDay int
	endDay   int
}

// AssignLanes packs every phase's items into display lanes so no two
// items sharing a lane overlap. Greedy first-fit over lane end days,
// processing items sorted by start ascending, duration descending, then
// name and id for determinism. Intervals are inclusive [start, end]
// days: an item ending day N and one starting day N+1 may share a lane.
// Milestones occupy the single instant [day, day]. Items with an
// unparseable start go to lane 0 without perturbing the packing of
// valid items.
func AssignLanes(doc domain.ScheduleDocument) map[string]PhaseLanes {
	anchor := anchorTime(doc)
	out := make(map[string]PhaseLanes, len(doc.Phases))

	for _, phase := range doc.Phases {
		items := doc.ItemsByPhase(phase.ID)
		lanes := make(map[string]int, len(items))

		var valid []packable
		haveInvalid := false
		for _, it := range items {
			day, ok := domain.DayIndex(anchor, it.Start)
			if !ok {
				lanes[it.ID] = 0
				haveInvalid = true
				continue
			}
			end := day
			if !it.IsMilestone() {
				if e, ok := domain.DayIndex(anchor, it.EffectiveEnd()); ok && e > day {
					end = e
				}
			}
			valid = append(valid, packable{id: it.ID, name: it.Name, startDay: day, endDay: end})
		}

		sort.Slice(valid, func(i, j int) bool {
			a, b := valid[i], valid[j]
			if a.startDay != b.startDay {
				return a.startDay < b.startDay
			}
			da, db := a.endDay-a.startDay, b.endDay-b.startDay
			if da != db {
				return da > db
			}
			if a.name != b.name {
				return a.name < b.name
			}
			return a.id < b.id
		})

		var laneEnds []int
		for _, p := range valid {
			placed := false
			for li := range laneEnds {
				if laneEnds[li] < p.startDay {
					lanes[p.id] = li
					laneEnds[li] = p.endDay
					placed = true
					break
				}
			}
			if !placed {
				lanes[p.id] = len(laneEnds)
				laneEnds = append(laneEnds, p.endDay)
			}
		}

		count := len(laneEnds)
		if count == 0 && haveInvalid {
			count = 1
		}
		out[phase.ID] = PhaseLanes{Lanes: lanes, Count: count}
	}
	return out
}

// anchorTime resolves the document anchor, falling back to the current
// week's Monday when the anchor is unparseable (normalization prevents
// that for stored documents).
func anchorTime(doc domain.ScheduleDocument) time.Time {
	if t := domain.ParseISODate(doc.AnchorDate); t != nil {
		return *t
	}
	return domain.StartOfWeekMonday(time.Now().UTC())
}
