package domain

type ItemType string

const (
	TypeMilestone   ItemType = "milestone"
	TypeTask        ItemType = "task"
	TypeDeliverable ItemType = "deliverable"
)

type ItemStatus string

const (
	StatusOnTrack ItemStatus = "on_track"
	StatusAtRisk  ItemStatus = "at_risk"
	StatusDelayed ItemStatus = "delayed"
	StatusDone    ItemStatus = "done"
)

// ValidItemTypes is the canonical set of accepted item type strings.
var ValidItemTypes = map[string]bool{
	"milestone": true, "task": true, "deliverable": true,
}

// ValidItemStatuses is the canonical set of accepted item status strings.
var ValidItemStatuses = map[string]bool{
	"on_track": true, "at_risk": true, "delayed": true, "done": true,
}
