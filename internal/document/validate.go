package document

import (
	"fmt"

	"github.com/shaqflair/timegrid/internal/domain"
)

// Issue is a user-facing validation finding. The offending edit stays
// applied to the in-memory document so the user sees what they typed;
// blocking issues only prevent saving.
type Issue struct {
	ItemID   string
	Field    string
	Message  string
	Blocking bool
}

func (i Issue) String() string {
	return fmt.Sprintf("item %s: %s", i.ItemID, i.Message)
}

// Validate checks every item and returns all findings. End-before-start
// on a non-milestone blocks saving; unparseable dates are warnings (the
// item is simply excluded from packing and geometry until fixed).
func Validate(doc domain.ScheduleDocument) []Issue {
	var issues []Issue
	for _, it := range doc.Items {
		start := domain.ParseISODate(it.Start)
		if start == nil {
			issues = append(issues, Issue{
				ItemID:  it.ID,
				Field:   "start",
				Message: fmt.Sprintf("start date %q is not a valid date", it.Start),
			})
		}
		if it.IsMilestone() || it.End == "" {
			continue
		}
		end := domain.ParseISODate(it.End)
		if end == nil {
			issues = append(issues, Issue{
				ItemID:  it.ID,
				Field:   "end",
				Message: fmt.Sprintf("end date %q is not a valid date", it.End),
			})
			continue
		}
		if start != nil && end.Before(*start) {
			issues = append(issues, Issue{
				ItemID:   it.ID,
				Field:    "end",
				Message:  fmt.Sprintf("end date %s is before start date %s", it.End, it.Start),
				Blocking: true,
			})
		}
	}
	return issues
}

// HasBlocking reports whether any issue prevents saving.
func HasBlocking(issues []Issue) bool {
	for _, i := range issues {
		if i.Blocking {
			return true
		}
	}
	return false
}
