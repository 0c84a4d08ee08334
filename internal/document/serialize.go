package document

import (
	"encoding/json"
	"fmt"

	"github.com/shaqflair/timegrid/internal/domain"
)

// Serialize renders the canonical persisted JSON shape. Key order and
// field presence are stable across calls so saved payloads diff cleanly.
func Serialize(doc domain.ScheduleDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing schedule document: %w", err)
	}
	return append(data, '\n'), nil
}
