package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Row is the strict internal shape of one work-breakdown-structure
// entry. WBS documents arrive from an external artifact in a loosely
// typed shape; ParseRows is the single boundary where all the
// maybe-this-field-maybe-that-field tolerance lives.
type Row struct {
	ID                 string
	Level              int
	Name               string
	Description        string
	AcceptanceCriteria string
	Owner              string
	Status             string
	DueDate            string
	Predecessor        string
	Tags               []string
}

// Field name alternates seen in the wild, in lookup order.
var (
	idKeys   = []string{"id", "ref", "row_id", "wbs_id"}
	lvlKeys  = []string{"level", "depth", "indent"}
	nameKeys = []string{"deliverable", "name", "title"}
	descKeys = []string{"description", "desc", "summary"}
	acKeys   = []string{"acceptance_criteria", "acceptance"}
	ownKeys  = []string{"owner", "assignee"}
	dueKeys  = []string{"due_date", "dueDate", "due", "end_date"}
	predKeys = []string{"predecessor", "pred", "depends_on"}
)

// ParseRows converts a loosely shaped WBS JSON payload into strict rows.
// Accepts either a bare array or an object wrapping the array under
// "rows", "items" or "entries". Rows without any usable name are
// skipped; rows without an id get a positional one.
func ParseRows(raw []byte) ([]Row, error) {
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parsing WBS payload: %w", err)
	}

	list, ok := rowList(root)
	if !ok {
		return nil, fmt.Errorf("unrecognized WBS shape: expected an array of rows")
	}

	rows := make([]Row, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		row := Row{
			ID:                 firstString(m, idKeys),
			Level:              firstInt(m, lvlKeys),
			Name:               firstString(m, nameKeys),
			Description:        firstString(m, descKeys),
			AcceptanceCriteria: firstString(m, acKeys),
			Owner:              firstString(m, ownKeys),
			Status:             firstString(m, []string{"status"}),
			DueDate:            firstString(m, dueKeys),
			Predecessor:        firstString(m, predKeys),
			Tags:               tagList(m["tags"]),
		}
		if row.Name == "" {
			continue
		}
		if row.ID == "" {
			row.ID = fmt.Sprintf("row-%d", i+1)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadRows reads and parses a WBS JSON file.
func LoadRows(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRows(data)
}

func rowList(root any) ([]any, bool) {
	if l, ok := root.([]any); ok {
		return l, true
	}
	m, ok := root.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range []string{"rows", "items", "entries"} {
		if l, ok := m[key].([]any); ok {
			return l, true
		}
	}
	return nil, false
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func firstInt(m map[string]any, keys []string) int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func tagList(v any) []string {
	switch x := v.(type) {
	case []any:
		var out []string
		for _, entry := range x {
			if s, ok := entry.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(x, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
