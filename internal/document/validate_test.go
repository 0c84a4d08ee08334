package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanDocument(t *testing.T) {
	assert.Empty(t, Validate(twoPhaseDoc()))
}

func TestValidate_EndBeforeStartBlocks(t *testing.T) {
	doc := twoPhaseDoc()
	doc.Items[0].End = "2023-12-25"

	issues := Validate(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "a", issues[0].ItemID)
	assert.True(t, issues[0].Blocking)
	assert.True(t, HasBlocking(issues))
}

func TestValidate_UnparseableDatesWarn(t *testing.T) {
	doc := twoPhaseDoc()
	doc.Items[0].Start = "soon"
	doc.Items[1].End = "eventually"

	issues := Validate(doc)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.False(t, issue.Blocking, "unparseable dates warn but never block")
	}
	assert.False(t, HasBlocking(issues))
}

func TestValidate_MilestoneIgnoresEnd(t *testing.T) {
	doc := twoPhaseDoc()
	// A milestone never has an end to validate, even if one sneaks in.
	doc.Items[2].End = "1999-01-01"
	assert.Empty(t, Validate(doc))
}
