package store

import (
	"testing"

	"menu-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestBuildItemTreeNesting(t *testing.T) {
	items := []model.MenuItem{
		{ID: 1, Title: "Overview"},
		{ID: 2, Title: "Patients"},
		{ID: 3, ParentID: uintPtr(2), Title: "Appointments"},
		{ID: 4, ParentID: uintPtr(2), Title: "Prescriptions"},
		{ID: 5, ParentID: uintPtr(3), Title: "Calendar"},
	}

	tree := buildItemTree(items)

	require.Len(t, tree, 2)
	assert.Equal(t, "Overview", tree[0].Title)
	assert.Equal(t, "Patients", tree[1].Title)

	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, "Appointments", tree[1].Children[0].Title)
	assert.Equal(t, "Prescriptions", tree[1].Children[1].Title)

	require.Len(t, tree[1].Children[0].Children, 1)
	assert.Equal(t, "Calendar", tree[1].Children[0].Children[0].Title)
}

func TestBuildItemTreePreservesInputOrder(t *testing.T) {
	items := []model.MenuItem{
		{ID: 3, Title: "Third"},
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
	}

	tree := buildItemTree(items)

	require.Len(t, tree, 3)
	assert.Equal(t, "Third", tree[0].Title)
	assert.Equal(t, "First", tree[1].Title)
	assert.Equal(t, "Second", tree[2].Title)
}

// Rows pointing at a parent that is not in the section are malformed and
// must be dropped, not promoted to roots. The section-level counterpart of
// this rule needs no code here: SectionsForBusinessType inner-joins through
// the ownership table, so a section without owners has no join row and can
// never be returned for any business type.
func TestBuildItemTreeDropsOrphans(t *testing.T) {
	items := []model.MenuItem{
		{ID: 1, Title: "Visible"},
		{ID: 2, ParentID: uintPtr(99), Title: "Orphan"},
		{ID: 3, ParentID: uintPtr(2), Title: "Orphan Child"},
	}

	tree := buildItemTree(items)

	require.Len(t, tree, 1)
	assert.Equal(t, "Visible", tree[0].Title)
}

func TestBuildItemTreeSelfReferenceDropped(t *testing.T) {
	items := []model.MenuItem{
		{ID: 1, Title: "Root"},
		{ID: 2, ParentID: uintPtr(2), Title: "Self Loop"},
	}

	tree := buildItemTree(items)

	require.Len(t, tree, 1)
	assert.Equal(t, "Root", tree[0].Title)
}

func TestBuildItemTreeEmpty(t *testing.T) {
	assert.Empty(t, buildItemTree(nil))
	assert.Empty(t, buildItemTree([]model.MenuItem{}))
}

// CreateSection compares the resolved owners against the deduplicated
// request, so a repeated ID must not read as a missing business type.
func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
	assert.Equal(t, []uint{7}, uniqueIDs([]uint{7, 7, 7}))
	assert.Empty(t, uniqueIDs(nil))
}
