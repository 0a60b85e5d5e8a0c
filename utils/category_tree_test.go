package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolshedhq/toolshed/models"
)

func uintPtr(v uint) *uint { return &v }

func category(id uint, name string, parentID *uint) models.Category {
	return models.Category{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
}

func TestBuildCategoryTree(t *testing.T) {
	categories := []models.Category{
		category(1, "Power Tools", nil),
		category(2, "Drills", uintPtr(1)),
		category(3, "Saws", uintPtr(1)),
		category(4, "Garden", nil),
	}

	tree := BuildCategoryTree(categories)

	roots := tree.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "Power Tools", roots[0].Name)
	assert.Equal(t, "Garden", roots[1].Name)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Drills", roots[0].Children[0].Name)
	assert.Equal(t, "Saws", roots[0].Children[1].Name)
	assert.Empty(t, roots[1].Children)
}

func TestBuildCategoryTree_MissingParentBecomesRoot(t *testing.T) {
	categories := []models.Category{
		category(2, "Orphan", uintPtr(99)),
	}

	tree := BuildCategoryTree(categories)

	require.Len(t, tree.Roots(), 1)
	assert.Equal(t, "Orphan", tree.Roots()[0].Name)
}

func TestDescendantIDs(t *testing.T) {
	categories := []models.Category{
		category(1, "A", nil),
		category(2, "B", uintPtr(1)),
		category(3, "C", uintPtr(1)),
		category(4, "D", uintPtr(2)),
	}

	tree := BuildCategoryTree(categories)

	assert.ElementsMatch(t, []uint{1, 2, 3, 4}, tree.DescendantIDs(1))
	assert.ElementsMatch(t, []uint{2, 4}, tree.DescendantIDs(2))
	assert.Equal(t, []uint{4}, tree.DescendantIDs(4))
	assert.Nil(t, tree.DescendantIDs(42))
}

func TestDescendantIDs_DeepChain(t *testing.T) {
	// Ten thousand levels would blow a recursive traversal
	const depth = 10000
	categories := make([]models.Category, 0, depth)
	categories = append(categories, category(1, "root", nil))
	for i := uint(2); i <= depth; i++ {
		parent := i - 1
		categories = append(categories, category(i, fmt.Sprintf("level-%d", i), &parent))
	}

	tree := BuildCategoryTree(categories)

	assert.Len(t, tree.DescendantIDs(1), depth)
}

func TestApplyToolCounts_SubtreeInclusive(t *testing.T) {
	// X > Y > Z, one tool in each
	categories := []models.Category{
		category(1, "X", nil),
		category(2, "Y", uintPtr(1)),
		category(3, "Z", uintPtr(2)),
	}
	tools := []ToolAvailability{
		{ToolID: 10, CategoryID: 1, Available: 2},
		{ToolID: 11, CategoryID: 2, Available: 0},
		{ToolID: 12, CategoryID: 3, Available: 1},
	}

	tree := BuildCategoryTree(categories)
	tree.ApplyToolCounts(tools)

	x := tree.Node(1)
	y := tree.Node(2)
	z := tree.Node(3)

	assert.Equal(t, 3, x.ToolCount)
	assert.Equal(t, 3, x.AvailableCount)
	assert.Equal(t, 2, y.ToolCount)
	assert.Equal(t, 1, y.AvailableCount)
	assert.Equal(t, 1, z.ToolCount)
	assert.Equal(t, 1, z.AvailableCount)
}

func TestApplyToolCounts_EmptyCategory(t *testing.T) {
	categories := []models.Category{
		category(1, "Empty", nil),
	}

	tree := BuildCategoryTree(categories)
	tree.ApplyToolCounts(nil)

	assert.Equal(t, 0, tree.Node(1).ToolCount)
	assert.Equal(t, 0, tree.Node(1).AvailableCount)
}
