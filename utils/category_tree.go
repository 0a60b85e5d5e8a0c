package utils

import (
	"github.com/toolshedhq/toolshed/models"
)

// CategoryNode is one node of the assembled category tree with its
// subtree-inclusive tool counts
type CategoryNode struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	ParentID       *uint           `json:"parent_id"`
	ToolCount      int             `json:"tool_count"`
	AvailableCount int             `json:"available_count"`
	Children       []*CategoryNode `json:"children"`
}

// CategoryTree is an arena of category nodes indexed by id, linked into
// a forest via the parent references
type CategoryTree struct {
	nodes map[uint]*CategoryNode
	roots []*CategoryNode
}

// ToolAvailability is the per-tool input for subtree counting:
// Available = quantity minus active checkouts
type ToolAvailability struct {
	ToolID     uint
	CategoryID uint
	Available  int
}

// BuildCategoryTree assembles a tree from a flat category slice.
// Children keep the input order, so callers control ordering with
// their query. A category whose parent is missing from the slice is
// treated as a root.
func BuildCategoryTree(categories []models.Category) *CategoryTree {
	tree := &CategoryTree{nodes: make(map[uint]*CategoryNode, len(categories))}

	for _, cat := range categories {
		tree.nodes[cat.ID] = &CategoryNode{
			ID:       cat.ID,
			Name:     cat.Name,
			ParentID: cat.ParentID,
			Children: []*CategoryNode{},
		}
	}

	for _, cat := range categories {
		node := tree.nodes[cat.ID]
		if cat.ParentID != nil {
			if parent, ok := tree.nodes[*cat.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		tree.roots = append(tree.roots, node)
	}

	return tree
}

// Roots returns the top-level categories
func (t *CategoryTree) Roots() []*CategoryNode {
	return t.roots
}

// Node returns the node with the given id, or nil
func (t *CategoryTree) Node(id uint) *CategoryNode {
	return t.nodes[id]
}

// DescendantIDs returns the ids of the subtree rooted at id, including
// id itself. The traversal is depth-first with an explicit stack and a
// seen set, so arbitrarily deep (or even corrupt) trees cannot blow the
// call stack or loop forever.
func (t *CategoryTree) DescendantIDs(id uint) []uint {
	start, ok := t.nodes[id]
	if !ok {
		return nil
	}

	var ids []uint
	seen := make(map[uint]bool)
	stack := []*CategoryNode{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[node.ID] {
			continue
		}
		seen[node.ID] = true
		ids = append(ids, node.ID)
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return ids
}

// ApplyToolCounts fills ToolCount and AvailableCount for every node.
// ToolCount is the number of tool records in the node's subtree;
// AvailableCount sums per-tool availability across the same subtree.
func (t *CategoryTree) ApplyToolCounts(tools []ToolAvailability) {
	for id, node := range t.nodes {
		subtree := make(map[uint]bool)
		for _, descID := range t.DescendantIDs(id) {
			subtree[descID] = true
		}

		count, available := 0, 0
		for _, tool := range tools {
			if subtree[tool.CategoryID] {
				count++
				available += tool.Available
			}
		}
		node.ToolCount = count
		node.AvailableCount = available
	}
}
