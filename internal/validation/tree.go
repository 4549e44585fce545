package validation

import (
	"fmt"
	"strings"

	"github.com/ostkit/ostkit/pkg/schema"
)

// ValidateTree checks the structural invariants on an externally supplied
// tree: single outcome root, hierarchy-typed parent/child kinds, mutually
// consistent links, no cycles or unreachable nodes, non-empty content.
// Trees produced by the parser satisfy these by construction; this guards
// trees arriving from edit actions or JSON payloads.
func ValidateTree(tree *schema.Tree) *schema.ValidationResult {
	result := &schema.ValidationResult{}

	if tree == nil {
		result.AddError("/", schema.ErrCodeValidation, "tree is nil")
		return result
	}
	if tree.RootID == "" {
		result.AddError("root_id", schema.ErrCodeValidation, "no root assigned")
		return result
	}

	root := tree.Nodes[tree.RootID]
	if root == nil {
		result.AddError("root_id", schema.ErrCodeValidation,
			fmt.Sprintf("root id %q not present in node map", tree.RootID))
		return result
	}
	if root.Kind != schema.RootKind {
		result.AddError(nodePath(root.ID, "kind"), schema.ErrCodeHierarchy,
			fmt.Sprintf("root must be %s, got %s", schema.RootKind, root.Kind))
	}
	if root.ParentID != "" {
		result.AddError(nodePath(root.ID, "parent_id"), schema.ErrCodeValidation,
			"root must not have a parent")
	}

	for id, node := range tree.Nodes {
		validateNode(tree, id, node, result)
	}

	// Exactly one parentless node.
	var parentless []string
	for id, node := range tree.Nodes {
		if node != nil && node.ParentID == "" {
			parentless = append(parentless, id)
		}
	}
	if len(parentless) > 1 {
		result.AddError("nodes", schema.ErrCodeValidation,
			fmt.Sprintf("%d nodes have no parent; only the root may", len(parentless)))
	}

	// Every node must be reachable from the root, which also rules out
	// cycles (a cycle is never reachable from a parentless root).
	reached := 0
	tree.Walk(func(*schema.Node, int) { reached++ })
	if reached != len(tree.Nodes) {
		result.AddError("nodes", schema.ErrCodeValidation,
			fmt.Sprintf("%d of %d nodes unreachable from the root", len(tree.Nodes)-reached, len(tree.Nodes)))
	}

	return result
}

// validateNode checks a single node's fields and link consistency.
func validateNode(tree *schema.Tree, id string, node *schema.Node, result *schema.ValidationResult) {
	if node == nil {
		result.AddError(nodePath(id, ""), schema.ErrCodeValidation, "nil node entry")
		return
	}
	if node.ID != id {
		result.AddError(nodePath(id, "id"), schema.ErrCodeValidation,
			fmt.Sprintf("map key %q does not match node id %q", id, node.ID))
	}
	if !schema.ValidKind(node.Kind) {
		result.AddError(nodePath(id, "kind"), schema.ErrCodeValidation,
			fmt.Sprintf("unknown node kind %q", node.Kind))
	}
	if strings.TrimSpace(node.Content) == "" {
		result.AddError(nodePath(id, "content"), schema.ErrCodeValidation,
			"content must not be empty")
	}

	if node.ParentID != "" {
		parent := tree.Nodes[node.ParentID]
		switch {
		case parent == nil:
			result.AddError(nodePath(id, "parent_id"), schema.ErrCodeValidation,
				fmt.Sprintf("parent %q not present in node map", node.ParentID))
		case !containsID(parent.Children, id):
			result.AddError(nodePath(id, "parent_id"), schema.ErrCodeValidation,
				fmt.Sprintf("parent %q does not list this node as a child", node.ParentID))
		case schema.ValidKind(parent.Kind) && schema.ValidKind(node.Kind) && !schema.CanParent(parent.Kind, node.Kind):
			result.AddError(nodePath(id, "kind"), schema.ErrCodeHierarchy,
				fmt.Sprintf("a %s cannot contain a %s", parent.Kind, node.Kind))
		}
	}

	seen := make(map[string]bool, len(node.Children))
	for i, childID := range node.Children {
		path := fmt.Sprintf("nodes[%s].children[%d]", id, i)
		if seen[childID] {
			result.AddError(path, schema.ErrCodeValidation,
				fmt.Sprintf("duplicate child id %q", childID))
			continue
		}
		seen[childID] = true

		child := tree.Nodes[childID]
		if child == nil {
			result.AddError(path, schema.ErrCodeValidation,
				fmt.Sprintf("child %q not present in node map", childID))
			continue
		}
		if child.ParentID != id {
			result.AddError(path, schema.ErrCodeValidation,
				fmt.Sprintf("child %q claims parent %q", childID, child.ParentID))
		}
	}
}

func nodePath(id, field string) string {
	if field == "" {
		return fmt.Sprintf("nodes[%s]", id)
	}
	return fmt.Sprintf("nodes[%s].%s", id, field)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
