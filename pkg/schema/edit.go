package schema

import (
	"strings"

	"github.com/google/uuid"
)

// NewTree creates a tree holding a single outcome root with the given
// content. This is the entry point for building trees programmatically;
// parsed trees come from the outline package instead.
func NewTree(rootContent string) (*Tree, error) {
	content := strings.TrimSpace(rootContent)
	if content == "" {
		return nil, NewError(ErrCodeValidation, "root content must not be empty")
	}

	root := &Node{
		ID:      uuid.New().String(),
		Kind:    RootKind,
		Content: content,
	}
	return &Tree{
		RootID: root.ID,
		Nodes:  map[string]*Node{root.ID: root},
	}, nil
}

// AddChild creates a node of the given kind under parentID, appending it to
// the parent's child order. The hierarchy table is enforced.
func (t *Tree) AddChild(parentID string, kind NodeKind, content string) (*Node, error) {
	parent := t.Get(parentID)
	if parent == nil {
		return nil, NewErrorf(ErrCodeNotFound, "parent node %q not found", parentID)
	}
	if !ValidKind(kind) {
		return nil, NewErrorf(ErrCodeValidation, "unknown node kind %q", kind)
	}
	if !CanParent(parent.Kind, kind) {
		return nil, NewErrorf(ErrCodeHierarchy,
			"a %s cannot contain a %s", parent.Kind, kind).WithNode(parentID)
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, NewError(ErrCodeValidation, "node content must not be empty")
	}

	node := &Node{
		ID:       uuid.New().String(),
		Kind:     kind,
		Content:  trimmed,
		ParentID: parentID,
	}
	t.Nodes[node.ID] = node
	parent.Children = append(parent.Children, node.ID)
	return node, nil
}

// RemoveSubtree deletes the node and all of its descendants. The root
// cannot be removed; replace the whole tree instead.
func (t *Tree) RemoveSubtree(id string) error {
	node := t.Get(id)
	if node == nil {
		return NewErrorf(ErrCodeNotFound, "node %q not found", id)
	}
	if id == t.RootID {
		return NewError(ErrCodeValidation, "cannot remove the root node")
	}

	if parent := t.Get(node.ParentID); parent != nil {
		parent.Children = removeID(parent.Children, id)
	}
	t.cascadeDelete(id)
	if t.SelectedNodeID != "" && t.Get(t.SelectedNodeID) == nil {
		t.SelectedNodeID = ""
	}
	return nil
}

// cascadeDelete removes a node and its descendants from the node map.
func (t *Tree) cascadeDelete(id string) {
	node := t.Get(id)
	if node == nil {
		return
	}
	for _, childID := range node.Children {
		t.cascadeDelete(childID)
	}
	delete(t.Nodes, id)
}

// Reparent moves the node (with its subtree) under a new parent, appended
// to the new parent's child order. Hierarchy typing is enforced, and a node
// may not be moved into its own subtree.
func (t *Tree) Reparent(id, newParentID string) error {
	node := t.Get(id)
	if node == nil {
		return NewErrorf(ErrCodeNotFound, "node %q not found", id)
	}
	if id == t.RootID {
		return NewError(ErrCodeValidation, "cannot reparent the root node")
	}
	newParent := t.Get(newParentID)
	if newParent == nil {
		return NewErrorf(ErrCodeNotFound, "parent node %q not found", newParentID)
	}
	if !CanParent(newParent.Kind, node.Kind) {
		return NewErrorf(ErrCodeHierarchy,
			"a %s cannot contain a %s", newParent.Kind, node.Kind).WithNode(newParentID)
	}
	if t.inSubtree(newParentID, id) {
		return NewErrorf(ErrCodeValidation,
			"cannot move node %q into its own subtree", id)
	}

	if oldParent := t.Get(node.ParentID); oldParent != nil {
		oldParent.Children = removeID(oldParent.Children, id)
	}
	node.ParentID = newParentID
	newParent.Children = append(newParent.Children, id)
	return nil
}

// inSubtree reports whether candidate lies in the subtree rooted at rootID.
func (t *Tree) inSubtree(candidate, rootID string) bool {
	if candidate == rootID {
		return true
	}
	node := t.Get(rootID)
	if node == nil {
		return false
	}
	for _, childID := range node.Children {
		if t.inSubtree(candidate, childID) {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
