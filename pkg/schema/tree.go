package schema

// NodeKind is one of the four sticky-note kinds an opportunity solution
// tree is built from.
type NodeKind string

const (
	KindOutcome        NodeKind = "outcome"
	KindOpportunity    NodeKind = "opportunity"
	KindSolution       NodeKind = "solution"
	KindSubOpportunity NodeKind = "sub-opportunity"
)

// ValidKind reports whether k is one of the four known node kinds.
func ValidKind(k NodeKind) bool {
	switch k {
	case KindOutcome, KindOpportunity, KindSolution, KindSubOpportunity:
		return true
	}
	return false
}

// Position is the canvas coordinate of a node. It matters only to the
// visual layer; parse/serialize correctness never depends on it, but the
// parser regenerates positions so a fresh tree stays renderable.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MetadataField is one labeled group of values attached to a node, e.g.
// {Name: "Evidence", Values: ["interview 3", "support ticket"]}.
// Field order and value order are both meaningful for serialization.
type MetadataField struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Node is a single tree entity. IDs are opaque uuids minted on creation
// (parse or edit action) and never recomputed from content.
type Node struct {
	ID          string          `json:"id"`
	Kind        NodeKind        `json:"kind"`
	Content     string          `json:"content"`
	Description string          `json:"description,omitempty"`
	Metadata    []MetadataField `json:"metadata,omitempty"`
	ParentID    string          `json:"parent_id,omitempty"` // empty only for the root
	Children    []string        `json:"children,omitempty"`  // serialization order
	Position    Position        `json:"position"`
}

// AddMetadata appends a value under the named field, preserving first-seen
// field order. Repeated names accumulate values in arrival order.
func (n *Node) AddMetadata(name, value string) {
	for i := range n.Metadata {
		if n.Metadata[i].Name == name {
			n.Metadata[i].Values = append(n.Metadata[i].Values, value)
			return
		}
	}
	n.Metadata = append(n.Metadata, MetadataField{Name: name, Values: []string{value}})
}

// MetadataValues returns the values stored under name, nil if absent.
func (n *Node) MetadataValues(name string) []string {
	for i := range n.Metadata {
		if n.Metadata[i].Name == name {
			return n.Metadata[i].Values
		}
	}
	return nil
}

// Tree is the full document state: a root id plus the id→node mapping.
// SelectedNodeID is transient UI state and is excluded from interchange.
type Tree struct {
	RootID         string           `json:"root_id"`
	Nodes          map[string]*Node `json:"nodes"`
	SelectedNodeID string           `json:"-"`
}

// Root returns the root node, or nil if the tree is in a transient state
// with no root assigned.
func (t *Tree) Root() *Node {
	if t == nil || t.RootID == "" {
		return nil
	}
	return t.Nodes[t.RootID]
}

// Get returns the node with the given id, or nil.
func (t *Tree) Get(id string) *Node {
	if t == nil {
		return nil
	}
	return t.Nodes[id]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

// Walk visits nodes in pre-order starting at the root, children in stored
// order. Depth is 0 for the root. Unreachable nodes are not visited.
func (t *Tree) Walk(visit func(n *Node, depth int)) {
	root := t.Root()
	if root == nil {
		return
	}
	t.walk(root, 0, visit)
}

func (t *Tree) walk(n *Node, depth int, visit func(*Node, int)) {
	visit(n, depth)
	for _, childID := range n.Children {
		if child := t.Nodes[childID]; child != nil {
			t.walk(child, depth+1, visit)
		}
	}
}

// Depth returns the distance from the root to the node with the given id,
// or -1 if the node is absent or detached from the root.
func (t *Tree) Depth(id string) int {
	depth := 0
	for {
		n := t.Get(id)
		if n == nil {
			return -1
		}
		if n.ParentID == "" {
			if n.ID == t.RootID {
				return depth
			}
			return -1
		}
		id = n.ParentID
		depth++
		if depth > t.Len() {
			return -1 // cycle guard
		}
	}
}
