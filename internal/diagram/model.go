package diagram

import "github.com/ostkit/ostkit/pkg/schema"

// Model is the intermediate representation used by all renderers.
// Nodes are in pre-order; Levels groups render ids by tree depth.
type Model struct {
	Title  string
	Nodes  []*Node
	Edges  []Edge
	Levels [][]string
}

// Node is one renderable tree node. ID is a short render-safe identifier
// minted in pre-order (n1, n2, ...); NodeID is the tree node's uuid.
type Node struct {
	ID             string
	NodeID         string
	Label          string
	Kind           schema.NodeKind
	Depth          int
	MetadataCount  int
	HasDescription bool
}

// Edge links a parent render id to a child render id.
type Edge struct {
	From string
	To   string
}
