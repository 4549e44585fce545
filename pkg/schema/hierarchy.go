package schema

// RootKind is the only kind permitted at the top of a tree.
const RootKind = KindOutcome

// allowedChildren is the static hierarchy-typing table. Both the parser and
// the edit helpers consult it; there are no other sources of truth.
var allowedChildren = map[NodeKind][]NodeKind{
	KindOutcome:        {KindOpportunity},
	KindOpportunity:    {KindSolution, KindSubOpportunity},
	KindSolution:       {KindSubOpportunity},
	KindSubOpportunity: {KindSolution},
}

// CanParent reports whether a node of kind child may sit directly under a
// node of kind parent.
func CanParent(parent, child NodeKind) bool {
	for _, k := range allowedChildren[parent] {
		if k == child {
			return true
		}
	}
	return false
}

// AllowedChildren returns the child kinds permitted under the given kind.
// The returned slice is a copy.
func AllowedChildren(parent NodeKind) []NodeKind {
	kinds := allowedChildren[parent]
	out := make([]NodeKind, len(kinds))
	copy(out, kinds)
	return out
}
