package diagram

import (
	"fmt"
	"strings"
)

// kindTag returns the short bracketed tag shown next to each label.
func kindTag(node *Node) string {
	switch node.Kind {
	case "outcome":
		return "[O]"
	case "opportunity":
		return "[OP]"
	case "solution":
		return "[S]"
	case "sub-opportunity":
		return "[SU]"
	default:
		return "[?]"
	}
}

// RenderASCII renders a Model as an indented text tree with box-drawing
// connectors:
//
//	[O] Grow revenue
//	├── [OP] Increase signups
//	│   └── [S] Referral program
//	└── [OP] Reduce churn
func RenderASCII(model *Model) string {
	var b strings.Builder

	if len(model.Nodes) == 0 {
		return ""
	}

	children := childIndex(model)
	root := model.Nodes[0]

	b.WriteString(fmt.Sprintf("%s %s%s\n", kindTag(root), root.Label, annotations(root)))
	renderChildren(&b, model, children, root.ID, "")

	return b.String()
}

// childIndex maps each render id to its children, in model order.
func childIndex(model *Model) map[string][]*Node {
	byID := make(map[string]*Node, len(model.Nodes))
	for _, n := range model.Nodes {
		byID[n.ID] = n
	}
	children := make(map[string][]*Node, len(model.Nodes))
	for _, e := range model.Edges {
		children[e.From] = append(children[e.From], byID[e.To])
	}
	return children
}

// renderChildren emits the subtree below id with the given line prefix.
func renderChildren(b *strings.Builder, model *Model, children map[string][]*Node, id, prefix string) {
	kids := children[id]
	for i, child := range kids {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(kids)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		b.WriteString(fmt.Sprintf("%s%s%s %s%s\n", prefix, connector, kindTag(child), child.Label, annotations(child)))
		renderChildren(b, model, children, child.ID, childPrefix)
	}
}

// annotations summarizes attachments: metadata entry count and whether a
// description is present.
func annotations(node *Node) string {
	var parts []string
	if node.MetadataCount > 0 {
		parts = append(parts, fmt.Sprintf("%d meta", node.MetadataCount))
	}
	if node.HasDescription {
		parts = append(parts, "desc")
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
