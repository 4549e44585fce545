package diagram

import (
	"fmt"
	"strings"

	"github.com/ostkit/ostkit/pkg/schema"
)

// RenderMermaid renders a Model as a Mermaid flowchart string.
func RenderMermaid(model *Model) string {
	var b strings.Builder

	b.WriteString("graph TD\n")

	// Title as comment.
	if model.Title != "" {
		b.WriteString(fmt.Sprintf("    %%%% %s\n", model.Title))
	}

	// Nodes with shapes based on kind.
	for _, node := range model.Nodes {
		b.WriteString(fmt.Sprintf("    %s\n", mermaidNodeDef(node)))
	}

	// Parent→child edges.
	for _, edge := range model.Edges {
		b.WriteString(fmt.Sprintf("    %s --> %s\n", edge.From, edge.To))
	}

	// Kind class definitions.
	b.WriteString("\n")
	b.WriteString("    classDef outcome fill:#1a5276,stroke:#0e3a52,color:#fff\n")
	b.WriteString("    classDef opportunity fill:#b7791a,stroke:#8a5c14,color:#fff\n")
	b.WriteString("    classDef solution fill:#2d6a2d,stroke:#1a4a1a,color:#fff\n")
	b.WriteString("    classDef subopportunity fill:#6b4a8a,stroke:#4a3360,color:#fff\n")

	// Apply kind classes.
	for _, node := range model.Nodes {
		b.WriteString(fmt.Sprintf("    class %s %s\n", node.ID, mermaidKindClass(node.Kind)))
	}

	return b.String()
}

// mermaidNodeDef returns a Mermaid node definition with the appropriate shape.
func mermaidNodeDef(node *Node) string {
	label := mermaidEscapeLabel(node.Label)

	switch node.Kind {
	case schema.KindOutcome:
		return fmt.Sprintf("%s([%q])", node.ID, label)
	case schema.KindOpportunity:
		return fmt.Sprintf("%s[%q]", node.ID, label)
	case schema.KindSolution:
		return fmt.Sprintf("%s(%q)", node.ID, label)
	case schema.KindSubOpportunity:
		return fmt.Sprintf("%s[[%q]]", node.ID, label)
	default:
		return fmt.Sprintf("%s[%q]", node.ID, label)
	}
}

// mermaidKindClass maps a node kind to its classDef name.
func mermaidKindClass(kind schema.NodeKind) string {
	if kind == schema.KindSubOpportunity {
		return "subopportunity"
	}
	return string(kind)
}

// mermaidEscapeLabel keeps labels single-line; quoting in the node shape
// handles the rest.
func mermaidEscapeLabel(s string) string {
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}
