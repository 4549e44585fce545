package outline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ostkit/ostkit/pkg/schema"
)

// ParseResult is the outcome of parsing an outline document. Either
// Success is true and Tree/NodeLines are set, or Success is false and
// Diagnostics is non-empty. A parse with any diagnostic yields no tree.
type ParseResult struct {
	Success     bool                `json:"success"`
	Tree        *schema.Tree        `json:"tree,omitempty"`
	NodeLines   map[string]int      `json:"node_lines,omitempty"` // node id → 1-indexed line
	Diagnostics []schema.Diagnostic `json:"diagnostics,omitempty"`
}

// parseState is the per-call mutable state. Keeping it in a local struct
// (rather than package-level variables) is what makes Parse safe to call
// concurrently: two parses never share anything.
type parseState struct {
	nodes     map[string]*schema.Node
	rootID    string
	nodeLines map[string]int
	diags     []schema.Diagnostic

	// ancestors is the chain of open nodes by indent. The top entry is the
	// candidate parent for the next deeper declaration.
	ancestors []stackEntry

	// last is the most recently created node, the attachment target for
	// metadata and description lines. Distinct from the ancestor stack: a
	// just-created leaf receives attachments even before it has children.
	last       *schema.Node
	lastIndent int
}

type stackEntry struct {
	node   *schema.Node
	indent int
}

// Parse converts outline text into a validated tree plus a node→line map.
// It is a pure function: identical text always yields the same diagnostics
// and the same tree shape (node ids are freshly minted each call and carry
// no structural meaning). Malformed text is reported through Diagnostics,
// never through a panic or error value.
func Parse(text string) *ParseResult {
	st := &parseState{
		nodes:     make(map[string]*schema.Node),
		nodeLines: make(map[string]int),
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		st.consumeLine(i+1, line)
	}

	if st.rootID == "" && len(st.nodes) > 0 {
		st.addDiag(1, 0, schema.DiagHierarchy, "no root found")
	}
	if len(st.nodes) == 0 && len(st.diags) == 0 {
		st.addDiag(1, 0, schema.DiagSyntax, "empty tree")
	}

	if len(st.diags) > 0 {
		return &ParseResult{Success: false, Diagnostics: st.diags}
	}

	tree := &schema.Tree{RootID: st.rootID, Nodes: st.nodes}
	assignPositions(tree)
	return &ParseResult{Success: true, Tree: tree, NodeLines: st.nodeLines}
}

// consumeLine processes a single line of the document.
func (st *parseState) consumeLine(lineNum int, line string) {
	info := classify(line, classifyContext{
		hasNode:    st.last != nil,
		nodeIndent: st.lastIndent,
	})

	switch info.role {
	case RoleBlank:
		// A blank line terminates the attachment run for the preceding
		// node. The ancestor stack is untouched.
		st.last = nil

	case RoleMetadataField:
		st.last.AddMetadata(info.field, info.value)

	case RoleQuotedDescription, RoleContinuationDescription:
		if st.last.Description == "" {
			st.last.Description = info.text
		} else {
			st.last.Description += "\n" + info.text
		}

	case RoleNodeDeclaration:
		st.declareNode(lineNum, info)

	case RolePrefixError:
		st.addDiag(lineNum, info.indent, schema.DiagPrefix, "invalid or missing node prefix")
	}
}

// declareNode handles a node-declaration line: indentation and hierarchy
// checks, then node creation and linking. Every failure here is
// recoverable: the line is skipped and parsing continues.
func (st *parseState) declareNode(lineNum int, info lineInfo) {
	if info.indent%2 != 0 {
		st.addDiag(lineNum, 0, schema.DiagIndentation,
			"indentation must be a multiple of 2 spaces")
		return
	}

	if info.indent == 0 {
		if st.rootID != "" {
			st.addDiag(lineNum, 0, schema.DiagHierarchy,
				"multiple roots: only one top-level node is allowed")
			return
		}
		if info.kind != schema.RootKind {
			st.addDiag(lineNum, 0, schema.DiagHierarchy,
				"root must be an outcome (O: or OUTCOME:)")
			return
		}
		if info.content == "" {
			st.addDiag(lineNum, info.indent+len(info.prefix), schema.DiagSyntax,
				"node content must not be empty")
			return
		}

		root := st.createNode(info, "")
		st.rootID = root.ID
		st.ancestors = []stackEntry{{node: root, indent: 0}}
		st.recordNode(root, lineNum, info.indent)
		return
	}

	// Pop until the top of the stack is at strictly lower indent: that
	// entry is the parent for this line.
	for len(st.ancestors) > 0 && st.ancestors[len(st.ancestors)-1].indent >= info.indent {
		st.ancestors = st.ancestors[:len(st.ancestors)-1]
	}
	if len(st.ancestors) == 0 {
		st.addDiag(lineNum, 0, schema.DiagIndentation, "no parent at this level")
		return
	}

	parent := st.ancestors[len(st.ancestors)-1].node
	if !schema.CanParent(parent.Kind, info.kind) {
		st.addDiag(lineNum, 0, schema.DiagHierarchy,
			"a "+string(parent.Kind)+" cannot contain a "+string(info.kind))
		return
	}
	if info.content == "" {
		st.addDiag(lineNum, info.indent+len(info.prefix), schema.DiagSyntax,
			"node content must not be empty")
		return
	}

	node := st.createNode(info, parent.ID)
	parent.Children = append(parent.Children, node.ID)
	st.ancestors = append(st.ancestors, stackEntry{node: node, indent: info.indent})
	st.recordNode(node, lineNum, info.indent)
}

func (st *parseState) createNode(info lineInfo, parentID string) *schema.Node {
	node := &schema.Node{
		ID:       uuid.New().String(),
		Kind:     info.kind,
		Content:  info.content,
		ParentID: parentID,
	}
	st.nodes[node.ID] = node
	return node
}

func (st *parseState) recordNode(node *schema.Node, lineNum, indent int) {
	st.nodeLines[node.ID] = lineNum
	st.last = node
	st.lastIndent = indent
}

func (st *parseState) addDiag(line, column int, kind schema.DiagnosticKind, message string) {
	st.diags = append(st.diags, schema.Diagnostic{
		Line: line, Column: column, Kind: kind, Message: message,
	})
}

// Canvas spacing for regenerated positions. The values only need to keep
// sibling sticky notes from overlapping on first render.
const (
	positionColWidth  = 260.0
	positionRowHeight = 120.0
)

// assignPositions lays parsed nodes on a deterministic depth/order grid.
// Parsing regenerates all positions; the interactive canvas is free to
// move nodes afterwards.
func assignPositions(tree *schema.Tree) {
	row := 0
	tree.Walk(func(n *schema.Node, depth int) {
		n.Position = schema.Position{
			X: float64(depth) * positionColWidth,
			Y: float64(row) * positionRowHeight,
		}
		row++
	})
}
