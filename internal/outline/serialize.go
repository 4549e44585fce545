package outline

import (
	"strings"

	"github.com/ostkit/ostkit/pkg/schema"
)

// SerializeOptions selects the prefix style and whether metadata and
// description lines are emitted.
type SerializeOptions struct {
	Shorthand           bool `json:"shorthand"`             // O: vs OUTCOME:
	IncludeDescriptions bool `json:"include_descriptions"` // metadata + description lines
}

// DefaultSerializeOptions returns the canonical style: shorthand prefixes
// with descriptions and metadata included.
func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{Shorthand: true, IncludeDescriptions: true}
}

// SerializeResult is the text rendering of a tree plus the node→line map
// the editor uses to sync selection with cursor position.
type SerializeResult struct {
	Text      string         `json:"text"`
	NodeLines map[string]int `json:"node_lines"`
}

var shortPrefix = map[schema.NodeKind]string{
	schema.KindOutcome:        "O:",
	schema.KindOpportunity:    "OP:",
	schema.KindSolution:       "S:",
	schema.KindSubOpportunity: "SU:",
}

var longPrefix = map[schema.NodeKind]string{
	schema.KindOutcome:        "OUTCOME:",
	schema.KindOpportunity:    "OPP:",
	schema.KindSolution:       "SOL:",
	schema.KindSubOpportunity: "SUB:",
}

// metadataPriority is the canonical emission order for well-known field
// names. Fields not listed here follow in their insertion order.
var metadataPriority = []string{"Evidence", "Problem", "Supporting Data", "Impact", "Effort"}

// Serialize renders a tree as outline text using pre-order traversal,
// two spaces of indentation per depth level. It is pure: the same tree and
// options always produce byte-identical text and an identical line map.
//
// A tree with no resolvable root (nil tree, empty RootID, or a RootID
// missing from the node map) serializes to empty output. Such trees are
// transient during construction.
func Serialize(tree *schema.Tree, opts SerializeOptions) *SerializeResult {
	result := &SerializeResult{NodeLines: make(map[string]int)}

	root := tree.Root()
	if root == nil {
		return result
	}

	var b strings.Builder
	lineNum := 0
	serializeNode(tree, root, 0, opts, &b, &lineNum, result.NodeLines)
	result.Text = b.String()
	return result
}

// serializeNode emits one node's declaration, metadata, and description,
// then recurses into its children in stored order.
func serializeNode(tree *schema.Tree, node *schema.Node, depth int, opts SerializeOptions, b *strings.Builder, lineNum *int, nodeLines map[string]int) {
	prefix := shortPrefix[node.Kind]
	if !opts.Shorthand {
		prefix = longPrefix[node.Kind]
	}

	writeLine(b, lineNum, indentOf(depth)+prefix+" "+node.Content)
	nodeLines[node.ID] = *lineNum

	if opts.IncludeDescriptions {
		childIndent := indentOf(depth + 1)

		for _, field := range orderedMetadata(node.Metadata) {
			for _, value := range field.Values {
				writeLine(b, lineNum, childIndent+field.Name+": "+value)
			}
		}

		if node.Description != "" {
			descLines := strings.Split(node.Description, "\n")
			if len(descLines) == 1 {
				writeLine(b, lineNum, childIndent+`"`+descLines[0]+`"`)
			} else {
				for _, dl := range descLines {
					writeLine(b, lineNum, childIndent+dl)
				}
			}
		}
	}

	for _, childID := range node.Children {
		if child := tree.Get(childID); child != nil {
			serializeNode(tree, child, depth+1, opts, b, lineNum, nodeLines)
		}
	}
}

// orderedMetadata returns fields sorted by the canonical priority list,
// then remaining fields in insertion order. Value order inside a field is
// never changed. Externally supplied trees may split one field name across
// several entries; those merge into a single field, values concatenated in
// arrival order.
func orderedMetadata(fields []schema.MetadataField) []schema.MetadataField {
	if len(fields) == 0 {
		return nil
	}

	merged := make([]schema.MetadataField, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := index[f.Name]; ok {
			merged[i].Values = append(merged[i].Values, f.Values...)
			continue
		}
		index[f.Name] = len(merged)
		merged = append(merged, schema.MetadataField{
			Name:   f.Name,
			Values: append([]string(nil), f.Values...),
		})
	}

	out := make([]schema.MetadataField, 0, len(merged))
	used := make(map[string]bool, len(merged))

	for _, name := range metadataPriority {
		if i, ok := index[name]; ok && !used[name] {
			out = append(out, merged[i])
			used[name] = true
		}
	}
	for _, f := range merged {
		if !used[f.Name] {
			out = append(out, f)
			used[f.Name] = true
		}
	}
	return out
}

func writeLine(b *strings.Builder, lineNum *int, line string) {
	b.WriteString(line)
	b.WriteByte('\n')
	*lineNum++
}

func indentOf(depth int) string {
	return strings.Repeat("  ", depth)
}
