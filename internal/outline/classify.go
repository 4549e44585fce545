package outline

import (
	"regexp"
	"strings"

	"github.com/ostkit/ostkit/pkg/schema"
)

// LineRole classifies a single line of outline text.
type LineRole int

const (
	RoleBlank LineRole = iota
	RoleNodeDeclaration
	RoleMetadataField
	RoleQuotedDescription
	RoleContinuationDescription
	RolePrefixError
)

// nodePrefixes maps the eight recognized declaration prefixes to node
// kinds. Matching is case-sensitive and includes the trailing colon.
var nodePrefixes = []struct {
	Prefix string
	Kind   schema.NodeKind
}{
	{"OUTCOME:", schema.KindOutcome},
	{"O:", schema.KindOutcome},
	{"OPP:", schema.KindOpportunity},
	{"OP:", schema.KindOpportunity},
	{"SOL:", schema.KindSolution},
	{"S:", schema.KindSolution},
	{"SUB:", schema.KindSubOpportunity},
	{"SU:", schema.KindSubOpportunity},
}

// metadataLinePattern matches "label: value" where the label is letters,
// digits, spaces, or underscores (no colon inside the label).
var metadataLinePattern = regexp.MustCompile(`^([A-Za-z0-9_ ]+):(.*)$`)

// classifyContext is the limited lookback state the classifier needs: the
// indentation of the most recently created node, if any. A blank line
// clears it.
type classifyContext struct {
	hasNode    bool
	nodeIndent int
}

// lineInfo is the classification of one line.
type lineInfo struct {
	role   LineRole
	indent int // leading space count (tabs never count)

	// RoleNodeDeclaration
	prefix  string
	kind    schema.NodeKind
	content string

	// RoleMetadataField
	field string
	value string

	// RoleQuotedDescription / RoleContinuationDescription
	text string
}

// classify determines the role of a single line. NodeDeclaration is checked
// first, unconditionally: a line such as "OP: thing" is always a node
// declaration even though it also matches the metadata shape. Only after
// ruling that out do metadata, quoted description, and continuation apply,
// in that order, and only for lines indented deeper than the current node.
func classify(line string, ctx classifyContext) lineInfo {
	if strings.TrimSpace(line) == "" {
		return lineInfo{role: RoleBlank}
	}

	indent := countIndent(line)
	rest := line[indent:]

	for _, p := range nodePrefixes {
		if strings.HasPrefix(rest, p.Prefix) {
			return lineInfo{
				role:    RoleNodeDeclaration,
				indent:  indent,
				prefix:  p.Prefix,
				kind:    p.Kind,
				content: strings.TrimSpace(rest[len(p.Prefix):]),
			}
		}
	}

	// Attachment lines require a current node and strictly deeper indent.
	if ctx.hasNode && indent > ctx.nodeIndent {
		trimmed := strings.TrimSpace(rest)

		if m := metadataLinePattern.FindStringSubmatch(trimmed); m != nil {
			name := strings.TrimSpace(m[1])
			if name != "" {
				return lineInfo{
					role:   RoleMetadataField,
					indent: indent,
					field:  name,
					value:  strings.TrimSpace(m[2]),
				}
			}
		}

		if text, ok := unquote(trimmed); ok {
			return lineInfo{role: RoleQuotedDescription, indent: indent, text: text}
		}

		return lineInfo{role: RoleContinuationDescription, indent: indent, text: trimmed}
	}

	return lineInfo{role: RolePrefixError, indent: indent}
}

// countIndent counts leading literal space characters. A tab stops the
// count: tabs are never indentation.
func countIndent(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// unquote strips a single enclosing pair of straight quotes, double or
// single, not mixed. Returns false if the line is not quoted.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if first != last {
		return "", false
	}
	if first != '"' && first != '\'' {
		return "", false
	}
	return s[1 : len(s)-1], true
}
