package schema

import "fmt"

// DiagnosticKind classifies a parse diagnostic. The taxonomy is flat.
type DiagnosticKind string

const (
	DiagSyntax      DiagnosticKind = "syntax"
	DiagIndentation DiagnosticKind = "indentation"
	DiagHierarchy   DiagnosticKind = "hierarchy"
	DiagPrefix      DiagnosticKind = "prefix"
)

// Diagnostic is a single positioned problem found in outline text.
// Line is 1-indexed; Column is a 0-indexed character offset. Indentation
// and hierarchy diagnostics default to column 0.
type Diagnostic struct {
	Line    int            `json:"line"`
	Column  int            `json:"column"`
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

// Severity maps the diagnostic kind to a severity: indentation problems are
// warnings for the host editor, everything else is an error.
func (d Diagnostic) Severity() ValidationSeverity {
	if d.Kind == DiagIndentation {
		return SeverityWarning
	}
	return SeverityError
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Kind, d.Message)
}
