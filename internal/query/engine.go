package query

import "context"

// Engine evaluates query expressions against tree data.
// Three implementations: Expr and CEL (per-node boolean predicates),
// GoJQ (whole-document transforms).
type Engine interface {
	Name() string
	Evaluate(ctx context.Context, expression string, data map[string]any) (any, error)
}
