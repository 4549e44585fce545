package query

import (
	"context"
	"encoding/json"

	"github.com/ostkit/ostkit/pkg/schema"
)

// Language identifies the query dialect.
type Language string

const (
	LangExpr Language = "expr"
	LangCEL  Language = "cel"
	LangJQ   Language = "jq"
)

// Selector runs queries against a tree. Expr and CEL expressions are
// boolean predicates evaluated once per node; jq expressions transform
// the whole tree document. Safe for concurrent use.
type Selector struct {
	expr *ExprEngine
	cel  *CELEngine
	jq   *GoJQEngine
}

// NewSelector constructs a Selector with all three engines ready.
func NewSelector() (*Selector, error) {
	celEngine, err := NewCELEngine()
	if err != nil {
		return nil, err
	}
	return &Selector{
		expr: NewExprEngine(),
		cel:  celEngine,
		jq:   NewGoJQEngine(),
	}, nil
}

// Select returns the nodes for which the predicate holds, in pre-order.
// Only expr and cel are valid here; a predicate that evaluates to a
// non-boolean is a query error.
func (s *Selector) Select(ctx context.Context, tree *schema.Tree, lang Language, expression string) ([]*schema.Node, error) {
	var engine Engine
	switch lang {
	case LangExpr:
		engine = s.expr
	case LangCEL:
		engine = s.cel
	case LangJQ:
		return nil, schema.NewError(schema.ErrCodeQuery,
			"jq transforms the whole document; use EvaluateDocument")
	default:
		return nil, schema.NewErrorf(schema.ErrCodeQuery, "unknown query language %q", lang)
	}

	type candidate struct {
		node  *schema.Node
		depth int
	}
	var candidates []candidate
	tree.Walk(func(n *schema.Node, depth int) {
		candidates = append(candidates, candidate{node: n, depth: depth})
	})

	var matched []*schema.Node
	for _, c := range candidates {
		scope, err := nodeScope(tree, c.node, c.depth)
		if err != nil {
			return nil, err
		}
		out, err := engine.Evaluate(ctx, expression, scope)
		if err != nil {
			return nil, err
		}
		keep, ok := out.(bool)
		if !ok {
			return nil, schema.NewErrorf(schema.ErrCodeQuery,
				"predicate %q must return a boolean, got %T", expression, out)
		}
		if keep {
			matched = append(matched, c.node)
		}
	}
	return matched, nil
}

// EvaluateDocument runs a jq expression against the tree's JSON document
// form and returns all outputs.
func (s *Selector) EvaluateDocument(ctx context.Context, tree *schema.Tree, expression string) ([]any, error) {
	doc, err := toDocument(tree)
	if err != nil {
		return nil, err
	}
	return s.jq.EvaluateAll(ctx, expression, doc)
}

// nodeScope builds the per-node evaluation environment shared by the
// expr and CEL engines.
func nodeScope(tree *schema.Tree, node *schema.Node, depth int) (map[string]any, error) {
	nodeMap, err := toMap(node)
	if err != nil {
		return nil, err
	}

	parentMap := map[string]any{}
	if node.ParentID != "" {
		if parent := tree.Get(node.ParentID); parent != nil {
			parentMap, err = toMap(parent)
			if err != nil {
				return nil, err
			}
		}
	}

	return map[string]any{
		"node":   nodeMap,
		"parent": parentMap,
		"depth":  depth,
	}, nil
}

// toMap converts a value to its JSON object form so queries see the same
// field names as the interchange document (kind, content, parent_id...).
func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeInternal, "failed to encode node for query").WithCause(err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, schema.NewError(schema.ErrCodeInternal, "failed to decode node for query").WithCause(err)
	}
	return out, nil
}

// toDocument converts the whole tree to its JSON document form.
func toDocument(tree *schema.Tree) (map[string]any, error) {
	return toMap(tree)
}
