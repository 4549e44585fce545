package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ostkit/ostkit/internal/diagram"
	"github.com/ostkit/ostkit/internal/logging"
	"github.com/ostkit/ostkit/internal/outline"
	"github.com/ostkit/ostkit/internal/query"
	"github.com/ostkit/ostkit/pkg/schema"
)

// handleParse parses outline text and returns the tree or its diagnostics.
func (s *TreeServer) handleParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = logging.WithToolName(ctx, "ost.parse")

	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}

	result := outline.Parse(text)
	logging.LogWith(ctx, s.logger).DebugContext(ctx, "parsed outline",
		"success", result.Success, "diagnostics", len(result.Diagnostics))
	return marshalResult(result)
}

// handleSerialize renders a tree document as outline text.
func (s *TreeServer) handleSerialize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = logging.WithToolName(ctx, "ost.serialize")

	tree, errResult := s.decodeTreeArg(req)
	if errResult != nil {
		return errResult, nil
	}

	opts := outline.DefaultSerializeOptions()
	opts.Shorthand = req.GetBool("shorthand", opts.Shorthand)
	opts.IncludeDescriptions = req.GetBool("include_descriptions", opts.IncludeDescriptions)

	result := outline.Serialize(tree, opts)
	logging.LogWith(ctx, s.logger).DebugContext(ctx, "serialized tree", "nodes", tree.Len())
	return marshalResult(result)
}

// handleValidate reports schema and invariant violations for a tree document.
func (s *TreeServer) handleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = logging.WithToolName(ctx, "ost.validate")

	raw, errResult := rawTreeArg(req)
	if errResult != nil {
		return errResult, nil
	}

	_, err := s.validator.DecodeTree(raw)
	if err != nil {
		report := map[string]any{"valid": false, "error": err.Error()}
		var engErr *schema.EngineError
		if errors.As(err, &engErr) {
			report["code"] = engErr.Code
			if len(engErr.Details) > 0 {
				report["details"] = engErr.Details
			}
		}
		logging.LogWith(ctx, s.logger).DebugContext(ctx, "tree rejected", "error", err)
		return marshalResult(report)
	}

	return marshalResult(map[string]any{"valid": true})
}

// handleQuery runs a node predicate or document transform against a tree.
func (s *TreeServer) handleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = logging.WithToolName(ctx, "ost.query")

	tree, errResult := s.decodeTreeArg(req)
	if errResult != nil {
		return errResult, nil
	}
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError("language is required"), nil
	}
	expression, err := req.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError("expression is required"), nil
	}

	if query.Language(language) == query.LangJQ {
		outputs, evalErr := s.selector.EvaluateDocument(ctx, tree, expression)
		if evalErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", evalErr)), nil
		}
		return marshalResult(map[string]any{"results": outputs})
	}

	matched, selErr := s.selector.Select(ctx, tree, query.Language(language), expression)
	if selErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", selErr)), nil
	}
	logging.LogWith(ctx, s.logger).DebugContext(ctx, "query matched nodes", "count", len(matched))
	return marshalResult(map[string]any{
		"count":   len(matched),
		"matches": matched,
	})
}

// handleDiagram renders a tree in the requested diagram format.
func (s *TreeServer) handleDiagram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = logging.WithToolName(ctx, "ost.diagram")

	tree, errResult := s.decodeTreeArg(req)
	if errResult != nil {
		return errResult, nil
	}
	format, err := req.RequireString("format")
	if err != nil {
		return mcp.NewToolResultError("format is required"), nil
	}

	model, buildErr := diagram.Build(tree)
	if buildErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diagram build failed: %v", buildErr)), nil
	}

	switch format {
	case "mermaid":
		return mcp.NewToolResultText(diagram.RenderMermaid(model)), nil
	case "ascii":
		return mcp.NewToolResultText(diagram.RenderASCII(model)), nil
	default:
		return mcp.NewToolResultError("format must be mermaid or ascii"), nil
	}
}

// --- Internal helpers ---

// rawTreeArg extracts the tree argument as raw JSON bytes.
func rawTreeArg(req mcp.CallToolRequest) ([]byte, *mcp.CallToolResult) {
	treeArg := mcp.ParseStringMap(req, "tree", nil)
	if treeArg == nil {
		return nil, mcp.NewToolResultError("tree is required")
	}
	raw, err := json.Marshal(treeArg)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid tree: %v", err))
	}
	return raw, nil
}

// decodeTreeArg extracts and fully validates the tree argument.
func (s *TreeServer) decodeTreeArg(req mcp.CallToolRequest) (*schema.Tree, *mcp.CallToolResult) {
	raw, errResult := rawTreeArg(req)
	if errResult != nil {
		return nil, errResult
	}
	tree, err := s.validator.DecodeTree(raw)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid tree: %v", err))
	}
	return tree, nil
}

// marshalResult converts a value to a JSON text tool result.
func marshalResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultJSON(json.RawMessage(data))
}
