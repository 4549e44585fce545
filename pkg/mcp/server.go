package mcp

import (
	"context"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ostkit/ostkit/internal/query"
	"github.com/ostkit/ostkit/internal/validation"
)

// TreeServerDeps holds the dependencies for creating a TreeServer.
// Nil fields are constructed with defaults.
type TreeServerDeps struct {
	Validator *validation.DocumentValidator
	Selector  *query.Selector
	Logger    *slog.Logger
}

// TreeServer wraps an MCP server with the tree tool handlers.
type TreeServer struct {
	validator *validation.DocumentValidator
	selector  *query.Selector
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewTreeServer creates a TreeServer with all 5 tools registered.
func NewTreeServer(deps TreeServerDeps) (*TreeServer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	validator := deps.Validator
	if validator == nil {
		var err error
		validator, err = validation.NewDocumentValidator()
		if err != nil {
			return nil, err
		}
	}

	selector := deps.Selector
	if selector == nil {
		var err error
		selector, err = query.NewSelector()
		if err != nil {
			return nil, err
		}
	}

	s := &TreeServer{
		validator: validator,
		selector:  selector,
		logger:    logger,
	}

	mcpSrv := server.NewMCPServer(
		"ostkit",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("ostkit edits opportunity solution trees as plain text outlines. Use ost.parse to turn outline text into a tree with diagnostics, ost.serialize to render a tree back to text, ost.validate to check a tree JSON document, ost.query to select nodes or transform the document, and ost.diagram to render Mermaid or ASCII views."),
	)

	mcpSrv.AddTools(s.tools()...)
	s.mcpServer = mcpSrv
	return s, nil
}

// Serve starts the stdio transport and blocks until ctx is cancelled or stdin closes.
func (s *TreeServer) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// MCPServer returns the underlying MCPServer for testing or custom transports.
func (s *TreeServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// tools returns the 5 registered MCP tools as ServerTool entries.
func (s *TreeServer) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: parseTool(), Handler: s.handleParse},
		{Tool: serializeTool(), Handler: s.handleSerialize},
		{Tool: validateTool(), Handler: s.handleValidate},
		{Tool: queryTool(), Handler: s.handleQuery},
		{Tool: diagramTool(), Handler: s.handleDiagram},
	}
}

// --- Tool definitions ---

func parseTool() mcp.Tool {
	return mcp.NewTool("ost.parse",
		mcp.WithDescription("Parse outline text into a tree. Returns the tree and node line map on success, or positioned diagnostics on failure"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Outline text to parse")),
	)
}

func serializeTool() mcp.Tool {
	return mcp.NewTool("ost.serialize",
		mcp.WithDescription("Render a tree JSON document as outline text with a node line map"),
		mcp.WithObject("tree", mcp.Required(), mcp.Description("Tree document (root_id plus nodes map)")),
		mcp.WithBoolean("shorthand", mcp.Description("Use short prefixes like O: instead of OUTCOME: (default true)")),
		mcp.WithBoolean("include_descriptions", mcp.Description("Include metadata and description lines (default true)")),
	)
}

func validateTool() mcp.Tool {
	return mcp.NewTool("ost.validate",
		mcp.WithDescription("Validate a tree JSON document against the interchange schema and the structural invariants"),
		mcp.WithObject("tree", mcp.Required(), mcp.Description("Tree document to validate")),
	)
}

func queryTool() mcp.Tool {
	return mcp.NewTool("ost.query",
		mcp.WithDescription("Query a tree. expr and cel run a boolean predicate per node and return the matches; jq transforms the whole document"),
		mcp.WithObject("tree", mcp.Required(), mcp.Description("Tree document to query")),
		mcp.WithString("language", mcp.Required(),
			mcp.Enum("expr", "cel", "jq"),
			mcp.Description("Query dialect"),
		),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Query expression")),
	)
}

func diagramTool() mcp.Tool {
	return mcp.NewTool("ost.diagram",
		mcp.WithDescription("Render a tree as a diagram. Returns Mermaid flowchart syntax or an ASCII tree"),
		mcp.WithObject("tree", mcp.Required(), mcp.Description("Tree document to render")),
		mcp.WithString("format", mcp.Required(),
			mcp.Enum("mermaid", "ascii"),
			mcp.Description("Output format"),
		),
	)
}
