package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ostmcp "github.com/ostkit/ostkit/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tree tools over MCP stdio",
	Long: `Starts an MCP server on stdin/stdout exposing ost.parse, ost.serialize,
ost.validate, ost.query and ost.diagram. Logs go to stderr.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMCP(cmd); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command) error {
	srv, err := ostmcp.NewTreeServer(ostmcp.TreeServerDeps{Logger: logger})
	if err != nil {
		return err
	}
	logger.Info("serving MCP over stdio")
	return srv.Serve(cmd.Context())
}
