package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ostkit/ostkit/internal/diagram"
	"github.com/ostkit/ostkit/internal/outline"
)

var diagramFormat string

var diagramCmd = &cobra.Command{
	Use:   "diagram [file]",
	Short: "Render an outline as a Mermaid or ASCII diagram",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDiagram(args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	diagramCmd.Flags().StringVarP(&diagramFormat, "format", "f", "mermaid", "Output format: mermaid or ascii")
	rootCmd.AddCommand(diagramCmd)
}

func runDiagram(args []string) error {
	text, name, err := readDocument(args)
	if err != nil {
		return err
	}

	result := outline.Parse(text)
	if !result.Success {
		return fmt.Errorf("%s does not parse; run 'ostkit check' for diagnostics", name)
	}

	model, err := diagram.Build(result.Tree)
	if err != nil {
		return err
	}

	switch diagramFormat {
	case "mermaid":
		fmt.Print(diagram.RenderMermaid(model))
	case "ascii":
		fmt.Print(diagram.RenderASCII(model))
	default:
		return fmt.Errorf("unknown format %q: use mermaid or ascii", diagramFormat)
	}
	return nil
}
