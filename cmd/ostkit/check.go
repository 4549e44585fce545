package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ostkit/ostkit/internal/outline"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse an outline and report diagnostics",
	Long: `Parses the outline and prints every diagnostic with its position.
Reads from stdin when no file is given. Exits non-zero if the outline
does not parse into a tree.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(args []string) error {
	text, name, err := readDocument(args)
	if err != nil {
		return err
	}

	result := outline.Parse(text)
	if result.Success {
		fmt.Printf("%s: %d nodes, no diagnostics\n", name, result.Tree.Len())
		return nil
	}

	for _, d := range result.Diagnostics {
		fmt.Printf("%s:%d:%d: %s: %s: %s\n", name, d.Line, d.Column, d.Severity(), d.Kind, d.Message)
	}
	return fmt.Errorf("%s: %d diagnostic(s)", name, len(result.Diagnostics))
}
