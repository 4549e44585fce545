package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ostkit/ostkit/internal/outline"
)

var (
	fmtWrite          bool
	fmtFullWords      bool
	fmtNoDescriptions bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Rewrite an outline in canonical form",
	Long: `Parses the outline and prints it back in the canonical serialization:
two-space indentation, prefixes in the configured style, metadata in
priority order. With --write the file is rewritten in place.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFmt(args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Rewrite the file instead of printing")
	fmtCmd.Flags().BoolVar(&fmtFullWords, "full-words", false, "Use OUTCOME:/OPP:/SOL:/SUB: prefixes")
	fmtCmd.Flags().BoolVar(&fmtNoDescriptions, "no-descriptions", false, "Drop metadata and description lines")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(args []string) error {
	text, name, err := readDocument(args)
	if err != nil {
		return err
	}

	result := outline.Parse(text)
	if !result.Success {
		for _, d := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", name, d.Line, d.Column, d.Severity(), d.Message)
		}
		return fmt.Errorf("%s does not parse; fix the diagnostics first", name)
	}

	opts := outline.SerializeOptions{
		Shorthand:           cfg.Format.Shorthand,
		IncludeDescriptions: cfg.Format.IncludeDescriptions,
	}
	if fmtFullWords {
		opts.Shorthand = false
	}
	if fmtNoDescriptions {
		opts.IncludeDescriptions = false
	}

	out := outline.Serialize(result.Tree, opts)

	if fmtWrite {
		if len(args) == 0 || args[0] == "-" {
			return fmt.Errorf("--write requires a file argument")
		}
		return os.WriteFile(args[0], []byte(out.Text), 0o644)
	}

	fmt.Print(out.Text)
	return nil
}
