package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ostkit/ostkit/internal/outline"
	"github.com/ostkit/ostkit/internal/query"
)

var queryLang string

var queryCmd = &cobra.Command{
	Use:   "query <expression> [file]",
	Short: "Run a query against an outline",
	Long: `Parses the outline and runs the expression against the tree. With expr
or cel the expression is a boolean predicate evaluated per node and the
matching nodes are printed as JSON. With jq the expression transforms
the whole tree document and every output is printed on its own line.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runQuery(cmd, args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryLang, "lang", "l", "", "Query language: expr, cel or jq (default from config)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	expression := args[0]
	text, name, err := readDocument(args[1:])
	if err != nil {
		return err
	}

	result := outline.Parse(text)
	if !result.Success {
		return fmt.Errorf("%s does not parse; run 'ostkit check' for diagnostics", name)
	}

	lang := queryLang
	if lang == "" {
		lang = cfg.Query.Language
	}

	selector, err := query.NewSelector()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if query.Language(lang) == query.LangJQ {
		outputs, err := selector.EvaluateDocument(ctx, result.Tree, expression)
		if err != nil {
			return err
		}
		for _, out := range outputs {
			line, err := json.Marshal(out)
			if err != nil {
				return err
			}
			fmt.Println(string(line))
		}
		return nil
	}

	matched, err := selector.Select(ctx, result.Tree, query.Language(lang), expression)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(matched, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
