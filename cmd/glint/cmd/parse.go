package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/glint-lang/glint/internal/parser"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Glint source and print its AST",
	Long: `Parse Glint source code and display the Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
}

func runParseCmd(_ *cobra.Command, args []string) error {
	var src, filename string
	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		src, filename = args[0], "<eval>"
	case len(args) == 1:
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		src = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		src, filename = string(data), "<stdin>"
	}

	n, err := parser.Parse(filename, src)
	if err != nil {
		printDiag(err, src)
		return fmt.Errorf("parsing failed")
	}
	dumpNode(n, 0)
	return nil
}
