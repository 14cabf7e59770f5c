package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/parser"
	"github.com/glint-lang/glint/pkg/glint"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Glint script file or inline expression",
	Long: `Execute a Glint program from a file or an inline -e expression.

Examples:
  glint run script.glint
  glint run -e "print(1 + 2);"
  glint run --dump-ast script.glint`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print a line before evaluation begins")
}

func runScript(_ *cobra.Command, args []string) error {
	var src, filename string
	switch {
	case evalExpr != "":
		src, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filename, err)
		}
		src = string(data)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	n, err := parser.Parse(filename, src)
	if err != nil {
		printDiag(err, src)
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		dumpNode(n, 0)
	}
	if trace {
		fmt.Fprintf(os.Stderr, "[evaluating %s]\n", filename)
	}

	e := glint.New()
	applyProjectGlobals(e)
	var v box.Value
	if filename != "<eval>" {
		v, err = e.EvalFile(filename)
	} else {
		v, err = e.EvalString(src)
	}
	if err != nil {
		printDiag(err, src)
		return fmt.Errorf("execution failed")
	}
	if !v.IsUnknown() {
		fmt.Println(v.String())
	}
	return nil
}

func printDiag(err error, src string) {
	switch e := err.(type) {
	case *diag.ParseError:
		fmt.Fprintln(os.Stderr, e.Format(colorize(os.Stderr)))
	case *diag.EvalError:
		fmt.Fprintln(os.Stderr, e.Format(colorize(os.Stderr)))
	default:
		fmt.Fprintln(os.Stderr, err.Error())
	}
}
