package cmd

import (
	"fmt"
	"strings"

	"github.com/glint-lang/glint/internal/ast"
)

// dumpNode renders n's AST as an indented tree, grounded on
// CWBudde-go-dws/cmd/dwscript/cmd/parse.go's dumpASTNode, adapted to
// internal/ast's single concrete Node type instead of one Go type per
// production.
func dumpNode(n *ast.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	if n.Text != "" {
		fmt.Printf("%s%s %q\n", pad, n.Kind, n.Text)
	} else {
		fmt.Printf("%s%s\n", pad, n.Kind)
	}
	for i, child := range n.Children {
		if i < len(n.Ops) {
			fmt.Printf("%s  op %q\n", pad, n.Ops[i])
		}
		dumpNode(child, indent+1)
	}
	if n.Annotation != nil {
		fmt.Printf("%s  annotation:\n", pad)
		dumpNode(n.Annotation, indent+2)
	}
}
