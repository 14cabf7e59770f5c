package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glint-lang/glint/internal/ast"
)

func TestKindStringsAreStable(t *testing.T) {
	assert.Equal(t, "Fun_Call", ast.KindFunCall.String())
	assert.Equal(t, "Var_Decl", ast.KindVarDecl.String())
	assert.Equal(t, "Dot_Access", ast.KindDotAccess.String())
}

func TestWithAnnotationAttaches(t *testing.T) {
	n := ast.NewLeaf(ast.KindInt, "1", ast.Span{})
	note := ast.NewLeaf(ast.KindAnnotation, "# hi", ast.Span{})
	n.WithAnnotation(note)
	assert.Same(t, note, n.Annotation)
}
