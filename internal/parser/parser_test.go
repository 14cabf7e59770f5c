package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/parser"
)

func TestParsesArithmeticVarDecl(t *testing.T) {
	file, err := parser.Parse("t.gl", "var x = 1 + 2 * 3;")
	require.NoError(t, err)
	require.Len(t, file.Children, 1)
	eq := file.Children[0]
	assert.Equal(t, ast.KindEquation, eq.Kind)
	assert.Equal(t, ast.KindVarDecl, eq.Children[0].Kind)
	assert.Equal(t, ast.KindAdditive, eq.Children[1].Kind)
}

func TestParsesFactorialDef(t *testing.T) {
	src := `def fact(n) { if (n <= 1) { 1 } else { n * fact(n - 1) } } fact(5);`
	file, err := parser.Parse("t.gl", src)
	require.NoError(t, err)
	require.Len(t, file.Children, 2)
	assert.Equal(t, ast.KindDef, file.Children[0].Kind)
	assert.Equal(t, ast.KindFunCall, file.Children[1].Kind)
}

func TestParsesInlineArrayIndexing(t *testing.T) {
	src := `var v = [10, 20, 30]; v[1] + v[2];`
	file, err := parser.Parse("t.gl", src)
	require.NoError(t, err)
	require.Len(t, file.Children, 2)
	decl := file.Children[0]
	assert.Equal(t, ast.KindInlineArray, decl.Children[1].Kind)
	assert.Equal(t, ast.KindAdditive, file.Children[1].Kind)
	assert.Equal(t, ast.KindArrayCall, file.Children[1].Children[0].Kind)
}

func TestParsesForLoop(t *testing.T) {
	src := `var s = 0; for (var i = 0; i < 5; i = i + 1) { s = s + i; } s;`
	file, err := parser.Parse("t.gl", src)
	require.NoError(t, err)
	require.Len(t, file.Children, 3)
	assert.Equal(t, ast.KindFor, file.Children[1].Kind)
	forNode := file.Children[1]
	require.Len(t, forNode.Children, 4)
	assert.Equal(t, ast.KindEquation, forNode.Children[0].Kind)
	assert.Equal(t, ast.KindComparison, forNode.Children[1].Kind)
	assert.Equal(t, ast.KindEquation, forNode.Children[2].Kind)
	assert.Equal(t, ast.KindBlock, forNode.Children[3].Kind)
}

func TestParsesLambdaCall(t *testing.T) {
	src := `var f = fun(x) { x * x }; f(7);`
	file, err := parser.Parse("t.gl", src)
	require.NoError(t, err)
	decl := file.Children[0]
	assert.Equal(t, ast.KindLambda, decl.Children[1].Kind)
}

func TestParseErrorOnMissingIdentifier(t *testing.T) {
	_, err := parser.Parse("t.gl", "var = 1;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "t.gl:1:5")
}

func TestDotAccessRewritesAsMethodCall(t *testing.T) {
	file, err := parser.Parse("t.gl", `a.push_back(1);`)
	require.NoError(t, err)
	call := file.Children[0]
	require.Equal(t, ast.KindDotAccess, call.Kind)
	require.Len(t, call.Children, 3)
	assert.Equal(t, ast.KindId, call.Children[0].Kind)
	assert.Equal(t, "push_back", call.Children[1].Text)
	assert.Equal(t, ast.KindArgList, call.Children[2].Kind)
}

func TestRangeLiteral(t *testing.T) {
	file, err := parser.Parse("t.gl", `var r = 1..5;`)
	require.NoError(t, err)
	decl := file.Children[0]
	assert.Equal(t, ast.KindValueRange, decl.Children[1].Kind)
}

func TestCommentAttachesAsAnnotation(t *testing.T) {
	file, err := parser.Parse("t.gl", "# note\nvar x = 1;")
	require.NoError(t, err)
	require.NotNil(t, file.Children[0].Annotation)
	assert.Equal(t, "# note", file.Children[0].Annotation.Text)
}

func TestCompoundAssignmentKeepsOperatorText(t *testing.T) {
	file, err := parser.Parse("t.gl", "x += 1;")
	require.NoError(t, err)
	assert.Equal(t, "+=", file.Children[0].Text)
}
