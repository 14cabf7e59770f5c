package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/lexer"
)

func tokenTypes(src string) []lexer.TokenType {
	l := lexer.New(src)
	var types []lexer.TokenType
	for {
		tok := l.Next()
		types = append(types, tok.Type)
		if tok.Type == lexer.EOF {
			return types
		}
	}
}

func TestScansArithmeticStatement(t *testing.T) {
	got := tokenTypes("var x = 1 + 2 * 3;")
	want := []lexer.TokenType{
		lexer.VAR, lexer.IDENT, lexer.ASSIGN, lexer.INT, lexer.PLUS,
		lexer.INT, lexer.STAR, lexer.INT, lexer.SEMI, lexer.EOF,
	}
	assert.Equal(t, want, got)
}

func TestScansFloatWithExponent(t *testing.T) {
	l := lexer.New("1.5e3")
	tok := l.Next()
	require.Equal(t, lexer.FLOAT, tok.Type)
	assert.Equal(t, "1.5e3", tok.Literal)
}

func TestScansStringEscapes(t *testing.T) {
	l := lexer.New(`"a\nb\"c"`)
	tok := l.Next()
	require.Equal(t, lexer.STRING, tok.Type)
	assert.Equal(t, "a\nb\"c", tok.Literal)
}

func TestScansCompoundAssignOperators(t *testing.T) {
	got := tokenTypes("x += 1")
	assert.Equal(t, []lexer.TokenType{lexer.IDENT, lexer.PLUS_ASSIGN, lexer.INT, lexer.EOF}, got)
}

func TestCommentAttachesAsPendingUntilTaken(t *testing.T) {
	l := lexer.New("# hello\nvar")
	tok := l.Next()
	require.Equal(t, lexer.VAR, tok.Type)
	comments := l.TakeComments()
	require.Len(t, comments, 1)
	assert.Equal(t, "# hello", comments[0].Text)
}

func TestRangeOperatorIsNotTwoDots(t *testing.T) {
	got := tokenTypes("1..5")
	assert.Equal(t, []lexer.TokenType{lexer.INT, lexer.DOTDOT, lexer.INT, lexer.EOF}, got)
}

func TestReportsOneBasedLineAndColumn(t *testing.T) {
	l := lexer.New("var = 1;")
	l.Next() // var
	tok := l.Next()
	assert.Equal(t, 1, tok.Pos.Line)
	assert.Equal(t, 5, tok.Pos.Column)
}
