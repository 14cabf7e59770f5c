package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/types"
)

func TestParseErrorFormatShowsCaret(t *testing.T) {
	err := &diag.ParseError{
		Pos:    diag.Position{File: "a.gl", Line: 1, Column: 5},
		Reason: "expected identifier",
		Source: "var = 1;",
	}
	out := err.Format(false)
	assert.Contains(t, out, "a.gl:1:5")
	assert.Contains(t, out, "var = 1;")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "expected identifier")
}

func TestDispatchErrorCarriesArgTypes(t *testing.T) {
	err := diag.NewDispatchError("+", []types.ID{types.Of(int64(1)), types.Of("x")})
	assert.Equal(t, "+", err.Name)
	assert.Len(t, err.ArgTypes, 2)
	assert.Contains(t, err.Error(), "no matching overload for +")
}

func TestBadBoxedCastIsEvalError(t *testing.T) {
	err := diag.NewBadBoxedCast(types.Of(int64(1)), types.Of("x"))
	var evalErr *diag.EvalError
	assert.ErrorAs(t, error(err), &evalErr)
}
