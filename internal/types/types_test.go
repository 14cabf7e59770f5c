package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glint-lang/glint/internal/types"
)

func TestUnknownIsVoid(t *testing.T) {
	assert.True(t, types.Unknown.IsUnknown())
	assert.True(t, types.Of(nil).IsUnknown())
	assert.Equal(t, "void", types.Unknown.Name())
}

func TestOfAgreesForSameConcreteType(t *testing.T) {
	a := types.Of(int64(1))
	b := types.Of(int64(2))
	assert.True(t, a.Equal(b))
}

func TestOfDisagreesAcrossTypes(t *testing.T) {
	a := types.Of(int64(1))
	b := types.Of("str")
	assert.False(t, a.Equal(b))
}

func TestUnknownParameterAcceptsAnything(t *testing.T) {
	assert.True(t, types.Unknown.AcceptsArgument(types.Of(3.14)))
	assert.True(t, types.Unknown.AcceptsArgument(types.Unknown))
}

func TestConcreteParameterRejectsMismatch(t *testing.T) {
	p := types.Of(int64(0))
	assert.True(t, p.AcceptsArgument(types.Of(int64(7))))
	assert.False(t, p.AcceptsArgument(types.Of("seven")))
}
