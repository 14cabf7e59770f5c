package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
)

func TestPrintReturnsVoid(t *testing.T) {
	reg, cache := newEngine()
	v, err := reg.Call("print", []box.Value{cache.Wrap("hello")})
	require.NoError(t, err)
	require.True(t, v.IsUnknown())
}
