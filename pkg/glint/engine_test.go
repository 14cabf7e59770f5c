package glint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/pkg/glint"
)

func TestEvalStringBasicArithmetic(t *testing.T) {
	e := glint.New()
	v, err := e.EvalString("2 + 3 * 4;")
	require.NoError(t, err)
	require.Equal(t, "14", v.String())
}

func TestSetAndGetGlobal(t *testing.T) {
	e := glint.New()
	require.NoError(t, e.Set("limit", box.NewCache().Wrap(int64(10))))
	v, ok := e.Get("limit")
	require.True(t, ok)
	require.Equal(t, "10", v.String())
}

func TestGetMissingGlobal(t *testing.T) {
	e := glint.New()
	_, ok := e.Get("nope")
	require.False(t, ok)
}

func TestBindHostFunction(t *testing.T) {
	e := glint.New()
	require.NoError(t, e.Bind("double", func(n int64) int64 { return n * 2 }))

	v, err := e.EvalString("double(21);")
	require.NoError(t, err)
	require.Equal(t, "42", v.String())
}

func TestTwoEnginesHaveDistinctIDsAndDoNotShareGlobals(t *testing.T) {
	a := glint.New()
	b := glint.New()
	require.NotEqual(t, a.ID, b.ID)

	cache := box.NewCache()
	require.NoError(t, a.Set("x", cache.Wrap(int64(1))))
	_, ok := b.Get("x")
	require.False(t, ok)
}
