package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
)

func TestArithmeticOperators(t *testing.T) {
	reg, cache := newEngine()

	sum, err := reg.Call("+", []box.Value{cache.Wrap(int64(2)), cache.Wrap(int64(3))})
	require.NoError(t, err)
	require.Equal(t, "5", sum.String())

	diff, err := reg.Call("-", []box.Value{cache.Wrap(int64(10)), cache.Wrap(int64(4))})
	require.NoError(t, err)
	require.Equal(t, "6", diff.String())

	neg, err := reg.Call("-", []box.Value{cache.Wrap(int64(4))})
	require.NoError(t, err)
	require.Equal(t, "-4", neg.String())

	prod, err := reg.Call("*", []box.Value{cache.Wrap(1.5), cache.Wrap(int64(2))})
	require.NoError(t, err)
	require.Equal(t, "3", prod.String())
}

func TestStringConcatOverload(t *testing.T) {
	reg, cache := newEngine()
	out, err := reg.Call("+", []box.Value{cache.Wrap("foo"), cache.Wrap("bar")})
	require.NoError(t, err)
	require.Equal(t, "foobar", out.String())
}

func TestComparisonOperators(t *testing.T) {
	reg, cache := newEngine()

	lt, err := reg.Call("<", []box.Value{cache.Wrap(int64(2)), cache.Wrap(int64(5))})
	require.NoError(t, err)
	require.Equal(t, "true", lt.String())

	ge, err := reg.Call(">=", []box.Value{cache.Wrap(int64(5)), cache.Wrap(int64(5))})
	require.NoError(t, err)
	require.Equal(t, "true", ge.String())
}

func TestEqualityAcrossStringsAndNumbers(t *testing.T) {
	reg, cache := newEngine()

	eq, err := reg.Call("==", []box.Value{cache.Wrap("a"), cache.Wrap("a")})
	require.NoError(t, err)
	require.Equal(t, "true", eq.String())

	neq, err := reg.Call("!=", []box.Value{cache.Wrap(int64(1)), cache.Wrap("a")})
	require.NoError(t, err)
	require.Equal(t, "true", neq.String())
}

func TestBooleanOperators(t *testing.T) {
	reg, cache := newEngine()

	and, err := reg.Call("&&", []box.Value{cache.Wrap(true), cache.Wrap(false)})
	require.NoError(t, err)
	require.Equal(t, "false", and.String())

	not, err := reg.Call("!", []box.Value{cache.Wrap(false)})
	require.NoError(t, err)
	require.Equal(t, "true", not.String())
}

func TestCompoundAssignComputesNewValue(t *testing.T) {
	reg, cache := newEngine()
	out, err := reg.Call("+=", []box.Value{cache.Wrap(int64(10)), cache.Wrap(int64(5))})
	require.NoError(t, err)
	require.Equal(t, "15", out.String())
}
