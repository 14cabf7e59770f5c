package box_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
)

func TestWrapRoundTripsPrimitives(t *testing.T) {
	c := box.NewCache()
	v := c.Wrap(int64(42))
	got, err := box.Cast[int64](v)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}

func TestWrapPreservesIdentityForSamePointer(t *testing.T) {
	c := box.NewCache()
	type widget struct{ N int }
	w := &widget{N: 1}

	a := c.Wrap(w)
	b := c.Wrap(w)
	assert.True(t, a.TypeOf().Equal(b.TypeOf()))

	pa, err := box.CastPointer[widget](a)
	require.NoError(t, err)
	pb, err := box.CastPointer[widget](b)
	require.NoError(t, err)
	assert.Same(t, pa, pb)
}

func TestWrapRefDoesNotCache(t *testing.T) {
	c := box.NewCache()
	n := 7
	v := c.WrapRef(&n)
	assert.True(t, v.IsRef())
	assert.Equal(t, 0, c.Len())
}

func TestCastMismatchIsBadBoxedCast(t *testing.T) {
	c := box.NewCache()
	v := c.Wrap("hello")
	_, err := box.Cast[int64](v)
	assert.Error(t, err)
}

func TestVoidIsUnknown(t *testing.T) {
	c := box.NewCache()
	assert.True(t, c.WrapVoid().IsUnknown())
	assert.True(t, box.Void.IsUnknown())
}

func TestCullRemovesReleasedEntries(t *testing.T) {
	c := box.NewCache()
	type widget struct{ N int }
	w := &widget{}
	v := c.Wrap(w)
	assert.Equal(t, 1, c.Len())
	c.Release(v)
	assert.Equal(t, 0, c.Len())
}

func TestPODAddPromotesToFloatWhenEitherOperandIsFloat(t *testing.T) {
	c := box.NewCache()
	a := c.Wrap(int64(3))
	b := c.Wrap(2.5)
	r, err := box.Add(c, a, b)
	require.NoError(t, err)
	f, err := box.Cast[float64](r)
	require.NoError(t, err)
	assert.Equal(t, 5.5, f)
}

func TestPODAddStaysIntegerWhenBothIntegral(t *testing.T) {
	c := box.NewCache()
	a := c.Wrap(int64(3))
	b := c.Wrap(int64(4))
	r, err := box.Add(c, a, b)
	require.NoError(t, err)
	i, err := box.Cast[int64](r)
	require.NoError(t, err)
	assert.Equal(t, int64(7), i)
}

func TestPODDivTruncatesIntegerDivision(t *testing.T) {
	c := box.NewCache()
	a := c.Wrap(int64(7))
	b := c.Wrap(int64(2))
	r, err := box.Div(c, a, b)
	require.NoError(t, err)
	i, err := box.Cast[int64](r)
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)
}

func TestPODDivByZeroIsEvalError(t *testing.T) {
	c := box.NewCache()
	a := c.Wrap(int64(7))
	b := c.Wrap(int64(0))
	_, err := box.Div(c, a, b)
	assert.ErrorContains(t, err, "division by zero")
}

func TestPODCompareNonNumericIsBadBoxedCast(t *testing.T) {
	c := box.NewCache()
	a := c.Wrap("x")
	b := c.Wrap(int64(1))
	_, err := box.Compare(a, b)
	assert.Error(t, err)
}

func TestAssignMutatesAliasedCell(t *testing.T) {
	c := box.NewCache()
	cell := c.Wrap(int64(1))
	alias := cell
	cell.Assign(c.Wrap(int64(2)))
	// alias is a copy taken before Assign, so it still observes 1; the
	// aliasing guarantee lives in internal/scope, which hands out *Value.
	i, _ := box.Cast[int64](alias)
	assert.Equal(t, int64(1), i)
	j, _ := box.Cast[int64](cell)
	assert.Equal(t, int64(2), j)
}
