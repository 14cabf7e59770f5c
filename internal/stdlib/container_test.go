package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/stdlib"
)

func newEngine() (*registry.Registry, *box.Cache) {
	reg := registry.New()
	cache := box.NewCache()
	stdlib.Bootstrap(reg, cache)
	return reg, cache
}

func TestVectorPushBackAndIndex(t *testing.T) {
	reg, cache := newEngine()
	vec, err := reg.Call("Vector", nil)
	require.NoError(t, err)

	for _, n := range []int64{10, 20, 30} {
		vec, err = reg.Call("push_back", []box.Value{vec, cache.Wrap(n)})
		require.NoError(t, err)
	}

	size, err := reg.Call("size", []box.Value{vec})
	require.NoError(t, err)
	require.Equal(t, "3", size.String())

	elem, err := reg.Call("[]", []box.Value{vec, cache.Wrap(int64(1))})
	require.NoError(t, err)
	require.Equal(t, "20", elem.String())
}

func TestVectorIndexOutOfRange(t *testing.T) {
	reg, cache := newEngine()
	vec, err := reg.Call("Vector", nil)
	require.NoError(t, err)
	_, err = reg.Call("[]", []box.Value{vec, cache.Wrap(int64(0))})
	require.Error(t, err)
}

func TestMapInsertAndLookup(t *testing.T) {
	reg, cache := newEngine()
	m, err := reg.Call("Map", nil)
	require.NoError(t, err)

	m, err = reg.Call("insert", []box.Value{m, cache.Wrap("name"), cache.Wrap("glint")})
	require.NoError(t, err)
	m, err = reg.Call("insert", []box.Value{m, cache.Wrap("version"), cache.Wrap(int64(1))})
	require.NoError(t, err)

	v, err := reg.Call("[]", []box.Value{m, cache.Wrap("version")})
	require.NoError(t, err)
	require.Equal(t, "1", v.String())

	size, err := reg.Call("size", []box.Value{m})
	require.NoError(t, err)
	require.Equal(t, "2", size.String())
}

func TestMapMissingKeyErrors(t *testing.T) {
	reg, cache := newEngine()
	m, err := reg.Call("Map", nil)
	require.NoError(t, err)
	_, err = reg.Call("[]", []box.Value{m, cache.Wrap("missing")})
	require.Error(t, err)
}

func TestRangeSize(t *testing.T) {
	reg, cache := newEngine()
	r, err := reg.Call("Range", []box.Value{cache.Wrap(int64(3)), cache.Wrap(int64(9))})
	require.NoError(t, err)
	size, err := reg.Call("size", []box.Value{r})
	require.NoError(t, err)
	require.Equal(t, "6", size.String())
}

func TestRangeBeginAndEnd(t *testing.T) {
	reg, cache := newEngine()
	r, err := reg.Call("Range", []box.Value{cache.Wrap(int64(3)), cache.Wrap(int64(9))})
	require.NoError(t, err)

	begin, err := reg.Call("begin", []box.Value{r})
	require.NoError(t, err)
	require.Equal(t, "3", begin.String())

	end, err := reg.Call("end", []box.Value{r})
	require.NoError(t, err)
	require.Equal(t, "9", end.String())
}
