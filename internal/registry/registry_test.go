package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/types"
)

func intOverload(c *box.Cache, r int64) *registry.Func {
	return registry.NewFunc([]types.ID{types.Of(int64(0)), types.Of(int64(0))}, func(args []box.Value) (box.Value, error) {
		return c.Wrap(r), nil
	})
}

func TestCallInvokesFirstMatchingOverload(t *testing.T) {
	c := box.NewCache()
	r := registry.New()
	r.Register("add", intOverload(c, 1))
	r.Register("add", intOverload(c, 2))

	result, err := r.Call("add", []box.Value{c.Wrap(int64(1)), c.Wrap(int64(1))})
	require.NoError(t, err)
	i, _ := box.Cast[int64](result)
	assert.Equal(t, int64(1), i, "first registered overload must win")
}

func TestCallFallsThroughOnArityMismatch(t *testing.T) {
	c := box.NewCache()
	r := registry.New()
	one := registry.NewFunc([]types.ID{types.Of(int64(0))}, func(args []box.Value) (box.Value, error) {
		return c.Wrap(int64(100)), nil
	})
	two := intOverload(c, 200)
	r.Register("f", one)
	r.Register("f", two)

	result, err := r.Call("f", []box.Value{c.Wrap(int64(0)), c.Wrap(int64(0))})
	require.NoError(t, err)
	i, _ := box.Cast[int64](result)
	assert.Equal(t, int64(200), i)
}

func TestCallNoMatchIsDispatchError(t *testing.T) {
	c := box.NewCache()
	r := registry.New()
	r.Register("add", intOverload(c, 0))

	_, err := r.Call("add", []box.Value{c.Wrap("x")})
	var dispatchErr *diag.DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Contains(t, err.Error(), "add")
}

func TestUnknownParamAcceptsAnyArgument(t *testing.T) {
	c := box.NewCache()
	r := registry.New()
	r.Register("id", registry.NewFunc([]types.ID{types.Unknown}, func(args []box.Value) (box.Value, error) {
		return args[0], nil
	}))

	result, err := r.Call("id", []box.Value{c.Wrap("hello")})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.String())
}
