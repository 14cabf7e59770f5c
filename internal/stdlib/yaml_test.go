package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
)

func TestYAMLRoundTripMap(t *testing.T) {
	reg, cache := newEngine()

	m, err := reg.Call("Map", nil)
	require.NoError(t, err)
	m, err = reg.Call("insert", []box.Value{m, cache.Wrap("name"), cache.Wrap("glint")})
	require.NoError(t, err)

	doc, err := reg.Call("to_yaml", []box.Value{m})
	require.NoError(t, err)
	require.Contains(t, doc.String(), "name: glint")

	back, err := reg.Call("from_yaml", []box.Value{doc})
	require.NoError(t, err)

	name, err := reg.Call("[]", []box.Value{back, cache.Wrap("name")})
	require.NoError(t, err)
	require.Equal(t, "glint", name.String())
}

func TestFromYAMLInvalidDocumentErrors(t *testing.T) {
	reg, cache := newEngine()
	_, err := reg.Call("from_yaml", []box.Value{cache.Wrap("not: [valid")})
	require.Error(t, err)
}
