package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
)

func TestJSONGet(t *testing.T) {
	reg, cache := newEngine()
	doc := `{"name":"glint","tags":["a","b"]}`
	v, err := reg.Call("json_get", []box.Value{cache.Wrap(doc), cache.Wrap("name")})
	require.NoError(t, err)
	require.Equal(t, "glint", v.String())
}

func TestJSONGetMissingPathErrors(t *testing.T) {
	reg, cache := newEngine()
	_, err := reg.Call("json_get", []box.Value{cache.Wrap(`{}`), cache.Wrap("missing")})
	require.Error(t, err)
}

func TestJSONSet(t *testing.T) {
	reg, cache := newEngine()
	out, err := reg.Call("json_set", []box.Value{cache.Wrap(`{"name":"glint"}`), cache.Wrap("version"), cache.Wrap(int64(2))})
	require.NoError(t, err)

	v, err := reg.Call("json_get", []box.Value{out, cache.Wrap("version")})
	require.NoError(t, err)
	require.Equal(t, "2", v.String())
}
