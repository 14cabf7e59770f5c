package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

func TestUUIDGeneratesDistinctParsableValues(t *testing.T) {
	reg, _ := newEngine()

	a, err := reg.Call("uuid", nil)
	require.NoError(t, err)
	b, err := reg.Call("uuid", nil)
	require.NoError(t, err)

	require.NotEqual(t, a.String(), b.String())
	_, err = uuid.Parse(a.String())
	require.NoError(t, err)
}
