package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/scope"
)

func TestDeclareAndLookup(t *testing.T) {
	c := box.NewCache()
	s := scope.New(c)
	s.Declare("x", c.Wrap(int64(7)))

	cell, ok := s.Lookup("x")
	require.True(t, ok)
	i, _ := box.Cast[int64](*cell)
	assert.Equal(t, int64(7), i)
}

func TestLookupSearchesOuterFrames(t *testing.T) {
	c := box.NewCache()
	s := scope.New(c)
	s.Declare("x", c.Wrap(int64(1)))
	s.Push()
	cell, ok := s.Lookup("x")
	require.True(t, ok)
	i, _ := box.Cast[int64](*cell)
	assert.Equal(t, int64(1), i)
}

func TestShadowingInInnerFrame(t *testing.T) {
	c := box.NewCache()
	s := scope.New(c)
	s.Declare("x", c.Wrap(int64(1)))
	s.Push()
	s.Declare("x", c.Wrap(int64(2)))

	cell, _ := s.Lookup("x")
	i, _ := box.Cast[int64](*cell)
	assert.Equal(t, int64(2), i)

	s.Pop()
	cell, _ = s.Lookup("x")
	i, _ = box.Cast[int64](*cell)
	assert.Equal(t, int64(1), i, "outer binding must survive popping the shadowing frame")
}

func TestAssignMutatesNearestEnclosingBinding(t *testing.T) {
	c := box.NewCache()
	s := scope.New(c)
	s.Declare("x", c.Wrap(int64(1)))
	s.Push()
	ok := s.Assign("x", c.Wrap(int64(99)))
	require.True(t, ok)

	s.Pop()
	cell, _ := s.Lookup("x")
	i, _ := box.Cast[int64](*cell)
	assert.Equal(t, int64(99), i)
}

func TestAssignUnboundNameFails(t *testing.T) {
	c := box.NewCache()
	s := scope.New(c)
	assert.False(t, s.Assign("missing", c.Wrap(int64(1))))
}

func TestDepthRestoredAfterPushPop(t *testing.T) {
	c := box.NewCache()
	s := scope.New(c)
	entry := s.Depth()
	s.Push()
	s.Push()
	s.Pop()
	s.Pop()
	assert.Equal(t, entry, s.Depth())
}
