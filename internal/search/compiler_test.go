package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiler_CachesByTextAndMode(t *testing.T) {
	c := NewCompiler(8)

	p1, err := c.Compile("hello world", false)
	require.NoError(t, err)
	p2, err := c.Compile("hello world", false)
	require.NoError(t, err)
	assert.Same(t, p1, p2, "identical text and mode must hit the cache")

	p3, err := c.Compile("hello world", true)
	require.NoError(t, err)
	assert.NotSame(t, p1, p3, "mode is part of the cache key")
}

func TestCompiler_EmptyTextNotCached(t *testing.T) {
	c := NewCompiler(8)

	p, err := c.Compile("   ", false)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = c.Compile("   ", false)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNewCompiler_DefaultsOnBadSize(t *testing.T) {
	c := NewCompiler(0)

	p, err := c.Compile("pot", false)
	require.NoError(t, err)
	assert.NotNil(t, p)
}
