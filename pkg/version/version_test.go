package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_ContainsVersionAndCommit(t *testing.T) {
	s := String()
	assert.Contains(t, s, Version)
	assert.Contains(t, s, Commit)
}

func TestShort_ReturnsVersion(t *testing.T) {
	assert.Equal(t, Version, Short())
}
