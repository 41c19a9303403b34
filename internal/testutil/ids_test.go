package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("snap-a", "snap-b")
	assert.Equal(t, "snap-a", g.Generate())
	assert.Equal(t, "snap-b", g.Generate())
	assert.PanicsWithValue(t, "FixedGenerator: all ids exhausted", func() { g.Generate() })
}

func TestSequentialGenerator(t *testing.T) {
	g := NewSequentialGenerator("snap")
	assert.Equal(t, "snap-0001", g.Generate())
	assert.Equal(t, "snap-0002", g.Generate())

	g.Reset()
	assert.Equal(t, "snap-0001", g.Generate())

	assert.Equal(t, "id-0001", NewSequentialGenerator("").Generate())
}
