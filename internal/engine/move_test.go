package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveForTest(t *testing.T, b *Board, s string) Move {
	t.Helper()
	b.Generate(DepthLegal)
	m, err := b.ResolveSAN(s)
	require.NoError(t, err)
	return m
}

func TestMove_EqualCoordsMatchesTuplePrefix(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	m := resolveForTest(t, b, "e4")

	assert.True(t, m.EqualCoords(4, 6))
	assert.True(t, m.EqualCoords(4, 6, 4, 4))
	assert.False(t, m.EqualCoords(4, 5))
}

func TestMove_EqualNameMatchesSAN(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	m := resolveForTest(t, b, "e4")
	assert.True(t, m.EqualName("e4"))
	assert.False(t, m.EqualName("e5"))
}
