package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/chesscore/internal/engine"
)

func TestFirstMoveEngine_ReturnsFirstLegalMove(t *testing.T) {
	b, err := engine.NewBoard("Standard")
	require.NoError(t, err)
	legal := b.Generate(engine.DepthLegal)
	require.NotEmpty(t, legal)

	e := NewFirstMoveEngine()
	m, err := e.SelectMove(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, legal[0].Name, m.Name)
}

func TestFirstMoveEngine_ClosedReturnsError(t *testing.T) {
	e := NewFirstMoveEngine()
	require.NoError(t, e.Close())
	b, _ := engine.NewBoard("Standard")
	_, err := e.SelectMove(context.Background(), b)
	assert.Error(t, err)
}

func TestRandomEngine_AlwaysReturnsLegalMove(t *testing.T) {
	b, err := engine.NewBoard("Standard")
	require.NoError(t, err)
	legal := b.Generate(engine.DepthLegal)

	e := NewRandomEngine()
	for i := 0; i < 20; i++ {
		m, err := e.SelectMove(context.Background(), b)
		require.NoError(t, err)
		found := false
		for _, lm := range legal {
			if lm.Name == m.Name {
				found = true
				break
			}
		}
		assert.True(t, found, "move %q was not in the legal set", m.Name)
	}
}

func TestRandomEngine_NoLegalMovesIsError(t *testing.T) {
	// Fool's-mate final position: White has been checkmated, no legal moves.
	b, err := engine.NewBoard("Standard")
	require.NoError(t, err)
	for _, san := range []string{"f3", "e5", "g4", "Qh4#"} {
		_, err := b.MakeSAN(san)
		require.NoError(t, err)
	}

	e := NewRandomEngine()
	_, err = e.SelectMove(context.Background(), b)
	assert.Error(t, err)
}
