package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPGN_TagBlockAndMoveText(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	b.Tags.Set("Event", "Test Game")
	b.Tags.Set("Result", "*")

	for _, san := range []string{"e4", "e5", "Nf3"} {
		_, err := b.MakeSAN(san)
		require.NoError(t, err)
	}

	pgn := b.ToPGN()
	assert.Contains(t, pgn, `[Event "Test Game"]`)
	assert.Contains(t, pgn, "1. e4 e5 ")
	assert.Contains(t, pgn, "2. Nf3")
	assert.Contains(t, pgn, "*")
}

func TestParsePGN_RoundTripsMoveSequence(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6"} {
		_, err := b.MakeSAN(san)
		require.NoError(t, err)
	}
	b.Tags.Set("Result", "*")
	pgn := b.ToPGN()

	parsed, err := ParsePGN(pgn)
	require.NoError(t, err)
	require.Len(t, parsed.History, len(b.History))
	for i := range b.History {
		assert.Equal(t, b.History[i].Name, parsed.History[i].Name)
	}
}

func TestParsePGN_StripsCommentsAndVariations(t *testing.T) {
	pgn := "[Event \"?\"]\n\n1. e4 {best by test} e5 (1... c5 2. Nf3) 2. Nf3 *"
	b, err := ParsePGN(pgn)
	require.NoError(t, err)
	require.Len(t, b.History, 3)
	assert.Equal(t, "e4", b.History[0].Name)
	assert.Equal(t, "e5", b.History[1].Name)
	assert.Equal(t, "Nf3", b.History[2].Name)
}

func TestParsePGN_AbortsCleanlyOnIllegalMove(t *testing.T) {
	pgn := "[Event \"?\"]\n\n1. e4 Qh5 2. Nonsense *"
	b, err := ParsePGN(pgn)
	require.NoError(t, err)
	// "e4" and "Qh5" (an illegal-looking but shape-valid token that fails
	// resolution) stop the walk at whatever prefix succeeded.
	assert.LessOrEqual(t, len(b.History), 2)
}

func TestParsePGN_SetUpFENStartsFromPosition(t *testing.T) {
	fen := "8/8/8/8/8/8/4P3/4K2k w - - 0 1"
	pgn := "[SetUp \"1\"]\n[FEN \"" + fen + "\"]\n\n1. e4 *"
	b, err := ParsePGN(pgn)
	require.NoError(t, err)
	require.Len(t, b.History, 1)
	assert.Equal(t, "e4", b.History[0].Name)
}
