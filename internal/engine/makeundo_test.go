package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot captures the fields make/undo must restore exactly, excluding
// Result/Termination/EndTime tags which follow documented post-move rules
// rather than round-tripping (§8 property 1).
func snapshot(b *Board) string {
	return b.ToFEN()
}

func TestMakeUndo_RestoresPlainMove(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	before := snapshot(b)

	m, err := b.MakeSAN("e4")
	require.NoError(t, err)
	assert.NotEqual(t, before, snapshot(b))

	b.Undo(true)
	assert.Equal(t, before, snapshot(b))
	assert.Equal(t, 0, b.At(m.From).Moves)
}

func TestMakeUndo_RestoresCastling(t *testing.T) {
	b, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	before := snapshot(b)

	_, err = b.MakeSAN("O-O")
	require.NoError(t, err)
	b.Undo(true)

	assert.Equal(t, before, snapshot(b))
	king := b.At(Square{File: 4, Rank: 7})
	assert.Equal(t, 'K', king.KindKey)
	assert.Equal(t, 0, king.Moves)
	rook := b.At(Square{File: 7, Rank: 7})
	assert.Equal(t, 'R', rook.KindKey)
	assert.Equal(t, 0, rook.Moves)
}

func TestMakeUndo_RestoresEnPassant(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	for _, san := range []string{"e4", "Nf6", "e5", "d5"} {
		_, err := b.MakeSAN(san)
		require.NoError(t, err)
	}
	before := snapshot(b)

	_, err = b.MakeSAN("exd6")
	require.NoError(t, err)
	b.Undo(true)

	assert.Equal(t, before, snapshot(b))
	assert.Equal(t, 'P', b.At(Square{File: 3, Rank: 3}).KindKey, "captured pawn restored")
}

func TestMakeUndo_RestoresPromotion(t *testing.T) {
	b, err := ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	before := snapshot(b)

	b.Generate(DepthLegal)
	var promo Move
	for _, m := range b.LegalMoves {
		if m.Promotion == 'Q' {
			promo = m
		}
	}
	require.NotEmpty(t, promo.Name)

	b.MakeMove(promo, true)
	assert.Equal(t, 'Q', b.At(Square{File: 0, Rank: 0}).KindKey)

	b.Undo(true)
	assert.Equal(t, before, snapshot(b))
	assert.Equal(t, 'P', b.At(Square{File: 0, Rank: 1}).KindKey)
}

func TestMakeUndoRedo_StateIdenticalAfterRoundTrip(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	_, err = b.MakeSAN("e4")
	require.NoError(t, err)
	afterMake := snapshot(b)

	b.Undo(true)
	b.Redo()

	assert.Equal(t, afterMake, snapshot(b))
}

func TestMakeMove_CastlingRightsOnlyShrinkAcrossMake(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	rightsLen := func() int { return len(b.CastlingRights) }
	initial := rightsLen()

	for _, san := range []string{"Nf3", "Nf6", "Ng1", "Ng8"} {
		before := b.CastlingRights
		_, err := b.MakeSAN(san)
		require.NoError(t, err)
		assert.LessOrEqual(t, rightsLen(), len(before))
	}
	assert.Equal(t, initial, rightsLen())
}

func TestMakeMove_CapturingRookRevokesChess960SafeRight(t *testing.T) {
	b, err := ParseFEN("r3k2r/8/8/8/8/8/7R/4K3 w kq - 0 1")
	require.NoError(t, err)
	_, err = b.MakeSAN("Rxh8")
	require.NoError(t, err)
	assert.Equal(t, "q", b.CastlingRights)
}

func TestHalfMoveClock_ResetsIffPawnMoveOrCapture(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/4p3/3KR3 w - - 10 20")
	require.NoError(t, err)

	_, err = b.MakeSAN("Rxe2")
	require.NoError(t, err)
	assert.Equal(t, 0, b.HalfMoveClock, "capture must reset the clock")
}

func TestHalfMoveClock_ResetsOnNonCapturingPromotion(t *testing.T) {
	// The pawn vanishes from the destination square the instant it is
	// promoted, so the clock reset must key on the pre-move piece, not
	// whatever sits on the destination square afterward.
	b, err := ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 10 20")
	require.NoError(t, err)

	_, err = b.MakeSAN("a8=Q")
	require.NoError(t, err)
	assert.Equal(t, 0, b.HalfMoveClock, "a non-capturing promotion must still reset the clock")
}
