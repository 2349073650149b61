package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard_StandardLayout(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	assert.Equal(t, 8, b.Files)
	assert.Equal(t, 8, b.Ranks)
	assert.Equal(t, "KQkq", b.CastlingRights)
	assert.Equal(t, White, b.Active)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", b.ToFEN())
}

func TestNewBoard_Chess960Geometry(t *testing.T) {
	b, err := NewBoard("Chess960")
	require.NoError(t, err)

	var bishops []int
	var kingFile, rook1, rook2 int
	rookCount := 0
	for f := 0; f < 8; f++ {
		p := b.At(Square{File: f, Rank: b.Ranks - 1})
		switch p.KindKey {
		case 'B':
			bishops = append(bishops, f)
		case 'K':
			kingFile = f
		case 'R':
			if rookCount == 0 {
				rook1 = f
			} else {
				rook2 = f
			}
			rookCount++
		}
	}
	require.Len(t, bishops, 2)
	assert.NotEqual(t, bishops[0]%2, bishops[1]%2, "bishops must sit on opposite color squares")
	require.Equal(t, 2, rookCount)
	assert.True(t, rook1 < kingFile && kingFile < rook2, "king must sit strictly between the two rooks")
}

func TestNewBoard_RectangularEightByN(t *testing.T) {
	b, err := NewBoard("8x10")
	require.NoError(t, err)
	assert.Equal(t, 8, b.Files)
	assert.Equal(t, 10, b.Ranks)
}

func TestNewBoard_DuckboardPlacesDuck(t *testing.T) {
	b, err := NewBoard("Duckboard8x8")
	require.NoError(t, err)
	found := false
	for r := 0; r < b.Ranks; r++ {
		for f := 0; f < b.Files; f++ {
			if b.At(Square{File: f, Rank: r}).KindKey == 'Θ' {
				found = true
			}
		}
	}
	assert.True(t, found, "expected a duck on the board")
}

func TestNewBoard_CustomBackrank(t *testing.T) {
	b, err := NewBoard("[RNBQKBNR]")
	require.NoError(t, err)
	assert.Equal(t, "Fairy", b.Variant)
	assert.Equal(t, "-", b.CastlingRights)
}

func TestNewBoard_EmptyVariant(t *testing.T) {
	b, err := NewBoard("Empty")
	require.NoError(t, err)
	for r := 0; r < b.Ranks; r++ {
		for f := 0; f < b.Files; f++ {
			assert.True(t, b.At(Square{File: f, Rank: r}).IsEmpty())
		}
	}
}

func TestNewBoard_UnrecognizedVariantErrors(t *testing.T) {
	_, err := NewBoard("NotAVariant")
	assert.ErrorIs(t, err, ErrParse)
}

func TestNewBoard_BareFENAutoDetected(t *testing.T) {
	fen := "8/8/8/8/8/8/4P3/4K2k w - - 0 1"
	b, err := NewBoard(fen)
	require.NoError(t, err)
	assert.Equal(t, fen, b.ToFEN())
}

func TestClone_IsIndependent(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	_, err = b.MakeSAN("e4")
	require.NoError(t, err)

	clone := b.Clone()
	_, err = clone.MakeSAN("e5")
	require.NoError(t, err)

	assert.Len(t, b.History, 1)
	assert.Len(t, clone.History, 2)
	assert.NotEqual(t, b.ToFEN(), clone.ToFEN())
}

func TestFindKing_SingleKingPerSide(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	wk, ok := b.FindKing(White)
	require.True(t, ok)
	assert.Equal(t, Square{File: 4, Rank: 7}, wk)
	bk, ok := b.FindKing(Black)
	require.True(t, ok)
	assert.Equal(t, Square{File: 4, Rank: 0}, bk)
}

func TestSquareString_RoundTrips(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	for _, s := range []string{"a1", "h8", "e4", "d5"} {
		sq, ok := b.ParseSquare(s)
		require.True(t, ok, s)
		assert.Equal(t, s, b.SquareString(sq))
	}
}

func TestTagPairs_PreservesInsertionOrder(t *testing.T) {
	tags := NewTagPairs()
	tags.Set("Event", "Test")
	tags.Set("Site", "Earth")
	tags.Set("Event", "Updated")
	assert.Equal(t, []string{"Event", "Site"}, tags.Keys())
	v, ok := tags.Get("Event")
	require.True(t, ok)
	assert.Equal(t, "Updated", v)
}
