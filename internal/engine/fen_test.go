package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFEN_RoundTripsStandardPosition(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	for _, san := range []string{"e4", "c5", "Nf3", "d6"} {
		_, err := b.MakeSAN(san)
		require.NoError(t, err)
	}
	fen := b.ToFEN()
	parsed, err := ParseFEN(fen)
	require.NoError(t, err)
	assert.Equal(t, fen, parsed.ToFEN())
}

func TestFEN_ShortFENDefaultsTrailingFields(t *testing.T) {
	b, err := ParseFEN("8/8/8/8/8/8/8/4K2k")
	require.NoError(t, err)
	assert.Equal(t, White, b.Active)
	assert.Equal(t, "-", b.CastlingRights)
	assert.Equal(t, "-", b.EnPassant)
	assert.Equal(t, 0, b.HalfMoveClock)
	assert.Equal(t, 1, b.FullMoveNumber)
}

func TestFEN_ClassifiesVariant(t *testing.T) {
	std, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, "Standard", std.Variant)

	fairy, err := ParseFEN("4k3/8/8/8/8/8/8/4KA2 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, "Fairy", fairy.Variant)

	badKings, err := ParseFEN("3kk3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, "Bad number of kings", badKings.Variant)
}

func TestFEN_EncodesRunsGreedily(t *testing.T) {
	b, err := NewBoard("Empty")
	require.NoError(t, err)
	b.Set(Square{File: 0, Rank: 0}, NewPieceFromLetter('K'))
	fen := b.ToFEN()
	assert.Contains(t, fen, "K7/8/8/8/8/8/8/8")
}

func TestFEN_AcceptsRectangularShapes(t *testing.T) {
	b, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 8, b.Files)
	assert.Equal(t, 12, b.Ranks)
}

func TestFEN_DecodesMultiDigitEmptyRuns(t *testing.T) {
	// A 12-file-wide board's empty rows run-length encode past 9, which
	// encodeRow already emits via strconv.Itoa; decodeRow must accumulate
	// multi-digit runs to round-trip symmetrically.
	wide := newEmptyBoard(12, 1)
	wide.Set(Square{File: 0, Rank: 0}, NewPieceFromLetter('K'))
	wide.Set(Square{File: 11, Rank: 0}, NewPieceFromLetter('k'))

	fen := wide.ToFEN()
	assert.Contains(t, fen, "K10k")

	parsed, err := ParseFEN(fen)
	require.NoError(t, err)
	assert.Equal(t, 12, parsed.Files)
	assert.Equal(t, 'K', parsed.At(Square{File: 0, Rank: 0}).KindKey)
	assert.Equal(t, 'K', parsed.At(Square{File: 11, Rank: 0}).KindKey)
	assert.Equal(t, Black, parsed.At(Square{File: 11, Rank: 0}).Side)
	assert.Equal(t, fen, parsed.ToFEN())
}

func TestFEN_NoLegalMovesSetsResultAndTermination(t *testing.T) {
	// Fool's-mate-reached position: Black just delivered checkmate.
	b, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	result, ok := b.Tags.Get("Result")
	require.True(t, ok)
	assert.Equal(t, "0-1", result)
}
