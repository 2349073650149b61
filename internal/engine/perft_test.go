package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerft_StandardStartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tt := range tests {
		b, err := NewBoard("Standard")
		require.NoError(t, err)
		require.Equal(t, tt.want, b.Perft(tt.depth), "perft(%d)", tt.depth)
	}
}

func TestPerft_DepthZeroIsOne(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	require.Equal(t, uint64(1), b.Perft(0))
}

func TestDivide_SumsToPerft(t *testing.T) {
	b, err := NewBoard("Standard")
	require.NoError(t, err)
	divide := b.Divide(3)

	var total uint64
	for _, n := range divide {
		total += n
	}
	require.Equal(t, b.Perft(3), total)
}

func TestPerft_RooksAndKingsWithAllCastlingRights(t *testing.T) {
	// Kings and rooks on their standard squares with all four castling
	// rights; depth 1 counts both of White's castles among the 26 moves.
	b, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	require.Equal(t, uint64(26), b.Perft(1))
}
