package selfplay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Mgrdich/chesscore/internal/engine"
)

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, "White", "Black")
	assert.Equal(t, 0, stats.TotalGames)
	assert.Equal(t, "White", stats.WhiteName)
	assert.Equal(t, "Black", stats.BlackName)
}

func TestComputeStats_MixedResults(t *testing.T) {
	results := []GameResult{
		{GameNumber: 1, Winner: "White", WinnerColor: engine.White, MoveCount: 20, Duration: 2 * time.Second},
		{GameNumber: 2, Winner: "Black", WinnerColor: engine.Black, MoveCount: 40, Duration: 4 * time.Second},
		{GameNumber: 3, Winner: "Draw", MoveCount: 60, Duration: 6 * time.Second},
	}

	stats := ComputeStats(results, "White", "Black")

	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 1, stats.WhiteWins)
	assert.Equal(t, 1, stats.BlackWins)
	assert.Equal(t, 1, stats.Draws)
	assert.InDelta(t, 33.333, stats.WhiteWinPct, 0.01)
	assert.InDelta(t, 33.333, stats.BlackWinPct, 0.01)
	assert.InDelta(t, 40.0, stats.AvgMoveCount, 0.001)
	assert.Equal(t, 4*time.Second, stats.AvgDuration)
	assert.Equal(t, 1, stats.ShortestGame.GameNumber)
	assert.Equal(t, 3, stats.LongestGame.GameNumber)
}
