package selfplay

import "time"

// AggregateStats holds computed statistics for a multi-game series.
type AggregateStats struct {
	TotalGames   int
	WhiteName    string
	BlackName    string
	WhiteWins    int
	BlackWins    int
	Draws        int
	WhiteWinPct  float64
	BlackWinPct  float64
	AvgMoveCount float64
	AvgDuration  time.Duration
	ShortestGame GameResult
	LongestGame  GameResult
	Results      []GameResult
}

// ComputeStats calculates aggregate statistics from a slice of game
// results.
func ComputeStats(results []GameResult, whiteName, blackName string) *AggregateStats {
	if len(results) == 0 {
		return &AggregateStats{WhiteName: whiteName, BlackName: blackName}
	}

	stats := &AggregateStats{
		TotalGames:   len(results),
		WhiteName:    whiteName,
		BlackName:    blackName,
		Results:      make([]GameResult, len(results)),
		ShortestGame: results[0],
		LongestGame:  results[0],
	}
	copy(stats.Results, results)

	var totalMoves int
	var totalDuration time.Duration

	for _, r := range results {
		switch r.Winner {
		case "Draw":
			stats.Draws++
		case whiteName:
			stats.WhiteWins++
		case blackName:
			stats.BlackWins++
		}

		totalMoves += r.MoveCount
		totalDuration += r.Duration

		if r.MoveCount < stats.ShortestGame.MoveCount {
			stats.ShortestGame = r
		}
		if r.MoveCount > stats.LongestGame.MoveCount {
			stats.LongestGame = r
		}
	}

	stats.AvgMoveCount = float64(totalMoves) / float64(stats.TotalGames)
	stats.AvgDuration = totalDuration / time.Duration(stats.TotalGames)
	stats.WhiteWinPct = float64(stats.WhiteWins) / float64(stats.TotalGames) * 100
	stats.BlackWinPct = float64(stats.BlackWins) / float64(stats.TotalGames) * 100

	return stats
}
