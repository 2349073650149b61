package selfplay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SeriesExport is the JSON-serializable summary of a completed series.
type SeriesExport struct {
	Timestamp    time.Time    `json:"timestamp"`
	WhiteName    string       `json:"white_name"`
	BlackName    string       `json:"black_name"`
	TotalGames   int          `json:"total_games"`
	WhiteWins    int          `json:"white_wins"`
	BlackWins    int          `json:"black_wins"`
	Draws        int          `json:"draws"`
	AverageMoves float64      `json:"average_moves"`
	Games        []GameExport `json:"games"`
}

// GameExport is the export record for a single game.
type GameExport struct {
	GameNumber int      `json:"game_number"`
	Result     string   `json:"result"` // "White", "Black", "Draw"
	Reason     string   `json:"reason"`
	MoveCount  int      `json:"move_count"`
	Moves      []string `json:"moves"` // SAN move text, in order
	FinalFEN   string   `json:"final_fen"`
}

// ExportStats builds a SeriesExport from the manager's completed games.
func (m *SessionManager) ExportStats() *SeriesExport {
	m.mu.Lock()
	defer m.mu.Unlock()

	export := &SeriesExport{
		Timestamp: time.Now(),
		WhiteName: m.whiteName,
		BlackName: m.blackName,
		Games:     make([]GameExport, 0),
	}

	var totalMoves int
	for _, s := range m.sessions {
		if s == nil || !s.IsFinished() {
			continue
		}
		result := s.Result()
		if result == nil {
			continue
		}

		export.TotalGames++

		var resultStr string
		switch result.Winner {
		case "Draw":
			resultStr = "Draw"
			export.Draws++
		case m.whiteName:
			resultStr = "White"
			export.WhiteWins++
		default:
			resultStr = "Black"
			export.BlackWins++
		}

		moves := make([]string, len(result.MoveHistory))
		for i, move := range result.MoveHistory {
			moves[i] = move.String()
		}

		totalMoves += result.MoveCount

		export.Games = append(export.Games, GameExport{
			GameNumber: result.GameNumber,
			Result:     resultStr,
			Reason:     result.EndReason,
			MoveCount:  result.MoveCount,
			Moves:      moves,
			FinalFEN:   result.FinalFEN,
		})
	}

	if export.TotalGames > 0 {
		export.AverageMoves = float64(totalMoves) / float64(export.TotalGames)
	}

	return export
}

// SaveSeriesExport writes a SeriesExport as indented JSON. If dir is
// empty, it defaults to ~/.chesscore/stats/.
func SaveSeriesExport(export *SeriesExport, dir string) (string, error) {
	if export == nil {
		return "", fmt.Errorf("export cannot be nil")
	}

	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".chesscore", "stats")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	timestamp := export.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	filename := fmt.Sprintf("selfplay_session_%s.json", timestamp.Format("2006-01-02_15-04-05"))
	fullPath := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fullPath, nil
}
