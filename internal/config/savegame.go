package config

import (
	"fmt"
	"os"

	"github.com/Mgrdich/chesscore/internal/engine"
)

// SaveGame saves the current position to ~/.chesscore/savegame.fen as a
// single FEN line. Persistence beyond FEN is a non-goal, so this is the
// only game-state serialization the package offers.
func SaveGame(board *engine.Board) error {
	savePath, err := SaveGamePath()
	if err != nil {
		return fmt.Errorf("failed to get save game path: %w", err)
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	fen := board.ToFEN()
	if err := os.WriteFile(savePath, []byte(fen), 0644); err != nil {
		return fmt.Errorf("failed to write save game file: %w", err)
	}

	return nil
}

// LoadGame loads the position saved at ~/.chesscore/savegame.fen.
// Returns an error if the file cannot be read or the FEN is invalid.
func LoadGame() (*engine.Board, error) {
	savePath, err := SaveGamePath()
	if err != nil {
		return nil, fmt.Errorf("failed to get save game path: %w", err)
	}

	data, err := os.ReadFile(savePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read save game file: %w", err)
	}

	board, err := engine.ParseFEN(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse saved game FEN: %w", err)
	}

	return board, nil
}

// DeleteSaveGame deletes the saved game file at ~/.chesscore/savegame.fen.
// Returns nil if the file doesn't exist.
func DeleteSaveGame() error {
	savePath, err := SaveGamePath()
	if err != nil {
		return fmt.Errorf("failed to get save game path: %w", err)
	}

	if _, err := os.Stat(savePath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(savePath); err != nil {
		return fmt.Errorf("failed to delete save game file: %w", err)
	}

	return nil
}

// SaveGameExists reports whether a saved game file exists at
// ~/.chesscore/savegame.fen.
func SaveGameExists() bool {
	savePath, err := SaveGamePath()
	if err != nil {
		return false
	}

	_, err = os.Stat(savePath)
	return err == nil
}
