// Package config provides configuration and game state persistence for
// chesscore.
//
// Configuration files are stored in ~/.chesscore/ and use TOML format.
// Game saves are stored as FEN strings in ~/.chesscore/savegame.fen.
//
// The package provides:
//   - Config types and default values
//   - Config file loading and saving
//   - Game state save/load/delete operations
//   - Path helpers for config directory and files
//
// Config directory permissions: 0755 (rwxr-xr-x)
// Config file permissions: 0644 (rw-r--r--)
// Save game file permissions: 0644 (rw-r--r--)
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the session-level options that control how a position is
// set up and how an external engine is driven.
type Config struct {
	Core   CoreConfig
	Engine EngineConfig
}

// CoreConfig controls the board variant and setup a new game starts from.
type CoreConfig struct {
	// Variant is a variant name as accepted by engine.NewBoard: "Standard",
	// "Chess960" or an alias, "8x<ranks>", "Duckboard<files>x<ranks>",
	// "[<backrank letters>]", "Empty", or a bare FEN (§4.2).
	Variant string
	// PromotionSet lists the letters a pawn may promote to, upper-case.
	PromotionSet string
	// Size is stored as "files,ranks"; board construction does not read it
	// (a rectangular board's size comes from its Variant name).
	Size string
}

// EngineConfig controls how an external engine adapter is configured and
// invoked (§4.10).
type EngineConfig struct {
	// Path is the external engine binary's path. Never hardcoded; a
	// missing Path means no external engine is configured.
	Path string
	// Elo limits engine strength via UCI_LimitStrength/UCI_Elo when at or
	// below 2850, the teacher's Python original's own upper bound.
	Elo int
	// MoveTimeMs bounds how long the engine searches per move.
	MoveTimeMs int
	// MultiPV requests N principal variations per search.
	MultiPV int
}

// DefaultConfig returns a Config with default values for maximum
// compatibility.
func DefaultConfig() Config {
	return Config{
		Core: CoreConfig{
			Variant:      "Standard",
			PromotionSet: "QRBN",
		},
		Engine: EngineConfig{
			Path:       "",
			Elo:        2850,
			MoveTimeMs: 1000,
			MultiPV:    1,
		},
	}
}

// ConfigFile represents the structure of the TOML configuration file.
type ConfigFile struct {
	Core   CoreConfigFile   `toml:"core"`
	Engine EngineConfigFile `toml:"engine"`
}

// CoreConfigFile holds core session configuration for the TOML file.
type CoreConfigFile struct {
	Variant      string `toml:"variant"`
	PromotionSet string `toml:"promotion_set"`
	Size         string `toml:"size"`
}

// EngineConfigFile holds engine-adapter configuration for the TOML file.
type EngineConfigFile struct {
	Path       string `toml:"engine_path"`
	Elo        int    `toml:"elo"`
	MoveTimeMs int    `toml:"movetime_ms"`
	MultiPV    int    `toml:"multipv"`
}

// defaultConfigFile returns a ConfigFile with default values.
func defaultConfigFile() ConfigFile {
	d := DefaultConfig()
	return configToConfigFile(d)
}

// configFileToConfig converts a ConfigFile to a Config struct, defaulting
// zero-valued fields the same way DefaultConfig does.
func configFileToConfig(cf ConfigFile) Config {
	variant := cf.Core.Variant
	if variant == "" {
		variant = "Standard"
	}
	promotionSet := cf.Core.PromotionSet
	if promotionSet == "" {
		promotionSet = "QRBN"
	}
	elo := cf.Engine.Elo
	if elo == 0 {
		elo = 2850
	}
	moveTime := cf.Engine.MoveTimeMs
	if moveTime == 0 {
		moveTime = 1000
	}
	multiPV := cf.Engine.MultiPV
	if multiPV == 0 {
		multiPV = 1
	}
	return Config{
		Core: CoreConfig{
			Variant:      variant,
			PromotionSet: promotionSet,
			Size:         cf.Core.Size,
		},
		Engine: EngineConfig{
			Path:       cf.Engine.Path,
			Elo:        elo,
			MoveTimeMs: moveTime,
			MultiPV:    multiPV,
		},
	}
}

// configToConfigFile converts a Config struct to a ConfigFile.
func configToConfigFile(c Config) ConfigFile {
	return ConfigFile{
		Core: CoreConfigFile{
			Variant:      c.Core.Variant,
			PromotionSet: c.Core.PromotionSet,
			Size:         c.Core.Size,
		},
		Engine: EngineConfigFile{
			Path:       c.Engine.Path,
			Elo:        c.Engine.Elo,
			MoveTimeMs: c.Engine.MoveTimeMs,
			MultiPV:    c.Engine.MultiPV,
		},
	}
}

// LoadConfig reads the configuration file from ~/.chesscore/config.toml.
// If the file doesn't exist or cannot be parsed, it returns the default
// configuration. This function never returns an error.
func LoadConfig() Config {
	configPath, err := getConfigFilePath()
	if err != nil {
		return DefaultConfig()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig()
	}

	var cf ConfigFile
	if _, err := toml.DecodeFile(configPath, &cf); err != nil {
		return DefaultConfig()
	}

	return configFileToConfig(cf)
}

// SaveConfig writes the configuration to ~/.chesscore/config.toml. It
// creates the ~/.chesscore/ directory if it doesn't exist.
func SaveConfig(config Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := getConfigFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}

	cf := configToConfigFile(config)

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cf); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}

	return nil
}
