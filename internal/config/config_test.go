package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_WithMissingFile(t *testing.T) {
	configPath, err := getConfigFilePath()
	require.NoError(t, err)

	backupPath := configPath + ".test-backup"
	if _, err := os.Stat(configPath); err == nil {
		require.NoError(t, os.Rename(configPath, backupPath))
		defer os.Rename(backupPath, configPath)
	}

	config := LoadConfig()
	assert.Equal(t, DefaultConfig(), config)
}

func TestSaveAndLoadConfig(t *testing.T) {
	custom := Config{
		Core: CoreConfig{
			Variant:      "Chess960",
			PromotionSet: "Q",
		},
		Engine: EngineConfig{
			Path:       "/usr/local/bin/stockfish",
			Elo:        1500,
			MoveTimeMs: 2000,
			MultiPV:    3,
		},
	}

	require.NoError(t, SaveConfig(custom))

	loaded := LoadConfig()
	assert.Equal(t, custom, loaded)
}

func TestSaveConfig_CreatesDirectory(t *testing.T) {
	configDir, err := GetConfigDir()
	require.NoError(t, err)

	require.NoError(t, SaveConfig(DefaultConfig()))

	_, err = os.Stat(configDir)
	assert.NoError(t, err)
}

func TestConfigFileToConfig_DefaultsZeroFields(t *testing.T) {
	cf := ConfigFile{
		Core: CoreConfigFile{
			Variant:      "",
			PromotionSet: "",
		},
		Engine: EngineConfigFile{
			Path:       "/opt/engine",
			Elo:        0,
			MoveTimeMs: 0,
			MultiPV:    0,
		},
	}

	config := configFileToConfig(cf)

	assert.Equal(t, "Standard", config.Core.Variant)
	assert.Equal(t, "QRBN", config.Core.PromotionSet)
	assert.Equal(t, 2850, config.Engine.Elo)
	assert.Equal(t, 1000, config.Engine.MoveTimeMs)
	assert.Equal(t, 1, config.Engine.MultiPV)
	assert.Equal(t, "/opt/engine", config.Engine.Path)
}

func TestConfigToConfigFile_RoundTrips(t *testing.T) {
	config := Config{
		Core: CoreConfig{
			Variant:      "Rectangular",
			PromotionSet: "QR",
			Size:         "10,8",
		},
		Engine: EngineConfig{
			Path:       "/usr/bin/fairy-stockfish",
			Elo:        2200,
			MoveTimeMs: 500,
			MultiPV:    4,
		},
	}

	cf := configToConfigFile(config)
	assert.Equal(t, config, configFileToConfig(cf))
}

func TestDefaultConfigFile(t *testing.T) {
	cf := defaultConfigFile()

	assert.Equal(t, "Standard", cf.Core.Variant)
	assert.Equal(t, "QRBN", cf.Core.PromotionSet)
	assert.Equal(t, 2850, cf.Engine.Elo)
	assert.Equal(t, 1000, cf.Engine.MoveTimeMs)
	assert.Equal(t, 1, cf.Engine.MultiPV)
}
