package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathkids/internal/config"
	"github.com/vovakirdan/mathkids/internal/games/comparison"
	"github.com/vovakirdan/mathkids/internal/games/platformer"
)

// dataDir is where logs, keys and screenshots live.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mathkids"
	}
	return filepath.Join(home, ".mathkids")
}

// gameConfigPaths maps game IDs to the custom config files given on the
// command line.
func gameConfigPaths() map[string]string {
	paths := make(map[string]string)
	if flagPlatformerConfig != "" {
		paths[platformer.ID] = flagPlatformerConfig
	}
	if flagComparisonConfig != "" {
		paths[comparison.ID] = flagComparisonConfig
	}
	return paths
}

// loadAppConfig loads the app config, falling back to the defaults when
// the file is rejected.
func loadAppConfig(logger *log.Logger) config.AppConfig {
	cfg, err := config.LoadApp(flagAppConfig)
	if err != nil {
		logger.Warn("app config rejected, using defaults", "path", flagAppConfig, "err", err)
		return config.DefaultAppConfig()
	}
	return cfg
}
