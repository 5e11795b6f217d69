package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads platformer configuration.
// Search order: customPath -> ~/.mathkids/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	cfg, err := load(customPath, "platformer.yaml", defaultPlatformerYAML, DefaultPlatformerConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid platformer config: %w", err)
	}
	return cfg, nil
}

// LoadComparison loads comparison game configuration.
// Search order: customPath -> ~/.mathkids/configs/comparison.yaml -> ./configs/comparison.yaml -> embedded default
func LoadComparison(customPath string) (ComparisonConfig, error) {
	cfg, err := load(customPath, "comparison.yaml", defaultComparisonYAML, DefaultComparisonConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid comparison config: %w", err)
	}
	return cfg, nil
}

// LoadApp loads session, input and leaderboard settings.
// Search order: customPath -> ~/.mathkids/configs/app.yaml -> ./configs/app.yaml -> embedded default
func LoadApp(customPath string) (AppConfig, error) {
	cfg, err := load(customPath, "app.yaml", defaultAppYAML, DefaultAppConfig)
	if err != nil {
		return cfg, err
	}
	if cfg.Input.HoldTicks < 1 {
		cfg.Input.HoldTicks = 1
	}
	if cfg.Session.Delay < 0 {
		return cfg, fmt.Errorf("invalid app config: session.delay must not be negative")
	}
	return cfg, nil
}

// load resolves one config file. Values missing from a file keep the
// embedded defaults, since the file is decoded on top of them.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()
	// Embedded YAML is the base; a broken embed leaves the hardcoded fallback
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		cfg = fallback()
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if p := userConfigPath(filename); p != "" {
		candidates = append([]string{p}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		next := cfg
		if err := yaml.Unmarshal(data, &next); err == nil {
			return next, nil
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mathkids", "configs", filename)
}
