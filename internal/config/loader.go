package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadJanken loads the janken configuration.
// Search order: customPath -> ~/.janken/configs/janken.yaml -> ./configs/janken.yaml -> embedded default
func LoadJanken(customPath string) (JankenConfig, error) {
	var cfg JankenConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return normalize(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("janken.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return normalize(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/janken.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return normalize(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultJankenYAML, &cfg); err != nil {
		return DefaultJanken(), nil // Fallback to hardcoded if embed fails
	}
	return normalize(cfg), nil
}

// normalize fills in values a partial config file left at zero.
func normalize(cfg JankenConfig) JankenConfig {
	def := DefaultJanken()
	if cfg.Reveal.CountdownTicks <= 0 {
		cfg.Reveal.CountdownTicks = def.Reveal.CountdownTicks
	}
	if len(cfg.Reveal.Captions) == 0 {
		cfg.Reveal.Captions = def.Reveal.Captions
	}
	if cfg.Reveal.ResultTicks <= 0 {
		cfg.Reveal.ResultTicks = def.Reveal.ResultTicks
	}
	if cfg.Match.TargetWins < 0 {
		cfg.Match.TargetWins = 0
	}
	if cfg.Theme.Style != ThemeHands && cfg.Theme.Style != ThemeCompact {
		cfg.Theme.Style = def.Theme.Style
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".janken", "configs", filename)
}
