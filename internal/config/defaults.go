package config

import (
	_ "embed"
)

//go:embed defaults/janken.yaml
var defaultJankenYAML []byte

// DefaultJanken returns the default janken configuration.
// Timings assume the default 30 ticks/second simulation rate.
func DefaultJanken() JankenConfig {
	return JankenConfig{
		Reveal: RevealConfig{
			CountdownTicks: 36, // ~1.2s
			Captions:       []string{"Rock...", "Paper...", "Scissors...", "Shoot!"},
			ResultTicks:    60, // ~2s before an online duel auto-advances
		},
		Match: MatchConfig{
			TargetWins: 2, // Best of 3
		},
		Theme: ThemeConfig{
			Style: ThemeHands,
		},
	}
}

// DefaultJankenYAML returns the embedded default YAML.
func DefaultJankenYAML() []byte {
	return defaultJankenYAML
}
