// Package config provides YAML-based game configuration loading and
// match presets for the janken platform.
package config

// JankenConfig contains all configuration for the janken game.
type JankenConfig struct {
	Reveal RevealConfig `yaml:"reveal"`
	Match  MatchConfig  `yaml:"match"`
	Theme  ThemeConfig  `yaml:"theme"`
}

// RevealConfig defines the reveal animation timing.
type RevealConfig struct {
	// CountdownTicks is the length of the "Rock... Paper... Scissors..."
	// countdown in simulation ticks.
	CountdownTicks int `yaml:"countdown_ticks"`
	// Captions are spoken across the countdown, one per beat.
	Captions []string `yaml:"captions"`
	// ResultTicks is how long an online duel shows a round result before
	// the next round starts (solo play waits for a keypress instead).
	ResultTicks int `yaml:"result_ticks"`
}

// MatchConfig defines the match length.
type MatchConfig struct {
	// TargetWins ends a best-of match when one side reaches it.
	// 0 means free play (the match ends only on explicit reset).
	TargetWins int `yaml:"target_wins"`
}

// Theme styles for the gesture display.
const (
	ThemeHands   = "hands"   // Full ASCII hand art
	ThemeCompact = "compact" // Gesture names only, for small windows
)

// ThemeConfig defines the gesture display style.
type ThemeConfig struct {
	Style string `yaml:"style"`
}

// MatchPreset represents a named match length.
type MatchPreset string

const (
	PresetFreePlay MatchPreset = "freeplay"
	PresetBestOf3  MatchPreset = "bestof3"
	PresetBestOf5  MatchPreset = "bestof5"
)

// TargetWinsForPreset returns the wins target for a match preset.
func TargetWinsForPreset(preset MatchPreset) int {
	switch preset {
	case PresetBestOf3:
		return 2
	case PresetBestOf5:
		return 3
	default:
		return 0
	}
}

// ApplyPreset overrides the match section of cfg with a named preset.
// Unknown preset names leave the config untouched.
func ApplyPreset(cfg *JankenConfig, preset MatchPreset) {
	switch preset {
	case PresetFreePlay, PresetBestOf3, PresetBestOf5:
		cfg.Match.TargetWins = TargetWinsForPreset(preset)
	}
}

// ValidPreset reports whether name is a known match preset.
func ValidPreset(name string) bool {
	switch MatchPreset(name) {
	case PresetFreePlay, PresetBestOf3, PresetBestOf5:
		return true
	}
	return false
}
