// Package config provides YAML-based configuration loading and difficulty
// presets for Blast.
package config

// BlastConfig contains all configuration for the Blast puzzle.
type BlastConfig struct {
	Board      BlastBoard       `yaml:"board"`
	Rules      BlastRules       `yaml:"rules"`
	Layout     BlastLayout      `yaml:"layout"`
	Animation  BlastAnimation   `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BlastBoard overrides the board shape of the selected level.
// Zero values keep the level's own setting.
type BlastBoard struct {
	Rows           int  `yaml:"rows"`
	Cols           int  `yaml:"cols"`
	Colors         int  `yaml:"colors"`
	EnsurePlayable bool `yaml:"ensure_playable"` // Re-roll dealt boards that have no move
}

// BlastRules overrides the move budget and target of the selected level.
// Zero values keep the level's own setting.
type BlastRules struct {
	MovesLimit  int `yaml:"moves_limit"`
	TargetScore int `yaml:"target_score"`
}

// BlastLayout sizes tiles in terminal cells.
type BlastLayout struct {
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`
	GapH       int `yaml:"gap_h"` // Columns between neighboring tiles
	GapV       int `yaml:"gap_v"` // Rows between neighboring tiles
}

// BlastAnimation sets animation lengths in ticks.
type BlastAnimation struct {
	RemoveTicks  int  `yaml:"remove_ticks"`   // Burst shown on popped tiles
	FallTicksRow int  `yaml:"fall_ticks_row"` // Ticks per row of falling distance
	MinFallTicks int  `yaml:"min_fall_ticks"`
	ShakeTicks   int  `yaml:"shake_ticks"` // Feedback on ignored or rejected input
	HintTicks    int  `yaml:"hint_ticks"`
	Instant      bool `yaml:"instant"` // Skip animations entirely
}

// DifficultyConfig scales the level's move budget and target score.
type DifficultyConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MovesScale  float64 `yaml:"moves_scale"`  // Multiplier on the move budget
	TargetScale float64 `yaml:"target_scale"` // Multiplier on the target score
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), true
	default:
		return "", false
	}
}

// ScalesForPreset returns the move and target multipliers of a preset.
func ScalesForPreset(preset DifficultyPreset) (moves, target float64) {
	switch preset {
	case DifficultyEasy:
		return 1.5, 0.8
	case DifficultyHard:
		return 0.8, 1.25
	default:
		return 1.0, 1.0
	}
}

// IsFixedPreset returns true if the preset disables scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
