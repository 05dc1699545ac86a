package config

import (
	_ "embed"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the built-in configuration.
// It matches defaults/blast.yaml and is used when the embedded file cannot be parsed.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Board: BlastBoard{
			EnsurePlayable: true,
		},
		Layout: BlastLayout{
			TileWidth:  4,
			TileHeight: 2,
			GapH:       0,
			GapV:       0,
		},
		Animation: BlastAnimation{
			RemoveTicks:  12,
			FallTicksRow: 4,
			MinFallTicks: 8,
			ShakeTicks:   12,
			HintTicks:    90,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			MovesScale:  1.0,
			TargetScale: 1.0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlastYAML
}
