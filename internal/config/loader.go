package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for values no game can be built from.
var ErrInvalidConfig = errors.New("config: invalid blast config")

// LoadBlast loads Blast configuration.
// Search order: customPath -> ~/.tileblast/configs/blast.yaml -> ./configs/blast.yaml -> embedded default
func LoadBlast(customPath string) (BlastConfig, error) {
	var cfg BlastConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blast.yaml"); userCfgPath != "" {
		if cfg, ok := readBlastFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := readBlastFile(filepath.Join("configs", "blast.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBlastYAML, &cfg); err != nil {
		return DefaultBlastConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readBlastFile reads an optional config file. Missing, unparsable and
// invalid files are skipped so the next location in the search order is tried.
func readBlastFile(path string) (BlastConfig, bool) {
	var cfg BlastConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tileblast", "configs", filename)
}

// ApplyBlastPreset modifies the config based on a difficulty preset.
func ApplyBlastPreset(cfg *BlastConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.MovesScale, cfg.Difficulty.TargetScale = ScalesForPreset(preset)

	// Easy boards never start without a move
	if preset == DifficultyEasy {
		cfg.Board.EnsurePlayable = true
	}
}

// Validate rejects values that cannot produce a playable board.
// Zero overrides are valid and mean "use the level's value".
func (c BlastConfig) Validate() error {
	switch {
	case c.Board.Rows < 0 || c.Board.Cols < 0:
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Board.Rows, c.Board.Cols)
	case c.Board.Colors == 1 || c.Board.Colors < 0:
		return fmt.Errorf("%w: %d colors", ErrInvalidConfig, c.Board.Colors)
	case c.Rules.MovesLimit < 0:
		return fmt.Errorf("%w: moves limit %d", ErrInvalidConfig, c.Rules.MovesLimit)
	case c.Rules.TargetScore < 0:
		return fmt.Errorf("%w: target score %d", ErrInvalidConfig, c.Rules.TargetScore)
	case c.Layout.TileWidth < 0 || c.Layout.TileHeight < 0 || c.Layout.GapH < 0 || c.Layout.GapV < 0:
		return fmt.Errorf("%w: negative layout metric", ErrInvalidConfig)
	case c.Difficulty.MovesScale < 0 || c.Difficulty.TargetScale < 0:
		return fmt.Errorf("%w: negative difficulty scale", ErrInvalidConfig)
	}
	return nil
}
