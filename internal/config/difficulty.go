package config

import "math"

// DifficultyManager turns a level's base budget and target into the values
// used for a game.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Moves returns the scaled move budget. At least one move is always granted.
func (d *DifficultyManager) Moves(base int) int {
	if !d.IsEnabled() || d.cfg.MovesScale <= 0 {
		return base
	}
	return max(1, int(math.Round(float64(base)*d.cfg.MovesScale)))
}

// Target returns the scaled target score rounded to the nearest multiple of ten.
func (d *DifficultyManager) Target(base int) int {
	if !d.IsEnabled() || d.cfg.TargetScale <= 0 {
		return base
	}
	scaled := math.Round(float64(base)*d.cfg.TargetScale/10) * 10
	return max(10, int(scaled))
}
