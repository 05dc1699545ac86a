// Package blast implements the Blast tile-matching puzzle: pop groups of
// same-colored tiles to reach the target score before the moves run out.
package blast

import (
	"github.com/vovakirdan/tileblast/internal/config"
	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

// Level defines a board shape, palette and goal.
type Level struct {
	ID     string // Registry id, also the score table key
	Name   string
	Rows   int
	Cols   int
	Colors int
	Moves  int // Move budget
	Target int // Score needed to win
}

// Levels lists the registered levels. The first entry is the classic game.
var Levels = []Level{
	{ID: "blast", Name: "Classic", Rows: 9, Cols: 9, Colors: 5, Moves: 30, Target: 500},
	{ID: "blast_quick", Name: "Quick", Rows: 7, Cols: 7, Colors: 4, Moves: 15, Target: 250},
	{ID: "blast_marathon", Name: "Marathon", Rows: 10, Cols: 10, Colors: 5, Moves: 60, Target: 1200},
}

// LevelByID returns the level registered under id.
func LevelByID(id string) (Level, bool) {
	for _, lvl := range Levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return Level{}, false
}

// LevelIDs returns the ids of all levels in registration order.
func LevelIDs() []string {
	ids := make([]string, len(Levels))
	for i, lvl := range Levels {
		ids[i] = lvl.ID
	}
	return ids
}

// Rules builds the controller rules for this level.
// Non-zero board and rule overrides in cfg replace the level's values;
// the move budget and target are then scaled by the difficulty settings.
func (l Level) Rules(cfg config.BlastConfig) core.Rules {
	rules := core.Rules{
		Rows:                l.Rows,
		Cols:                l.Cols,
		Colors:              l.Colors,
		MovesLimit:          l.Moves,
		TargetScore:         l.Target,
		EnsurePlayableStart: cfg.Board.EnsurePlayable,
	}

	if cfg.Board.Rows > 0 {
		rules.Rows = cfg.Board.Rows
	}
	if cfg.Board.Cols > 0 {
		rules.Cols = cfg.Board.Cols
	}
	if cfg.Board.Colors > 0 {
		rules.Colors = cfg.Board.Colors
	}
	if cfg.Rules.MovesLimit > 0 {
		rules.MovesLimit = cfg.Rules.MovesLimit
	}
	if cfg.Rules.TargetScore > 0 {
		rules.TargetScore = cfg.Rules.TargetScore
	}

	dm := config.NewDifficultyManager(cfg.Difficulty)
	rules.MovesLimit = dm.Moves(rules.MovesLimit)
	rules.TargetScore = dm.Target(rules.TargetScore)
	return rules
}

// ConfiguredRules builds the level's rules from the active config file and
// difficulty preset, as a freshly created game would.
func (l Level) ConfiguredRules() core.Rules {
	return l.Rules(loadConfig())
}
