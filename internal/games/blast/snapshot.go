package blast

import "github.com/vovakirdan/tileblast/internal/games/blast/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateStandby     GameStateType = "standby"
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Level   string
	Turn    core.TurnID
	Score   int
	Moves   int // Moves remaining
	Target  int
	Board   string // ASCII dump of the settled board, one line per row
	Cursor  core.Coord
	Outcome string
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := g.ctrl.Snapshot()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case snap.Phase == core.PhaseStandby:
		state = StateStandby
	case snap.Phase == core.PhaseProcessing:
		state = StateAnimating
	case snap.Phase == core.PhaseFinished && snap.Outcome == core.OutcomeWon:
		state = StateWon
	case snap.Phase == core.PhaseFinished:
		state = StateLost
	}

	return Snapshot{
		Tick:    g.tick,
		Level:   g.level.ID,
		Turn:    snap.Turn,
		Score:   snap.Progress.Score,
		Moves:   snap.Progress.MovesRemaining,
		Target:  snap.Progress.TargetScore,
		Board:   snap.Grid.String(),
		Cursor:  g.cursor,
		Outcome: snap.Outcome.String(),
		State:   state,
	}
}
