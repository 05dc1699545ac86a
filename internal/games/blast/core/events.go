package core

import "sync"

// Phase is the turn controller's state.
type Phase int

const (
	PhaseStandby    Phase = iota // Board dealt, waiting for Start
	PhaseIdle                    // Accepting selections
	PhaseProcessing              // A turn is being presented; selections are rejected
	PhaseFinished                // Game over; only Restart is accepted
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStandby:
		return "standby"
	case PhaseIdle:
		return "idle"
	case PhaseProcessing:
		return "processing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is the evaluation of the game after a turn.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeWon
	OutcomeLostNoMoves
	OutcomeLostNoPossibleMatches
)

// String returns a stable identifier, also used when storing results.
func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeWon:
		return "won"
	case OutcomeLostNoMoves:
		return "lost_no_moves"
	case OutcomeLostNoPossibleMatches:
		return "lost_no_matches"
	default:
		return "unknown"
	}
}

// Message returns the text shown to the player when the game ends.
func (o Outcome) Message() string {
	switch o {
	case OutcomeWon:
		return "You win!"
	case OutcomeLostNoMoves:
		return "You lost (no moves left)"
	case OutcomeLostNoPossibleMatches:
		return "You lost (no tiles left to pop)"
	default:
		return ""
	}
}

// IsTerminal returns true for outcomes that end the game.
func (o Outcome) IsTerminal() bool {
	return o != OutcomeContinue
}

// Selection is what happened to a Select call.
type Selection int

const (
	SelectionAccepted Selection = iota // A group was destroyed and a turn started
	SelectionIgnored                   // The cell has no destroyable group
	SelectionRejected                  // The controller is not accepting input
)

// String returns a human-readable name for the selection result.
func (s Selection) String() string {
	switch s {
	case SelectionAccepted:
		return "accepted"
	case SelectionIgnored:
		return "ignored"
	case SelectionRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// TurnID identifies one turn. It increases monotonically, including across restarts.
type TurnID uint64

// TurnEvents is everything presentation needs to animate one turn.
type TurnEvents struct {
	ID       TurnID
	Group    MatchGroup // The destroyed group; Group.Cells are the removed coordinates
	Moves    []FallMove
	Spawns   []SpawnedCell
	Points   int // Points gained this turn
	Progress ProgressSnapshot
}

// Removed returns the coordinates cleared this turn.
func (t TurnEvents) Removed() []Coord {
	return t.Group.Cells
}

// Result is the terminal event emitted when a game ends.
type Result struct {
	Outcome    Outcome
	FinalScore int
	MovesUsed  int
	Turns      int
}

// Presenter is the presentation collaborator driven by the Controller.
// TurnStarted must eventually lead to exactly one done.Done() call; the
// controller stays in PhaseProcessing until then.
type Presenter interface {
	TurnStarted(events TurnEvents, done Completion)
	SelectionRejected(at Coord)
	SelectionIgnored(at Coord)
	GameFinished(result Result)
	Restarted(progress ProgressSnapshot)
}

// Completion signals that presentation finished a turn.
// Done may be called from any goroutine; only the first call has an effect.
type Completion struct {
	turn TurnID
	once *sync.Once
	fire func(TurnID)
}

func newCompletion(turn TurnID, fire func(TurnID)) Completion {
	return Completion{turn: turn, once: &sync.Once{}, fire: fire}
}

// Turn returns the turn this completion belongs to.
func (c Completion) Turn() TurnID {
	return c.turn
}

// Done reports the turn's presentation as finished.
func (c Completion) Done() {
	if c.once == nil {
		return
	}
	c.once.Do(func() {
		c.fire(c.turn)
	})
}

// NopPresenter ignores every event and completes turns immediately.
type NopPresenter struct{}

func (NopPresenter) TurnStarted(_ TurnEvents, done Completion) { done.Done() }
func (NopPresenter) SelectionRejected(Coord)                   {}
func (NopPresenter) SelectionIgnored(Coord)                    {}
func (NopPresenter) GameFinished(Result)                       {}
func (NopPresenter) Restarted(ProgressSnapshot)                {}

var _ Presenter = NopPresenter{}
