package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// maxDealAttempts bounds re-rolls when EnsurePlayableStart is set.
const maxDealAttempts = 100

// Rules configures one game: board shape, palette and progression targets.
type Rules struct {
	Rows        int
	Cols        int
	Colors      int
	MovesLimit  int
	TargetScore int

	// EnsurePlayableStart re-rolls a dealt board until at least one move exists.
	EnsurePlayableStart bool
}

// Validate checks the rules without building anything.
func (r Rules) Validate() error {
	if err := validateShape(r.Rows, r.Cols, r.Colors); err != nil {
		return err
	}
	if r.MovesLimit < 0 {
		return fmt.Errorf("%w: moves limit %d", ErrInvalidRules, r.MovesLimit)
	}
	if r.TargetScore <= 0 {
		return fmt.Errorf("%w: target score %d", ErrInvalidRules, r.TargetScore)
	}
	return nil
}

// Snapshot is a copy of the controller's observable state.
type Snapshot struct {
	Phase    Phase
	Outcome  Outcome
	Turn     TurnID
	Progress ProgressSnapshot
	Grid     *Grid // Deep copy; safe to inspect from any goroutine
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGrid starts the first game on the given board instead of dealing one.
// The grid's shape overrides the shape in Rules; Restart deals fresh boards of that shape.
func WithGrid(g *Grid) Option {
	return func(c *Controller) {
		c.grid = g
	}
}

// Controller runs the turn state machine: it validates selections, applies them to
// the grid and progress, hands the result to the Presenter and waits for the
// presenter's completion before evaluating the outcome.
//
// Controller is not safe for concurrent use. Drive it from one goroutine, or wrap
// it in a Loop when completions arrive from elsewhere.
type Controller struct {
	rules     Rules
	rng       RNG
	grid      *Grid
	progress  *Progress
	presenter Presenter
	logger    *log.Logger

	phase   Phase
	outcome Outcome
	turn    TurnID
	turns   int

	// fire routes a Completion back to the controller.
	fire func(TurnID)
}

// NewController deals a board and returns a controller in PhaseStandby.
// A nil presenter is replaced by NopPresenter.
func NewController(rules Rules, rng RNG, presenter Presenter, opts ...Option) (*Controller, error) {
	if presenter == nil {
		presenter = NopPresenter{}
	}

	c := &Controller{
		rng:       rng,
		presenter: presenter,
		logger:    log.New(io.Discard),
		phase:     PhaseStandby,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.grid != nil {
		rules.Rows = c.grid.Rows()
		rules.Cols = c.grid.Cols()
		rules.Colors = c.grid.Colors()
		if c.grid.rng == nil {
			c.grid.rng = rng
		}
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	c.rules = rules

	if c.grid == nil {
		g, err := NewGrid(rules.Rows, rules.Cols, rules.Colors, rng)
		if err != nil {
			return nil, err
		}
		c.grid = g
		c.ensurePlayable()
	}

	progress, err := NewProgress(rules.MovesLimit, rules.TargetScore)
	if err != nil {
		return nil, err
	}
	c.progress = progress

	c.fire = func(id TurnID) {
		if err := c.Complete(id); err != nil {
			c.logger.Warn("completion dropped", "turn", id, "error", err)
		}
	}

	return c, nil
}

// ensurePlayable re-rolls the board until a move exists, if the rules ask for it.
func (c *Controller) ensurePlayable() {
	if !c.rules.EnsurePlayableStart {
		return
	}
	for attempt := 1; attempt < maxDealAttempts && !c.grid.HasAnyPossibleMove(); attempt++ {
		c.grid.Fill()
	}
	if !c.grid.HasAnyPossibleMove() {
		c.logger.Warn("dealt a board without moves", "attempts", maxDealAttempts,
			"rows", c.rules.Rows, "cols", c.rules.Cols, "colors", c.rules.Colors)
	}
}

// Start leaves PhaseStandby and enables selections.
// Returns false if the controller was not in standby.
func (c *Controller) Start() bool {
	if c.phase != PhaseStandby {
		return false
	}
	c.phase = PhaseIdle
	c.logger.Debug("game started", "moves", c.progress.MovesRemaining(), "target", c.progress.TargetScore())
	return true
}

// Select plays the cell at c.
//
// Outside PhaseIdle the selection is rejected without touching any state.
// A cell whose group is smaller than MinGroupSize is ignored. Otherwise one move
// is spent, the group is scored and removed, gravity runs, and the turn is handed
// to the presenter. The controller then stays in PhaseProcessing until the turn's
// Completion fires.
func (c *Controller) Select(at Coord) (Selection, error) {
	if c.phase != PhaseIdle {
		c.logger.Debug("selection rejected", "at", at, "phase", c.phase)
		c.presenter.SelectionRejected(at)
		return SelectionRejected, nil
	}

	group, err := c.grid.FindMatchGroup(at)
	if err != nil {
		return SelectionIgnored, err
	}
	if !group.Destroyable() {
		c.presenter.SelectionIgnored(at)
		return SelectionIgnored, nil
	}

	if !c.progress.ConsumeMove() {
		// Idle is only reachable with moves left
		c.logger.Error("invariant violation: idle without moves", "at", at, "score", c.progress.Score())
		c.presenter.SelectionIgnored(at)
		return SelectionIgnored, nil
	}
	points := c.progress.AddScore(group.Size())

	c.phase = PhaseProcessing
	c.turn++
	c.turns++

	c.grid.RemoveGroup(group)
	gravity := c.grid.ApplyGravity()

	events := TurnEvents{
		ID:       c.turn,
		Group:    group,
		Moves:    gravity.Moves,
		Spawns:   gravity.Spawns,
		Points:   points,
		Progress: c.progress.Snapshot(),
	}
	c.logger.Debug("turn started", "turn", c.turn, "at", at, "color", group.Color,
		"size", group.Size(), "points", points, "moves", len(gravity.Moves), "spawns", len(gravity.Spawns))

	c.presenter.TurnStarted(events, newCompletion(c.turn, c.fire))
	return SelectionAccepted, nil
}

// Complete ends the presentation wait of turn id and evaluates the outcome.
// Completions for any turn other than the one in flight return ErrStaleCompletion.
func (c *Controller) Complete(id TurnID) error {
	if c.phase != PhaseProcessing || id != c.turn {
		return fmt.Errorf("%w: turn %d (current %d, %s)", ErrStaleCompletion, id, c.turn, c.phase)
	}

	outcome := c.evaluate()
	if !outcome.IsTerminal() {
		c.phase = PhaseIdle
		return nil
	}

	c.phase = PhaseFinished
	c.outcome = outcome
	result := c.Result()
	c.logger.Info("game finished", "outcome", outcome, "score", result.FinalScore, "turns", result.Turns)
	c.presenter.GameFinished(result)
	return nil
}

// evaluate applies the end-of-turn checks in priority order.
// A win takes precedence over running out of moves on the same turn.
func (c *Controller) evaluate() Outcome {
	switch {
	case c.progress.IsWin():
		return OutcomeWon
	case c.progress.MovesRemaining() <= 0:
		return OutcomeLostNoMoves
	case !c.grid.HasAnyPossibleMove():
		return OutcomeLostNoPossibleMatches
	default:
		return OutcomeContinue
	}
}

// Restart deals a new board, resets progress and re-enables selections.
// Valid from any phase; a turn still being presented is abandoned.
func (c *Controller) Restart() {
	c.turn++
	c.turns = 0
	c.grid.Fill()
	c.ensurePlayable()
	c.progress = &Progress{movesLeft: c.rules.MovesLimit, target: c.rules.TargetScore}
	c.phase = PhaseIdle
	c.outcome = OutcomeContinue

	c.logger.Debug("game restarted", "turn", c.turn)
	c.presenter.Restarted(c.progress.Snapshot())
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Outcome returns the terminal outcome, or OutcomeContinue while playing.
func (c *Controller) Outcome() Outcome { return c.outcome }

// Rules returns the rules in effect.
func (c *Controller) Rules() Rules { return c.rules }

// Progress returns a copy of the progress counters.
func (c *Controller) Progress() ProgressSnapshot {
	return c.progress.Snapshot()
}

// Cell returns the color at the given coordinate.
func (c *Controller) Cell(at Coord) (Color, error) {
	return c.grid.At(at)
}

// Board returns a copy of the grid.
func (c *Controller) Board() *Grid {
	return c.grid.Clone()
}

// Hint returns the largest destroyable group, if any.
func (c *Controller) Hint() (MatchGroup, bool) {
	groups := c.grid.Groups()
	if len(groups) == 0 {
		return MatchGroup{Color: Empty}, false
	}
	return groups[0], true
}

// Result returns the summary of the current game.
func (c *Controller) Result() Result {
	return Result{
		Outcome:    c.outcome,
		FinalScore: c.progress.Score(),
		MovesUsed:  c.rules.MovesLimit - c.progress.MovesRemaining(),
		Turns:      c.turns,
	}
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:    c.phase,
		Outcome:  c.outcome,
		Turn:     c.turn,
		Progress: c.progress.Snapshot(),
		Grid:     c.grid.Clone(),
	}
}
