package blast

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileblast/internal/config"
	platformcore "github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/blast/core"
	"github.com/vovakirdan/tileblast/internal/registry"
)

// Game is a playable Blast level. It drives a core.Controller from platform
// input and acts as the controller's presenter: every turn is animated over
// the following ticks and completed when the last tile lands.
type Game struct {
	level  Level
	cfg    config.BlastConfig
	timing animationTiming
	layout core.Layout
	rng    *rand.Rand
	ctrl   *core.Controller
	tick   uint64

	// Starting board for tests; nil deals a random one
	fixture *core.Grid

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool

	// Presentation state
	view      *core.Grid // Board as currently shown
	progress  core.ProgressSnapshot
	cursor    core.Coord
	anim      *turnAnimation
	shake     int
	hint      core.MatchGroup
	hintTicks int
	result    *core.Result
}

// Package-level configuration, set by the CLI before games are created
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on top of the config.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger routes controller diagnostics to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// New creates a game for the given level.
func New(level Level) *Game {
	return &Game{level: level}
}

func init() {
	for _, lvl := range Levels {
		registry.Register(lvl.ID, func() registry.Game {
			return New(lvl)
		})
	}
}

// loadConfig resolves the config file and applies an explicit difficulty preset.
func loadConfig() config.BlastConfig {
	cfg, err := config.LoadBlast(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "path", configPath, "error", err)
		cfg = config.DefaultBlastConfig()
	}

	if difficultyPreset != "" {
		preset, ok := config.ParsePreset(difficultyPreset)
		if !ok {
			logger.Warn("unknown difficulty preset", "preset", difficultyPreset)
			return cfg
		}
		config.ApplyBlastPreset(&cfg, preset)
	}
	return cfg
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.level.ID == Levels[0].ID {
		return "Blast"
	}
	return "Blast (" + g.level.Name + ")"
}

// Description summarizes the level's goal.
func (g *Game) Description() string {
	return fmt.Sprintf("Pop tile groups: %d points in %d moves on %dx%d",
		g.level.Target, g.level.Moves, g.level.Rows, g.level.Cols)
}

// Reset deals a new game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = loadConfig()
	g.timing = timingFrom(g.cfg.Animation)
	g.layout = core.Layout{
		TileW: float64(max(1, g.cfg.Layout.TileWidth)),
		TileH: float64(max(1, g.cfg.Layout.TileHeight)),
		GapH:  float64(g.cfg.Layout.GapH),
		GapV:  float64(g.cfg.Layout.GapV),
	}
	g.rng = core.NewRNG(cfg.Seed)
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.clearEffects()
	g.anim = nil
	g.result = nil

	opts := []core.Option{core.WithLogger(logger)}
	if g.fixture != nil {
		opts = append(opts, core.WithGrid(g.fixture.Clone()))
	}

	ctrl, err := core.NewController(g.level.Rules(g.cfg), g.rng, g, opts...)
	if err != nil {
		logger.Error("invalid rules, using level defaults", "level", g.level.ID, "error", err)
		g.cfg = config.DefaultBlastConfig()
		ctrl, err = core.NewController(g.level.Rules(g.cfg), g.rng, g, opts...)
		if err != nil {
			panic(fmt.Sprintf("blast: level %s: %v", g.level.ID, err))
		}
	}
	g.ctrl = ctrl

	rules := ctrl.Rules()
	g.view = ctrl.Board()
	g.progress = ctrl.Progress()
	g.cursor = core.C(rules.Rows/2, rules.Cols/2)

	g.checkScreenSize()
}

func timingFrom(a config.BlastAnimation) animationTiming {
	return animationTiming{
		removeTicks:  max(0, a.RemoveTicks),
		fallTicksRow: max(0, a.FallTicksRow),
		minFallTicks: max(0, a.MinFallTicks),
		shakeTicks:   max(0, a.ShakeTicks),
		hintTicks:    max(0, a.HintTicks),
		instant:      a.Instant,
	}
}

// Resize adapts to a new terminal size without dealing a new board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the board, its border and the HUD fit.
func (g *Game) checkScreenSize() {
	bw, bh := g.boardSize()
	g.tooSmall = g.screenW < bw+2 || g.screenH < hudHeight+bh+2
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && g.ctrl.Phase() != core.PhaseFinished {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	// Restart is accepted in every phase, abandoning a turn in flight
	if in.Has(platformcore.ActionRestart) {
		g.ctrl.Restart()
		return platformcore.StepResult{State: g.State()}
	}

	g.updateEffects()
	if g.anim != nil && g.anim.update() {
		g.finishAnimation()
	}

	switch g.ctrl.Phase() {
	case core.PhaseStandby:
		_, clicked := in.Clicked()
		if in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionSelect) || clicked {
			g.ctrl.Start()
		}
	case core.PhaseIdle, core.PhaseProcessing:
		g.handlePlayInput(in)
	}

	return platformcore.StepResult{State: g.State()}
}

// handlePlayInput moves the cursor and plays selections.
// Selections made while a turn is animating reach the controller and are rejected there.
func (g *Game) handlePlayInput(in platformcore.InputFrame) {
	rules := g.ctrl.Rules()

	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Row--
	case in.Has(platformcore.ActionDown):
		g.cursor.Row++
	case in.Has(platformcore.ActionLeft):
		g.cursor.Col--
	case in.Has(platformcore.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = platformcore.Clamp(g.cursor.Row, 0, rules.Rows-1)
	g.cursor.Col = platformcore.Clamp(g.cursor.Col, 0, rules.Cols-1)

	if in.Has(platformcore.ActionHint) && g.ctrl.Phase() == core.PhaseIdle {
		g.showHint()
	}

	if p, ok := in.Clicked(); ok {
		if cell, hit := g.cellAtScreen(p); hit {
			g.cursor = cell
			g.selectCell(cell)
		}
		return
	}

	if in.Has(platformcore.ActionSelect) || in.Has(platformcore.ActionConfirm) {
		g.selectCell(g.cursor)
	}
}

func (g *Game) selectCell(at core.Coord) {
	sel, err := g.ctrl.Select(at)
	if err != nil {
		logger.Debug("selection failed", "at", at, "error", err)
		return
	}
	logger.Debug("selection", "at", at, "result", sel)
}

func (g *Game) showHint() {
	group, ok := g.ctrl.Hint()
	if !ok {
		return
	}
	g.hint = group
	g.hintTicks = g.timing.hintTicks
	g.cursor = group.Cells[0]
}

// updateEffects counts down transient feedback.
func (g *Game) updateEffects() {
	if g.shake > 0 {
		g.shake--
	}
	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = core.MatchGroup{}
		}
	}
}

func (g *Game) clearEffects() {
	g.shake = 0
	g.hint = core.MatchGroup{}
	g.hintTicks = 0
}

// finishAnimation shows the settled board and hands the turn back to the controller.
func (g *Game) finishAnimation() {
	a := g.anim
	g.anim = nil
	g.view = a.after
	a.done.Done()
}

// TurnStarted animates a turn, or completes it at once when animations are off.
func (g *Game) TurnStarted(events core.TurnEvents, done core.Completion) {
	g.clearEffects()
	g.progress = events.Progress
	after := g.ctrl.Board()

	if g.timing.instant {
		g.view = after
		done.Done()
		return
	}
	g.anim = newTurnAnimation(events, done, g.view, after, g.timing)
}

// SelectionRejected shakes the board.
func (g *Game) SelectionRejected(core.Coord) {
	g.shake = g.timing.shakeTicks
}

// SelectionIgnored shakes the board.
func (g *Game) SelectionIgnored(core.Coord) {
	g.shake = g.timing.shakeTicks
}

// GameFinished keeps the result for the result dialog.
func (g *Game) GameFinished(result core.Result) {
	g.result = &result
}

// Restarted shows the freshly dealt board.
func (g *Game) Restarted(progress core.ProgressSnapshot) {
	g.anim = nil
	g.result = nil
	g.clearEffects()
	g.view = g.ctrl.Board()
	g.progress = progress
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	state := platformcore.GameState{
		Score:  g.ctrl.Progress().Score,
		Paused: g.paused || g.tooSmall,
	}
	if g.ctrl.Phase() == core.PhaseFinished {
		result := g.ctrl.Result()
		state.GameOver = true
		state.Outcome = result.Outcome.String()
		state.MovesUsed = result.MovesUsed
	}
	return state
}

var (
	_ registry.Game      = (*Game)(nil)
	_ registry.Describer = (*Game)(nil)
	_ core.Presenter     = (*Game)(nil)
)
