package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

func newTestController(t *testing.T, rules core.Rules, rng core.RNG, p core.Presenter, lines ...string) *core.Controller {
	t.Helper()
	var opts []core.Option
	if len(lines) > 0 {
		opts = append(opts, core.WithGrid(mustGrid(t, rules.Colors, rng, lines...)))
	}
	ctrl, err := core.NewController(rules, rng, p, opts...)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return ctrl
}

func TestControllerStartsInStandby(t *testing.T) {
	rec := &recorder{}
	ctrl := newTestController(t, core.Rules{Colors: 2, MovesLimit: 5, TargetScore: 100}, core.NewRNG(1), rec, "BB")

	if ctrl.Phase() != core.PhaseStandby {
		t.Fatalf("initial phase = %v, want standby", ctrl.Phase())
	}

	sel, err := ctrl.Select(core.C(0, 0))
	if err != nil || sel != core.SelectionRejected {
		t.Errorf("Select in standby = %v, %v; want rejected", sel, err)
	}
	if len(rec.rejected) != 1 {
		t.Errorf("expected one rejection event, got %d", len(rec.rejected))
	}

	if !ctrl.Start() {
		t.Fatal("Start() from standby returned false")
	}
	if ctrl.Start() {
		t.Error("second Start() returned true")
	}
	if ctrl.Phase() != core.PhaseIdle {
		t.Errorf("phase after Start = %v, want idle", ctrl.Phase())
	}
}

func TestControllerSingleRowScenario(t *testing.T) {
	rec := &recorder{}
	rng := core.NewSequenceRNG(1, 0)
	ctrl := newTestController(t, core.Rules{Colors: 2, MovesLimit: 5, TargetScore: 100}, rng, rec, "BBG")
	ctrl.Start()

	sel, err := ctrl.Select(core.C(0, 0))
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sel != core.SelectionAccepted {
		t.Fatalf("Select = %v, want accepted", sel)
	}
	if ctrl.Phase() != core.PhaseProcessing {
		t.Fatalf("phase = %v, want processing", ctrl.Phase())
	}
	if len(rec.turns) != 1 {
		t.Fatalf("expected one turn event, got %d", len(rec.turns))
	}

	turn := rec.turns[0]
	if !reflect.DeepEqual(turn.Removed(), []core.Coord{core.C(0, 0), core.C(0, 1)}) {
		t.Errorf("removed = %v", turn.Removed())
	}
	if turn.Points != 10 || turn.Progress.Score != 10 || turn.Progress.MovesRemaining != 4 {
		t.Errorf("unexpected progress in turn: points=%d %+v", turn.Points, turn.Progress)
	}
	if len(turn.Moves) != 0 {
		t.Errorf("single row cannot fall, got %+v", turn.Moves)
	}
	wantSpawns := []core.SpawnedCell{{Row: 0, Col: 0, Color: 1}, {Row: 0, Col: 1, Color: 0}}
	if !reflect.DeepEqual(turn.Spawns, wantSpawns) {
		t.Errorf("spawns = %+v, want %+v", turn.Spawns, wantSpawns)
	}
	if got := ctrl.Board().String(); got != "GBG" {
		t.Errorf("board = %q, want GBG", got)
	}

	// The refilled row has no pair left
	rec.finish(t)
	if ctrl.Phase() != core.PhaseFinished {
		t.Fatalf("phase = %v, want finished", ctrl.Phase())
	}
	if ctrl.Outcome() != core.OutcomeLostNoPossibleMatches {
		t.Errorf("outcome = %v, want lost_no_matches", ctrl.Outcome())
	}
	want := core.Result{Outcome: core.OutcomeLostNoPossibleMatches, FinalScore: 10, MovesUsed: 1, Turns: 1}
	if len(rec.results) != 1 || rec.results[0] != want {
		t.Errorf("results = %+v, want [%+v]", rec.results, want)
	}
}

func TestControllerWinTakesPrecedence(t *testing.T) {
	rec := &recorder{}
	// One move left, ten points short of the target
	rules := core.Rules{Colors: 2, MovesLimit: 1, TargetScore: 10}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(0), rec, "BBG")
	ctrl.Start()

	if _, err := ctrl.Select(core.C(0, 1)); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	rec.finish(t)

	if ctrl.Outcome() != core.OutcomeWon {
		t.Errorf("outcome = %v, want won", ctrl.Outcome())
	}
	if got := ctrl.Progress(); got.MovesRemaining != 0 || got.Score != 10 {
		t.Errorf("progress = %+v", got)
	}
}

func TestControllerLossByMoves(t *testing.T) {
	rec := &recorder{}
	rules := core.Rules{Colors: 2, MovesLimit: 1, TargetScore: 1000}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(0), rec, "BB", "BB")
	ctrl.Start()

	ctrl.Select(core.C(1, 1))
	rec.finish(t)

	if ctrl.Outcome() != core.OutcomeLostNoMoves {
		t.Errorf("outcome = %v, want lost_no_moves", ctrl.Outcome())
	}

	// Finished ignores further selections
	sel, _ := ctrl.Select(core.C(0, 0))
	if sel != core.SelectionRejected {
		t.Errorf("Select after finish = %v, want rejected", sel)
	}
}

func TestControllerContinuesWhenMovesRemain(t *testing.T) {
	rec := &recorder{}
	rules := core.Rules{Colors: 2, MovesLimit: 5, TargetScore: 1000}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(0), rec, "BB", "GG")
	ctrl.Start()

	ctrl.Select(core.C(0, 0))
	rec.finish(t)

	if ctrl.Phase() != core.PhaseIdle {
		t.Errorf("phase = %v, want idle", ctrl.Phase())
	}
	if ctrl.Outcome() != core.OutcomeContinue {
		t.Errorf("outcome = %v, want continue", ctrl.Outcome())
	}
	if len(rec.results) != 0 {
		t.Errorf("unexpected terminal event %+v", rec.results)
	}
}

func TestControllerRejectsWhileProcessing(t *testing.T) {
	rec := &recorder{}
	rules := core.Rules{Colors: 3, MovesLimit: 5, TargetScore: 1000}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(2), rec, "BBG", "GGP")
	ctrl.Start()

	ctrl.Select(core.C(0, 0))
	board := ctrl.Board()
	progress := ctrl.Progress()

	// Same coordinate again while the first turn is still animating
	sel, err := ctrl.Select(core.C(0, 0))
	if err != nil || sel != core.SelectionRejected {
		t.Fatalf("second Select = %v, %v; want rejected", sel, err)
	}
	if !ctrl.Board().Equal(board) {
		t.Error("rejected selection changed the board")
	}
	if ctrl.Progress() != progress {
		t.Error("rejected selection changed progress")
	}
	if len(rec.turns) != 1 || len(rec.rejected) != 1 {
		t.Errorf("turns=%d rejected=%d, want 1 and 1", len(rec.turns), len(rec.rejected))
	}
}

func TestControllerIgnoresSingleCell(t *testing.T) {
	rec := &recorder{}
	rules := core.Rules{Colors: 3, MovesLimit: 5, TargetScore: 1000}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(0), rec, "BGG")
	ctrl.Start()

	sel, err := ctrl.Select(core.C(0, 0))
	if err != nil || sel != core.SelectionIgnored {
		t.Fatalf("Select = %v, %v; want ignored", sel, err)
	}
	if ctrl.Phase() != core.PhaseIdle {
		t.Errorf("phase = %v, want idle", ctrl.Phase())
	}
	if ctrl.Progress().MovesRemaining != 5 {
		t.Error("ignored selection spent a move")
	}
	if !reflect.DeepEqual(rec.ignored, []core.Coord{core.C(0, 0)}) {
		t.Errorf("ignored events = %v", rec.ignored)
	}
}

func TestControllerSelectOutOfBounds(t *testing.T) {
	ctrl := newTestController(t, core.Rules{Colors: 2, MovesLimit: 5, TargetScore: 100}, core.NewRNG(1), nil, "BB")
	ctrl.Start()

	if _, err := ctrl.Select(core.C(3, 0)); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if ctrl.Phase() != core.PhaseIdle {
		t.Errorf("phase = %v, want idle", ctrl.Phase())
	}
}

func TestControllerSynchronousCompletion(t *testing.T) {
	rec := &recorder{autoClose: true}
	rules := core.Rules{Colors: 2, MovesLimit: 5, TargetScore: 1000}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(0), rec, "BB", "GG")
	ctrl.Start()

	sel, _ := ctrl.Select(core.C(1, 0))
	if sel != core.SelectionAccepted {
		t.Fatalf("Select = %v, want accepted", sel)
	}
	if ctrl.Phase() != core.PhaseIdle {
		t.Errorf("phase = %v, want idle after synchronous completion", ctrl.Phase())
	}
}

func TestCompletionFiresOnce(t *testing.T) {
	rec := &recorder{}
	rules := core.Rules{Colors: 2, MovesLimit: 5, TargetScore: 1000}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(0), rec, "BB", "GG")
	ctrl.Start()

	ctrl.Select(core.C(0, 0))
	done := rec.pending[0]
	done.Done()

	// Start a second turn, then replay the first completion
	ctrl.Select(core.C(0, 0))
	if ctrl.Phase() != core.PhaseProcessing {
		t.Fatalf("phase = %v, want processing", ctrl.Phase())
	}
	done.Done()
	if ctrl.Phase() != core.PhaseProcessing {
		t.Error("repeated Done completed a later turn")
	}
}

func TestControllerStaleCompletionAfterRestart(t *testing.T) {
	rec := &recorder{}
	rules := core.Rules{Colors: 2, MovesLimit: 5, TargetScore: 1000}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(0), rec, "BB", "GG")
	ctrl.Start()

	ctrl.Select(core.C(0, 0))
	stale := rec.pending[0]

	ctrl.Restart()
	if ctrl.Phase() != core.PhaseIdle {
		t.Fatalf("phase after restart = %v, want idle", ctrl.Phase())
	}

	if err := ctrl.Complete(stale.Turn()); !errors.Is(err, core.ErrStaleCompletion) {
		t.Errorf("expected ErrStaleCompletion, got %v", err)
	}
	stale.Done()
	if ctrl.Phase() != core.PhaseIdle || len(rec.results) != 0 {
		t.Error("stale completion affected the restarted game")
	}
}

func TestControllerRestartResetsProgress(t *testing.T) {
	rec := &recorder{autoClose: true}
	rules := core.Rules{Colors: 2, MovesLimit: 1, TargetScore: 1000}
	ctrl := newTestController(t, rules, core.NewSequenceRNG(0, 1), rec, "BB", "GB")
	ctrl.Start()

	ctrl.Select(core.C(0, 0))
	if ctrl.Phase() != core.PhaseFinished {
		t.Fatalf("phase = %v, want finished", ctrl.Phase())
	}

	ctrl.Restart()

	want := core.ProgressSnapshot{Score: 0, MovesRemaining: 1, TargetScore: 1000}
	if ctrl.Progress() != want {
		t.Errorf("progress = %+v, want %+v", ctrl.Progress(), want)
	}
	if ctrl.Outcome() != core.OutcomeContinue {
		t.Errorf("outcome = %v, want continue", ctrl.Outcome())
	}
	if len(rec.restarts) != 1 || rec.restarts[0] != want {
		t.Errorf("restart events = %+v", rec.restarts)
	}
	if ctrl.Result().Turns != 0 {
		t.Errorf("turns = %d after restart", ctrl.Result().Turns)
	}
}

func TestControllerEnsurePlayableStart(t *testing.T) {
	// First deal is B G (no move), second is B B
	rules := core.Rules{Rows: 1, Cols: 2, Colors: 2, MovesLimit: 5, TargetScore: 100}

	plain, err := core.NewController(rules, core.NewSequenceRNG(0, 1, 0, 0), nil)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	if got := plain.Board().String(); got != "BG" {
		t.Errorf("board without re-roll = %q, want BG", got)
	}

	rules.EnsurePlayableStart = true
	rerolled, err := core.NewController(rules, core.NewSequenceRNG(0, 1, 0, 0), nil)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	if got := rerolled.Board().String(); got != "BB" {
		t.Errorf("board with re-roll = %q, want BB", got)
	}
}

func TestNewControllerValidation(t *testing.T) {
	tests := []struct {
		name    string
		rules   core.Rules
		wantErr error
	}{
		{"zero rows", core.Rules{Rows: 0, Cols: 3, Colors: 3, MovesLimit: 5, TargetScore: 10}, core.ErrInvalidDimensions},
		{"one color", core.Rules{Rows: 3, Cols: 3, Colors: 1, MovesLimit: 5, TargetScore: 10}, core.ErrInvalidColorCount},
		{"negative moves", core.Rules{Rows: 3, Cols: 3, Colors: 3, MovesLimit: -1, TargetScore: 10}, core.ErrInvalidRules},
		{"zero target", core.Rules{Rows: 3, Cols: 3, Colors: 3, MovesLimit: 5, TargetScore: 0}, core.ErrInvalidRules},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := core.NewController(tt.rules, core.NewRNG(1), nil); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestControllerHint(t *testing.T) {
	rules := core.Rules{Colors: 3, MovesLimit: 5, TargetScore: 100}
	ctrl := newTestController(t, rules, core.NewRNG(1), nil, "BBG", "PBG")

	hint, ok := ctrl.Hint()
	if !ok || hint.Color != 0 || hint.Size() != 3 {
		t.Errorf("Hint() = %+v, %v; want the blue group of 3", hint, ok)
	}

	none := newTestController(t, rules, core.NewRNG(1), nil, "BG", "GB")
	if _, ok := none.Hint(); ok {
		t.Error("Hint() found a group on a board without moves")
	}
}
