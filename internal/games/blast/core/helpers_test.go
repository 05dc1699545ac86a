package core_test

import (
	"testing"

	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

// mustGrid parses an ASCII board or fails the test.
func mustGrid(t *testing.T, colors int, rng core.RNG, lines ...string) *core.Grid {
	t.Helper()
	g, err := core.ParseGrid(lines, colors, rng)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	return g
}

// recorder is a Presenter that remembers every call and holds completions
// until the test releases them.
type recorder struct {
	turns     []core.TurnEvents
	pending   []core.Completion
	rejected  []core.Coord
	ignored   []core.Coord
	results   []core.Result
	restarts  []core.ProgressSnapshot
	autoClose bool
}

func (r *recorder) TurnStarted(events core.TurnEvents, done core.Completion) {
	r.turns = append(r.turns, events)
	if r.autoClose {
		done.Done()
		return
	}
	r.pending = append(r.pending, done)
}

func (r *recorder) SelectionRejected(at core.Coord) { r.rejected = append(r.rejected, at) }
func (r *recorder) SelectionIgnored(at core.Coord)  { r.ignored = append(r.ignored, at) }
func (r *recorder) GameFinished(result core.Result) { r.results = append(r.results, result) }
func (r *recorder) Restarted(p core.ProgressSnapshot) {
	r.restarts = append(r.restarts, p)
}

// finish releases the oldest held completion.
func (r *recorder) finish(t *testing.T) {
	t.Helper()
	if len(r.pending) == 0 {
		t.Fatal("no pending completion")
	}
	done := r.pending[0]
	r.pending = r.pending[1:]
	done.Done()
}
