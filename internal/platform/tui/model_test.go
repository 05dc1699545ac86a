package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/storage"
)

// fakeGame records input and reports a scripted state.
type fakeGame struct {
	frames  []core.InputFrame
	state   core.GameState
	resets  int
	resized [2]int
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return g.state }
func (g *fakeGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func newTestModel(t *testing.T) (GameModel, *fakeGame, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	game := &fakeGame{}
	m := NewGameModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	return m, game, store
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelForwardsInput(t *testing.T) {
	m, game, _ := newTestModel(t)

	m = update(t, m, runeKey('r'))
	m = update(t, m, tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	if len(game.frames) != 1 {
		t.Fatalf("Step called %d times, want 1", len(game.frames))
	}
	frame := game.frames[0]
	if !frame.Has(core.ActionRestart) {
		t.Error("restart not forwarded")
	}
	if p, ok := frame.Clicked(); !ok || p != (core.Point{X: 4, Y: 2}) {
		t.Errorf("click = %v, %v", p, ok)
	}

	// Input is cleared after each tick
	update(t, m, TickMsg{})
	if !game.frames[1].Empty() {
		t.Error("frame should be empty on the next tick")
	}
}

func TestGameModelSavesResultOnce(t *testing.T) {
	m, game, store := newTestModel(t)

	game.state = core.GameState{Score: 120, GameOver: true, Outcome: "won", MovesUsed: 9}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	scores, err := store.AllScores("fake")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("stored %d results, want 1", len(scores))
	}
	if scores[0].RunID != m.LastRunID() || !scores[0].Won() || scores[0].MovesUsed != 9 {
		t.Errorf("stored %+v, last run %q", scores[0], m.LastRunID())
	}

	// A restarted game stores its own result
	game.state = core.GameState{Score: 10}
	m = update(t, m, TickMsg{})
	game.state = core.GameState{Score: 30, GameOver: true, Outcome: "lost_no_moves", MovesUsed: 30}
	update(t, m, TickMsg{})

	scores, _ = store.AllScores("fake")
	if len(scores) != 2 {
		t.Errorf("stored %d results, want 2", len(scores))
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	back := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() || back.IsQuitting() {
		t.Error("esc should return to the menu")
	}

	m.standalone = true
	quit := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !quit.IsQuitting() {
		t.Error("esc should quit a standalone game")
	}

	quit = update(t, m, runeKey('q'))
	if !quit.IsQuitting() || quit.View() != "" {
		t.Error("q should quit")
	}
}

func TestGameModelResize(t *testing.T) {
	m, game, _ := newTestModel(t)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resized != [2]int{100, 30 - footerHeight} {
		t.Errorf("resized = %v", game.resized)
	}
	if game.resets != 0 {
		t.Error("resizable games should not be reset")
	}
}

func TestGameModelView(t *testing.T) {
	m, _, _ := newTestModel(t)

	view := m.View()
	if !strings.HasPrefix(view, "fake") {
		t.Errorf("view should start with the game screen: %q", view)
	}
	if !strings.Contains(view, "pop") {
		t.Error("help footer missing")
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hi")
	s.SetStyled(4, 1, 'x', core.Style{Color: core.ColorRed, Attr: core.AttrBold})

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "hi") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "x") {
		t.Errorf("line 1 = %q", lines[1])
	}
}
