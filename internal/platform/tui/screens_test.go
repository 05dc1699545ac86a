package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
	registry.Register("fake_two", func() registry.Game { return &fakeGame{} })
}

func saveFakeResult(t *testing.T, store *storage.Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveResult(storage.Result{GameID: gameID, Score: score, Outcome: "won", MovesUsed: 12}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestMenuModel(t *testing.T) {
	_, _, store := newTestModel(t)
	saveFakeResult(t, store, "fake", 480)

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	if len(m.items) != 2 || m.items[0].GameID != "fake" {
		t.Fatalf("items = %+v", m.items)
	}
	if m.items[0].Best != 480 || m.items[1].Best != 0 {
		t.Errorf("best scores = %d, %d", m.items[0].Best, m.items[1].Best)
	}
	if !strings.Contains(m.View(), "(best 480)") {
		t.Error("menu should show the best score")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (clamped)", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != "fake_two" || cmd == nil {
		t.Errorf("Selected() = %+v", m.Selected())
	}
}

func TestMenuModelScoreboardAndResize(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(MenuModel)
	if cfg := m.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %+v", cfg)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestScoreboardModel(t *testing.T) {
	_, _, store := newTestModel(t)
	saveFakeResult(t, store, "fake", 120)
	saveFakeResult(t, store, "fake", 340)

	m := NewScoreboardModel(store, 100, 30)
	if len(m.entries) != 2 || m.entries[0].Score != 340 {
		t.Fatalf("scores = %+v", m.entries)
	}
	view := m.View()
	if !strings.Contains(view, "Played") || !strings.Contains(view, "340") {
		t.Errorf("view missing stats or scores:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	if m.active != 1 || len(m.entries) != 0 {
		t.Errorf("after switching: cursor %d, %d scores", m.active, len(m.entries))
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty level should say so")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back to the menu")
	}
}

func TestSessionModelFlow(t *testing.T) {
	_, _, store := newTestModel(t)

	s := NewSessionModel(store, core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 60}, "alice")
	if s.sessionID == "" {
		t.Fatal("session id not set")
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.screen != screenGame || s.gameModel.game.ID() != "fake" {
		t.Fatalf("screen = %v, want the game", s.screen)
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("esc should return to the menu, screen = %v", s.screen)
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenScores {
		t.Errorf("tab should open scores, screen = %v", s.screen)
	}

	next, cmd := s.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}
