package registry

import (
	"testing"

	"github.com/vovakirdan/tileblast/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                          { return g.id }
func (g stubGame) Title() string                       { return "Stub " + g.id }
func (g stubGame) Description() string                 { return "a stub" }
func (g stubGame) Reset(core.RuntimeConfig)            {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                 {}
func (g stubGame) State() core.GameState               { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a not registered")
	}

	info, ok := Info("stub_a")
	if !ok || info.Title != "Stub stub_a" || info.Description != "a stub" {
		t.Errorf("Info() = %+v, %v", info, ok)
	}

	g, err := Create("stub_b")
	if err != nil || g.ID() != "stub_b" {
		t.Errorf("Create() = %v, %v", g, err)
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown id should fail")
	}

	// List is sorted by id
	var ids []string
	for _, gi := range List() {
		ids = append(ids, gi.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })
}
