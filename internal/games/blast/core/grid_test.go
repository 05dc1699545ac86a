package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

func TestNewGridValidation(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		colors     int
		wantErr    error
	}{
		{"zero rows", 0, 5, 3, core.ErrInvalidDimensions},
		{"negative cols", 5, -1, 3, core.ErrInvalidDimensions},
		{"one color", 3, 3, 1, core.ErrInvalidColorCount},
		{"zero colors", 3, 3, 0, core.ErrInvalidColorCount},
		{"valid", 9, 9, 5, nil},
		{"single row", 1, 3, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.NewGrid(tt.rows, tt.cols, tt.colors, core.NewRNG(1))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewGridFillsPalette(t *testing.T) {
	g, err := core.NewGrid(9, 9, 5, core.NewRNG(42))
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	for r, row := range g.Cells() {
		for c, color := range row {
			if color < 0 || int(color) >= 5 {
				t.Errorf("cell (%d,%d) has color %d outside palette", r, c, color)
			}
		}
	}
	if g.EmptyCount() != 0 {
		t.Errorf("fresh grid has %d empty cells", g.EmptyCount())
	}
}

func TestNewGridDeterminism(t *testing.T) {
	g1, _ := core.NewGrid(9, 9, 5, core.NewRNG(12345))
	g2, _ := core.NewGrid(9, 9, 5, core.NewRNG(12345))

	if !g1.Equal(g2) {
		t.Errorf("same seed produced different boards:\n%s\nvs\n%s", g1, g2)
	}
}

func TestAtOutOfBounds(t *testing.T) {
	g := mustGrid(t, 3, nil, "BG", "GB")

	for _, c := range []core.Coord{core.C(-1, 0), core.C(0, -1), core.C(2, 0), core.C(0, 2)} {
		if _, err := g.At(c); !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("At(%v): expected ErrOutOfBounds, got %v", c, err)
		}
	}

	color, err := g.At(core.C(1, 0))
	if err != nil || color != 1 {
		t.Errorf("At(1,0) = %v, %v; want green", color, err)
	}
}

func TestNewGridFromRowsRejectsBadInput(t *testing.T) {
	if _, err := core.NewGridFromRows([][]core.Color{{0, 1}, {0}}, 2, nil); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Errorf("ragged rows: expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := core.NewGridFromRows([][]core.Color{{0, 3}}, 2, nil); !errors.Is(err, core.ErrInvalidColorCount) {
		t.Errorf("color outside palette: expected ErrInvalidColorCount, got %v", err)
	}
	if _, err := core.NewGridFromRows(nil, 2, nil); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Errorf("no rows: expected ErrInvalidDimensions, got %v", err)
	}
}

func TestParseGridString(t *testing.T) {
	lines := []string{"BGP", "R.Y", "..B"}
	g := mustGrid(t, 5, nil, lines...)

	want := "BGP\nR.Y\n..B"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if g.EmptyCount() != 3 {
		t.Errorf("expected 3 empty cells, got %d", g.EmptyCount())
	}
}

func TestCellsIsCopy(t *testing.T) {
	g := mustGrid(t, 2, nil, "BG")
	cells := g.Cells()
	cells[0][0] = 1

	if color, _ := g.At(core.C(0, 0)); color != 0 {
		t.Error("mutating Cells() changed the grid")
	}
}

func TestRemoveGroup(t *testing.T) {
	g := mustGrid(t, 3, nil,
		"BBG",
		"GBG",
	)
	group, err := g.FindMatchGroup(core.C(0, 0))
	if err != nil {
		t.Fatalf("FindMatchGroup failed: %v", err)
	}
	g.RemoveGroup(group)

	if got, want := g.String(), "..G\nG.G"; got != want {
		t.Errorf("after removal got\n%s\nwant\n%s", got, want)
	}
}

func TestHasAnyPossibleMove(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"checkerboard", []string{"BG", "GB"}, false},
		{"horizontal pair", []string{"BB"}, true},
		{"vertical pair", []string{"B", "B"}, true},
		{"single pair in corner", []string{"BGB", "GBG", "BGG"}, true},
		{"striped rows of distinct colors", []string{"BGP", "GPB", "PBG"}, false},
		{"empty cells never match", []string{"..", ".."}, false},
		{"pair split by empty", []string{"B.B"}, false},
		{"single cell", []string{"B"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, 3, nil, tt.lines...)
			if got := g.HasAnyPossibleMove(); got != tt.want {
				t.Errorf("HasAnyPossibleMove() = %v, want %v\n%s", got, tt.want, g)
			}
		})
	}
}

func TestHasAnyPossibleMoveMatchesGroups(t *testing.T) {
	// Any destroyable group contains an adjacent pair and vice versa
	for seed := int64(0); seed < 200; seed++ {
		g, _ := core.NewGrid(3, 4, 6, core.NewRNG(seed))
		hasGroups := len(g.Groups()) > 0
		if g.HasAnyPossibleMove() != hasGroups {
			t.Fatalf("seed %d: HasAnyPossibleMove=%v but %d groups\n%s",
				seed, g.HasAnyPossibleMove(), len(g.Groups()), g)
		}
	}
}
