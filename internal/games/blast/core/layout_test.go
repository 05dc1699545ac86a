package core_test

import (
	"testing"

	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

func TestLayoutSize(t *testing.T) {
	l := core.Layout{TileW: 4, TileH: 2, GapH: 1, GapV: 3}

	w, h := l.Size(2, 3)
	if w != 3*4+2*1 {
		t.Errorf("width = %v, want %v", w, 3*4+2*1)
	}
	if h != 2*2+1*3 {
		t.Errorf("height = %v, want %v", h, 2*2+1*3)
	}
}

func TestLayoutPositionCentered(t *testing.T) {
	l := core.Layout{TileW: 10, TileH: 10, GapH: 2, GapV: 2}

	// 3x3 board: the middle tile sits on the origin
	x, y := l.Position(3, 3, core.C(1, 1))
	if x != 0 || y != 0 {
		t.Errorf("center tile at (%v,%v), want (0,0)", x, y)
	}

	// Row 0 is the top: y grows upward
	_, top := l.Position(3, 3, core.C(0, 1))
	_, bottom := l.Position(3, 3, core.C(2, 1))
	if top != 12 || bottom != -12 {
		t.Errorf("top=%v bottom=%v, want 12 and -12", top, bottom)
	}

	left, _ := l.Position(3, 3, core.C(1, 0))
	if left != -12 {
		t.Errorf("left=%v, want -12", left)
	}
}

func TestLayoutCellAtInvertsPosition(t *testing.T) {
	l := core.Layout{TileW: 3, TileH: 1, GapH: 1, GapV: 0.5}
	rows, cols := 9, 7

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := l.Position(rows, cols, core.C(r, c))
			got, ok := l.CellAt(rows, cols, x, y)
			if !ok || got != core.C(r, c) {
				t.Errorf("CellAt(Position(%d,%d)) = %v, %v", r, c, got, ok)
			}
		}
	}
}

func TestLayoutCellAtMisses(t *testing.T) {
	l := core.Layout{TileW: 10, TileH: 10, GapH: 2, GapV: 2}

	tests := []struct {
		name string
		x, y float64
	}{
		{"outside left", -100, 0},
		{"outside top", 0, 100},
		{"horizontal gap", 5.5, 0},
		{"vertical gap", 0, -5.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c, ok := l.CellAt(3, 3, tt.x, tt.y); ok {
				t.Errorf("expected miss, got %v", c)
			}
		})
	}
}
