package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

func TestFindMatchGroup(t *testing.T) {
	g := mustGrid(t, 5, nil,
		"BBGY",
		"GBGY",
		"BBBY",
		"RGGY",
	)

	tests := []struct {
		name  string
		seed  core.Coord
		color core.Color
		cells []core.Coord
	}{
		{
			name:  "snake shaped group",
			seed:  core.C(2, 2),
			color: 0,
			cells: []core.Coord{core.C(0, 0), core.C(0, 1), core.C(1, 1), core.C(2, 0), core.C(2, 1), core.C(2, 2)},
		},
		{
			name:  "vertical column",
			seed:  core.C(0, 3),
			color: 4,
			cells: []core.Coord{core.C(0, 3), core.C(1, 3), core.C(2, 3), core.C(3, 3)},
		},
		{
			name:  "single cell",
			seed:  core.C(3, 0),
			color: 3,
			cells: []core.Coord{core.C(3, 0)},
		},
		{
			name:  "diagonal neighbors are not connected",
			seed:  core.C(1, 0),
			color: 1,
			cells: []core.Coord{core.C(1, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, err := g.FindMatchGroup(tt.seed)
			if err != nil {
				t.Fatalf("FindMatchGroup failed: %v", err)
			}
			if group.Color != tt.color {
				t.Errorf("color = %v, want %v", group.Color, tt.color)
			}
			if !reflect.DeepEqual(group.Cells, tt.cells) {
				t.Errorf("cells = %v, want %v", group.Cells, tt.cells)
			}
		})
	}
}

func TestFindMatchGroupSameResultFromAnyMember(t *testing.T) {
	g := mustGrid(t, 5, nil,
		"BBGY",
		"GBGY",
		"BBBY",
	)
	first, _ := g.FindMatchGroup(core.C(0, 0))

	for _, seed := range first.Cells {
		group, _ := g.FindMatchGroup(seed)
		if !reflect.DeepEqual(group.Cells, first.Cells) {
			t.Errorf("seed %v: got %v, want %v", seed, group.Cells, first.Cells)
		}
	}
}

func TestFindMatchGroupEmptyCell(t *testing.T) {
	g := mustGrid(t, 2, nil, "B.", "..")

	group, err := g.FindMatchGroup(core.C(0, 1))
	if err != nil {
		t.Fatalf("FindMatchGroup failed: %v", err)
	}
	if group.Size() != 0 || group.Color != core.Empty {
		t.Errorf("expected empty group, got %+v", group)
	}
	if group.Destroyable() {
		t.Error("empty group must not be destroyable")
	}
}

func TestFindMatchGroupOutOfBounds(t *testing.T) {
	g := mustGrid(t, 2, nil, "BG")

	if _, err := g.FindMatchGroup(core.C(0, 2)); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := g.FindMatchGroup(core.C(-1, 0)); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestFindMatchGroupLargeBoard(t *testing.T) {
	// One color everywhere: the whole board is one group
	lines := make([]string, 80)
	for i := range lines {
		row := make([]byte, 80)
		for j := range row {
			row[j] = 'B'
		}
		lines[i] = string(row)
	}
	g := mustGrid(t, 2, nil, lines...)

	group, err := g.FindMatchGroup(core.C(40, 40))
	if err != nil {
		t.Fatalf("FindMatchGroup failed: %v", err)
	}
	if group.Size() != 80*80 {
		t.Errorf("expected %d cells, got %d", 80*80, group.Size())
	}
}

func TestFindMatchGroupIsClosed(t *testing.T) {
	// Every member's same-colored neighbors are members too
	for seed := int64(0); seed < 50; seed++ {
		g, _ := core.NewGrid(8, 8, 3, core.NewRNG(seed))
		group, _ := g.FindMatchGroup(core.C(4, 4))

		for _, c := range group.Cells {
			for _, n := range c.Neighbors() {
				color, err := g.At(n)
				if err != nil || color != group.Color {
					continue
				}
				if !group.Contains(n) {
					t.Fatalf("seed %d: %v is connected to %v but missing from group", seed, n, c)
				}
			}
		}
	}
}

func TestGroups(t *testing.T) {
	g := mustGrid(t, 5, nil,
		"BBGR",
		"YBGR",
		"YPPR",
	)

	groups := g.Groups()
	sizes := make([]int, len(groups))
	for i, group := range groups {
		sizes[i] = group.Size()
	}

	want := []int{3, 3, 2, 2, 2}
	if !reflect.DeepEqual(sizes, want) {
		t.Fatalf("group sizes = %v, want %v", sizes, want)
	}
	// Equal sizes keep row-major order of discovery
	if groups[0].Color != 0 || groups[1].Color != 3 {
		t.Errorf("expected blue then red first, got %v then %v", groups[0].Color, groups[1].Color)
	}
}

func TestMatchGroupDestroyable(t *testing.T) {
	tests := []struct {
		size int
		want bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{9, true},
	}
	for _, tt := range tests {
		group := core.MatchGroup{Color: 0, Cells: make([]core.Coord, tt.size)}
		if got := group.Destroyable(); got != tt.want {
			t.Errorf("size %d: Destroyable() = %v, want %v", tt.size, got, tt.want)
		}
	}
}
