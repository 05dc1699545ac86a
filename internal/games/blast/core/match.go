package core

import (
	"fmt"
	"sort"
)

// MinGroupSize is the smallest group a player may destroy.
const MinGroupSize = 2

// MatchGroup is a maximal set of same-colored cells connected through
// orthogonal neighbors. Cells are ordered row-major.
type MatchGroup struct {
	Color Color
	Cells []Coord
}

// Size returns the number of cells in the group.
func (m MatchGroup) Size() int {
	return len(m.Cells)
}

// Destroyable returns true if the group is large enough to be removed.
func (m MatchGroup) Destroyable() bool {
	return len(m.Cells) >= MinGroupSize
}

// Contains returns true if c belongs to the group.
func (m MatchGroup) Contains(c Coord) bool {
	for _, member := range m.Cells {
		if member == c {
			return true
		}
	}
	return false
}

// FindMatchGroup returns the connected group of same-colored cells containing seed.
// An Empty seed yields an empty group.
func (g *Grid) FindMatchGroup(seed Coord) (MatchGroup, error) {
	if !g.InBounds(seed) {
		return MatchGroup{Color: Empty}, fmt.Errorf("%w: %v on %dx%d grid", ErrOutOfBounds, seed, g.rows, g.cols)
	}
	visited := make([]bool, len(g.cells))
	return g.floodFill(seed, visited), nil
}

// floodFill walks the component of seed with an explicit stack and marks
// every member in visited. Cells already visited are never re-entered.
func (g *Grid) floodFill(seed Coord, visited []bool) MatchGroup {
	color := g.get(seed)
	if color == Empty {
		return MatchGroup{Color: Empty}
	}

	group := MatchGroup{Color: color}
	stack := []Coord{seed}
	visited[g.index(seed)] = true

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group.Cells = append(group.Cells, current)

		for _, next := range current.Neighbors() {
			if !g.InBounds(next) {
				continue
			}
			idx := g.index(next)
			if visited[idx] || g.cells[idx] != color {
				continue
			}
			visited[idx] = true
			stack = append(stack, next)
		}
	}

	sort.Slice(group.Cells, func(i, j int) bool {
		return group.Cells[i].less(group.Cells[j])
	})
	return group
}

// Groups returns every destroyable group on the board, largest first.
// Ties are broken by the row-major position of the group's first cell.
func (g *Grid) Groups() []MatchGroup {
	visited := make([]bool, len(g.cells))
	groups := make([]MatchGroup, 0)

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			seed := C(r, c)
			if visited[g.index(seed)] {
				continue
			}
			group := g.floodFill(seed, visited)
			if group.Destroyable() {
				groups = append(groups, group)
			}
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Size() > groups[j].Size()
	})
	return groups
}
