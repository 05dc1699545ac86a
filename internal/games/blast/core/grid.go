package core

import (
	"fmt"
	"strings"
)

// Grid is the game board: a rows×cols array of colored cells.
// Cells are stored in row-major order: index = row*cols + col.
// Grid is the only owner of cell storage; everything it hands out is a copy.
type Grid struct {
	rows   int
	cols   int
	colors int
	cells  []Color
	rng    RNG
}

// NewGrid creates a grid and fills every cell with a random color from rng.
func NewGrid(rows, cols, colors int, rng RNG) (*Grid, error) {
	if err := validateShape(rows, cols, colors); err != nil {
		return nil, err
	}
	g := &Grid{
		rows:   rows,
		cols:   cols,
		colors: colors,
		cells:  make([]Color, rows*cols),
		rng:    rng,
	}
	g.Fill()
	return g, nil
}

// NewGridFromRows builds a grid from explicit cell values.
// rng is used for later refills and may be nil only if gravity never runs.
func NewGridFromRows(rows [][]Color, colors int, rng RNG) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	cols := len(rows[0])
	if err := validateShape(len(rows), cols, colors); err != nil {
		return nil, err
	}

	g := &Grid{
		rows:   len(rows),
		cols:   cols,
		colors: colors,
		cells:  make([]Color, len(rows)*cols),
		rng:    rng,
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, r, len(row), cols)
		}
		for c, color := range row {
			if color != Empty && (color < 0 || int(color) >= colors) {
				return nil, fmt.Errorf("%w: cell %v has color %d", ErrInvalidColorCount, C(r, c), color)
			}
			g.cells[r*cols+c] = color
		}
	}
	return g, nil
}

func validateShape(rows, cols, colors int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if colors <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidColorCount, colors)
	}
	if colors > 127 {
		return fmt.Errorf("%w: %d exceeds palette", ErrInvalidColorCount, colors)
	}
	return nil
}

// Fill overwrites every cell with a fresh random color.
func (g *Grid) Fill() {
	for i := range g.cells {
		g.cells[i] = g.randomColor()
	}
}

func (g *Grid) randomColor() Color {
	return Color(g.rng.Intn(g.colors))
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Colors returns the palette size.
func (g *Grid) Colors() int { return g.colors }

func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the color at c.
func (g *Grid) At(c Coord) (Color, error) {
	if !g.InBounds(c) {
		return Empty, fmt.Errorf("%w: %v on %dx%d grid", ErrOutOfBounds, c, g.rows, g.cols)
	}
	return g.cells[g.index(c)], nil
}

// get is the unchecked accessor used by the algorithms below.
func (g *Grid) get(c Coord) Color {
	return g.cells[g.index(c)]
}

// Cells returns a copy of the board as [row][col].
func (g *Grid) Cells() [][]Color {
	out := make([][]Color, g.rows)
	for r := range out {
		out[r] = make([]Color, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Clone returns a deep copy of the grid. The clone shares the RNG.
func (g *Grid) Clone() *Grid {
	cells := make([]Color, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		rows:   g.rows,
		cols:   g.cols,
		colors: g.colors,
		cells:  cells,
		rng:    g.rng,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of Empty cells.
func (g *Grid) EmptyCount() int {
	count := 0
	for _, cell := range g.cells {
		if cell == Empty {
			count++
		}
	}
	return count
}

// IsCompact reports whether no Empty cell has a tile above it in its column.
func (g *Grid) IsCompact() bool {
	for col := 0; col < g.cols; col++ {
		seenTile := false
		for row := 0; row < g.rows; row++ {
			if g.get(C(row, col)) == Empty {
				if seenTile {
					return false
				}
				continue
			}
			seenTile = true
		}
	}
	return true
}

// RemoveGroup clears every cell of the group. An empty group is a no-op.
func (g *Grid) RemoveGroup(m MatchGroup) {
	for _, c := range m.Cells {
		if g.InBounds(c) {
			g.cells[g.index(c)] = Empty
		}
	}
}

// HasAnyPossibleMove returns true if any two orthogonally adjacent cells share a color.
// Any such pair is itself a group of size two, so this answers
// "does a destroyable group exist" without flood-filling the board.
func (g *Grid) HasAnyPossibleMove() bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			color := g.get(C(r, c))
			if color == Empty {
				continue
			}
			// Check right neighbor
			if c+1 < g.cols && g.get(C(r, c+1)) == color {
				return true
			}
			// Check bottom neighbor
			if r+1 < g.rows && g.get(C(r+1, c)) == color {
				return true
			}
		}
	}
	return false
}

// String renders the grid one row per line using Color.Char.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			sb.WriteRune(g.get(C(r, c)).Char())
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of Color.Char runes, top row first.
func ParseGrid(lines []string, colors int, rng RNG) (*Grid, error) {
	rows := make([][]Color, len(lines))
	for r, line := range lines {
		for _, ch := range strings.TrimSpace(line) {
			color, ok := ParseColor(ch)
			if !ok {
				return nil, fmt.Errorf("%w: row %d has unknown cell %q", ErrInvalidColorCount, r, ch)
			}
			rows[r] = append(rows[r], color)
		}
	}
	return NewGridFromRows(rows, colors, rng)
}
