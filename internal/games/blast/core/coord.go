package core

import "fmt"

// Coord addresses a grid cell. Row 0 is the top row, Col 0 the left column.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Neighbors returns the four orthogonal neighbors: down, up, right, left.
// Some of them may lie outside the grid.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Add(1, 0),
		c.Add(-1, 0),
		c.Add(0, 1),
		c.Add(0, -1),
	}
}

// less orders coordinates row-major.
func (c Coord) less(other Coord) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}
