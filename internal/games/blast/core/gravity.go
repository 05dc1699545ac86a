package core

// FallMove records one tile sliding down its column during compaction.
type FallMove struct {
	FromRow int
	ToRow   int
	Col     int
	Color   Color
}

// Distance returns how many rows the tile falls.
func (m FallMove) Distance() int {
	return m.ToRow - m.FromRow
}

// SpawnedCell records a fresh tile placed into a vacated top position.
type SpawnedCell struct {
	Row   int
	Col   int
	Color Color
}

// Coord returns the cell the tile was spawned into.
func (s SpawnedCell) Coord() Coord {
	return C(s.Row, s.Col)
}

// GravityResult lists everything that changed during one gravity pass.
type GravityResult struct {
	Moves  []FallMove
	Spawns []SpawnedCell
}

// ApplyGravity compacts every column downward and refills the vacated top cells.
//
// Columns are processed left to right. Within a column the scan runs from the
// bottom row up; each tile drops to the lowest row not yet claimed, so tiles keep
// their relative order and never pass each other. Vacated rows are then refilled
// from the lowest one upward, drawing one color per cell from the RNG.
func (g *Grid) ApplyGravity() GravityResult {
	result := GravityResult{
		Moves:  make([]FallMove, 0),
		Spawns: make([]SpawnedCell, 0),
	}

	for col := 0; col < g.cols; col++ {
		target := g.rows - 1

		for row := g.rows - 1; row >= 0; row-- {
			color := g.get(C(row, col))
			if color == Empty {
				continue
			}
			if row != target {
				g.cells[g.index(C(target, col))] = color
				g.cells[g.index(C(row, col))] = Empty
				result.Moves = append(result.Moves, FallMove{
					FromRow: row,
					ToRow:   target,
					Col:     col,
					Color:   color,
				})
			}
			target--
		}

		for row := target; row >= 0; row-- {
			color := g.randomColor()
			g.cells[g.index(C(row, col))] = color
			result.Spawns = append(result.Spawns, SpawnedCell{Row: row, Col: col, Color: color})
		}
	}

	return result
}
