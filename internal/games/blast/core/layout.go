package core

import "math"

// Layout describes how tiles are placed on a 2-D surface.
// Positions are tile centers relative to the board center, with y growing upward.
type Layout struct {
	TileW float64 // Tile width
	TileH float64 // Tile height
	GapH  float64 // Horizontal gap between neighboring columns
	GapV  float64 // Vertical gap between neighboring rows
}

// Size returns the total board width and height for the given dimensions.
func (l Layout) Size(rows, cols int) (w, h float64) {
	w = float64(cols)*l.TileW + float64(cols-1)*l.GapH
	h = float64(rows)*l.TileH + float64(rows-1)*l.GapV
	return w, h
}

// Position returns the center of the tile at c on a rows×cols board.
func (l Layout) Position(rows, cols int, c Coord) (x, y float64) {
	w, h := l.Size(rows, cols)

	startX := -w/2 + l.TileW/2
	startY := h/2 - l.TileH/2

	x = startX + float64(c.Col)*(l.TileW+l.GapH)
	y = startY - float64(c.Row)*(l.TileH+l.GapV)
	return x, y
}

// CellAt maps a point back to the tile under it.
// Points that fall into a gap or outside the board return false.
func (l Layout) CellAt(rows, cols int, x, y float64) (Coord, bool) {
	w, h := l.Size(rows, cols)

	// Offsets from the board's top-left corner
	dx := x + w/2
	dy := h/2 - y
	if dx < 0 || dy < 0 || dx >= w || dy >= h {
		return Coord{}, false
	}

	strideX := l.TileW + l.GapH
	strideY := l.TileH + l.GapV
	col := int(math.Floor(dx / strideX))
	row := int(math.Floor(dy / strideY))

	if dx-float64(col)*strideX >= l.TileW || dy-float64(row)*strideY >= l.TileH {
		return Coord{}, false
	}
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return Coord{}, false
	}
	return C(row, col), true
}
