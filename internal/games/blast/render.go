package blast

import (
	"fmt"
	"math"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

// hudHeight is the number of lines above the board border.
const hudHeight = 2

const (
	glyphTile   = '█'
	glyphCursor = '▓'
	glyphHint   = '▒'
	glyphBurst  = '*'
)

// tileColors maps board colors to screen colors; extra colors wrap around.
var tileColors = []platformcore.Color{
	platformcore.ColorBrightBlue,
	platformcore.ColorBrightGreen,
	platformcore.ColorBrightMagenta,
	platformcore.ColorBrightRed,
	platformcore.ColorBrightYellow,
	platformcore.ColorCyan,
	platformcore.ColorOrange,
	platformcore.ColorWhite,
}

func tileStyle(c core.Color) platformcore.Style {
	if c.IsEmpty() {
		return platformcore.Style{}
	}
	return platformcore.Fg(tileColors[int(c)%len(tileColors)])
}

// boardSize returns the board size in screen cells.
func (g *Game) boardSize() (w, h int) {
	rules := g.ctrl.Rules()
	fw, fh := g.layout.Size(rules.Rows, rules.Cols)
	return int(math.Ceil(fw)), int(math.Ceil(fh))
}

// boardRect returns where the board is drawn, shake included.
func (g *Game) boardRect() platformcore.Rect {
	bw, bh := g.boardSize()
	x := (g.screenW-bw)/2 + shakeOffset(g.shake)
	y := hudHeight + 1 + platformcore.Max(0, (g.screenH-hudHeight-bh-2)/2)
	return platformcore.NewRect(x, y, bw, bh)
}

// tileOrigin returns the top-left screen cell of a tile at a possibly
// fractional row. Layout y grows upward; screen y grows downward.
func (g *Game) tileOrigin(board platformcore.Rect, row float64, col int) (int, int) {
	rules := g.ctrl.Rules()
	w, h := g.layout.Size(rules.Rows, rules.Cols)

	cx, cy := g.layout.Position(rules.Rows, rules.Cols, core.C(0, col))
	cy -= row * (g.layout.TileH + g.layout.GapV)

	x := float64(board.X) + w/2 + cx - g.layout.TileW/2
	y := float64(board.Y) + h/2 - cy - g.layout.TileH/2
	return int(math.Round(x)), int(math.Round(y))
}

// cellAtScreen maps a screen cell to the tile under it.
func (g *Game) cellAtScreen(p platformcore.Point) (core.Coord, bool) {
	rules := g.ctrl.Rules()
	board := g.boardRect()
	w, h := g.layout.Size(rules.Rows, rules.Cols)

	// Sample the middle of the screen cell
	x := float64(p.X) + 0.5 - float64(board.X) - w/2
	y := float64(board.Y) + h/2 - (float64(p.Y) + 0.5)
	return g.layout.CellAt(rules.Rows, rules.Cols, x, y)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.boardRect()
	g.renderHUD(dst)
	g.renderBoard(dst, board)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.Style{})
	bw, bh := g.boardSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", bw+2, hudHeight+bh+2), platformcore.Style{})
}

// renderHUD draws the title, moves and score.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	bold := platformcore.Style{Color: platformcore.ColorBrightWhite, Attr: platformcore.AttrBold}
	dst.DrawTextCentered(0, "BLAST · "+g.level.Name, bold)

	bw, _ := g.boardSize()
	left := (g.screenW - bw) / 2

	moves := fmt.Sprintf("Moves: %d", g.progress.MovesRemaining)
	movesStyle := platformcore.Style{}
	if g.progress.MovesRemaining <= 3 {
		movesStyle = platformcore.Fg(platformcore.ColorBrightRed)
	}
	dst.DrawTextStyled(left, 1, moves, movesStyle)

	score := fmt.Sprintf("Score: %d/%d", g.progress.Score, g.progress.TargetScore)
	if g.anim != nil && g.anim.points > 0 {
		gain := fmt.Sprintf("+%d ", g.anim.points)
		dst.DrawTextStyled(left+bw-utf8.RuneCountInString(score)-len(gain), 1, gain,
			platformcore.Style{Color: platformcore.ColorBrightYellow, Attr: platformcore.AttrBold})
	}
	dst.DrawText(left+bw-utf8.RuneCountInString(score), 1, score)
}

// renderBoard draws the border and the tiles, animated or settled.
func (g *Game) renderBoard(dst *platformcore.Screen, board platformcore.Rect) {
	inactive := g.ctrl.Phase() == core.PhaseStandby || g.ctrl.Phase() == core.PhaseFinished

	border := platformcore.Fg(platformcore.ColorGray)
	dst.DrawBox(platformcore.NewRect(board.X-1, board.Y-1, board.W+2, board.H+2), border)

	switch {
	case g.anim != nil && g.anim.removing():
		g.renderGrid(dst, board, g.anim.before, func(c core.Coord) bool { return g.anim.removed[c] }, false)
		for c := range g.anim.removed {
			color, _ := g.anim.before.At(c)
			g.drawTile(dst, board, float64(c.Row), c.Col, glyphBurst, tileStyle(color))
		}

	case g.anim != nil:
		g.renderGrid(dst, board, g.anim.after, func(c core.Coord) bool { return g.anim.landing[c] }, false)
		t := g.anim.fallTick()
		for _, f := range g.anim.falling {
			g.drawTile(dst, board, f.rowAt(t), f.Col, glyphTile, tileStyle(f.Color))
		}

	default:
		g.renderGrid(dst, board, g.view, nil, inactive)
		g.renderHighlights(dst, board)
	}
}

// renderGrid draws every non-empty cell of grid except those skip reports.
func (g *Game) renderGrid(dst *platformcore.Screen, board platformcore.Rect, grid *core.Grid, skip func(core.Coord) bool, faint bool) {
	for r, row := range grid.Cells() {
		for c, color := range row {
			at := core.C(r, c)
			if color.IsEmpty() || (skip != nil && skip(at)) {
				continue
			}
			st := tileStyle(color)
			if faint {
				st.Attr |= platformcore.AttrFaint
			}
			g.drawTile(dst, board, float64(r), c, glyphTile, st)
			g.drawLabel(dst, board, at, color, st)
		}
	}
}

// renderHighlights draws the blinking hint and the cursor on a settled board.
func (g *Game) renderHighlights(dst *platformcore.Screen, board platformcore.Rect) {
	phase := g.ctrl.Phase()
	if phase != core.PhaseIdle && phase != core.PhaseProcessing {
		return
	}

	if g.hintTicks > 0 && (g.hintTicks/8)%2 == 0 {
		for _, c := range g.hint.Cells {
			g.drawTile(dst, board, float64(c.Row), c.Col, glyphHint, tileStyle(g.hint.Color))
		}
	}

	color, err := g.view.At(g.cursor)
	if err != nil {
		return
	}
	st := tileStyle(color)
	st.Attr |= platformcore.AttrBold
	g.drawTile(dst, board, float64(g.cursor.Row), g.cursor.Col, glyphCursor, st)
}

// drawTile fills one tile, clipped to the board.
func (g *Game) drawTile(dst *platformcore.Screen, board platformcore.Rect, row float64, col int, glyph rune, st platformcore.Style) {
	x, y := g.tileOrigin(board, row, col)
	tw, th := int(g.layout.TileW), int(g.layout.TileH)

	for dy := 0; dy < th; dy++ {
		py := y + dy
		if py < board.Y || py >= board.Bottom() {
			continue
		}
		dst.DrawHLine(x, py, tw, glyph, st)
	}
}

// drawLabel prints the color letter in the middle of wide tiles so colors
// stay distinguishable without color support.
func (g *Game) drawLabel(dst *platformcore.Screen, board platformcore.Rect, at core.Coord, color core.Color, st platformcore.Style) {
	tw, th := int(g.layout.TileW), int(g.layout.TileH)
	if tw < 3 {
		return
	}
	x, y := g.tileOrigin(board, float64(at.Row), at.Col)
	st.Attr |= platformcore.AttrReverse
	dst.SetStyled(x+tw/2, y+(th-1)/2, color.Char(), st)
}

// renderOverlays draws the start screen, pause banner and result dialog.
func (g *Game) renderOverlays(dst *platformcore.Screen, board platformcore.Rect) {
	switch {
	case g.paused:
		g.drawDialog(dst, board, platformcore.Fg(platformcore.ColorYellow), "PAUSED", "", "P to resume")

	case g.ctrl.Phase() == core.PhaseStandby:
		rules := g.ctrl.Rules()
		g.drawDialog(dst, board, platformcore.Fg(platformcore.ColorBrightCyan),
			"BLAST",
			"",
			"Pop groups of 2+ touching tiles",
			fmt.Sprintf("Reach %d points in %d moves", rules.TargetScore, rules.MovesLimit),
			"",
			"Enter, Space or click to start",
		)

	case g.ctrl.Phase() == core.PhaseFinished && g.anim == nil:
		result := g.ctrl.Result()
		st := platformcore.Fg(platformcore.ColorBrightRed)
		if result.Outcome == core.OutcomeWon {
			st = platformcore.Fg(platformcore.ColorBrightGreen)
		}
		g.drawDialog(dst, board, st,
			result.Outcome.Message(),
			"",
			fmt.Sprintf("Final score: %d", result.FinalScore),
			fmt.Sprintf("Moves used: %d", result.MovesUsed),
			"",
			"R to play again, Q to quit",
		)
	}
}

// drawDialog draws a bordered box with centered lines over the board.
func (g *Game) drawDialog(dst *platformcore.Screen, board platformcore.Rect, st platformcore.Style, lines ...string) {
	width := 0
	for _, line := range lines {
		width = platformcore.Max(width, utf8.RuneCountInString(line))
	}

	box := board.Centered(width+4, len(lines)+2)
	dst.DrawRect(box, ' ', platformcore.Style{})
	dst.DrawBox(box, st)

	for i, line := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		lineStyle := platformcore.Style{}
		if i == 0 {
			lineStyle = platformcore.Style{Color: st.Color, Attr: platformcore.AttrBold}
		}
		dst.DrawTextStyled(x, box.Y+1+i, line, lineStyle)
	}
}
