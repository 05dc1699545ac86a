package blast

import (
	platformcore "github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

// fallingTile is a tile sliding from one row to another in its column.
// Spawned tiles start above the board, at negative rows.
type fallingTile struct {
	Col      int
	FromRow  float64
	ToRow    float64
	Color    core.Color
	Duration int // Ticks from start of the fall phase to landing
}

// rowAt returns the tile's row after t ticks of the fall phase.
func (f fallingTile) rowAt(t int) float64 {
	if f.Duration <= 0 || t >= f.Duration {
		return f.ToRow
	}
	if t <= 0 {
		return f.FromRow
	}
	p := platformcore.EaseOutQuad(float64(t) / float64(f.Duration))
	return platformcore.Lerp(f.FromRow, f.ToRow, p)
}

// turnAnimation presents one turn: a burst on the removed group followed by
// the fall of every moved and spawned tile.
type turnAnimation struct {
	done    core.Completion
	before  *core.Grid // Board as the player last saw it
	after   *core.Grid // Board once every tile has landed
	removed map[core.Coord]bool
	landing map[core.Coord]bool // Destinations of falling tiles
	falling []fallingTile
	points  int

	ticks       int
	removeTicks int
	fallTicks   int
}

// newTurnAnimation builds the animation for events played on before.
func newTurnAnimation(events core.TurnEvents, done core.Completion, before, after *core.Grid, anim animationTiming) *turnAnimation {
	a := &turnAnimation{
		done:        done,
		before:      before,
		after:       after,
		removed:     make(map[core.Coord]bool, len(events.Removed())),
		landing:     make(map[core.Coord]bool, len(events.Moves)+len(events.Spawns)),
		falling:     make([]fallingTile, 0, len(events.Moves)+len(events.Spawns)),
		points:      events.Points,
		removeTicks: anim.removeTicks,
	}

	for _, c := range events.Removed() {
		a.removed[c] = true
	}

	for _, m := range events.Moves {
		a.addFall(m.Col, m.FromRow, m.ToRow, m.Color, anim)
	}

	// Spawns in a column stack up above the board in the order they land
	spawned := make(map[int]int)
	for _, s := range events.Spawns {
		spawned[s.Col]++
	}
	for _, s := range events.Spawns {
		a.addFall(s.Col, s.Row-spawned[s.Col], s.Row, s.Color, anim)
	}

	return a
}

func (a *turnAnimation) addFall(col, from, to int, color core.Color, anim animationTiming) {
	duration := max(anim.minFallTicks, (to-from)*anim.fallTicksRow)
	a.falling = append(a.falling, fallingTile{
		Col:      col,
		FromRow:  float64(from),
		ToRow:    float64(to),
		Color:    color,
		Duration: duration,
	})
	a.landing[core.C(to, col)] = true
	a.fallTicks = max(a.fallTicks, duration)
}

// removing returns true while the burst is shown.
func (a *turnAnimation) removing() bool {
	return a.ticks < a.removeTicks
}

// fallTick returns the number of ticks spent in the fall phase.
func (a *turnAnimation) fallTick() int {
	return max(0, a.ticks-a.removeTicks)
}

// update advances the animation by one tick.
// Returns true once the last tile has landed.
func (a *turnAnimation) update() bool {
	a.ticks++
	return a.finished()
}

func (a *turnAnimation) finished() bool {
	return a.ticks >= a.removeTicks+a.fallTicks
}

// animationTiming holds animation lengths in ticks.
type animationTiming struct {
	removeTicks  int
	fallTicksRow int
	minFallTicks int
	shakeTicks   int
	hintTicks    int
	instant      bool
}

// shakeOffset returns the horizontal board offset for the remaining shake ticks.
func shakeOffset(remaining int) int {
	if remaining <= 0 {
		return 0
	}
	switch remaining % 4 {
	case 0:
		return -1
	case 2:
		return 1
	default:
		return 0
	}
}
