package blast

import (
	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

// Policy picks the next cell to play on a board.
// It returns false when the board has no destroyable group.
type Policy func(board *core.Grid) (core.Coord, bool)

// LargestGroup plays the biggest group on the board.
func LargestGroup(board *core.Grid) (core.Coord, bool) {
	groups := board.Groups()
	if len(groups) == 0 {
		return core.Coord{}, false
	}
	return groups[0].Cells[0], true
}

// SmallestGroup plays the smallest group, saving large ones to grow.
func SmallestGroup(board *core.Grid) (core.Coord, bool) {
	groups := board.Groups()
	if len(groups) == 0 {
		return core.Coord{}, false
	}
	return groups[len(groups)-1].Cells[0], true
}

// RandomGroup returns a policy that plays a uniformly chosen group.
func RandomGroup(rng core.RNG) Policy {
	return func(board *core.Grid) (core.Coord, bool) {
		groups := board.Groups()
		if len(groups) == 0 {
			return core.Coord{}, false
		}
		return groups[rng.Intn(len(groups))].Cells[0], true
	}
}

// Policies maps policy names accepted on the command line.
func Policies(rng core.RNG) map[string]Policy {
	return map[string]Policy{
		"largest":  LargestGroup,
		"smallest": SmallestGroup,
		"random":   RandomGroup(rng),
	}
}
