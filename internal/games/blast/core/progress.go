package core

import "fmt"

// Scoring constants.
const (
	BaseMatchPoints    = 10 // Awarded for every destroyed group
	BonusThreshold     = 5  // Group size above which each extra tile scores a bonus
	BonusPointsPerTile = 15
)

// MatchPoints returns the points awarded for destroying a group of the given size.
func MatchPoints(size int) int {
	bonus := 0
	if size > BonusThreshold {
		bonus = (size - BonusThreshold) * BonusPointsPerTile
	}
	return BaseMatchPoints + bonus
}

// ProgressSnapshot is a copy of the progress counters handed to presentation.
type ProgressSnapshot struct {
	Score          int
	MovesRemaining int
	TargetScore    int
}

// Progress tracks score and remaining moves toward the target score.
type Progress struct {
	score     int
	movesLeft int
	target    int
}

// NewProgress creates a tracker with the given move budget and target score.
func NewProgress(movesLimit, targetScore int) (*Progress, error) {
	if movesLimit < 0 {
		return nil, fmt.Errorf("%w: moves limit %d", ErrInvalidRules, movesLimit)
	}
	if targetScore <= 0 {
		return nil, fmt.Errorf("%w: target score %d", ErrInvalidRules, targetScore)
	}
	return &Progress{movesLeft: movesLimit, target: targetScore}, nil
}

// ConsumeMove spends one move. Returns false, leaving the counter untouched,
// when no moves remain.
func (p *Progress) ConsumeMove() bool {
	if p.movesLeft > 0 {
		p.movesLeft--
		return true
	}
	return false
}

// AddScore credits a destroyed group of matchSize tiles and returns the points gained.
func (p *Progress) AddScore(matchSize int) int {
	points := MatchPoints(matchSize)
	p.score += points
	return points
}

// Score returns the current score.
func (p *Progress) Score() int { return p.score }

// MovesRemaining returns the number of moves left.
func (p *Progress) MovesRemaining() int { return p.movesLeft }

// TargetScore returns the score needed to win.
func (p *Progress) TargetScore() int { return p.target }

// IsWin returns true once the target score is reached.
func (p *Progress) IsWin() bool {
	return p.score >= p.target
}

// IsLossByMoves returns true when moves are exhausted short of the target.
func (p *Progress) IsLossByMoves() bool {
	return p.movesLeft <= 0 && p.score < p.target
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{
		Score:          p.score,
		MovesRemaining: p.movesLeft,
		TargetScore:    p.target,
	}
}
