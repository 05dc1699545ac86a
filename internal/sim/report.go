package sim

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

// Report summarizes a simulation batch.
type Report struct {
	Games    int
	Wins     int
	Outcomes map[core.Outcome]int
	MinScore int
	MaxScore int
	Turns    int // Turns played over all games
	Rejected int
	Elapsed  time.Duration

	scoreSum int
	movesSum int
}

func newReport() Report {
	return Report{Outcomes: make(map[core.Outcome]int)}
}

func (r *Report) add(res GameResult) {
	score := res.Result.FinalScore
	if r.Games == 0 || score < r.MinScore {
		r.MinScore = score
	}
	if score > r.MaxScore {
		r.MaxScore = score
	}

	r.Games++
	if res.Result.Outcome == core.OutcomeWon {
		r.Wins++
	}
	r.Outcomes[res.Result.Outcome]++
	r.Turns += res.Result.Turns
	r.Rejected += res.Rejected
	r.scoreSum += score
	r.movesSum += res.Result.MovesUsed
}

// WinRate returns the fraction of games won.
func (r Report) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

// AvgScore returns the mean final score.
func (r Report) AvgScore() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.scoreSum) / float64(r.Games)
}

// AvgMoves returns the mean number of moves spent per game.
func (r Report) AvgMoves() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.movesSum) / float64(r.Games)
}

// Write prints the report as aligned text.
func (r Report) Write(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("Games      %s in %s", humanize.Comma(int64(r.Games)), r.Elapsed.Round(time.Millisecond)),
		fmt.Sprintf("Win rate   %.1f%%", r.WinRate()*100),
		fmt.Sprintf("Score      avg %s  min %s  max %s",
			humanize.Comma(int64(math.Round(r.AvgScore()))),
			humanize.Comma(int64(r.MinScore)),
			humanize.Comma(int64(r.MaxScore))),
		fmt.Sprintf("Moves      avg %.1f", r.AvgMoves()),
		fmt.Sprintf("Turns      %s", humanize.Comma(int64(r.Turns))),
	}
	if r.Rejected > 0 {
		lines = append(lines, fmt.Sprintf("Rejected   %d", r.Rejected))
	}

	outcomes := make([]core.Outcome, 0, len(r.Outcomes))
	for o := range r.Outcomes {
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })
	for _, o := range outcomes {
		lines = append(lines, fmt.Sprintf("  %-16s %d", o, r.Outcomes[o]))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
