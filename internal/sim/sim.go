// Package sim plays Blast games headlessly to measure how a level plays.
// Games run concurrently, each on its own core.Loop with a presenter that
// completes turns from another goroutine after a random delay.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileblast/internal/games/blast"
	"github.com/vovakirdan/tileblast/internal/games/blast/core"
)

// Config describes one simulation batch.
type Config struct {
	Rules    core.Rules
	Policy   string        // Name from blast.Policies
	Games    int           // Number of games to play
	Workers  int           // Concurrent games; defaults to 1
	Seed     int64         // Game i is dealt with Seed+i
	MaxDelay time.Duration // Upper bound of the simulated animation time per turn
	Logger   *log.Logger
}

// Validate checks the batch settings.
func (c Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxDelay < 0 {
		return fmt.Errorf("max delay must not be negative, got %v", c.MaxDelay)
	}
	if _, ok := blast.Policies(rand.New(rand.NewSource(0)))[c.Policy]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Policy)
	}
	return nil
}

// ErrUnknownPolicy is returned for a policy name not in blast.Policies.
var ErrUnknownPolicy = errors.New("unknown policy")

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Seed     int64
	Result   core.Result
	Rejected int // Selections refused while a turn was in progress
}

// Run plays cfg.Games games on cfg.Workers goroutines and summarizes them.
// Cancelling ctx stops the batch; games finished so far are still reported.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	workers := max(1, min(cfg.Workers, cfg.Games))

	started := time.Now()
	jobs := make(chan int64)
	results := make(chan GameResult)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wlog := logger.With("worker", w)
			for seed := range jobs {
				res, err := PlayGame(ctx, cfg, seed, wlog)
				if err != nil {
					if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
						wlog.Error("game failed", "seed", seed, "error", err)
					}
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range cfg.Games {
			select {
			case jobs <- cfg.Seed + int64(i):
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := newReport()
	for res := range results {
		report.add(res)
	}
	report.Elapsed = time.Since(started)

	logger.Info("simulation finished", "games", report.Games, "wins", report.Wins, "elapsed", report.Elapsed)
	return report, ctx.Err()
}

// PlayGame plays one game to the end with the configured policy.
func PlayGame(ctx context.Context, cfg Config, seed int64, logger *log.Logger) (GameResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rng := core.NewRNG(seed)
	policy, ok := blast.Policies(rand.New(rand.NewSource(seed)))[cfg.Policy]
	if !ok {
		return GameResult{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, cfg.Policy)
	}

	presenter := newDelayPresenter(ctx, cfg.MaxDelay, seed)
	ctrl, err := core.NewController(cfg.Rules, rng, presenter, core.WithLogger(logger))
	if err != nil {
		return GameResult{}, err
	}

	loop := core.NewLoop(ctrl)
	go loop.Run(ctx) //nolint:errcheck // Stopped through ctx

	if _, err := loop.Start(ctx); err != nil {
		return GameResult{}, err
	}

	res := GameResult{Seed: seed}
	for {
		snap, err := loop.Snapshot(ctx)
		if err != nil {
			return res, err
		}

		switch snap.Phase {
		case core.PhaseFinished:
			res.Result, err = loop.Result(ctx)
			if err != nil {
				return res, err
			}
			logger.Debug("game over", "seed", seed, "outcome", res.Result.Outcome,
				"score", res.Result.FinalScore, "turns", res.Result.Turns)
			return res, nil

		case core.PhaseIdle:
			at, ok := policy(snap.Grid)
			if !ok || snap.Progress.MovesRemaining <= 0 {
				// Only a dealt board can leave the game idle but unplayable
				return stuck(ctx, loop, res, snap)
			}
			sel, err := loop.Select(ctx, at)
			if err != nil {
				return res, err
			}
			if sel == core.SelectionRejected {
				res.Rejected++
			}
			continue
		}

		// Processing: wait for the presenter to complete the turn
		select {
		case <-presenter.settled:
		case <-ctx.Done():
			return res, ctx.Err()
		}
	}
}

// stuck ends a game that was dealt without a playable move.
func stuck(ctx context.Context, loop *core.Loop, res GameResult, snap core.Snapshot) (GameResult, error) {
	result, err := loop.Result(ctx)
	if err != nil {
		return res, err
	}
	result.Outcome = core.OutcomeLostNoPossibleMatches
	if snap.Progress.MovesRemaining <= 0 {
		result.Outcome = core.OutcomeLostNoMoves
	}
	res.Result = result
	return res, nil
}

// delayPresenter completes every turn from a new goroutine after a random
// delay, the way an animated view would.
type delayPresenter struct {
	ctx      context.Context
	maxDelay time.Duration
	rng      *rand.Rand // Used on the loop goroutine only
	settled  chan struct{}
}

func newDelayPresenter(ctx context.Context, maxDelay time.Duration, seed int64) *delayPresenter {
	return &delayPresenter{
		ctx:      ctx,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewSource(^seed)),
		settled:  make(chan struct{}, 1),
	}
}

func (p *delayPresenter) TurnStarted(_ core.TurnEvents, done core.Completion) {
	if p.maxDelay <= 0 {
		done.Done()
		p.notify()
		return
	}

	delay := time.Duration(p.rng.Int63n(int64(p.maxDelay) + 1))
	go func() {
		select {
		case <-time.After(delay):
			done.Done()
			p.notify()
		case <-p.ctx.Done():
		}
	}()
}

func (p *delayPresenter) notify() {
	select {
	case p.settled <- struct{}{}:
	default:
	}
}

func (p *delayPresenter) SelectionRejected(core.Coord)    {}
func (p *delayPresenter) SelectionIgnored(core.Coord)     {}
func (p *delayPresenter) GameFinished(core.Result)        { p.notify() }
func (p *delayPresenter) Restarted(core.ProgressSnapshot) {}
