package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileblast/internal/games/blast"
	"github.com/vovakirdan/tileblast/internal/games/blast/core"
	"github.com/vovakirdan/tileblast/internal/sim"
)

var (
	flagSimGames    int
	flagSimWorkers  int
	flagSimPolicy   string
	flagSimMaxDelay time.Duration
	flagSimVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [level]",
	Short: "Autoplay seeded games and report how the level plays",
	Long: `Play many games without a terminal using a fixed strategy and print
the win rate and score statistics. Turns complete after a random delay
on another goroutine, like an animated view would.

Policies: ` + strings.Join(policyNames(), ", ") + `

Examples:
  tileblast simulate
  tileblast simulate blast_quick --games 1000 --policy random
  tileblast simulate --difficulty hard --seed 1 --workers 8
  tileblast simulate --max-delay 5ms -v`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 200, "Number of games to play")
	simulateCmd.Flags().IntVarP(&flagSimWorkers, "workers", "w", runtime.NumCPU(), "Games played concurrently")
	simulateCmd.Flags().StringVarP(&flagSimPolicy, "policy", "p", "largest", "Move policy")
	simulateCmd.Flags().DurationVar(&flagSimMaxDelay, "max-delay", 0, "Longest simulated animation per turn")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every game")
}

func policyNames() []string {
	names := make([]string, 0, 3)
	for name := range blast.Policies(core.NewRNG(0)) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runSimulate(_ *cobra.Command, args []string) {
	levelID, err := levelArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lvl, _ := blast.LevelByID(levelID)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "simulate",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := sim.Config{
		Rules:    lvl.ConfiguredRules(),
		Policy:   flagSimPolicy,
		Games:    flagSimGames,
		Workers:  flagSimWorkers,
		Seed:     seed,
		MaxDelay: flagSimMaxDelay,
		Logger:   logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulating", "level", levelID, "policy", cfg.Policy, "games", cfg.Games,
		"workers", cfg.Workers, "seed", seed)

	report, err := sim.Run(ctx, cfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Blast %s: %dx%d, %d colors, %d moves, target %d, policy %s\n",
		lvl.Name, cfg.Rules.Rows, cfg.Rules.Cols, cfg.Rules.Colors,
		cfg.Rules.MovesLimit, cfg.Rules.TargetScore, cfg.Policy)
	if err := report.Write(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
