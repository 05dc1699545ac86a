// tileblast is a terminal tile-matching puzzle: pop groups of touching
// tiles of one color to reach the target score before the moves run out.
//
// Usage:
//
//	tileblast list              - List available levels
//	tileblast play [level]      - Play a level (default: blast)
//	tileblast menu              - Pick levels interactively
//	tileblast scores [level]    - Show high scores and stats
//	tileblast serve             - Start SSH server for remote play
//	tileblast simulate [level]  - Autoplay seeded games and report win rate
//
// Global flags:
//
//	--fps <rate>          - Animation tick rate (default: 60)
//	--seed <value>        - RNG seed for reproducible boards
//	--db <path>           - Database path (default: ~/.tileblast/scores.db)
//	--config <path>       - Custom blast.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/blast"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tileblast",
	Short: "Tile Blast - pop tile groups in your terminal",
	Long: `Tile Blast is a tile-matching puzzle for the terminal.

Click or select a group of two or more touching tiles of the same color
to pop it. Tiles above fall down and new ones drop in from the top.
Reach the target score before you run out of moves.

Available commands:
  list      - Show all levels
  play      - Play a level directly
  menu      - Interactive level picker
  scores    - View high scores and stats
  serve     - Start SSH server for remote play
  simulate  - Autoplay seeded games

Examples:
  tileblast play
  tileblast play blast_quick --difficulty easy
  tileblast menu
  tileblast serve --ssh :2222
  tileblast simulate --games 500 --policy largest`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		blast.SetConfigPath(flagConfig)
		blast.SetDifficultyPreset(flagDifficulty)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tileblast/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blast.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}

// runtimeConfig builds the platform config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// levelArg returns the level id from args, defaulting to the classic level.
func levelArg(args []string) (string, error) {
	if len(args) == 0 {
		return blast.Levels[0].ID, nil
	}
	if _, ok := blast.LevelByID(args[0]); !ok {
		return "", fmt.Errorf("unknown level %q, run 'tileblast list' to see levels", args[0])
	}
	return args[0], nil
}
