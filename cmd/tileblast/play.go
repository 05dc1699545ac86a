package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileblast/internal/platform/tui"
	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, or the classic level if none is given.

Controls:
  Click/Space    - Pop the group under the mouse or cursor
  Arrows/WASD    - Move the cursor
  Enter          - Start
  ?              - Hint (highlight the largest group)
  P              - Pause
  R              - Restart
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - More moves, lower target
  normal - Level defaults
  hard   - Fewer moves, higher target
  fixed  - Values from the config file, no scaling

Examples:
  tileblast play
  tileblast play blast_marathon --difficulty hard
  tileblast play --seed 7
  tileblast play --config ./my-blast.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	levelID, err := levelArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
