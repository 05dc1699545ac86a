package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileblast/internal/games/blast"
	"github.com/vovakirdan/tileblast/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresRun   string
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores for a level",
	Long: `Display the top scores and play statistics for a level.

Examples:
  tileblast scores
  tileblast scores blast_quick --limit 20
  tileblast scores --all
  tileblast scores --run 6f1c9a52-...
  tileblast scores blast_quick --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show stats for every level")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single stored result by run id")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all stored results for the level")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		err = showRun(store, flagScoresRun)
	case flagScoresAll:
		err = showAllStats(store)
	default:
		var levelID string
		levelID, err = levelArg(args)
		if err == nil && flagScoresClear {
			err = clearScores(store, levelID)
		} else if err == nil {
			err = showLevelScores(store, levelID)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func showLevelScores(store *storage.Store, levelID string) error {
	scores, err := store.TopScores(levelID, flagScoresLimit)
	if err != nil {
		return err
	}

	lvl, _ := blast.LevelByID(levelID)
	fmt.Printf("High Scores - Blast %s\n", lvl.Name)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tileblast play %s' to set the first high score!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-16s  %-5s  %s\n", "Rank", "Score", "Result", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-16s  %-5s  %s\n", "----", "-----", "------", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8s  %-16s  %-5d  %s\n", i+1, humanize.Comma(int64(entry.Score)),
			entry.Outcome, entry.MovesUsed, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(levelID)
	if err != nil {
		return err
	}
	fmt.Println()
	printStats(stats)
	return nil
}

func printStats(stats *storage.GameStats) {
	fmt.Printf("Played %d, won %.0f%%, best %s, average %s in %.1f moves, last played %s\n",
		stats.GamesCount, stats.WinRate()*100,
		humanize.Comma(int64(stats.HighScore)),
		humanize.Comma(int64(stats.AvgScore)),
		stats.AvgMoves,
		humanize.Time(stats.LastPlayed))
}

func showAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Printf("%s: ", id)
		printStats(all[id])
	}
	return nil
}

func showRun(store *storage.Store, runID string) error {
	entry, err := store.ResultByRunID(runID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("no result with run id %q", runID)
	}

	fmt.Printf("Run     %s\n", entry.RunID)
	fmt.Printf("Level   %s\n", entry.GameID)
	fmt.Printf("Score   %s\n", humanize.Comma(int64(entry.Score)))
	fmt.Printf("Result  %s\n", entry.Outcome)
	fmt.Printf("Moves   %d\n", entry.MovesUsed)
	fmt.Printf("Played  %s (%s)\n", entry.CreatedAt.Format("2006-01-02 15:04"), humanize.Time(entry.CreatedAt))
	return nil
}

func clearScores(store *storage.Store, levelID string) error {
	if err := store.ClearScores(levelID); err != nil {
		return err
	}
	fmt.Printf("Cleared all scores for %s.\n", levelID)
	return nil
}
