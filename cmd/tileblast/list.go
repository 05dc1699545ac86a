package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileblast/internal/games/blast"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every level with its board size, move budget and target score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, lvl := range blast.Levels {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-9s  %-6s  %-6s  %-5s  %s\n", maxIDLen, "ID", "Name", "Board", "Colors", "Moves", "Target")
	fmt.Printf("  %-*s  %-9s  %-6s  %-6s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "------", "-----", "------")

	for _, lvl := range blast.Levels {
		rules := lvl.ConfiguredRules()
		fmt.Printf("  %-*s  %-9s  %-6s  %-6d  %-5d  %d\n", maxIDLen, lvl.ID, lvl.Name,
			fmt.Sprintf("%dx%d", rules.Rows, rules.Cols), rules.Colors, rules.MovesLimit, rules.TargetScore)
	}

	fmt.Println()
	fmt.Println("Run 'tileblast play <id>' to play a level.")
}
