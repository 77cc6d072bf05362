package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-janken/internal/registry"
	"github.com/vovakirdan/tui-janken/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show recent matches for a mode",
	Long: `Display the high score and the 10 most recent matches for a mode.

Examples:
  janken scores janken
  janken scores janken_bestof`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'janken list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	highScore, err := store.HighScore(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving high score: %v\n", err)
		os.Exit(1)
	}

	matches, err := store.RecentMatches(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scores - %s\n", title)
	fmt.Println()
	fmt.Printf("Best win streak: %d\n", highScore)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'janken play %s' to record the first one!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-18s  %-4s  %-4s  %-4s  %s\n", "Date", "W", "L", "D", "Result")
	fmt.Printf("  %-18s  %-4s  %-4s  %-4s  %s\n", "----", "-", "-", "-", "------")

	for _, entry := range matches {
		result := "draw"
		if entry.Wins > entry.Losses {
			result = "won"
		} else if entry.Losses > entry.Wins {
			result = "lost"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-18s  %-4d  %-4d  %-4d  %s\n", dateStr, entry.Wins, entry.Losses, entry.Draws, result)
	}
}
