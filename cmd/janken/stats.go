package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-janken/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics across all modes",
	Long: `Display match totals, round counts and best streaks for every mode,
plus recent online duels when any have been recorded.`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Statistics")
	fmt.Println()

	if len(stats) == 0 {
		fmt.Println("No matches recorded yet.")
	} else {
		ids := make([]string, 0, len(stats))
		for id := range stats {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("  %-16s  %-8s  %-12s  %-6s  %s\n", "Mode", "Matches", "Rounds W/L/D", "Best", "Last played")
		fmt.Printf("  %-16s  %-8s  %-12s  %-6s  %s\n", "----", "-------", "------------", "----", "-----------")
		for _, id := range ids {
			gs := stats[id]
			rounds := fmt.Sprintf("%d/%d/%d", gs.Wins, gs.Losses, gs.Draws)
			last := "-"
			if !gs.LastPlayed.IsZero() {
				last = gs.LastPlayed.Format("2006-01-02 15:04")
			}
			fmt.Printf("  %-16s  %-8d  %-12s  %-6d  %s\n", gs.GameID, gs.Matches, rounds, gs.HighScore, last)
		}
	}

	duels, err := store.RecentDuels(5)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving duels: %v\n", err)
		os.Exit(1)
	}
	if len(duels) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent online duels")
	fmt.Println()
	fmt.Printf("  %-18s  %-7s  %-6s  %s\n", "Date", "Score", "Draws", "Ended")
	fmt.Printf("  %-18s  %-7s  %-6s  %s\n", "----", "-----", "-----", "-----")
	for _, d := range duels {
		dateStr := d.CreatedAt.Format("2006-01-02 15:04")
		score := fmt.Sprintf("%d-%d", d.Score1, d.Score2)
		fmt.Printf("  %-18s  %-7s  %-6d  %s\n", dateStr, score, d.Draws, d.EndReason)
	}
}
