// janken is a terminal Rock-Paper-Scissors game.
//
// Usage:
//
//	janken list              - List available modes
//	janken play [mode]       - Play a mode
//	janken menu              - Start the interactive menu
//	janken serve             - Start SSH server for remote play and online duels
//	janken scores <mode>     - Show recent matches for a mode
//	janken stats             - Show aggregated statistics
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible opponents
//	--db <path>     - Set database path (default: ~/.janken/janken.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/tui-janken/internal/games/janken"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "janken",
	Short: "Janken - Rock-Paper-Scissors in your terminal",
	Long: `Janken is a terminal Rock-Paper-Scissors game with free play,
best-of matches, and online duels over SSH.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View recent matches
  stats    - View aggregated statistics

Examples:
  janken play
  janken play janken_bestof --preset bestof5
  janken menu
  janken serve --ssh :2222
  janken scores janken`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.janken/janken.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
}
