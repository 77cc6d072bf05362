package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-janken/internal/config"
	"github.com/vovakirdan/tui-janken/internal/core"
	"github.com/vovakirdan/tui-janken/internal/games/janken"
	"github.com/vovakirdan/tui-janken/internal/platform/tui"
	"github.com/vovakirdan/tui-janken/internal/registry"
	"github.com/vovakirdan/tui-janken/internal/storage"
)

var (
	flagConfig string
	flagPreset string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode. Defaults to free play.

Controls:
  R/1        - Rock
  P/2        - Paper
  S/3        - Scissors
  Enter      - Next round (after a result)
  N          - New match
  Esc        - Pause
  Q/Ctrl+C   - Quit

Preset options:
  freeplay - Endless rounds, win streak counts toward the high score
  bestof3  - First to 2 round wins takes the match
  bestof5  - First to 3 round wins takes the match

Examples:
  janken play
  janken play janken_bestof
  janken play janken_bestof --preset bestof5
  janken play --config ./my-janken.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Match preset: freeplay, bestof3, bestof5")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "janken"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'janken list' to see available modes.")
		os.Exit(1)
	}

	if flagPreset != "" && !config.ValidPreset(flagPreset) {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q (want freeplay, bestof3, or bestof5)\n", flagPreset)
		os.Exit(1)
	}

	// Get terminal size early for the format selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	janken.SetConfigPath(flagConfig)
	janken.SetPreset(flagPreset)

	// Best-of without an explicit preset asks for the format interactively
	if gameID == "janken_bestof" && flagPreset == "" {
		selection, selErr := tui.RunPresetSelector(cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}

		// User pressed back or quit
		if selection == nil {
			return
		}

		janken.SetPreset(string(selection.Preset))
	}

	// Open score storage and inject it into the game
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		janken.SetScoreStore(store)
		janken.SetMatchRecorder(store)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
