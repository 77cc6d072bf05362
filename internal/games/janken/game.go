// Package janken implements Rock-Paper-Scissors: the round state machine,
// the solo game against a random opponent, and the two-player duel used by
// the online mode.
package janken

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-janken/internal/config"
	"github.com/vovakirdan/tui-janken/internal/core"
	"github.com/vovakirdan/tui-janken/internal/registry"
)

// Mode represents the match mode.
type Mode string

const (
	// ModeFreePlay runs an open-ended match; the player ends it explicitly.
	ModeFreePlay Mode = "freeplay"
	// ModeBestOf ends the match when one side reaches the target wins.
	ModeBestOf Mode = "bestof"
)

// MatchRecorder persists finished match tallies.
// Implemented by the storage package; nil disables match history.
type MatchRecorder interface {
	SaveMatch(gameID string, wins, losses, draws int) error
}

// Package-level wiring, set by the command layer before games are created
// (same pattern the platform uses for per-game config paths).
var (
	configPath    string
	presetName    string
	scoreStore    HighScoreStore
	matchRecorder MatchRecorder
)

// SetConfigPath sets the path to a custom game config YAML.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset sets the match preset (freeplay, bestof3, bestof5).
func SetPreset(name string) {
	presetName = name
}

// SetScoreStore injects the high score store used by new sessions.
func SetScoreStore(store HighScoreStore) {
	scoreStore = store
}

// SetMatchRecorder injects the match history recorder.
func SetMatchRecorder(rec MatchRecorder) {
	matchRecorder = rec
}

// Game is the solo Rock-Paper-Scissors game against a random opponent.
// It adapts the Session state machine to the platform's tick interface and
// adds the reveal countdown animation on top.
type Game struct {
	mode    Mode
	cfg     config.JankenConfig
	session *Session

	tick       uint64
	targetWins int
	draws      int

	// Reveal animation: runs after a choice is committed, before the
	// outcome panel is shown. Scores are already settled by Choose.
	revealing  bool
	revealTick int

	matchOver     bool
	matchRecorded bool
	paused        bool

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a free-play game.
func New() *Game {
	return &Game{mode: ModeFreePlay}
}

// NewBestOf creates a best-of-N game.
func NewBestOf() *Game {
	return &Game{mode: ModeBestOf}
}

func init() {
	registry.Register("janken", func() registry.Game {
		return New()
	})
	registry.Register("janken_bestof", func() registry.Game {
		return NewBestOf()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeBestOf {
		return "janken_bestof"
	}
	return "janken"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBestOf {
		return "Janken (Best of N)"
	}
	return "Janken"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	jc, err := config.LoadJanken(configPath)
	if err != nil {
		jc = config.DefaultJanken()
	}
	if presetName != "" {
		config.ApplyPreset(&jc, config.MatchPreset(presetName))
	}
	g.cfg = jc

	rng := rand.New(rand.NewSource(cfg.Seed))
	g.session = NewSession(g.ID(), NewRandomOpponent(rng), scoreStore)

	g.tick = 0
	g.draws = 0
	g.revealing = false
	g.revealTick = 0
	g.matchOver = false
	g.matchRecorded = false
	g.paused = false

	g.targetWins = 0
	if g.mode == ModeBestOf {
		g.targetWins = jc.Match.TargetWins
	}

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = cfg.ScreenW < minScreenW || cfg.ScreenH < minScreenH
}

// choiceForAction maps a gesture action to its Choice.
func choiceForAction(a core.Action) (Choice, bool) {
	switch a {
	case core.ActionRock:
		return Rock, true
	case core.ActionPaper:
		return Paper, true
	case core.ActionScissors:
		return Scissors, true
	default:
		return 0, false
	}
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionPause) && !g.matchOver {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.revealing {
		g.revealTick--
		if g.revealTick <= 0 {
			g.revealing = false
			g.onRevealDone()
		}
		return core.StepResult{State: g.State()}
	}

	if g.matchOver {
		if input.Has(core.ActionRestart) {
			g.newMatch()
		}
		return core.StepResult{State: g.State()}
	}

	switch g.session.Phase() {
	case PhaseSelecting:
		if c, ok := choiceForAction(input.Choice()); ok {
			if g.session.Choose(c) {
				if out, ok := g.session.Outcome(); ok && out == Draw {
					g.draws++
				}
				g.revealing = true
				g.revealTick = g.cfg.Reveal.CountdownTicks
			}
		}

	case PhaseResult:
		switch {
		case input.Has(core.ActionConfirm):
			g.session.NextRound()
		case input.Has(core.ActionRestart):
			g.newMatch()
		}
	}

	return core.StepResult{State: g.State()}
}

// onRevealDone runs once the countdown finishes and the outcome shows.
func (g *Game) onRevealDone() {
	if g.targetWins <= 0 {
		return
	}
	if g.session.PlayerScore() >= g.targetWins || g.session.OpponentScore() >= g.targetWins {
		g.matchOver = true
		g.recordMatch()
	}
}

// newMatch records the finished match (unless already recorded at match
// over) and resets the session, which also persists a new high score.
func (g *Game) newMatch() {
	g.recordMatch()
	if g.session.ResetMatch() {
		g.draws = 0
		g.matchOver = false
		g.matchRecorded = false
	}
}

// recordMatch saves the match tally once per match, best effort.
func (g *Game) recordMatch() {
	if g.matchRecorded || matchRecorder == nil {
		return
	}
	wins, losses := g.session.PlayerScore(), g.session.OpponentScore()
	if wins+losses+g.draws == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, gameplay continues regardless
	matchRecorder.SaveMatch(g.ID(), wins, losses, g.draws)
	g.matchRecorded = true
}

// Rounds returns the match tally so far.
func (g *Game) Rounds() (wins, losses, draws int) {
	return g.session.PlayerScore(), g.session.OpponentScore(), g.draws
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.PlayerScore(),
		GameOver: g.matchOver,
		Paused:   g.paused,
	}
}

// DebugState returns a short string representation of the game state.
func (g *Game) DebugState() string {
	p, o, ok := g.session.Choices()
	if !ok {
		return fmt.Sprintf("tick=%d phase=%s you=%d cpu=%d best=%d",
			g.tick, g.session.Phase(), g.session.PlayerScore(), g.session.OpponentScore(), g.session.HighScore())
	}
	out, _ := g.session.Outcome()
	return fmt.Sprintf("tick=%d phase=%s you=%d cpu=%d best=%d round=%s/%s(%s)",
		g.tick, g.session.Phase(), g.session.PlayerScore(), g.session.OpponentScore(), g.session.HighScore(), p, o, out)
}
