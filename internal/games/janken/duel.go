package janken

import (
	"github.com/vovakirdan/tui-janken/internal/config"
	"github.com/vovakirdan/tui-janken/internal/core"
	"github.com/vovakirdan/tui-janken/internal/multiplayer"
)

// DuelPhase is the state of one online round.
type DuelPhase int

const (
	// DuelCommit waits for both players to lock in a gesture.
	DuelCommit DuelPhase = iota
	// DuelReveal runs the countdown once both gestures are in.
	DuelReveal
	// DuelResult shows the round outcome before the next round starts.
	DuelResult
)

// String returns a human-readable name for the duel phase.
func (p DuelPhase) String() string {
	switch p {
	case DuelCommit:
		return "commit"
	case DuelReveal:
		return "reveal"
	case DuelResult:
		return "result"
	default:
		return "unknown"
	}
}

// duelDefaultTarget is the wins target when the config leaves it open
// (free-play has no natural end online, so duels default to best of 3).
const duelDefaultTarget = 2

// DuelGame is the two-player Rock-Paper-Scissors match run by the
// multiplayer coordinator. Both gestures come from player input; drawn
// rounds score nobody and the round replays, so a completed duel always
// has a winner.
type DuelGame struct {
	cfg        config.JankenConfig
	targetWins int

	tick  uint64
	round int
	phase DuelPhase

	committed1, committed2 bool
	choice1, choice2       Choice
	outcome1               Outcome // round outcome from Player1's view

	score1, score2 int
	draws          int

	revealTick int
	resultTick int

	gameOver bool
	winner   core.PlayerID
}

// NewDuel creates a new online duel game.
func NewDuel() *DuelGame {
	return &DuelGame{}
}

// ID returns the game identifier used for duel result storage.
func (d *DuelGame) ID() string {
	return "janken_duel"
}

// Reset initializes the duel state.
func (d *DuelGame) Reset(cfg core.RuntimeConfig) {
	jc, err := config.LoadJanken(configPath)
	if err != nil {
		jc = config.DefaultJanken()
	}
	d.cfg = jc

	d.targetWins = jc.Match.TargetWins
	if d.targetWins <= 0 {
		d.targetWins = duelDefaultTarget
	}

	d.tick = 0
	d.round = 1
	d.phase = DuelCommit
	d.committed1 = false
	d.committed2 = false
	d.score1 = 0
	d.score2 = 0
	d.draws = 0
	d.revealTick = 0
	d.resultTick = 0
	d.gameOver = false
	d.winner = 0
}

// StepMulti advances the duel by one tick with both players' input.
func (d *DuelGame) StepMulti(input core.MultiInputFrame) core.StepResult {
	d.tick++

	switch d.phase {
	case DuelCommit:
		// First commitment wins; a locked-in gesture cannot be changed.
		if !d.committed1 {
			if c, ok := choiceForAction(input.Player1().Choice()); ok {
				d.choice1 = c
				d.committed1 = true
			}
		}
		if !d.committed2 {
			if c, ok := choiceForAction(input.Player2().Choice()); ok {
				d.choice2 = c
				d.committed2 = true
			}
		}
		if d.committed1 && d.committed2 {
			d.phase = DuelReveal
			d.revealTick = d.cfg.Reveal.CountdownTicks
		}

	case DuelReveal:
		d.revealTick--
		if d.revealTick <= 0 {
			d.resolveRound()
		}

	case DuelResult:
		if d.gameOver {
			break
		}
		d.resultTick--
		if d.resultTick <= 0 {
			d.nextRound()
		}
	}

	return core.StepResult{State: core.GameState{Score: d.score1, GameOver: d.gameOver}}
}

// resolveRound settles the revealed round and checks the match target.
func (d *DuelGame) resolveRound() {
	d.outcome1 = Judge(d.choice1, d.choice2)
	switch d.outcome1 {
	case Win:
		d.score1++
	case Lose:
		d.score2++
	default:
		d.draws++
	}

	switch {
	case d.score1 >= d.targetWins:
		d.gameOver = true
		d.winner = core.Player1
	case d.score2 >= d.targetWins:
		d.gameOver = true
		d.winner = core.Player2
	}

	d.phase = DuelResult
	d.resultTick = d.cfg.Reveal.ResultTicks
}

// nextRound clears commitments and starts a fresh round.
func (d *DuelGame) nextRound() {
	d.round++
	d.committed1 = false
	d.committed2 = false
	d.phase = DuelCommit
}

// IsGameOver returns true if the duel has ended.
func (d *DuelGame) IsGameOver() bool {
	return d.gameOver
}

// Winner returns the winning player, or 0 while the duel runs.
func (d *DuelGame) Winner() core.PlayerID {
	return d.winner
}

// Score1 returns Player 1's round wins.
func (d *DuelGame) Score1() int {
	return d.score1
}

// Score2 returns Player 2's round wins.
func (d *DuelGame) Score2() int {
	return d.score2
}

// Draws returns the number of drawn rounds so far.
func (d *DuelGame) Draws() int {
	return d.draws
}

// DuelSnapshot is broadcast to both sessions every tick. Choices are only
// included once the round is resolved so neither client can peek at the
// opponent's gesture mid-round.
type DuelSnapshot struct {
	Tick       uint64
	Round      int
	Phase      DuelPhase
	Score1     int
	Score2     int
	Draws      int
	TargetWins int
	Committed1 bool
	Committed2 bool
	ShowBoth   bool
	Choice1    Choice
	Choice2    Choice
	Outcome1   Outcome // valid when ShowBoth
	RevealTick int
	GameOver   bool
	Winner     core.PlayerID
}

// IsGameSnapshot marks DuelSnapshot as a multiplayer snapshot payload.
func (DuelSnapshot) IsGameSnapshot() {}

// Snapshot returns the current duel snapshot for broadcast.
func (d *DuelGame) Snapshot() multiplayer.GameSnapshot {
	snap := DuelSnapshot{
		Tick:       d.tick,
		Round:      d.round,
		Phase:      d.phase,
		Score1:     d.score1,
		Score2:     d.score2,
		Draws:      d.draws,
		TargetWins: d.targetWins,
		Committed1: d.committed1,
		Committed2: d.committed2,
		RevealTick: d.revealTick,
		GameOver:   d.gameOver,
		Winner:     d.winner,
	}
	if d.phase == DuelResult {
		snap.ShowBoth = true
		snap.Choice1 = d.choice1
		snap.Choice2 = d.choice2
		snap.Outcome1 = d.outcome1
	}
	return snap
}
