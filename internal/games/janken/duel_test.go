package janken

import (
	"testing"

	"github.com/vovakirdan/tui-janken/internal/core"
)

func duelConfig(t *testing.T) {
	t.Helper()
	testConfig(t, 2)
}

func multiFrame(p1, p2 core.Action) core.MultiInputFrame {
	f := core.NewMultiInputFrame()
	f1 := core.NewInputFrame()
	if p1 != core.ActionNone {
		f1.Set(p1)
	}
	f2 := core.NewInputFrame()
	if p2 != core.ActionNone {
		f2.Set(p2)
	}
	f.SetPlayer(core.Player1, f1)
	f.SetPlayer(core.Player2, f2)
	return f
}

func stepDuelIdle(d *DuelGame, n int) {
	empty := core.NewMultiInputFrame()
	for i := 0; i < n; i++ {
		d.StepMulti(empty)
	}
}

// playRound commits both gestures and steps through reveal and result.
func playRound(d *DuelGame, p1, p2 core.Action) {
	d.StepMulti(multiFrame(p1, p2))
	stepDuelIdle(d, 3) // reveal
	if !d.gameOver {
		stepDuelIdle(d, 3) // result auto-advance
	}
}

func TestDuelWaitsForBothCommits(t *testing.T) {
	duelConfig(t)

	d := NewDuel()
	d.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	d.StepMulti(multiFrame(core.ActionRock, core.ActionNone))

	if !d.committed1 || d.committed2 {
		t.Fatalf("Commits = %v/%v, want true/false", d.committed1, d.committed2)
	}
	if d.phase != DuelCommit {
		t.Errorf("Phase should stay commit with one gesture, got %s", d.phase)
	}

	// Player 1 cannot change a locked-in gesture
	d.StepMulti(multiFrame(core.ActionPaper, core.ActionNone))
	if d.choice1 != Rock {
		t.Errorf("Locked-in gesture changed to %s", d.choice1)
	}

	d.StepMulti(multiFrame(core.ActionNone, core.ActionScissors))
	if d.phase != DuelReveal {
		t.Errorf("Phase should be reveal after both commits, got %s", d.phase)
	}
}

func TestDuelHidesChoicesUntilResult(t *testing.T) {
	duelConfig(t)

	d := NewDuel()
	d.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	d.StepMulti(multiFrame(core.ActionRock, core.ActionScissors))

	snap := d.Snapshot().(DuelSnapshot)
	if snap.ShowBoth {
		t.Error("Snapshot should hide choices during the reveal")
	}
	if !snap.Committed1 || !snap.Committed2 {
		t.Error("Snapshot should show both commits")
	}

	stepDuelIdle(d, 3)

	snap = d.Snapshot().(DuelSnapshot)
	if !snap.ShowBoth {
		t.Fatal("Snapshot should expose choices once resolved")
	}
	if snap.Choice1 != Rock || snap.Choice2 != Scissors {
		t.Errorf("Snapshot choices = %s/%s, want Rock/Scissors", snap.Choice1, snap.Choice2)
	}
	if snap.Outcome1 != Win {
		t.Errorf("Snapshot outcome = %s, want Win", snap.Outcome1)
	}
}

func TestDuelDrawReplaysRound(t *testing.T) {
	duelConfig(t)

	d := NewDuel()
	d.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	playRound(d, core.ActionRock, core.ActionRock)

	if d.score1 != 0 || d.score2 != 0 {
		t.Errorf("Draw should score nobody, got %d/%d", d.score1, d.score2)
	}
	if d.draws != 1 {
		t.Errorf("Draws = %d, want 1", d.draws)
	}
	if d.phase != DuelCommit || d.round != 2 {
		t.Errorf("Draw should replay into a fresh round, phase=%s round=%d", d.phase, d.round)
	}
	if d.committed1 || d.committed2 {
		t.Error("Commits should clear for the replayed round")
	}
}

func TestDuelEndsAtTarget(t *testing.T) {
	duelConfig(t)

	d := NewDuel()
	d.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	if d.targetWins != 2 {
		t.Fatalf("Target wins = %d, want 2", d.targetWins)
	}

	playRound(d, core.ActionRock, core.ActionScissors)
	if d.IsGameOver() {
		t.Fatal("Duel should not end at 1 win with target 2")
	}

	playRound(d, core.ActionPaper, core.ActionRock)
	if !d.IsGameOver() {
		t.Fatal("Duel should end once a side reaches the target")
	}
	if d.Winner() != core.Player1 {
		t.Errorf("Winner = %v, want Player1", d.Winner())
	}
	if d.Score1() != 2 || d.Score2() != 0 {
		t.Errorf("Final score = %d/%d, want 2/0", d.Score1(), d.Score2())
	}
}

func TestDuelPlayer2CanWin(t *testing.T) {
	duelConfig(t)

	d := NewDuel()
	d.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	playRound(d, core.ActionRock, core.ActionPaper)
	playRound(d, core.ActionScissors, core.ActionRock)

	if !d.IsGameOver() {
		t.Fatal("Duel should end at 2 wins")
	}
	if d.Winner() != core.Player2 {
		t.Errorf("Winner = %v, want Player2", d.Winner())
	}
}

func TestDuelFreezesAfterGameOver(t *testing.T) {
	duelConfig(t)

	d := NewDuel()
	d.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	playRound(d, core.ActionRock, core.ActionScissors)
	playRound(d, core.ActionRock, core.ActionScissors)

	if !d.IsGameOver() {
		t.Fatal("Duel should be over")
	}

	round := d.round
	stepDuelIdle(d, 10)
	d.StepMulti(multiFrame(core.ActionRock, core.ActionRock))

	if d.round != round {
		t.Error("A finished duel should not start new rounds")
	}
	if d.Score1() != 2 {
		t.Errorf("Final score changed to %d", d.Score1())
	}
}

func TestDuelDefaultTarget(t *testing.T) {
	// Free-play config has no target; duels fall back to best of 3
	testConfig(t, 0)

	d := NewDuel()
	d.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	if d.targetWins != duelDefaultTarget {
		t.Errorf("Target wins = %d, want %d", d.targetWins, duelDefaultTarget)
	}
}
