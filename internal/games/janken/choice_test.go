package janken

import "testing"

func TestBeatsCycle(t *testing.T) {
	// Rock beats Scissors, Paper beats Rock, Scissors beats Paper
	wins := map[Choice]Choice{
		Rock:     Scissors,
		Paper:    Rock,
		Scissors: Paper,
	}

	for winner, loser := range wins {
		if !winner.Beats(loser) {
			t.Errorf("%s should beat %s", winner, loser)
		}
		if loser.Beats(winner) {
			t.Errorf("%s should not beat %s", loser, winner)
		}
	}

	// Nothing beats itself
	for _, c := range AllChoices {
		if c.Beats(c) {
			t.Errorf("%s should not beat itself", c)
		}
	}
}

func TestJudgeAllPairs(t *testing.T) {
	cases := []struct {
		player   Choice
		opponent Choice
		want     Outcome
	}{
		{Rock, Rock, Draw},
		{Rock, Paper, Lose},
		{Rock, Scissors, Win},
		{Paper, Rock, Win},
		{Paper, Paper, Draw},
		{Paper, Scissors, Lose},
		{Scissors, Rock, Lose},
		{Scissors, Paper, Win},
		{Scissors, Scissors, Draw},
	}

	for _, tc := range cases {
		got := Judge(tc.player, tc.opponent)
		if got != tc.want {
			t.Errorf("Judge(%s, %s) = %s, want %s", tc.player, tc.opponent, got, tc.want)
		}
	}
}

func TestJudgeSymmetry(t *testing.T) {
	// Swapping the sides inverts Win and Lose and preserves Draw
	for _, p := range AllChoices {
		for _, o := range AllChoices {
			a := Judge(p, o)
			b := Judge(o, p)
			switch a {
			case Draw:
				if b != Draw {
					t.Errorf("Judge(%s, %s) = Draw but Judge(%s, %s) = %s", p, o, o, p, b)
				}
			case Win:
				if b != Lose {
					t.Errorf("Judge(%s, %s) = Win but Judge(%s, %s) = %s", p, o, o, p, b)
				}
			case Lose:
				if b != Win {
					t.Errorf("Judge(%s, %s) = Lose but Judge(%s, %s) = %s", p, o, o, p, b)
				}
			}
		}
	}
}

func TestChoiceStrings(t *testing.T) {
	if Rock.String() != "Rock" || Paper.String() != "Paper" || Scissors.String() != "Scissors" {
		t.Error("Choice names should match their gesture")
	}
	if Choice(99).String() != "Unknown" {
		t.Error("Out-of-range choice should stringify as Unknown")
	}
}
