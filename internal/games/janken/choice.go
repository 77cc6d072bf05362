package janken

// Choice is one of the three gestures a side can throw in a round.
type Choice int

const (
	Rock Choice = iota
	Paper
	Scissors
)

// numChoices is the size of the closed gesture set.
const numChoices = 3

// AllChoices lists every gesture in its fixed order.
var AllChoices = []Choice{Rock, Paper, Scissors}

// String returns a human-readable name for the choice.
func (c Choice) String() string {
	switch c {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	default:
		return "Unknown"
	}
}

// Beats reports whether c defeats o under the fixed cycle:
// Rock beats Scissors, Paper beats Rock, Scissors beats Paper.
func (c Choice) Beats(o Choice) bool {
	switch c {
	case Rock:
		return o == Scissors
	case Paper:
		return o == Rock
	case Scissors:
		return o == Paper
	default:
		return false
	}
}

// Outcome is the result of a round from the player's perspective.
// It is derived from the pair of choices, never stored.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Lose
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Draw:
		return "Draw"
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	default:
		return "Unknown"
	}
}

// Judge computes the outcome of a round for the side that threw p
// against an opponent who threw o.
func Judge(p, o Choice) Outcome {
	if p == o {
		return Draw
	}
	if p.Beats(o) {
		return Win
	}
	return Lose
}
