package janken

import "math/rand"

// Phase is the state of the round state machine.
type Phase int

const (
	// PhaseSelecting means no choices are committed; the player is picking.
	PhaseSelecting Phase = iota
	// PhaseResult means both choices are committed and the outcome is settled.
	PhaseResult
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// OpponentSource yields the opponent's gesture for each round.
// Injectable so tests can script the opponent deterministically.
type OpponentSource interface {
	Next() Choice
}

// RandomOpponent picks uniformly at random from the three gestures,
// independent of the player's pick.
type RandomOpponent struct {
	rng *rand.Rand
}

// NewRandomOpponent creates an opponent backed by the given RNG.
func NewRandomOpponent(rng *rand.Rand) *RandomOpponent {
	return &RandomOpponent{rng: rng}
}

// Next returns the opponent's gesture for the next round.
func (r *RandomOpponent) Next() Choice {
	return Choice(r.rng.Intn(numChoices))
}

// HighScoreStore is the narrow persistence interface the session needs:
// one integer per game id, read once at startup, written on match reset.
type HighScoreStore interface {
	HighScore(gameID string) (int, error)
	RecordHighScore(gameID string, score int) error
}

// Session holds the cumulative state of one match: round scores, the
// persisted high score, and the current round's committed choices.
// Transitions are driven by the presentation layer one call at a time;
// calls made from the wrong phase are no-ops.
type Session struct {
	gameID   string
	opponent OpponentSource
	store    HighScoreStore // may be nil; persistence is then skipped

	phase          Phase
	playerScore    int
	opponentScore  int
	highScore      int
	playerChoice   Choice
	opponentChoice Choice
	outcome        Outcome
	hasChoices     bool
}

// NewSession creates a session with zeroed scores and the high score
// loaded once from the store (0 if the store is nil or empty).
func NewSession(gameID string, opponent OpponentSource, store HighScoreStore) *Session {
	s := &Session{
		gameID:   gameID,
		opponent: opponent,
		store:    store,
	}
	if store != nil {
		if hs, err := store.HighScore(gameID); err == nil {
			s.highScore = hs
		}
	}
	return s
}

// Choose commits the player's gesture for this round. The opponent's
// gesture is drawn from the opponent source, the outcome is settled and
// the winning side's score incremented, and the session moves to the
// result phase. Returns false (and changes nothing) outside the
// selecting phase.
func (s *Session) Choose(c Choice) bool {
	if s.phase != PhaseSelecting {
		return false
	}

	s.playerChoice = c
	s.opponentChoice = s.opponent.Next()
	s.hasChoices = true
	s.outcome = Judge(s.playerChoice, s.opponentChoice)

	switch s.outcome {
	case Win:
		s.playerScore++
	case Lose:
		s.opponentScore++
	}

	s.phase = PhaseResult
	return true
}

// NextRound clears both choices and returns to the selecting phase.
// Scores carry over. Returns false outside the result phase.
func (s *Session) NextRound() bool {
	if s.phase != PhaseResult {
		return false
	}
	s.hasChoices = false
	s.phase = PhaseSelecting
	return true
}

// ResetMatch ends the match: if the player's score beats the stored high
// score it is persisted, both round scores are zeroed, and a fresh round
// begins. Returns false outside the result phase. The high score write is
// best effort; a failing store never blocks the reset.
func (s *Session) ResetMatch() bool {
	if s.phase != PhaseResult {
		return false
	}

	if s.playerScore > s.highScore {
		s.highScore = s.playerScore
		if s.store != nil {
			//nolint:errcheck // Best-effort write, the match resets regardless
			s.store.RecordHighScore(s.gameID, s.playerScore)
		}
	}

	s.playerScore = 0
	s.opponentScore = 0
	s.hasChoices = false
	s.phase = PhaseSelecting
	return true
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// PlayerScore returns the player's round wins in the current match.
func (s *Session) PlayerScore() int {
	return s.playerScore
}

// OpponentScore returns the opponent's round wins in the current match.
func (s *Session) OpponentScore() int {
	return s.opponentScore
}

// HighScore returns the best player score seen at any match reset,
// including the value loaded at startup.
func (s *Session) HighScore() int {
	return s.highScore
}

// Choices returns the committed choices for the current round.
// ok is false while no round is committed; both choices are then invalid.
func (s *Session) Choices() (player, opponent Choice, ok bool) {
	if !s.hasChoices {
		return 0, 0, false
	}
	return s.playerChoice, s.opponentChoice, true
}

// Outcome returns the settled outcome of the current round.
// ok is false while no round is committed.
func (s *Session) Outcome() (Outcome, bool) {
	if !s.hasChoices {
		return Draw, false
	}
	return s.outcome, true
}

// ResultVisible reports whether the outcome panel is the active view.
func (s *Session) ResultVisible() bool {
	return s.phase == PhaseResult
}
