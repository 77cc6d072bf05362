package janken

// GamePhase is the observable state of the solo game, including the
// presentation-level reveal that sits between choosing and the result.
type GamePhase string

const (
	StateSelecting GamePhase = "selecting"
	StateRevealing GamePhase = "revealing"
	StateResult    GamePhase = "result"
	StateMatchOver GamePhase = "match_over"
	StatePaused    GamePhase = "paused"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick           uint64
	Mode           string
	Phase          GamePhase
	PlayerScore    int
	OpponentScore  int
	HighScore      int
	Draws          int
	HasChoices     bool
	PlayerChoice   Choice
	OpponentChoice Choice
	Outcome        Outcome
	RevealTick     int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := StateSelecting
	switch {
	case g.paused:
		phase = StatePaused
	case g.matchOver:
		phase = StateMatchOver
	case g.revealing:
		phase = StateRevealing
	case g.session.ResultVisible():
		phase = StateResult
	}

	snap := Snapshot{
		Tick:          g.tick,
		Mode:          string(g.mode),
		Phase:         phase,
		PlayerScore:   g.session.PlayerScore(),
		OpponentScore: g.session.OpponentScore(),
		HighScore:     g.session.HighScore(),
		Draws:         g.draws,
		RevealTick:    g.revealTick,
	}

	if p, o, ok := g.session.Choices(); ok {
		snap.HasChoices = true
		snap.PlayerChoice = p
		snap.OpponentChoice = o
		snap.Outcome, _ = g.session.Outcome()
	}

	return snap
}
