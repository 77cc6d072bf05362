package janken

import "testing"

// scriptedOpponent replays a fixed sequence of gestures.
type scriptedOpponent struct {
	moves []Choice
	next  int
}

func (s *scriptedOpponent) Next() Choice {
	c := s.moves[s.next%len(s.moves)]
	s.next++
	return c
}

// fakeStore records high score calls in memory.
type fakeStore struct {
	scores map[string]int
	saves  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{scores: make(map[string]int)}
}

func (f *fakeStore) HighScore(gameID string) (int, error) {
	return f.scores[gameID], nil
}

func (f *fakeStore) RecordHighScore(gameID string, score int) error {
	f.saves++
	if score > f.scores[gameID] {
		f.scores[gameID] = score
	}
	return nil
}

func TestChooseSettlesRound(t *testing.T) {
	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Scissors}}, nil)

	if s.Phase() != PhaseSelecting {
		t.Fatalf("New session should be selecting, got %s", s.Phase())
	}

	if !s.Choose(Rock) {
		t.Fatal("Choose should succeed in the selecting phase")
	}

	if s.Phase() != PhaseResult {
		t.Errorf("Phase should be result after Choose, got %s", s.Phase())
	}

	p, o, ok := s.Choices()
	if !ok || p != Rock || o != Scissors {
		t.Errorf("Choices() = (%s, %s, %v), want (Rock, Scissors, true)", p, o, ok)
	}

	out, ok := s.Outcome()
	if !ok || out != Win {
		t.Errorf("Outcome() = (%s, %v), want (Win, true)", out, ok)
	}

	if s.PlayerScore() != 1 || s.OpponentScore() != 0 {
		t.Errorf("Scores = %d/%d, want 1/0", s.PlayerScore(), s.OpponentScore())
	}
}

func TestDrawScoresNobody(t *testing.T) {
	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Paper}}, nil)

	s.Choose(Paper)

	out, _ := s.Outcome()
	if out != Draw {
		t.Errorf("Paper vs Paper should draw, got %s", out)
	}
	if s.PlayerScore() != 0 || s.OpponentScore() != 0 {
		t.Errorf("Draw should score nobody, got %d/%d", s.PlayerScore(), s.OpponentScore())
	}
}

func TestLoseIncrementsOpponent(t *testing.T) {
	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Rock}}, nil)

	s.Choose(Scissors)

	out, _ := s.Outcome()
	if out != Lose {
		t.Errorf("Scissors vs Rock should lose, got %s", out)
	}
	if s.PlayerScore() != 0 || s.OpponentScore() != 1 {
		t.Errorf("Scores = %d/%d, want 0/1", s.PlayerScore(), s.OpponentScore())
	}
}

func TestChooseOnlyInSelectingPhase(t *testing.T) {
	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Scissors}}, nil)

	s.Choose(Rock)
	if s.Choose(Paper) {
		t.Error("Choose should be a no-op in the result phase")
	}

	// The committed round must be untouched
	p, _, _ := s.Choices()
	if p != Rock {
		t.Errorf("Committed choice changed to %s", p)
	}
	if s.PlayerScore() != 1 {
		t.Errorf("Score changed to %d", s.PlayerScore())
	}
}

func TestNextRoundPreservesScores(t *testing.T) {
	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Scissors, Rock}}, nil)

	if s.NextRound() {
		t.Error("NextRound should be a no-op in the selecting phase")
	}

	s.Choose(Rock) // win
	if !s.NextRound() {
		t.Fatal("NextRound should succeed in the result phase")
	}

	if s.Phase() != PhaseSelecting {
		t.Errorf("Phase should be selecting after NextRound, got %s", s.Phase())
	}
	if _, _, ok := s.Choices(); ok {
		t.Error("Choices should be cleared after NextRound")
	}
	if s.PlayerScore() != 1 {
		t.Errorf("Scores should carry over, got %d", s.PlayerScore())
	}

	s.Choose(Scissors) // lose
	if s.PlayerScore() != 1 || s.OpponentScore() != 1 {
		t.Errorf("Scores = %d/%d after two rounds, want 1/1", s.PlayerScore(), s.OpponentScore())
	}
}

func TestResetMatchPersistsNewHighScore(t *testing.T) {
	store := newFakeStore()
	store.scores["janken"] = 2

	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Scissors}}, store)
	if s.HighScore() != 2 {
		t.Fatalf("High score should load from the store, got %d", s.HighScore())
	}

	// Win 3 rounds, beating the stored 2
	for i := 0; i < 3; i++ {
		s.Choose(Rock)
		if i < 2 {
			s.NextRound()
		}
	}

	if !s.ResetMatch() {
		t.Fatal("ResetMatch should succeed in the result phase")
	}

	if s.HighScore() != 3 {
		t.Errorf("High score should update to 3, got %d", s.HighScore())
	}
	if store.scores["janken"] != 3 {
		t.Errorf("Store should hold 3, got %d", store.scores["janken"])
	}
	if s.PlayerScore() != 0 || s.OpponentScore() != 0 {
		t.Errorf("Scores should zero on reset, got %d/%d", s.PlayerScore(), s.OpponentScore())
	}
	if s.Phase() != PhaseSelecting {
		t.Errorf("Phase should be selecting after reset, got %s", s.Phase())
	}
}

func TestResetMatchKeepsLowerScore(t *testing.T) {
	store := newFakeStore()
	store.scores["janken"] = 3

	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Scissors}}, store)

	s.Choose(Rock) // 1 win, below the stored 3
	s.ResetMatch()

	if s.HighScore() != 3 {
		t.Errorf("High score should stay 3, got %d", s.HighScore())
	}
	if store.saves != 0 {
		t.Errorf("Store should not be written for a lower score, got %d writes", store.saves)
	}
}

func TestResetMatchOnlyInResultPhase(t *testing.T) {
	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Scissors}}, nil)

	if s.ResetMatch() {
		t.Error("ResetMatch should be a no-op in the selecting phase")
	}
}

func TestNilStoreSkipsPersistence(t *testing.T) {
	s := NewSession("janken", &scriptedOpponent{moves: []Choice{Scissors}}, nil)

	s.Choose(Rock)
	if !s.ResetMatch() {
		t.Fatal("ResetMatch should succeed without a store")
	}
	if s.HighScore() != 1 {
		t.Errorf("In-memory high score should still track, got %d", s.HighScore())
	}
}
