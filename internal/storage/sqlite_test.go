package storage

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-janken/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHighScoreEmptyDatabase(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore("janken")
	if err != nil {
		t.Fatalf("HighScore failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Empty database should report 0, got %d", score)
	}
}

func TestRecordHighScoreOnlyIncreases(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordHighScore("janken", 5); err != nil {
		t.Fatalf("RecordHighScore failed: %v", err)
	}

	// A lower score must not overwrite
	if err := store.RecordHighScore("janken", 3); err != nil {
		t.Fatalf("RecordHighScore failed: %v", err)
	}
	score, _ := store.HighScore("janken")
	if score != 5 {
		t.Errorf("Lower score overwrote the record, got %d want 5", score)
	}

	// A higher score does
	if err := store.RecordHighScore("janken", 8); err != nil {
		t.Fatalf("RecordHighScore failed: %v", err)
	}
	score, _ = store.HighScore("janken")
	if score != 8 {
		t.Errorf("Higher score should land, got %d want 8", score)
	}
}

func TestHighScoresArePerGame(t *testing.T) {
	store := openTestStore(t)

	store.RecordHighScore("janken", 5)
	store.RecordHighScore("janken_bestof", 2)

	if score, _ := store.HighScore("janken"); score != 5 {
		t.Errorf("janken score = %d, want 5", score)
	}
	if score, _ := store.HighScore("janken_bestof"); score != 2 {
		t.Errorf("janken_bestof score = %d, want 2", score)
	}
}

func TestSaveAndListMatches(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveMatch("janken_bestof", 2, 1, 1); err != nil {
		t.Fatalf("SaveMatch failed: %v", err)
	}
	if err := store.SaveMatch("janken_bestof", 0, 2, 0); err != nil {
		t.Fatalf("SaveMatch failed: %v", err)
	}
	if err := store.SaveMatch("janken", 3, 0, 0); err != nil {
		t.Fatalf("SaveMatch failed: %v", err)
	}

	matches, err := store.RecentMatches("janken_bestof", 10)
	if err != nil {
		t.Fatalf("RecentMatches failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("RecentMatches returned %d entries, want 2", len(matches))
	}

	// Newest first
	if matches[0].Wins != 0 || matches[0].Losses != 2 {
		t.Errorf("Newest match tally = %d/%d, want 0/2", matches[0].Wins, matches[0].Losses)
	}
	if matches[1].Wins != 2 || matches[1].Losses != 1 || matches[1].Draws != 1 {
		t.Errorf("Older match tally = %d/%d/%d, want 2/1/1", matches[1].Wins, matches[1].Losses, matches[1].Draws)
	}
}

func TestGetGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch("janken", 3, 1, 2)
	store.SaveMatch("janken", 1, 2, 0)
	store.RecordHighScore("janken", 4)

	stats, err := store.GetGameStats("janken")
	if err != nil {
		t.Fatalf("GetGameStats failed: %v", err)
	}

	if stats.Matches != 2 {
		t.Errorf("Matches = %d, want 2", stats.Matches)
	}
	if stats.Wins != 4 || stats.Losses != 3 || stats.Draws != 2 {
		t.Errorf("Rounds = %d/%d/%d, want 4/3/2", stats.Wins, stats.Losses, stats.Draws)
	}
	if stats.HighScore != 4 {
		t.Errorf("HighScore = %d, want 4", stats.HighScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestGetAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch("janken", 1, 0, 0)
	store.SaveMatch("janken_bestof", 2, 1, 0)
	store.RecordHighScore("janken", 3)

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Stats for %d games, want 2", len(all))
	}
	if all["janken"].HighScore != 3 {
		t.Errorf("janken HighScore = %d, want 3", all["janken"].HighScore)
	}
	if all["janken_bestof"].Wins != 2 {
		t.Errorf("janken_bestof wins = %d, want 2", all["janken_bestof"].Wins)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.RecordHighScore("janken", 5)
	store.SaveMatch("janken", 1, 0, 0)
	store.RecordHighScore("janken_bestof", 2)

	if err := store.ClearScores("janken"); err != nil {
		t.Fatalf("ClearScores failed: %v", err)
	}

	if score, _ := store.HighScore("janken"); score != 0 {
		t.Errorf("Cleared score = %d, want 0", score)
	}
	matches, _ := store.RecentMatches("janken", 10)
	if len(matches) != 0 {
		t.Errorf("Cleared history has %d entries, want 0", len(matches))
	}
	// Other games are untouched
	if score, _ := store.HighScore("janken_bestof"); score != 2 {
		t.Errorf("Unrelated score cleared, got %d want 2", score)
	}
}

func TestSaveAndQueryDuel(t *testing.T) {
	store := openTestStore(t)

	duel := DuelResult{
		DuelID:         "duel-ABC123-1",
		GameID:         "janken_duel",
		Player1Session: "alice-100",
		Player2Session: "bob-200",
		Score1:         2,
		Score2:         1,
		Draws:          1,
		WinnerSession:  "alice-100",
		EndReason:      "completed",
		Duration:       45,
	}

	id, err := store.SaveDuel(duel)
	if err != nil {
		t.Fatalf("SaveDuel failed: %v", err)
	}
	if id == 0 {
		t.Error("SaveDuel should return a row ID")
	}

	got, err := store.DuelByID("duel-ABC123-1")
	if err != nil {
		t.Fatalf("DuelByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("DuelByID returned nil for a saved duel")
	}
	if got.Score1 != 2 || got.Score2 != 1 || got.Draws != 1 {
		t.Errorf("Duel score = %d/%d draws %d, want 2/1 draws 1", got.Score1, got.Score2, got.Draws)
	}
	if got.WinnerSession != "alice-100" {
		t.Errorf("Winner = %q, want alice-100", got.WinnerSession)
	}
	if got.EndReason != "completed" {
		t.Errorf("EndReason = %q, want completed", got.EndReason)
	}

	missing, err := store.DuelByID("duel-nope")
	if err != nil {
		t.Fatalf("DuelByID failed: %v", err)
	}
	if missing != nil {
		t.Error("DuelByID should return nil for an unknown duel")
	}
}

func TestPlayerDuelHistory(t *testing.T) {
	store := openTestStore(t)

	store.SaveDuel(DuelResult{DuelID: "d1", GameID: "janken_duel", Player1Session: "alice-1", Player2Session: "bob-2", EndReason: "completed"})
	store.SaveDuel(DuelResult{DuelID: "d2", GameID: "janken_duel", Player1Session: "carol-3", Player2Session: "alice-1", EndReason: "disconnect"})
	store.SaveDuel(DuelResult{DuelID: "d3", GameID: "janken_duel", Player1Session: "carol-3", Player2Session: "bob-2", EndReason: "completed"})

	history, err := store.PlayerDuelHistory("alice-1", 10)
	if err != nil {
		t.Fatalf("PlayerDuelHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("History has %d duels, want 2 (either side counts)", len(history))
	}
}

func TestSaveMatchResultAdapter(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveMatchResult(multiplayer.MatchResultData{
		MatchID:        "duel-XYZ789-2",
		GameID:         "janken_duel",
		Player1Session: "alice-1",
		Player2Session: "bob-2",
		Score1:         2,
		Score2:         0,
		WinnerSession:  "alice-1",
		EndReason:      "completed",
		DurationSecs:   30,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult failed: %v", err)
	}

	got, err := store.DuelByID("duel-XYZ789-2")
	if err != nil || got == nil {
		t.Fatalf("Saved duel not found: %v", err)
	}
	if got.Duration != 30 {
		t.Errorf("Duration = %d, want 30", got.Duration)
	}
}
