package multiplayer

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-janken/internal/core"
)

// tickGame ends with a Player1 win after a fixed number of ticks.
type tickGame struct {
	ticksToEnd int
	ticks      int
}

func (g *tickGame) Reset(cfg core.RuntimeConfig) {}

func (g *tickGame) StepMulti(input core.MultiInputFrame) core.StepResult {
	g.ticks++
	return core.StepResult{State: core.GameState{GameOver: g.IsGameOver()}}
}

func (g *tickGame) Snapshot() GameSnapshot { return fakeSnapshot{Tick: g.ticks} }
func (g *tickGame) IsGameOver() bool       { return g.ticks >= g.ticksToEnd }

func (g *tickGame) Winner() PlayerID {
	if g.IsGameOver() {
		return Player1
	}
	return 0
}

func (g *tickGame) Score1() int { return 2 }
func (g *tickGame) Score2() int { return 1 }
func (g *tickGame) Draws() int  { return 0 }

type fakeSnapshot struct {
	Tick int
}

func (fakeSnapshot) IsGameSnapshot() {}

func newTestCoordinator(ticksToEnd int) (*Coordinator, *SessionRegistry) {
	registry := NewSessionRegistry()
	factory := func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error) {
		return &tickGame{ticksToEnd: ticksToEnd}, nil
	}
	cfg := CoordinatorConfig{
		LobbyTimeout:  time.Minute,
		TickRate:      100, // Fast ticks keep the test short
		CleanupPeriod: time.Minute,
	}
	return NewCoordinator(cfg, factory, registry), registry
}

func connect(t *testing.T, r *SessionRegistry, id SessionID) *ChannelSession {
	t.Helper()
	s := NewChannelSession(id, 256)
	r.Register(s)
	t.Cleanup(s.Close)
	return s
}

// waitFor reads events until one matches, with a deadline.
func waitFor(t *testing.T, s *ChannelSession, match func(SessionEvent) bool) SessionEvent {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if match(evt) {
				return evt
			}
		case <-deadline:
			t.Fatalf("Timed out waiting for event on %s", s.ID())
			return nil
		}
	}
}

func TestCreateLobby(t *testing.T) {
	c, registry := newTestCoordinator(3)
	host := connect(t, registry, "alice-1")

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})

	evt := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	}).(LobbyCreatedEvent)

	if len(evt.Code) != 6 {
		t.Errorf("Lobby code %q should be 6 characters", evt.Code)
	}
	if c.LobbyCount() != 1 {
		t.Errorf("LobbyCount = %d, want 1", c.LobbyCount())
	}

	// A host cannot open a second lobby
	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyErrorEvent)
		return ok
	})
	if c.LobbyCount() != 1 {
		t.Errorf("LobbyCount = %d after duplicate create, want 1", c.LobbyCount())
	}
}

func TestJoinErrors(t *testing.T) {
	c, registry := newTestCoordinator(3)
	host := connect(t, registry, "alice-1")
	joiner := connect(t, registry, "bob-2")

	c.handleJoinLobby(JoinLobbyMsg{SessionID: "bob-2", Code: "NOPE99"})
	evt := waitFor(t, joiner, func(e SessionEvent) bool {
		_, ok := e.(LobbyErrorEvent)
		return ok
	}).(LobbyErrorEvent)
	if evt.Message != "Lobby not found" {
		t.Errorf("Message = %q, want lobby not found", evt.Message)
	}

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	created := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	}).(LobbyCreatedEvent)

	// The host cannot join its own lobby
	c.handleJoinLobby(JoinLobbyMsg{SessionID: "alice-1", Code: created.Code})
	waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyErrorEvent)
		return ok
	})
}

func TestJoinLowercaseCode(t *testing.T) {
	c, registry := newTestCoordinator(3)
	host := connect(t, registry, "alice-1")
	joiner := connect(t, registry, "bob-2")

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	created := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	}).(LobbyCreatedEvent)

	// Codes are case-insensitive on join
	lower := ""
	for _, r := range created.Code {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		lower += string(r)
	}
	c.handleJoinLobby(JoinLobbyMsg{SessionID: "bob-2", Code: lower})

	waitFor(t, joiner, func(e SessionEvent) bool {
		_, ok := e.(MatchStartedEvent)
		return ok
	})
}

func TestDuelRunsToCompletion(t *testing.T) {
	c, registry := newTestCoordinator(3)
	host := connect(t, registry, "alice-1")
	joiner := connect(t, registry, "bob-2")

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	created := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	}).(LobbyCreatedEvent)

	c.handleJoinLobby(JoinLobbyMsg{SessionID: "bob-2", Code: created.Code})

	hostStart := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(MatchStartedEvent)
		return ok
	}).(MatchStartedEvent)
	joinStart := waitFor(t, joiner, func(e SessionEvent) bool {
		_, ok := e.(MatchStartedEvent)
		return ok
	}).(MatchStartedEvent)

	if hostStart.Side != Player1 || joinStart.Side != Player2 {
		t.Errorf("Sides = %v/%v, want Player1/Player2", hostStart.Side, joinStart.Side)
	}
	if hostStart.MatchID != joinStart.MatchID {
		t.Error("Both players should join the same duel")
	}
	if c.LobbyCount() != 0 {
		t.Errorf("LobbyCount = %d after duel start, want 0", c.LobbyCount())
	}

	ended := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(MatchEndedEvent)
		return ok
	}).(MatchEndedEvent)

	if ended.Reason != MatchEndReasonCompleted {
		t.Errorf("Reason = %v, want completed", ended.Reason)
	}
	if ended.Winner != Player1 {
		t.Errorf("Winner = %v, want Player1", ended.Winner)
	}
	if ended.Score1 != 2 || ended.Score2 != 1 {
		t.Errorf("Score = %d/%d, want 2/1", ended.Score1, ended.Score2)
	}

	waitFor(t, joiner, func(e SessionEvent) bool {
		_, ok := e.(MatchEndedEvent)
		return ok
	})

	// A completed duel leaves a rematch offer open
	if c.RematchCount() != 1 {
		t.Errorf("RematchCount = %d, want 1", c.RematchCount())
	}
	if c.MatchCount() != 0 {
		t.Errorf("MatchCount = %d, want 0", c.MatchCount())
	}
}

func TestRematchStartsNewDuel(t *testing.T) {
	c, registry := newTestCoordinator(3)
	host := connect(t, registry, "alice-1")
	joiner := connect(t, registry, "bob-2")

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	created := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	}).(LobbyCreatedEvent)
	c.handleJoinLobby(JoinLobbyMsg{SessionID: "bob-2", Code: created.Code})

	ended := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(MatchEndedEvent)
		return ok
	}).(MatchEndedEvent)
	waitFor(t, joiner, func(e SessionEvent) bool {
		_, ok := e.(MatchEndedEvent)
		return ok
	})

	c.handleReadyForRematch(ReadyForRematchMsg{SessionID: "alice-1", MatchID: ended.MatchID})

	// The opponent learns a rematch was requested
	waitFor(t, joiner, func(e SessionEvent) bool {
		_, ok := e.(RematchReadyEvent)
		return ok
	})

	c.handleReadyForRematch(ReadyForRematchMsg{SessionID: "bob-2", MatchID: ended.MatchID})

	second := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(MatchStartedEvent)
		return ok
	}).(MatchStartedEvent)

	if second.MatchID == ended.MatchID {
		t.Error("Rematch should get a fresh duel ID")
	}
	if c.RematchCount() != 0 {
		t.Errorf("RematchCount = %d after rematch start, want 0", c.RematchCount())
	}
}

func TestDisconnectDropsRematchOffer(t *testing.T) {
	c, registry := newTestCoordinator(3)
	host := connect(t, registry, "alice-1")
	connect(t, registry, "bob-2")

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	created := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	}).(LobbyCreatedEvent)
	c.handleJoinLobby(JoinLobbyMsg{SessionID: "bob-2", Code: created.Code})

	ended := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(MatchEndedEvent)
		return ok
	}).(MatchEndedEvent)

	c.handleSessionDisconnected(SessionDisconnectedMsg{SessionID: "bob-2"})

	cancelled := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(RematchCancelledEvent)
		return ok
	}).(RematchCancelledEvent)

	if cancelled.MatchID != ended.MatchID {
		t.Errorf("Cancelled match = %v, want %v", cancelled.MatchID, ended.MatchID)
	}
	if c.RematchCount() != 0 {
		t.Errorf("RematchCount = %d, want 0", c.RematchCount())
	}
}

func TestCancelLobbyOnlyByHost(t *testing.T) {
	c, registry := newTestCoordinator(3)
	host := connect(t, registry, "alice-1")
	connect(t, registry, "bob-2")

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	created := waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	}).(LobbyCreatedEvent)

	c.handleCancelLobby(CancelLobbyMsg{SessionID: "bob-2", Code: created.Code})
	if c.LobbyCount() != 1 {
		t.Error("Only the host should be able to cancel a lobby")
	}

	c.handleCancelLobby(CancelLobbyMsg{SessionID: "alice-1", Code: created.Code})
	if c.LobbyCount() != 0 {
		t.Error("Host cancel should remove the lobby")
	}

	// The host can open a new lobby afterwards
	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	})
}

func TestLobbyExpiry(t *testing.T) {
	registry := NewSessionRegistry()
	factory := func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error) {
		return &tickGame{ticksToEnd: 3}, nil
	}
	c := NewCoordinator(CoordinatorConfig{
		LobbyTimeout:  time.Millisecond,
		TickRate:      100,
		CleanupPeriod: time.Minute,
	}, factory, registry)

	host := connect(t, registry, "alice-1")
	c.handleCreateLobby(CreateLobbyMsg{SessionID: "alice-1", GameID: "janken_duel"})
	waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyCreatedEvent)
		return ok
	})

	time.Sleep(5 * time.Millisecond)
	c.cleanupExpired()

	if c.LobbyCount() != 0 {
		t.Errorf("LobbyCount = %d after expiry, want 0", c.LobbyCount())
	}
	waitFor(t, host, func(e SessionEvent) bool {
		_, ok := e.(LobbyErrorEvent)
		return ok
	})
}
