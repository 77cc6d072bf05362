package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-janken/internal/core"
)

// OnlineGame is the interface a game must implement to run as an online duel.
type OnlineGame interface {
	// Reset initializes the game state.
	Reset(cfg core.RuntimeConfig)

	// StepMulti advances the game by one tick using input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot returns the current game state for broadcast to sessions.
	Snapshot() GameSnapshot

	// IsGameOver returns true if the duel has ended.
	IsGameOver() bool

	// Winner returns the winning player (Player1/Player2) or 0 if no winner yet.
	Winner() PlayerID

	// Score1 returns Player 1's round wins.
	Score1() int

	// Score2 returns Player 2's round wins.
	Score2() int

	// Draws returns the number of drawn rounds.
	Draws() int
}

// MatchResult contains the outcome of a finished duel.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Score1  int
	Score2  int
	Draws   int
	Ticks   uint64
}

// OnlineMatch represents an active duel between two sessions.
// It runs an authoritative tick loop; sessions only send inputs and
// receive snapshots.
type OnlineMatch struct {
	id     MatchID
	code   string
	gameID string
	game   OnlineGame

	player1Session SessionHandle
	player2Session SessionHandle

	// Input handling
	inputMu    sync.Mutex
	lastInput1 core.InputFrame
	lastInput2 core.InputFrame
	inputChan  chan playerInput

	// Match state
	tick     uint64
	tickRate int
	done     chan struct{}
	doneOnce sync.Once

	// Disconnect handling
	disconnectChan chan SessionID
}

type playerInput struct {
	player PlayerID
	input  core.InputFrame
}

// NewOnlineMatch creates a new duel between two sessions.
func NewOnlineMatch(
	id MatchID,
	code string,
	gameID string,
	game OnlineGame,
	p1Session, p2Session SessionHandle,
	tickRate int,
) *OnlineMatch {
	return &OnlineMatch{
		id:             id,
		code:           code,
		gameID:         gameID,
		game:           game,
		player1Session: p1Session,
		player2Session: p2Session,
		lastInput1:     core.NewInputFrame(),
		lastInput2:     core.NewInputFrame(),
		inputChan:      make(chan playerInput, 64),
		tickRate:       tickRate,
		done:           make(chan struct{}),
		disconnectChan: make(chan SessionID, 2),
	}
}

// ID returns the duel identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code used to create this duel.
func (m *OnlineMatch) Code() string {
	return m.code
}

// GameID returns the game identifier.
func (m *OnlineMatch) GameID() string {
	return m.gameID
}

// SendInput sends player input to the duel.
// Non-blocking, uses a buffered channel.
func (m *OnlineMatch) SendInput(player PlayerID, input core.InputFrame) {
	select {
	case m.inputChan <- playerInput{player: player, input: input}:
	default:
		// Channel full, drop input (rare under normal conditions)
	}
}

// PlayerDisconnected signals that a player has disconnected.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run starts the authoritative duel loop.
// The callback is called when the duel ends.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer func() {
		m.doneOnce.Do(func() {
			close(m.done)
		})
	}()

	tickDuration := time.Second / time.Duration(m.tickRate)
	ticker := time.NewTicker(tickDuration)
	defer ticker.Stop()

	// Monitor session disconnects
	go m.monitorSessions()

	for {
		select {
		case <-ticker.C:
			result, done := m.runTick()
			if done {
				if onComplete != nil {
					onComplete(result)
				}
				return
			}

		case sessionID := <-m.disconnectChan:
			result := m.handleDisconnect(sessionID)
			if onComplete != nil {
				onComplete(result)
			}
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) runTick() (MatchResult, bool) {
	// Drain input channel and update last known inputs
	m.drainInputs()

	// Build multi-input frame
	m.inputMu.Lock()
	multiInput := core.NewMultiInputFrame()
	multiInput.SetPlayer(Player1, m.lastInput1.Clone())
	multiInput.SetPlayer(Player2, m.lastInput2.Clone())
	// Clear inputs after use (they're consumed this tick)
	m.lastInput1.Clear()
	m.lastInput2.Clear()
	m.inputMu.Unlock()

	// Run simulation
	m.game.StepMulti(multiInput)
	m.tick++

	// Broadcast snapshot to both sessions
	snapshot := m.game.Snapshot()
	snapshotEvent := SnapshotEvent{
		MatchID:  m.id,
		Tick:     m.tick,
		Snapshot: snapshot,
	}
	m.player1Session.Send(snapshotEvent)
	m.player2Session.Send(snapshotEvent)

	if m.game.IsGameOver() {
		return MatchResult{
			MatchID: m.id,
			Reason:  MatchEndReasonCompleted,
			Winner:  m.game.Winner(),
			Score1:  m.game.Score1(),
			Score2:  m.game.Score2(),
			Draws:   m.game.Draws(),
			Ticks:   m.tick,
		}, true
	}

	return MatchResult{}, false
}

func (m *OnlineMatch) drainInputs() {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()

	for {
		select {
		case pi := <-m.inputChan:
			// Merge inputs (OR together actions)
			target := &m.lastInput1
			if pi.player == Player2 {
				target = &m.lastInput2
			}
			for action, pressed := range pi.input.Actions {
				if pressed {
					target.Set(action)
				}
			}
		default:
			return
		}
	}
}

func (m *OnlineMatch) handleDisconnect(sessionID SessionID) MatchResult {
	winner := Player1
	if sessionID == m.player1Session.ID() {
		winner = Player2
	}

	return MatchResult{
		MatchID: m.id,
		Reason:  MatchEndReasonDisconnect,
		Winner:  winner,
		Score1:  m.game.Score1(),
		Score2:  m.game.Score2(),
		Draws:   m.game.Draws(),
		Ticks:   m.tick,
	}
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.player1Session.Done():
		select {
		case m.disconnectChan <- m.player1Session.ID():
		default:
		}
	case <-m.player2Session.Done():
		select {
		case m.disconnectChan <- m.player2Session.ID():
		default:
		}
	case <-m.done:
	}
}

// Stop gracefully stops the duel.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
