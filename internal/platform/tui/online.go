package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-janken/internal/core"
	"github.com/vovakirdan/tui-janken/internal/games/janken"
	"github.com/vovakirdan/tui-janken/internal/multiplayer"
)

// OnlineState represents the current state of the online duel flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInDuel                           // In active duel
	OnlineStateDuelEnded                        // Duel has ended, rematch offer open
)

// OnlineModel handles the full online flow: matchmaking, the duel itself,
// and the rematch offer afterwards.
type OnlineModel struct {
	state       OnlineState
	width       int
	height      int
	keyMapper   *KeyMapper
	gameID      string
	sessionID   multiplayer.SessionID
	session     *multiplayer.ChannelSession
	coordinator *multiplayer.Coordinator

	// Host state
	lobbyCode string

	// Join state
	joinCodeInput string
	joinError     string

	// Duel state
	matchID multiplayer.MatchID
	side    core.PlayerID
	snap    *janken.DuelSnapshot

	// End / rematch state
	result           *multiplayer.MatchEndedEvent
	rematchRequested bool
	opponentReady    bool
	rematchCancelled bool

	backToMenu bool
	quitting   bool
}

// NewOnlineModel creates a new online duel model.
// The session must already be registered with the coordinator's registry.
func NewOnlineModel(
	gameID string,
	session *multiplayer.ChannelSession,
	coordinator *multiplayer.Coordinator,
	width, height int,
) OnlineModel {
	return OnlineModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		gameID:      gameID,
		sessionID:   session.ID(),
		session:     session,
		coordinator: coordinator,
	}
}

// Init initializes the online model.
func (m OnlineModel) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent returns a command that waits for coordinator events.
func (m OnlineModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-m.session.Events()
		if !ok {
			return nil
		}
		return evt
	}
}

// Update handles messages.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.state = OnlineStateHostWaiting
		return m, m.waitForEvent()
	case multiplayer.LobbyJoinedEvent:
		m.side = msg.Side
		return m, m.waitForEvent()
	case multiplayer.LobbyErrorEvent:
		m.joinError = msg.Message
		if m.state == OnlineStateJoinWaiting {
			m.state = OnlineStateJoinEnterCode
		}
		return m, m.waitForEvent()
	case multiplayer.LobbyPlayerLeftEvent:
		// Joiner left before the duel started, keep waiting
		return m, m.waitForEvent()
	case multiplayer.MatchStartedEvent:
		m.matchID = msg.MatchID
		m.side = msg.Side
		m.state = OnlineStateInDuel
		m.snap = nil
		m.result = nil
		m.rematchRequested = false
		m.opponentReady = false
		m.rematchCancelled = false
		return m, m.waitForEvent()
	case multiplayer.SnapshotEvent:
		if snap, ok := msg.Snapshot.(janken.DuelSnapshot); ok {
			m.snap = &snap
		}
		return m, m.waitForEvent()
	case multiplayer.MatchEndedEvent:
		result := msg
		m.result = &result
		m.state = OnlineStateDuelEnded
		return m, m.waitForEvent()
	case multiplayer.RematchReadyEvent:
		m.opponentReady = true
		return m, m.waitForEvent()
	case multiplayer.RematchCancelledEvent:
		m.rematchCancelled = true
		m.rematchRequested = false
		return m, m.waitForEvent()
	}
	return m, nil
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	case OnlineStateInDuel:
		return m.handleDuelKey(msg)
	case OnlineStateDuelEnded:
		return m.handleDuelEndedKey(msg)
	}

	return m, nil
}

// leave tells the coordinator this session is walking away from whatever
// it is currently part of.
func (m *OnlineModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.lobbyCode,
		})
	case OnlineStateJoinWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.joinCodeInput,
		})
	case OnlineStateInDuel, OnlineStateDuelEnded:
		m.coordinator.Send(multiplayer.LeaveMatchMsg{
			SessionID: m.sessionID,
			MatchID:   m.matchID,
		})
	}
}

func (m OnlineModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.coordinator.Send(multiplayer.CreateLobbyMsg{
			SessionID: m.sessionID,
			GameID:    m.gameID,
		})
		return m, nil
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.joinError = ""
		return m, nil
	case "esc", "b":
		m.backToMenu = true
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.backToMenu = true
		return m, nil
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc", "b":
		m.backToMenu = true
		return m, nil
	case "enter":
		if m.joinCodeInput != "" {
			m.state = OnlineStateJoinWaiting
			m.joinError = ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{
				SessionID: m.sessionID,
				Code:      m.joinCodeInput,
			})
			return m, nil
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		// Accept alphanumeric input for code
		if len(key) == 1 && len(m.joinCodeInput) < 6 {
			c := strings.ToUpper(key)
			if (c[0] >= 'A' && c[0] <= 'Z') || (c[0] >= '0' && c[0] <= '9') {
				m.joinCodeInput += c
			}
		}
	}

	return m, nil
}

func (m OnlineModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.state = OnlineStateJoinEnterCode
		return m, nil
	}

	return m, nil
}

func (m OnlineModel) handleDuelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.backToMenu = true
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	if action == core.ActionNone {
		return m, nil
	}

	frame := core.NewInputFrame()
	frame.Set(action)
	m.coordinator.Send(multiplayer.PlayerInputMsg{
		MatchID: m.matchID,
		Player:  m.side,
		Input:   frame,
	})

	return m, nil
}

func (m OnlineModel) handleDuelEndedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		if !m.rematchRequested && !m.rematchCancelled {
			m.rematchRequested = true
			m.coordinator.Send(multiplayer.ReadyForRematchMsg{
				SessionID: m.sessionID,
				MatchID:   m.matchID,
			})
		}
		return m, nil
	case "esc", "b", "enter", " ":
		m.leave()
		m.backToMenu = true
		return m, nil
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the current state.
func (m OnlineModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.viewChooseMode()
	case OnlineStateHostWaiting:
		return m.viewHostWaiting()
	case OnlineStateJoinEnterCode:
		return m.viewJoinEnterCode()
	case OnlineStateJoinWaiting:
		return m.viewJoinWaiting()
	case OnlineStateInDuel:
		return m.viewDuel()
	case OnlineStateDuelEnded:
		return m.viewDuelEnded()
	}

	return ""
}

func (m OnlineModel) viewChooseMode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("ONLINE DUEL", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose an option:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("[H] Host a duel", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("[J] Join a duel", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m OnlineModel) viewHostWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("HOSTING DUEL", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Share this code with your opponent:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", m.lobbyCode), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Waiting for a challenger...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Cancel  |  Q: Quit", m.width))

	return b.String()
}

func (m OnlineModel) viewJoinEnterCode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("JOIN DUEL", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter the duel code:", m.width))
	b.WriteString("\n\n")

	codeDisplay := m.joinCodeInput
	if len(codeDisplay) < 6 {
		codeDisplay += "_"
		codeDisplay += strings.Repeat(" ", 5-len(m.joinCodeInput))
	}
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", codeDisplay), m.width))
	b.WriteString("\n")

	if m.joinError != "" {
		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("Error: %s", m.joinError), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Connect  |  Esc: Back", m.width))

	return b.String()
}

func (m OnlineModel) viewJoinWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("CONNECTING", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Joining duel: %s", m.joinCodeInput), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Please wait...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Cancel", m.width))

	return b.String()
}

// myScores orients the snapshot scores so "you" always comes first.
func (m OnlineModel) myScores() (mine, theirs int) {
	if m.snap == nil {
		return 0, 0
	}
	if m.side == core.Player2 {
		return m.snap.Score2, m.snap.Score1
	}
	return m.snap.Score1, m.snap.Score2
}

// myOutcome orients the round outcome to this session's side.
func (m OnlineModel) myOutcome() janken.Outcome {
	out := m.snap.Outcome1
	if m.side == core.Player2 {
		switch out {
		case janken.Win:
			out = janken.Lose
		case janken.Lose:
			out = janken.Win
		}
	}
	return out
}

// myChoices orients the revealed choices to this session's side.
func (m OnlineModel) myChoices() (mine, theirs janken.Choice) {
	if m.side == core.Player2 {
		return m.snap.Choice2, m.snap.Choice1
	}
	return m.snap.Choice1, m.snap.Choice2
}

// myCommits orients the commit flags to this session's side.
func (m OnlineModel) myCommits() (mine, theirs bool) {
	if m.side == core.Player2 {
		return m.snap.Committed2, m.snap.Committed1
	}
	return m.snap.Committed1, m.snap.Committed2
}

func (m OnlineModel) viewDuel() string {
	var b strings.Builder

	if m.snap == nil {
		b.WriteString("\n")
		b.WriteString(centerText("DUEL STARTING", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Get ready!", m.width))
		return b.String()
	}

	mine, theirs := m.myScores()

	b.WriteString("\n")
	header := fmt.Sprintf("DUEL  Round %d  |  You %d : %d Opponent  |  First to %d",
		m.snap.Round, mine, theirs, m.snap.TargetWins)
	b.WriteString(centerText(header, m.width))
	b.WriteString("\n\n")

	switch m.snap.Phase {
	case janken.DuelCommit:
		b.WriteString(centerText("Lock in your gesture:", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("[R] Rock    [P] Paper    [S] Scissors", m.width))
		b.WriteString("\n\n")

		myCommit, theirCommit := m.myCommits()
		youLine := "You: choosing..."
		if myCommit {
			youLine = "You: locked in"
		}
		oppLine := "Opponent: choosing..."
		if theirCommit {
			oppLine = "Opponent: locked in"
		}
		b.WriteString(centerText(youLine, m.width))
		b.WriteString("\n")
		b.WriteString(centerText(oppLine, m.width))

	case janken.DuelReveal:
		b.WriteString(centerText("Rock... Paper... Scissors...", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("SHOOT!", m.width))

	case janken.DuelResult:
		mineChoice, theirChoice := m.myChoices()
		b.WriteString(centerText(fmt.Sprintf("You threw %s, opponent threw %s", mineChoice, theirChoice), m.width))
		b.WriteString("\n\n")

		switch m.myOutcome() {
		case janken.Win:
			b.WriteString(centerText("== ROUND WON ==", m.width))
		case janken.Lose:
			b.WriteString(centerText("== ROUND LOST ==", m.width))
		default:
			b.WriteString(centerText("== DRAW, ROUND REPLAYS ==", m.width))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Draws so far: %d  |  Esc: Forfeit", m.snap.Draws), m.width))

	return b.String()
}

func (m OnlineModel) viewDuelEnded() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("DUEL OVER", m.width))
	b.WriteString("\n\n")

	if m.result != nil {
		mine, theirs := m.result.Score1, m.result.Score2
		if m.side == core.Player2 {
			mine, theirs = theirs, mine
		}
		b.WriteString(centerText(fmt.Sprintf("Final score: You %d : %d Opponent", mine, theirs), m.width))
		b.WriteString("\n\n")

		switch {
		case m.result.Winner == 0:
			b.WriteString(centerText(m.result.Reason.String(), m.width))
		case m.result.Winner == m.side:
			b.WriteString(centerText("YOU WIN THE DUEL!", m.width))
		default:
			b.WriteString(centerText("You lose the duel.", m.width))
		}
	}

	b.WriteString("\n\n")
	switch {
	case m.rematchCancelled:
		b.WriteString(centerText("Opponent left. No rematch.", m.width))
	case m.rematchRequested && m.opponentReady:
		b.WriteString(centerText("Starting rematch...", m.width))
	case m.rematchRequested:
		b.WriteString(centerText("Waiting for opponent to accept rematch...", m.width))
	case m.opponentReady:
		b.WriteString(centerText("Opponent wants a rematch! Press N to accept.", m.width))
	default:
		b.WriteString(centerText("N: Rematch  |  Enter: Back to menu", m.width))
	}

	return b.String()
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}

// MatchID returns the duel ID if a duel was started.
func (m OnlineModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// Side returns which side (P1/P2) this session plays.
func (m OnlineModel) Side() core.PlayerID {
	return m.side
}
