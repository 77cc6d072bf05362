// Package multiplayer provides lobby, match, and session plumbing for
// online janken duels played over SSH.
package multiplayer

import "github.com/vovakirdan/tui-janken/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is always the lobby host, Player2 the joiner.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's SSH session.
type SessionID string

// MatchID uniquely identifies one duel.
type MatchID string
