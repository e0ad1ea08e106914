package client

import (
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/engine"
	"github.com/tomz197/invaders/internal/input"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Out of lives or breached
	GameStateVictory                   // Every level cleared
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection UI state. The session itself lives on the
// server; this only tracks what the screen needs between frames.
type ClientState struct {
	Input     input.Input
	GameState GameState
	Snapshot  *engine.Snapshot // Latest snapshot from the server
	Running   bool             // Client loop running

	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time (client-side)
	sessionLive   bool              // Server has restarted the session we asked for
	shakeTimer    float64           // Remaining screen shake in seconds
	bannerTimer   float64           // Remaining level banner time in seconds
	banner        string
	subBanner     string
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state
	prevGameState GameState
	wasInactive   bool
	tooSmall      bool // Terminal below the minimum size
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
