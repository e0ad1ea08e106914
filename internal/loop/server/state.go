package server

import (
	"sync/atomic"

	"github.com/tomz197/invaders/internal/engine"
)

// ClientHandle represents a client's connection to the server. Each client
// plays its own session.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client
	snapshot atomic.Pointer[engine.Snapshot]

	// Owned by the server goroutine.
	engine  *engine.Engine
	input   engine.Input
	playing bool
}

// Snapshot returns the latest published snapshot, or nil before the first tick.
func (h *ClientHandle) Snapshot() *engine.Snapshot {
	return h.snapshot.Load()
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Input    engine.Input
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
	Game engine.Event // For EventGame
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventGame ClientEventType = iota
	EventServerShutdown
)

// latch merges a newly received input into the pending one. Held keys take
// the latest value; a fire press survives until a tick consumes it.
func latch(pending, next engine.Input) engine.Input {
	return engine.Input{
		Left:  next.Left,
		Right: next.Right,
		Fire:  pending.Fire || next.Fire,
	}
}
