package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/engine"
	"github.com/tomz197/invaders/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendInput(clientID int, in engine.Input)
	GetSnapshot(clientID int) *engine.Snapshot
	StartGame(clientID int)
}

// EngineFactory builds a fresh session for a new client.
type EngineFactory func() (*engine.Engine, error)

// Server ticks every client's session from a single goroutine.
type Server struct {
	newEngine    EngineFactory
	log          *zap.Logger
	clients      map[int]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	startCh      chan int
	tickTime     time.Duration
	mu           sync.RWMutex
}

// Option configures a Server.
type Option func(*Server)

// WithTickRate ticks the sessions fps times per second. Effect durations are
// converted to frames with the same rate, so it should match the game's
// frame rate.
func WithTickRate(fps int) Option {
	return func(s *Server) {
		if fps > 0 {
			s.tickTime = time.Second / time.Duration(fps)
		}
	}
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a new game server.
func NewServer(newEngine EngineFactory, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		newEngine:    newEngine,
		log:          log,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, config.InputQueueSize),
		registerCh:   make(chan *ClientHandle, config.RegisterBacklog),
		unregisterCh: make(chan int, config.RegisterBacklog),
		startCh:      make(chan int, config.RegisterBacklog),
		tickTime:     config.ServerTickTime,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.tick()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < s.tickTime {
			time.Sleep(s.tickTime - elapsed)
		}
	}
}

// tick runs one server frame.
func (s *Server) tick() {
	s.processRegistrations()
	s.processStarts()
	s.collectInputs()
	s.updateSessions()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, config.EventQueueSize),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput sends input from a client to the server.
func (s *Server) SendInput(clientID int, in engine.Input) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Input: in}:
	default:
		// Input channel full, drop input
	}
}

// StartGame starts a new session for the client, replacing any current one.
func (s *Server) StartGame(clientID int) {
	s.startCh <- clientID
}

// GetSnapshot returns the client's latest snapshot, or nil.
func (s *Server) GetSnapshot(clientID int) *engine.Snapshot {
	s.mu.RLock()
	handle, ok := s.clients[clientID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return handle.Snapshot()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			eng, err := s.newEngine()
			if err != nil {
				s.log.Error("create session", zap.Int("client", handle.ID), zap.Error(err))
				close(handle.EventsCh)
				continue
			}
			handle.engine = eng
			handle.snapshot.Store(eng.Snapshot())
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Info("client registered", zap.Int("client", handle.ID), zap.String("user", handle.Username))
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.log.Info("client unregistered", zap.Int("client", clientID), zap.String("user", handle.Username))
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// processStarts restarts the sessions of clients that asked to play.
func (s *Server) processStarts() {
	for {
		select {
		case clientID := <-s.startCh:
			s.mu.RLock()
			handle, ok := s.clients[clientID]
			s.mu.RUnlock()
			if !ok {
				continue
			}
			handle.engine.Restart()
			handle.input = engine.Input{}
			handle.playing = true
			handle.snapshot.Store(handle.engine.Snapshot())
		default:
			return
		}
	}
}

// collectInputs gathers all pending inputs from clients.
func (s *Server) collectInputs() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.input = latch(handle.input, ci.Input)
			}
		default:
			return
		}
	}
}

// updateSessions advances every playing session by one frame, publishes its
// snapshot and forwards its events.
func (s *Server) updateSessions() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, handle := range s.clients {
		if !handle.playing {
			continue
		}
		events := handle.engine.Advance(handle.input)
		handle.input.Fire = false
		handle.snapshot.Store(handle.engine.Snapshot())

		for _, ev := range events {
			select {
			case handle.EventsCh <- ClientEvent{Type: EventGame, Game: ev}:
			default:
				// Client not draining events, drop
			}
		}
		if handle.engine.State().Terminal() {
			handle.playing = false
		}
	}
}
