package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	gamecfg "github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/engine"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
)

// Sound plays feedback for session events.
type Sound interface {
	Play(ev engine.Event)
}

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	sound        Sound
	fieldWidth   float64
	fieldHeight  float64
	frameRate    int
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Sound        Sound // Optional

	// Playfield geometry, used to size the canvas. Zero values take the
	// classic defaults.
	FieldWidth  float64
	FieldHeight float64
	FrameRate   int
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	defaults := gamecfg.DefaultGame()
	if opts.FieldWidth <= 0 || opts.FieldHeight <= 0 {
		opts.FieldWidth, opts.FieldHeight = defaults.Width, defaults.Height
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = defaults.FrameRate
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	termWidth, termHeight, err := draw.TermSize(termSizeFunc)
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	cols, rows, offsetCol, offsetRow := layout(termWidth, termHeight, opts.FieldWidth, opts.FieldHeight)
	canvas := draw.NewScaledCanvas(cols, rows, opts.FieldWidth, opts.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		sound:        opts.Sound,
		fieldWidth:   opts.FieldWidth,
		fieldHeight:  opts.FieldHeight,
		frameRate:    opts.FrameRate,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.frame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one client frame: input, server events, state update and drawing.
func (c *Client) frame() error {
	c.processInput()
	c.processServerEvents()
	c.updateScreen()
	c.tickTimers()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateGameOver, GameStateVictory:
		c.updateEndState()
	case GameStateShutdown:
		c.updateShutdownState()
	}

	return c.drawFrame()
}

// processInput reads input and sends it to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}

	// Send input to server if playing
	if c.state.GameState == GameStatePlaying {
		c.server.SendInput(c.handle.ID, engine.Input{
			Left:  c.state.Input.Left,
			Right: c.state.Input.Right,
			Fire:  c.state.Input.Fire,
		})
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventGame:
				c.handleGameEvent(event.Game)
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// handleGameEvent reacts to a session event with screen effects and sound.
func (c *Client) handleGameEvent(ev engine.Event) {
	switch ev.Type {
	case engine.EventPlayerHit:
		c.state.shakeTimer = config.HitShakeSeconds
	case engine.EventLevelCleared:
		c.state.banner = fmt.Sprintf("LEVEL %d CLEAR", ev.Level)
		c.state.subBanner = ""
		c.state.bannerTimer = config.LevelBannerSeconds
	case engine.EventLevelStarted:
		if snap := c.server.GetSnapshot(c.handle.ID); snap != nil && snap.LevelName != "" {
			c.state.subBanner = snap.LevelName
		}
	}
	if c.sound != nil {
		c.sound.Play(ev)
	}
}

// updateScreen handles terminal resize, fitting the playfield into the
// terminal. On actual size changes, clears the terminal to remove residual
// pixels outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TermSize(c.termSizeFunc)
	if err != nil {
		return
	}
	c.state.tooSmall = termWidth < config.MinTermWidth || termHeight < config.MinTermHeight

	cols, rows, offsetCol, offsetRow := layout(termWidth, termHeight, c.fieldWidth, c.fieldHeight)
	if cols != c.canvas.TerminalWidth() || rows != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(cols, rows)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// layout fits the playfield into the terminal, leaving room for the border
// and the HUD row above it, and centres the result.
func layout(termWidth, termHeight int, fieldWidth, fieldHeight float64) (cols, rows, offsetCol, offsetRow int) {
	renderWidth := min(termWidth, config.MaxTermWidth)
	renderHeight := min(termHeight, config.MaxTermHeight)

	cols, rows = draw.FitAspect(renderWidth-2, renderHeight-2-config.HUDRows, fieldWidth, fieldHeight)
	offsetCol = (termWidth - cols) / 2
	offsetRow = config.HUDRows + 1 + (termHeight-config.HUDRows-2-rows)/2
	if offsetRow < config.HUDRows+1 {
		offsetRow = config.HUDRows + 1
	}
	return cols, rows, offsetCol, offsetRow
}

// tickTimers counts down the cosmetic timers.
func (c *Client) tickTimers() {
	dt := c.state.delta.Seconds()
	c.state.shakeTimer = max(c.state.shakeTimer-dt, 0)
	c.state.bannerTimer = max(c.state.bannerTimer-dt, 0)
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.state.Input.Fire || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState follows the session until it ends.
func (c *Client) updatePlayingState() {
	snap := c.server.GetSnapshot(c.handle.ID)
	if snap == nil {
		return
	}
	c.state.Snapshot = snap

	// Until the server has processed our start request the snapshot may still
	// show the previous, finished session.
	if !c.state.sessionLive {
		if snap.State == engine.StatePlaying {
			c.state.sessionLive = true
		}
		return
	}

	switch snap.State {
	case engine.StateLost:
		c.state.GameState = GameStateGameOver
	case engine.StateWonGame:
		c.state.GameState = GameStateVictory
	}
}

// updateEndState handles the game over and victory screens.
func (c *Client) updateEndState() {
	if c.state.Input.Restart || c.state.Input.Fire || c.state.Input.Enter {
		c.startGame()
	}
}

// startGame starts or restarts the session.
func (c *Client) startGame() {
	c.server.StartGame(c.handle.ID)
	c.state.sessionLive = false
	c.state.shakeTimer = 0
	c.state.bannerTimer = 0
	c.state.GameState = GameStatePlaying
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
