// Package engine advances a single game session one frame at a time.
//
// An Engine is not safe for concurrent use. Hosts tick it from one
// goroutine and hand Snapshots to renderers.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/level"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Input is the player's intent for one frame. Left and Right are held
// states; Fire is an edge and fires at most once per frame.
type Input struct {
	Left  bool
	Right bool
	Fire  bool
}

// Engine owns one session and the rules that advance it.
type Engine struct {
	cfg          config.GameConfig
	rnd          object.Rand
	log          *zap.Logger
	difficulty   Difficulty
	levels       *level.Set
	effectFrames uint64

	w      *world
	events []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source. Tests use it for deterministic runs.
func WithRand(rnd object.Rand) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithDifficulty replaces the default linear difficulty curve.
func WithDifficulty(d Difficulty) Option {
	return func(e *Engine) { e.difficulty = d }
}

// WithLevels makes the game finite: clearing the last level wins it.
func WithLevels(s *level.Set) Option {
	return func(e *Engine) { e.levels = s }
}

// New validates cfg and starts a session at level 1.
func New(cfg config.GameConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	e := &Engine{
		cfg:          cfg,
		effectFrames: cfg.Frames(cfg.PowerUps.Duration),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.difficulty == nil {
		e.difficulty = NewLinearDifficulty(cfg.Invaders)
	}
	e.Restart()
	return e, nil
}

// Restart discards the session and starts a fresh one at level 1.
func (e *Engine) Restart() {
	if e.w != nil {
		e.w.releaseParticles()
	}
	e.w = &world{
		player:     object.NewPlayer(e.cfg.Width, e.cfg.Height, e.cfg.Player.Width, e.cfg.Player.Height, e.cfg.Player.Margin),
		lives:      e.cfg.Player.Lives,
		level:      1,
		direction:  1,
		state:      StatePlaying,
		shieldGrid: physics.NewGrid(e.cfg.Width, e.cfg.Height, shieldGridCellSize),
	}
	e.events = nil
	e.layoutShields()
	e.layoutLevel()
	e.log.Info("session started", zap.Int("level", 1), zap.Int("lives", e.w.lives))
}

// State returns the current phase.
func (e *Engine) State() State {
	return e.w.state
}

// Advance runs one frame and returns the events it produced. Once the
// session is lost or won, Advance does nothing and returns nil.
func (e *Engine) Advance(in Input) []Event {
	w := e.w
	if w.state.Terminal() {
		e.events = nil
		return nil
	}
	e.events = nil

	if w.state == StateWonLevel {
		e.nextLevel()
	}

	w.frame++
	w.effects.Expire(w.frame, func(kind object.PowerUpKind) {
		e.emit(Event{Type: EventEffectExpired, PowerUp: kind})
	})

	e.movePlayer(in)
	if in.Fire {
		e.fire()
	}

	w.advanceProjectiles(e.cfg.Height)
	w.updateEphemeral()

	e.advanceWave()

	e.checkCollisions()

	w.pruneEphemeral()

	e.checkTerminal()

	return e.events
}

// advanceWave moves the grid and rolls invader fire.
func (e *Engine) advanceWave() {
	w := e.w
	inv := e.cfg.Invaders
	alive := object.CountAlive(w.invaders)
	dead := len(w.invaders) - alive

	speed := e.difficulty.InvaderSpeed(w.level, dead)
	dir, dropped := AdvanceWave(w.invaders, w.direction, speed, 0, e.cfg.Width-inv.Width, inv.Drop)
	w.direction = dir
	if dropped {
		e.emit(Event{Type: EventWaveDropped})
	}

	w.invaderBullets = RollFire(w.invaderBullets, w.invaders, e.difficulty.FireRate(w.level), e.cfg.Bullets, e.rnd)
}

// checkTerminal applies the end-of-frame rules. Losing wins over clearing
// the wave in the same frame.
func (e *Engine) checkTerminal() {
	w := e.w
	if w.lives <= 0 || Breached(w.invaders, w.player.Y) {
		w.state = StateLost
		e.emit(Event{Type: EventGameLost, Level: w.level})
		e.log.Info("game lost", zap.Int("level", w.level), zap.Int("score", w.score), zap.Int("lives", w.lives))
		return
	}
	if len(w.invaders) == 0 || object.CountAlive(w.invaders) > 0 {
		return
	}

	e.emit(Event{Type: EventLevelCleared, Level: w.level})
	if e.levels != nil && w.level >= e.levels.Len() {
		w.state = StateWonGame
		e.emit(Event{Type: EventGameWon, Level: w.level})
		e.log.Info("game won", zap.Int("level", w.level), zap.Int("score", w.score))
		return
	}
	w.state = StateWonLevel
	e.log.Info("level cleared", zap.Int("level", w.level), zap.Int("score", w.score))
}

// nextLevel lays out the following wave and resumes play.
func (e *Engine) nextLevel() {
	w := e.w
	w.level++
	w.playerBullets = w.playerBullets[:0]
	w.invaderBullets = w.invaderBullets[:0]
	w.powerUps = w.powerUps[:0]
	w.direction = 1
	if e.cfg.Shields.RebuildEachLevel {
		e.layoutShields()
	}
	e.layoutLevel()
	w.state = StatePlaying
	e.emit(Event{Type: EventLevelStarted, Level: w.level})
	e.log.Info("level started", zap.Int("level", w.level), zap.String("name", e.levelName(w.level)))
}

// layoutLevel builds the wave for the current level.
func (e *Engine) layoutLevel() {
	rows, cols := e.cfg.Invaders.Rows, e.cfg.Invaders.Cols
	if l, ok := e.levels.At(e.w.level); ok {
		rows, cols = l.Grid(rows, cols)
	}
	e.w.invaders = LayoutWave(e.cfg.Invaders, e.cfg.Width, e.w.level, rows, cols)
}

func (e *Engine) layoutShields() {
	s := e.cfg.Shields
	e.w.shields = object.LayoutShields(object.ShieldLayout{
		FieldWidth: e.cfg.Width,
		Y:          e.cfg.Height - s.Offset,
		Count:      s.Count,
		Rows:       s.Rows,
		Cols:       s.Cols,
		BlockSize:  s.BlockSize,
		MaxHP:      s.HP,
	})
	e.w.indexShields()
}

func (e *Engine) levelName(n int) string {
	if l, ok := e.levels.At(n); ok {
		return l.Name
	}
	return ""
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}
