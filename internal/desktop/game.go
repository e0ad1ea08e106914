// Package desktop runs a session in a native window.
package desktop

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/invaders/internal/engine"
)

// Sound plays feedback for session events.
type Sound interface {
	Play(ev engine.Event)
}

type screen int

const (
	screenStart screen = iota
	screenPlaying
	screenGameOver
	screenVictory
)

const (
	hitShakeFrames    = 18
	levelBannerFrames = 90
	starCount         = 80
)

// star is a background point drifting down the window.
type star struct {
	x, y, speed, size float64
}

// Game implements ebiten.Game around a single engine session.
type Game struct {
	eng       *engine.Engine
	snap      *engine.Snapshot
	sound     Sound
	log       *zap.Logger
	face      text.Face
	rnd       *rand.Rand
	frameRate int

	screen       screen
	stars        []star
	shake        int
	banner       string
	bannerFrames int
}

// Options configures a Game.
type Options struct {
	Sound     Sound // Optional
	Log       *zap.Logger
	FrameRate int // Used to show effect time left in seconds
}

// New wraps eng in a window frontend. The session starts on the title screen.
func New(eng *engine.Engine, opts Options) *Game {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	g := &Game{
		eng:       eng,
		snap:      eng.Snapshot(),
		sound:     opts.Sound,
		log:       opts.Log,
		face:      text.NewGoXFace(basicfont.Face7x13),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		frameRate: opts.FrameRate,
	}
	g.stars = make([]star, starCount)
	for i := range g.stars {
		g.stars[i] = star{
			x:     g.rnd.Float64() * g.snap.Width,
			y:     g.rnd.Float64() * g.snap.Height,
			speed: 0.2 + g.rnd.Float64()*0.8,
			size:  1 + g.rnd.Float64(),
		}
	}
	return g
}

// Update advances one frame. Returns ebiten.Termination when the player quits.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.updateStars()

	switch g.screen {
	case screenStart:
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.restart()
		}
	case screenPlaying:
		g.step(readInput())
	case screenGameOver, screenVictory:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.restart()
		}
	}
	return nil
}

// readInput samples the keyboard. Direction keys are held; fire is edge
// triggered so holding Space does not empty the magazine at once.
func readInput() engine.Input {
	return engine.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
}

// step advances the session and reacts to its events.
func (g *Game) step(in engine.Input) {
	events := g.eng.Advance(in)
	g.snap = g.eng.Snapshot()

	if g.shake > 0 {
		g.shake--
	}
	if g.bannerFrames > 0 {
		g.bannerFrames--
	}

	for _, ev := range events {
		switch ev.Type {
		case engine.EventPlayerHit:
			g.shake = hitShakeFrames
		case engine.EventLevelCleared:
			g.banner = "LEVEL CLEAR"
			g.bannerFrames = levelBannerFrames
		case engine.EventGameLost:
			g.log.Info("game lost", zap.Int("score", g.snap.Score), zap.Int("level", g.snap.Level))
		case engine.EventGameWon:
			g.log.Info("game won", zap.Int("score", g.snap.Score))
		}
		if g.sound != nil {
			g.sound.Play(ev)
		}
	}

	switch g.snap.State {
	case engine.StateLost:
		g.screen = screenGameOver
	case engine.StateWonGame:
		g.screen = screenVictory
	}
}

func (g *Game) restart() {
	g.eng.Restart()
	g.snap = g.eng.Snapshot()
	g.shake = 0
	g.bannerFrames = 0
	g.screen = screenPlaying
}

func (g *Game) updateStars() {
	for i := range g.stars {
		s := &g.stars[i]
		s.y += s.speed
		if s.y > g.snap.Height {
			s.y = 0
			s.x = g.rnd.Float64() * g.snap.Width
		}
	}
}

// Layout keeps the logical playfield size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.snap.Width), int(g.snap.Height)
}
