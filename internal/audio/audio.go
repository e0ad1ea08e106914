// Package audio plays short synthesized cues for session events.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/engine"
)

// cue describes a pitch sweep with a linear fade out.
type cue struct {
	from, to float64 // Hz
	length   time.Duration
	square   bool
}

var cues = map[engine.EventType]cue{
	engine.EventInvaderKilled:    {from: 660, to: 220, length: 90 * time.Millisecond, square: true},
	engine.EventPlayerHit:        {from: 180, to: 60, length: 350 * time.Millisecond, square: true},
	engine.EventPowerUpCollected: {from: 440, to: 1320, length: 200 * time.Millisecond},
	engine.EventShieldAbsorbed:   {from: 300, to: 300, length: 60 * time.Millisecond},
	engine.EventWaveDropped:      {from: 110, to: 90, length: 80 * time.Millisecond, square: true},
	engine.EventLevelCleared:     {from: 523, to: 1046, length: 400 * time.Millisecond},
	engine.EventGameLost:         {from: 330, to: 55, length: 900 * time.Millisecond, square: true},
}

// Player mixes cues into the system speaker. The zero value and a Player
// created with audio disabled are silent.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *zap.Logger
}

// New initializes the speaker when cfg enables audio.
func New(cfg config.AudioConfig, log *zap.Logger) (*Player, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		volume: cfg.Volume,
		log:    log,
	}
	if !cfg.Enabled {
		return p, nil
	}

	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return p, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return p, nil
}

// Play queues the cue for ev, if it has one.
func (p *Player) Play(ev engine.Event) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}

	s, err := p.streamerFor(ev.Type)
	if err != nil {
		p.log.Warn("build cue", zap.Stringer("event", ev.Type), zap.Error(err))
		return
	}
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: p.volume})
	speaker.Unlock()
}

// streamerFor returns the sound for an event type, or nil for silent events.
func (p *Player) streamerFor(t engine.EventType) (beep.Streamer, error) {
	if t == engine.EventGameWon {
		sine, err := generators.SineTone(p.rate, 880)
		if err != nil {
			return nil, err
		}
		return beep.Take(p.rate.N(600*time.Millisecond), sine), nil
	}
	c, ok := cues[t]
	if !ok {
		return nil, nil
	}
	return newSweep(p.rate, c), nil
}

// Close silences all playing cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}

// sweep is a tone gliding linearly from one pitch to another.
type sweep struct {
	c     cue
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

func newSweep(rate beep.SampleRate, c cue) *sweep {
	return &sweep{c: c, rate: rate, total: rate.N(c.length)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.c.from + (s.c.to-s.c.from)*progress

		var v float64
		if s.c.square {
			if s.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		} else {
			v = math.Sin(2 * math.Pi * s.phase)
		}
		v *= 0.25 * (1 - progress)

		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
