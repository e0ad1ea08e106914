package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/engine"
)

func TestSweepLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := newSweep(rate, cue{from: 100, to: 50, length: 250 * time.Millisecond, square: true})

	buf := make([][2]float64, 100)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d = %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if total != 250 {
		t.Fatalf("streamed %d samples, want 250", total)
	}
	if s.Err() != nil {
		t.Fatalf("Err = %v", s.Err())
	}
}

func TestSweepFadesOut(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := newSweep(rate, cue{from: 440, to: 440, length: 100 * time.Millisecond})
	buf := make([][2]float64, rate.N(100*time.Millisecond))
	s.Stream(buf)

	peak := func(part [][2]float64) float64 {
		m := 0.0
		for _, v := range part {
			m = max(m, v[0], -v[0])
		}
		return m
	}
	head, tail := peak(buf[:100]), peak(buf[len(buf)-100:])
	if tail >= head {
		t.Fatalf("tail peak %v not below head peak %v", tail, head)
	}
}

func TestStreamerFor(t *testing.T) {
	p := &Player{rate: beep.SampleRate(8000)}
	for _, typ := range []engine.EventType{engine.EventInvaderKilled, engine.EventPlayerHit, engine.EventGameWon} {
		s, err := p.streamerFor(typ)
		if err != nil || s == nil {
			t.Fatalf("%v: streamer = %v, %v", typ, s, err)
		}
	}
	if s, _ := p.streamerFor(engine.EventEffectExpired); s != nil {
		t.Fatalf("effect expiry should be silent")
	}
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p, err := New(config.AudioConfig{Enabled: false, SampleRate: 44100}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.Play(engine.Event{Type: engine.EventPlayerHit})
	p.Close()

	var nilPlayer *Player
	nilPlayer.Play(engine.Event{Type: engine.EventPlayerHit})
}
