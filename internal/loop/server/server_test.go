package server

import (
	"errors"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/engine"
)

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.99 }
func (fixedRand) Intn(n int) int   { return 0 }

func testFactory() (*engine.Engine, error) {
	cfg := config.DefaultGame()
	cfg.Invaders.BaseFireRate = 0
	return engine.New(cfg, engine.WithRand(fixedRand{}))
}

func TestLatchKeepsFireUntilConsumed(t *testing.T) {
	in := latch(engine.Input{}, engine.Input{Left: true, Fire: true})
	in = latch(in, engine.Input{Right: true})
	if in.Left || !in.Right || !in.Fire {
		t.Fatalf("latched = %+v, want right and fire", in)
	}
}

func TestRegisterAndPlay(t *testing.T) {
	s := NewServer(testFactory, nil)
	h := s.RegisterClient("alice")
	s.tick()

	snap := s.GetSnapshot(h.ID)
	if snap == nil {
		t.Fatalf("no snapshot after registration")
	}
	if snap.Frame != 0 {
		t.Fatalf("session advanced before StartGame")
	}

	s.StartGame(h.ID)
	s.SendInput(h.ID, engine.Input{Fire: true})
	s.SendInput(h.ID, engine.Input{Left: true})
	s.tick()

	snap = s.GetSnapshot(h.ID)
	if snap.Frame != 1 {
		t.Fatalf("frame = %d, want 1", snap.Frame)
	}
	if len(snap.PlayerBullets) != 1 {
		t.Fatalf("bullets = %d, want the latched shot", len(snap.PlayerBullets))
	}
	if snap.Player.X >= 215 {
		t.Fatalf("player x = %v, want moved left", snap.Player.X)
	}

	s.tick()
	if n := len(s.GetSnapshot(h.ID).PlayerBullets); n != 1 {
		t.Fatalf("fire repeated without a new press: %d bullets", n)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	s := NewServer(testFactory, nil)
	a := s.RegisterClient("a")
	b := s.RegisterClient("b")
	s.tick()
	s.StartGame(a.ID)
	s.tick()
	s.tick()

	if f := s.GetSnapshot(a.ID).Frame; f != 2 {
		t.Fatalf("a frame = %d, want 2", f)
	}
	if f := s.GetSnapshot(b.ID).Frame; f != 0 {
		t.Fatalf("b frame = %d, want 0", f)
	}
}

func TestEventsForwarded(t *testing.T) {
	s := NewServer(testFactory, nil)
	h := s.RegisterClient("a")
	s.tick()
	s.StartGame(h.ID)
	s.tick()

	// Nothing happens on the first frame of a still wave.
	select {
	case ev := <-h.EventsCh:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}

	s.Shutdown(0)
	ev, ok := <-h.EventsCh
	if !ok || ev.Type != EventServerShutdown {
		t.Fatalf("event = %+v, %v, want shutdown", ev, ok)
	}
}

func TestUnregisterClosesEvents(t *testing.T) {
	s := NewServer(testFactory, nil)
	h := s.RegisterClient("a")
	s.tick()
	s.UnregisterClient(h.ID)
	s.tick()

	if _, ok := <-h.EventsCh; ok {
		t.Fatalf("events channel still open")
	}
	if s.GetSnapshot(h.ID) != nil {
		t.Fatalf("snapshot for removed client")
	}
	if s.ClientCount() != 0 {
		t.Fatalf("clients = %d, want 0", s.ClientCount())
	}
}

func TestFactoryErrorClosesClient(t *testing.T) {
	s := NewServer(func() (*engine.Engine, error) { return nil, errors.New("boom") }, nil)
	h := s.RegisterClient("a")
	s.tick()
	if _, ok := <-h.EventsCh; ok {
		t.Fatalf("events channel open after failed session")
	}
	if s.ClientCount() != 0 {
		t.Fatalf("failed client registered")
	}
}

func TestWithTickRate(t *testing.T) {
	s := NewServer(testFactory, nil, WithTickRate(30))
	if s.tickTime != time.Second/30 {
		t.Fatalf("tick = %v, want 1/30s", s.tickTime)
	}
	s = NewServer(testFactory, nil, WithTickRate(0))
	if s.tickTime <= 0 {
		t.Fatalf("zero rate left no tick time")
	}
}
