package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	s := &Stream{}
	now := time.Now()

	in := s.parse([]byte("a "), now)
	if !in.Left || in.Right || !in.Fire {
		t.Fatalf("input = %+v, want left and fire", in)
	}

	in = s.parse([]byte("\x1b[C"), now.Add(10*time.Millisecond))
	if !in.Right {
		t.Fatalf("arrow right not parsed")
	}
	if !in.Left {
		t.Fatalf("left released inside the hold window")
	}
	if in.Fire {
		t.Fatalf("fire repeated without a new byte")
	}

	in = s.parse(nil, now.Add(100*time.Millisecond))
	if in.Left || in.Right {
		t.Fatalf("keys held past the hold window: %+v", in)
	}
}

func TestParseEdges(t *testing.T) {
	s := &Stream{}
	in := s.parse([]byte("R\rq"), time.Now())
	if !in.Restart || !in.Enter || !in.Quit {
		t.Fatalf("input = %+v, want restart, enter and quit", in)
	}
	in = s.parse([]byte("\x1b[A\x1b[D"), time.Now())
	if !in.Left || in.Quit {
		t.Fatalf("input = %+v, want left only", in)
	}
}

func TestStreamCloses(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")))
	deadline := time.Now().Add(time.Second)
	sawRight := false
	for !s.Closed() && time.Now().Before(deadline) {
		if ReadInput(s).Right {
			sawRight = true
		}
		time.Sleep(time.Millisecond)
	}
	if !s.Closed() {
		t.Fatalf("stream not closed after EOF")
	}
	if !sawRight {
		t.Fatalf("byte before EOF lost")
	}
}
