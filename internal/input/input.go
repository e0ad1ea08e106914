// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a direction key is considered "held" after its
// last byte. Terminals only report presses, and auto-repeat fills the gap.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state. Left and Right are held
// states; the other keys are true only in the frame their byte arrived.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Enter   bool
	Restart bool
	Quit    bool
	Pressed []byte
}

// keyState tracks the last time each direction key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.parse(buf, time.Now())
}

// parse applies buf to the key state at time now.
// Handles escape sequences for arrow keys.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		switch b {
		case 'a', 'A', 'j', 'J':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case ' ':
			in.Fire = true
		case '\n', '\r':
			in.Enter = true
		case 'r', 'R':
			in.Restart = true
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Pressed = buf
	return in
}
