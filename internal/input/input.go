// Package input turns a raw terminal byte stream into per-frame key state.
//
// Terminals report presses, never releases, so holds are inferred: a key
// counts as down for keyHoldDuration after its last byte arrived.
package input

import (
	"bufio"
	"io"
	"time"
)

// keyHoldDuration is how long a key counts as held after its last press.
// Autorepeat pulses at 20 to 30 cps on common emulators once it kicks in;
// 50ms bridges the gap between pulses without smearing taps into holds.
const keyHoldDuration = 50 * time.Millisecond

// Frame is one polling cycle's view of the keyboard.
type Frame struct {
	Thrust  bool
	Left    bool
	Right   bool
	Fire    bool
	Pause   bool
	Confirm bool
	Quit    bool
	Number  int // last digit pressed, -1 when none is recent
}

type keyState struct {
	thrust  time.Time
	left    time.Time
	right   time.Time
	fire    time.Time
	pause   time.Time
	confirm time.Time
	quit    time.Time
	number  time.Time
	digit   int
}

// Stream reads key bytes off a reader in the background and answers
// non-blocking polls with the current key state.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // tail of a split escape sequence, carried to the next poll
	state   keyState
}

// NewStream starts a goroutine reading r. When r reaches EOF the stream
// reports Quit on every following poll.
func NewStream(r io.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{digit: -1},
	}
	br := bufio.NewReader(r)
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains every byte that arrived since the last call and returns the
// resulting key state. It never blocks.
func (s *Stream) Poll() Frame {
	now := time.Now()
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

	s.consume(buf, now)
	f := s.frameAt(now)
	if s.closed {
		f.Quit = true
	}
	return f
}

// consume parses key bytes and stamps the state. Escape sequences can arrive
// split across reads under load; a partial tail is carried to the next call
// instead of being misread as individual keys.
func (s *Stream) consume(buf []byte, now time.Time) {
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != 0x1b {
			s.press(b, now)
			continue
		}
		if i+1 >= len(buf) {
			s.pending = append(s.pending, buf[i:]...)
			return
		}
		if buf[i+1] != '[' {
			// Bare escape or an alt prefix; nothing is mapped to it.
			continue
		}

		// CSI: skip parameter and intermediate bytes up to the final byte
		// in the 0x40..0x7e range, so sequences like ESC[15~ pass through
		// without their digits registering as keys.
		j := i + 2
		for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
			j++
		}
		if j >= len(buf) {
			s.pending = append(s.pending, buf[i:]...)
			return
		}
		switch buf[j] {
		case 'A': // up arrow
			s.state.thrust = now
		case 'C': // right arrow
			s.state.right = now
		case 'D': // left arrow
			s.state.left = now
		}
		i = j
	}
}

func (s *Stream) press(b byte, now time.Time) {
	switch b {
	case 'w', 'W', 'i', 'I':
		s.state.thrust = now
	case 'a', 'A', 'j', 'J':
		s.state.left = now
	case 'd', 'D', 'l', 'L':
		s.state.right = now
	case ' ':
		s.state.fire = now
	case 'p', 'P':
		s.state.pause = now
	case '\r', '\n':
		s.state.confirm = now
	case 'q', 'Q', 0x03: // q or ctrl-c
		s.state.quit = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.state.number = now
		s.state.digit = int(b - '0')
	}
}

func (s *Stream) frameAt(now time.Time) Frame {
	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	f := Frame{
		Thrust:  held(s.state.thrust),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Fire:    held(s.state.fire),
		Pause:   held(s.state.pause),
		Confirm: held(s.state.confirm),
		Quit:    held(s.state.quit),
		Number:  -1,
	}
	if held(s.state.number) {
		f.Number = s.state.digit
	}
	return f
}
