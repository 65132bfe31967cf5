package transport

import (
	"time"

	"github.com/banshee-data/fingermark/internal/timeutil"
)

// defaultPollInterval is the cooperative yield between availability polls.
const defaultPollInterval = 5 * time.Millisecond

// Reader reads single bytes from a serial port with a per-call timeout.
// It is the sole suspension point of the protocol layer: every inbound
// packet field is decoded by chaining ReadByte calls, each with its own
// deadline measured against the monotonic clock.
type Reader struct {
	port  Port
	clock timeutil.Clock
	poll  time.Duration
	buf   [1]byte
}

// NewReader creates a Reader over the given port. A nil clock defaults to
// the real clock.
func NewReader(port Port, clock timeutil.Clock) *Reader {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Reader{
		port:  port,
		clock: clock,
		poll:  defaultPollInterval,
	}
}

// ReadByte returns the next byte from the port, polling until one is
// available or the timeout elapses. It returns ErrNoPort if no port has
// been configured and ErrReadTimeout if the deadline passes first.
func (r *Reader) ReadByte(timeout time.Duration) (byte, error) {
	if r.port == nil {
		return 0, ErrNoPort
	}

	start := r.clock.Now()
	for {
		n, err := r.port.Read(r.buf[:])
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return r.buf[0], nil
		}
		if r.clock.Since(start) >= timeout {
			return 0, ErrReadTimeout
		}
		r.clock.Sleep(r.poll)
	}
}
