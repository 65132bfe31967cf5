// Package transport provides the serial byte stream abstraction underneath
// the fingerprint packet protocol, including the timeout-bounded single-byte
// reader that every inbound packet field is decoded through.
//
// The transport never opens or closes ports on its own; ports are owned by
// the caller and borrowed for the duration of one operation.
package transport

import (
	"errors"
	"io"
)

var (
	// ErrNoPort is returned when a packet-level operation is attempted
	// before a serial port has been configured.
	ErrNoPort = errors.New("transport: serial port not configured")

	// ErrReadTimeout is returned when no byte arrives within the timeout
	// of a single read.
	ErrReadTimeout = errors.New("transport: read timed out")
)

// Port defines the minimal interface needed for a serial port.
// This abstraction enables unit testing without real serial hardware.
//
// Read must be non-blocking or bounded by a short internal timeout: when no
// byte is available it returns (0, nil) and the Reader's poll loop supplies
// the waiting. Ports opened through Open are configured this way.
type Port interface {
	io.ReadWriter

	// Drain blocks until all written bytes have been transmitted to the
	// device.
	Drain() error
}
