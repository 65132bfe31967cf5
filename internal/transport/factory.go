package transport

import (
	"time"

	"go.bug.st/serial"
)

// pollReadTimeout bounds each Read call against a real port so the Reader's
// poll loop regains control between bytes instead of blocking indefinitely.
const pollReadTimeout = 20 * time.Millisecond

// Open opens a real serial port at the given path using the provided
// options. The returned port reads non-blockingly as required by Reader.
// Closing the port remains the caller's responsibility.
func Open(path string, opts PortOptions) (serial.Port, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}

	if err := port.SetReadTimeout(pollReadTimeout); err != nil {
		port.Close()
		return nil, err
	}

	return port, nil
}
