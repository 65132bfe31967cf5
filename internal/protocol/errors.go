package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader is returned when an inbound frame does not start
	// with the 0xEF01 marker.
	ErrInvalidHeader = errors.New("protocol: invalid packet header")

	// ErrInvalidLength is returned when a frame's length field is smaller
	// than the checksum it must cover.
	ErrInvalidLength = errors.New("protocol: invalid packet length")

	// ErrNoPacket is returned when the wait for the first header byte of a
	// new packet times out, i.e. the sensor never started a frame. Timeouts
	// inside an already-started frame surface as transport read timeouts
	// instead.
	ErrNoPacket = errors.New("protocol: timed out waiting for packet header")

	// ErrPayloadTooLarge is returned when asked to encode a payload that
	// does not fit a single frame.
	ErrPayloadTooLarge = errors.New("protocol: payload too large for one packet")
)

// StatusError reports a non-OK confirmation code returned by the sensor.
type StatusError struct {
	// Op names the operation that the sensor rejected.
	Op string

	// Code is the confirmation code from the Ack payload.
	Code byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s rejected by sensor: %s (0x%02X)", e.Op, StatusName(e.Code), e.Code)
}

// AsStatusError returns the StatusError wrapped anywhere in err's chain.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
