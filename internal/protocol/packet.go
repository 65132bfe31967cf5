package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/banshee-data/fingermark/internal/transport"
)

// Packet is the structured form of one protocol frame. The checksum and
// address are handled by the codec and do not appear here: the checksum is
// derived on encode and discarded on decode, and the address carries no
// semantics beyond being echoed.
type Packet struct {
	// Kind is the packet identifier (Command, Data, Ack, EndData).
	Kind byte

	// Payload is the frame's data, excluding the trailing checksum.
	Payload []byte
}

// Marshal builds the complete wire frame for a packet:
//
//	header(2) + address(4) + identifier(1) + length(2) + payload + checksum(2)
//
// with all multi-byte fields big-endian.
func Marshal(address uint32, p Packet) ([]byte, error) {
	if len(p.Payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(p.Payload))
	}

	length := uint16(len(p.Payload) + LengthOverhead)
	frame := make([]byte, 0, 9+len(p.Payload)+2)

	frame = append(frame, HeaderHigh, HeaderLow)
	frame = binary.BigEndian.AppendUint32(frame, address)
	frame = append(frame, p.Kind)
	frame = binary.BigEndian.AppendUint16(frame, length)
	frame = append(frame, p.Payload...)
	frame = binary.BigEndian.AppendUint16(frame, Checksum(p.Kind, p.Payload))

	return frame, nil
}

// Write marshals the packet and writes it to the port, draining the output
// buffer so the frame is on the wire before Write returns.
func Write(port transport.Port, address uint32, p Packet) error {
	if port == nil {
		return transport.ErrNoPort
	}

	frame, err := Marshal(address, p)
	if err != nil {
		return err
	}

	if _, err := port.Write(frame); err != nil {
		return fmt.Errorf("write packet: %w", err)
	}
	if err := port.Drain(); err != nil {
		return fmt.Errorf("drain packet: %w", err)
	}
	return nil
}

// Read decodes one frame from the reader. Each field is individually
// timeout-bound: the first header byte waits up to HeaderTimeout for the
// sensor to start the frame, every later byte up to FieldTimeout.
//
// The four address bytes are read and discarded, as is the trailing
// checksum; receivers of this protocol do not verify it. A timeout on the
// first header byte returns ErrNoPacket so callers can distinguish "no
// frame ever started" from a frame that broke off partway.
func Read(r *transport.Reader) (Packet, error) {
	b1, err := r.ReadByte(HeaderTimeout)
	if err != nil {
		if errors.Is(err, transport.ErrReadTimeout) {
			return Packet{}, ErrNoPacket
		}
		return Packet{}, err
	}
	b2, err := r.ReadByte(FieldTimeout)
	if err != nil {
		if errors.Is(err, transport.ErrReadTimeout) {
			return Packet{}, ErrNoPacket
		}
		return Packet{}, err
	}
	if b1 != HeaderHigh || b2 != HeaderLow {
		return Packet{}, fmt.Errorf("%w: %02X %02X", ErrInvalidHeader, b1, b2)
	}

	for i := 0; i < 4; i++ {
		if _, err := r.ReadByte(FieldTimeout); err != nil {
			return Packet{}, fmt.Errorf("read address: %w", err)
		}
	}

	kind, err := r.ReadByte(FieldTimeout)
	if err != nil {
		return Packet{}, fmt.Errorf("read identifier: %w", err)
	}

	lenHigh, err := r.ReadByte(FieldTimeout)
	if err != nil {
		return Packet{}, fmt.Errorf("read length: %w", err)
	}
	lenLow, err := r.ReadByte(FieldTimeout)
	if err != nil {
		return Packet{}, fmt.Errorf("read length: %w", err)
	}

	length := int(lenHigh)<<8 | int(lenLow)
	if length < LengthOverhead {
		return Packet{}, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	payload := make([]byte, length-LengthOverhead)
	for i := range payload {
		b, err := r.ReadByte(FieldTimeout)
		if err != nil {
			return Packet{}, fmt.Errorf("read payload byte %d: %w", i, err)
		}
		payload[i] = b
	}

	// Consume the checksum without verifying it.
	for i := 0; i < LengthOverhead; i++ {
		if _, err := r.ReadByte(FieldTimeout); err != nil {
			return Packet{}, fmt.Errorf("read checksum: %w", err)
		}
	}

	return Packet{Kind: kind, Payload: payload}, nil
}
