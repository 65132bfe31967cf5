// Package sensor implements the command/acknowledge exchange with an optical
// fingerprint sensor: password verification, image capture, image-to-feature
// conversion, model creation, and parameter queries. It speaks the framing
// defined in internal/protocol over a caller-supplied serial port.
package sensor

import (
	"encoding/binary"
	"fmt"

	"github.com/banshee-data/fingermark/internal/protocol"
	"github.com/banshee-data/fingermark/internal/timeutil"
	"github.com/banshee-data/fingermark/internal/transport"
)

// Device drives one fingerprint sensor over a serial port. It is not safe
// for concurrent use: the sensor holds shared protocol state and a second
// in-flight exchange would corrupt it.
type Device struct {
	port     transport.Port
	reader   *transport.Reader
	address  uint32
	password uint32
	clock    timeutil.Clock
}

// Option configures a Device.
type Option func(*Device)

// WithAddress sets the module address echoed in every frame.
func WithAddress(address uint32) Option {
	return func(d *Device) {
		d.address = address
	}
}

// WithPassword sets the module password checked by VerifyPassword.
func WithPassword(password uint32) Option {
	return func(d *Device) {
		d.password = password
	}
}

// WithClock sets the clock used for read timeouts.
func WithClock(clock timeutil.Clock) Option {
	return func(d *Device) {
		d.clock = clock
	}
}

// New creates a Device over the given port. The zero password and the
// factory address 0xFFFFFFFF are used unless overridden.
func New(port transport.Port, opts ...Option) *Device {
	d := &Device{
		port:    port,
		address: protocol.DefaultAddress,
		clock:   timeutil.RealClock{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.reader = transport.NewReader(port, d.clock)
	return d
}

// Address returns the module address the device frames with.
func (d *Device) Address() uint32 {
	return d.address
}

// Exchange sends one command payload and decodes the resulting Ack frame.
// It returns the confirmation code and any bytes following it in the Ack
// payload. A frame of any other identifier in response is a protocol error.
func (d *Device) Exchange(payload []byte) (code byte, data []byte, err error) {
	if err := protocol.Write(d.port, d.address, protocol.Packet{
		Kind:    protocol.KindCommand,
		Payload: payload,
	}); err != nil {
		return 0, nil, err
	}

	pkt, err := protocol.Read(d.reader)
	if err != nil {
		return 0, nil, err
	}
	if pkt.Kind != protocol.KindAck {
		return 0, nil, fmt.Errorf("expected ack packet, got identifier 0x%02X", pkt.Kind)
	}
	if len(pkt.Payload) == 0 {
		return 0, nil, fmt.Errorf("ack packet with empty payload")
	}
	return pkt.Payload[0], pkt.Payload[1:], nil
}

// VerifyPassword checks the module password. It is the conventional first
// exchange after opening the port, doubling as a liveness probe.
func (d *Device) VerifyPassword() error {
	payload := make([]byte, 5)
	payload[0] = protocol.CmdVfyPwd
	binary.BigEndian.PutUint32(payload[1:], d.password)

	code, _, err := d.Exchange(payload)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if code != protocol.StatusOK {
		return &protocol.StatusError{Op: "verify password", Code: code}
	}
	return nil
}

// CaptureImage asks the sensor to scan a finger into its image buffer and
// returns the confirmation code. StatusNoFinger is an expected outcome
// while polling, so it is reported as a code rather than an error.
func (d *Device) CaptureImage() (byte, error) {
	code, _, err := d.Exchange([]byte{protocol.CmdGenImg})
	if err != nil {
		return 0, fmt.Errorf("capture image: %w", err)
	}
	return code, nil
}

// Convert turns the captured image into a character file in the given slot
// (1 or 2) and returns the confirmation code. Quality failures (messy
// image, too few features) are reported as codes for the caller's retry
// policy.
func (d *Device) Convert(slot byte) (byte, error) {
	code, _, err := d.Exchange([]byte{protocol.CmdImg2Tz, slot})
	if err != nil {
		return 0, fmt.Errorf("convert image: %w", err)
	}
	return code, nil
}

// CreateModel combines the character files in slots 1 and 2 into a single
// template model, left in both slots. StatusEnrollMismatch means the two
// scans were not the same finger.
func (d *Device) CreateModel() (byte, error) {
	code, _, err := d.Exchange([]byte{protocol.CmdRegModel})
	if err != nil {
		return 0, fmt.Errorf("create model: %w", err)
	}
	return code, nil
}

// Match compares character buffers 1 and 2 on the sensor. On StatusOK the
// confidence score from the Ack's two result bytes is returned; the score
// is advisory and carries no accept threshold of its own.
func (d *Device) Match() (code byte, score uint16, err error) {
	code, data, err := d.Exchange([]byte{protocol.CmdMatch})
	if err != nil {
		return 0, 0, fmt.Errorf("match: %w", err)
	}
	if code == protocol.StatusOK && len(data) >= 2 {
		score = binary.BigEndian.Uint16(data[:2])
	}
	return code, score, nil
}
