// Package fingerprint implements template transfer and the enrollment and
// matching workflows for optical fingerprint sensors. The sensor's native
// command set can capture, convert, and match fingerprints on-device but
// cannot hand the raw template bytes to the host; this package adds that
// missing transfer path by speaking the data-packet stream directly over
// the serial transport, and builds enrollment and verification on top.
package fingerprint

import (
	"time"

	"github.com/banshee-data/fingermark/internal/protocol"
	"github.com/banshee-data/fingermark/internal/timeutil"
	"github.com/banshee-data/fingermark/internal/transport"
)

const (
	// TemplateSize is the fixed size of a sensor template in bytes.
	// Transfers always produce exactly this many bytes; short transfers
	// are zero-filled to capacity.
	TemplateSize = 512

	// DigestSize is the size of a template digest in bytes.
	DigestSize = 32

	// DefaultChunkSize is the data packet payload size used when pushing
	// a template into the sensor.
	DefaultChunkSize = 128
)

// Character buffer slots on the sensor. Live captures convert into the
// primary slot; stored templates upload into the candidate slot so the
// sensor's match command can compare the two.
const (
	SlotPrimary   byte = 1
	SlotCandidate byte = 2
)

// Template is a sensor feature encoding, moved byte-for-byte and never
// interpreted by this package.
type Template [TemplateSize]byte

// Driver is the sensor command surface the workflows depend on. It is
// implemented by sensor.Device; tests substitute a scripted fake.
type Driver interface {
	// CaptureImage scans a finger into the image buffer and returns the
	// confirmation code (StatusNoFinger while no finger is present).
	CaptureImage() (byte, error)

	// Convert turns the image buffer into a character file in the given
	// slot and returns the confirmation code.
	Convert(slot byte) (byte, error)

	// CreateModel merges the two character files into one model.
	CreateModel() (byte, error)

	// Match compares the two character buffers and returns the
	// confirmation code plus the confidence score when matched.
	Match() (code byte, score uint16, err error)

	// Exchange sends a raw command payload and returns the Ack's
	// confirmation code and trailing bytes.
	Exchange(payload []byte) (code byte, data []byte, err error)
}

// Config holds the tunable timing and pacing parameters of the workflows.
// The defaults reproduce the sensor's documented behaviour; they exist as
// knobs mainly so tests can compress the poll loops.
type Config struct {
	// CaptureAttempts bounds the polls while waiting for a finger.
	CaptureAttempts int

	// CaptureInterval is the delay between finger-presence polls.
	CaptureInterval time.Duration

	// QualityRetryDelay is the pause after a messy or featureless scan
	// before the next capture attempt during matching.
	QualityRetryDelay time.Duration

	// RemovalInterval is the delay between polls while waiting for the
	// finger to be lifted.
	RemovalInterval time.Duration

	// RemovalSettle is the grace period granted after prompting for
	// removal between the two enrollment scans.
	RemovalSettle time.Duration

	// ModelSettle is the pause after model creation before the template
	// download starts; the sensor needs a moment to stage the data.
	ModelSettle time.Duration

	// RetryAttempts bounds the finger-presence polls of the single
	// automatic match retry.
	RetryAttempts int

	// RetryDelay is the pause before the automatic match retry.
	RetryDelay time.Duration

	// ChunkSize is the data packet payload size for uploads.
	ChunkSize int

	// ChunkDelay is the pacing pause between upload chunks.
	ChunkDelay time.Duration
}

// DefaultConfig returns the workflow timing defaults.
func DefaultConfig() Config {
	return Config{
		CaptureAttempts:   200,
		CaptureInterval:   50 * time.Millisecond,
		QualityRetryDelay: 500 * time.Millisecond,
		RemovalInterval:   100 * time.Millisecond,
		RemovalSettle:     2 * time.Second,
		ModelSettle:       200 * time.Millisecond,
		RetryAttempts:     100,
		RetryDelay:        500 * time.Millisecond,
		ChunkSize:         DefaultChunkSize,
		ChunkDelay:        20 * time.Millisecond,
	}
}

// Device runs template transfers and capture workflows against one sensor.
// It borrows the serial port and the driver from the caller for the
// duration of each operation and retains no template data afterwards.
//
// Device is not safe for concurrent use: operations share the transport
// and the sensor's internal buffers.
type Device struct {
	driver  Driver
	port    transport.Port
	reader  *transport.Reader
	address uint32
	clock   timeutil.Clock
	cfg     Config

	logger   Logger
	progress ProgressFunc
	prompt   PromptFunc
}

// Option configures a Device.
type Option func(*Device)

// WithTransport sets the serial port used for the raw data packet stream.
// Without a port every transfer fails with transport.ErrNoPort.
func WithTransport(port transport.Port) Option {
	return func(d *Device) {
		d.port = port
	}
}

// WithAddress sets the module address echoed in outbound data packets.
func WithAddress(address uint32) Option {
	return func(d *Device) {
		d.address = address
	}
}

// WithClock sets the clock behind every timeout and pacing delay.
func WithClock(clock timeutil.Clock) Option {
	return func(d *Device) {
		d.clock = clock
	}
}

// WithLogger sets a logger for workflow diagnostics.
func WithLogger(logger Logger) Option {
	return func(d *Device) {
		d.logger = logger
	}
}

// WithProgress sets a callback invoked after every transferred packet.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Device) {
		d.progress = fn
	}
}

// WithPrompt sets a callback for user guidance events.
func WithPrompt(fn PromptFunc) Option {
	return func(d *Device) {
		d.prompt = fn
	}
}

// WithConfig replaces the full timing configuration.
func WithConfig(cfg Config) Option {
	return func(d *Device) {
		d.cfg = cfg
	}
}

// WithChunkSize sets the upload data packet payload size.
func WithChunkSize(size int) Option {
	return func(d *Device) {
		if size > 0 && size <= protocol.MaxPayload {
			d.cfg.ChunkSize = size
		}
	}
}

// New creates a Device over the given driver. The transport port may be
// supplied here via WithTransport or later via SetTransport.
func New(driver Driver, opts ...Option) *Device {
	d := &Device{
		driver:  driver,
		address: protocol.DefaultAddress,
		clock:   timeutil.RealClock{},
		cfg:     DefaultConfig(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.reader = transport.NewReader(d.port, d.clock)
	return d
}

// SetTransport replaces the serial port used for the data packet stream.
func (d *Device) SetTransport(port transport.Port) {
	d.port = port
	d.reader = transport.NewReader(port, d.clock)
}
