package fingerprint

// Logger is an optional logging interface that can be provided to the
// Device. Protocol and workflow code never prints on its own; everything
// diagnostic flows through here.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}

// Direction distinguishes the two template transfer paths.
type Direction int

const (
	// DirectionDownload moves template bytes out of the sensor.
	DirectionDownload Direction = iota

	// DirectionUpload moves template bytes into the sensor.
	DirectionUpload
)

func (d Direction) String() string {
	if d == DirectionUpload {
		return "upload"
	}
	return "download"
}

// Progress describes the state of a template transfer after one packet.
type Progress struct {
	Direction Direction

	// Bytes is the number of template bytes moved so far.
	Bytes int

	// Total is the full template size.
	Total int

	// Packets is the number of data packets handled so far.
	Packets int
}

// ProgressFunc is called after every transferred packet. Implementations
// should return quickly; the sensor does not wait for slow observers.
type ProgressFunc func(Progress)

// Prompt identifies a moment where the workflows need the user to act.
type Prompt int

const (
	// PromptPlaceFinger asks for a finger on the sensor window.
	PromptPlaceFinger Prompt = iota

	// PromptPlaceFingerAgain asks for the same finger a second time.
	PromptPlaceFingerAgain

	// PromptRemoveFinger asks for the finger to be lifted.
	PromptRemoveFinger

	// PromptKeepFinger asks for the finger to stay put for a retry.
	PromptKeepFinger
)

func (p Prompt) String() string {
	switch p {
	case PromptPlaceFingerAgain:
		return "place the same finger again"
	case PromptRemoveFinger:
		return "remove finger"
	case PromptKeepFinger:
		return "keep finger on the sensor"
	default:
		return "place finger on the sensor"
	}
}

// PromptFunc receives user guidance events.
type PromptFunc func(Prompt)

func (d *Device) logDebug(msg string, keysAndValues ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, keysAndValues...)
	}
}

func (d *Device) logInfo(msg string, keysAndValues ...any) {
	if d.logger != nil {
		d.logger.Info(msg, keysAndValues...)
	}
}

func (d *Device) reportProgress(p Progress) {
	if d.progress != nil {
		d.progress(p)
	}
}

func (d *Device) promptUser(p Prompt) {
	if d.prompt != nil {
		d.prompt(p)
	}
}
