package fingerprint

import "errors"

var (
	// ErrFingerTimeout is returned when no usable finger appeared within
	// the capture poll budget.
	ErrFingerTimeout = errors.New("fingerprint: timed out waiting for finger")

	// ErrConversionFailed is returned when the sensor could not turn a
	// captured image into a character file.
	ErrConversionFailed = errors.New("fingerprint: image conversion failed")

	// ErrEnrollMismatch is returned when the two enrollment scans do not
	// belong to the same finger. The caller may restart enrollment.
	ErrEnrollMismatch = errors.New("fingerprint: enrollment scans do not match")

	// ErrDownloadFailed is returned when a captured template could not be
	// pulled off the sensor.
	ErrDownloadFailed = errors.New("fingerprint: template download failed")

	// ErrUploadFailed is returned when a stored template could not be
	// pushed into the sensor for comparison.
	ErrUploadFailed = errors.New("fingerprint: template upload failed")

	// ErrNoMatch is returned when a live finger does not match the stored
	// template.
	ErrNoMatch = errors.New("fingerprint: no match")

	// ErrUnexpectedAck is returned when an acknowledge packet arrives in
	// the middle of a data stream.
	ErrUnexpectedAck = errors.New("fingerprint: unexpected ack packet in data stream")

	// ErrUnexpectedPacket is returned when a data stream carries a packet
	// of an unknown identifier.
	ErrUnexpectedPacket = errors.New("fingerprint: unexpected packet type in data stream")
)
