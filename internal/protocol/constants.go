// Package protocol implements the byte-level packet framing used by optical
// fingerprint sensors of the ZFM/R50x family: a fixed two-byte header, a
// four-byte module address, a packet identifier, a big-endian length that
// covers the payload plus a two-byte checksum, and the checksum itself.
package protocol

import "time"

// Frame constants.
const (
	// HeaderHigh and HeaderLow form the fixed packet start marker 0xEF01.
	HeaderHigh = 0xEF
	HeaderLow  = 0x01

	// DefaultAddress is the module address shipped from the factory. The
	// address is echoed in every frame but carries no routing semantics on
	// a point-to-point serial link.
	DefaultAddress uint32 = 0xFFFFFFFF

	// LengthOverhead is the number of bytes the length field counts beyond
	// the payload: the trailing 16-bit checksum.
	LengthOverhead = 2

	// MaxPayload is the largest payload a single frame can carry given the
	// 16-bit length field.
	MaxPayload = 0xFFFF - LengthOverhead
)

// Packet identifiers.
const (
	// KindCommand marks a command packet from host to sensor.
	KindCommand byte = 0x01

	// KindData marks an intermediate data packet of a multi-frame transfer.
	KindData byte = 0x02

	// KindAck marks an acknowledgement packet carrying a confirmation code.
	KindAck byte = 0x07

	// KindEndData marks the final data packet of a multi-frame transfer.
	KindEndData byte = 0x08
)

// Command codes (first payload byte of a command packet).
const (
	CmdGenImg      byte = 0x01 // capture an image into the image buffer
	CmdImg2Tz      byte = 0x02 // convert the image buffer into a character file
	CmdMatch       byte = 0x03 // compare character buffers 1 and 2
	CmdRegModel    byte = 0x05 // combine character buffers 1+2 into a model
	CmdUpChar      byte = 0x08 // stream a character buffer out of the sensor
	CmdDownChar    byte = 0x09 // stream a template into a character buffer
	CmdReadSysPara byte = 0x0F // read the system parameter block
	CmdVfyPwd      byte = 0x13 // verify the module password
	CmdTemplateNum byte = 0x1D // read the count of stored templates
)

// Confirmation codes returned in the first byte of an Ack payload.
const (
	StatusOK             byte = 0x00
	StatusPacketErr      byte = 0x01
	StatusNoFinger       byte = 0x02
	StatusImageFail      byte = 0x03
	StatusImageMess      byte = 0x06
	StatusFeatureFail    byte = 0x07
	StatusNoMatch        byte = 0x08
	StatusNotFound       byte = 0x09
	StatusEnrollMismatch byte = 0x0A
	StatusBadLocation    byte = 0x0B
	StatusUploadFail     byte = 0x0D
	StatusDownloadFail   byte = 0x0E
	StatusBadPassword    byte = 0x13
	StatusInvalidImage   byte = 0x15
	StatusFlashErr       byte = 0x18
)

// Decode timeouts. A sensor may take a while to start emitting a packet, so
// the first header byte gets a generous budget; once a frame has started the
// remaining fields must follow promptly.
const (
	// HeaderTimeout bounds the wait for the first byte of a new packet.
	HeaderTimeout = 2 * time.Second

	// FieldTimeout bounds every subsequent byte of the same packet.
	FieldTimeout = 100 * time.Millisecond
)

// StatusName returns a human-readable name for a confirmation code.
func StatusName(code byte) string {
	switch code {
	case StatusOK:
		return "ok"
	case StatusPacketErr:
		return "packet receive error"
	case StatusNoFinger:
		return "no finger on sensor"
	case StatusImageFail:
		return "failed to capture image"
	case StatusImageMess:
		return "image too messy"
	case StatusFeatureFail:
		return "too few features"
	case StatusNoMatch:
		return "fingers do not match"
	case StatusNotFound:
		return "no matching template found"
	case StatusEnrollMismatch:
		return "scans do not belong to the same finger"
	case StatusBadLocation:
		return "invalid template location"
	case StatusUploadFail:
		return "template transfer out of sensor failed"
	case StatusDownloadFail:
		return "template transfer into sensor failed"
	case StatusBadPassword:
		return "wrong password"
	case StatusInvalidImage:
		return "invalid image"
	case StatusFlashErr:
		return "flash write error"
	default:
		return "unknown confirmation code"
	}
}
