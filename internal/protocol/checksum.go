package protocol

// Checksum computes the 16-bit frame checksum: the sum of the packet
// identifier, the length field, and every payload byte, truncated to 16
// bits. The header and address bytes are not covered.
//
// Receivers of this protocol family conventionally read the checksum off
// the wire without verifying it; this codec computes it on encode only.
func Checksum(kind byte, payload []byte) uint16 {
	sum := uint16(kind) + uint16(len(payload)+LengthOverhead)
	for _, b := range payload {
		sum += uint16(b)
	}
	return sum
}
