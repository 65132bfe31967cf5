package sensor

import (
	"encoding/binary"
	"fmt"

	"github.com/banshee-data/fingermark/internal/protocol"
)

// Parameters is the sensor's system parameter block as returned by the
// ReadSysPara command.
type Parameters struct {
	// StatusRegister is the raw device status word.
	StatusRegister uint16

	// SystemID identifies the sensor model.
	SystemID uint16

	// Capacity is the number of on-device template slots.
	Capacity uint16

	// SecurityLevel is the configured match threshold class (1..5).
	SecurityLevel uint16

	// Address is the module address stored on the device.
	Address uint32

	// PacketSizeCode encodes the data packet size: 0=32, 1=64, 2=128, 3=256.
	PacketSizeCode uint16

	// BaudDivisor is the configured baud rate divided by 9600.
	BaudDivisor uint16
}

// PacketSize returns the data packet size in bytes implied by the packet
// size code.
func (p *Parameters) PacketSize() int {
	return 32 << p.PacketSizeCode
}

// BaudRate returns the configured link speed in bits per second.
func (p *Parameters) BaudRate() int {
	return int(p.BaudDivisor) * 9600
}

const sysParaSize = 16

// ReadParameters reads the system parameter block from the sensor.
func (d *Device) ReadParameters() (*Parameters, error) {
	code, data, err := d.Exchange([]byte{protocol.CmdReadSysPara})
	if err != nil {
		return nil, fmt.Errorf("read parameters: %w", err)
	}
	if code != protocol.StatusOK {
		return nil, &protocol.StatusError{Op: "read parameters", Code: code}
	}
	if len(data) < sysParaSize {
		return nil, fmt.Errorf("read parameters: short response: %d bytes", len(data))
	}

	return &Parameters{
		StatusRegister: binary.BigEndian.Uint16(data[0:2]),
		SystemID:       binary.BigEndian.Uint16(data[2:4]),
		Capacity:       binary.BigEndian.Uint16(data[4:6]),
		SecurityLevel:  binary.BigEndian.Uint16(data[6:8]),
		Address:        binary.BigEndian.Uint32(data[8:12]),
		PacketSizeCode: binary.BigEndian.Uint16(data[12:14]),
		BaudDivisor:    binary.BigEndian.Uint16(data[14:16]),
	}, nil
}

// TemplateCount returns the number of templates stored on the sensor.
func (d *Device) TemplateCount() (uint16, error) {
	code, data, err := d.Exchange([]byte{protocol.CmdTemplateNum})
	if err != nil {
		return 0, fmt.Errorf("template count: %w", err)
	}
	if code != protocol.StatusOK {
		return 0, &protocol.StatusError{Op: "template count", Code: code}
	}
	if len(data) < 2 {
		return 0, fmt.Errorf("template count: short response: %d bytes", len(data))
	}
	return binary.BigEndian.Uint16(data[:2]), nil
}
