package fingerprint

import (
	"errors"
	"fmt"

	"github.com/banshee-data/fingermark/internal/protocol"
)

// Transfer is the result of pulling one template off the sensor.
type Transfer struct {
	// Template holds the transferred bytes, zero-filled past Received.
	Template Template

	// Received is the number of payload bytes actually taken off the wire.
	Received int

	// Packets is the number of data packets that made up the stream.
	Packets int

	// Truncated reports that the sensor delivered fewer than TemplateSize
	// bytes and the remainder was zero-filled. The sensor family this
	// protocol targets goes quiet mid-stream on occasion; a truncated
	// transfer is returned as a success so callers can decide whether a
	// padded template is acceptable for their use.
	Truncated bool
}

// DownloadTemplate asks the sensor to stream the character buffer out and
// reassembles the packet stream into a full template.
//
// After the command is acknowledged the sensor emits a sequence of Data
// packets closed by an EndData packet. The stream ends when the template
// is full or EndData arrives, whichever comes first. The line going silent
// before any data is a hard timeout; going silent after some data was read
// ends the transfer as truncated.
func (d *Device) DownloadTemplate() (*Transfer, error) {
	code, _, err := d.driver.Exchange([]byte{protocol.CmdUpChar, SlotPrimary})
	if err != nil {
		return nil, fmt.Errorf("request template stream: %w", err)
	}
	if code != protocol.StatusOK {
		return nil, &protocol.StatusError{Op: "template stream request", Code: code}
	}

	d.logDebug("template stream acknowledged, reading data packets")
	return d.readTemplateStream()
}

func (d *Device) readTemplateStream() (*Transfer, error) {
	t := &Transfer{}

	for t.Received < TemplateSize {
		pkt, err := protocol.Read(d.reader)
		if err != nil {
			if errors.Is(err, protocol.ErrNoPacket) && t.Received > 0 {
				// The sensor stopped mid-stream. Treat the bytes in
				// hand as the whole template, remainder zeroed.
				d.logDebug("stream went quiet, keeping partial template",
					"received", t.Received)
				t.Truncated = true
				return t, nil
			}
			return nil, err
		}
		t.Packets++

		switch pkt.Kind {
		case protocol.KindData, protocol.KindEndData:
			n := copy(t.Template[t.Received:], pkt.Payload)
			t.Received += n
			d.reportProgress(Progress{
				Direction: DirectionDownload,
				Bytes:     t.Received,
				Total:     TemplateSize,
				Packets:   t.Packets,
			})
			if pkt.Kind == protocol.KindEndData {
				if t.Received < TemplateSize {
					t.Truncated = true
				}
				return t, nil
			}
		case protocol.KindAck:
			// An ack mid-stream means the sensor abandoned the transfer.
			return nil, ErrUnexpectedAck
		default:
			return nil, fmt.Errorf("%w: 0x%02X", ErrUnexpectedPacket, pkt.Kind)
		}
	}

	return t, nil
}
