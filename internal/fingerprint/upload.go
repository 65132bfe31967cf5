package fingerprint

import (
	"fmt"

	"github.com/banshee-data/fingermark/internal/protocol"
)

// UploadTemplate pushes a template into the given character buffer slot so
// the sensor can use it as a match operand.
//
// The sensor first acknowledges the transfer command, then accepts the
// template as a sequence of Data packets of at most ChunkSize bytes; the
// chunk that completes the template is sent as EndData instead. A short
// pacing pause between chunks keeps slower sensors from dropping bytes.
func (d *Device) UploadTemplate(tpl Template, slot byte) error {
	if slot != SlotPrimary && slot != SlotCandidate {
		return fmt.Errorf("invalid character buffer slot %d", slot)
	}

	code, _, err := d.driver.Exchange([]byte{protocol.CmdDownChar, slot})
	if err != nil {
		return fmt.Errorf("request template store: %w", err)
	}
	if code != protocol.StatusOK {
		return &protocol.StatusError{Op: "template store request", Code: code}
	}

	d.logDebug("template store acknowledged, sending data packets",
		"slot", slot, "chunk_size", d.cfg.ChunkSize)

	packets := 0
	for off := 0; off < TemplateSize; off += d.cfg.ChunkSize {
		end := off + d.cfg.ChunkSize
		kind := protocol.KindData
		if end >= TemplateSize {
			end = TemplateSize
			kind = protocol.KindEndData
		}

		if err := protocol.Write(d.port, d.address, protocol.Packet{
			Kind:    kind,
			Payload: tpl[off:end],
		}); err != nil {
			return fmt.Errorf("send template chunk at %d: %w", off, err)
		}

		packets++
		d.reportProgress(Progress{
			Direction: DirectionUpload,
			Bytes:     end,
			Total:     TemplateSize,
			Packets:   packets,
		})

		if end < TemplateSize {
			d.clock.Sleep(d.cfg.ChunkDelay)
		}
	}

	return nil
}
