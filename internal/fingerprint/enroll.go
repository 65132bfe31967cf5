package fingerprint

import (
	"fmt"

	"github.com/banshee-data/fingermark/internal/protocol"
)

// Enroll captures the same finger twice, has the sensor merge the two
// scans into a model, and downloads the resulting template for external
// storage. The sensor keeps nothing: the caller owns the returned bytes.
//
// Enrollment is linear with bounded waits at each capture step. A failed
// scan pair (ErrEnrollMismatch) is terminal for this attempt; the caller
// decides whether to start over.
func (d *Device) Enroll() (*Transfer, error) {
	d.promptUser(PromptPlaceFinger)
	if err := d.waitFinger(); err != nil {
		return nil, err
	}
	if err := d.convertScan(SlotPrimary); err != nil {
		return nil, err
	}

	d.promptUser(PromptRemoveFinger)
	d.clock.Sleep(d.cfg.RemovalSettle)
	if err := d.drainFinger(); err != nil {
		return nil, err
	}

	d.promptUser(PromptPlaceFingerAgain)
	if err := d.waitFinger(); err != nil {
		return nil, err
	}
	if err := d.convertScan(SlotCandidate); err != nil {
		return nil, err
	}

	code, err := d.driver.CreateModel()
	if err != nil {
		return nil, err
	}
	switch code {
	case protocol.StatusOK:
		d.logInfo("enrollment scans merged into model")
	case protocol.StatusEnrollMismatch:
		return nil, ErrEnrollMismatch
	default:
		return nil, &protocol.StatusError{Op: "create model", Code: code}
	}

	// Give the sensor a moment to stage the model before streaming it.
	d.clock.Sleep(d.cfg.ModelSettle)

	transfer, err := d.DownloadTemplate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	if err := d.drainFinger(); err != nil {
		return nil, err
	}
	return transfer, nil
}

// convertScan converts the captured image into the given slot. On a
// conversion failure the finger is drained first so the sensor is idle
// when the error reaches the caller.
func (d *Device) convertScan(slot byte) error {
	code, err := d.driver.Convert(slot)
	if err != nil {
		return err
	}
	if code != protocol.StatusOK {
		if err := d.drainFinger(); err != nil {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConversionFailed,
			&protocol.StatusError{Op: "convert scan", Code: code})
	}
	return nil
}

// CaptureDigest captures a single finger, downloads its template, and
// returns the template's digest alongside the transfer. Nothing is stored
// on the sensor or retained by this package.
func (d *Device) CaptureDigest() (Digest, *Transfer, error) {
	d.promptUser(PromptPlaceFinger)
	if err := d.waitFinger(); err != nil {
		return Digest{}, nil, err
	}
	if err := d.convertScan(SlotPrimary); err != nil {
		return Digest{}, nil, err
	}

	d.clock.Sleep(d.cfg.ModelSettle)

	transfer, err := d.DownloadTemplate()
	if err != nil {
		if derr := d.drainFinger(); derr != nil {
			return Digest{}, nil, derr
		}
		return Digest{}, nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	if err := d.drainFinger(); err != nil {
		return Digest{}, nil, err
	}
	return Hash(transfer.Template), transfer, nil
}
