package fingerprint

import (
	"fmt"

	"github.com/banshee-data/fingermark/internal/protocol"
)

// MatchResult reports the outcome of comparing a live finger against a
// stored template.
type MatchResult struct {
	// Score is the sensor's similarity score. Only meaningful when the
	// match succeeded.
	Score uint16

	// Retried is true when the first comparison reported a mismatch and
	// the match succeeded on the second attempt with the finger held in
	// place.
	Retried bool
}

// Verify captures a live finger, uploads the stored template to the
// candidate slot, and asks the sensor to compare the two. A mismatch on
// the first comparison gets exactly one retry with a fresh scan of the
// same finger; a second mismatch is ErrNoMatch.
func (d *Device) Verify(tpl Template) (*MatchResult, error) {
	result, err := d.verify(tpl)
	if derr := d.drainFinger(); derr != nil && err == nil {
		return nil, derr
	}
	return result, err
}

func (d *Device) verify(tpl Template) (*MatchResult, error) {
	d.promptUser(PromptPlaceFinger)
	if err := d.acquireScan(); err != nil {
		return nil, err
	}

	if err := d.UploadTemplate(tpl, SlotCandidate); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	code, score, err := d.driver.Match()
	if err != nil {
		return nil, err
	}
	switch code {
	case protocol.StatusOK:
		d.logInfo("finger matched", "score", score)
		return &MatchResult{Score: score}, nil
	case protocol.StatusEnrollMismatch:
		d.logDebug("first comparison mismatched, retrying once")
	default:
		return nil, ErrNoMatch
	}

	// One retry: rescan the same finger without re-uploading the
	// candidate template, which survives in its slot.
	d.clock.Sleep(d.cfg.RetryDelay)
	d.promptUser(PromptKeepFinger)
	if err := d.rescan(); err != nil {
		return nil, err
	}

	code, score, err = d.driver.Match()
	if err != nil {
		return nil, err
	}
	if code != protocol.StatusOK {
		return nil, ErrNoMatch
	}
	d.logInfo("finger matched on retry", "score", score)
	return &MatchResult{Score: score, Retried: true}, nil
}

// acquireScan captures and converts a finger image, tolerating poor
// quality captures. Messy images and failed feature extraction get a
// longer pause before the next attempt; everything shares one attempt
// budget so a permanently smudged platen still times out.
func (d *Device) acquireScan() error {
	return d.pollUntil(d.cfg.CaptureAttempts, d.cfg.CaptureInterval, func() (bool, error) {
		code, err := d.driver.CaptureImage()
		if err != nil {
			return false, err
		}
		switch code {
		case protocol.StatusOK:
		case protocol.StatusNoFinger:
			return false, nil
		default:
			return false, &protocol.StatusError{Op: "capture image", Code: code}
		}

		code, err = d.driver.Convert(SlotPrimary)
		if err != nil {
			return false, err
		}
		switch code {
		case protocol.StatusOK:
			return true, nil
		case protocol.StatusImageMess, protocol.StatusFeatureFail:
			d.logDebug("low quality scan, waiting for a better press", "status", protocol.StatusName(code))
			d.clock.Sleep(d.cfg.QualityRetryDelay)
			return false, nil
		default:
			return false, fmt.Errorf("%w: %w", ErrConversionFailed,
				&protocol.StatusError{Op: "convert scan", Code: code})
		}
	})
}

// rescan re-captures the finger still on the platen for the retry
// comparison.
func (d *Device) rescan() error {
	if err := d.pollUntil(d.cfg.RetryAttempts, d.cfg.CaptureInterval, func() (bool, error) {
		code, err := d.driver.CaptureImage()
		if err != nil {
			return false, err
		}
		return code == protocol.StatusOK, nil
	}); err != nil {
		return err
	}

	code, err := d.driver.Convert(SlotPrimary)
	if err != nil {
		return err
	}
	if code != protocol.StatusOK {
		return fmt.Errorf("%w: %w", ErrConversionFailed,
			&protocol.StatusError{Op: "convert scan", Code: code})
	}
	return nil
}
