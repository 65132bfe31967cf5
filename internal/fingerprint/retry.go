package fingerprint

import (
	"time"

	"github.com/banshee-data/fingermark/internal/protocol"
)

// pollUntil runs step every interval until it reports done, the attempt
// budget runs out, or step fails. The budget exhausting returns
// ErrFingerTimeout, the common meaning of "the user never acted".
func (d *Device) pollUntil(maxAttempts int, interval time.Duration, step func() (bool, error)) error {
	for i := 0; i < maxAttempts; i++ {
		done, err := step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		d.clock.Sleep(interval)
	}
	return ErrFingerTimeout
}

// waitFinger polls the sensor until a finger is captured into the image
// buffer.
func (d *Device) waitFinger() error {
	return d.pollUntil(d.cfg.CaptureAttempts, d.cfg.CaptureInterval, func() (bool, error) {
		code, err := d.driver.CaptureImage()
		if err != nil {
			return false, err
		}
		return code == protocol.StatusOK, nil
	})
}

// drainFinger blocks until the sensor reports no finger present, leaving
// the device idle for the next operation. It does not give up on its own;
// the loop only ends on removal or a transport failure.
func (d *Device) drainFinger() error {
	for {
		code, err := d.driver.CaptureImage()
		if err != nil {
			return err
		}
		if code == protocol.StatusNoFinger {
			return nil
		}
		d.clock.Sleep(d.cfg.RemovalInterval)
	}
}
