package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClockAdvance(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, clock.Since(start))
}

func TestMockClockSleepAdvances(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	clock.Sleep(50 * time.Millisecond)
	clock.Sleep(100 * time.Millisecond)

	assert.Equal(t, 150*time.Millisecond, clock.Since(start))
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 100 * time.Millisecond}, clock.Sleeps())
}

func TestRealClockSince(t *testing.T) {
	t.Parallel()

	clock := RealClock{}
	before := clock.Now()
	assert.GreaterOrEqual(t, clock.Since(before), time.Duration(0))
}
