package main

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFlagsOverrideDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sf := registerSessionFlags(fs)
	require.NoError(t, fs.Parse([]string{"-port", "/dev/ttyAMA0", "-baud", "115200", "-db", "custom.db"}))

	cfg, err := sf.resolve()
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyAMA0", cfg.GetSerialPort())
	assert.Equal(t, 115200, cfg.GetBaudRate())
	assert.Equal(t, "custom.db", cfg.GetDatabasePath())
}

func TestResolveDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sf := registerSessionFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := sf.resolve()
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.GetSerialPort())
	assert.Equal(t, 57600, cfg.GetBaudRate())
}

func TestFingerprintConfigProjection(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sf := registerSessionFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := sf.resolve()
	require.NoError(t, err)

	wf := fingerprintConfig(cfg)
	assert.Equal(t, 200, wf.CaptureAttempts)
	assert.Equal(t, 50*time.Millisecond, wf.CaptureInterval)
	assert.Equal(t, 2*time.Second, wf.RemovalSettle)
	assert.Equal(t, 128, wf.ChunkSize)
}

func TestKVFields(t *testing.T) {
	fields := kvFields([]any{"bytes", 256, "direction", "download"})
	assert.Equal(t, 256, fields["bytes"])
	assert.Equal(t, "download", fields["direction"])

	// An odd trailing key is dropped rather than panicking.
	fields = kvFields([]any{"only-key"})
	assert.Empty(t, fields)
}
