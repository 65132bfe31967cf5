package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmptyConfigDefaults(t *testing.T) {
	cfg := Empty()

	if cfg.GetSerialPort() != "/dev/ttyUSB0" {
		t.Errorf("GetSerialPort() = %q, want /dev/ttyUSB0", cfg.GetSerialPort())
	}
	if cfg.GetBaudRate() != 57600 {
		t.Errorf("GetBaudRate() = %d, want 57600", cfg.GetBaudRate())
	}
	if cfg.GetSensorAddress() != 0xFFFFFFFF {
		t.Errorf("GetSensorAddress() = %#x, want 0xFFFFFFFF", cfg.GetSensorAddress())
	}
	if cfg.GetSensorPassword() != 0 {
		t.Errorf("GetSensorPassword() = %d, want 0", cfg.GetSensorPassword())
	}
	if cfg.GetDatabasePath() != "fingermark.db" {
		t.Errorf("GetDatabasePath() = %q, want fingermark.db", cfg.GetDatabasePath())
	}
	if cfg.GetCaptureAttempts() != 200 {
		t.Errorf("GetCaptureAttempts() = %d, want 200", cfg.GetCaptureAttempts())
	}
	if cfg.GetCaptureInterval() != 50*time.Millisecond {
		t.Errorf("GetCaptureInterval() = %v, want 50ms", cfg.GetCaptureInterval())
	}
	if cfg.GetRemovalSettle() != 2*time.Second {
		t.Errorf("GetRemovalSettle() = %v, want 2s", cfg.GetRemovalSettle())
	}
	if cfg.GetChunkSize() != 128 {
		t.Errorf("GetChunkSize() = %d, want 128", cfg.GetChunkSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Errorf("GetLogLevel() = %q, want info", cfg.GetLogLevel())
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "serial_port": "/dev/ttyAMA0",
  "baud_rate": 115200,
  "sensor_password": 1234,
  "database_path": "/var/lib/fingermark/templates.db",
  "capture_interval": "25ms",
  "chunk_size": 64,
  "log_level": "debug"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetSerialPort() != "/dev/ttyAMA0" {
		t.Errorf("GetSerialPort() = %q, want /dev/ttyAMA0", cfg.GetSerialPort())
	}
	if cfg.GetBaudRate() != 115200 {
		t.Errorf("GetBaudRate() = %d, want 115200", cfg.GetBaudRate())
	}
	if cfg.GetSensorPassword() != 1234 {
		t.Errorf("GetSensorPassword() = %d, want 1234", cfg.GetSensorPassword())
	}
	if cfg.GetDatabasePath() != "/var/lib/fingermark/templates.db" {
		t.Errorf("GetDatabasePath() = %q", cfg.GetDatabasePath())
	}
	if cfg.GetCaptureInterval() != 25*time.Millisecond {
		t.Errorf("GetCaptureInterval() = %v, want 25ms", cfg.GetCaptureInterval())
	}
	if cfg.GetChunkSize() != 64 {
		t.Errorf("GetChunkSize() = %d, want 64", cfg.GetChunkSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("GetLogLevel() = %q, want debug", cfg.GetLogLevel())
	}

	// Unset fields keep their defaults.
	if cfg.GetSensorAddress() != 0xFFFFFFFF {
		t.Errorf("GetSensorAddress() = %#x, want default", cfg.GetSensorAddress())
	}
	if cfg.GetCaptureAttempts() != 200 {
		t.Errorf("GetCaptureAttempts() = %d, want default 200", cfg.GetCaptureAttempts())
	}
}

func TestLoadConfigRejectsNonJSON(t *testing.T) {
	if _, err := Load("config.yaml"); err == nil {
		t.Error("Expected error for non-.json extension")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"negative baud rate", `{"baud_rate": -1}`},
		{"zero capture attempts", `{"capture_attempts": 0}`},
		{"bad capture interval", `{"capture_interval": "fast"}`},
		{"bad removal settle", `{"removal_settle": "later"}`},
		{"oversized chunk", `{"chunk_size": 1024}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "cfg.json")
			if err := os.WriteFile(configPath, []byte(tt.json), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}
			if _, err := Load(configPath); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}
