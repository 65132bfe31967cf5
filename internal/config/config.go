// Package config loads the JSON configuration for the fingerprint tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/fingermark/internal/transport"
)

// Config represents the root configuration for the fingerprint tools.
// All fields are optional; the Get* methods provide fallback defaults for
// anything not specified, so partial configs are safe.
type Config struct {
	// Serial transport params
	SerialPort *string `json:"serial_port,omitempty"`
	BaudRate   *int    `json:"baud_rate,omitempty"`

	// Sensor params
	SensorAddress  *uint32 `json:"sensor_address,omitempty"`
	SensorPassword *uint32 `json:"sensor_password,omitempty"`

	// Template store params
	DatabasePath *string `json:"database_path,omitempty"`

	// Workflow timing params (duration strings like "500ms")
	CaptureAttempts *int    `json:"capture_attempts,omitempty"`
	CaptureInterval *string `json:"capture_interval,omitempty"`
	RemovalSettle   *string `json:"removal_settle,omitempty"`
	ChunkSize       *int    `json:"chunk_size,omitempty"`

	// Logging params
	LogLevel *string `json:"log_level,omitempty"`
}

// Empty returns a Config with all fields set to nil.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The file must have a .json
// extension and stay under the max file size.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.BaudRate != nil && *c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %d", *c.BaudRate)
	}

	if c.CaptureAttempts != nil && *c.CaptureAttempts <= 0 {
		return fmt.Errorf("capture_attempts must be positive, got %d", *c.CaptureAttempts)
	}

	if c.CaptureInterval != nil && *c.CaptureInterval != "" {
		if _, err := time.ParseDuration(*c.CaptureInterval); err != nil {
			return fmt.Errorf("invalid capture_interval '%s': %w", *c.CaptureInterval, err)
		}
	}

	if c.RemovalSettle != nil && *c.RemovalSettle != "" {
		if _, err := time.ParseDuration(*c.RemovalSettle); err != nil {
			return fmt.Errorf("invalid removal_settle '%s': %w", *c.RemovalSettle, err)
		}
	}

	if c.ChunkSize != nil && (*c.ChunkSize <= 0 || *c.ChunkSize > 256) {
		return fmt.Errorf("chunk_size must be between 1 and 256, got %d", *c.ChunkSize)
	}

	return nil
}

// GetSerialPort returns the serial_port value or the default.
func (c *Config) GetSerialPort() string {
	if c.SerialPort == nil || *c.SerialPort == "" {
		return "/dev/ttyUSB0"
	}
	return *c.SerialPort
}

// GetBaudRate returns the baud_rate value or the default.
func (c *Config) GetBaudRate() int {
	if c.BaudRate == nil {
		return transport.DefaultBaudRate
	}
	return *c.BaudRate
}

// GetSensorAddress returns the sensor_address value or the default.
func (c *Config) GetSensorAddress() uint32 {
	if c.SensorAddress == nil {
		return 0xFFFFFFFF
	}
	return *c.SensorAddress
}

// GetSensorPassword returns the sensor_password value or the default.
func (c *Config) GetSensorPassword() uint32 {
	if c.SensorPassword == nil {
		return 0
	}
	return *c.SensorPassword
}

// GetDatabasePath returns the database_path value or the default.
func (c *Config) GetDatabasePath() string {
	if c.DatabasePath == nil || *c.DatabasePath == "" {
		return "fingermark.db"
	}
	return *c.DatabasePath
}

// GetCaptureAttempts returns the capture_attempts value or the default.
func (c *Config) GetCaptureAttempts() int {
	if c.CaptureAttempts == nil {
		return 200
	}
	return *c.CaptureAttempts
}

// GetCaptureInterval parses and returns the capture_interval as a duration.
func (c *Config) GetCaptureInterval() time.Duration {
	if c.CaptureInterval == nil || *c.CaptureInterval == "" {
		return 50 * time.Millisecond
	}
	d, err := time.ParseDuration(*c.CaptureInterval)
	if err != nil {
		return 50 * time.Millisecond
	}
	return d
}

// GetRemovalSettle parses and returns the removal_settle as a duration.
func (c *Config) GetRemovalSettle() time.Duration {
	if c.RemovalSettle == nil || *c.RemovalSettle == "" {
		return 2 * time.Second
	}
	d, err := time.ParseDuration(*c.RemovalSettle)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// GetChunkSize returns the chunk_size value or the default.
func (c *Config) GetChunkSize() int {
	if c.ChunkSize == nil {
		return 128
	}
	return *c.ChunkSize
}

// GetLogLevel returns the log_level value or the default.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == nil || *c.LogLevel == "" {
		return "info"
	}
	return *c.LogLevel
}
