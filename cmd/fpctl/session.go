package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"

	"github.com/banshee-data/fingermark/internal/config"
	"github.com/banshee-data/fingermark/internal/fingerprint"
	"github.com/banshee-data/fingermark/internal/sensor"
	"github.com/banshee-data/fingermark/internal/store"
	"github.com/banshee-data/fingermark/internal/transport"
)

// sessionFlags holds the options shared by every sensor-facing subcommand.
type sessionFlags struct {
	port       string
	baud       int
	dbPath     string
	configPath string
	verbose    bool
}

func registerSessionFlags(fs *flag.FlagSet) *sessionFlags {
	sf := &sessionFlags{}
	fs.StringVar(&sf.port, "port", "", "serial port path")
	fs.IntVar(&sf.baud, "baud", 0, "baud rate")
	fs.StringVar(&sf.dbPath, "db", "", "template database path")
	fs.StringVar(&sf.configPath, "config", "", "JSON configuration file")
	fs.BoolVar(&sf.verbose, "verbose", false, "enable debug logging")
	return sf
}

// resolve merges flag values over the config file over built-in defaults.
// Flags win.
func (sf *sessionFlags) resolve() (*config.Config, error) {
	cfg := config.Empty()
	if sf.configPath != "" {
		loaded, err := config.Load(sf.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if sf.port != "" {
		cfg.SerialPort = &sf.port
	}
	if sf.baud != 0 {
		cfg.BaudRate = &sf.baud
	}
	if sf.dbPath != "" {
		cfg.DatabasePath = &sf.dbPath
	}
	if sf.verbose {
		log.SetLevel(logrus.DebugLevel)
	} else if level, err := logrus.ParseLevel(cfg.GetLogLevel()); err == nil {
		log.SetLevel(level)
	}
	return cfg, nil
}

// session bundles the open serial port and the devices built over it.
type session struct {
	serialPort serial.Port
	sensor     *sensor.Device
	fp         *fingerprint.Device
}

// openSession opens the serial port, verifies the sensor password, and
// wires up the workflow device with CLI-facing prompts and logging.
func openSession(cfg *config.Config) (*session, error) {
	port, err := transport.Open(cfg.GetSerialPort(), transport.PortOptions{
		BaudRate: cfg.GetBaudRate(),
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.GetSerialPort(), err)
	}

	dev := sensor.New(port,
		sensor.WithAddress(cfg.GetSensorAddress()),
		sensor.WithPassword(cfg.GetSensorPassword()),
	)

	if err := dev.VerifyPassword(); err != nil {
		port.Close()
		return nil, fmt.Errorf("sensor handshake failed: %w", err)
	}
	log.WithField("port", cfg.GetSerialPort()).Debug("sensor handshake ok")

	wfCfg := fingerprintConfig(cfg)
	fp := fingerprint.New(dev,
		fingerprint.WithTransport(port),
		fingerprint.WithAddress(cfg.GetSensorAddress()),
		fingerprint.WithConfig(wfCfg),
		fingerprint.WithLogger(logrusAdapter{log}),
		fingerprint.WithPrompt(printPrompt),
		fingerprint.WithProgress(logProgress),
	)

	return &session{serialPort: port, sensor: dev, fp: fp}, nil
}

func (s *session) close() {
	if err := s.serialPort.Close(); err != nil {
		log.WithError(err).Warn("closing serial port")
	}
}

// fingerprintConfig projects the file/flag configuration onto the workflow
// timing knobs, keeping package defaults for everything unspecified.
func fingerprintConfig(cfg *config.Config) fingerprint.Config {
	wf := fingerprint.DefaultConfig()
	wf.CaptureAttempts = cfg.GetCaptureAttempts()
	wf.CaptureInterval = cfg.GetCaptureInterval()
	wf.RemovalSettle = cfg.GetRemovalSettle()
	wf.ChunkSize = cfg.GetChunkSize()
	return wf
}

func openStore(cfg *config.Config) (*store.Store, error) {
	s, err := store.Open(cfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open template store %s: %w", cfg.GetDatabasePath(), err)
	}
	return s, nil
}

// logrusAdapter bridges the workflow logger interface onto logrus.
type logrusAdapter struct {
	l *logrus.Logger
}

func (a logrusAdapter) Debug(msg string, keysAndValues ...any) {
	a.l.WithFields(kvFields(keysAndValues)).Debug(msg)
}

func (a logrusAdapter) Info(msg string, keysAndValues ...any) {
	a.l.WithFields(kvFields(keysAndValues)).Info(msg)
}

func (a logrusAdapter) Error(msg string, keysAndValues ...any) {
	a.l.WithFields(kvFields(keysAndValues)).Error(msg)
}

func kvFields(keysAndValues []any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func printPrompt(p fingerprint.Prompt) {
	fmt.Printf(">> %s\n", p)
}

func logProgress(p fingerprint.Progress) {
	log.WithFields(logrus.Fields{
		"direction": p.Direction.String(),
		"bytes":     p.Bytes,
		"total":     p.Total,
		"packets":   p.Packets,
	}).Debug("template transfer progress")
}
