package sdi12

import (
	"errors"
	"fmt"
	"time"

	"github.com/envsense/sditerm/logger"
)

// Default session parameters. SDI-12 (v1.4 §4) specifies 1200 baud; the
// response timeout and settle delay follow common sensor practice.
const (
	DefaultBaudRate    = 1200
	DefaultReadTimeout = 2 * time.Second
	DefaultSettleDelay = 500 * time.Millisecond
	DefaultHistorySize = 10
)

// Parameter range limits.
const (
	MinBaudRate = 300
	MaxBaudRate = 115200

	MinReadTimeout = 100 * time.Millisecond
	MaxReadTimeout = 30 * time.Second

	MaxSettleDelay = 10 * time.Second

	MaxHistorySize = 100
)

// SessionConfig holds all configuration for an SDI-12 command session.
type SessionConfig struct {
	baudRate    int
	readTimeout time.Duration
	settleDelay time.Duration
	historySize int

	opener PortOpener

	logger logger.Logger
}

// NewSessionConfig creates a session configuration with SDI-12 defaults.
//
// opts are functional options applied in order; see With* functions.
func NewSessionConfig(opts ...SessionOption) (*SessionConfig, error) {
	cfg := &SessionConfig{
		baudRate:    DefaultBaudRate,
		readTimeout: DefaultReadTimeout,
		settleDelay: DefaultSettleDelay,
		historySize: DefaultHistorySize,
		opener:      openSerialPort,
		logger:      logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// --- Getters ---

// BaudRate returns the configured baud rate.
func (cfg *SessionConfig) BaudRate() int { return cfg.baudRate }

// ReadTimeout returns the response read timeout.
func (cfg *SessionConfig) ReadTimeout() time.Duration { return cfg.readTimeout }

// SettleDelay returns the pause between writing a command and reading the
// response, allowing the sensor time to process.
func (cfg *SessionConfig) SettleDelay() time.Duration { return cfg.settleDelay }

// HistorySize returns the command history capacity.
func (cfg *SessionConfig) HistorySize() int { return cfg.historySize }

// GetLogger returns the configured logger.
func (cfg *SessionConfig) GetLogger() logger.Logger { return cfg.logger }

// --- SessionOption ---

// SessionOption is a functional option for configuring a SessionConfig.
type SessionOption interface {
	apply(*SessionConfig) error
}

type sessionOptFunc func(*SessionConfig) error

func (f sessionOptFunc) apply(cfg *SessionConfig) error { return f(cfg) }

// WithBaudRate sets the baud rate. SDI-12 sensors use 1200 baud; other rates
// are accepted for bench setups with line drivers or simulators.
func WithBaudRate(baud int) SessionOption {
	return sessionOptFunc(func(cfg *SessionConfig) error {
		if baud < MinBaudRate || baud > MaxBaudRate {
			return fmt.Errorf("sdi12: baud rate %d out of range [%d, %d]", baud, MinBaudRate, MaxBaudRate)
		}
		cfg.baudRate = baud

		return nil
	})
}

// WithReadTimeout sets the response read timeout.
func WithReadTimeout(d time.Duration) SessionOption {
	return sessionOptFunc(func(cfg *SessionConfig) error {
		if d < MinReadTimeout || d > MaxReadTimeout {
			return fmt.Errorf("sdi12: read timeout %v out of range [%v, %v]", d, MinReadTimeout, MaxReadTimeout)
		}
		cfg.readTimeout = d

		return nil
	})
}

// WithSettleDelay sets the pause between write and read. Zero disables it.
func WithSettleDelay(d time.Duration) SessionOption {
	return sessionOptFunc(func(cfg *SessionConfig) error {
		if d < 0 || d > MaxSettleDelay {
			return fmt.Errorf("sdi12: settle delay %v out of range [0, %v]", d, MaxSettleDelay)
		}
		cfg.settleDelay = d

		return nil
	})
}

// WithHistorySize sets the command history capacity.
func WithHistorySize(size int) SessionOption {
	return sessionOptFunc(func(cfg *SessionConfig) error {
		if size < 1 || size > MaxHistorySize {
			return fmt.Errorf("sdi12: history size %d out of range [1, %d]", size, MaxHistorySize)
		}
		cfg.historySize = size

		return nil
	})
}

// WithPortOpener sets the function used to open the underlying serial port.
// The default opens a real port via tarm/serial; tests inject fakes here.
func WithPortOpener(opener PortOpener) SessionOption {
	return sessionOptFunc(func(cfg *SessionConfig) error {
		if opener == nil {
			return errors.New("sdi12: port opener must not be nil")
		}
		cfg.opener = opener

		return nil
	})
}

// WithLogger sets the logger for the session.
func WithLogger(l logger.Logger) SessionOption {
	return sessionOptFunc(func(cfg *SessionConfig) error {
		if l == nil {
			return errors.New("sdi12: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
