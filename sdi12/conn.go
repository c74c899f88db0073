package sdi12

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/envsense/sditerm/logger"
)

// readChunkSize is the per-iteration read buffer size. SDI-12 responses are
// short (at most 75 bytes of values plus CRC and terminator).
const readChunkSize = 64

// PortOpener opens the underlying serial port for a connection.
// The production opener wraps tarm/serial; tests inject in-memory fakes.
type PortOpener func(cfg *serial.Config) (io.ReadWriteCloser, error)

func openSerialPort(cfg *serial.Config) (io.ReadWriteCloser, error) {
	return serial.OpenPort(cfg)
}

// SerialChannel owns at most one open serial connection at a time.
//
// Open/close transitions are strictly sequential: opening a new port fully
// closes any existing connection first. SerialChannel is not safe for
// concurrent use; it is owned exclusively by a SessionEngine.
type SerialChannel struct {
	cfg    *SessionConfig
	logger logger.Logger

	port   io.ReadWriteCloser
	portID string
}

// NewSerialChannel creates a closed SerialChannel with the given configuration.
func NewSerialChannel(cfg *SessionConfig) *SerialChannel {
	return &SerialChannel{
		cfg:    cfg,
		logger: cfg.logger,
	}
}

// IsOpen reports whether a serial connection is currently open.
func (c *SerialChannel) IsOpen() bool {
	return c.port != nil
}

// PortID returns the identifier of the open port, or "" when closed.
func (c *SerialChannel) PortID() string {
	return c.portID
}

// Open opens portID at the configured baud rate and read timeout.
//
// Any existing connection is closed first. On failure the channel is left in
// the closed state and a *ConnectError is returned.
func (c *SerialChannel) Open(portID string) error {
	if c.port != nil {
		prevPort := c.portID
		c.closePort()
		c.logger.Info("closed previous connection", "port", prevPort)
	}

	port, err := c.cfg.opener(&serial.Config{
		Name:        portID,
		Baud:        c.cfg.baudRate,
		ReadTimeout: c.cfg.readTimeout,
	})
	if err != nil {
		connErr := &ConnectError{Port: portID, Err: err}
		c.logger.Error("error opening serial port", "port", portID, "error", err)

		return connErr
	}

	c.port = port
	c.portID = portID
	c.logger.Info("connected", "port", portID, "baud", c.cfg.baudRate)

	return nil
}

// Close closes the underlying connection if open; it is a no-op otherwise.
func (c *SerialChannel) Close() error {
	if c.port == nil {
		return nil
	}

	err := c.closePort()
	if err != nil {
		return &IOError{Op: "close", Err: err}
	}

	return nil
}

// WriteAndReadUntil writes payload, waits the settle delay so the sensor can
// process the command, then reads bytes up to and including terminator or
// until the read timeout elapses.
//
// It returns whatever was accumulated; a read that times out before the
// terminator is not distinguished from a completed short response. Transport
// faults are returned as *IOError with Op set to OpWrite or OpRead, and the
// connection is left open either way.
func (c *SerialChannel) WriteAndReadUntil(payload []byte, terminator byte) ([]byte, error) {
	if c.port == nil {
		return nil, ErrNotOpen
	}

	if _, err := c.port.Write(payload); err != nil {
		return nil, &IOError{Op: OpWrite, Err: err}
	}

	if c.cfg.settleDelay > 0 {
		time.Sleep(c.cfg.settleDelay)
	}

	return c.readUntil(terminator)
}

func (c *SerialChannel) readUntil(terminator byte) ([]byte, error) {
	deadline := time.Now().Add(c.cfg.readTimeout)
	resp := make([]byte, 0, readChunkSize)
	buf := make([]byte, readChunkSize)

	for {
		n, err := c.port.Read(buf)
		if n > 0 {
			resp = append(resp, buf[:n]...)
			if i := bytes.IndexByte(resp, terminator); i >= 0 {
				return resp[:i+1], nil
			}
		}

		if err != nil {
			// tarm/serial reports an exhausted read timeout as io.EOF; the
			// accumulated bytes are returned as a (possibly empty) response.
			if errors.Is(err, io.EOF) {
				return resp, nil
			}

			return resp, &IOError{Op: OpRead, Err: err}
		}

		if !time.Now().Before(deadline) {
			return resp, nil
		}
	}
}

// closePort closes the handle and resets the channel to the closed state.
func (c *SerialChannel) closePort() error {
	err := c.port.Close()
	c.port = nil
	c.portID = ""

	return err
}
