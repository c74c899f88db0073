package sdi12

import (
	"errors"
	"fmt"
)

// Sentinel errors for the session engine.
var (
	// ErrNotOpen indicates a send was attempted with no open serial connection.
	ErrNotOpen = errors.New("sdi12: serial port is not open")

	// ErrNoInitialPort indicates the very first connect attempt failed, which
	// aborts the session before the command loop starts.
	ErrNoInitialPort = errors.New("sdi12: no valid serial port configured")
)

// I/O operation names carried by IOError.
const (
	OpWrite = "write"
	OpRead  = "read"
)

// ConnectError indicates that a serial port could not be opened.
type ConnectError struct {
	Port string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("sdi12: open port %q: %v", e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// IOError indicates a transport-level fault during a command exchange.
// Op is either OpWrite or OpRead, so callers can tell whether the command
// reached the wire before the fault.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("sdi12: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
