package sdi12

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/envsense/sditerm/logger"
)

// Operator prompts.
const (
	portPrompt    = "Enter serial port (e.g., COM3, /dev/ttyUSB0): "
	commandPrompt = "Command: "
)

// inputKind tags the interpretation of one operator line.
type inputKind int

const (
	// inputLiteral is any text sent to the sensor as-is (after framing).
	inputLiteral inputKind = iota
	// inputExit terminates the session.
	inputExit
	// inputHistory lists the cached commands.
	inputHistory
	// inputConfigure prompts for a new serial port.
	inputConfigure
	// inputReplay re-sends a cached command selected by its 1-based index.
	inputReplay
)

// operatorLine is one classified operator line.
type operatorLine struct {
	kind  inputKind
	text  string // literal command text, or the resolved entry for inputReplay
	index int    // history index for inputReplay
}

// SessionEngine orchestrates the command session: connection lifecycle,
// operator line dispatch, the send/receive exchange, history updates, and
// event reporting.
//
// SessionEngine processes exactly one operator line at a time, to
// completion, before reading the next. It is not safe for concurrent use.
type SessionEngine struct {
	cfg    *SessionConfig
	logger logger.Logger

	channel *SerialChannel
	history *CommandHistory
	input   OperatorInput

	state    SessionState
	handlers []StateChangeHandler

	metrics SessionMetrics
}

// NewSessionEngine creates a SessionEngine reading operator lines from input.
//
// Optional handlers are invoked synchronously on every state transition.
func NewSessionEngine(cfg *SessionConfig, input OperatorInput, handlers ...StateChangeHandler) (*SessionEngine, error) {
	if cfg == nil {
		return nil, errors.New("sdi12: session config is nil")
	}
	if input == nil {
		return nil, errors.New("sdi12: operator input is nil")
	}

	return &SessionEngine{
		cfg:      cfg,
		logger:   cfg.logger,
		channel:  NewSerialChannel(cfg),
		history:  NewCommandHistory(cfg.historySize),
		input:    input,
		state:    DisconnectedState,
		handlers: handlers,
	}, nil
}

// State returns the current session state.
func (e *SessionEngine) State() SessionState {
	return e.state
}

// History returns the command history.
func (e *SessionEngine) History() *CommandHistory {
	return e.history
}

// Metrics returns the metrics associated with the session.
func (e *SessionEngine) Metrics() *SessionMetrics {
	return &e.metrics
}

// Run drives the session to completion.
//
// It first prompts for a serial port. If that very first connect attempt
// does not yield an open connection the session terminates immediately with
// ErrNoInitialPort; the operator is the retry mechanism otherwise. Run
// returns nil after a normal exit.
func (e *SessionEngine) Run() error {
	e.configure()

	if !e.channel.IsOpen() {
		e.logger.Error("no valid serial port configured, exiting")
		e.setState(TerminatedState)

		return ErrNoInitialPort
	}

	e.logger.Info("enter an SDI-12 command, 'history' to view past commands, 'configure' to change port, or 'exit' to quit")

	for !e.state.IsTerminated() {
		line, err := e.input.ReadLine(commandPrompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.logger.Error("operator input failed", "error", err)
			}
			e.setState(TerminatedState)

			break
		}

		e.dispatch(strings.TrimSpace(line))
	}

	e.teardown()

	return nil
}

// dispatch interprets one trimmed operator line per the session vocabulary.
func (e *SessionEngine) dispatch(line string) {
	in := e.classify(line)

	switch in.kind {
	case inputExit:
		e.setState(TerminatedState)

	case inputHistory:
		e.showHistory()

	case inputConfigure:
		e.configure()

	case inputReplay:
		e.metrics.incReplayCount()
		e.logger.Info("re-sending command from history", "index", in.index, "command", in.text)
		e.send(in.text)

	case inputLiteral:
		e.send(in.text)
	}
}

// classify maps an operator line onto the session vocabulary. Keywords match
// case-insensitively; a string of digits inside [1, history length] selects
// a history entry, resolved against the current history size. Anything else
// is a literal command.
func (e *SessionEngine) classify(line string) operatorLine {
	switch {
	case strings.EqualFold(line, "exit"):
		return operatorLine{kind: inputExit}
	case strings.EqualFold(line, "history"):
		return operatorLine{kind: inputHistory}
	case strings.EqualFold(line, "configure"):
		return operatorLine{kind: inputConfigure}
	}

	if isDigits(line) {
		if n, err := strconv.Atoi(line); err == nil {
			if cmd, ok := e.history.Get(n); ok {
				return operatorLine{kind: inputReplay, index: n, text: cmd}
			}
		}
	}

	return operatorLine{kind: inputLiteral, text: line}
}

// configure prompts for a serial port and opens it. An empty entry is a
// no-op. Opening closes any existing connection first; on failure the
// channel is left closed and the session drops to DisconnectedState.
func (e *SessionEngine) configure() {
	port, err := e.input.ReadLine(portPrompt)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			e.logger.Error("operator input failed", "error", err)
		}
		return
	}

	port = strings.TrimSpace(port)
	if port == "" {
		return
	}

	e.logger.Info("setting serial port", "port", port)

	if err := e.channel.Open(port); err != nil {
		e.setState(DisconnectedState)
		return
	}

	e.metrics.incConnectCount()
	e.setState(ConnectedState)
}

// send runs the send path: frame, write, settle, read, log, cache.
//
// The exchange never changes the session state; transport faults are logged
// and the connection is left open. The command is cached only when the
// exchange completed without a transport fault (a read timeout counts as a
// completed exchange with a short response).
func (e *SessionEngine) send(raw string) {
	cmd := Frame(raw)

	if !e.channel.IsOpen() {
		e.logger.Warn("serial port is not open, use 'configure' to set a port")
		return
	}

	resp, err := e.channel.WriteAndReadUntil([]byte(cmd), Terminator)

	if wroteToWire(err) {
		e.metrics.incCmdSendCount()
		e.logger.Info("command sent", "command", strings.TrimSpace(cmd))
	}

	if err != nil {
		e.metrics.incIOErrCount()
		e.logger.Error("error communicating with sensor", "error", err)
		return
	}

	e.metrics.incRespRecvCount()
	e.logger.Info("response received", "response", strings.TrimSpace(string(resp)))

	e.history.Push(strings.TrimSpace(cmd))
}

// showHistory logs each cached command with its selection index.
func (e *SessionEngine) showHistory() {
	entries := e.history.List()
	if len(entries) == 0 {
		e.logger.Info("no commands in history")
		return
	}

	e.logger.Info("command history accessed")
	for _, entry := range entries {
		e.logger.Info("history entry", "index", entry.Index, "command", entry.Text)
	}
}

// teardown closes the channel on session exit.
func (e *SessionEngine) teardown() {
	e.setState(TerminatedState)

	if !e.channel.IsOpen() {
		return
	}

	if err := e.channel.Close(); err != nil {
		e.logger.Error("error closing serial connection", "error", err)
		return
	}

	e.logger.Info("serial connection closed")
}

// setState transitions the session state and invokes the registered
// handlers. Transitions to the current state are no-ops.
func (e *SessionEngine) setState(newState SessionState) {
	prevState := e.state
	if prevState == newState {
		return
	}

	e.state = newState
	e.logger.Debug("session state changed", "prevState", prevState, "newState", newState)

	for _, handler := range e.handlers {
		if handler != nil {
			handler(prevState, newState)
		}
	}
}

// wroteToWire reports whether the command reached the wire: either the whole
// exchange succeeded or only the read leg faulted afterwards.
func wroteToWire(err error) bool {
	if err == nil {
		return true
	}

	var ioErr *IOError
	return errors.As(err, &ioErr) && ioErr.Op == OpRead
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
