package sdi12

// SessionState represents the stage of an SDI-12 command session.
type SessionState uint32

// Session states.
const (
	// DisconnectedState indicates that no serial connection is open.
	DisconnectedState SessionState = iota
	// ConnectedState indicates that a serial connection is open and the
	// session accepts commands.
	ConnectedState
	// TerminatedState indicates that the session has ended. It is absorbing:
	// no transition leaves it.
	TerminatedState
)

// IsDisconnected returns if the current state is disconnected.
func (s SessionState) IsDisconnected() bool { return s == DisconnectedState }

// IsConnected returns if the current state is connected.
func (s SessionState) IsConnected() bool { return s == ConnectedState }

// IsTerminated returns if the current state is terminated.
func (s SessionState) IsTerminated() bool { return s == TerminatedState }

// String returns string representation of the current state.
func (s SessionState) String() string {
	switch s {
	case DisconnectedState:
		return "disconnected"
	case ConnectedState:
		return "connected"
	case TerminatedState:
		return "terminated"
	default:
		return "unknown"
	}
}

// StateChangeHandler is invoked when the session state changes.
//
// Handlers run synchronously on the session's single thread of control,
// before the next operator line is processed. Take care with long-running
// implementations.
type StateChangeHandler func(prevState SessionState, newState SessionState)
