package sdi12

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "disconnected", DisconnectedState.String())
	assert.Equal(t, "connected", ConnectedState.String())
	assert.Equal(t, "terminated", TerminatedState.String())
	assert.Equal(t, "unknown", SessionState(99).String())
}

func TestSessionState_Predicates(t *testing.T) {
	assert.True(t, DisconnectedState.IsDisconnected())
	assert.False(t, DisconnectedState.IsConnected())
	assert.False(t, DisconnectedState.IsTerminated())

	assert.True(t, ConnectedState.IsConnected())
	assert.True(t, TerminatedState.IsTerminated())
}
