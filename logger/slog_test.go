package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionSlog_AppendsToSink(t *testing.T) {
	var sink bytes.Buffer

	log := NewSessionSlog(&sink, InfoLevel)
	log.Info("connected", "port", "COM3")
	log.Error("error opening serial port", "port", "COM9")

	lines := strings.Split(strings.TrimSpace(sink.String()), "\n")
	require.Len(t, lines, 2)

	// Call order is preserved and every line carries a timestamp.
	assert.Contains(t, lines[0], "connected")
	assert.Contains(t, lines[0], "port=COM3")
	assert.Contains(t, lines[0], "ts=")
	assert.Contains(t, lines[1], "error opening serial port")
}

func TestNewSessionSlog_LevelFiltering(t *testing.T) {
	var sink bytes.Buffer

	log := NewSessionSlog(&sink, InfoLevel)
	log.Debug("hidden")
	assert.Empty(t, sink.String())

	log.SetLevel(DebugLevel)
	log.Debug("visible")
	assert.Contains(t, sink.String(), "visible")
}
