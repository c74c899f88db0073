package sdi12

import (
	"sync/atomic"
)

// SessionMetrics contains atomic metrics for a command session.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type SessionMetrics struct {
	// CmdSendCount indicates the number of commands written to the port.
	CmdSendCount atomic.Uint64
	// RespRecvCount indicates the number of responses received (including
	// empty responses on read timeout).
	RespRecvCount atomic.Uint64
	// IOErrCount indicates the number of transport faults during exchanges.
	IOErrCount atomic.Uint64

	// ConnectCount indicates the number of successful port opens.
	ConnectCount atomic.Uint64
	// ReplayCount indicates the number of commands re-issued from history.
	ReplayCount atomic.Uint64
}

func (m *SessionMetrics) incCmdSendCount() {
	m.CmdSendCount.Add(1)
}

func (m *SessionMetrics) incRespRecvCount() {
	m.RespRecvCount.Add(1)
}

func (m *SessionMetrics) incIOErrCount() {
	m.IOErrCount.Add(1)
}

func (m *SessionMetrics) incConnectCount() {
	m.ConnectCount.Add(1)
}

func (m *SessionMetrics) incReplayCount() {
	m.ReplayCount.Add(1)
}
