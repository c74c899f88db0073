// Package sdi12 implements an interactive command/response session engine
// for a single SDI-12 sensor attached to a slow, line-oriented serial link.
//
// The engine owns at most one open serial connection at a time. Operator
// lines are classified as session keywords (exit, history, configure), a
// history index, or a literal command; literal and replayed commands are
// framed with a trailing carriage return, written to the port, and answered
// by whatever bytes arrive before the terminator or the read timeout.
//
// Responses are treated as opaque terminated byte strings; no SDI-12 grammar
// validation is performed. All externally observable events are reported
// through a [logger.Logger].
//
// The engine runs on a single logical thread: one operator line is processed
// to completion before the next is read. Sharing a SessionEngine between
// goroutines is not supported.
package sdi12
