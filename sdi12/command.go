package sdi12

import "strings"

// Terminator is the SDI-12 command and response terminator byte.
const Terminator byte = '\r'

// Frame normalizes operator text into a wire-ready command: leading and
// trailing whitespace is trimmed and a single carriage return is appended.
//
// Framing is purely syntactic; no SDI-12 grammar validation is performed.
// Input that is empty after trimming yields a terminator-only command, which
// matches the operator's intent to send an empty line.
func Frame(raw string) string {
	return strings.TrimSpace(raw) + string(Terminator)
}
