package sdi12

import (
	"github.com/envsense/sditerm/internal/ring"
)

// HistoryEntry is one cached command with its 1-based display index.
type HistoryEntry struct {
	Index int
	Text  string
}

// CommandHistory is a bounded recency cache of previously sent command
// texts. When the capacity is exceeded the oldest entry is evicted.
//
// Entries hold the trimmed command text without the terminator. Every
// completed send is cached; adjacent duplicates are not coalesced.
type CommandHistory struct {
	ring *ring.Ring[string]
}

// NewCommandHistory creates a CommandHistory with the given capacity.
func NewCommandHistory(capacity int) *CommandHistory {
	return &CommandHistory{ring: ring.New[string](capacity)}
}

// Push appends cmd to the tail, evicting the oldest entry when full.
func (h *CommandHistory) Push(cmd string) {
	h.ring.Push(cmd)
}

// Len returns the number of cached commands.
func (h *CommandHistory) Len() int {
	return h.ring.Len()
}

// Get returns the command at the 1-based index, oldest first.
// It returns false when index is outside [1, Len()].
func (h *CommandHistory) Get(index int) (string, bool) {
	return h.ring.At(index - 1)
}

// List returns the cached commands in insertion order with their 1-based
// display indices.
func (h *CommandHistory) List() []HistoryEntry {
	items := h.ring.Items()
	entries := make([]HistoryEntry, len(items))
	for i, text := range items {
		entries[i] = HistoryEntry{Index: i + 1, Text: text}
	}

	return entries
}
