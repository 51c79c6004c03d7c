package domain

import "time"

// ForcedExplanation is the fixed explanation recorded for forced
// transitions, so their provenance stays distinguishable downstream.
const ForcedExplanation = "forced: declared transitions bypassed"

// HistoryEntry records one completed mode change.
type HistoryEntry struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Timestamp   time.Time `json:"timestamp"`
	Explanation string    `json:"explanation"`
}

// Forced reports whether this entry was recorded by a forced transition.
func (h HistoryEntry) Forced() bool {
	return h.Explanation == ForcedExplanation
}

// State is the persisted snapshot of the workflow machine: the current
// mode plus an append-only, ordered transition history. It is created
// lazily on first transition and mutated transition-by-transition.
type State struct {
	CurrentMode string         `json:"currentMode"`
	History     []HistoryEntry `json:"history"`
}

// NewState creates a fresh state at the given mode with empty history.
func NewState(mode string) *State {
	return &State{
		CurrentMode: mode,
		History:     []HistoryEntry{},
	}
}

// Append records a completed transition and moves the current mode.
func (s *State) Append(entry HistoryEntry) {
	s.History = append(s.History, entry)
	s.CurrentMode = entry.To
}

// Recent returns the most recent n history entries in original order.
func (s *State) Recent(n int) []HistoryEntry {
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// Clone returns a deep copy so stores and callers cannot alias history.
func (s *State) Clone() *State {
	out := &State{
		CurrentMode: s.CurrentMode,
		History:     make([]HistoryEntry, len(s.History)),
	}
	copy(out.History, s.History)
	return out
}
