// Package history keeps the bounded stack of board snapshots behind undo.
package history

import (
	"github.com/vovakirdan/tui-2048plus/internal/grid"
	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

// DefaultLimit is the number of snapshots kept.
const DefaultLimit = 10

// Snapshot is the state captured before a mutating action.
type Snapshot struct {
	Grid      grid.Grid         `json:"grid"`
	Score     int               `json:"score"`
	Inventory powerup.Inventory `json:"powerups"`
}

// Stack is a LIFO of snapshots that evicts its oldest entry when full.
type Stack struct {
	limit   int
	entries []Snapshot
}

// New returns an empty stack holding at most limit entries.
func New(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push stores a deep copy of s.
func (st *Stack) Push(s Snapshot) {
	if len(st.entries) >= st.limit {
		st.entries = st.entries[1:]
	}
	st.entries = append(st.entries, Snapshot{
		Grid:      s.Grid.Clone(),
		Score:     s.Score,
		Inventory: s.Inventory.Clone(),
	})
}

// Pop removes and returns the newest snapshot.
func (st *Stack) Pop() (Snapshot, bool) {
	if len(st.entries) == 0 {
		return Snapshot{}, false
	}
	top := st.entries[len(st.entries)-1]
	st.entries = st.entries[:len(st.entries)-1]
	return top, true
}

// Len returns the number of stored snapshots.
func (st *Stack) Len() int {
	return len(st.entries)
}

// Clear drops every snapshot.
func (st *Stack) Clear() {
	st.entries = nil
}

// Entries returns the snapshots oldest first, for persistence.
func (st *Stack) Entries() []Snapshot {
	return append([]Snapshot(nil), st.entries...)
}

// Restore replaces the contents with entries, keeping only the newest limit.
func (st *Stack) Restore(entries []Snapshot) {
	if len(entries) > st.limit {
		entries = entries[len(entries)-st.limit:]
	}
	st.entries = append([]Snapshot(nil), entries...)
}
