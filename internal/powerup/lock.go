package powerup

// DefaultLockMoves is how many successful moves a lock lasts.
const DefaultLockMoves = 3

// LockedTile is a timed marker on a board coordinate. It does not stop the
// tile from sliding or merging.
type LockedTile struct {
	Row            int `json:"row"`
	Col            int `json:"col"`
	MovesRemaining int `json:"movesRemaining"`
}

// Locks holds at most one entry per coordinate.
type Locks []LockedTile

// Has reports whether (row, col) is locked.
func (l Locks) Has(row, col int) bool {
	for _, t := range l {
		if t.Row == row && t.Col == col {
			return true
		}
	}
	return false
}

// Add locks (row, col) for moves. Reports false if it is already locked.
func (l *Locks) Add(row, col, moves int) bool {
	if l.Has(row, col) {
		return false
	}
	*l = append(*l, LockedTile{Row: row, Col: col, MovesRemaining: moves})
	return true
}

// Tick decrements every lock after a successful move and returns the ones
// that expired.
func (l *Locks) Tick() []LockedTile {
	var expired []LockedTile
	kept := (*l)[:0]
	for _, t := range *l {
		t.MovesRemaining--
		if t.MovesRemaining <= 0 {
			expired = append(expired, t)
			continue
		}
		kept = append(kept, t)
	}
	*l = kept
	return expired
}

// Clone returns a copy.
func (l Locks) Clone() Locks {
	if l == nil {
		return nil
	}
	return append(Locks(nil), l...)
}

// Dedupe drops repeated coordinates, keeping the first entry. Used when
// loading persisted state written by an older build.
func (l Locks) Dedupe() Locks {
	var out Locks
	for _, t := range l {
		if !out.Has(t.Row, t.Col) && t.MovesRemaining > 0 {
			out = append(out, t)
		}
	}
	return out
}
