// Package grid implements the 2048 board: an N×N matrix of tile values with
// the slide/merge algorithm, random spawning and the terminal-state check.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvariant is returned by Check when the board holds an impossible value.
var ErrInvariant = errors.New("grid: invariant violation")

// MinSize and MaxSize bound the supported board dimensions.
const (
	MinSize = 2
	MaxSize = 8
)

// Grid is a square board indexed [row][col]. Zero marks an empty cell.
type Grid [][]int

// Cell addresses one board position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// New returns an empty size×size grid.
func New(size int) Grid {
	g := make(Grid, size)
	for r := range g {
		g[r] = make([]int, size)
	}
	return g
}

// FromRows builds a grid from literal rows. Used mostly by tests.
func FromRows(rows ...[]int) Grid {
	g := New(len(rows))
	for r, row := range rows {
		copy(g[r], row)
	}
	return g
}

// Size returns the board dimension.
func (g Grid) Size() int {
	return len(g)
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for r := range g {
		c[r] = append([]int(nil), g[r]...)
	}
	return c
}

// Equal reports whether both grids hold the same values.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(o[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// InBounds reports whether (row, col) lies on the board.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g) && col >= 0 && col < len(g)
}

// At returns the value at (row, col), or 0 if out of bounds.
func (g Grid) At(row, col int) int {
	if !g.InBounds(row, col) {
		return 0
	}
	return g[row][col]
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Occupied returns the number of non-empty cells.
func (g Grid) Occupied() int {
	n := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the maximum tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c] > maxVal {
				maxVal = g[r][c]
			}
		}
	}
	return maxVal
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func (g Grid) HasPossibleMerge() bool {
	n := len(g)
	for r := range n {
		for c := range n {
			val := g[r][c]
			if val == 0 {
				continue
			}
			if c < n-1 && g[r][c+1] == val {
				return true
			}
			if r < n-1 && g[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// HasAvailableMove is the terminal-state check: false means no slide in any
// direction can change the board.
func (g Grid) HasAvailableMove() bool {
	return g.HasEmptyCell() || g.HasPossibleMerge()
}

// Check verifies the board shape and that every tile is a power of two >= 2.
func (g Grid) Check() error {
	n := len(g)
	if n < MinSize || n > MaxSize {
		return fmt.Errorf("%w: size %d out of range", ErrInvariant, n)
	}
	for r := range g {
		if len(g[r]) != n {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvariant, r, len(g[r]), n)
		}
		for c, v := range g[r] {
			if v != 0 && !IsTile(v) {
				return fmt.Errorf("%w: value %d at (%d,%d) is not a power of two", ErrInvariant, v, r, c)
			}
		}
	}
	return nil
}

// IsTile reports whether v is a legal tile value (power of two >= 2).
func IsTile(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// String renders the board as fixed-width rows.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range g {
		for c := range g[r] {
			fmt.Fprintf(&sb, "%6d", g[r][c])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
