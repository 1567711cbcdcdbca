package grid

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// MergeEvent records one merge: the created value and where it landed.
type MergeEvent struct {
	Row   int
	Col   int
	Value int
}

// Outcome summarises a slide.
type Outcome struct {
	Changed bool
	Score   int          // sum of all merged values
	Merges  []MergeEvent // in scan order, destination edge first
}

// slideLine compacts a line toward index 0, merging equal neighbours pairwise.
// A tile produced by a merge never merges again in the same pass.
// Returns the new line, the score gained and the indices of merged tiles.
func slideLine(line []int) (result []int, score int, merged []int) {
	result = make([]int, len(line))
	writePos := 0
	lastMerged := false

	for _, v := range line {
		if v == 0 {
			continue
		}

		if writePos > 0 && !lastMerged && result[writePos-1] == v {
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged = append(merged, writePos-1)
			lastMerged = true
			continue
		}

		result[writePos] = v
		writePos++
		lastMerged = false
	}

	return result, score, merged
}

// cellAt maps the k-th cell of a line (counted from the destination edge) to
// board coordinates.
func cellAt(dir Direction, n, line, k int) (row, col int) {
	switch dir {
	case DirLeft:
		return line, k
	case DirRight:
		return line, n - 1 - k
	case DirUp:
		return k, line
	default: // DirDown
		return n - 1 - k, line
	}
}

// Slide performs a move in the given direction and returns the new board.
// The input grid is not modified.
func Slide(g Grid, dir Direction) (Grid, Outcome) {
	n := g.Size()
	next := g.Clone()
	var out Outcome

	switch dir {
	case DirUp, DirDown, DirLeft, DirRight:
	default:
		return next, out
	}

	line := make([]int, n)
	for i := range n {
		for k := range n {
			r, c := cellAt(dir, n, i, k)
			line[k] = g[r][c]
		}

		slid, score, merged := slideLine(line)
		out.Score += score

		for k := range n {
			r, c := cellAt(dir, n, i, k)
			if next[r][c] != slid[k] {
				out.Changed = true
			}
			next[r][c] = slid[k]
		}
		for _, k := range merged {
			r, c := cellAt(dir, n, i, k)
			out.Merges = append(out.Merges, MergeEvent{Row: r, Col: c, Value: slid[k]})
		}
	}

	return next, out
}
