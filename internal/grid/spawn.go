package grid

import "github.com/vovakirdan/tui-2048plus/internal/rng"

// DefaultFourChance is the probability of spawning a 4 instead of a 2.
const DefaultFourChance = 0.10

// Spawn places a 2 (or a 4 with probability fourChance) in a uniformly chosen
// empty cell. Reports false and leaves the board alone when it is full.
func Spawn(g Grid, src rng.Source, fourChance float64) (Cell, int, bool) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, 0, false
	}

	cell := empty[src.IntN(len(empty))]

	value := 2
	if rng.Bernoulli(src, fourChance) {
		value = 4
	}

	g[cell.Row][cell.Col] = value
	return cell, value, true
}

// Shuffle returns a board holding the same tiles in a random order, packed
// into the leading cells in row-major order.
func Shuffle(g Grid, src rng.Source) Grid {
	tiles := make([]int, 0, g.Size()*g.Size())
	for r := range g {
		for c := range g[r] {
			if g[r][c] != 0 {
				tiles = append(tiles, g[r][c])
			}
		}
	}

	rng.Permute(src, tiles)

	out := New(g.Size())
	i := 0
	for r := range out {
		for c := range out[r] {
			if i < len(tiles) {
				out[r][c] = tiles[i]
				i++
			}
		}
	}
	return out
}
