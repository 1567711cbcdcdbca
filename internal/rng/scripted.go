package rng

// Scripted replays fixed values. Once a queue runs dry it returns the zero
// choice (0 for IntN, 0.99 for Float64, i.e. "spawn a 2").
type Scripted struct {
	Ints   []int
	Floats []float64
}

// IntN returns the next scripted int clamped into [0, n).
func (s *Scripted) IntN(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		v = 0
	}
	if v >= n {
		v = n - 1
	}
	return v
}

// Float64 returns the next scripted float.
func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0.99
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}
