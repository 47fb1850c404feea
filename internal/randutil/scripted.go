package randutil

// Scripted is a Source that replays pre-recorded values, for tests. IntBetween
// pops the next int (clamped into [min, max]); Chance pops the next bool.
// An exhausted script returns min / false.
type Scripted struct {
	Ints  []int
	Bools []bool
}

func (s *Scripted) IntBetween(min, max int) int {
	if len(s.Ints) == 0 {
		return min
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

func (s *Scripted) Chance(p float64) bool {
	if len(s.Bools) == 0 {
		return false
	}
	v := s.Bools[0]
	s.Bools = s.Bools[1:]
	return v
}
