package dice

// Rand is the slice of randomness the roller needs.
type Rand interface {
	IntBetween(min, max int) int
}

// Roller draws hands from an injected random source
type Roller struct {
	rng Rand
}

// NewRoller creates a roller over the given source
func NewRoller(rng Rand) *Roller {
	return &Roller{rng: rng}
}

// Roll returns a fresh hand of n dice
func (r *Roller) Roll(n int) Hand {
	hand := make(Hand, n)
	for i := range hand {
		hand[i] = Face(r.rng.IntBetween(1, NumFaces))
	}
	return hand
}
