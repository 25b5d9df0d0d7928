package game

import "math/rand"

// RNG is the random source the simulation draws from. All map construction
// and AI choices go through it, so a seeded RNG replays a run exactly.
type RNG interface {
	// IntLessThan returns a value in [0, n). n <= 0 yields 0.
	IntLessThan(n int) int
	// IntInRange returns a value in [lo, hi], both inclusive.
	IntInRange(lo, hi int) int
	// FloatInRange returns a value in [lo, hi).
	FloatInRange(lo, hi float64) float64
	// Seed restarts the stream.
	Seed(seed int64)
}

// SeededRNG is the default RNG on math/rand.
type SeededRNG struct {
	r *rand.Rand
}

// NewSeededRNG returns an RNG replaying the stream for seed.
func NewSeededRNG(seed int64) *SeededRNG {
	return &SeededRNG{r: rand.New(rand.NewSource(seed))} // #nosec G404 -- gameplay randomness
}

func (s *SeededRNG) IntLessThan(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

func (s *SeededRNG) IntInRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

func (s *SeededRNG) FloatInRange(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

func (s *SeededRNG) Seed(seed int64) {
	s.r.Seed(seed)
}
