package core

import "math/rand"

// RNG is the random source consumed by grid initialization and refill.
// *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// NewRNG returns a seeded random source for reproducible boards.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// SequenceRNG replays a fixed list of values, cycling when exhausted.
// Values are reduced modulo n. Used for scripted boards and tests.
type SequenceRNG struct {
	values []int
	pos    int
}

// NewSequenceRNG creates a SequenceRNG over the given values.
func NewSequenceRNG(values ...int) *SequenceRNG {
	return &SequenceRNG{values: values}
}

// Intn returns the next scripted value in [0, n).
func (s *SequenceRNG) Intn(n int) int {
	if n <= 0 || len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Draws returns how many values have been consumed.
func (s *SequenceRNG) Draws() int {
	return s.pos
}
