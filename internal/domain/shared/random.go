package shared

import (
	"math/rand"
	"sync"
)

// RandomSource is an abstraction for uniform random draws, allowing the
// simulation's randomness to be controlled in tests
type RandomSource interface {
	// Float64 returns a uniform draw in [0, 1)
	Float64() float64
}

// SeededRandom implements RandomSource using a seeded math/rand generator
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom creates a SeededRandom. The same seed always yields the same sequence.
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next draw from the seeded generator
func (s *SeededRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// SequenceRandom implements RandomSource by replaying a fixed list of draws.
// Once the list is exhausted it keeps returning Fallback.
type SequenceRandom struct {
	values   []float64
	next     int
	Fallback float64
}

// NewSequenceRandom creates a SequenceRandom replaying values in order.
// The fallback after exhaustion is 0.999999, which never triggers a
// probability below 1.
func NewSequenceRandom(values ...float64) *SequenceRandom {
	return &SequenceRandom{
		values:   values,
		Fallback: 0.999999,
	}
}

// Float64 returns the next queued value
func (s *SequenceRandom) Float64() float64 {
	if s.next >= len(s.values) {
		return s.Fallback
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Push appends more draws to the queue
func (s *SequenceRandom) Push(values ...float64) {
	s.values = append(s.values, values...)
}

// Consumed returns how many queued draws have been used
func (s *SequenceRandom) Consumed() int {
	return s.next
}

// ConstantRandom implements RandomSource by always returning the same draw
type ConstantRandom float64

// Float64 returns the constant value
func (c ConstantRandom) Float64() float64 {
	return float64(c)
}

// CountingRandom wraps a RandomSource and counts the draws taken from it,
// so a seeded stream can be replayed to the same position later
type CountingRandom struct {
	src   RandomSource
	draws int64
}

// NewCountingRandom wraps src
func NewCountingRandom(src RandomSource) *CountingRandom {
	return &CountingRandom{src: src}
}

// ReplaySeeded rebuilds a seeded stream and advances it past draws values
func ReplaySeeded(seed int64, draws int64) *CountingRandom {
	r := NewCountingRandom(NewSeededRandom(seed))
	for i := int64(0); i < draws; i++ {
		r.Float64()
	}
	return r
}

// Float64 draws from the wrapped source
func (c *CountingRandom) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

// Draws returns the number of values drawn so far
func (c *CountingRandom) Draws() int64 {
	return c.draws
}
