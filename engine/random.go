package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform draws in [0, 1). It is not required to be
// cryptographically secure.
type RandomSource interface {
	Float64() float64
}

type mathRandSource struct{}

// NewMathRandSource returns a source backed by the math/rand/v2 global generator
func NewMathRandSource() RandomSource {
	return mathRandSource{}
}

func (mathRandSource) Float64() float64 {
	return rand.Float64()
}

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a reproducible source, used by simulations
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// FixedSource replays a recorded sequence of draws. It panics once the
// sequence is exhausted so a replay can never silently diverge.
type FixedSource struct {
	mu    sync.Mutex
	draws []float64
	next  int
}

// NewFixedSource creates a source that returns draws in order
func NewFixedSource(draws ...float64) *FixedSource {
	return &FixedSource{draws: draws}
}

func (s *FixedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.draws) {
		panic(fmt.Sprintf("fixed random source exhausted after %d draws", len(s.draws)))
	}
	r := s.draws[s.next]
	s.next++
	return r
}

// Remaining returns how many draws have not been consumed yet
func (s *FixedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.draws) - s.next
}
