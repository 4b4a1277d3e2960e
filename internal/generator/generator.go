package generator

import (
	"time"

	"svw.info/polygen/internal/ports"
)

// RandomGenerator assembles a family's pieces into a random connected shape
// and uses a provided Solver to count the shape's solutions.
type RandomGenerator struct {
	Solver ports.Solver
	// CountLimit caps the solution count; shapes reaching it rate Easy.
	CountLimit int
	// Budget bounds the time spent counting.
	Budget time.Duration
}

// NewRandomGenerator wires a generator that grades puzzles with the given solver.
func NewRandomGenerator(s ports.Solver) *RandomGenerator {
	return &RandomGenerator{Solver: s, CountLimit: 200, Budget: 900 * time.Millisecond}
}
