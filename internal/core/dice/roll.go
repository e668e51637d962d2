// Package dice provides seedable dice sources for table-driven rules.
//
// # Determinism
//
// A Source is deterministic with respect to its seed: two sources created
// with the same seed produce the same sequence of draws. Every draw consumes
// exactly one value from the underlying generator, so a Source can be
// rebuilt from its State (seed plus draw count) and continue the identical
// stream. Hosts that persist a run between processes rely on this.
package dice

import (
	"math/rand"

	apperrors "github.com/louisbranch/servicerecord/internal/platform/errors"
)

// ErrInvalidDiceSpec indicates a dice spec with non-positive sides or count.
var ErrInvalidDiceSpec = apperrors.New(apperrors.CodeDiceInvalidSpec, "dice sides and count must be positive")

// Roller draws the values rule resolvers need.
type Roller interface {
	// RollDie returns a value in [1,6].
	RollDie() int
	// Roll2D6 returns the sum of two RollDie draws, in [2,12].
	Roll2D6() int
	// Pick returns a uniformly chosen index in [0,n).
	Pick(n int) int
}

// Spec describes a group of identical dice, e.g. {Sides: 6, Count: 2} for 2d6.
type Spec struct {
	Sides int
	Count int
}

// Roll is the outcome of rolling one Spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// State captures enough of a Source to rebuild it.
type State struct {
	Seed  int64  `json:"seed" yaml:"seed" cbor:"seed"`
	Draws uint64 `json:"draws" yaml:"draws" cbor:"draws"`
}

// Source is a seeded Roller. It is not safe for concurrent use; each run
// owns its own Source.
type Source struct {
	rng   *rand.Rand
	state State
}

// NewSource returns a Source seeded with seed.
func NewSource(seed int64) *Source {
	return &Source{
		rng:   rand.New(rand.NewSource(seed)),
		state: State{Seed: seed},
	}
}

// Resume rebuilds the Source described by state, positioned after
// state.Draws draws.
func Resume(state State) *Source {
	s := NewSource(state.Seed)
	for s.state.Draws < state.Draws {
		s.draw(1)
	}
	return s
}

// State returns the seed and number of draws taken so far.
func (s *Source) State() State {
	return s.state
}

// RollDie rolls one six-sided die.
func (s *Source) RollDie() int {
	return s.draw(6) + 1
}

// Roll2D6 rolls two six-sided dice and returns their sum.
func (s *Source) Roll2D6() int {
	roll, err := s.Roll(Spec{Sides: 6, Count: 2})
	if err != nil {
		// Unreachable: 2d6 is always a valid Spec.
		panic(err)
	}
	return roll.Total
}

// Pick returns a uniformly chosen index in [0,n). It panics when n <= 0.
func (s *Source) Pick(n int) int {
	if n <= 0 {
		panic("dice: pick from an empty set")
	}
	return s.draw(n)
}

// Roll rolls the dice described by spec. Results appear in draw order.
func (s *Source) Roll(spec Spec) (Roll, error) {
	if spec.Sides <= 0 || spec.Count <= 0 {
		return Roll{}, ErrInvalidDiceSpec
	}
	results := make([]int, spec.Count)
	total := 0
	for i := range results {
		results[i] = s.draw(spec.Sides) + 1
		total += results[i]
	}
	return Roll{Sides: spec.Sides, Results: results, Total: total}, nil
}

// draw consumes exactly one generator value and maps it into [0,n).
func (s *Source) draw(n int) int {
	s.state.Draws++
	return int(s.rng.Int63() % int64(n))
}
