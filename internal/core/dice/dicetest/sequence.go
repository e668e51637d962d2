// Package dicetest provides scripted dice for exact-outcome rule tests.
package dicetest

import "testing"

// Sequence is a dice.Roller that replays a fixed list of values.
//
// RollDie and Pick each consume one value; Roll2D6 consumes two and returns
// their sum. Pick values are returned as indexes, so 0 picks the first
// option. Running out of values fails the test.
type Sequence struct {
	t      testing.TB
	values []int
	next   int
}

// NewSequence returns a Sequence over values.
func NewSequence(t testing.TB, values ...int) *Sequence {
	t.Helper()
	return &Sequence{t: t, values: values}
}

// RollDie returns the next value, which must be in [1,6].
func (s *Sequence) RollDie() int {
	v := s.take()
	if v < 1 || v > 6 {
		s.t.Fatalf("scripted die value %d out of range [1,6]", v)
	}
	return v
}

// Roll2D6 returns the sum of the next two die values.
func (s *Sequence) Roll2D6() int {
	return s.RollDie() + s.RollDie()
}

// Pick returns the next value, which must be in [0,n).
func (s *Sequence) Pick(n int) int {
	v := s.take()
	if v < 0 || v >= n {
		s.t.Fatalf("scripted pick %d out of range [0,%d)", v, n)
	}
	return v
}

// Remaining reports how many scripted values are unused.
func (s *Sequence) Remaining() int {
	return len(s.values) - s.next
}

func (s *Sequence) take() int {
	if s.next >= len(s.values) {
		s.t.Fatalf("dice sequence exhausted after %d draws", s.next)
		return 0
	}
	v := s.values[s.next]
	s.next++
	return v
}
