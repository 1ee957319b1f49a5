package nfa

import "github.com/bits-and-blooms/bitset"

// Simulator matches input against an Automaton one symbol at a time by
// tracking the epsilon-closed set of active states (the frontier).
//
// A Simulator owns its frontier and scratch space and is not safe for
// concurrent use. Create one per goroutine; they may share the Automaton.
type Simulator struct {
	a       *Automaton
	closure *Closure
	current *bitset.BitSet
	next    *bitset.BitSet
	seeds   []int
}

// NewSimulator returns a Simulator positioned at the start of input.
func NewSimulator(a *Automaton) *Simulator {
	n := uint(a.Len())
	s := &Simulator{
		a:       a,
		closure: NewClosure(a),
		current: bitset.New(n),
		next:    bitset.New(n),
		seeds:   make([]int, 0, a.Len()),
	}
	s.Reset()
	return s
}

// Reset sets the frontier to the epsilon closure of the start state.
func (s *Simulator) Reset() {
	s.current.ClearAll()
	s.closure.Compute(s.current, s.a.start)
}

// Step advances the frontier over symbol c. Once the frontier is empty it
// stays empty; further calls are no-ops.
func (s *Simulator) Step(c rune) {
	s.seeds = s.seeds[:0]
	for i, ok := s.current.NextSet(0); ok; i, ok = s.current.NextSet(i + 1) {
		if to := s.a.states[i].Next(c); to != NoState {
			s.seeds = append(s.seeds, to)
		}
	}

	s.next.ClearAll()
	s.closure.Compute(s.next, s.seeds...)
	s.current, s.next = s.next, s.current
}

// IsAccepting reports whether the frontier contains the accepting state.
func (s *Simulator) IsAccepting() bool {
	return s.current.Test(uint(s.a.end))
}

// Dead reports whether the frontier is empty, in which case no continuation
// of the input can be accepted.
func (s *Simulator) Dead() bool {
	return s.current.None()
}

// Frontier returns the active states in ascending order.
func (s *Simulator) Frontier() []int {
	return members(s.current)
}

// Match reports whether the whole of word is accepted. It resets the
// Simulator first.
func (s *Simulator) Match(word string) bool {
	s.Reset()
	for _, c := range word {
		s.Step(c)
		if s.Dead() {
			return false
		}
	}
	return s.IsAccepting()
}
