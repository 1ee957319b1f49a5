// Package nfa builds Thompson automata from postfix token streams and
// simulates them over input strings.
//
// States live in a dense arena owned by the Automaton and refer to each other
// by index, so the back edges introduced by '*' and '+' are plain integers.
package nfa

// NoState marks the absence of a target.
const NoState = -1

// Transition is a symbol-labelled edge.
type Transition struct {
	Symbol rune
	To     int
}

// State is a node of the automaton. A state built by Build has either one
// symbol transition or up to two epsilon transitions, never both.
type State struct {
	// ID is the state's index in the owning Automaton.
	ID int
	// Transition is valid only when Transition.To != NoState.
	Transition Transition
	// Epsilon holds the targets of epsilon transitions.
	Epsilon []int
}

// HasTransition reports whether s carries a symbol transition.
func (s *State) HasTransition() bool {
	return s.Transition.To != NoState
}

// Next returns the target of the symbol transition on c, or NoState.
func (s *State) Next(c rune) int {
	if s.Transition.To != NoState && s.Transition.Symbol == c {
		return s.Transition.To
	}
	return NoState
}
