package nfa

import (
	"sort"

	"github.com/KromDaniel/thompson/internal/syntax"
	"github.com/bits-and-blooms/bitset"
)

// Automaton is a compiled Thompson NFA with a single accepting state.
// It is never modified after Build returns it, so any number of Simulators may
// share it.
type Automaton struct {
	states  []State
	start   int
	end     int
	postfix []syntax.Token
}

// Start returns the index of the initial state.
func (a *Automaton) Start() int {
	return a.start
}

// End returns the index of the accepting state.
func (a *Automaton) End() int {
	return a.end
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.states)
}

// State returns the state at index i. The returned value must not be modified.
func (a *Automaton) State(i int) *State {
	return &a.states[i]
}

// Postfix returns the token stream the automaton was built from.
// The returned slice must not be modified.
func (a *Automaton) Postfix() []syntax.Token {
	return a.postfix
}

// IsAccepting reports whether state i is the accepting state.
func (a *Automaton) IsAccepting(i int) bool {
	return i == a.end
}

// Alphabet returns the distinct transition symbols in ascending order.
func (a *Automaton) Alphabet() []rune {
	seen := make(map[rune]struct{})
	for i := range a.states {
		if a.states[i].HasTransition() {
			seen[a.states[i].Transition.Symbol] = struct{}{}
		}
	}

	symbols := make([]rune, 0, len(seen))
	for r := range seen {
		symbols = append(symbols, r)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// EdgeCounts returns the number of symbol and epsilon transitions.
func (a *Automaton) EdgeCounts() (symbol, epsilon int) {
	for i := range a.states {
		if a.states[i].HasTransition() {
			symbol++
		}
		epsilon += len(a.states[i].Epsilon)
	}
	return symbol, epsilon
}

// Order returns the states reachable from Start in depth-first pre-order,
// following the symbol transition before the epsilon transitions. It is used
// to give states stable, human friendly labels.
func (a *Automaton) Order() []int {
	visited := bitset.New(uint(len(a.states)))
	order := make([]int, 0, len(a.states))
	stack := []int{a.start}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Test(uint(s)) {
			continue
		}
		visited.Set(uint(s))
		order = append(order, s)

		st := &a.states[s]
		// Pushed in reverse so they pop in declaration order.
		for i := len(st.Epsilon) - 1; i >= 0; i-- {
			if !visited.Test(uint(st.Epsilon[i])) {
				stack = append(stack, st.Epsilon[i])
			}
		}
		if st.HasTransition() && !visited.Test(uint(st.Transition.To)) {
			stack = append(stack, st.Transition.To)
		}
	}

	return order
}

// EpsilonClosure returns, in ascending order, every state reachable from
// states through epsilon transitions alone, including states themselves.
func (a *Automaton) EpsilonClosure(states []int) []int {
	set := bitset.New(uint(len(a.states)))
	NewClosure(a).Compute(set, states...)
	return members(set)
}

// Closure is caller-owned scratch space for epsilon-closure computation.
// A Closure is not safe for concurrent use; the Automaton it reads is.
type Closure struct {
	a     *Automaton
	stack []int
}

// NewClosure returns scratch space sized for a.
func NewClosure(a *Automaton) *Closure {
	return &Closure{a: a, stack: make([]int, 0, len(a.states))}
}

// Compute adds the epsilon closure of seeds to dst. dst doubles as the visited
// marker: states already in dst are assumed closed and are not expanded again,
// so the walk terminates on the cycles created by '*' and '+'.
func (c *Closure) Compute(dst *bitset.BitSet, seeds ...int) {
	stack := c.stack[:0]
	for _, s := range seeds {
		if !dst.Test(uint(s)) {
			dst.Set(uint(s))
			stack = append(stack, s)
		}
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range c.a.states[s].Epsilon {
			if !dst.Test(uint(t)) {
				dst.Set(uint(t))
				stack = append(stack, t)
			}
		}
	}

	c.stack = stack
}

// members lists the set bits of set in ascending order.
func members(set *bitset.BitSet) []int {
	result := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		result = append(result, int(i))
	}
	return result
}
