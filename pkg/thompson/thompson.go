// Package thompson compiles simple regular expressions into Thompson NFAs
// and matches whole words against them.
//
// The pattern language has literal characters, grouping with ( and ),
// alternation with |, and the postfix quantifiers * and +. Every other
// character, including '.', is a literal. A pattern matches a word only when
// it accepts the entire word.
package thompson

import (
	"fmt"
	"io"
	"sync"

	"github.com/KromDaniel/thompson/internal/nfa"
	"github.com/KromDaniel/thompson/internal/syntax"
)

// ErrInvalidPattern is wrapped by every syntax error Compile returns.
var ErrInvalidPattern = syntax.ErrInvalidPattern

// SyntaxError describes the first syntax violation found in a pattern.
type SyntaxError = syntax.Error

// Automaton is a compiled Thompson NFA. It is read-only and safe to share.
type Automaton = nfa.Automaton

// Simulator steps an Automaton one character at a time.
// A Simulator is not safe for concurrent use; create one per goroutine.
type Simulator = nfa.Simulator

// Regexp is a compiled pattern. It is safe for concurrent use.
type Regexp struct {
	pattern   string
	postfix   string
	automaton *nfa.Automaton
	pool      sync.Pool
}

// Validate reports whether pattern is well formed.
// The returned error wraps ErrInvalidPattern and is a *SyntaxError.
func Validate(pattern string) error {
	return syntax.Validate(pattern)
}

// Compile parses pattern and builds its automaton.
func Compile(pattern string) (*Regexp, error) {
	a, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}

	re := &Regexp{
		pattern:   pattern,
		postfix:   syntax.Format(a.Postfix()),
		automaton: a,
	}
	re.pool.New = func() any {
		return nfa.NewSimulator(a)
	}
	return re, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(`thompson: Compile(` + quote(pattern) + `): ` + err.Error())
	}
	return re
}

// Match reports whether pattern accepts the whole of s.
func Match(pattern, s string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// MatchString reports whether re accepts the whole of s.
func (re *Regexp) MatchString(s string) bool {
	sim := re.pool.Get().(*nfa.Simulator)
	defer re.pool.Put(sim)

	return sim.Match(s)
}

// NewSimulator returns a Simulator positioned at the start of a word.
func (re *Regexp) NewSimulator() *Simulator {
	return nfa.NewSimulator(re.automaton)
}

// Automaton returns the compiled automaton.
func (re *Regexp) Automaton() *Automaton {
	return re.automaton
}

// WriteTable writes the transition table of the automaton to w.
func (re *Regexp) WriteTable(w io.Writer) error {
	return nfa.WriteTable(w, re.automaton)
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.pattern
}

// Postfix returns the pattern in postfix form, with '.' as explicit
// concatenation.
func (re *Regexp) Postfix() string {
	return re.postfix
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
