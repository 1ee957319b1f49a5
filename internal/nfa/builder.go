package nfa

import (
	"errors"
	"fmt"

	"github.com/KromDaniel/thompson/internal/syntax"
)

// ErrMalformedPostfix is returned by Build when the token stream is not a
// well-formed postfix expression. Streams produced by syntax.Parse never
// trigger it.
var ErrMalformedPostfix = errors.New("malformed postfix expression")

// fragment is a partially built automaton. Only its end is accepting; once a
// fragment is combined into a larger one its end becomes an interior state.
type fragment struct {
	start int
	end   int
}

// builder assembles fragments into a single arena.
type builder struct {
	states []State
	stack  []fragment
}

func (b *builder) newState() int {
	id := len(b.states)
	b.states = append(b.states, State{
		ID:         id,
		Transition: Transition{To: NoState},
	})
	return id
}

func (b *builder) epsilon(from, to int) {
	b.states[from].Epsilon = append(b.states[from].Epsilon, to)
}

func (b *builder) push(f fragment) {
	b.stack = append(b.stack, f)
}

func (b *builder) pop(pos int, tok syntax.Token) (fragment, error) {
	if len(b.stack) == 0 {
		return fragment{}, fmt.Errorf("token %d (%s) has no operand: %w", pos, tok, ErrMalformedPostfix)
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return f, nil
}

// literal: start --c--> end
func (b *builder) literal(c rune) fragment {
	start, end := b.newState(), b.newState()
	b.states[start].Transition = Transition{Symbol: c, To: end}
	return fragment{start: start, end: end}
}

// empty: start --ε--> end
func (b *builder) empty() fragment {
	start, end := b.newState(), b.newState()
	b.epsilon(start, end)
	return fragment{start: start, end: end}
}

// closure builds f* when skip is true and f+ otherwise.
func (b *builder) closure(f fragment, skip bool) fragment {
	start, end := b.newState(), b.newState()
	if skip {
		b.epsilon(start, end)
	}
	b.epsilon(start, f.start)
	b.epsilon(f.end, end)
	b.epsilon(f.end, f.start)
	return fragment{start: start, end: end}
}

func (b *builder) union(left, right fragment) fragment {
	start, end := b.newState(), b.newState()
	b.epsilon(start, left.start)
	b.epsilon(start, right.start)
	b.epsilon(left.end, end)
	b.epsilon(right.end, end)
	return fragment{start: start, end: end}
}

func (b *builder) concat(left, right fragment) fragment {
	b.epsilon(left.end, right.start)
	return fragment{start: left.start, end: right.end}
}

// Build assembles an automaton from a postfix token stream using Thompson's
// construction. An empty stream yields the machine accepting only the empty
// word.
func Build(postfix []syntax.Token) (*Automaton, error) {
	b := &builder{
		states: make([]State, 0, 2*len(postfix)+2),
	}

	source := append([]syntax.Token(nil), postfix...)

	if len(postfix) == 0 {
		f := b.empty()
		return &Automaton{states: b.states, start: f.start, end: f.end, postfix: source}, nil
	}

	for i, tok := range postfix {
		switch tok.Kind {
		case syntax.Literal:
			b.push(b.literal(tok.Symbol))

		case syntax.Star, syntax.Plus:
			f, err := b.pop(i, tok)
			if err != nil {
				return nil, err
			}
			b.push(b.closure(f, tok.Kind == syntax.Star))

		case syntax.Alternate, syntax.Concat:
			right, err := b.pop(i, tok)
			if err != nil {
				return nil, err
			}
			left, err := b.pop(i, tok)
			if err != nil {
				return nil, err
			}
			if tok.Kind == syntax.Alternate {
				b.push(b.union(left, right))
			} else {
				b.push(b.concat(left, right))
			}

		default:
			return nil, fmt.Errorf("token %d (%s) is not allowed in postfix: %w", i, tok, ErrMalformedPostfix)
		}
	}

	if len(b.stack) != 1 {
		return nil, fmt.Errorf("%d fragments left after assembly: %w", len(b.stack), ErrMalformedPostfix)
	}

	f := b.stack[0]
	return &Automaton{states: b.states, start: f.start, end: f.end, postfix: source}, nil
}

// Compile parses pattern and builds its automaton. Syntax errors are returned
// as is; a failed build wraps ErrMalformedPostfix.
func Compile(pattern string) (*Automaton, error) {
	postfix, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}

	a, err := Build(postfix)
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton for %q: %w", pattern, err)
	}
	return a, nil
}
