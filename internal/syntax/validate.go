package syntax

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is the sentinel every syntax error unwraps to.
var ErrInvalidPattern = errors.New("invalid pattern")

// Error describes why a pattern was rejected.
type Error struct {
	Pattern string
	Pos     int // rune offset of the offending character
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid pattern %q at position %d: %s", e.Pattern, e.Pos, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidPattern.
func (e *Error) Unwrap() error {
	return ErrInvalidPattern
}

// Rejection reasons.
const (
	reasonLeadingOperator  = "pattern starts with an operator"
	reasonTrailingAlt      = "pattern ends with '|'"
	reasonOperatorAfterGrp = "operator directly after '('"
	reasonDoubleQuantifier = "consecutive quantifiers"
	reasonDoubleAlternate  = "consecutive '|'"
	reasonQuantifierAfterA = "quantifier directly after '|'"
	reasonAlternateBeforeR = "'|' directly before ')'"
	reasonEmptyGroup       = "empty group"
	reasonUnmatchedRight   = "unmatched ')'"
	reasonUnclosedLeft     = "unclosed '('"
)

// Validate checks pattern against the supported grammar. The empty pattern is
// valid. The first violation, scanning left to right, is returned as *Error.
func Validate(pattern string) error {
	if pattern == "" {
		return nil
	}

	fail := func(pos int, reason string) error {
		return &Error{Pattern: pattern, Pos: pos, Reason: reason}
	}

	tokens := Tokenize(pattern)

	// Offsets of '(' not yet closed.
	open := make([]int, 0, 8)

	for i, curr := range tokens {
		if i == 0 {
			if curr.IsQuantifier() || curr.Kind == Alternate {
				return fail(i, reasonLeadingOperator)
			}
		} else {
			prev := tokens[i-1]

			switch {
			case (curr.IsQuantifier() || curr.Kind == Alternate) && prev.Kind == LeftParen:
				return fail(i, reasonOperatorAfterGrp)
			case curr.IsQuantifier() && prev.IsQuantifier():
				return fail(i, reasonDoubleQuantifier)
			case curr.Kind == Alternate && prev.Kind == Alternate:
				return fail(i, reasonDoubleAlternate)
			case curr.IsQuantifier() && prev.Kind == Alternate:
				return fail(i, reasonQuantifierAfterA)
			case curr.Kind == RightParen && prev.Kind == Alternate:
				return fail(i, reasonAlternateBeforeR)
			case curr.Kind == RightParen && prev.Kind == LeftParen:
				return fail(i, reasonEmptyGroup)
			}
		}

		switch curr.Kind {
		case LeftParen:
			open = append(open, i)
		case RightParen:
			if len(open) == 0 {
				return fail(i, reasonUnmatchedRight)
			}
			open = open[:len(open)-1]
		}
	}

	last := len(tokens) - 1
	if tokens[last].Kind == Alternate {
		return fail(last, reasonTrailingAlt)
	}
	if len(open) > 0 {
		return fail(open[len(open)-1], reasonUnclosedLeft)
	}

	return nil
}
