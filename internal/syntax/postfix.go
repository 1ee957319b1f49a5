package syntax

import (
	"errors"
	"fmt"
)

// ErrUnbalanced is returned by ToPostfix when the infix stream has a ')' with
// no matching '(' or a '(' that is never closed. Validate rejects such
// patterns, so seeing it means the stream bypassed validation.
var ErrUnbalanced = errors.New("unbalanced parentheses in token stream")

// InsertConcat returns a copy of tokens with an explicit Concat between every
// pair of adjacent tokens that are implicitly concatenated: token i is not '('
// or '|', and token i+1 is not '*', '+', '|' or ')'.
func InsertConcat(tokens []Token) []Token {
	result := make([]Token, 0, 2*len(tokens))

	for i, curr := range tokens {
		result = append(result, curr)

		if curr.Kind == LeftParen || curr.Kind == Alternate {
			continue
		}
		if i == len(tokens)-1 {
			break
		}

		switch tokens[i+1].Kind {
		case Star, Plus, Alternate, RightParen:
			continue
		}
		result = append(result, Token{Kind: Concat})
	}

	return result
}

// The higher the value, the tighter the operator binds.
func precedence(k Kind) int {
	switch k {
	case Alternate:
		return 0
	case Concat:
		return 1
	case Star, Plus:
		return 2
	}
	return -1
}

// ToPostfix converts an infix token stream with explicit Concat markers into
// postfix order using the shunting-yard algorithm. Parentheses are consumed.
func ToPostfix(tokens []Token) ([]Token, error) {
	result := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens))

	pop := func() Token {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}

	for i, tok := range tokens {
		switch {
		case tok.IsOperator():
			// Pop every operator that binds at least as tightly before pushing.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == LeftParen || precedence(top.Kind) < precedence(tok.Kind) {
					break
				}
				result = append(result, pop())
			}
			stack = append(stack, tok)
		case tok.Kind == LeftParen:
			stack = append(stack, tok)
		case tok.Kind == RightParen:
			for {
				if len(stack) == 0 {
					return nil, fmt.Errorf("token %d: %w", i, ErrUnbalanced)
				}
				top := pop()
				if top.Kind == LeftParen {
					break
				}
				result = append(result, top)
			}
		default:
			result = append(result, tok)
		}
	}

	for len(stack) > 0 {
		top := pop()
		if top.Kind == LeftParen {
			return nil, fmt.Errorf("unclosed group: %w", ErrUnbalanced)
		}
		result = append(result, top)
	}

	return result, nil
}

// Parse validates pattern and returns its postfix token stream.
func Parse(pattern string) ([]Token, error) {
	if err := Validate(pattern); err != nil {
		return nil, err
	}

	postfix, err := ToPostfix(InsertConcat(Tokenize(pattern)))
	if err != nil {
		return nil, fmt.Errorf("failed to convert %q to postfix: %w", pattern, err)
	}

	return postfix, nil
}
