// Package syntax validates patterns and turns them into postfix token streams.
package syntax

import "strings"

// Kind identifies the role of a token in a pattern.
type Kind uint8

const (
	// Literal matches a single input symbol.
	Literal Kind = iota
	// Star is the closure operator (zero or more).
	Star
	// Plus is the one-or-more operator.
	Plus
	// Alternate is the alternation operator.
	Alternate
	// Concat is the explicit concatenation marker inserted by InsertConcat.
	// It never appears in a raw pattern.
	Concat
	// LeftParen opens a group.
	LeftParen
	// RightParen closes a group.
	RightParen
)

// Reserved operator characters. None of them can be matched literally.
const (
	opStar       = '*'
	opPlus       = '+'
	opAlternate  = '|'
	opLeftParen  = '('
	opRightParen = ')'

	// concatMarker is how Concat is rendered by Format.
	concatMarker = '.'
)

// Token is a single element of a tokenized pattern.
type Token struct {
	Kind   Kind
	Symbol rune // only meaningful for Literal
}

// IsQuantifier reports whether t is Star or Plus.
func (t Token) IsQuantifier() bool {
	return t.Kind == Star || t.Kind == Plus
}

// IsOperator reports whether t is one of the infix or postfix operators.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Star, Plus, Alternate, Concat:
		return true
	}
	return false
}

// String renders the token the way it appears in a pattern.
func (t Token) String() string {
	switch t.Kind {
	case Literal:
		return string(t.Symbol)
	case Star:
		return string(opStar)
	case Plus:
		return string(opPlus)
	case Alternate:
		return string(opAlternate)
	case Concat:
		return string(concatMarker)
	case LeftParen:
		return string(opLeftParen)
	case RightParen:
		return string(opRightParen)
	}
	return "?"
}

// IsReserved reports whether r is one of the operator characters.
func IsReserved(r rune) bool {
	switch r {
	case opStar, opPlus, opAlternate, opLeftParen, opRightParen:
		return true
	}
	return false
}

func kindOf(r rune) Kind {
	switch r {
	case opStar:
		return Star
	case opPlus:
		return Plus
	case opAlternate:
		return Alternate
	case opLeftParen:
		return LeftParen
	case opRightParen:
		return RightParen
	}
	return Literal
}

// Tokenize splits a raw pattern into tokens, one per rune.
// It does not validate and never produces Concat.
func Tokenize(pattern string) []Token {
	tokens := make([]Token, 0, len(pattern))
	for _, r := range pattern {
		kind := kindOf(r)
		if kind == Literal {
			tokens = append(tokens, Token{Kind: Literal, Symbol: r})
			continue
		}
		tokens = append(tokens, Token{Kind: kind})
	}
	return tokens
}

// Format renders a token stream, using '.' for Concat.
func Format(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
	}
	return sb.String()
}
