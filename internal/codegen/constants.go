// Package codegen provides code generation helpers and constants.
package codegen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Variable names used in generated code
const (
	InputName   = "input"
	OffsetName  = "offset"
	SymbolName  = "c"
	SizeName    = "size"
	CurrentName = "current"
	NextName    = "next"
)

// WordBits is the width of one word of a generated state set.
const WordBits = 64

// StateComment returns the comment placed above a state's transition block.
func StateComment(id int) string {
	return fmt.Sprintf("State %d", id)
}

// Words returns how many uint64 words a state set over n states needs.
func Words(n int) int {
	return (n + WordBits - 1) / WordBits
}

// Mask packs a list of state indices into a bitset of the given word count.
func Mask(states []int, words int) []uint64 {
	mask := make([]uint64, words)
	for _, s := range states {
		mask[s/WordBits] |= 1 << (uint(s) % WordBits)
	}
	return mask
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
