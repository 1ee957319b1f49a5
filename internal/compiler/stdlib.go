package compiler

import (
	"regexp"
	"strings"

	"github.com/KromDaniel/thompson/internal/syntax"
)

// StdlibPattern rewrites pattern into a standard library regexp that accepts
// exactly the same words. Operators keep their meaning, every other rune is
// quoted, and the whole expression is anchored at both ends because a
// pattern always has to match the entire input.
func StdlibPattern(pattern string) string {
	var sb strings.Builder
	sb.WriteString("^(?:")
	for _, r := range pattern {
		if syntax.IsReserved(r) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(regexp.QuoteMeta(string(r)))
	}
	sb.WriteString(")$")
	return sb.String()
}
