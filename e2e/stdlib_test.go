package e2e

import (
	"regexp"
	"testing"

	"github.com/KromDaniel/thompson/internal/compiler"
)

func stdlibRegexp(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile(compiler.StdlibPattern(pattern))
	if err != nil {
		t.Fatalf("stdlib cannot compile %q: %v", pattern, err)
	}
	return re
}
