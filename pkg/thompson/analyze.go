package thompson

import (
	"github.com/KromDaniel/thompson/internal/compiler"
)

// AnalysisResult contains the shape of a compiled pattern.
type AnalysisResult = compiler.AnalysisResult

// Analyze compiles pattern and reports its shape without generating code.
// It returns an error if the pattern is invalid.
//
// Example:
//
//	result, err := thompson.Analyze("(a|b)*c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Postfix)  // "ab|*c."
//	fmt.Println(result.States)   // 10
func Analyze(pattern string) (*AnalysisResult, error) {
	return compiler.AnalyzePattern(pattern)
}
