package compiler

import (
	"sort"
	"unicode/utf8"

	"github.com/KromDaniel/thompson/internal/nfa"
	"github.com/KromDaniel/thompson/internal/syntax"
)

// AnalysisResult describes a compiled pattern without generating code.
type AnalysisResult struct {
	Pattern string `json:"pattern"`
	Postfix string `json:"postfix"`

	// FeatureLabels are derived from pattern structure (sorted alphabetically)
	FeatureLabels []string `json:"feature_labels"`

	States             int    `json:"states"`
	Start              int    `json:"start"`
	End                int    `json:"end"`
	SymbolTransitions  int    `json:"symbol_transitions"`
	EpsilonTransitions int    `json:"epsilon_transitions"`
	Alphabet           string `json:"alphabet"`
	AcceptsEmpty       bool   `json:"accepts_empty"`
}

// AnalyzePattern validates and compiles pattern and reports its shape.
// It returns an error if the pattern is invalid.
func AnalyzePattern(pattern string) (*AnalysisResult, error) {
	a, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}

	return Analyze(pattern, a), nil
}

// Analyze reports the shape of an already compiled pattern.
func Analyze(pattern string, a *nfa.Automaton) *AnalysisResult {
	symbol, epsilon := a.EdgeCounts()

	return &AnalysisResult{
		Pattern:            pattern,
		Postfix:            syntax.Format(a.Postfix()),
		FeatureLabels:      deriveFeatureLabels(pattern),
		States:             a.Len(),
		Start:              a.Start(),
		End:                a.End(),
		SymbolTransitions:  symbol,
		EpsilonTransitions: epsilon,
		Alphabet:           string(a.Alphabet()),
		AcceptsEmpty:       nfa.NewSimulator(a).IsAccepting(),
	}
}

// deriveFeatureLabels names the operators and character kinds a pattern uses.
func deriveFeatureLabels(pattern string) []string {
	labels := make(map[string]struct{})

	if pattern == "" {
		labels["Empty"] = struct{}{}
	}
	for _, tok := range syntax.Tokenize(pattern) {
		switch tok.Kind {
		case syntax.Star:
			labels["Star"] = struct{}{}
		case syntax.Plus:
			labels["Plus"] = struct{}{}
		case syntax.Alternate:
			labels["Alternation"] = struct{}{}
		case syntax.LeftParen:
			labels["Groups"] = struct{}{}
		case syntax.Literal:
			if tok.Symbol >= utf8.RuneSelf {
				labels["Multibyte"] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(labels))
	for l := range labels {
		result = append(result, l)
	}
	sort.Strings(result)
	return result
}
