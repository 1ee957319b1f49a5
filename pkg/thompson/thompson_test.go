package thompson

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestCompileAndMatch(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"", []string{""}, []string{"a"}},
		{"jsh*fq", []string{"jsfq", "jshfq", "jshhhfq"}, []string{"jsh", "jshf", "jsffq", ""}},
		{"(t*|f)*r*(k|y)*", []string{"", "tft", "rrr", "tfrky", "kyk"}, []string{"rt", "kf", "x"}},
		{"a+b", []string{"ab", "aaab"}, []string{"b", "a", "aba"}},
		{"a.b", []string{"a.b"}, []string{"axb", "ab"}},
		{"(ä|ö)+ü", []string{"äü", "öäü"}, []string{"ü", "äö"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			for _, s := range tt.accept {
				if !re.MatchString(s) {
					t.Errorf("MatchString(%q) = false, want true", s)
				}
			}
			for _, s := range tt.reject {
				if re.MatchString(s) {
					t.Errorf("MatchString(%q) = true, want false", s)
				}
			}
		})
	}
}

func TestCompileInvalid(t *testing.T) {
	for _, pattern := range []string{"*a", "a|", "(a", "a)", "()", "a**", "a||b", "(|a)", "(a|)"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := Compile(pattern)
			if !errors.Is(err, ErrInvalidPattern) {
				t.Fatalf("Compile(%q) error = %v, want ErrInvalidPattern", pattern, err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("Compile(%q) error %T is not a *SyntaxError", pattern, err)
			}
			if Validate(pattern) == nil {
				t.Errorf("Validate(%q) = nil, want error", pattern)
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustCompile did not panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, `"(a"`) {
			t.Errorf("panic = %v, want message naming the pattern", r)
		}
	}()
	MustCompile("(a")
}

func TestMatch(t *testing.T) {
	ok, err := Match("a*b", "aaab")
	if err != nil || !ok {
		t.Errorf("Match() = %v, %v, want true, nil", ok, err)
	}
	if _, err := Match("a|", "a"); err == nil {
		t.Error("Match() with invalid pattern should fail")
	}
}

func TestRegexpAccessors(t *testing.T) {
	re := MustCompile("(t*|f)*r*(k|y)*")

	if got := re.String(); got != "(t*|f)*r*(k|y)*" {
		t.Errorf("String() = %q", got)
	}
	if got := re.Postfix(); got != "t*f|*r*.ky|*." {
		t.Errorf("Postfix() = %q, want %q", got, "t*f|*r*.ky|*.")
	}
	if re.Automaton() == nil || re.Automaton().Len() == 0 {
		t.Error("Automaton() should return the compiled automaton")
	}

	var buf bytes.Buffer
	if err := re.WriteTable(&buf); err != nil {
		t.Fatalf("WriteTable() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Epsilon") {
		t.Errorf("table is missing the Epsilon column:\n%s", buf.String())
	}
}

func TestSimulatorStepping(t *testing.T) {
	re := MustCompile("ab*")
	sim := re.NewSimulator()

	steps := []struct {
		c    rune
		want bool
	}{
		{'a', true},
		{'b', true},
		{'b', true},
		{'a', false},
		{'b', false},
	}

	if sim.IsAccepting() {
		t.Error("simulator should not accept the empty word")
	}
	for i, s := range steps {
		sim.Step(s.c)
		if got := sim.IsAccepting(); got != s.want {
			t.Errorf("step %d (%q): IsAccepting() = %v, want %v", i, s.c, got, s.want)
		}
	}
	if !sim.Dead() {
		t.Error("simulator should be dead after a rejected prefix")
	}
}

func TestRegexpConcurrent(t *testing.T) {
	re := MustCompile("(a|b)*abb")
	words := map[string]bool{"abb": true, "babb": true, "aabb": true, "ab": false, "abba": false}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				for w, want := range words {
					if got := re.MatchString(w); got != want {
						t.Errorf("MatchString(%q) = %v, want %v", w, got, want)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestAnalyze(t *testing.T) {
	result, err := Analyze("(a|b)*c")
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if result.Postfix != "ab|*c." {
		t.Errorf("Postfix = %q, want %q", result.Postfix, "ab|*c.")
	}
	if result.States != 10 {
		t.Errorf("States = %d, want 10", result.States)
	}
	if result.Alphabet != "abc" {
		t.Errorf("Alphabet = %q, want %q", result.Alphabet, "abc")
	}
	if result.AcceptsEmpty {
		t.Error("AcceptsEmpty = true, want false")
	}

	if _, err := Analyze("a||b"); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("Analyze() error = %v, want ErrInvalidPattern", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	valid := Options{Pattern: "a", Name: "A", OutputFile: "a.go", Package: "a"}

	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr bool
	}{
		{"valid", func(*Options) {}, false},
		{"empty pattern is valid", func(o *Options) { o.Pattern = "" }, false},
		{"missing name", func(o *Options) { o.Name = "" }, true},
		{"unexported name", func(o *Options) { o.Name = "matcher" }, true},
		{"name is not an identifier", func(o *Options) { o.Name = "My-Matcher" }, true},
		{"missing output", func(o *Options) { o.OutputFile = "" }, true},
		{"missing package", func(o *Options) { o.Package = "" }, true},
		{"bad package", func(o *Options) { o.Package = "1pkg" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.modify(&opts)
			if err := opts.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "word.go")

	err := Generate(Options{
		Pattern:        "(t*|f)*r*(k|y)*",
		Name:           "Word",
		OutputFile:     output,
		Package:        "word",
		TestFileInputs: []string{"tfrky", "rt"},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	src, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"package word", "type Word struct{}", "func (Word) MatchString(input string) bool"} {
		if !strings.Contains(string(src), want) {
			t.Errorf("generated source missing %q", want)
		}
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "word_test.go")); err != nil {
		t.Errorf("test inputs should enable the test file: %v", err)
	}
}

func TestGenerateErrors(t *testing.T) {
	output := filepath.Join(t.TempDir(), "x.go")

	if err := Generate(Options{Pattern: "a", OutputFile: output, Package: "x"}); err == nil {
		t.Error("Generate() without a name should fail")
	}
	err := Generate(Options{Pattern: "(a", Name: "X", OutputFile: output, Package: "x"})
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("Generate() error = %v, want ErrInvalidPattern", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("invalid pattern should not produce an output file")
	}
}
