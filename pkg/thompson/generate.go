package thompson

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/KromDaniel/thompson/internal/compiler"
	"github.com/KromDaniel/thompson/internal/nfa"
	"github.com/KromDaniel/thompson/internal/syntax"
)

// Options configures source generation.
type Options struct {
	// Pattern is the pattern to compile. The empty pattern is valid and
	// accepts only the empty word.
	Pattern string

	// Name is the generated struct type (e.g., "Email" generates
	// "type Email struct{}" and "var CompiledEmail = Email{}")
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// GenerateTestFile generates a test file comparing the generated matcher
	// with the standard library regexp (default: true if TestFileInputs provided)
	GenerateTestFile bool

	// TestFileInputs is a list of test inputs for the generated test file.
	// If empty and GenerateTestFile is true, defaults to []string{"example"}
	TestFileInputs []string

	// Verbose logs the automaton and generation steps to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Name == "" {
		return errors.New("name cannot be empty")
	}
	if !token.IsIdentifier(o.Name) || !token.IsExported(o.Name) {
		return fmt.Errorf("name %q must be an exported Go identifier", o.Name)
	}
	if o.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}
	if o.Package == "" {
		return errors.New("package cannot be empty")
	}
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("package %q is not a valid Go identifier", o.Package)
	}
	return nil
}

// Generate writes a Go source file with a matcher for opts.Pattern.
// It returns an error if the pattern is invalid or code generation fails.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	a, err := nfa.Compile(opts.Pattern)
	if err != nil {
		return err
	}

	generateTestFile := opts.GenerateTestFile
	testInputs := opts.TestFileInputs
	if len(testInputs) > 0 {
		generateTestFile = true
	} else if generateTestFile {
		testInputs = []string{"example"}
	}

	c := compiler.New(compiler.Config{
		Pattern:          opts.Pattern,
		Postfix:          syntax.Format(a.Postfix()),
		Name:             opts.Name,
		Package:          opts.Package,
		Automaton:        a,
		GenerateTestFile: generateTestFile,
		TestFileInputs:   testInputs,
		Verbose:          opts.Verbose,
	})
	c.SetOutputFile(opts.OutputFile)

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}
