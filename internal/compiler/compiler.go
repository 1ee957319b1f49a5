// Package compiler generates Go source code that matches a compiled pattern
// without any runtime dependency on this module.
package compiler

import (
	"errors"
	"fmt"
	"go/format"
	"os"

	"github.com/KromDaniel/thompson/internal/codegen"
	"github.com/KromDaniel/thompson/internal/nfa"
	"github.com/dave/jennifer/jen"
)

// ErrNoAutomaton is returned by Generate when Config.Automaton is nil.
var ErrNoAutomaton = errors.New("no automaton to generate code for")

// Config holds the configuration for code generation.
type Config struct {
	Pattern          string
	Postfix          string // Postfix rendering of Pattern, for the analysis log
	Name             string
	OutputFile       string
	Package          string
	Automaton        *nfa.Automaton
	GenerateTestFile bool     // Generate test file comparing against the standard library
	TestFileInputs   []string // Test inputs for generated test file
	Verbose          bool     // Enable verbose logging of analysis decisions
}

// Compiler generates optimized Go code for one compiled pattern.
type Compiler struct {
	config Config
	file   *jen.File
	logger *Logger
	words  int // uint64 words per generated state set
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	c := &Compiler{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
	if config.Automaton != nil {
		c.words = codegen.Words(config.Automaton.Len())
	}

	c.analyzeAndLog()
	return c
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// Logger returns the compiler's logger, so callers can redirect it.
func (c *Compiler) Logger() *Logger {
	return c.logger
}

// analyzeAndLog logs the shape of the automaton if verbose mode is enabled.
func (c *Compiler) analyzeAndLog() {
	c.logger.Section("Pattern Analysis")
	c.logger.Log("Pattern: %q", c.config.Pattern)
	if c.config.Postfix != "" {
		c.logger.Log("Postfix: %q", c.config.Postfix)
	}

	a := c.config.Automaton
	if a == nil {
		return
	}

	symbol, epsilon := a.EdgeCounts()
	c.logger.Log("NFA states: %d (start %d, end %d)", a.Len(), a.Start(), a.End())
	c.logger.Log("Symbol transitions: %d, epsilon transitions: %d", symbol, epsilon)
	c.logger.Log("Alphabet: %q", string(a.Alphabet()))
	c.logger.Log("State set words: %d", c.words)
	c.logger.Table(a)
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if c.config.Automaton == nil {
		return ErrNoAutomaton
	}

	c.file.Comment(fmt.Sprintf("Code generated by thompson for pattern: %s", c.config.Pattern))
	c.file.Comment("DO NOT EDIT.")
	c.file.Line()

	// Generate the main struct type
	c.file.Type().Id(c.config.Name).Struct()
	c.file.Line()

	// Generate convenience variable for direct usage
	c.file.Var().Id(fmt.Sprintf("Compiled%s", c.config.Name)).Op("=").Id(c.config.Name).Values()
	c.file.Line()

	c.logger.Section("Code Generation")
	gen := NewThompsonGenerator(c)

	c.method("MatchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(gen.GenerateMatchFunction(false)...)

	c.method("MatchBytes").
		Params(jen.Id(codegen.InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(gen.GenerateMatchFunction(true)...)

	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	if err := formatFile(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)

	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
