// Command thompson reads a pattern from the first line of stdin and then
// reports, for every following line, whether the pattern accepts it.
//
// Usage:
//
//	thompson [-v] [-debug] [-pattern P]
//	thompson -filter [-debug] [-pattern P]
//	thompson -generate -name Name -output file.go [-package pkg] [-input s]... [-test]
//
// In verbose mode (-v) the transition table is printed first, and every
// following line feeds only its first character to the matcher, so a word can
// be entered one character per line. An empty line repeats the current result.
//
// In filter mode (-filter) only the accepted lines are echoed, like grep -x.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/KromDaniel/thompson/internal/codegen"
	"github.com/KromDaniel/thompson/internal/compiler"
	"github.com/KromDaniel/thompson/pkg/thompson"
	"github.com/KromDaniel/thompson/stream"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	verbose  bool
	filter   bool
	debug    bool
	pattern  string
	generate bool
	name     string
	output   string
	pkg      string
	test     bool
	inputs   arrayFlags
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("thompson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.verbose, "v", false, "step one character per line and print the transition table")
	fs.BoolVar(&opts.filter, "filter", false, "print only the lines the pattern accepts")
	fs.BoolVar(&opts.debug, "debug", false, "log the compiled automaton to stderr")
	fs.StringVar(&opts.pattern, "pattern", "", "pattern to compile (default: first line of stdin)")
	fs.BoolVar(&opts.generate, "generate", false, "generate a Go matcher instead of matching stdin")
	fs.StringVar(&opts.name, "name", "", "generated type name, capitalized if needed (generate mode)")
	fs.StringVar(&opts.output, "output", "", "output file (generate mode)")
	fs.StringVar(&opts.pkg, "package", "main", "package of the generated file (generate mode)")
	fs.BoolVar(&opts.test, "test", false, "also generate a test file (generate mode)")
	fs.Var(&opts.inputs, "input", "test input for the generated test file (repeatable)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.verbose && opts.filter {
		return nil, errors.New("-v and -filter cannot be combined")
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	in := bufio.NewReader(stdin)

	pattern, err := readPattern(opts, in)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read pattern: %v\n", err)
		return 1
	}

	if opts.generate {
		return runGenerate(opts, pattern, stdout, stderr)
	}

	re, err := thompson.Compile(pattern)
	if err != nil {
		fmt.Fprintln(stdout, "Error")
		if opts.debug {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}

	logger := compiler.NewLogger(opts.debug)
	logger.SetOutput(stderr)
	logAutomaton(logger, re)

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	switch {
	case opts.verbose:
		err = runVerbose(re, in, out)
	case opts.filter:
		var n int
		n, err = stream.Filter(in, out, re, stream.DefaultConfig())
		logger.Log("Accepted lines: %d", n)
	default:
		err = runNormal(re, in, out)
	}
	if err != nil {
		out.Flush()
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// readPattern returns -pattern when set, otherwise the first line of in.
func readPattern(opts *options, in *bufio.Reader) (string, error) {
	if opts.pattern != "" {
		return opts.pattern, nil
	}

	line, err := in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" && opts.generate {
			return "", errors.New("no pattern given")
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func logAutomaton(logger *compiler.Logger, re *thompson.Regexp) {
	if !logger.Enabled() {
		return
	}
	result, err := thompson.Analyze(re.String())
	if err != nil {
		logger.Log("analysis failed: %v", err)
		return
	}
	logger.Section("Automaton")
	logger.Log("Pattern: %q", result.Pattern)
	logger.Log("Postfix: %q", result.Postfix)
	logger.Log("States: %d (start %d, end %d)", result.States, result.Start, result.End)
	logger.Log("Symbol transitions: %d, epsilon transitions: %d", result.SymbolTransitions, result.EpsilonTransitions)
	logger.Log("Accepts empty word: %v", result.AcceptsEmpty)
}

func runNormal(re *thompson.Regexp, in io.Reader, out *bufio.Writer) error {
	fmt.Fprintln(out, "Ready")
	out.Flush()

	return stream.MatchLines(in, re, stream.DefaultConfig(), func(l stream.Line) bool {
		fmt.Fprintln(out, l.Matched)
		out.Flush()
		return true
	})
}

// stepper feeds the first character of each line to a Simulator.
type stepper struct {
	sim *thompson.Simulator
}

func (s stepper) MatchString(line string) bool {
	if line != "" {
		c, _ := utf8.DecodeRuneInString(line)
		s.sim.Step(c)
	}
	return s.sim.IsAccepting()
}

func runVerbose(re *thompson.Regexp, in io.Reader, out *bufio.Writer) error {
	if err := re.WriteTable(out); err != nil {
		return fmt.Errorf("failed to write transition table: %w", err)
	}

	s := stepper{sim: re.NewSimulator()}
	fmt.Fprintln(out, "Ready")
	fmt.Fprintln(out, s.sim.IsAccepting())
	out.Flush()

	return stream.MatchLines(in, s, stream.DefaultConfig(), func(l stream.Line) bool {
		fmt.Fprintln(out, l.Matched)
		out.Flush()
		return true
	})
}

func runGenerate(opts *options, pattern string, stdout, stderr io.Writer) int {
	err := thompson.Generate(thompson.Options{
		Pattern:          pattern,
		Name:             codegen.UpperFirst(opts.name),
		OutputFile:       opts.output,
		Package:          opts.pkg,
		GenerateTestFile: opts.test,
		TestFileInputs:   opts.inputs,
		Verbose:          opts.debug,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Generated %s\n", opts.output)
	return 0
}
