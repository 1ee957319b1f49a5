// Package stream matches every line of an io.Reader against a compiled
// pattern.
//
// Each line is matched as a whole word, exactly as Regexp.MatchString would
// match it; the trailing newline (and a preceding '\r') is not part of the
// word. Results are delivered via callbacks to avoid buffering them.
//
// Example usage:
//
//	re := thompson.MustCompile("(t*|f)*r*(k|y)*")
//	err := stream.MatchLines(os.Stdin, re, stream.DefaultConfig(), func(l stream.Line) bool {
//	    fmt.Println(l.Matched)
//	    return true // continue
//	})
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Matcher reports whether a whole word is accepted.
type Matcher interface {
	MatchString(s string) bool
}

// Config configures line-oriented matching.
type Config struct {
	// BufferSize is the initial size of the read buffer.
	// Default: 4KB (4096).
	BufferSize int

	// MaxLineLength is the longest line accepted, in bytes. Longer lines
	// abort matching with ErrLineTooLong.
	// Default: 1MB.
	MaxLineLength int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize:    4 * 1024,
		MaxLineLength: 1024 * 1024,
	}
}

// ErrLineTooLong is returned when a line exceeds Config.MaxLineLength.
var ErrLineTooLong = errors.New("stream: line too long")

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("stream: invalid config")

// Validate validates the Config and returns an error if invalid.
// Zero values are valid and mean "use the default".
func (c Config) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("%w: negative buffer size %d", ErrInvalidConfig, c.BufferSize)
	}
	if c.MaxLineLength < 0 {
		return fmt.Errorf("%w: negative max line length %d", ErrInvalidConfig, c.MaxLineLength)
	}
	if c.BufferSize > 0 && c.MaxLineLength > 0 && c.BufferSize > c.MaxLineLength {
		return fmt.Errorf("%w: buffer size %d exceeds max line length %d", ErrInvalidConfig, c.BufferSize, c.MaxLineLength)
	}
	return nil
}

// ApplyDefaults returns a Config with defaults applied for any zero values.
func (c Config) ApplyDefaults() Config {
	result := c
	defaults := DefaultConfig()

	if result.MaxLineLength == 0 {
		result.MaxLineLength = defaults.MaxLineLength
	}
	if result.BufferSize == 0 {
		result.BufferSize = defaults.BufferSize
	}
	if result.BufferSize > result.MaxLineLength {
		result.BufferSize = result.MaxLineLength
	}

	return result
}

// Line is the result of matching one input line.
type Line struct {
	// Number is the 1-based line number.
	Number int
	// Text is the line without its terminator.
	Text string
	// Matched reports whether Text is accepted.
	Matched bool
}

// MatchLines matches every line of r against m and calls fn with the result.
// Matching stops early, without error, when fn returns false.
func MatchLines(r io.Reader, m Matcher, cfg Config, fn func(Line) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.ApplyDefaults()

	// The scanner holds the terminator ("\r\n" at most) alongside the line,
	// and needs one spare byte to observe EOF after a full buffer.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, cfg.BufferSize), cfg.MaxLineLength+2)

	n := 0
	for scanner.Scan() {
		n++
		if len(scanner.Bytes()) > cfg.MaxLineLength {
			return fmt.Errorf("line %d: %w", n, ErrLineTooLong)
		}
		text := scanner.Text()
		if !fn(Line{Number: n, Text: text, Matched: m.MatchString(text)}) {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("line %d: %w", n+1, ErrLineTooLong)
		}
		return fmt.Errorf("failed to read line %d: %w", n+1, err)
	}
	return nil
}

// Filter copies the lines of r accepted by m to w, newline terminated, and
// returns how many were written.
func Filter(r io.Reader, w io.Writer, m Matcher, cfg Config) (int, error) {
	written := 0
	var writeErr error

	err := MatchLines(r, m, cfg, func(l Line) bool {
		if !l.Matched {
			return true
		}
		if _, writeErr = io.WriteString(w, l.Text+"\n"); writeErr != nil {
			return false
		}
		written++
		return true
	})
	if err != nil {
		return written, err
	}
	if writeErr != nil {
		return written, fmt.Errorf("failed to write line: %w", writeErr)
	}
	return written, nil
}
