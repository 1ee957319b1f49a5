package stream

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// prefixMatcher accepts words that start with "a".
type prefixMatcher struct{}

func (prefixMatcher) MatchString(s string) bool { return strings.HasPrefix(s, "a") }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BufferSize != 4*1024 {
		t.Errorf("DefaultConfig().BufferSize = %d, want %d", cfg.BufferSize, 4*1024)
	}
	if cfg.MaxLineLength != 1024*1024 {
		t.Errorf("DefaultConfig().MaxLineLength = %d, want %d", cfg.MaxLineLength, 1024*1024)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero config is valid", Config{}, false},
		{"defaults are valid", DefaultConfig(), false},
		{"buffer equal to max line", Config{BufferSize: 100, MaxLineLength: 100}, false},
		{"negative buffer size", Config{BufferSize: -1}, true},
		{"negative max line length", Config{MaxLineLength: -1}, true},
		{"buffer larger than max line", Config{BufferSize: 200, MaxLineLength: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Config
	}{
		{"zero config", Config{}, DefaultConfig()},
		{"custom values kept", Config{BufferSize: 16, MaxLineLength: 64}, Config{BufferSize: 16, MaxLineLength: 64}},
		{"buffer clamped to max line", Config{MaxLineLength: 10}, Config{BufferSize: 10, MaxLineLength: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ApplyDefaults(); got != tt.want {
				t.Errorf("ApplyDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMatchLines(t *testing.T) {
	input := "abc\nxyz\r\n\na\nb"

	var got []Line
	err := MatchLines(strings.NewReader(input), prefixMatcher{}, DefaultConfig(), func(l Line) bool {
		got = append(got, l)
		return true
	})
	if err != nil {
		t.Fatalf("MatchLines() error: %v", err)
	}

	want := []Line{
		{Number: 1, Text: "abc", Matched: true},
		{Number: 2, Text: "xyz", Matched: false},
		{Number: 3, Text: "", Matched: false},
		{Number: 4, Text: "a", Matched: true},
		{Number: 5, Text: "b", Matched: false},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMatchLinesEarlyStop(t *testing.T) {
	calls := 0
	err := MatchLines(strings.NewReader("a\nb\nc\n"), prefixMatcher{}, Config{}, func(Line) bool {
		calls++
		return calls < 2
	})
	if err != nil {
		t.Fatalf("MatchLines() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("callback called %d times, want 2", calls)
	}
}

func TestMatchLinesEmptyInput(t *testing.T) {
	err := MatchLines(strings.NewReader(""), prefixMatcher{}, Config{}, func(Line) bool {
		t.Error("callback called for empty input")
		return true
	})
	if err != nil {
		t.Errorf("MatchLines() error: %v", err)
	}
}

func TestMatchLinesTooLong(t *testing.T) {
	input := "ok\n" + strings.Repeat("a", 100) + "\n"
	cfg := Config{BufferSize: 8, MaxLineLength: 32}

	err := MatchLines(strings.NewReader(input), prefixMatcher{}, cfg, func(Line) bool { return true })
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("MatchLines() error = %v, want ErrLineTooLong", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
}

func TestMatchLinesLengthLimit(t *testing.T) {
	const limit = 32
	cfg := Config{BufferSize: 8, MaxLineLength: limit}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"at limit with newline", strings.Repeat("a", limit) + "\n", false},
		{"at limit with crlf", strings.Repeat("a", limit) + "\r\n", false},
		{"at limit at EOF", strings.Repeat("a", limit), false},
		{"over limit with newline", strings.Repeat("a", limit+1) + "\n", true},
		{"over limit with crlf", strings.Repeat("a", limit+1) + "\r\n", true},
		{"over limit at EOF", strings.Repeat("a", limit+1), true},
		{"at limit after short line", "ab\n" + strings.Repeat("a", limit) + "\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last Line
			err := MatchLines(strings.NewReader(tt.input), prefixMatcher{}, cfg, func(l Line) bool {
				last = l
				return true
			})
			if tt.wantErr {
				if !errors.Is(err, ErrLineTooLong) {
					t.Fatalf("MatchLines() error = %v, want ErrLineTooLong", err)
				}
				if !strings.Contains(err.Error(), "line 1") {
					t.Errorf("error %q should name line 1", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("MatchLines() error: %v", err)
			}
			if len(last.Text) != limit || !last.Matched {
				t.Errorf("last line = %d bytes (matched %v), want %d bytes matched", len(last.Text), last.Matched, limit)
			}
		})
	}
}

func TestMatchLinesInvalidConfig(t *testing.T) {
	err := MatchLines(strings.NewReader("a"), prefixMatcher{}, Config{BufferSize: -1}, func(Line) bool { return true })
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("MatchLines() error = %v, want ErrInvalidConfig", err)
	}
}

func TestFilter(t *testing.T) {
	var out bytes.Buffer

	n, err := Filter(strings.NewReader("apple\nbanana\navocado\ncherry\n"), &out, prefixMatcher{}, Config{})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Filter() = %d, want 2", n)
	}
	if got, want := out.String(), "apple\navocado\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFilterWriteError(t *testing.T) {
	n, err := Filter(strings.NewReader("a\na\n"), failingWriter{}, prefixMatcher{}, Config{})
	if err == nil {
		t.Fatal("Filter() should fail when the writer fails")
	}
	if n != 0 {
		t.Errorf("Filter() = %d, want 0", n)
	}
}
