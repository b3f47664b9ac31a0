package lexer

import (
	"fmt"
	"os"
	"strings"
)

// Span locates a region of source text. Lines and columns are 1-based.
type Span struct {
	File string
	Line int
	Col  int
	Len  int
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// Source holds a script's text together with the filename used for
// diagnostics. The line table backs the reporter's caret output.
type Source struct {
	File  string
	Text  string
	Lines []string
}

// NewSource wraps in-memory text.
func NewSource(file, text string) *Source {
	return &Source{
		File:  file,
		Text:  text,
		Lines: strings.Split(text, "\n"),
	}
}

// ReadSource loads a script from disk.
func ReadSource(file string) (*Source, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return NewSource(file, string(data)), nil
}

// Line returns the 1-based source line, or "" when out of range.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}
	return s.Lines[n-1]
}
