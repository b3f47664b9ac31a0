package interpreter

import (
	"fmt"
	"strings"

	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/parser"
)

// SyntaxErrors batches the violations found in one source: the lexical ones
// when lexing fails (the parser is then not run), otherwise the grammatical
// ones. A non-empty batch prevents evaluation entirely.
type SyntaxErrors struct {
	Lex   []*lexer.Error
	Parse []*parser.Error
}

func (e *SyntaxErrors) Count() int {
	return len(e.Lex) + len(e.Parse)
}

func (e *SyntaxErrors) Error() string {
	var b strings.Builder
	for _, le := range e.Lex {
		fmt.Fprintf(&b, "SyntaxError: %s (%s)\n", le.Msg, le.Span)
	}
	for _, pe := range e.Parse {
		fmt.Fprintf(&b, "SyntaxError: %s (%s)\n", pe.Msg, pe.Span)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ParseSource runs the lexer and parser over a source buffer.
func ParseSource(source *lexer.Source) (*ast.Program, error) {
	tokens, lexErrs := lexer.New(source).Tokenize()
	if len(lexErrs) > 0 {
		return nil, &SyntaxErrors{Lex: lexErrs}
	}
	program, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		return nil, &SyntaxErrors{Parse: parseErrs}
	}
	return program, nil
}
