package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quetite/interpreter-go/pkg/interpreter"
	"quetite/interpreter-go/pkg/lexer"
)

var (
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	locStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	caretStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Reporter renders diagnostics: `<ErrorKind>: <message>` followed by the
// source span and an annotated source line.
type Reporter struct {
	Out io.Writer
}

// NewReporter writes diagnostics to the given stream (normally stderr).
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{Out: out}
}

// ErrorAt reports a single located error.
func (r *Reporter) ErrorAt(kind, msg string, span lexer.Span, source *lexer.Source) {
	fmt.Fprintf(r.Out, "%s %s\n", kindStyle.Render(kind+":"), msg)
	if span.Line == 0 {
		return
	}
	fmt.Fprintf(r.Out, "%s %s\n", locStyle.Render("-->"), locStyle.Render(span.String()))
	if source == nil {
		return
	}
	line := source.Line(span.Line)
	if line == "" && span.Line > len(source.Lines) {
		return
	}
	gutter := fmt.Sprintf("%d |", span.Line)
	fmt.Fprintf(r.Out, "%s %s\n", gutterStyle.Render(gutter), line)
	pad := strings.Repeat(" ", len(gutter)+span.Col)
	width := span.Len
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(r.Out, "%s%s\n", pad, caretStyle.Render(strings.Repeat("^", width)))
}

// SyntaxErrors reports a parse batch; every collected error is printed
// before the driver refuses to run.
func (r *Reporter) SyntaxErrors(batch *interpreter.SyntaxErrors, source *lexer.Source) {
	for _, lexErr := range batch.Lex {
		r.ErrorAt("SyntaxError", lexErr.Msg, lexErr.Span, source)
	}
	for _, parseErr := range batch.Parse {
		r.ErrorAt("SyntaxError", parseErr.Msg, parseErr.Span, source)
	}
}

// RuntimeError reports an uncaught thrown outcome.
func (r *Reporter) RuntimeError(err *interpreter.RuntimeError, source *lexer.Source) {
	r.ErrorAt(err.Kind, err.Msg, err.Span, source)
}

// Error reports an unlocated failure.
func (r *Reporter) Error(msg string) {
	fmt.Fprintf(r.Out, "%s %s\n", kindStyle.Render("error:"), msg)
}
