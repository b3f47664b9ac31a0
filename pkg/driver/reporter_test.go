package driver

import (
	"bytes"
	"strings"
	"testing"

	"quetite/interpreter-go/pkg/interpreter"
	"quetite/interpreter-go/pkg/lexer"
)

func TestErrorAtShowsKindAndSpan(t *testing.T) {
	var out bytes.Buffer
	source := lexer.NewSource("demo.qte", "var x = 1\nprintln(missing)\n")
	NewReporter(&out).ErrorAt("NameErr", "undefined variable 'missing'",
		lexer.Span{File: "demo.qte", Line: 2, Col: 9, Len: 7}, source)

	text := out.String()
	for _, want := range []string{"NameErr:", "undefined variable 'missing'", "demo.qte:2:9", "println(missing)", "^^^^^^^"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestSyntaxErrorBatchPrintsAll(t *testing.T) {
	source := lexer.NewSource("demo.qte", "var = 1\nvar = 2\n")
	_, err := interpreter.ParseSource(source)
	batch, ok := err.(*interpreter.SyntaxErrors)
	if !ok {
		t.Fatalf("expected *SyntaxErrors, got %T", err)
	}

	var out bytes.Buffer
	NewReporter(&out).SyntaxErrors(batch, source)
	if got := strings.Count(out.String(), "SyntaxError:"); got != batch.Count() {
		t.Fatalf("printed %d errors, want %d", got, batch.Count())
	}
}

func TestUnlocatedErrorSkipsSpanLine(t *testing.T) {
	var out bytes.Buffer
	NewReporter(&out).ErrorAt("IOErr", "boom", lexer.Span{}, nil)
	if strings.Contains(out.String(), "-->") {
		t.Fatalf("unlocated error must not print a span line:\n%s", out.String())
	}
}
