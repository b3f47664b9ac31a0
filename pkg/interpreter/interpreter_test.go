package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// run evaluates a program and returns captured stdout.
func run(t *testing.T, src string) string {
	t.Helper()
	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	if _, err := interp.RunSource(lexer.NewSource("test.qte", src)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String()
}

// lastValue evaluates a program and returns its final value.
func lastValue(t *testing.T, src string) runtime.Value {
	t.Helper()
	interp := New()
	interp.Stdout = &bytes.Buffer{}
	val, err := interp.RunSource(lexer.NewSource("test.qte", src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return val
}

// runtimeErr evaluates a program expecting an uncaught runtime error.
func runtimeErr(t *testing.T, src string) *RuntimeError {
	t.Helper()
	interp := New()
	interp.Stdout = &bytes.Buffer{}
	_, err := interp.RunSource(lexer.NewSource("test.qte", src))
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	rtErr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	return rtErr
}

func expectOut(t *testing.T, src, want string) {
	t.Helper()
	if got := run(t, src); got != want {
		t.Fatalf("output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

//-----------------------------------------------------------------------------
// Reference scenarios
//-----------------------------------------------------------------------------

func TestScenarioArithmetic(t *testing.T) {
	expectOut(t, "println(1 + 2 * 3)\n", "7\n")
}

func TestScenarioValueCopySemantics(t *testing.T) {
	expectOut(t, "var a = 10\nvar b = a\na = 20\nprintln(b)\n", "10\n")
}

func TestScenarioClosureCounter(t *testing.T) {
	src := `fn mk(n) do
fn inc() do
n = n + 1
return n
end
return inc
end
var f = mk(5)
println(f())
println(f())
`
	expectOut(t, src, "6\n7\n")
}

func TestScenarioForOverRange(t *testing.T) {
	expectOut(t, "for i in 0..3 do\nprintln(i)\nend\n", "0\n1\n2\n")
}

func TestScenarioObjectArithmetic(t *testing.T) {
	src := `obj P do
init(x, y) do
self.x = x
self.y = y
end
add(self, o) do
return P(self.x + o.x, self.y + o.y)
end
end
var r = P(1, 2).add(P(3, 4))
println(r.x)
println(r.y)
`
	expectOut(t, src, "4\n6\n")
}

func TestScenarioTryCatchEnsure(t *testing.T) {
	src := `try do
throw err("ValueErr", "bad")
catch e, v do
println(e)
println(v)
ensure do
println("done")
end
`
	expectOut(t, src, "ValueErr\nbad\ndone\n")
}

//-----------------------------------------------------------------------------
// Value semantics
//-----------------------------------------------------------------------------

func TestStringConcat(t *testing.T) {
	expectOut(t, "println(\"foo\" + \"bar\")\n", "foobar\n")
}

func TestListConcatMakesNewList(t *testing.T) {
	src := `var a = [1, 2]
var b = [3]
var c = a + b
c.push(4)
println(a.len())
println(c.len())
`
	expectOut(t, src, "2\n4\n")
}

func TestListsShareHandles(t *testing.T) {
	src := `var a = [1, 2]
var b = a
b.push(3)
println(a.len())
`
	expectOut(t, src, "3\n")
}

func TestDivisionByZeroIsIEEE(t *testing.T) {
	expectOut(t, "println(1 / 0)\nprintln(-1 / 0)\n", "inf\n-inf\n")
}

func TestShortCircuitSkipsSideEffect(t *testing.T) {
	src := `var called = false
fn effect() do
called = true
return true
end
false and effect()
true or effect()
println(called)
`
	expectOut(t, src, "false\n")
}

func TestLogicalReturnsOperand(t *testing.T) {
	expectOut(t, "println(Null or \"fallback\")\n", "fallback\n")
	expectOut(t, "println(0 and \"unreached\")\n", "0\n")
}

func TestNullishCoalescing(t *testing.T) {
	expectOut(t, "println(Null ?? 5)\nprintln(0 ?? 5)\nprintln(false ?? 5)\n", "5\n0\nfalse\n")
}

func TestNullishSkipsRightWhenLeftPresent(t *testing.T) {
	src := `var called = false
fn effect() do
called = true
return 1
end
var x = 2 ?? effect()
println(called)
`
	expectOut(t, src, "false\n")
}

func TestTernary(t *testing.T) {
	expectOut(t, "println(1 < 2 ? \"yes\" : \"no\")\n", "yes\n")
}

func TestUnaryNotTruthiness(t *testing.T) {
	expectOut(t, "println(!Null)\nprintln(!0)\nprintln(!\"\")\nprintln(!1)\n", "true\ntrue\nfalse\nfalse\n")
}

func TestEqualityAcrossKinds(t *testing.T) {
	expectOut(t, "println(1 == \"1\")\nprintln(Null == 0)\nprintln(Null == Null)\n", "false\nfalse\ntrue\n")
}

func TestCompoundAssignment(t *testing.T) {
	expectOut(t, "var a = 1\na += 4\na -= 2\na++\na--\nprintln(a)\n", "3\n")
}

func TestCompoundAssignOnStrings(t *testing.T) {
	expectOut(t, "var s = \"ab\"\ns += \"cd\"\nprintln(s)\n", "abcd\n")
}

func TestRangeInclusive(t *testing.T) {
	expectOut(t, "println((0..=3).len())\nprintln((0..3).len())\n", "4\n3\n")
}

func TestRangeWithStep(t *testing.T) {
	src := `for i in 0..=10 step 5 do
println(i)
end
`
	expectOut(t, src, "0\n5\n10\n")
}

func TestIndexingStrings(t *testing.T) {
	expectOut(t, "println(\"hello\"[1])\nprintln(\"hello\"[0..2])\n", "e\nhe\n")
}

func TestIndexingLists(t *testing.T) {
	expectOut(t, "var l = [10, 20, 30]\nprintln(l[2])\nprintln((l[0..=1]).len())\n", "30\n2\n")
}

func TestIndexAssignment(t *testing.T) {
	expectOut(t, "var l = [1, 2]\nl[0] = 9\nprintln(l[0])\n", "9\n")
	expectOut(t, "var s = \"cat\"\ns[0] = \"b\"\nprintln(s)\n", "bat\n")
}

func TestDictLiteralAndIndex(t *testing.T) {
	src := `var d = {"a": 1, 2: "two"}
println(d["a"])
println(d[2])
d["b"] = 5
println(d.len())
`
	expectOut(t, src, "1\ntwo\n3\n")
}

func TestScopingBlockLocals(t *testing.T) {
	src := `var x = 1
do
var x = 2
println(x)
end
println(x)
`
	expectOut(t, src, "2\n1\n")
}

func TestAssignmentReachesOuterScope(t *testing.T) {
	src := `var x = 1
do
x = 5
end
println(x)
`
	expectOut(t, src, "5\n")
}

func TestEvaluationLeftToRight(t *testing.T) {
	src := `var trace = ""
fn tag(name, v) do
trace = trace + name
return v
end
tag("a", 1) + tag("b", 2) * tag("c", 3)
println(trace)
`
	expectOut(t, src, "abc\n")
}

func TestTypeFunction(t *testing.T) {
	src := `println(type(1))
println(type("s"))
println(type([1]))
println(type({}))
println(type(Null))
println(type(true))
`
	expectOut(t, src, "Num\nStr\nList\nDict\nNull\nBool\n")
}

func TestLastValueOfProgram(t *testing.T) {
	val := lastValue(t, "1 + 2\n")
	if runtime.Format(val) != "3" {
		t.Fatalf("last value = %v", runtime.Format(val))
	}
}

func TestParseErrorsBlockEvaluation(t *testing.T) {
	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	_, err := interp.RunSource(lexer.NewSource("test.qte", "println(1)\nvar = broken\n"))
	if err == nil {
		t.Fatalf("expected syntax errors")
	}
	if _, ok := err.(*SyntaxErrors); !ok {
		t.Fatalf("expected *SyntaxErrors, got %T", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing may execute when parsing fails, printed %q", out.String())
	}
}

func TestFunctionValuesAreFirstClass(t *testing.T) {
	src := `fn twice(f, x) do
return f(f(x))
end
fn inc(n) do
return n + 1
end
println(twice(inc, 5))
`
	expectOut(t, src, "7\n")
}

func TestClosureSeesCurrentValue(t *testing.T) {
	src := `var v = 1
fn show() do
println(v)
end
v = 2
show()
`
	expectOut(t, src, "2\n")
}

func TestDumpTokensRoundTripLexemes(t *testing.T) {
	source := lexer.NewSource("test.qte", "var x = 1 + 2\n")
	tokens, errs := lexer.New(source).Tokenize()
	if len(errs) > 0 {
		t.Fatalf("lex errors: %v", errs)
	}
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Kind == lexer.TokenEOL || tok.Kind == lexer.TokenEOF {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Lexeme)
	}
	retokens, errs := lexer.New(lexer.NewSource("test.qte", b.String()+"\n")).Tokenize()
	if len(errs) > 0 {
		t.Fatalf("relex errors: %v", errs)
	}
	if len(retokens) != len(tokens) {
		t.Fatalf("re-lex produced %d tokens, want %d", len(retokens), len(tokens))
	}
	for idx := range tokens {
		if tokens[idx].Kind != retokens[idx].Kind {
			t.Fatalf("token %d kind changed: %v vs %v", idx, tokens[idx].Kind, retokens[idx].Kind)
		}
	}
}
