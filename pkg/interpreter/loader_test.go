package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"quetite/interpreter-go/pkg/lexer"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func runFile(t *testing.T, path string) (string, error) {
	t.Helper()
	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	_, err := interp.RunFile(path)
	return out.String(), err
}

func TestUseMergesGlobals(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "lib.qte", "fn helper(n) do\nreturn n * 2\nend\nvar shared = 7\n")
	main := writeScript(t, dir, "main.qte", "use \"lib.qte\"\nprintln(helper(21))\nprintln(shared)\n")

	out, err := runFile(t, main)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "42\n7\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestUseResolvesRelativeToIncludingFile(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "sub/inner.qte", "var fromInner = \"ok\"\n")
	writeScript(t, dir, "sub/outer.qte", "use \"inner.qte\"\n")
	main := writeScript(t, dir, "main.qte", "use \"sub/outer.qte\"\nprintln(fromInner)\n")

	out, err := runFile(t, main)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestUseLoadsOncePerPath(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "noisy.qte", "println(\"loaded\")\n")
	main := writeScript(t, dir, "main.qte", "use \"noisy.qte\"\nuse \"noisy.qte\"\n")

	out, err := runFile(t, main)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "loaded\n" {
		t.Fatalf("script should load once, output = %q", out)
	}
}

func TestUseCycleIsValueErr(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a.qte", "use \"b.qte\"\n")
	writeScript(t, dir, "b.qte", "use \"a.qte\"\n")
	main := writeScript(t, dir, "main.qte", "use \"a.qte\"\n")

	_, err := runFile(t, main)
	rtErr, ok := err.(*RuntimeError)
	if !ok || rtErr.Kind != "ValueErr" {
		t.Fatalf("expected ValueErr for a use cycle, got %v", err)
	}
}

func TestUseMissingFileIsIOErr(t *testing.T) {
	dir := t.TempDir()
	main := writeScript(t, dir, "main.qte", "use \"nope.qte\"\n")

	_, err := runFile(t, main)
	rtErr, ok := err.(*RuntimeError)
	if !ok || rtErr.Kind != "IOErr" {
		t.Fatalf("expected IOErr, got %v", err)
	}
}

func TestUsePathMustBeStr(t *testing.T) {
	err := runtimeErr(t, "use 42\n")
	if err.Kind != "TypeErr" {
		t.Fatalf("kind = %s, want TypeErr", err.Kind)
	}
}

func TestUseFailureIsCatchable(t *testing.T) {
	src := `try do
use "definitely-missing.qte"
catch e do
println(e)
end
`
	expectOut(t, src, "IOErr\n")
}

func TestUseSearchPaths(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "deps")
	writeScript(t, libDir, "vendored.qte", "var vendored = true\n")
	main := writeScript(t, dir, "main.qte", "use \"vendored.qte\"\nprintln(vendored)\n")

	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	interp.AddSearchPath(libDir)
	if _, err := interp.RunFile(main); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "true\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunFileReportsParseErrorBatch(t *testing.T) {
	dir := t.TempDir()
	main := writeScript(t, dir, "main.qte", "var = 1\nvar = 2\n")
	_, err := runFile(t, main)
	syntax, ok := err.(*SyntaxErrors)
	if !ok {
		t.Fatalf("expected *SyntaxErrors, got %T", err)
	}
	if syntax.Count() < 2 {
		t.Fatalf("expected both errors, got %d", syntax.Count())
	}
}

func TestRunSourceDeterministic(t *testing.T) {
	src := "var total = 0\nfor i in 1..=10 do\ntotal += i\nend\nprintln(total)\n"
	a := run(t, src)
	b := run(t, src)
	if a != b || a != "55\n" {
		t.Fatalf("outputs differ or wrong: %q vs %q", a, b)
	}
}

func TestSysArgs(t *testing.T) {
	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	interp.Argv = []string{"one", "two"}
	if _, err := interp.RunSource(lexer.NewSource("test.qte", "println(Sys.args().len())\nprintln(Sys.args()[1])\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "2\ntwo\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestReadFromStdin(t *testing.T) {
	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	interp.Stdin = bytes.NewBufferString("hello\n")
	if _, err := interp.RunSource(lexer.NewSource("test.qte", "println(read())\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "hello\n" {
		t.Fatalf("output = %q", out.String())
	}
}
