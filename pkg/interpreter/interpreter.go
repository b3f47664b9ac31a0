package interpreter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Quetite AST nodes against a lexically
// scoped environment chain rooted at the global frame.
type Interpreter struct {
	global *runtime.Environment

	protos     map[runtime.Kind]map[string]runtime.NativeFunctionValue
	valueProto map[string]runtime.NativeFunctionValue

	// errObject backs err(kind, msg); thrown instances of it carry their
	// kind through catch clauses.
	errObject *runtime.ObjectValue

	loader *Loader

	// scriptDir anchors relative use paths to the including file.
	scriptDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Argv   []string
}

// New returns an interpreter with the standard natives installed into its
// global environment.
func New() *Interpreter {
	i := &Interpreter{
		global:     runtime.NewEnvironment(nil),
		protos:     make(map[runtime.Kind]map[string]runtime.NativeFunctionValue),
		valueProto: make(map[string]runtime.NativeFunctionValue),
		loader:     newLoader(),
		scriptDir:  ".",
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
	i.installNatives()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// SetScriptDir anchors relative use paths (normally the entry script's
// directory).
func (i *Interpreter) SetScriptDir(dir string) {
	if dir == "" {
		dir = "."
	}
	i.scriptDir = dir
}

// AddSearchPath appends a directory consulted by use after the including
// file's directory.
func (i *Interpreter) AddSearchPath(dir string) {
	i.loader.searchPaths = append(i.loader.searchPaths, dir)
}

// RuntimeError is an uncaught thrown outcome surfaced to the host.
type RuntimeError struct {
	Kind  string
	Msg   string
	Span  lexer.Span
	Value runtime.Value
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// EvaluateProgram executes top-level statements in order and returns the
// last evaluated value (Null when the program is empty). Uncaught thrown
// outcomes surface as *RuntimeError.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	var last runtime.Value = runtime.NullValue{}
	for _, stmt := range program.Body {
		val, err := i.evaluateStatement(stmt, i.global)
		if err != nil {
			if ts, ok := err.(throwSignal); ok {
				return nil, &RuntimeError{Kind: ts.kind, Msg: ts.msg, Span: ts.span, Value: ts.value}
			}
			return nil, err
		}
		last = val
	}
	return last, nil
}

// RunFile loads, lexes, parses and evaluates a script. Lex and parse
// errors are returned as a batch without evaluating anything.
func (i *Interpreter) RunFile(path string) (runtime.Value, error) {
	source, err := lexer.ReadSource(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		i.SetScriptDir(filepath.Dir(abs))
	}
	return i.RunSource(source)
}

// RunSource drives the lex/parse/evaluate pipeline over in-memory text.
func (i *Interpreter) RunSource(source *lexer.Source) (runtime.Value, error) {
	program, err := ParseSource(source)
	if err != nil {
		return nil, err
	}
	return i.EvaluateProgram(program)
}

//-----------------------------------------------------------------------------
// Control-flow signals
//-----------------------------------------------------------------------------

// Statement outcomes other than normal completion travel as error values;
// each statement's executor inspects and propagates them, which gives
// ensure blocks a single place to run.

type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return" }

type throwSignal struct {
	kind  string
	value runtime.Value
	msg   string
	span  lexer.Span
}

func (t throwSignal) Error() string {
	return fmt.Sprintf("%s: %s", t.kind, t.msg)
}

// throwErr raises a runtime error as a catchable thrown outcome whose
// payload is the message string.
func (i *Interpreter) throwErr(kind runtime.ErrKind, span lexer.Span, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return throwSignal{kind: string(kind), value: runtime.NewStr(msg), msg: msg, span: span}
}

// raise converts an error returned by a native or the runtime layer into a
// thrown outcome, preserving signals that already are one.
func raise(err error, span lexer.Span) error {
	switch e := err.(type) {
	case throwSignal:
		return e
	case breakSignal, continueSignal, returnSignal:
		return err
	case *runtime.Error:
		located := e.At(span)
		return throwSignal{
			kind:  string(located.Kind),
			value: runtime.NewStr(located.Msg),
			msg:   located.Msg,
			span:  located.Span,
		}
	default:
		return throwSignal{
			kind:  string(runtime.ErrNative),
			value: runtime.NewStr(err.Error()),
			msg:   err.Error(),
			span:  span,
		}
	}
}
