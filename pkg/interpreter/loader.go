package interpreter

import (
	"os"
	"path/filepath"

	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// Loader resolves and caches scripts pulled in by use. Each resolved path
// evaluates at most once per interpreter; cycles are rejected.
type Loader struct {
	loaded      map[string]bool
	visiting    map[string]bool
	searchPaths []string
}

func newLoader() *Loader {
	return &Loader{
		loaded:   make(map[string]bool),
		visiting: make(map[string]bool),
	}
}

// resolve finds the script file for a use path: absolute paths as-is,
// otherwise relative to the including file's directory, then each
// configured search path.
func (l *Loader) resolve(path, callerDir string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", runtime.NewError(runtime.ErrIO, lexer.Span{}, "can't find '%s'", path)
		}
		return filepath.Clean(path), nil
	}
	roots := append([]string{callerDir}, l.searchPaths...)
	for _, root := range roots {
		candidate := filepath.Join(root, path)
		if _, err := os.Stat(candidate); err == nil {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", runtime.NewError(runtime.ErrIO, lexer.Span{}, "can't resolve '%s': %v", path, err)
			}
			return abs, nil
		}
	}
	return "", runtime.NewError(runtime.ErrIO, lexer.Span{}, "can't find '%s'", path)
}

// load runs the full pipeline over a used script, evaluating it in a
// fresh child of the global frame and merging its declarations into the
// interpreter's globals.
func (l *Loader) load(i *Interpreter, path string, span lexer.Span) error {
	resolved, err := l.resolve(path, i.scriptDir)
	if err != nil {
		return err
	}

	if l.loaded[resolved] {
		return nil
	}
	if l.visiting[resolved] {
		return runtime.NewError(runtime.ErrValue, span, "circular use of '%s'", resolved)
	}
	l.visiting[resolved] = true
	defer delete(l.visiting, resolved)

	source, err := lexer.ReadSource(resolved)
	if err != nil {
		return runtime.NewError(runtime.ErrIO, span, "failed to load '%s'", path)
	}
	program, err := ParseSource(source)
	if err != nil {
		if syntax, ok := err.(*SyntaxErrors); ok {
			return runtime.NewError(runtime.ErrNative, span,
				"'%s' failed to parse with %d errors", path, syntax.Count())
		}
		return runtime.NewError(runtime.ErrNative, span, "'%s' failed to parse", path)
	}

	// Evaluate with the module's own directory anchoring nested use.
	savedDir := i.scriptDir
	i.scriptDir = filepath.Dir(resolved)
	moduleEnv := runtime.NewEnvironment(i.global)
	evalErr := func() error {
		for _, stmt := range program.Body {
			if _, err := i.evaluateStatement(stmt, moduleEnv); err != nil {
				return err
			}
		}
		return nil
	}()
	i.scriptDir = savedDir
	if evalErr != nil {
		return evalErr
	}

	for name, value := range moduleEnv.Snapshot() {
		i.global.Define(name, value)
	}
	l.loaded[resolved] = true
	return nil
}
