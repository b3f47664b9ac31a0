package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sahilm/fuzzy"

	"quetite/interpreter-go/pkg/driver"
	"quetite/interpreter-go/pkg/interpreter"
	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

const (
	promptMain = "qte> "
	promptCont = "...> "
)

// runRepl drives the interactive loop: lines accumulate while do/end
// depth stays open, each chunk evaluates against one persistent
// interpreter, and the resulting value echoes back.
func runRepl() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	interp := interpreter.New()
	reporter := driver.NewReporter(os.Stderr)
	ln.SetCompleter(completer(interp))

	fmt.Fprintln(os.Stdout, toolVersion)
	fmt.Fprintln(os.Stdout, "type :quit to exit")

	for {
		code, ok := readChunk(ln)
		if !ok {
			fmt.Fprintln(os.Stdout)
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" || trimmed == ":q" {
			return 0
		}

		source := lexer.NewSource("repl", code+"\n")
		val, err := interp.RunSource(source)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if err != nil {
			reportError(reporter, err, source)
			continue
		}
		if _, isNull := val.(runtime.NullValue); !isNull {
			fmt.Fprintln(os.Stdout, runtime.Format(val))
		}
	}
}

// readChunk keeps prompting while block depth is open, so multi-line
// functions and loops paste naturally.
func readChunk(ln *liner.State) (string, bool) {
	var b strings.Builder
	prompt := promptMain
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if blockDepth(b.String()) <= 0 {
			return b.String(), true
		}
		prompt = promptCont
	}
}

// blockDepth counts unclosed do/end pairs in the accumulated chunk.
func blockDepth(code string) int {
	tokens, errs := lexer.New(lexer.NewSource("repl", code+"\n")).Tokenize()
	if len(errs) > 0 {
		// Let the parser report it rather than prompting forever.
		return 0
	}
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.TokenDo:
			depth++
		case lexer.TokenEnd:
			depth--
		}
	}
	return depth
}

// completer fuzzy-matches the trailing identifier against every global
// binding.
func completer(interp *interpreter.Interpreter) liner.Completer {
	return func(line string) []string {
		start := len(line)
		for start > 0 {
			c := line[start-1]
			if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
				start--
				continue
			}
			break
		}
		word := line[start:]
		if word == "" {
			return nil
		}
		prefix := line[:start]

		names := interp.GlobalEnvironment().Keys()
		matches := fuzzy.Find(word, names)
		out := make([]string, 0, len(matches))
		for _, match := range matches {
			out = append(out, prefix+match.Str)
		}
		return out
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quetite_history"
	}
	return filepath.Join(home, ".quetite_history")
}
