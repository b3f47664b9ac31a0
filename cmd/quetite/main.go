package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/driver"
	"quetite/interpreter-go/pkg/interpreter"
	"quetite/interpreter-go/pkg/lexer"
)

const toolVersion = "quetite 0.1.0"

// CLI is the top-level command-line interface for quetite.
type CLI struct {
	Script     string   `arg:"" optional:"" help:"Script to run; omit to start the REPL." type:"path"`
	Args       []string `arg:"" optional:"" passthrough:"" help:"Arguments exposed through Sys.args()."`
	DumpTokens bool     `help:"Print the token stream and exit."`
	DumpAst    bool     `help:"Print a structural AST dump and exit."`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// `quetite deps` dispatches before kong so the positional script
	// argument doesn't swallow the subcommand name.
	if len(args) > 0 && args[0] == "deps" {
		return runDeps()
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("quetite"),
		kong.Description("quetite interpreter (run `quetite deps` to fetch manifest dependencies)"),
		kong.UsageOnError(),
		kong.Vars{"version": toolVersion},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cli.Script == "" {
		return runRepl()
	}
	return runScript(&cli)
}

func runScript(cli *CLI) int {
	reporter := driver.NewReporter(os.Stderr)

	source, err := lexer.ReadSource(cli.Script)
	if err != nil {
		reporter.Error(err.Error())
		return 1
	}

	if cli.DumpTokens {
		tokens, lexErrs := lexer.New(source).Tokenize()
		if len(lexErrs) > 0 {
			for _, lexErr := range lexErrs {
				reporter.ErrorAt("SyntaxError", lexErr.Msg, lexErr.Span, source)
			}
			return 1
		}
		for _, tok := range tokens {
			fmt.Fprintf(os.Stdout, "%-16s %q %s\n", tok.Kind, tok.Lexeme, tok.Span)
		}
		return 0
	}

	program, err := interpreter.ParseSource(source)
	if err != nil {
		reportError(reporter, err, source)
		return 1
	}

	if cli.DumpAst {
		fmt.Fprint(os.Stdout, ast.Dump(program))
		return 0
	}

	interp := interpreter.New()
	interp.Argv = cli.Args
	if abs, err := filepath.Abs(cli.Script); err == nil {
		interp.SetScriptDir(filepath.Dir(abs))
	}
	configureFromManifest(interp, cli.Script, reporter)

	if _, err := interp.EvaluateProgram(program); err != nil {
		reportError(reporter, err, source)
		return 1
	}
	return 0
}

// configureFromManifest wires manifest search paths (project paths plus
// fetched dependency checkouts) into the interpreter when the script
// lives inside a quetite.yml project.
func configureFromManifest(interp *interpreter.Interpreter, script string, reporter *driver.Reporter) {
	manifestPath, err := driver.FindManifest(filepath.Dir(script))
	if err != nil {
		if !errors.Is(err, driver.ErrManifestNotFound) {
			reporter.Error(err.Error())
		}
		return
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		reporter.Error(err.Error())
		return
	}
	for _, path := range manifest.SearchPaths() {
		interp.AddSearchPath(path)
	}
}

func runDeps() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to determine working directory: %v\n", err)
		return 1
	}
	manifestPath, err := driver.FindManifest(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate %s: %v\n", driver.ManifestName, err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read manifest: %v\n", err)
		return 1
	}

	lockPath := filepath.Join(manifest.Root(), driver.LockfileName)
	lock, err := driver.LoadLockfile(lockPath)
	lockCreated := false
	switch {
	case err == nil:
		if lock.Root != manifest.Name {
			fmt.Fprintf(os.Stderr, "lockfile root %q does not match manifest name %q\n", lock.Root, manifest.Name)
			return 1
		}
	case errors.Is(err, os.ErrNotExist):
		lock = driver.NewLockfile(manifest.Name, toolVersion)
		lockCreated = true
	default:
		fmt.Fprintf(os.Stderr, "failed to read lockfile: %v\n", err)
		return 1
	}
	lock.Tool = toolVersion

	installer := driver.NewInstaller(manifest)
	changed, logs, err := installer.Install(lock)
	for _, line := range logs {
		fmt.Fprintln(os.Stdout, line)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve dependencies: %v\n", err)
		return 1
	}

	if changed || lockCreated {
		if err := driver.WriteLockfile(lock, lockPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write lockfile: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stdout, "Updated %s\n", driver.LockfileName)
	} else {
		fmt.Fprintln(os.Stdout, "Dependencies already up to date.")
	}
	return 0
}

func reportError(reporter *driver.Reporter, err error, source *lexer.Source) {
	switch e := err.(type) {
	case *interpreter.SyntaxErrors:
		reporter.SyntaxErrors(e, source)
	case *interpreter.RuntimeError:
		reporter.RuntimeError(e, source)
	default:
		reporter.Error(err.Error())
	}
}
