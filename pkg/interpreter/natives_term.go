package interpreter

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

var termColors = map[string]lipgloss.Color{
	"black":   lipgloss.Color("0"),
	"red":     lipgloss.Color("1"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("3"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"cyan":    lipgloss.Color("6"),
	"white":   lipgloss.Color("7"),
}

// installTerm registers the Term namespace: ANSI styling helpers for
// script output.
func (i *Interpreter) installTerm() {
	fns := map[string]runtime.NativeFunctionValue{
		"bold": termStyler("bold", lipgloss.NewStyle().Bold(true)),
		"dim":  termStyler("dim", lipgloss.NewStyle().Faint(true)),
		"style": {
			FnName: "style", Arity: 2,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				text, err := checkStr(args, 0, "text")
				if err != nil {
					return nil, err
				}
				name, err := checkStr(args, 1, "color name")
				if err != nil {
					return nil, err
				}
				color, ok := termColors[name]
				if !ok {
					return nil, runtime.NewError(runtime.ErrValue, lexer.Span{},
						"unknown color '%s'", name)
				}
				return runtime.NewStr(lipgloss.NewStyle().Foreground(color).Render(text)), nil
			},
		},
		"clear": {
			FnName: "clear", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
				fmt.Fprint(i.Stdout, "\x1b[2J\x1b[H")
				return runtime.NullValue{}, nil
			},
		},
	}
	for name, color := range termColors {
		fns[name] = termStyler(name, lipgloss.NewStyle().Foreground(color))
	}
	i.RegisterNamespace("Term", fns)
}

func termStyler(name string, style lipgloss.Style) runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		FnName: name, Arity: 1,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			text, err := checkStr(args, 0, "text")
			if err != nil {
				return nil, err
			}
			return runtime.NewStr(style.Render(text)), nil
		},
	}
}
