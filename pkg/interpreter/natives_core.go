package interpreter

import (
	"bufio"
	"fmt"
	"strings"

	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// installNatives wires the standard library into the global environment.
// It runs once per interpreter, before any script executes.
func (i *Interpreter) installNatives() {
	i.installCore()
	i.installSys()
	i.installMath()
	i.installRand()
	i.installTerm()
	i.installPrototypes()
}

func (i *Interpreter) installCore() {
	// The internal error object behind err(kind, msg). Thrown instances
	// of it propagate under their declared kind.
	i.errObject = &runtime.ObjectValue{
		Name:    "Err",
		Bound:   make(map[string]*runtime.FunctionValue),
		Statics: make(map[string]runtime.Value),
	}

	i.RegisterGlobal("print", runtime.NativeFunctionValue{
		FnName: "print", Arity: 1,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			fmt.Fprint(i.Stdout, runtime.Format(args[0]))
			return runtime.NullValue{}, nil
		},
	})

	i.RegisterGlobal("println", runtime.NativeFunctionValue{
		FnName: "println", Arity: 1,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			fmt.Fprintln(i.Stdout, runtime.Format(args[0]))
			return runtime.NullValue{}, nil
		},
	})

	i.RegisterGlobal("read", runtime.NativeFunctionValue{
		FnName: "read", Arity: 0,
		Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			reader := bufio.NewReader(i.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return nil, runtime.NewError(runtime.ErrIO, lexer.Span{}, "failed to read input: %v", err)
			}
			return runtime.NewStr(strings.TrimRight(line, "\r\n")), nil
		},
	})

	i.RegisterGlobal("err", runtime.NativeFunctionValue{
		FnName: "err", Arity: 2,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			kind, ok := args[0].(*runtime.StrValue)
			if !ok {
				return nil, runtime.NewError(runtime.ErrType, lexer.Span{},
					"err kind must be a Str, found %s", runtime.TypeName(args[0]))
			}
			inst := runtime.NewInstance(i.errObject)
			inst.Fields["kind"] = runtime.NewStr(kind.Val)
			inst.Fields["msg"] = args[1]
			return inst, nil
		},
	})

	i.RegisterGlobal("type", runtime.NativeFunctionValue{
		FnName: "type", Arity: 1,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			return runtime.NewStr(runtime.TypeName(args[0])), nil
		},
	})
}

//-----------------------------------------------------------------------------
// Argument helpers shared by the native set
//-----------------------------------------------------------------------------

func checkNum(args []runtime.Value, idx int, what string) (float64, error) {
	if n, ok := args[idx].(runtime.NumValue); ok {
		return n.Val, nil
	}
	return 0, typeCheckErr(what, "Num", args[idx])
}

func checkStr(args []runtime.Value, idx int, what string) (string, error) {
	if s, ok := args[idx].(*runtime.StrValue); ok {
		return s.Val, nil
	}
	return "", typeCheckErr(what, "Str", args[idx])
}

func checkList(args []runtime.Value, idx int, what string) (*runtime.ListValue, error) {
	if l, ok := args[idx].(*runtime.ListValue); ok {
		return l, nil
	}
	return nil, typeCheckErr(what, "List", args[idx])
}

func checkDict(args []runtime.Value, idx int, what string) (*runtime.DictValue, error) {
	if d, ok := args[idx].(*runtime.DictValue); ok {
		return d, nil
	}
	return nil, typeCheckErr(what, "Dict", args[idx])
}

func typeCheckErr(what, want string, got runtime.Value) error {
	return runtime.NewError(runtime.ErrType, lexer.Span{},
		"%s must be a %s, found %s", what, want, runtime.TypeName(got))
}
