package interpreter

import (
	"os"
	"time"

	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// installSys registers the Sys namespace: process and host bindings.
func (i *Interpreter) installSys() {
	i.RegisterNamespace("Sys", map[string]runtime.NativeFunctionValue{
		"clock": {
			FnName: "clock", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
				return runtime.NumValue{Val: float64(time.Now().UnixMilli())}, nil
			},
		},
		"sleep": {
			FnName: "sleep", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				ms, err := checkNum(args, 0, "sleep duration")
				if err != nil {
					return nil, err
				}
				if ms > 0 {
					time.Sleep(time.Duration(ms) * time.Millisecond)
				}
				return runtime.NullValue{}, nil
			},
		},
		"env": {
			FnName: "env", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				name, err := checkStr(args, 0, "environment variable name")
				if err != nil {
					return nil, err
				}
				if val, ok := os.LookupEnv(name); ok {
					return runtime.NewStr(val), nil
				}
				return runtime.NullValue{}, nil
			},
		},
		"args": {
			FnName: "args", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
				values := make([]runtime.Value, 0, len(i.Argv))
				for _, arg := range i.Argv {
					values = append(values, runtime.NewStr(arg))
				}
				return runtime.NewList(values), nil
			},
		},
		"cwd": {
			FnName: "cwd", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
				cwd, err := os.Getwd()
				if err != nil {
					return nil, runtime.NewError(runtime.ErrIO, lexer.Span{},
						"failed to read current directory: %v", err)
				}
				return runtime.NewStr(cwd), nil
			},
		},
	})
}
