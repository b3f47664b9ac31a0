package interpreter

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// installPrototypes wires the per-kind method tables plus the shared
// Value prototype. Prototype methods receive their receiver as the first
// element of args; the declared arity counts caller arguments only.
func (i *Interpreter) installPrototypes() {
	i.InstallValuePrototype(map[string]runtime.NativeFunctionValue{
		"type": {
			FnName: "type", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NewStr(runtime.TypeName(args[0])), nil
			},
		},
		"str": {
			FnName: "str", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NewStr(runtime.Format(args[0])), nil
			},
		},
	})

	i.InstallPrototype(runtime.KindBool, map[string]runtime.NativeFunctionValue{
		"as_num": {
			FnName: "as_num", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				if args[0].(runtime.BoolValue).Val {
					return runtime.NumValue{Val: 1}, nil
				}
				return runtime.NumValue{Val: 0}, nil
			},
		},
	})

	i.installNumProto()
	i.installStrProto()
	i.installListProto()
	i.installDictProto()
}

func numMethod(name string, fn func(float64) float64) runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		FnName: name, Arity: 0,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			return runtime.NumValue{Val: fn(args[0].(runtime.NumValue).Val)}, nil
		},
	}
}

func (i *Interpreter) installNumProto() {
	i.InstallPrototype(runtime.KindNum, map[string]runtime.NativeFunctionValue{
		// rounding ties go away from zero
		"round": numMethod("round", math.Round),
		"floor": numMethod("floor", math.Floor),
		"ceil":  numMethod("ceil", math.Ceil),
		"abs":   numMethod("abs", math.Abs),
		"sqrt": {
			FnName: "sqrt", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				x := args[0].(runtime.NumValue).Val
				if x < 0 {
					return nil, runtime.NewError(runtime.ErrNative, lexer.Span{},
						"sqrt domain error for %s", runtime.FormatNum(x))
				}
				return runtime.NumValue{Val: math.Sqrt(x)}, nil
			},
		},
	})
}

func (i *Interpreter) installStrProto() {
	recv := func(args []runtime.Value) *runtime.StrValue { return args[0].(*runtime.StrValue) }

	i.InstallPrototype(runtime.KindStr, map[string]runtime.NativeFunctionValue{
		"len": {
			FnName: "len", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NumValue{Val: float64(len([]rune(recv(args).Val)))}, nil
			},
		},
		"upper": {
			FnName: "upper", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NewStr(strings.ToUpper(recv(args).Val)), nil
			},
		},
		"lower": {
			FnName: "lower", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NewStr(strings.ToLower(recv(args).Val)), nil
			},
		},
		"trim": {
			FnName: "trim", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NewStr(strings.TrimSpace(recv(args).Val)), nil
			},
		},
		"contains": {
			FnName: "contains", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				needle, err := checkStr(args, 1, "contains argument")
				if err != nil {
					return nil, err
				}
				return runtime.BoolValue{Val: strings.Contains(recv(args).Val, needle)}, nil
			},
		},
		"split": {
			FnName: "split", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				sep, err := checkStr(args, 1, "split separator")
				if err != nil {
					return nil, err
				}
				parts := strings.Split(recv(args).Val, sep)
				values := make([]runtime.Value, 0, len(parts))
				for _, part := range parts {
					values = append(values, runtime.NewStr(part))
				}
				return runtime.NewList(values), nil
			},
		},
		"replace": {
			FnName: "replace", Arity: 2,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				old, err := checkStr(args, 1, "replace target")
				if err != nil {
					return nil, err
				}
				new_, err := checkStr(args, 2, "replace replacement")
				if err != nil {
					return nil, err
				}
				return runtime.NewStr(strings.ReplaceAll(recv(args).Val, old, new_)), nil
			},
		},
		"chars": {
			FnName: "chars", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				runes := []rune(recv(args).Val)
				values := make([]runtime.Value, 0, len(runes))
				for _, r := range runes {
					values = append(values, runtime.NewStr(string(r)))
				}
				return runtime.NewList(values), nil
			},
		},
		"parse_num": {
			FnName: "parse_num", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				n, err := strconv.ParseFloat(strings.TrimSpace(recv(args).Val), 64)
				if err != nil {
					return runtime.NullValue{}, nil
				}
				return runtime.NumValue{Val: n}, nil
			},
		},
	})
}

func (i *Interpreter) installListProto() {
	recv := func(args []runtime.Value) *runtime.ListValue { return args[0].(*runtime.ListValue) }

	i.InstallPrototype(runtime.KindList, map[string]runtime.NativeFunctionValue{
		"len": {
			FnName: "len", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NumValue{Val: float64(len(recv(args).Elements))}, nil
			},
		},
		"push": {
			FnName: "push", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				list := recv(args)
				list.Elements = append(list.Elements, args[1])
				return runtime.NullValue{}, nil
			},
		},
		"pop": {
			FnName: "pop", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				list := recv(args)
				if len(list.Elements) == 0 {
					return runtime.NullValue{}, nil
				}
				last := list.Elements[len(list.Elements)-1]
				list.Elements = list.Elements[:len(list.Elements)-1]
				return last, nil
			},
		},
		"insert": {
			FnName: "insert", Arity: 2,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				list := recv(args)
				idx, err := checkNum(args, 1, "insert index")
				if err != nil {
					return nil, err
				}
				n := int(idx)
				if idx != math.Trunc(idx) || n < 0 || n > len(list.Elements) {
					return nil, runtime.NewError(runtime.ErrValue, lexer.Span{},
						"insert index %s out of bounds (len = %d)", runtime.FormatNum(idx), len(list.Elements))
				}
				list.Elements = append(list.Elements[:n], append([]runtime.Value{args[2]}, list.Elements[n:]...)...)
				return runtime.NullValue{}, nil
			},
		},
		"remove": {
			FnName: "remove", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				list := recv(args)
				idx, err := checkNum(args, 1, "remove index")
				if err != nil {
					return nil, err
				}
				n := int(idx)
				if idx != math.Trunc(idx) || n < 0 || n >= len(list.Elements) {
					return nil, runtime.NewError(runtime.ErrValue, lexer.Span{},
						"remove index %s out of bounds (len = %d)", runtime.FormatNum(idx), len(list.Elements))
				}
				removed := list.Elements[n]
				list.Elements = append(list.Elements[:n], list.Elements[n+1:]...)
				return removed, nil
			},
		},
		"index_of": {
			FnName: "index_of", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				for idx, el := range recv(args).Elements {
					if runtime.Equals(el, args[1]) {
						return runtime.NumValue{Val: float64(idx)}, nil
					}
				}
				return runtime.NullValue{}, nil
			},
		},
		"contains": {
			FnName: "contains", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				for _, el := range recv(args).Elements {
					if runtime.Equals(el, args[1]) {
						return runtime.BoolValue{Val: true}, nil
					}
				}
				return runtime.BoolValue{Val: false}, nil
			},
		},
		"join": {
			FnName: "join", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				sep, err := checkStr(args, 1, "join separator")
				if err != nil {
					return nil, err
				}
				parts := make([]string, 0, len(recv(args).Elements))
				for _, el := range recv(args).Elements {
					parts = append(parts, runtime.Format(el))
				}
				return runtime.NewStr(strings.Join(parts, sep)), nil
			},
		},
		"reverse": {
			FnName: "reverse", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				els := recv(args).Elements
				for a, b := 0, len(els)-1; a < b; a, b = a+1, b-1 {
					els[a], els[b] = els[b], els[a]
				}
				return runtime.NullValue{}, nil
			},
		},
		"sort": {
			FnName: "sort", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				list := recv(args)
				if len(list.Elements) == 0 {
					return runtime.NullValue{}, nil
				}
				switch list.Elements[0].(type) {
				case runtime.NumValue:
					for _, el := range list.Elements {
						if _, ok := el.(runtime.NumValue); !ok {
							return nil, sortMixedErr()
						}
					}
					sort.SliceStable(list.Elements, func(a, b int) bool {
						return list.Elements[a].(runtime.NumValue).Val < list.Elements[b].(runtime.NumValue).Val
					})
				case *runtime.StrValue:
					for _, el := range list.Elements {
						if _, ok := el.(*runtime.StrValue); !ok {
							return nil, sortMixedErr()
						}
					}
					sort.SliceStable(list.Elements, func(a, b int) bool {
						return list.Elements[a].(*runtime.StrValue).Val < list.Elements[b].(*runtime.StrValue).Val
					})
				default:
					return nil, sortMixedErr()
				}
				return runtime.NullValue{}, nil
			},
		},
	})
}

func sortMixedErr() error {
	return runtime.NewError(runtime.ErrType, lexer.Span{},
		"sort expects a list of only Nums or only Strs")
}

func (i *Interpreter) installDictProto() {
	recv := func(args []runtime.Value) *runtime.DictValue { return args[0].(*runtime.DictValue) }

	i.InstallPrototype(runtime.KindDict, map[string]runtime.NativeFunctionValue{
		"len": {
			FnName: "len", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NumValue{Val: float64(recv(args).Len())}, nil
			},
		},
		"keys": {
			FnName: "keys", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NewList(recv(args).Keys()), nil
			},
		},
		"values": {
			FnName: "values", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				return runtime.NewList(recv(args).Values()), nil
			},
		},
		"has": {
			FnName: "has", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				key, ok := runtime.KeyFor(args[1])
				if !ok {
					return nil, typeCheckErr("dict key", "hashable value", args[1])
				}
				_, found := recv(args).Get(key)
				return runtime.BoolValue{Val: found}, nil
			},
		},
		"remove": {
			FnName: "remove", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				key, ok := runtime.KeyFor(args[1])
				if !ok {
					return nil, typeCheckErr("dict key", "hashable value", args[1])
				}
				return runtime.BoolValue{Val: recv(args).Delete(key)}, nil
			},
		},
	})
}
