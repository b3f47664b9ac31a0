package interpreter

import (
	"math"

	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// installMath registers the Math namespace. asin, acos, sqrt, ln, log10 and
// log raise NativeErr for arguments outside their domain; the other
// functions return IEEE results (NaN, infinities) unchanged.
func (i *Interpreter) installMath() {
	fns := map[string]runtime.NativeFunctionValue{
		"atan2": mathBinary("atan2", math.Atan2),
		"pow":   mathBinary("pow", math.Pow),
		"hypot": mathBinary("hypot", math.Hypot),
		"min":   mathBinary("min", math.Min),
		"max":   mathBinary("max", math.Max),
		"log": mathBinaryChecked("log", func(x, base float64) (float64, bool) {
			if x <= 0 || base <= 0 || base == 1 {
				return 0, false
			}
			return math.Log(x) / math.Log(base), true
		}),

		"sin":   mathUnary("sin", math.Sin),
		"cos":   mathUnary("cos", math.Cos),
		"tan":   mathUnary("tan", math.Tan),
		"atan":  mathUnary("atan", math.Atan),
		"cbrt":  mathUnary("cbrt", math.Cbrt),
		"exp":   mathUnary("exp", math.Exp),
		"abs":   mathUnary("abs", math.Abs),
		"floor": mathUnary("floor", math.Floor),
		"ceil":  mathUnary("ceil", math.Ceil),
		"asin": mathUnaryChecked("asin", func(x float64) (float64, bool) {
			if x < -1 || x > 1 {
				return 0, false
			}
			return math.Asin(x), true
		}),
		"acos": mathUnaryChecked("acos", func(x float64) (float64, bool) {
			if x < -1 || x > 1 {
				return 0, false
			}
			return math.Acos(x), true
		}),
		"sqrt": mathUnaryChecked("sqrt", func(x float64) (float64, bool) {
			if x < 0 {
				return 0, false
			}
			return math.Sqrt(x), true
		}),
		"ln": mathUnaryChecked("ln", func(x float64) (float64, bool) {
			if x <= 0 {
				return 0, false
			}
			return math.Log(x), true
		}),
		"log10": mathUnaryChecked("log10", func(x float64) (float64, bool) {
			if x <= 0 {
				return 0, false
			}
			return math.Log10(x), true
		}),

		"pi":  mathConst("pi", math.Pi),
		"tau": mathConst("tau", 2*math.Pi),
		"e":   mathConst("e", math.E),
	}
	i.RegisterNamespace("Math", fns)
}

func mathUnary(name string, fn func(float64) float64) runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		FnName: name, Arity: 1,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			x, err := checkNum(args, 0, "argument")
			if err != nil {
				return nil, err
			}
			return runtime.NumValue{Val: fn(x)}, nil
		},
	}
}

func mathUnaryChecked(name string, fn func(float64) (float64, bool)) runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		FnName: name, Arity: 1,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			x, err := checkNum(args, 0, "argument")
			if err != nil {
				return nil, err
			}
			out, ok := fn(x)
			if !ok {
				return nil, runtime.NewError(runtime.ErrNative, lexer.Span{},
					"%s domain error for %s", name, runtime.FormatNum(x))
			}
			return runtime.NumValue{Val: out}, nil
		},
	}
}

func mathBinary(name string, fn func(float64, float64) float64) runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		FnName: name, Arity: 2,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			x, err := checkNum(args, 0, "first argument")
			if err != nil {
				return nil, err
			}
			y, err := checkNum(args, 1, "second argument")
			if err != nil {
				return nil, err
			}
			return runtime.NumValue{Val: fn(x, y)}, nil
		},
	}
}

func mathBinaryChecked(name string, fn func(float64, float64) (float64, bool)) runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		FnName: name, Arity: 2,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			x, err := checkNum(args, 0, "first argument")
			if err != nil {
				return nil, err
			}
			y, err := checkNum(args, 1, "second argument")
			if err != nil {
				return nil, err
			}
			out, ok := fn(x, y)
			if !ok {
				return nil, runtime.NewError(runtime.ErrNative, lexer.Span{}, "%s domain error", name)
			}
			return runtime.NumValue{Val: out}, nil
		},
	}
}

func mathConst(name string, value float64) runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		FnName: name, Arity: 0,
		Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			return runtime.NumValue{Val: value}, nil
		},
	}
}
