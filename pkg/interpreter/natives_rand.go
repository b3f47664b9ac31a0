package interpreter

import (
	"math/rand"
	"time"

	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// installRand registers the Rand namespace over a per-interpreter source,
// so tests can seed it for determinism.
func (i *Interpreter) installRand() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	i.RegisterNamespace("Rand", map[string]runtime.NativeFunctionValue{
		"num": {
			FnName: "num", Arity: 0,
			Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
				return runtime.NumValue{Val: rng.Float64()}, nil
			},
		},
		"range": {
			FnName: "range", Arity: 2,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				lo, err := checkNum(args, 0, "range low bound")
				if err != nil {
					return nil, err
				}
				hi, err := checkNum(args, 1, "range high bound")
				if err != nil {
					return nil, err
				}
				if hi <= lo {
					return nil, runtime.NewError(runtime.ErrValue, lexer.Span{},
						"range high bound must be above the low bound")
				}
				return runtime.NumValue{Val: lo + rng.Float64()*(hi-lo)}, nil
			},
		},
		"pick": {
			FnName: "pick", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				list, err := checkList(args, 0, "pick argument")
				if err != nil {
					return nil, err
				}
				if len(list.Elements) == 0 {
					return nil, runtime.NewError(runtime.ErrValue, lexer.Span{},
						"can't pick from an empty list")
				}
				return list.Elements[rng.Intn(len(list.Elements))], nil
			},
		},
		"seed": {
			FnName: "seed", Arity: 1,
			Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
				n, err := checkNum(args, 0, "seed")
				if err != nil {
					return nil, err
				}
				rng.Seed(int64(n))
				return runtime.NullValue{}, nil
			},
		},
	})
}
