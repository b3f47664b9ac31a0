package interpreter

import (
	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCall(node *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(node.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(node.Args))
	for _, arg := range node.Args {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.CallValue(callee, args, node.Span())
}

// CallValue dispatches a call on any callable value. Arity is checked
// exactly; mismatches raise ArityErr before the callee runs.
func (i *Interpreter) CallValue(callee runtime.Value, args []runtime.Value, span lexer.Span) (runtime.Value, error) {
	switch c := callee.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(c, nil, args, span)
	case runtime.BoundMethodValue:
		return i.callFunction(c.Method, c.Receiver, args, span)
	case runtime.NativeFunctionValue:
		return i.callNative(c, args, span)
	case runtime.NativeBoundMethodValue:
		if !c.Method.Variadic && len(args) != c.Method.Arity {
			return nil, i.arityErr(c.Method.Arity, len(args), span)
		}
		withReceiver := append([]runtime.Value{c.Receiver}, args...)
		return i.invokeNative(c.Method, withReceiver, span)
	case *runtime.ObjectValue:
		return i.construct(c, args, span)
	default:
		return nil, i.throwErr(runtime.ErrType, span,
			"can only call functions and objects, found %s", runtime.TypeName(callee))
	}
}

// callFunction runs a user function in a fresh frame parented to its
// captured closure. A non-nil self is bound for bound methods and for
// init constructors, which receive self implicitly even without declaring
// the parameter.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, self runtime.Value, args []runtime.Value, span lexer.Span) (runtime.Value, error) {
	params := fn.Decl.Params
	implicitSelf := self != nil && !fn.Decl.Bound()

	expected := len(params)
	if self != nil && fn.Decl.Bound() {
		expected--
	}
	if len(args) != expected {
		return nil, i.arityErr(expected, len(args), span)
	}

	frame := runtime.NewEnvironment(fn.Closure)
	if implicitSelf {
		frame.Define("self", self)
	}
	rest := params
	if self != nil && fn.Decl.Bound() {
		frame.Define("self", self)
		rest = params[1:]
	}
	for idx, name := range rest {
		frame.Define(name, args[idx])
	}

	_, err := i.evaluateStatement(fn.Decl.Body, frame)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return runtime.NullValue{}, nil
}

// construct creates an empty instance and runs the init method, if any,
// with the instance as self.
func (i *Interpreter) construct(obj *runtime.ObjectValue, args []runtime.Value, span lexer.Span) (runtime.Value, error) {
	inst := runtime.NewInstance(obj)
	if obj.Init == nil {
		if len(args) != 0 {
			return nil, i.arityErr(0, len(args), span)
		}
		return inst, nil
	}
	if _, err := i.callFunction(obj.Init, inst, args, span); err != nil {
		return nil, err
	}
	return inst, nil
}

func (i *Interpreter) callNative(fn runtime.NativeFunctionValue, args []runtime.Value, span lexer.Span) (runtime.Value, error) {
	if !fn.Variadic && len(args) != fn.Arity {
		return nil, i.arityErr(fn.Arity, len(args), span)
	}
	return i.invokeNative(fn, args, span)
}

func (i *Interpreter) invokeNative(fn runtime.NativeFunctionValue, args []runtime.Value, span lexer.Span) (runtime.Value, error) {
	ctx := &runtime.NativeCallContext{Env: i.global, Span: span}
	val, err := fn.Impl(ctx, args)
	if err != nil {
		return nil, raise(err, span)
	}
	if val == nil {
		val = runtime.NullValue{}
	}
	return val, nil
}

func (i *Interpreter) arityErr(expected, got int, span lexer.Span) error {
	return i.throwErr(runtime.ErrArity, span,
		"expected %d arguments but got %d", expected, got)
}
