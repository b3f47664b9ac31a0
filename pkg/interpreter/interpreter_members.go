package interpreter

import (
	"math"
	"strings"

	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/lexer"
	"quetite/interpreter-go/pkg/runtime"
)

// evaluateGet resolves dotted property access: instance fields, then
// bound methods, then object statics, then kind prototypes.
func (i *Interpreter) evaluateGet(node *ast.GetExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(node.Object, env)
	if err != nil {
		return nil, err
	}
	return i.memberOnValue(obj, node.Name, node.Span())
}

func (i *Interpreter) memberOnValue(obj runtime.Value, name string, span lexer.Span) (runtime.Value, error) {
	switch v := obj.(type) {
	case *runtime.InstanceValue:
		if field, ok := v.Fields[name]; ok {
			return field, nil
		}
		if method, ok := v.Object.Bound[name]; ok {
			return runtime.BoundMethodValue{Receiver: v, Method: method}, nil
		}
		if method, ok := i.prototypeMethod(v.Kind(), name); ok {
			return runtime.NativeBoundMethodValue{Receiver: v, Method: method}, nil
		}
		return nil, i.throwErr(runtime.ErrName, span,
			"undefined property '%s' on %s instance", name, v.Object.Name)
	case *runtime.ObjectValue:
		if static, ok := v.Statics[name]; ok {
			return static, nil
		}
		if _, ok := v.Bound[name]; ok {
			return nil, i.throwErr(runtime.ErrName, span,
				"can't access bound method '%s' of object '%s' without an instance", name, v.Name)
		}
		if method, ok := i.prototypeMethod(v.Kind(), name); ok {
			return runtime.NativeBoundMethodValue{Receiver: v, Method: method}, nil
		}
		return nil, i.throwErr(runtime.ErrName, span,
			"static method '%s' undefined in object %s", name, v.Name)
	default:
		if method, ok := i.prototypeMethod(obj.Kind(), name); ok {
			return runtime.NativeBoundMethodValue{Receiver: obj, Method: method}, nil
		}
		return nil, i.throwErr(runtime.ErrName, span,
			"method '%s' not found in %s prototype", name, runtime.TypeName(obj))
	}
}

// prototypeMethod looks up a kind-specific prototype method, falling back
// to the shared Value prototype.
func (i *Interpreter) prototypeMethod(kind runtime.Kind, name string) (runtime.NativeFunctionValue, bool) {
	if table, ok := i.protos[kind]; ok {
		if method, ok := table[name]; ok {
			return method, true
		}
	}
	method, ok := i.valueProto[name]
	return method, ok
}

//-----------------------------------------------------------------------------
// Indexing
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateIndex(node *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(node.Object, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(node.Index, env)
	if err != nil {
		return nil, err
	}
	return i.indexValue(obj, index, node.Span())
}

func (i *Interpreter) indexValue(obj, index runtime.Value, span lexer.Span) (runtime.Value, error) {
	switch v := obj.(type) {
	case *runtime.ListValue:
		switch idx := index.(type) {
		case runtime.NumValue:
			n, err := i.checkIndex(idx.Val, len(v.Elements), span)
			if err != nil {
				return nil, err
			}
			return v.Elements[n], nil
		case *runtime.ListValue:
			out := make([]runtime.Value, 0, len(idx.Elements))
			for _, sel := range idx.Elements {
				num, ok := sel.(runtime.NumValue)
				if !ok {
					return nil, i.throwErr(runtime.ErrType, span,
						"list selection indices must be Nums, found %s", runtime.TypeName(sel))
				}
				n, err := i.checkIndex(num.Val, len(v.Elements), span)
				if err != nil {
					return nil, err
				}
				out = append(out, v.Elements[n])
			}
			return runtime.NewList(out), nil
		default:
			return nil, i.throwErr(runtime.ErrType, span,
				"list index must be a Num or a List of Nums, found %s", runtime.TypeName(index))
		}
	case *runtime.StrValue:
		chars := []rune(v.Val)
		switch idx := index.(type) {
		case runtime.NumValue:
			n, err := i.checkIndex(idx.Val, len(chars), span)
			if err != nil {
				return nil, err
			}
			return runtime.NewStr(string(chars[n])), nil
		case *runtime.ListValue:
			var b strings.Builder
			for _, sel := range idx.Elements {
				num, ok := sel.(runtime.NumValue)
				if !ok {
					return nil, i.throwErr(runtime.ErrType, span,
						"string selection indices must be Nums, found %s", runtime.TypeName(sel))
				}
				n, err := i.checkIndex(num.Val, len(chars), span)
				if err != nil {
					return nil, err
				}
				b.WriteRune(chars[n])
			}
			return runtime.NewStr(b.String()), nil
		default:
			return nil, i.throwErr(runtime.ErrType, span,
				"string index must be a Num or a List of Nums, found %s", runtime.TypeName(index))
		}
	case *runtime.DictValue:
		key, ok := runtime.KeyFor(index)
		if !ok {
			return nil, i.throwErr(runtime.ErrType, span,
				"%s values cannot be dict keys", runtime.TypeName(index))
		}
		val, ok := v.Get(key)
		if !ok {
			return nil, i.throwErr(runtime.ErrValue, span,
				"missing dict key %s", runtime.Format(index))
		}
		return val, nil
	default:
		return nil, i.throwErr(runtime.ErrType, span,
			"%s values are not indexable", runtime.TypeName(obj))
	}
}

// checkIndex validates a numeric index against a length: it must be an
// integer, non-negative and in bounds.
func (i *Interpreter) checkIndex(raw float64, length int, span lexer.Span) (int, error) {
	if raw != math.Trunc(raw) {
		return 0, i.throwErr(runtime.ErrValue, span, "index %s is not an integer", runtime.FormatNum(raw))
	}
	n := int(raw)
	if n < 0 || n >= length {
		return 0, i.throwErr(runtime.ErrValue, span, "index %d out of bounds (len = %d)", n, length)
	}
	return n, nil
}

//-----------------------------------------------------------------------------
// Assignment
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateAssign(node *ast.AssignExpression, env *runtime.Environment) (runtime.Value, error) {
	switch target := node.Target.(type) {
	case *ast.Identifier:
		return i.assignIdentifier(node, target, env)
	case *ast.GetExpression:
		return i.assignProperty(node, target, env)
	case *ast.IndexExpression:
		return i.assignIndex(node, target, env)
	default:
		return nil, i.throwErr(runtime.ErrType, node.Span(), "invalid assignment target")
	}
}

func (i *Interpreter) assignIdentifier(node *ast.AssignExpression, target *ast.Identifier, env *runtime.Environment) (runtime.Value, error) {
	current := func() (runtime.Value, error) {
		val, err := env.Get(target.Name, target.Span())
		if err != nil {
			return nil, raise(err, target.Span())
		}
		return val, nil
	}
	newVal, err := i.assignedValue(node, current, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(target.Name, newVal, node.Span()); err != nil {
		return nil, raise(err, node.Span())
	}
	return newVal, nil
}

func (i *Interpreter) assignProperty(node *ast.AssignExpression, target *ast.GetExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(target.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.InstanceValue)
	if !ok {
		if _, isObj := obj.(*runtime.ObjectValue); isObj {
			return nil, i.throwErr(runtime.ErrType, node.Span(),
				"can't set properties on object '%s'", runtime.Format(obj))
		}
		return nil, i.throwErr(runtime.ErrType, node.Span(),
			"only instances have assignable fields, found %s", runtime.TypeName(obj))
	}
	current := func() (runtime.Value, error) {
		return i.memberOnValue(inst, target.Name, target.Span())
	}
	newVal, err := i.assignedValue(node, current, env)
	if err != nil {
		return nil, err
	}
	inst.Fields[target.Name] = newVal
	return newVal, nil
}

func (i *Interpreter) assignIndex(node *ast.AssignExpression, target *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluateExpression(target.Object, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(target.Index, env)
	if err != nil {
		return nil, err
	}
	current := func() (runtime.Value, error) {
		return i.indexValue(obj, index, target.Span())
	}
	newVal, err := i.assignedValue(node, current, env)
	if err != nil {
		return nil, err
	}

	switch v := obj.(type) {
	case *runtime.ListValue:
		num, ok := index.(runtime.NumValue)
		if !ok {
			return nil, i.throwErr(runtime.ErrType, node.Span(),
				"list index must be a Num, found %s", runtime.TypeName(index))
		}
		n, err := i.checkIndex(num.Val, len(v.Elements), node.Span())
		if err != nil {
			return nil, err
		}
		v.Elements[n] = newVal
		return newVal, nil
	case *runtime.StrValue:
		num, ok := index.(runtime.NumValue)
		if !ok {
			return nil, i.throwErr(runtime.ErrType, node.Span(),
				"string index must be a Num, found %s", runtime.TypeName(index))
		}
		chars := []rune(v.Val)
		n, err := i.checkIndex(num.Val, len(chars), node.Span())
		if err != nil {
			return nil, err
		}
		repl, ok := newVal.(*runtime.StrValue)
		if !ok {
			return nil, i.throwErr(runtime.ErrType, node.Span(),
				"can't set index of Str to %s", runtime.TypeName(newVal))
		}
		v.Val = string(chars[:n]) + repl.Val + string(chars[n+1:])
		return newVal, nil
	case *runtime.DictValue:
		key, ok := runtime.KeyFor(index)
		if !ok {
			return nil, i.throwErr(runtime.ErrType, node.Span(),
				"%s values cannot be dict keys", runtime.TypeName(index))
		}
		v.Set(key, index, newVal)
		return newVal, nil
	default:
		return nil, i.throwErr(runtime.ErrType, node.Span(),
			"%s values are not indexable", runtime.TypeName(obj))
	}
}

// assignedValue computes the value to store for an assignment node:
// straight for '=', combined with the current value for the compound
// forms, and current plus or minus one for ++ and --.
func (i *Interpreter) assignedValue(node *ast.AssignExpression, current func() (runtime.Value, error), env *runtime.Environment) (runtime.Value, error) {
	switch node.Op {
	case ast.AssignSet:
		return i.evaluateExpression(node.Value, env)
	case ast.AssignAdd:
		rhs, err := i.evaluateExpression(node.Value, env)
		if err != nil {
			return nil, err
		}
		cur, err := current()
		if err != nil {
			return nil, err
		}
		return i.addValues(cur, rhs, node)
	case ast.AssignSub:
		rhs, err := i.evaluateExpression(node.Value, env)
		if err != nil {
			return nil, err
		}
		cur, err := current()
		if err != nil {
			return nil, err
		}
		return i.numCompound(cur, rhs, node, "-=")
	case ast.AssignInc, ast.AssignDec:
		cur, err := current()
		if err != nil {
			return nil, err
		}
		num, ok := cur.(runtime.NumValue)
		if !ok {
			return nil, i.throwErr(runtime.ErrType, node.Span(),
				"'%s' expects a Num, found %s", node.Op, runtime.TypeName(cur))
		}
		if node.Op == ast.AssignInc {
			return runtime.NumValue{Val: num.Val + 1}, nil
		}
		return runtime.NumValue{Val: num.Val - 1}, nil
	default:
		return nil, i.throwErr(runtime.ErrType, node.Span(), "unsupported assignment operator '%s'", node.Op)
	}
}

func (i *Interpreter) numCompound(cur, rhs runtime.Value, node ast.Expression, op string) (runtime.Value, error) {
	cn, cok := cur.(runtime.NumValue)
	rn, rok := rhs.(runtime.NumValue)
	if !cok || !rok {
		return nil, i.throwErr(runtime.ErrType, node.Span(),
			"'%s' expects Num operands, found %s and %s", op, runtime.TypeName(cur), runtime.TypeName(rhs))
	}
	return runtime.NumValue{Val: cn.Val - rn.Val}, nil
}
