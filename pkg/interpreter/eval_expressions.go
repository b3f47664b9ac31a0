package interpreter

import (
	"fmt"
	"math"

	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NullLiteral:
		return runtime.NullValue{}, nil
	case *ast.BoolLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NumLiteral:
		return runtime.NumValue{Val: n.Value}, nil
	case *ast.StrLiteral:
		return runtime.NewStr(n.Value), nil
	case *ast.ListLiteral:
		return i.evaluateListLiteral(n, env)
	case *ast.DictLiteral:
		return i.evaluateDictLiteral(n, env)
	case *ast.Identifier:
		val, err := env.Get(n.Name, n.Span())
		if err != nil {
			return nil, raise(err, n.Span())
		}
		return val, nil
	case *ast.SelfExpression:
		val, err := env.Get("self", n.Span())
		if err != nil {
			return nil, raise(err, n.Span())
		}
		return val, nil
	case *ast.UnaryExpression:
		return i.evaluateUnary(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogical(n, env)
	case *ast.TernaryExpression:
		return i.evaluateTernary(n, env)
	case *ast.RangeExpression:
		return i.evaluateRange(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndex(n, env)
	case *ast.CallExpression:
		return i.evaluateCall(n, env)
	case *ast.GetExpression:
		return i.evaluateGet(n, env)
	case *ast.AssignExpression:
		return i.evaluateAssign(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateListLiteral(node *ast.ListLiteral, env *runtime.Environment) (runtime.Value, error) {
	values := make([]runtime.Value, 0, len(node.Elements))
	for _, el := range node.Elements {
		val, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return runtime.NewList(values), nil
}

func (i *Interpreter) evaluateDictLiteral(node *ast.DictLiteral, env *runtime.Environment) (runtime.Value, error) {
	dict := runtime.NewDict()
	for _, entry := range node.Entries {
		keyVal, err := i.evaluateExpression(entry.Key, env)
		if err != nil {
			return nil, err
		}
		key, ok := runtime.KeyFor(keyVal)
		if !ok {
			return nil, i.throwErr(runtime.ErrType, node.Span(),
				"%s values cannot be dict keys", runtime.TypeName(keyVal))
		}
		val, err := i.evaluateExpression(entry.Value, env)
		if err != nil {
			return nil, err
		}
		dict.Set(key, keyVal, val)
	}
	return dict, nil
}

func (i *Interpreter) evaluateUnary(node *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(node.Right, env)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case "!":
		return runtime.BoolValue{Val: !runtime.Truthy(right)}, nil
	case "-":
		num, ok := right.(runtime.NumValue)
		if !ok {
			return nil, i.throwErr(runtime.ErrType, node.Span(),
				"unary '-' expects a Num, found %s", runtime.TypeName(right))
		}
		return runtime.NumValue{Val: -num.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator: %s", node.Op)
	}
}

func (i *Interpreter) evaluateBinary(node *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(node.Left, env)
	if err != nil {
		return nil, err
	}

	// ?? only evaluates the right operand when the left is Null.
	if node.Op == "??" {
		if _, isNull := left.(runtime.NullValue); !isNull {
			return left, nil
		}
		return i.evaluateExpression(node.Right, env)
	}

	right, err := i.evaluateExpression(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case "==":
		return runtime.BoolValue{Val: runtime.Equals(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.Equals(left, right)}, nil
	case "+":
		return i.addValues(left, right, node)
	}

	ln, lok := left.(runtime.NumValue)
	rn, rok := right.(runtime.NumValue)
	if !lok || !rok {
		return nil, i.throwErr(runtime.ErrType, node.Span(),
			"'%s' expects Num operands, found %s and %s",
			node.Op, runtime.TypeName(left), runtime.TypeName(right))
	}

	switch node.Op {
	case "-":
		return runtime.NumValue{Val: ln.Val - rn.Val}, nil
	case "*":
		return runtime.NumValue{Val: ln.Val * rn.Val}, nil
	case "/":
		// division by zero follows IEEE and yields inf/NaN
		return runtime.NumValue{Val: ln.Val / rn.Val}, nil
	case "%":
		return runtime.NumValue{Val: math.Mod(ln.Val, rn.Val)}, nil
	case "**":
		return runtime.NumValue{Val: math.Pow(ln.Val, rn.Val)}, nil
	case "<":
		return runtime.BoolValue{Val: ln.Val < rn.Val}, nil
	case "<=":
		return runtime.BoolValue{Val: ln.Val <= rn.Val}, nil
	case ">":
		return runtime.BoolValue{Val: ln.Val > rn.Val}, nil
	case ">=":
		return runtime.BoolValue{Val: ln.Val >= rn.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator: %s", node.Op)
	}
}

// addValues implements '+': numeric addition, string concatenation, or
// list concatenation into a new list.
func (i *Interpreter) addValues(left, right runtime.Value, node ast.Expression) (runtime.Value, error) {
	switch lv := left.(type) {
	case runtime.NumValue:
		if rv, ok := right.(runtime.NumValue); ok {
			return runtime.NumValue{Val: lv.Val + rv.Val}, nil
		}
	case *runtime.StrValue:
		if rv, ok := right.(*runtime.StrValue); ok {
			return runtime.NewStr(lv.Val + rv.Val), nil
		}
	case *runtime.ListValue:
		if rv, ok := right.(*runtime.ListValue); ok {
			joined := make([]runtime.Value, 0, len(lv.Elements)+len(rv.Elements))
			joined = append(joined, lv.Elements...)
			joined = append(joined, rv.Elements...)
			return runtime.NewList(joined), nil
		}
	}
	return nil, i.throwErr(runtime.ErrType, node.Span(),
		"'+' expects two Nums, two Strs or two Lists, found %s and %s",
		runtime.TypeName(left), runtime.TypeName(right))
}

// evaluateLogical short-circuits and returns the selected operand without
// coercing it to Bool.
func (i *Interpreter) evaluateLogical(node *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	if node.Op == "or" {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else {
		if !runtime.Truthy(left) {
			return left, nil
		}
	}
	return i.evaluateExpression(node.Right, env)
}

func (i *Interpreter) evaluateTernary(node *ast.TernaryExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(node.Cond, env)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(cond) {
		return i.evaluateExpression(node.Then, env)
	}
	return i.evaluateExpression(node.Else, env)
}

// evaluateRange materialises the range as a List of Nums. Bounds and step
// must be Nums; the step must be positive. An empty list results when the
// start is not below the end (`..`) or is above the end (`..=`).
func (i *Interpreter) evaluateRange(node *ast.RangeExpression, env *runtime.Environment) (runtime.Value, error) {
	start, err := i.rangeBound(node.Start, env, "start")
	if err != nil {
		return nil, err
	}
	end, err := i.rangeBound(node.End, env, "end")
	if err != nil {
		return nil, err
	}
	step := 1.0
	if node.Step != nil {
		step, err = i.rangeBound(node.Step, env, "step")
		if err != nil {
			return nil, err
		}
		if step <= 0 {
			return nil, i.throwErr(runtime.ErrValue, node.Span(), "range step must be positive")
		}
	}

	var values []runtime.Value
	if node.Inclusive {
		for v := start; v <= end; v += step {
			values = append(values, runtime.NumValue{Val: v})
		}
	} else {
		for v := start; v < end; v += step {
			values = append(values, runtime.NumValue{Val: v})
		}
	}
	return runtime.NewList(values), nil
}

func (i *Interpreter) rangeBound(expr ast.Expression, env *runtime.Environment, what string) (float64, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return 0, err
	}
	num, ok := val.(runtime.NumValue)
	if !ok {
		return 0, i.throwErr(runtime.ErrType, expr.Span(),
			"range %s must be a Num, found %s", what, runtime.TypeName(val))
	}
	return num.Val, nil
}
