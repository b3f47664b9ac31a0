package interpreter

import (
	"fmt"

	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return i.evaluateExpression(n.Expr, env)
	case *ast.VarDecl:
		return i.evaluateVarDecl(n, env)
	case *ast.FnDecl:
		return i.evaluateFnDecl(n, env)
	case *ast.ObjDecl:
		return i.evaluateObjDecl(n, env)
	case *ast.BlockStatement:
		return i.evaluateBlock(n, runtime.NewEnvironment(env))
	case *ast.IfStatement:
		return i.evaluateIf(n, env)
	case *ast.WhileStatement:
		return i.evaluateWhile(n, env)
	case *ast.ForStatement:
		return i.evaluateFor(n, env)
	case *ast.MatchStatement:
		return i.evaluateMatch(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturn(n, env)
	case *ast.BreakStatement:
		return nil, breakSignal{}
	case *ast.ContinueStatement:
		return nil, continueSignal{}
	case *ast.ThrowStatement:
		return i.evaluateThrow(n, env)
	case *ast.TryStatement:
		return i.evaluateTry(n, env)
	case *ast.UseStatement:
		return i.evaluateUse(n, env)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateBlock runs statements in the given (already pushed) scope.
func (i *Interpreter) evaluateBlock(block *ast.BlockStatement, scope *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NullValue{}
	for _, stmt := range block.Body {
		val, err := i.evaluateStatement(stmt, scope)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evaluateVarDecl(decl *ast.VarDecl, env *runtime.Environment) (runtime.Value, error) {
	var val runtime.Value = runtime.NullValue{}
	if decl.Init != nil {
		v, err := i.evaluateExpression(decl.Init, env)
		if err != nil {
			return nil, err
		}
		val = v
	}
	env.Define(decl.Name, val)
	return runtime.NullValue{}, nil
}

func (i *Interpreter) evaluateFnDecl(decl *ast.FnDecl, env *runtime.Environment) (runtime.Value, error) {
	fn := &runtime.FunctionValue{Decl: decl, Closure: env}
	env.Define(decl.Name, fn)
	return runtime.NullValue{}, nil
}

// evaluateObjDecl builds the object value once. Methods capture the
// environment in effect at the declaration; a first parameter named self
// makes a method bound, everything else is static. An init method becomes
// the constructor.
func (i *Interpreter) evaluateObjDecl(decl *ast.ObjDecl, env *runtime.Environment) (runtime.Value, error) {
	obj := &runtime.ObjectValue{
		Name:    decl.Name,
		Bound:   make(map[string]*runtime.FunctionValue),
		Statics: make(map[string]runtime.Value),
	}
	for _, method := range decl.Methods {
		fn := &runtime.FunctionValue{Decl: method, Closure: env}
		switch {
		case method.Name == "init":
			obj.Init = fn
		case method.Bound():
			obj.Bound[method.Name] = fn
		default:
			obj.Statics[method.Name] = fn
		}
	}
	env.Define(decl.Name, obj)
	return runtime.NullValue{}, nil
}

func (i *Interpreter) evaluateIf(stmt *ast.IfStatement, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(stmt.Cond, env)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(cond) {
		return i.evaluateStatement(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.evaluateStatement(stmt.Else, env)
	}
	return runtime.NullValue{}, nil
}

// evaluateWhile runs the loop. An optional header declaration lives in a
// frame surrounding the whole loop; the step expression runs after each
// iteration, including ones cut short by continue.
func (i *Interpreter) evaluateWhile(stmt *ast.WhileStatement, env *runtime.Environment) (runtime.Value, error) {
	loopEnv := env
	if stmt.Header != nil {
		loopEnv = runtime.NewEnvironment(env)
		if _, err := i.evaluateVarDecl(stmt.Header, loopEnv); err != nil {
			return nil, err
		}
	}

	for {
		cond, err := i.evaluateExpression(stmt.Cond, loopEnv)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return runtime.NullValue{}, nil
		}

		_, err = i.evaluateStatement(stmt.Body, loopEnv)
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return runtime.NullValue{}, nil
			case continueSignal:
				// fall through to the step
			default:
				return nil, err
			}
		}

		if stmt.Step != nil {
			if _, err := i.evaluateExpression(stmt.Step, loopEnv); err != nil {
				return nil, err
			}
		}
	}
}

// evaluateFor iterates a List by element or a Str by character, binding
// the value name and optional 0-based index in a fresh frame per
// iteration.
func (i *Interpreter) evaluateFor(stmt *ast.ForStatement, env *runtime.Environment) (runtime.Value, error) {
	iterable, err := i.evaluateExpression(stmt.Iterable, env)
	if err != nil {
		return nil, err
	}

	runBody := func(idx int, elem runtime.Value) error {
		iterEnv := runtime.NewEnvironment(env)
		iterEnv.Define(stmt.ValueName, elem)
		if stmt.IndexName != "" {
			iterEnv.Define(stmt.IndexName, runtime.NumValue{Val: float64(idx)})
		}
		_, err := i.evaluateStatement(stmt.Body, iterEnv)
		return err
	}

	switch it := iterable.(type) {
	case *runtime.ListValue:
		n := len(it.Elements)
		for idx := 0; idx < n; idx++ {
			if idx >= len(it.Elements) {
				break
			}
			if err := runBody(idx, it.Elements[idx]); err != nil {
				switch err.(type) {
				case breakSignal:
					return runtime.NullValue{}, nil
				case continueSignal:
					continue
				default:
					return nil, err
				}
			}
		}
	case *runtime.StrValue:
		for idx, ch := range []rune(it.Val) {
			if err := runBody(idx, runtime.NewStr(string(ch))); err != nil {
				switch err.(type) {
				case breakSignal:
					return runtime.NullValue{}, nil
				case continueSignal:
					continue
				default:
					return nil, err
				}
			}
		}
	default:
		return nil, i.throwErr(runtime.ErrType, stmt.Span(),
			"only List and Str values are iterable, found %s", runtime.TypeName(iterable))
	}
	return runtime.NullValue{}, nil
}

// evaluateMatch evaluates the discriminant once, then runs the first arm
// whose pattern is value-equal. No fallthrough; no match without an else
// arm is a no-op.
func (i *Interpreter) evaluateMatch(stmt *ast.MatchStatement, env *runtime.Environment) (runtime.Value, error) {
	discriminant, err := i.evaluateExpression(stmt.Discriminant, env)
	if err != nil {
		return nil, err
	}
	for _, arm := range stmt.Arms {
		pattern, err := i.evaluateExpression(arm.Pattern, env)
		if err != nil {
			return nil, err
		}
		if runtime.Equals(discriminant, pattern) {
			return i.runInFreshFrame(arm.Body, env)
		}
	}
	if stmt.Else != nil {
		return i.runInFreshFrame(stmt.Else, env)
	}
	return runtime.NullValue{}, nil
}

// runInFreshFrame executes a statement inside a new scope frame, reusing
// the frame directly when the statement is itself a block.
func (i *Interpreter) runInFreshFrame(stmt ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	frame := runtime.NewEnvironment(env)
	if block, ok := stmt.(*ast.BlockStatement); ok {
		return i.evaluateBlock(block, frame)
	}
	return i.evaluateStatement(stmt, frame)
}

func (i *Interpreter) evaluateReturn(stmt *ast.ReturnStatement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NullValue{}
	if stmt.Value != nil {
		val, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return nil, returnSignal{value: result}
}

// evaluateThrow raises the evaluated value. Instances of the internal
// error object carry their declared kind; anything else travels as
// UserErr with the value itself as payload.
func (i *Interpreter) evaluateThrow(stmt *ast.ThrowStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	if inst, ok := val.(*runtime.InstanceValue); ok && inst.Object == i.errObject {
		kind := string(runtime.ErrUser)
		if k, ok := inst.Fields["kind"].(*runtime.StrValue); ok {
			kind = k.Val
		}
		var payload runtime.Value = runtime.NullValue{}
		if m, ok := inst.Fields["msg"]; ok {
			payload = m
		}
		return nil, throwSignal{kind: kind, value: payload, msg: runtime.Format(payload), span: stmt.Span()}
	}
	return nil, throwSignal{
		kind:  string(runtime.ErrUser),
		value: val,
		msg:   runtime.Format(val),
		span:  stmt.Span(),
	}
}

// evaluateTry runs the body; a thrown outcome transfers to the catch
// clause with the kind and payload bound in a fresh frame. The ensure
// block always runs on the way out, and its own non-normal outcome
// replaces the current one.
func (i *Interpreter) evaluateTry(stmt *ast.TryStatement, env *runtime.Environment) (runtime.Value, error) {
	result, outcome := i.evaluateStatement(stmt.Body, env)

	if ts, ok := outcome.(throwSignal); ok {
		catchEnv := runtime.NewEnvironment(env)
		if stmt.ErrName != "" {
			catchEnv.Define(stmt.ErrName, runtime.NewStr(ts.kind))
		}
		if stmt.ValName != "" {
			catchEnv.Define(stmt.ValName, ts.value)
		}
		if block, ok := stmt.Catch.(*ast.BlockStatement); ok {
			result, outcome = i.evaluateBlock(block, catchEnv)
		} else {
			result, outcome = i.evaluateStatement(stmt.Catch, catchEnv)
		}
	}

	if stmt.Ensure != nil {
		if _, ensureOutcome := i.evaluateStatement(stmt.Ensure, env); ensureOutcome != nil {
			return nil, ensureOutcome
		}
	}
	if outcome != nil {
		return nil, outcome
	}
	if result == nil {
		result = runtime.NullValue{}
	}
	return result, nil
}

// evaluateUse loads another script at most once per resolved path and
// merges its globals into this interpreter's global frame.
func (i *Interpreter) evaluateUse(stmt *ast.UseStatement, env *runtime.Environment) (runtime.Value, error) {
	pathVal, err := i.evaluateExpression(stmt.Path, env)
	if err != nil {
		return nil, err
	}
	str, ok := pathVal.(*runtime.StrValue)
	if !ok {
		return nil, i.throwErr(runtime.ErrType, stmt.Span(),
			"use path must be a Str, found %s", runtime.TypeName(pathVal))
	}
	if err := i.loader.load(i, str.Val, stmt.Span()); err != nil {
		return nil, raise(err, stmt.Span())
	}
	return runtime.NullValue{}, nil
}
