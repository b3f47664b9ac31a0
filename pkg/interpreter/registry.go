package interpreter

import (
	"quetite/interpreter-go/pkg/runtime"
)

// The native registry is the contract the evaluator exposes to built-in
// libraries: globals, namespace objects and prototype methods all install
// through it before any script runs.

// RegisterGlobal installs a value into the global frame.
func (i *Interpreter) RegisterGlobal(name string, value runtime.Value) {
	i.global.Define(name, value)
}

// RegisterNamespace installs an object whose statics are native callables
// (the shape of Sys, Math, Rand and Term).
func (i *Interpreter) RegisterNamespace(name string, fns map[string]runtime.NativeFunctionValue) *runtime.ObjectValue {
	obj := &runtime.ObjectValue{
		Name:    name,
		Bound:   make(map[string]*runtime.FunctionValue),
		Statics: make(map[string]runtime.Value, len(fns)),
	}
	for fnName, fn := range fns {
		obj.Statics[fnName] = fn
	}
	i.global.Define(name, obj)
	return obj
}

// InstallPrototype registers methods dispatched on x.m(...) for values of
// the given kind. Method lookup checks the kind table first and then the
// shared Value prototype.
func (i *Interpreter) InstallPrototype(kind runtime.Kind, fns map[string]runtime.NativeFunctionValue) {
	table, ok := i.protos[kind]
	if !ok {
		table = make(map[string]runtime.NativeFunctionValue, len(fns))
		i.protos[kind] = table
	}
	for name, fn := range fns {
		table[name] = fn
	}
}

// InstallValuePrototype registers methods shared by every value kind.
func (i *Interpreter) InstallValuePrototype(fns map[string]runtime.NativeFunctionValue) {
	for name, fn := range fns {
		i.valueProto[name] = fn
	}
}
