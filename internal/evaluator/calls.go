package evaluator

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/typesystem"
)

func (ev *Evaluator) evalCall(e *ast.Call, env *Environment) Object {
	callee := ev.evalExpression(e.Callee, env)
	if isError(callee) {
		return callee
	}

	args := make([]Object, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg := ev.evalExpression(argExpr, env)
		if isError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	switch fn := callee.(type) {
	case *Function:
		return ev.callFunction(e, fn, args)
	case *Builtin:
		return ev.callNative(e, "Function", fn.Fn, args)
	case *BoundMethod:
		return ev.callNative(e, "Method", fn.Method, args)
	}
	return newError(e.Paren.Line, e.Paren.Column,
		"Cannot call value of type %s", callee.RuntimeType())
}

// callFunction runs a user function in a fresh frame chained to the
// environment captured at declaration. The Return signal stops here.
func (ev *Evaluator) callFunction(e *ast.Call, fn *Function, args []Object) Object {
	if len(args) != len(fn.Decl.Params) {
		return newError(e.Paren.Line, e.Paren.Column,
			"Function '%s' has %d parameter(s) but was called with %d argument(s)",
			fn.Decl.Name.Lexeme, len(fn.Decl.Params), len(args))
	}

	frame := NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Decl.Params {
		frame.Set(param.Name.Lexeme, args[i])
	}

	result := ev.execBlock(fn.Decl.Body, frame)
	if isError(result) {
		return result
	}
	if rv, ok := result.(*ReturnValue); ok {
		return rv.Value
	}
	return NIL
}

// callNative checks arity and parameter types against the host
// descriptor, then invokes. kind is "Function" for a global callable and
// "Method" for one reached through a host object.
func (ev *Evaluator) callNative(e *ast.Call, kind string, fn NativeInvoker, args []Object) Object {
	params := fn.ParamTypes()
	if len(args) != len(params) {
		return newError(e.Paren.Line, e.Paren.Column,
			"%s '%s' has %d parameter(s) but was called with %d argument(s)",
			kind, fn.Name(), len(params), len(args))
	}
	for i, arg := range args {
		if params[i] == nil {
			continue
		}
		if !typesystem.CanBeCoercedInto(params[i], arg.RuntimeType()) {
			return newError(e.Paren.Line, e.Paren.Column,
				"Cannot pass %s argument as %s parameter to %s()",
				arg.RuntimeType(), params[i], fn.Name())
		}
	}

	result, err := fn.Invoke(args)
	if err != nil {
		return newError(e.Paren.Line, e.Paren.Column, "%s", err.Error())
	}
	if result == nil {
		return NIL
	}
	return result
}

func (ev *Evaluator) evalGet(e *ast.Get, env *Environment) Object {
	receiver := ev.evalExpression(e.Object, env)
	if isError(receiver) {
		return receiver
	}
	host, ok := receiver.(*HostObject)
	if !ok {
		return newError(e.Name.Line, e.Name.Column,
			"Value of type %s has no methods", receiver.RuntimeType())
	}
	method, ok := host.Methods[e.Name.Lexeme]
	if !ok {
		return newError(e.Name.Line, e.Name.Column,
			"Undefined method '%s' on %s", e.Name.Lexeme, host.Name)
	}
	return &BoundMethod{Receiver: host, Method: method}
}
