package evaluator

import (
	"math/big"

	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/resolver"
	"github.com/sparvlang/sparv/internal/token"
)

func (ev *Evaluator) evalExpression(expr ast.Expression, env *Environment) Object {
	switch e := expr.(type) {
	case *ast.Literal:
		return ev.evalLiteral(e)
	case *ast.Grouping:
		return ev.evalExpression(e.Inner, env)
	case *ast.UnaryPrefix:
		return ev.evalUnaryPrefix(e, env)
	case *ast.UnaryPostfix:
		return ev.evalUnaryPostfix(e, env)
	case *ast.Binary:
		return ev.evalBinary(e, env)
	case *ast.Logical:
		return ev.evalLogical(e, env)
	case *ast.Assign:
		return ev.evalAssign(e, env)
	case *ast.Identifier:
		return ev.evalIdentifier(e, env)
	case *ast.Call:
		return ev.evalCall(e, env)
	case *ast.Get:
		return ev.evalGet(e, env)
	case *ast.Empty:
		return NIL
	}
	return newError(expr.GetToken().Line, expr.GetToken().Column,
		"Unknown expression form '%s'", expr.GetToken().Lexeme)
}

func (ev *Evaluator) evalLiteral(e *ast.Literal) Object {
	switch v := e.Value.(type) {
	case int64:
		return &Integer{Value: v}
	case *big.Int:
		return &BigInt{Value: v}
	case float64:
		return &Float{Value: v}
	case string:
		return &String{Value: v}
	case bool:
		return nativeBool(v)
	case nil:
		return NIL
	}
	return newError(e.Token.Line, e.Token.Column,
		"Unknown literal '%s'", e.Token.Lexeme)
}

// evalIdentifier reads the slot the resolver bound this node to. Local
// bindings go through GetAt with the recorded distance; everything else
// falls back to the globals frame or the host object directory.
func (ev *Evaluator) evalIdentifier(e *ast.Identifier, env *Environment) Object {
	name := e.Name.Lexeme
	switch b := ev.lookup(e).(type) {
	case *resolver.VariableBinding:
		return ev.readSlot(env, b.Distance, e.Name)
	case *resolver.FunctionBinding:
		return ev.readSlot(env, b.Distance, e.Name)
	case *resolver.NativeBinding:
		invoker, ok := b.Callable.(NativeInvoker)
		if !ok {
			return newError(e.Name.Line, e.Name.Column,
				"Native function '%s' is not invokable", name)
		}
		return &Builtin{Fn: invoker}
	case *resolver.NativeObjectBinding:
		if obj, ok := ev.natives[name]; ok {
			return obj
		}
		return newError(e.Name.Line, e.Name.Column,
			"Undefined identifier '%s'", name)
	case *resolver.ClassBinding:
		if obj, ok := ev.globals.Get(name); ok {
			return obj
		}
		return newError(e.Name.Line, e.Name.Column,
			"Undefined identifier '%s'", name)
	}
	if obj, ok := ev.globals.Get(name); ok {
		return obj
	}
	return newError(e.Name.Line, e.Name.Column,
		"Undefined identifier '%s'", name)
}

func (ev *Evaluator) readSlot(env *Environment, distance int, name token.Token) Object {
	if distance >= 0 {
		if obj, ok := env.GetAt(distance, name.Lexeme); ok {
			return obj
		}
		return newError(name.Line, name.Column,
			"Undefined identifier '%s'", name.Lexeme)
	}
	if obj, ok := ev.globals.Get(name.Lexeme); ok {
		return obj
	}
	return newError(name.Line, name.Column,
		"Undefined identifier '%s'", name.Lexeme)
}

func (ev *Evaluator) evalAssign(e *ast.Assign, env *Environment) Object {
	value := ev.evalExpression(e.Value, env)
	if isError(value) {
		return value
	}
	if err := ev.writeSlot(env, ev.lookup(e), e.Name, value); err != nil {
		return err
	}
	return value
}

// writeSlot stores value into the slot the binding names, or into the
// globals frame when no local binding exists. Returns nil on success.
func (ev *Evaluator) writeSlot(env *Environment, binding resolver.Binding, name token.Token, value Object) *Error {
	if vb, ok := binding.(*resolver.VariableBinding); ok && vb.Distance >= 0 {
		if env.AssignAt(vb.Distance, name.Lexeme, value) {
			return nil
		}
		return newError(name.Line, name.Column,
			"Undefined variable '%s'", name.Lexeme)
	}
	if ev.globals.Assign(name.Lexeme, value) {
		return nil
	}
	return newError(name.Line, name.Column,
		"Undefined variable '%s'", name.Lexeme)
}

// evalUnaryPostfix returns the operand's previous value after storing the
// incremented or decremented one back into its slot.
func (ev *Evaluator) evalUnaryPostfix(e *ast.UnaryPostfix, env *Environment) Object {
	previous := ev.evalExpression(e.Left, env)
	if isError(previous) {
		return previous
	}

	var next Object
	switch v := previous.(type) {
	case *Integer:
		if e.Op == "++" {
			next = &Integer{Value: v.Value + 1}
		} else {
			next = &Integer{Value: v.Value - 1}
		}
	case *Float:
		if e.Op == "++" {
			next = &Float{Value: v.Value + 1}
		} else {
			next = &Float{Value: v.Value - 1}
		}
	case *BigInt:
		one := big.NewInt(1)
		result := new(big.Int)
		if e.Op == "++" {
			result.Add(v.Value, one)
		} else {
			result.Sub(v.Value, one)
		}
		next = &BigInt{Value: result}
	default:
		return newError(e.Token.Line, e.Token.Column,
			"Invalid operand %s to operator '%s'", previous.RuntimeType(), e.Op)
	}

	if err := ev.writeSlot(env, ev.lookup(e), e.Name, next); err != nil {
		return err
	}
	return previous
}

func (ev *Evaluator) evalLogical(e *ast.Logical, env *Environment) Object {
	left := ev.evalExpression(e.Left, env)
	if isError(left) {
		return left
	}
	if e.Op == "or" {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return ev.evalExpression(e.Right, env)
}

func (ev *Evaluator) lookup(expr ast.Expression) resolver.Binding {
	if ev.directory == nil {
		return nil
	}
	return ev.directory.Lookup(expr)
}
