package evaluator

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/resolver"
)

// Evaluator tree-walks statements against the environment chain, obeying
// the resolver's binding directory for every name access. One Evaluator
// instance is single-threaded; the globals frame and the host object
// directory persist across REPL invocations.
type Evaluator struct {
	globals   *Environment
	natives   map[string]Object
	directory *resolver.Directory
	out       func(string)
}

func New(globals *Environment, natives map[string]Object, out func(string)) *Evaluator {
	if globals == nil {
		globals = NewEnvironment()
	}
	if natives == nil {
		natives = make(map[string]Object)
	}
	if out == nil {
		out = func(string) {}
	}
	return &Evaluator{globals: globals, natives: natives, out: out}
}

// SetDirectory installs the binding directory for the next Execute. A
// fresh directory is produced by every resolution pass.
func (ev *Evaluator) SetDirectory(directory *resolver.Directory) {
	ev.directory = directory
}

func (ev *Evaluator) Globals() *Environment { return ev.globals }

// Execute runs the statements top to bottom against the globals frame
// and returns the last statement's value: expression statements yield
// their value, an if statement yields the value of the branch it ran,
// and everything else yields NIL. The first runtime error
// aborts execution and is returned as an *Error.
func (ev *Evaluator) Execute(stmts []ast.Statement) Object {
	var result Object = NIL
	for _, stmt := range stmts {
		result = ev.execStatement(stmt, ev.globals)
		if isError(result) {
			return result
		}
		// A Return signal anywhere outside a function call is a bug;
		// the resolver rejects top-level return before we ever run.
		if _, ok := result.(*ReturnValue); ok {
			return newError(stmt.GetToken().Line, stmt.GetToken().Column,
				"Cannot return from top-level code.")
		}
	}
	return result
}

func (ev *Evaluator) execStatement(stmt ast.Statement, env *Environment) Object {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return ev.evalExpression(s.Expr, env)

	case *ast.PrintStmt:
		value := ev.evalExpression(s.Expr, env)
		if isError(value) {
			return value
		}
		ev.out(value.Inspect())
		return NIL

	case *ast.VarStmt:
		var value Object = NIL
		if s.Initializer != nil {
			value = ev.evalExpression(s.Initializer, env)
			if isError(value) {
				return value
			}
		}
		env.Set(s.Name.Lexeme, value)
		return NIL

	case *ast.BlockStmt:
		return ev.execBlock(s.Statements, NewEnclosedEnvironment(env))

	case *ast.IfStmt:
		cond := ev.evalExpression(s.Condition, env)
		if isError(cond) {
			return cond
		}
		if isTruthy(cond) {
			return ev.execStatement(s.Then, env)
		}
		if s.Else != nil {
			return ev.execStatement(s.Else, env)
		}
		return NIL

	case *ast.WhileStmt:
		for {
			cond := ev.evalExpression(s.Condition, env)
			if isError(cond) {
				return cond
			}
			if !isTruthy(cond) {
				return NIL
			}
			result := ev.execStatement(s.Body, env)
			if isError(result) {
				return result
			}
			if _, ok := result.(*ReturnValue); ok {
				return result
			}
		}

	case *ast.FunctionStmt:
		env.Set(s.Name.Lexeme, &Function{Decl: s, Env: env})
		return NIL

	case *ast.ClassStmt:
		env.Set(s.Name.Lexeme, &Class{Decl: s})
		return NIL

	case *ast.ReturnStmt:
		var value Object = NIL
		if s.Value != nil {
			value = ev.evalExpression(s.Value, env)
			if isError(value) {
				return value
			}
		}
		return &ReturnValue{Value: value}
	}
	return NIL
}

// execBlock runs the statements in their own child frame. The frame is
// abandoned on every exit path; the caller's env is untouched.
func (ev *Evaluator) execBlock(stmts []ast.Statement, env *Environment) Object {
	for _, stmt := range stmts {
		result := ev.execStatement(stmt, env)
		if isError(result) {
			return result
		}
		if _, ok := result.(*ReturnValue); ok {
			return result
		}
	}
	return NIL
}

// isTruthy: null is false, booleans are themselves, everything else is
// true.
func isTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Nil:
		return false
	case *Boolean:
		return o.Value
	default:
		return true
	}
}
