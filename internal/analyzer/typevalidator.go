package analyzer

import (
	"fmt"

	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/resolver"
	"github.com/sparvlang/sparv/internal/token"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// TypeValidator is the second type pass. It assumes the type resolver
// ran to fixpoint and enforces call-site arity, the identity-only
// coercion policy at calls and var statements, and the presence of
// resolvable annotations.
type TypeValidator struct {
	directory *resolver.Directory
	errors    []*diagnostics.DiagnosticError
}

func NewTypeValidator(directory *resolver.Directory) *TypeValidator {
	return &TypeValidator{directory: directory}
}

func (tv *TypeValidator) Errors() []*diagnostics.DiagnosticError { return tv.errors }

func (tv *TypeValidator) errorAt(tok token.Token, code string, format string, args ...interface{}) {
	tv.errors = append(tv.errors, diagnostics.NewError(code, tok, fmt.Sprintf(format, args...)))
}

func (tv *TypeValidator) Run(stmts []ast.Statement) {
	for _, stmt := range stmts {
		tv.validateStatement(stmt)
	}
}

// --- statements -------------------------------------------------------

func (tv *TypeValidator) validateStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		tv.validateExpression(s.Expr)
	case *ast.PrintStmt:
		tv.validateExpression(s.Expr)
	case *ast.VarStmt:
		tv.validateVar(s)
	case *ast.BlockStmt:
		for _, inner := range s.Statements {
			tv.validateStatement(inner)
		}
	case *ast.IfStmt:
		tv.validateExpression(s.Condition)
		tv.validateStatement(s.Then)
		if s.Else != nil {
			tv.validateStatement(s.Else)
		}
	case *ast.WhileStmt:
		tv.validateExpression(s.Condition)
		tv.validateStatement(s.Body)
	case *ast.FunctionStmt:
		tv.validateFunction(s)
	case *ast.ReturnStmt:
		if s.Value != nil {
			tv.validateExpression(s.Value)
			// Get-rooted expressions resolve against host objects at
			// runtime and legitimately lack a static type.
			if !s.Value.TypeRef().IsResolved() && !isHostRooted(s.Value) {
				tv.errorAt(s.Token, diagnostics.ErrI001, "Return value has no resolved type")
			}
		}
	case *ast.ClassStmt:
		for _, method := range s.Methods {
			tv.validateFunction(method)
		}
	}
}

func (tv *TypeValidator) validateVar(s *ast.VarStmt) {
	if s.Initializer != nil {
		tv.validateExpression(s.Initializer)
	}

	declared := s.DeclaredType
	if !declared.IsResolved() {
		if declared.Explicit() {
			tv.errorAt(*declared.Specifier, diagnostics.ErrT003,
				"Type not found: %s", declared.SpecifierLexeme())
			return
		}
		if s.Initializer == nil {
			tv.errorAt(s.Name, diagnostics.ErrT006,
				"Cannot infer type for variable '%s' without an initializer", s.Name.Lexeme)
		}
		return
	}

	if s.Initializer == nil || !s.Initializer.TypeRef().IsResolved() {
		return
	}
	initType := s.Initializer.TypeRef().Resolved()
	if !typesystem.CanBeCoercedInto(declared.Resolved(), initType) {
		tv.errorAt(s.Name, diagnostics.ErrT002,
			"Cannot initialize variable '%s: %s' with %s value",
			s.Name.Lexeme, declared.Resolved(), initType)
	}
}

func (tv *TypeValidator) validateFunction(s *ast.FunctionStmt) {
	if !s.ReturnType.Explicit() {
		tv.errorAt(s.Name, diagnostics.ErrT004,
			"Inferred typing is not yet supported for function '%s'", s.Name.Lexeme)
	} else if !s.ReturnType.IsResolved() {
		tv.errorAt(*s.ReturnType.Specifier, diagnostics.ErrT003,
			"Type not found: %s", s.ReturnType.SpecifierLexeme())
	}
	for _, param := range s.Params {
		if !param.Type.Explicit() {
			tv.errorAt(param.Name, diagnostics.ErrT004,
				"Inferred typing is not yet supported for parameter '%s' to function '%s'",
				param.Name.Lexeme, s.Name.Lexeme)
			continue
		}
		if !param.Type.IsResolved() {
			tv.errorAt(*param.Type.Specifier, diagnostics.ErrT003,
				"Type not found: %s", param.Type.SpecifierLexeme())
		}
	}
	for _, stmt := range s.Body {
		tv.validateStatement(stmt)
	}
}

// --- expressions ------------------------------------------------------

func (tv *TypeValidator) validateExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Grouping:
		tv.validateExpression(e.Inner)
	case *ast.UnaryPrefix:
		tv.validateExpression(e.Right)
	case *ast.UnaryPostfix:
		tv.validateExpression(e.Left)
	case *ast.Binary:
		tv.validateExpression(e.Left)
		tv.validateExpression(e.Right)
	case *ast.Logical:
		tv.validateExpression(e.Left)
		tv.validateExpression(e.Right)
	case *ast.Assign:
		tv.validateExpression(e.Value)
	case *ast.Call:
		tv.validateCall(e)
	case *ast.Get:
		tv.validateExpression(e.Object)
	}
}

func (tv *TypeValidator) validateCall(e *ast.Call) {
	for _, arg := range e.Args {
		tv.validateExpression(arg)
	}

	ident, ok := e.Callee.(*ast.Identifier)
	if !ok {
		// Host method calls through a Get check arity and argument
		// types at runtime against the method descriptor.
		tv.validateExpression(e.Callee)
		return
	}

	switch b := tv.directory.Lookup(ident).(type) {
	case *resolver.FunctionBinding:
		tv.validateUserCall(e, b)
	case *resolver.NativeBinding:
		tv.validateNativeCall(e, b)
	case nil:
		// Already reported as an undefined function by the first pass.
	default:
		tv.errorAt(ident.Name, diagnostics.ErrT005, "'%s' is not callable", ident.Name.Lexeme)
	}
}

func (tv *TypeValidator) validateUserCall(e *ast.Call, b *resolver.FunctionBinding) {
	fn := b.Fn
	if len(e.Args) != len(fn.Params) {
		tv.errorAt(e.Paren, diagnostics.ErrT001,
			"Function '%s' has %d parameter(s) but was called with %d argument(s)",
			fn.Name.Lexeme, len(fn.Params), len(e.Args))
		return
	}
	for i, arg := range e.Args {
		param := fn.Params[i]
		if !param.Type.IsResolved() || !arg.TypeRef().IsResolved() {
			continue
		}
		argType := arg.TypeRef().Resolved()
		if !typesystem.CanBeCoercedInto(param.Type.Resolved(), argType) {
			tv.errorAt(arg.GetToken(), diagnostics.ErrT002,
				"Cannot pass %s argument as parameter '%s: %s' to %s()",
				argType, param.Name.Lexeme, param.Type.Resolved(), fn.Name.Lexeme)
		}
	}
}

func (tv *TypeValidator) validateNativeCall(e *ast.Call, b *resolver.NativeBinding) {
	params := b.Callable.ParamTypes()
	if len(e.Args) != len(params) {
		tv.errorAt(e.Paren, diagnostics.ErrT001,
			"Function '%s' has %d parameter(s) but was called with %d argument(s)",
			b.Callable.Name(), len(params), len(e.Args))
		return
	}
	for i, arg := range e.Args {
		if params[i] == nil || !arg.TypeRef().IsResolved() {
			// A nil parameter type accepts any argument.
			continue
		}
		argType := arg.TypeRef().Resolved()
		if !typesystem.CanBeCoercedInto(params[i], argType) {
			tv.errorAt(arg.GetToken(), diagnostics.ErrT002,
				"Cannot pass %s argument as %s parameter to %s()",
				argType, params[i], b.Callable.Name())
		}
	}
}

// isHostRooted reports whether the expression's value comes out of a
// host object, where static types are unavailable.
func isHostRooted(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Get:
		return true
	case *ast.Call:
		_, viaGet := e.Callee.(*ast.Get)
		return viaGet
	case *ast.Grouping:
		return isHostRooted(e.Inner)
	}
	return false
}
