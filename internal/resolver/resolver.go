package resolver

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/token"
)

type functionContext int

const (
	ctxNone functionContext = iota
	ctxFunction
)

// Resolver walks the statement list, maintains the stack of lexical scope
// frames and the globals frame, and emits one binding per name-referring
// expression. Errors are collected, not raised; resolution continues so
// the user sees every scope mistake in one run.
type Resolver struct {
	scopes  []scope
	globals scope
	natives *Directories

	directory *Directory
	errors    []*diagnostics.DiagnosticError

	// functionStack tracks whether we are inside a function body, to
	// reject top-level return. Nested functions push and pop.
	functionStack []functionContext
}

func New(natives *Directories) *Resolver {
	if natives == nil {
		natives = &Directories{}
	}
	return &Resolver{
		globals:   make(scope),
		natives:   natives,
		directory: NewDirectory(),
	}
}

// Resolve visits every statement and returns the binding directory.
// Call Errors afterwards; a non-empty slice means downstream passes
// should not run over this batch.
func (r *Resolver) Resolve(stmts []ast.Statement) *Directory {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
	return r.directory
}

func (r *Resolver) Errors() []*diagnostics.DiagnosticError { return r.errors }

func (r *Resolver) errorAt(tok token.Token, code string, message string) {
	r.errors = append(r.errors, diagnostics.NewError(code, tok, message))
}

// --- scope frame management -------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts the placeholder slot into the innermost frame. At
// global level declaration is a no-op: define catches a duplicate global
// via the globals frame, and since retained REPL statements are
// re-resolved with each batch, that also rejects a var that redeclares a
// global from an earlier batch.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	innermost := r.scopes[len(r.scopes)-1]
	if _, exists := innermost[name.Lexeme]; exists {
		r.errorAt(name, diagnostics.ErrR001, "Variable with this name already declared in this scope.")
		return
	}
	innermost[name.Lexeme] = &Slot{State: slotDeclared}
}

// define flips the slot to Defined and records its type. typeRef must be
// non-nil; a declaration without annotation carries an unresolved slot.
func (r *Resolver) define(name token.Token, typeRef *ast.TypeRef, fn *ast.FunctionStmt, class *ast.ClassStmt) {
	slot := &Slot{State: slotDefined, Type: typeRef, Fn: fn, Class: class}
	if len(r.scopes) == 0 {
		if _, exists := r.globals[name.Lexeme]; exists {
			r.errorAt(name, diagnostics.ErrR001, "Variable with this name already declared in this scope.")
			return
		}
		r.globals[name.Lexeme] = slot
		return
	}
	innermost := r.scopes[len(r.scopes)-1]
	if existing, ok := innermost[name.Lexeme]; ok {
		existing.State = slotDefined
		existing.Type = typeRef
		existing.Fn = fn
		existing.Class = class
		return
	}
	innermost[name.Lexeme] = slot
}

// resolveLocal walks frames from innermost outward and emits the binding
// for the use-site expr. When no frame matches it falls through to the
// host directories and then the globals frame; an entirely unknown name
// emits nothing and is diagnosed by the type passes.
func (r *Resolver) resolveLocal(expr ast.Expression, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		slot, ok := r.scopes[i][name.Lexeme]
		if !ok {
			continue
		}
		if slot.State == slotDeclared {
			r.errorAt(name, diagnostics.ErrR002, "Cannot read local variable in its own initializer.")
			return
		}
		distance := len(r.scopes) - 1 - i
		r.emitSlotBinding(expr, slot, distance)
		return
	}

	if callable, ok := r.natives.Callables[name.Lexeme]; ok {
		r.directory.Add(&NativeBinding{Callable: callable, Expr: expr})
		return
	}
	if classType, ok := r.natives.Classes[name.Lexeme]; ok {
		r.directory.Add(&NativeObjectBinding{Type: classType, Expr: expr})
		return
	}
	if superType, ok := r.natives.SuperGlobals[name.Lexeme]; ok {
		r.directory.Add(&NativeObjectBinding{Type: superType, Expr: expr})
		return
	}
	if slot, ok := r.globals[name.Lexeme]; ok {
		r.emitSlotBinding(expr, slot, GlobalDistance)
		return
	}
	// No binding: the type resolver reports the undefined identifier.
}

func (r *Resolver) emitSlotBinding(expr ast.Expression, slot *Slot, distance int) {
	switch {
	case slot.Class != nil:
		r.directory.Add(&ClassBinding{Decl: slot.Class, Expr: expr})
	case slot.Fn != nil:
		r.directory.Add(&FunctionBinding{Fn: slot.Fn, Type: slot.Type, Distance: distance, Expr: expr})
	default:
		r.directory.Add(&VariableBinding{Type: slot.Type, Distance: distance, Expr: expr})
	}
}

// --- statements -------------------------------------------------------

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpression(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpression(s.Expr)
	case *ast.VarStmt:
		r.resolveVar(s)
	case *ast.BlockStmt:
		r.beginScope()
		for _, inner := range s.Statements {
			r.resolveStatement(inner)
		}
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ast.FunctionStmt:
		r.resolveFunction(s)
	case *ast.ReturnStmt:
		if len(r.functionStack) == 0 {
			r.errorAt(s.Token, diagnostics.ErrR003, "Cannot return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpression(s.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveVar(s *ast.VarStmt) {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpression(s.Initializer)
	}

	// The slot adopts the explicit annotation when present; otherwise the
	// initializer's type slot, which the type resolver fills in later.
	typeRef := s.DeclaredType
	if !typeRef.Explicit() && s.Initializer != nil {
		typeRef = s.Initializer.TypeRef()
	}
	r.define(s.Name, typeRef, nil, nil)
}

func (r *Resolver) resolveFunction(s *ast.FunctionStmt) {
	r.declare(s.Name)
	r.define(s.Name, s.ReturnType, s, nil)

	r.beginScope()
	r.functionStack = append(r.functionStack, ctxFunction)
	for _, param := range s.Params {
		r.declare(param.Name)
		r.define(param.Name, param.Type, nil, nil)
	}
	for _, stmt := range s.Body {
		r.resolveStatement(stmt)
	}
	r.functionStack = r.functionStack[:len(r.functionStack)-1]
	r.endScope()
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	r.declare(s.Name)
	r.define(s.Name, ast.NewTypeRef(nil), nil, s)
	for _, method := range s.Methods {
		r.resolveFunction(method)
	}
}

// --- expressions ------------------------------------------------------

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal, *ast.Empty:
		// Leaves; nothing refers to a name.
	case *ast.Grouping:
		r.resolveExpression(e.Inner)
	case *ast.UnaryPrefix:
		r.resolveExpression(e.Right)
	case *ast.UnaryPostfix:
		r.resolveExpression(e.Left)
		// The store-back needs its own binding keyed by the postfix node.
		r.resolveLocal(e, e.Name)
	case *ast.Binary:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Logical:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Assign:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Identifier:
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		r.resolveExpression(e.Object)
		// The property itself resolves at runtime against the host
		// object; no binding is emitted for it.
	}
}
