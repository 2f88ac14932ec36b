package analyzer

import (
	"fmt"
	"math"
	"math/big"

	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/resolver"
	"github.com/sparvlang/sparv/internal/token"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// TypeResolver is the first type pass: a depth-first walk that resolves
// explicit annotations, infers variable types from initializers, and
// computes every expression's aggregate type bottom-up. Type slots are
// write-once, so re-running over retained REPL statements is harmless.
type TypeResolver struct {
	directory *resolver.Directory
	errors    []*diagnostics.DiagnosticError
}

func NewTypeResolver(directory *resolver.Directory) *TypeResolver {
	return &TypeResolver{directory: directory}
}

func (tr *TypeResolver) Errors() []*diagnostics.DiagnosticError { return tr.errors }

func (tr *TypeResolver) errorAt(tok token.Token, code string, format string, args ...interface{}) {
	tr.errors = append(tr.errors, diagnostics.NewError(code, tok, fmt.Sprintf(format, args...)))
}

func (tr *TypeResolver) Run(stmts []ast.Statement) {
	for _, stmt := range stmts {
		tr.resolveStatement(stmt)
	}
}

// --- statements -------------------------------------------------------

func (tr *TypeResolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		tr.resolveExpression(s.Expr)
	case *ast.PrintStmt:
		tr.resolveExpression(s.Expr)
	case *ast.VarStmt:
		tr.resolveVar(s)
	case *ast.BlockStmt:
		for _, inner := range s.Statements {
			tr.resolveStatement(inner)
		}
	case *ast.IfStmt:
		tr.resolveExpression(s.Condition)
		tr.resolveStatement(s.Then)
		if s.Else != nil {
			tr.resolveStatement(s.Else)
		}
	case *ast.WhileStmt:
		tr.resolveExpression(s.Condition)
		tr.resolveStatement(s.Body)
	case *ast.FunctionStmt:
		tr.resolveFunction(s)
	case *ast.ReturnStmt:
		if s.Value != nil {
			tr.resolveExpression(s.Value)
		}
	case *ast.ClassStmt:
		for _, method := range s.Methods {
			tr.resolveFunction(method)
		}
	}
}

func (tr *TypeResolver) resolveVar(s *ast.VarStmt) {
	if s.Initializer != nil {
		tr.resolveExpression(s.Initializer)
	}
	if s.DeclaredType.Explicit() {
		tr.resolveAnnotation(s.DeclaredType)
		return
	}
	// No annotation: adopt the initializer's resolved type (inference).
	if s.Initializer != nil && s.Initializer.TypeRef().IsResolved() {
		s.DeclaredType.Resolve(s.Initializer.TypeRef().Resolved())
	}
}

// resolveFunction requires explicit annotations; inferring a function's
// return or parameter types is not supported yet.
func (tr *TypeResolver) resolveFunction(s *ast.FunctionStmt) {
	if !s.ReturnType.Explicit() {
		tr.errorAt(s.Name, diagnostics.ErrT004,
			"Inferred typing is not yet supported for function '%s'", s.Name.Lexeme)
	} else {
		tr.resolveAnnotation(s.ReturnType)
	}
	for _, param := range s.Params {
		if !param.Type.Explicit() {
			tr.errorAt(param.Name, diagnostics.ErrT004,
				"Inferred typing is not yet supported for parameter '%s' to function '%s'",
				param.Name.Lexeme, s.Name.Lexeme)
			continue
		}
		tr.resolveAnnotation(param.Type)
	}
	for _, stmt := range s.Body {
		tr.resolveStatement(stmt)
	}
}

// resolveAnnotation looks the specifier up in the built-in table. An
// unknown name leaves the slot unresolved; the validator surfaces it as
// a TypeNotFound.
func (tr *TypeResolver) resolveAnnotation(ref *ast.TypeRef) {
	if !ref.Explicit() || ref.IsResolved() {
		return
	}
	if t, ok := LookupTypeName(ref.SpecifierLexeme()); ok {
		ref.Resolve(t)
	}
}

// --- expressions ------------------------------------------------------

func (tr *TypeResolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		e.Type.Resolve(literalType(e.Value))
	case *ast.Grouping:
		tr.resolveExpression(e.Inner)
		if e.Inner.TypeRef().IsResolved() {
			e.Type.Resolve(e.Inner.TypeRef().Resolved())
		}
	case *ast.UnaryPrefix:
		tr.resolveExpression(e.Right)
		if e.Right.TypeRef().IsResolved() {
			e.Type.Resolve(e.Right.TypeRef().Resolved())
		}
	case *ast.UnaryPostfix:
		tr.resolveExpression(e.Left)
		if e.Left.TypeRef().IsResolved() {
			e.Type.Resolve(e.Left.TypeRef().Resolved())
		}
	case *ast.Binary:
		tr.resolveBinary(e)
	case *ast.Logical:
		tr.resolveExpression(e.Left)
		tr.resolveExpression(e.Right)
		// `a or b` yields one of its operands, not a fresh boolean.
		if e.Left.TypeRef().IsResolved() {
			e.Type.Resolve(e.Left.TypeRef().Resolved())
		}
	case *ast.Assign:
		tr.resolveExpression(e.Value)
		if tr.directory.Lookup(e) == nil {
			tr.errorAt(e.Name, diagnostics.ErrN001, "Undefined variable '%s'", e.Name.Lexeme)
			return
		}
		if e.Value.TypeRef().IsResolved() {
			e.Type.Resolve(e.Value.TypeRef().Resolved())
		}
	case *ast.Identifier:
		tr.resolveIdentifier(e)
	case *ast.Call:
		tr.resolveCall(e)
	case *ast.Get:
		tr.resolveExpression(e.Object)
		// Host method lookup happens at runtime; the result type slot
		// stays unresolved by design.
	case *ast.Empty:
		e.Type.Resolve(typesystem.Null)
	}
}

func (tr *TypeResolver) resolveIdentifier(e *ast.Identifier) {
	binding := tr.directory.Lookup(e)
	if binding == nil {
		tr.errorAt(e.Name, diagnostics.ErrN001, "Undefined identifier '%s'", e.Name.Lexeme)
		return
	}
	switch b := binding.(type) {
	case *resolver.VariableBinding:
		tr.resolveAnnotation(b.Type)
		if b.Type.IsResolved() {
			e.Type.Resolve(b.Type.Resolved())
		}
	case *resolver.FunctionBinding:
		tr.resolveAnnotation(b.Type)
		if b.Type.IsResolved() {
			e.Type.Resolve(b.Type.Resolved())
		}
	case *resolver.NativeBinding:
		// A bare reference to a native callable; there is no first-class
		// function type, so the slot carries the opaque object type.
		e.Type.Resolve(typesystem.Object)
	case *resolver.NativeObjectBinding:
		e.Type.Resolve(b.Type)
	case *resolver.ClassBinding:
		e.Type.Resolve(typesystem.Host{Name: b.Decl.Name.Lexeme})
	}
}

func (tr *TypeResolver) resolveCall(e *ast.Call) {
	for _, arg := range e.Args {
		tr.resolveExpression(arg)
	}

	if ident, ok := e.Callee.(*ast.Identifier); ok {
		binding := tr.directory.Lookup(ident)
		if binding == nil {
			tr.errorAt(ident.Name, diagnostics.ErrN002,
				"Attempting to call undefined function '%s'", ident.Name.Lexeme)
			return
		}
		tr.resolveIdentifier(ident)
		switch b := binding.(type) {
		case *resolver.FunctionBinding:
			tr.resolveAnnotation(b.Type)
			if b.Type.IsResolved() {
				e.Type.Resolve(b.Type.Resolved())
			}
		case *resolver.NativeBinding:
			if rt := b.Callable.ReturnType(); rt != nil {
				e.Type.Resolve(rt)
			}
		}
		// Class and native-object callees fail in the validator.
		return
	}

	tr.resolveExpression(e.Callee)
	// Calls through a Get resolve against the host object at runtime;
	// the result type is tolerated unresolved, like the Get itself.
}

func (tr *TypeResolver) resolveBinary(e *ast.Binary) {
	tr.resolveExpression(e.Left)
	tr.resolveExpression(e.Right)

	leftRef, rightRef := e.Left.TypeRef(), e.Right.TypeRef()
	if !leftRef.IsResolved() || !rightRef.IsResolved() {
		// An upstream error already covers this node.
		return
	}
	left, right := leftRef.Resolved(), rightRef.Resolved()

	if !typesystem.IsComparable(left) || !typesystem.IsComparable(right) {
		tr.errorAt(e.Token, diagnostics.ErrT005,
			"Operands of type %s and %s cannot be compared", left, right)
		return
	}

	switch e.Op {
	case "+":
		if typesystem.IsString(left) || typesystem.IsString(right) {
			// String concatenation takes the left operand's type.
			e.Type.Resolve(left)
			return
		}
		tr.resolveArithmetic(e, left, right)
	case "-", "*", "/", "%", "**":
		tr.resolveArithmetic(e, left, right)
	case ">", ">=", "<", "<=", "==", "!=":
		e.Type.Resolve(typesystem.Bool)
	default:
		tr.errorAt(e.Token, diagnostics.ErrI001, "Unknown binary operator '%s'", e.Op)
	}
}

func (tr *TypeResolver) resolveArithmetic(e *ast.Binary, left, right typesystem.Type) {
	result, ok := typesystem.Promote(left, right)
	if !ok {
		tr.errorAt(e.Token, diagnostics.ErrT005,
			"Invalid operands %s and %s to operator '%s'", left, right, e.Op)
		return
	}
	e.Type.Resolve(result)
}

// literalType maps a decoded literal value to its static type. Integer
// literals that fit 32 bits are Int, wider ones Long, and anything past
// 64 bits is a BigInt.
func literalType(value interface{}) typesystem.Type {
	switch v := value.(type) {
	case int64:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return typesystem.Int
		}
		return typesystem.Long
	case *big.Int:
		return typesystem.BigInt
	case float64:
		return typesystem.Float
	case string:
		return typesystem.String
	case bool:
		return typesystem.Bool
	case nil:
		return typesystem.Null
	}
	return typesystem.Object
}
