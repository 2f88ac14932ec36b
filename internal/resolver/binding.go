package resolver

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// GlobalDistance marks a binding resolved from the globals frame or the
// host directories rather than a lexical scope.
const GlobalDistance = -1

// Binding is the resolver's verdict about which slot an identifier-use
// refers to. At most one binding exists per referring expression node;
// the directory is keyed by node identity, not by lexeme.
type Binding interface {
	Referring() ast.Expression
	bindingVariant()
}

// DistanceBinding is implemented by the variants that know their scope
// distance (Variable and Function). Other variants are implicitly global;
// callers pattern-match instead of asking them for a distance.
type DistanceBinding interface {
	Binding
	ScopeDistance() int
}

// VariableBinding refers to a var slot, local (Distance >= 0) or global
// (Distance == GlobalDistance).
type VariableBinding struct {
	Type     *ast.TypeRef
	Distance int
	Expr     ast.Expression
}

func (b *VariableBinding) Referring() ast.Expression { return b.Expr }
func (b *VariableBinding) ScopeDistance() int        { return b.Distance }
func (b *VariableBinding) bindingVariant()           {}

// FunctionBinding refers to a user function declaration. Type is the
// function's return type slot, which doubles as the call result type.
type FunctionBinding struct {
	Fn       *ast.FunctionStmt
	Type     *ast.TypeRef
	Distance int
	Expr     ast.Expression
}

func (b *FunctionBinding) Referring() ast.Expression { return b.Expr }
func (b *FunctionBinding) ScopeDistance() int        { return b.Distance }
func (b *FunctionBinding) bindingVariant()           {}

// NativeBinding refers to a host-provided callable; always global.
type NativeBinding struct {
	Callable NativeCallable
	Expr     ast.Expression
}

func (b *NativeBinding) Referring() ast.Expression { return b.Expr }
func (b *NativeBinding) bindingVariant()           {}

// NativeObjectBinding refers to a host-provided class or super-global
// object; the evaluator fetches the actual object from its runtime
// directory by lexeme.
type NativeObjectBinding struct {
	Type typesystem.Type
	Expr ast.Expression
}

func (b *NativeObjectBinding) Referring() ast.Expression { return b.Expr }
func (b *NativeObjectBinding) bindingVariant()           {}

// ClassBinding refers to a user-declared class.
type ClassBinding struct {
	Decl *ast.ClassStmt
	Expr ast.Expression
}

func (b *ClassBinding) Referring() ast.Expression { return b.Expr }
func (b *ClassBinding) bindingVariant()           {}

// Directory is the resolver's output: one binding per referring
// expression node, keyed by identity. A fresh directory is built on every
// resolution pass; re-resolving the same tree writes identical entries.
type Directory struct {
	bindings map[ast.Expression]Binding
}

func NewDirectory() *Directory {
	return &Directory{bindings: make(map[ast.Expression]Binding)}
}

func (d *Directory) Add(b Binding) {
	d.bindings[b.Referring()] = b
}

// Lookup returns the binding for expr, or nil when the resolver emitted
// none (an undefined name; later passes diagnose it).
func (d *Directory) Lookup(expr ast.Expression) Binding {
	return d.bindings[expr]
}

func (d *Directory) Len() int { return len(d.bindings) }

// NativeCallable is the resolver-facing descriptor of a host callable.
// The concrete host library value also carries the invocation method the
// evaluator asserts for.
type NativeCallable interface {
	Name() string
	ParamTypes() []typesystem.Type
	ReturnType() typesystem.Type
}

// Directories are the immutable host inputs to name resolution.
type Directories struct {
	Callables    map[string]NativeCallable
	Classes      map[string]typesystem.Type
	SuperGlobals map[string]typesystem.Type
}
