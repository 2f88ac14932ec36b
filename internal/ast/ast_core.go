package ast

import (
	"github.com/sparvlang/sparv/internal/token"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression. Every expression
// carries a mutable TypeRef slot filled in by the type resolver.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
	TypeRef() *TypeRef
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// TypeRef is the mutable type slot attached to expressions and
// declarations. Specifier is the explicit annotation token when the source
// spelled one out; the resolved handle is written exactly once.
type TypeRef struct {
	Specifier *token.Token
	resolved  typesystem.Type
}

// NewTypeRef returns an unresolved slot, optionally carrying an explicit
// annotation token.
func NewTypeRef(specifier *token.Token) *TypeRef {
	return &TypeRef{Specifier: specifier}
}

// ResolvedTypeRef returns a slot pre-resolved to t, for a node whose type
// is known at construction. The parser does not use it: literal slots
// start unresolved and the type resolver fills them in.
func ResolvedTypeRef(t typesystem.Type) *TypeRef {
	return &TypeRef{resolved: t}
}

// Explicit reports whether the source carried a type annotation.
func (tr *TypeRef) Explicit() bool { return tr != nil && tr.Specifier != nil }

// IsResolved reports whether a type handle has been assigned.
func (tr *TypeRef) IsResolved() bool { return tr != nil && tr.resolved != nil }

// Resolved returns the assigned type handle, or nil.
func (tr *TypeRef) Resolved() typesystem.Type {
	if tr == nil {
		return nil
	}
	return tr.resolved
}

// Resolve assigns the type handle. The first write wins; re-resolution of
// retained REPL statements leaves the slot untouched.
func (tr *TypeRef) Resolve(t typesystem.Type) {
	if tr.resolved == nil {
		tr.resolved = t
	}
}

// SpecifierLexeme returns the annotation lexeme, or "".
func (tr *TypeRef) SpecifierLexeme() string {
	if tr == nil || tr.Specifier == nil {
		return ""
	}
	return tr.Specifier.Lexeme
}

// Parameter is a function parameter: a name and its annotated type slot.
type Parameter struct {
	Name token.Token
	Type *TypeRef
}
