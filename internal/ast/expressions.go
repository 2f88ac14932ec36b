package ast

import (
	"github.com/sparvlang/sparv/internal/token"
)

// Literal is a constant value embedded in the source: an int, float,
// string, boolean or null literal. Value holds the decoded Go value
// (int64, *big.Int, float64, string, bool or nil).
type Literal struct {
	Token token.Token
	Value interface{}
	Type  *TypeRef
}

func (l *Literal) expressionNode()         {}
func (l *Literal) TokenLiteral() string    { return l.Token.Lexeme }
func (l *Literal) GetToken() token.Token   { return l.Token }
func (l *Literal) TypeRef() *TypeRef       { return l.Type }

// Grouping is a parenthesized expression.
type Grouping struct {
	Token token.Token // the '('
	Inner Expression
	Type  *TypeRef
}

func (g *Grouping) expressionNode()       {}
func (g *Grouping) TokenLiteral() string  { return g.Token.Lexeme }
func (g *Grouping) GetToken() token.Token { return g.Token }
func (g *Grouping) TypeRef() *TypeRef     { return g.Type }

// UnaryPrefix is `!x` or `-x`.
type UnaryPrefix struct {
	Token token.Token // the operator token
	Op    string
	Right Expression
	Type  *TypeRef
}

func (u *UnaryPrefix) expressionNode()       {}
func (u *UnaryPrefix) TokenLiteral() string  { return u.Token.Lexeme }
func (u *UnaryPrefix) GetToken() token.Token { return u.Token }
func (u *UnaryPrefix) TypeRef() *TypeRef     { return u.Type }

// UnaryPostfix is `x++` or `x--`. Name is the mutated identifier; the
// resolver records a binding for it the same way it does for assignment
// targets.
type UnaryPostfix struct {
	Token token.Token // the operator token
	Op    string
	Left  Expression
	Name  token.Token
	Type  *TypeRef
}

func (u *UnaryPostfix) expressionNode()       {}
func (u *UnaryPostfix) TokenLiteral() string  { return u.Token.Lexeme }
func (u *UnaryPostfix) GetToken() token.Token { return u.Token }
func (u *UnaryPostfix) TypeRef() *TypeRef     { return u.Type }

// Binary is an arithmetic or comparison operator application.
type Binary struct {
	Token token.Token // the operator token
	Op    string
	Left  Expression
	Right Expression
	Type  *TypeRef
}

func (b *Binary) expressionNode()       {}
func (b *Binary) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Binary) GetToken() token.Token { return b.Token }
func (b *Binary) TypeRef() *TypeRef     { return b.Type }

// Logical is `and` / `or`; kept separate from Binary because evaluation
// short-circuits.
type Logical struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
	Type  *TypeRef
}

func (l *Logical) expressionNode()       {}
func (l *Logical) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Logical) GetToken() token.Token { return l.Token }
func (l *Logical) TypeRef() *TypeRef     { return l.Type }

// Assign writes a new value into an existing variable.
type Assign struct {
	Token token.Token // the '='
	Name  token.Token
	Value Expression
	Type  *TypeRef
}

func (a *Assign) expressionNode()       {}
func (a *Assign) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assign) GetToken() token.Token { return a.Token }
func (a *Assign) TypeRef() *TypeRef     { return a.Type }

// Identifier is the name-reference form of an expression. The resolver
// keys its binding directory by the node's identity, not its lexeme.
type Identifier struct {
	Token token.Token
	Name  token.Token
	Type  *TypeRef
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) TypeRef() *TypeRef     { return i.Type }

// Call applies a callee to zero or more arguments. Paren is the closing
// parenthesis token, used for error locations.
type Call struct {
	Token  token.Token
	Callee Expression
	Paren  token.Token
	Args   []Expression
	Type   *TypeRef
}

func (c *Call) expressionNode()       {}
func (c *Call) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Call) GetToken() token.Token { return c.Token }
func (c *Call) TypeRef() *TypeRef     { return c.Type }

// Get is a property access `object.name`; in this core it refers to a
// method on a host-provided object, so its type may stay unresolved
// through the analysis passes.
type Get struct {
	Token  token.Token // the '.'
	Object Expression
	Name   token.Token
	Type   *TypeRef
}

func (g *Get) expressionNode()       {}
func (g *Get) TokenLiteral() string  { return g.Token.Lexeme }
func (g *Get) GetToken() token.Token { return g.Token }
func (g *Get) TypeRef() *TypeRef     { return g.Type }

// Empty is the placeholder expression for an absent operand.
type Empty struct {
	Token token.Token
	Type  *TypeRef
}

func (e *Empty) expressionNode()       {}
func (e *Empty) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Empty) GetToken() token.Token { return e.Token }
func (e *Empty) TypeRef() *TypeRef     { return e.Type }
