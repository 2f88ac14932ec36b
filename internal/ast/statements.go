package ast

import (
	"github.com/sparvlang/sparv/internal/token"
)

// ExpressionStmt wraps an expression evaluated for its side effects (or,
// in REPL mode, for its value echo).
type ExpressionStmt struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStmt) statementNode()        {}
func (s *ExpressionStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ExpressionStmt) GetToken() token.Token { return s.Token }

// PrintStmt evaluates its expression and writes the stringified result
// through the injected output sink.
type PrintStmt struct {
	Token token.Token
	Expr  Expression
}

func (s *PrintStmt) statementNode()        {}
func (s *PrintStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *PrintStmt) GetToken() token.Token { return s.Token }

// VarStmt declares a variable with an optional type annotation and an
// optional initializer. DeclaredType carries the annotation (explicit when
// the source spelled one); with no annotation the type is inferred from
// the initializer.
type VarStmt struct {
	Token        token.Token
	Name         token.Token
	DeclaredType *TypeRef
	Initializer  Expression
}

func (s *VarStmt) statementNode()        {}
func (s *VarStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *VarStmt) GetToken() token.Token { return s.Token }

// BlockStmt is a braced statement list with its own lexical scope.
type BlockStmt struct {
	Token      token.Token
	Statements []Statement
}

func (s *BlockStmt) statementNode()        {}
func (s *BlockStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *BlockStmt) GetToken() token.Token { return s.Token }

// IfStmt is the two-armed conditional; Else may be nil.
type IfStmt struct {
	Token     token.Token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (s *IfStmt) statementNode()        {}
func (s *IfStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *IfStmt) GetToken() token.Token { return s.Token }

// WhileStmt loops while the condition is truthy.
type WhileStmt struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (s *WhileStmt) statementNode()        {}
func (s *WhileStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *WhileStmt) GetToken() token.Token { return s.Token }

// FunctionStmt declares a named function. ReturnType is the annotated
// return type; parameter types are annotated on each Parameter. Function
// statements are shared between the scope slot that defines them and the
// call-site bindings that refer to them.
type FunctionStmt struct {
	Token      token.Token
	Name       token.Token
	Params     []*Parameter
	ReturnType *TypeRef
	Body       []Statement
}

func (s *FunctionStmt) statementNode()        {}
func (s *FunctionStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *FunctionStmt) GetToken() token.Token { return s.Token }

// ReturnStmt unwinds the enclosing user function call. Value may be nil.
type ReturnStmt struct {
	Token token.Token // the 'return' keyword
	Value Expression
}

func (s *ReturnStmt) statementNode()        {}
func (s *ReturnStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ReturnStmt) GetToken() token.Token { return s.Token }

// ClassStmt declares a class. Only host-native classes carry callable
// methods in this core; user class declarations just bind the name.
type ClassStmt struct {
	Token   token.Token
	Name    token.Token
	Methods []*FunctionStmt
}

func (s *ClassStmt) statementNode()        {}
func (s *ClassStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ClassStmt) GetToken() token.Token { return s.Token }
