package resolver

import (
	"github.com/sparvlang/sparv/internal/ast"
)

type slotState int

const (
	// slotDeclared marks a name whose initializer has not finished
	// resolving; reading it is the own-initializer error.
	slotDeclared slotState = iota
	slotDefined
)

// Slot is the state of one name in one scope frame. Fn is set when the
// slot holds a function declaration, Class when it holds a class; both
// are nil for plain variables.
type Slot struct {
	State slotState
	Type  *ast.TypeRef
	Fn    *ast.FunctionStmt
	Class *ast.ClassStmt
}

// scope is one lexical frame. Shadowing across frames is allowed;
// redeclaration inside a single frame is a resolve error.
type scope map[string]*Slot
