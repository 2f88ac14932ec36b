package diagnostics

import (
	"fmt"
	"strings"

	"github.com/sparvlang/sparv/internal/token"
)

// Kind classifies a diagnostic by the stage that produced it.
type Kind string

const (
	ScanError           Kind = "ScanError"
	ParseError          Kind = "ParseError"
	ResolveError        Kind = "ResolveError"
	NameResolutionError Kind = "NameResolutionError"
	TypeValidationError Kind = "TypeValidationError"
	RuntimeError        Kind = "RuntimeError"
	InternalError       Kind = "InternalError"
)

// Stable codes, one block per stage. The first letter selects the Kind.
const (
	ErrL001 = "L001" // illegal character
	ErrL002 = "L002" // unterminated string

	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // missing token

	ErrR001 = "R001" // duplicate declaration in scope
	ErrR002 = "R002" // read in own initializer
	ErrR003 = "R003" // return at top level

	ErrN001 = "N001" // undefined identifier / variable
	ErrN002 = "N002" // undefined function at call site

	ErrT001 = "T001" // arity mismatch
	ErrT002 = "T002" // argument coercion failure
	ErrT003 = "T003" // type not found
	ErrT004 = "T004" // inference not supported
	ErrT005 = "T005" // invalid operands
	ErrT006 = "T006" // cannot infer without initializer

	ErrE001 = "E001" // runtime error

	ErrI001 = "I001" // internal consistency failure
)

// DiagnosticError is the one error shape every pipeline stage reports.
type DiagnosticError struct {
	Kind    Kind
	Code    string
	Token   token.Token
	Message string
	File    string
}

// NewError builds a diagnostic; the Kind is derived from the code prefix.
func NewError(code string, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{
		Kind:    kindForCode(code),
		Code:    code,
		Token:   tok,
		Message: message,
	}
}

func kindForCode(code string) Kind {
	if code == "" {
		return InternalError
	}
	switch code[0] {
	case 'L':
		return ScanError
	case 'P':
		return ParseError
	case 'R':
		return ResolveError
	case 'N':
		return NameResolutionError
	case 'T':
		return TypeValidationError
	case 'E':
		return RuntimeError
	default:
		return InternalError
	}
}

func (e *DiagnosticError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if e.Kind == RuntimeError {
		// Runtime errors keep the driver-facing bracket form.
		fmt.Fprintf(&sb, "[line %d] %s", e.Token.Line, e.Message)
		return sb.String()
	}
	if e.Token.Line > 0 {
		fmt.Fprintf(&sb, "%s at line %d: %s", e.Kind, e.Token.Line, e.Message)
	} else {
		fmt.Fprintf(&sb, "%s: %s", e.Kind, e.Message)
	}
	return sb.String()
}

// HasErrors reports whether the slice carries at least one diagnostic.
func HasErrors(errs []*DiagnosticError) bool {
	return len(errs) > 0
}
