package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sparvlang/sparv/internal/ast"
)

// Printer renders an AST as a parenthesized prefix dump, one top-level
// statement per line.
type Printer struct {
	buf bytes.Buffer
}

func New() *Printer { return &Printer{} }

func (p *Printer) Print(program *ast.Program) string {
	p.buf.Reset()
	for _, stmt := range program.Statements {
		p.buf.WriteString(p.statement(stmt))
		p.buf.WriteString("\n")
	}
	return p.buf.String()
}

func (p *Printer) statement(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return p.expression(s.Expr)
	case *ast.PrintStmt:
		return "(print " + p.expression(s.Expr) + ")"
	case *ast.VarStmt:
		head := "(var " + s.Name.Lexeme
		if s.DeclaredType.Explicit() {
			head += " : " + s.DeclaredType.SpecifierLexeme()
		}
		if s.Initializer != nil {
			head += " = " + p.expression(s.Initializer)
		}
		return head + ")"
	case *ast.BlockStmt:
		parts := make([]string, 0, len(s.Statements))
		for _, inner := range s.Statements {
			parts = append(parts, p.statement(inner))
		}
		return "(block " + strings.Join(parts, " ") + ")"
	case *ast.IfStmt:
		out := "(if " + p.expression(s.Condition) + " " + p.statement(s.Then)
		if s.Else != nil {
			out += " " + p.statement(s.Else)
		}
		return out + ")"
	case *ast.WhileStmt:
		return "(while " + p.expression(s.Condition) + " " + p.statement(s.Body) + ")"
	case *ast.FunctionStmt:
		params := make([]string, 0, len(s.Params))
		for _, param := range s.Params {
			entry := param.Name.Lexeme
			if param.Type.Explicit() {
				entry += " : " + param.Type.SpecifierLexeme()
			}
			params = append(params, entry)
		}
		body := make([]string, 0, len(s.Body))
		for _, inner := range s.Body {
			body = append(body, p.statement(inner))
		}
		return fmt.Sprintf("(fun %s (%s) %s)",
			s.Name.Lexeme, strings.Join(params, " "), strings.Join(body, " "))
	case *ast.ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return "(return " + p.expression(s.Value) + ")"
	case *ast.ClassStmt:
		methods := make([]string, 0, len(s.Methods))
		for _, m := range s.Methods {
			methods = append(methods, p.statement(m))
		}
		return "(class " + s.Name.Lexeme + " " + strings.Join(methods, " ") + ")"
	}
	return "(?)"
}

func (p *Printer) expression(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Value == nil {
			return "null"
		}
		if s, ok := e.Value.(string); ok {
			return `"` + s + `"`
		}
		return e.Token.Lexeme
	case *ast.Grouping:
		return "(group " + p.expression(e.Inner) + ")"
	case *ast.UnaryPrefix:
		return "(" + e.Op + " " + p.expression(e.Right) + ")"
	case *ast.UnaryPostfix:
		return "(" + e.Op + " " + p.expression(e.Left) + ")"
	case *ast.Binary:
		return "(" + e.Op + " " + p.expression(e.Left) + " " + p.expression(e.Right) + ")"
	case *ast.Logical:
		return "(" + e.Op + " " + p.expression(e.Left) + " " + p.expression(e.Right) + ")"
	case *ast.Assign:
		return "(= " + e.Name.Lexeme + " " + p.expression(e.Value) + ")"
	case *ast.Identifier:
		return e.Name.Lexeme
	case *ast.Call:
		args := make([]string, 0, len(e.Args))
		for _, arg := range e.Args {
			args = append(args, p.expression(arg))
		}
		return "(call " + p.expression(e.Callee) + " " + strings.Join(args, " ") + ")"
	case *ast.Get:
		return "(get " + p.expression(e.Object) + " " + e.Name.Lexeme + ")"
	case *ast.Empty:
		return "()"
	}
	return "(?)"
}
