package parser_test

import (
	"testing"

	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/lexer"
	"github.com/sparvlang/sparv/internal/parser"
	"github.com/sparvlang/sparv/internal/pipeline"
)

// parse lexes and parses input, failing the test on any diagnostic.
func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		for _, e := range ctx.Errors {
			t.Errorf("parse error: %s", e)
		}
		t.FailNow()
	}
	return ctx.AstRoot.(*ast.Program)
}

// parseErrors returns the diagnostics of a failing input.
func parseErrors(t *testing.T, input string) []string {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	var msgs []string
	for _, e := range ctx.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func stmtExpr(t *testing.T, prog *ast.Program, idx int) ast.Expression {
	t.Helper()
	if idx >= len(prog.Statements) {
		t.Fatalf("expected at least %d statements, got %d", idx+1, len(prog.Statements))
	}
	es, ok := prog.Statements[idx].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("statement %d: expected ExpressionStmt, got %T", idx, prog.Statements[idx])
	}
	return es.Expr
}

func TestParse_VarWithAnnotation(t *testing.T) {
	prog := parse(t, "var a: int = 42;")
	vs := prog.Statements[0].(*ast.VarStmt)
	if vs.Name.Lexeme != "a" {
		t.Errorf("expected name 'a', got %q", vs.Name.Lexeme)
	}
	if !vs.DeclaredType.Explicit() {
		t.Error("expected explicit declared type")
	}
	if vs.DeclaredType.SpecifierLexeme() != "int" {
		t.Errorf("expected specifier 'int', got %q", vs.DeclaredType.SpecifierLexeme())
	}
	lit, ok := vs.Initializer.(*ast.Literal)
	if !ok {
		t.Fatalf("expected literal initializer, got %T", vs.Initializer)
	}
	if lit.Value != int64(42) {
		t.Errorf("expected value 42, got %v", lit.Value)
	}
}

func TestParse_VarWithoutAnnotation(t *testing.T) {
	prog := parse(t, `var s = "hi";`)
	vs := prog.Statements[0].(*ast.VarStmt)
	if vs.DeclaredType.Explicit() {
		t.Error("expected inferred declared type")
	}
}

func TestParse_Precedence(t *testing.T) {
	expr := stmtExpr(t, parse(t, "1 + 2 * 3;"), 0)
	add, ok := expr.(*ast.Binary)
	if !ok || add.Op != "+" {
		t.Fatalf("expected '+' at root, got %T", expr)
	}
	mul, ok := add.Right.(*ast.Binary)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected '*' on the right, got %T", add.Right)
	}
}

func TestParse_PowerRightAssociative(t *testing.T) {
	expr := stmtExpr(t, parse(t, "2 ** 3 ** 2;"), 0)
	outer, ok := expr.(*ast.Binary)
	if !ok || outer.Op != "**" {
		t.Fatalf("expected '**' at root, got %T", expr)
	}
	inner, ok := outer.Right.(*ast.Binary)
	if !ok || inner.Op != "**" {
		t.Fatalf("expected nested '**' on the right, got %T", outer.Right)
	}
}

func TestParse_Postfix(t *testing.T) {
	expr := stmtExpr(t, parse(t, "a++;"), 0)
	post, ok := expr.(*ast.UnaryPostfix)
	if !ok {
		t.Fatalf("expected UnaryPostfix, got %T", expr)
	}
	if post.Op != "++" || post.Name.Lexeme != "a" {
		t.Errorf("unexpected postfix %q on %q", post.Op, post.Name.Lexeme)
	}
}

func TestParse_MethodCallChain(t *testing.T) {
	expr := stmtExpr(t, parse(t, `Base64.decode("aGVq");`), 0)
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", expr)
	}
	get, ok := call.Callee.(*ast.Get)
	if !ok {
		t.Fatalf("expected Get callee, got %T", call.Callee)
	}
	if get.Name.Lexeme != "decode" {
		t.Errorf("expected property 'decode', got %q", get.Name.Lexeme)
	}
	ident, ok := get.Object.(*ast.Identifier)
	if !ok || ident.Name.Lexeme != "Base64" {
		t.Fatalf("expected identifier receiver Base64, got %T", get.Object)
	}
	if len(call.Args) != 1 {
		t.Errorf("expected 1 argument, got %d", len(call.Args))
	}
}

func TestParse_FunctionDeclaration(t *testing.T) {
	prog := parse(t, "fun add(a: int, b: int): int { return a + b; }")
	fn := prog.Statements[0].(*ast.FunctionStmt)
	if fn.Name.Lexeme != "add" {
		t.Errorf("expected name 'add', got %q", fn.Name.Lexeme)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	if fn.Params[1].Type.SpecifierLexeme() != "int" {
		t.Errorf("expected parameter type 'int', got %q", fn.Params[1].Type.SpecifierLexeme())
	}
	if !fn.ReturnType.Explicit() || fn.ReturnType.SpecifierLexeme() != "int" {
		t.Error("expected explicit 'int' return type")
	}
	if len(fn.Body) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(fn.Body))
	}
}

func TestParse_ReplModeOptionalSemicolon(t *testing.T) {
	ctx := pipeline.NewPipelineContext("print 10")
	ctx.ReplMode = true
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("expected clean parse, got %v", ctx.Errors[0])
	}
	prog := ctx.AstRoot.(*ast.Program)
	if _, ok := prog.Statements[0].(*ast.PrintStmt); !ok {
		t.Fatalf("expected PrintStmt, got %T", prog.Statements[0])
	}
}

func TestParse_MissingSemicolonOutsideRepl(t *testing.T) {
	msgs := parseErrors(t, "print 10")
	if len(msgs) == 0 {
		t.Fatal("expected a diagnostic for the missing semicolon")
	}
}

func TestParse_InvalidAssignmentTarget(t *testing.T) {
	msgs := parseErrors(t, "1 = 2;")
	if len(msgs) == 0 {
		t.Fatal("expected a diagnostic")
	}
	if msgs[0] != "Invalid assignment target" {
		t.Errorf("unexpected message %q", msgs[0])
	}
}

func TestParse_RecoversAfterError(t *testing.T) {
	ctx := pipeline.NewPipelineContext("var = 1;\nvar b = 2;")
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) == 0 {
		t.Fatal("expected a diagnostic for the first statement")
	}
	prog := ctx.AstRoot.(*ast.Program)
	found := false
	for _, stmt := range prog.Statements {
		if vs, ok := stmt.(*ast.VarStmt); ok && vs.Name.Lexeme == "b" {
			found = true
		}
	}
	if !found {
		t.Error("expected the parser to recover and parse 'var b'")
	}
}

func TestParse_BigIntLiteral(t *testing.T) {
	prog := parse(t, "var n = 99999999999999999999999999;")
	vs := prog.Statements[0].(*ast.VarStmt)
	lit := vs.Initializer.(*ast.Literal)
	if _, ok := lit.Value.(int64); ok {
		t.Fatal("expected the literal to widen past int64")
	}
}
