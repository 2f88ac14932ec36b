package resolver_test

import (
	"testing"

	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/lexer"
	"github.com/sparvlang/sparv/internal/parser"
	"github.com/sparvlang/sparv/internal/pipeline"
	"github.com/sparvlang/sparv/internal/resolver"
	"github.com/sparvlang/sparv/internal/typesystem"
)

func parseStmts(t *testing.T, input string) []ast.Statement {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse error: %s", ctx.Errors[0])
	}
	return ctx.AstRoot.(*ast.Program).Statements
}

func resolve(t *testing.T, input string, natives *resolver.Directories) (*resolver.Directory, []string) {
	t.Helper()
	r := resolver.New(natives)
	directory := r.Resolve(parseStmts(t, input))
	var msgs []string
	for _, err := range r.Errors() {
		msgs = append(msgs, err.Message)
	}
	return directory, msgs
}

// findIdentifier walks the statements for the identifier use with the
// given lexeme.
func findIdentifier(stmts []ast.Statement, name string) *ast.Identifier {
	var found *ast.Identifier
	var visitExpr func(ast.Expression)
	var visitStmt func(ast.Statement)

	visitExpr = func(expr ast.Expression) {
		switch e := expr.(type) {
		case *ast.Identifier:
			if e.Name.Lexeme == name {
				found = e
			}
		case *ast.Grouping:
			visitExpr(e.Inner)
		case *ast.UnaryPrefix:
			visitExpr(e.Right)
		case *ast.UnaryPostfix:
			visitExpr(e.Left)
		case *ast.Binary:
			visitExpr(e.Left)
			visitExpr(e.Right)
		case *ast.Logical:
			visitExpr(e.Left)
			visitExpr(e.Right)
		case *ast.Assign:
			visitExpr(e.Value)
		case *ast.Call:
			visitExpr(e.Callee)
			for _, arg := range e.Args {
				visitExpr(arg)
			}
		case *ast.Get:
			visitExpr(e.Object)
		}
	}
	visitStmt = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.ExpressionStmt:
			visitExpr(s.Expr)
		case *ast.PrintStmt:
			visitExpr(s.Expr)
		case *ast.VarStmt:
			if s.Initializer != nil {
				visitExpr(s.Initializer)
			}
		case *ast.BlockStmt:
			for _, inner := range s.Statements {
				visitStmt(inner)
			}
		case *ast.IfStmt:
			visitExpr(s.Condition)
			visitStmt(s.Then)
			if s.Else != nil {
				visitStmt(s.Else)
			}
		case *ast.WhileStmt:
			visitExpr(s.Condition)
			visitStmt(s.Body)
		case *ast.FunctionStmt:
			for _, inner := range s.Body {
				visitStmt(inner)
			}
		case *ast.ReturnStmt:
			if s.Value != nil {
				visitExpr(s.Value)
			}
		}
	}
	for _, stmt := range stmts {
		visitStmt(stmt)
	}
	return found
}

func TestResolve_GlobalRead(t *testing.T) {
	stmts := parseStmts(t, "var a = 1; print a;")
	r := resolver.New(nil)
	directory := r.Resolve(stmts)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	use := findIdentifier(stmts, "a")
	b, ok := directory.Lookup(use).(*resolver.VariableBinding)
	if !ok {
		t.Fatalf("expected VariableBinding, got %T", directory.Lookup(use))
	}
	if b.Distance != resolver.GlobalDistance {
		t.Errorf("expected global distance, got %d", b.Distance)
	}
}

func TestResolve_ShadowingDistances(t *testing.T) {
	input := `var a = 1;
{
	var a = 2;
	{
		print a;
	}
}`
	stmts := parseStmts(t, input)
	r := resolver.New(nil)
	directory := r.Resolve(stmts)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	use := findIdentifier(stmts[1:], "a")
	b, ok := directory.Lookup(use).(*resolver.VariableBinding)
	if !ok {
		t.Fatalf("expected VariableBinding, got %T", directory.Lookup(use))
	}
	if b.Distance != 1 {
		t.Errorf("expected distance 1 to the shadowing frame, got %d", b.Distance)
	}
}

func TestResolve_DuplicateInScope(t *testing.T) {
	_, msgs := resolve(t, "{ var a = 1; var a = 2; }", nil)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(msgs))
	}
	if msgs[0] != "Variable with this name already declared in this scope." {
		t.Errorf("unexpected message %q", msgs[0])
	}
}

func TestResolve_DuplicateGlobal(t *testing.T) {
	_, msgs := resolve(t, "var a = 1; var a = 2;", nil)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(msgs))
	}
	if msgs[0] != "Variable with this name already declared in this scope." {
		t.Errorf("unexpected message %q", msgs[0])
	}
}

func TestResolve_NestedShadowingAllowed(t *testing.T) {
	_, msgs := resolve(t, "var a = 1; { var a = 2; { var a = 3; } }", nil)
	if len(msgs) != 0 {
		t.Errorf("expected shadowing to be accepted, got %v", msgs)
	}
}

func TestResolve_ReadInOwnInitializer(t *testing.T) {
	_, msgs := resolve(t, "{ var a = a; }", nil)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(msgs))
	}
	if msgs[0] != "Cannot read local variable in its own initializer." {
		t.Errorf("unexpected message %q", msgs[0])
	}
}

func TestResolve_TopLevelReturn(t *testing.T) {
	_, msgs := resolve(t, "return 1;", nil)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(msgs))
	}
	if msgs[0] != "Cannot return from top-level code." {
		t.Errorf("unexpected message %q", msgs[0])
	}
}

func TestResolve_ReturnInsideFunction(t *testing.T) {
	_, msgs := resolve(t, "fun f(): int { return 1; }", nil)
	if len(msgs) != 0 {
		t.Errorf("expected no errors, got %v", msgs)
	}
}

type stubCallable struct{ name string }

func (s *stubCallable) Name() string                  { return s.name }
func (s *stubCallable) ParamTypes() []typesystem.Type { return nil }
func (s *stubCallable) ReturnType() typesystem.Type   { return typesystem.Float }

func TestResolve_NativeDirectories(t *testing.T) {
	natives := &resolver.Directories{
		Callables: map[string]resolver.NativeCallable{"clock": &stubCallable{name: "clock"}},
		Classes:   map[string]typesystem.Type{"Base64": typesystem.Host{Name: "Base64"}},
	}
	stmts := parseStmts(t, "print clock(); print Base64;")
	r := resolver.New(natives)
	directory := r.Resolve(stmts)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	clockUse := findIdentifier(stmts, "clock")
	if _, ok := directory.Lookup(clockUse).(*resolver.NativeBinding); !ok {
		t.Errorf("expected NativeBinding for clock, got %T", directory.Lookup(clockUse))
	}
	classUse := findIdentifier(stmts, "Base64")
	if _, ok := directory.Lookup(classUse).(*resolver.NativeObjectBinding); !ok {
		t.Errorf("expected NativeObjectBinding for Base64, got %T", directory.Lookup(classUse))
	}
}

func TestResolve_LocalShadowsNative(t *testing.T) {
	natives := &resolver.Directories{
		Callables: map[string]resolver.NativeCallable{"clock": &stubCallable{name: "clock"}},
	}
	stmts := parseStmts(t, "{ var clock = 1; print clock; }")
	r := resolver.New(natives)
	directory := r.Resolve(stmts)
	use := findIdentifier(stmts, "clock")
	if _, ok := directory.Lookup(use).(*resolver.VariableBinding); !ok {
		t.Errorf("expected the local to shadow the native, got %T", directory.Lookup(use))
	}
}

func TestResolve_UnknownNameEmitsNoBinding(t *testing.T) {
	stmts := parseStmts(t, "print ghost;")
	r := resolver.New(nil)
	directory := r.Resolve(stmts)
	if len(r.Errors()) != 0 {
		t.Fatalf("the resolver itself stays quiet on unknown names, got %v", r.Errors())
	}
	use := findIdentifier(stmts, "ghost")
	if directory.Lookup(use) != nil {
		t.Errorf("expected no binding, got %T", directory.Lookup(use))
	}
}

func TestResolve_Idempotent(t *testing.T) {
	stmts := parseStmts(t, "var a = 1; { var b = a; print b; }")

	first := resolver.New(nil).Resolve(stmts)
	second := resolver.New(nil).Resolve(stmts)

	if first.Len() != second.Len() {
		t.Fatalf("binding counts differ: %d vs %d", first.Len(), second.Len())
	}
	use := findIdentifier(stmts, "b")
	fb, fok := first.Lookup(use).(*resolver.VariableBinding)
	sb, sok := second.Lookup(use).(*resolver.VariableBinding)
	if !fok || !sok {
		t.Fatal("expected variable bindings from both passes")
	}
	if fb.Distance != sb.Distance {
		t.Errorf("distances differ: %d vs %d", fb.Distance, sb.Distance)
	}
}
