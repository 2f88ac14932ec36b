package evaluator_test

import (
	"testing"

	"github.com/sparvlang/sparv/internal/analyzer"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/lexer"
	"github.com/sparvlang/sparv/internal/parser"
	"github.com/sparvlang/sparv/internal/pipeline"
	"github.com/sparvlang/sparv/internal/resolver"
)

// run executes input through the whole pipeline and returns the printed
// lines plus any diagnostics.
func run(t *testing.T, input string) ([]string, []*diagnostics.DiagnosticError) {
	t.Helper()
	var lines []string
	ctx := pipeline.NewPipelineContext(input)
	ctx.Out = func(line string) { lines = append(lines, line) }
	ctx.Runtime = evaluator.NewRuntime(nil)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	ctx = (&resolver.ResolverProcessor{}).Process(ctx)
	ctx = (&analyzer.AnalyzerProcessor{}).Process(ctx)
	ctx = (&evaluator.EvaluatorProcessor{}).Process(ctx)
	return lines, ctx.Errors
}

// runClean is run plus a hard failure on any diagnostic.
func runClean(t *testing.T, input string) []string {
	t.Helper()
	lines, errs := run(t, input)
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	return lines
}

func wantLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d line(s) %q, got %d: %q", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestExecute_Arithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"print 1 + 2 * 3;", "7"},
		{"print (1 + 2) * 3;", "9"},
		{"print 10 - 4;", "6"},
		{"print 7 / 2;", "3"},
		{"print 7 / 2.0;", "3.5"},
		{"print 10 % 3;", "1"},
		{"print -5 + 3;", "-2"},
		{"print 2 ** 10;", "1024"},
		{"print 2 ** -1;", "0.5"},
		{"print 1.5 + 1.5;", "3"},
	}
	for _, tt := range tests {
		wantLines(t, runClean(t, tt.input), tt.want)
	}
}

func TestExecute_BigIntPower(t *testing.T) {
	wantLines(t, runClean(t, "print 2 ** 100;"), "1267650600228229401496703205376")
}

func TestExecute_BigIntShrinksBack(t *testing.T) {
	wantLines(t, runClean(t, "print 99999999999999999999999999 - 99999999999999999999999998;"), "1")
}

func TestExecute_Strings(t *testing.T) {
	lines := runClean(t, `var s = "foo" + "bar";
print s;
print s == "foobar";`)
	wantLines(t, lines, "foobar", "true")
}

func TestExecute_Comparisons(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"print 1 < 2;", "true"},
		{"print 2 <= 1;", "false"},
		{"print 1 == 1.0;", "true"},
		{"print 1 != 2;", "true"},
		{`print "a" == "a";`, "true"},
		{"print null == null;", "true"},
		{"print 1 == null;", "false"},
	}
	for _, tt := range tests {
		wantLines(t, runClean(t, tt.input), tt.want)
	}
}

func TestExecute_Truthiness(t *testing.T) {
	wantLines(t, runClean(t, "if (null) print 1; else print 2;"), "2")
	wantLines(t, runClean(t, "if (0) print 1; else print 2;"), "1")
	wantLines(t, runClean(t, `if ("") print 1; else print 2;`), "1")
	wantLines(t, runClean(t, "if (false) print 1; else print 2;"), "2")
}

func TestExecute_Logical(t *testing.T) {
	wantLines(t, runClean(t, "print true and 2;"), "2")
	wantLines(t, runClean(t, "print false and 2;"), "false")
	wantLines(t, runClean(t, "print false or 3;"), "3")
	wantLines(t, runClean(t, "print 1 or 3;"), "1")
}

func TestExecute_WhileLoop(t *testing.T) {
	lines := runClean(t, `var i = 3;
while (i > 0) {
	print i;
	i = i - 1;
}`)
	wantLines(t, lines, "3", "2", "1")
}

func TestExecute_Postfix(t *testing.T) {
	lines := runClean(t, `var i = 0;
print i++;
print i;
print i--;
print i;`)
	wantLines(t, lines, "0", "1", "1", "0")
}

func TestExecute_BlockScoping(t *testing.T) {
	lines := runClean(t, `var a = "outer";
{
	var a = "inner";
	print a;
}
print a;`)
	wantLines(t, lines, "inner", "outer")
}

func TestExecute_FunctionCall(t *testing.T) {
	lines := runClean(t, `fun add(a: int, b: int): int { return a + b; }
print add(2, 3);`)
	wantLines(t, lines, "5")
}

func TestExecute_Recursion(t *testing.T) {
	lines := runClean(t, `fun fib(n: int): int {
	if (n < 2) { return n; }
	return fib(n - 1) + fib(n - 2);
}
print fib(10);`)
	wantLines(t, lines, "55")
}

func TestExecute_VoidFunctionCall(t *testing.T) {
	lines := runClean(t, `fun hello(name: string): void { print "hi " + name; }
hello("you");`)
	wantLines(t, lines, "hi you")
}

func TestExecute_ClosureSeesDeclarationScope(t *testing.T) {
	lines := runClean(t, `var base = 10;
fun bump(n: int): int { return base + n; }
print bump(5);`)
	wantLines(t, lines, "15")
}

func TestExecute_DivisionByZero(t *testing.T) {
	for _, input := range []string{"print 1 / 0;", "print 1.0 / 0.0;", "print 10 % 0;"} {
		_, errs := run(t, input)
		if len(errs) != 1 {
			t.Fatalf("%s: expected 1 diagnostic, got %d", input, len(errs))
		}
		if errs[0].Code != "E001" {
			t.Errorf("%s: expected E001, got %s", input, errs[0].Code)
		}
		if errs[0].Message != "Division by zero" {
			t.Errorf("%s: unexpected message %q", input, errs[0].Message)
		}
	}
}

func TestExecute_RuntimeErrorYieldsVoid(t *testing.T) {
	var lines []string
	ctx := pipeline.NewPipelineContext("print 1 / 0;")
	ctx.Out = func(line string) { lines = append(lines, line) }
	ctx.Runtime = evaluator.NewRuntime(nil)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	ctx = (&resolver.ResolverProcessor{}).Process(ctx)
	ctx = (&analyzer.AnalyzerProcessor{}).Process(ctx)
	ctx = (&evaluator.EvaluatorProcessor{}).Process(ctx)
	if ctx.Result != evaluator.VOID {
		t.Errorf("expected VOID result, got %v", ctx.Result)
	}
	if len(lines) != 0 {
		t.Errorf("expected no output, got %q", lines)
	}
}

func TestExecute_GlobalsLandInRuntimeFrame(t *testing.T) {
	runtime := evaluator.NewRuntime(nil)
	ctx := pipeline.NewPipelineContext("var a = 41;")
	ctx.Runtime = runtime
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	ctx = (&resolver.ResolverProcessor{}).Process(ctx)
	ctx = (&analyzer.AnalyzerProcessor{}).Process(ctx)
	ctx = (&evaluator.EvaluatorProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Errors)
	}
	got, ok := runtime.Globals.Get("a")
	if !ok {
		t.Fatal("expected 'a' in the globals frame")
	}
	if got.Inspect() != "41" {
		t.Errorf("expected 41, got %s", got.Inspect())
	}
}

func TestExecute_SoleExpressionValue(t *testing.T) {
	ctx := pipeline.NewPipelineContext("1 + 2;")
	ctx.Runtime = evaluator.NewRuntime(nil)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	ctx = (&resolver.ResolverProcessor{}).Process(ctx)
	ctx = (&analyzer.AnalyzerProcessor{}).Process(ctx)
	ctx = (&evaluator.EvaluatorProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Errors)
	}
	result, ok := ctx.Result.(*evaluator.Integer)
	if !ok {
		t.Fatalf("expected Integer result, got %T", ctx.Result)
	}
	if result.Value != 3 {
		t.Errorf("expected 3, got %d", result.Value)
	}
}
