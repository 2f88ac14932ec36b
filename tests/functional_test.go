package tests

import (
	"testing"

	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/interp"
)

// harness drives a full interpreter instance the way the CLI does,
// capturing output lines and diagnostic messages.
type harness struct {
	ip       *interp.Interpreter
	lines    []string
	messages []string
}

func newHarness(t *testing.T, replMode bool, args ...string) *harness {
	t.Helper()
	h := &harness{}
	record := func(err *diagnostics.DiagnosticError) { h.messages = append(h.messages, err.Message) }
	h.ip = interp.New(interp.Options{
		Out:        func(line string) { h.lines = append(h.lines, line) },
		ScanErr:    record,
		ParseErr:   record,
		ResolveErr: record,
		TypeErr:    record,
		RuntimeErr: record,
		Args:       args,
		ReplMode:   replMode,
	})
	return h
}

func (h *harness) mustEval(t *testing.T, source string) evaluator.Object {
	t.Helper()
	before := len(h.messages)
	result := h.ip.Eval(source)
	if len(h.messages) > before {
		t.Fatalf("%s: unexpected diagnostics: %v", source, h.messages[before:])
	}
	return result
}

func wantOutput(t *testing.T, h *harness, want ...string) {
	t.Helper()
	if len(h.lines) != len(want) {
		t.Fatalf("expected output %q, got %q", want, h.lines)
	}
	for i := range want {
		if h.lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], h.lines[i])
		}
	}
}

func wantMessages(t *testing.T, h *harness, want ...string) {
	t.Helper()
	if len(h.messages) != len(want) {
		t.Fatalf("expected diagnostics %q, got %q", want, h.messages)
	}
	for i := range want {
		if h.messages[i] != want[i] {
			t.Errorf("diagnostic %d: expected %q, got %q", i, want[i], h.messages[i])
		}
	}
}

func TestScript_PrintGlobal(t *testing.T) {
	h := newHarness(t, false)
	h.mustEval(t, "var a = 42; print a;")
	wantOutput(t, h, "42")
}

func TestRepl_OptionalSemicolon(t *testing.T) {
	h := newHarness(t, true)
	h.mustEval(t, "print 10")
	wantOutput(t, h, "10")
}

func TestRepl_GlobalSurvivesAcrossInputs(t *testing.T) {
	h := newHarness(t, true)
	h.mustEval(t, "var a = 44;")
	h.mustEval(t, "print a;")
	wantOutput(t, h, "44")
}

func TestScript_VoidFunctionStatementAndExpression(t *testing.T) {
	h := newHarness(t, false)
	h.mustEval(t, "fun hello(): void { print 1; } hello();")
	wantOutput(t, h, "1")

	r := newHarness(t, true)
	r.mustEval(t, "fun hello(): void { print 1; }")
	result := r.mustEval(t, "hello()")
	wantOutput(t, r, "1")
	if result != evaluator.NIL {
		t.Errorf("expected the call expression to yield null, got %v", result)
	}
}

func TestRepl_ErringBatchIsDiscardedWholesale(t *testing.T) {
	h := newHarness(t, true)
	h.mustEval(t, "var a = 42;")
	h.ip.Eval("var b = 43; x; var c = 44;")
	h.ip.Eval("print b;")
	h.ip.Eval("print c;")
	wantMessages(t, h,
		"Undefined identifier 'x'",
		"Undefined identifier 'b'",
		"Undefined identifier 'c'")
}

func TestRepl_DuplicateGlobalAcrossInputs(t *testing.T) {
	h := newHarness(t, true)
	h.mustEval(t, "var a = 42;")
	h.ip.Eval("var a = 44;")
	wantMessages(t, h, "Variable with this name already declared in this scope.")
}

func TestBase64_DecodePaddedAndRaw(t *testing.T) {
	h := newHarness(t, true)
	padded := h.mustEval(t, `Base64.decode("aGVqIGhlag==")`)
	if padded == nil || padded.Inspect() != "hej hej" {
		t.Errorf("expected 'hej hej', got %v", padded)
	}
	raw := h.mustEval(t, `Base64.decode("aGVqIGhlag")`)
	if raw == nil || raw.Inspect() != "hej hej" {
		t.Errorf("expected 'hej hej' from raw input, got %v", raw)
	}
}

func TestArgv_PopWithoutArguments(t *testing.T) {
	h := newHarness(t, true)
	result := h.ip.Eval("ARGV.pop()")
	if result != evaluator.VOID {
		t.Errorf("expected VOID after the runtime error, got %v", result)
	}
	wantMessages(t, h, "No arguments left")
}

func TestNativeMethod_ArityCheckedAtRuntime(t *testing.T) {
	h := newHarness(t, true)
	h.ip.Eval("Base64.decode()")
	wantMessages(t, h, "Method 'decode' has 1 parameter(s) but was called with 0 argument(s)")
}

func TestNativeMethod_ArgumentTypeCheckedAtRuntime(t *testing.T) {
	h := newHarness(t, true)
	h.ip.Eval("Base64.decode(123.45)")
	wantMessages(t, h, "Cannot pass Float argument as String parameter to decode()")
}

func TestEmptyProgram(t *testing.T) {
	h := newHarness(t, false)
	if result := h.mustEval(t, ""); result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
	wantOutput(t, h)
}

func TestUndefinedMethodOnHostObject(t *testing.T) {
	h := newHarness(t, true)
	h.ip.Eval("Base64.shrink(1)")
	wantMessages(t, h, "Undefined method 'shrink' on Base64")
}

func TestMethodsOnScalarRejected(t *testing.T) {
	h := newHarness(t, true)
	h.ip.Eval("var n = 1")
	h.ip.Eval("n.scale()")
	wantMessages(t, h, "Value of type Int has no methods")
}

func TestFullSession(t *testing.T) {
	h := newHarness(t, true, "data.txt")
	h.mustEval(t, "var greeting = \"hej\"")
	h.mustEval(t, "fun repeat(s: string, n: int): string { var out = \"\"; while (n > 0) { out = out + s; n--; } return out; }")
	result := h.mustEval(t, `repeat(greeting + " ", 2)`)
	if result == nil || result.Inspect() != "hej hej " {
		t.Errorf("expected 'hej hej ', got %v", result)
	}
	file := h.mustEval(t, "ARGV.pop()")
	if file == nil || file.Inspect() != "data.txt" {
		t.Errorf("expected 'data.txt', got %v", file)
	}
}
