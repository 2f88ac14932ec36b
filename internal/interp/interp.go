package interp

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sparvlang/sparv/internal/analyzer"
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/lexer"
	"github.com/sparvlang/sparv/internal/native"
	"github.com/sparvlang/sparv/internal/parser"
	"github.com/sparvlang/sparv/internal/pipeline"
	"github.com/sparvlang/sparv/internal/resolver"
)

// Options configure one Interpreter instance. Nil callbacks are
// replaced with no-ops; a nil Out prints to standard output.
type Options struct {
	Out func(string)

	ScanErr    func(*diagnostics.DiagnosticError)
	ParseErr   func(*diagnostics.DiagnosticError)
	ResolveErr func(*diagnostics.DiagnosticError)
	TypeErr    func(*diagnostics.DiagnosticError)
	RuntimeErr func(*diagnostics.DiagnosticError)

	// Args populate the ARGV super-global.
	Args []string

	// ReplMode relaxes the final semicolon and retains accepted
	// statements across Eval calls.
	ReplMode bool

	// FilePath is attached to every diagnostic of this instance.
	FilePath string
}

// Interpreter is the host-facing facade: one globals environment, one
// host library instance and one retained-statement history, driven
// through the pipeline once per Eval. Not safe for concurrent use.
type Interpreter struct {
	id       string
	opts     Options
	natives  *resolver.Directories
	runtime  *evaluator.Runtime
	stages   *pipeline.Pipeline
	retained []ast.Statement
}

func New(opts Options) *Interpreter {
	if opts.Out == nil {
		opts.Out = func(line string) { fmt.Println(line) }
	}
	noop := func(*diagnostics.DiagnosticError) {}
	if opts.ScanErr == nil {
		opts.ScanErr = noop
	}
	if opts.ParseErr == nil {
		opts.ParseErr = noop
	}
	if opts.ResolveErr == nil {
		opts.ResolveErr = noop
	}
	if opts.TypeErr == nil {
		opts.TypeErr = noop
	}
	if opts.RuntimeErr == nil {
		opts.RuntimeErr = noop
	}

	library := native.NewLibrary(opts.Args)
	return &Interpreter{
		id:      uuid.NewString(),
		opts:    opts,
		natives: library.Directories(),
		runtime: evaluator.NewRuntime(library.RuntimeObjects()),
		stages: pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
			&resolver.ResolverProcessor{},
			&analyzer.AnalyzerProcessor{},
			&evaluator.EvaluatorProcessor{},
		),
	}
}

// ID is this instance's session identity; the REPL driver prints it in
// its banner.
func (i *Interpreter) ID() string { return i.id }

// Eval runs one input through the pipeline and returns:
//   - nil when there is no value to hand back (statements only, or an
//     analysis error was already reported),
//   - the evaluated value when the input was a single expression,
//   - evaluator.VOID when a runtime error was caught and reported.
//
// In REPL mode a clean batch is retained and re-resolved together with
// every later input; an erring batch is discarded wholesale.
func (i *Interpreter) Eval(source string) evaluator.Object {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = i.opts.FilePath
	ctx.ReplMode = i.opts.ReplMode
	ctx.Retained = i.retained
	ctx.Natives = i.natives
	ctx.Runtime = i.runtime
	ctx.Out = i.opts.Out

	ctx = i.stages.Run(ctx)

	runtimeFailed := false
	for _, err := range ctx.Errors {
		if err.Kind == diagnostics.RuntimeError {
			runtimeFailed = true
		}
		i.report(err)
	}
	if ctx.HasErrors() {
		if runtimeFailed {
			return evaluator.VOID
		}
		return nil
	}

	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return nil
	}
	if i.opts.ReplMode {
		i.retained = append(i.retained, program.Statements...)
	}

	if len(program.Statements) == 1 {
		if _, isExpr := program.Statements[0].(*ast.ExpressionStmt); isExpr {
			if result, ok := ctx.Result.(evaluator.Object); ok {
				return result
			}
		}
	}
	return nil
}

func (i *Interpreter) report(err *diagnostics.DiagnosticError) {
	switch err.Kind {
	case diagnostics.ScanError:
		i.opts.ScanErr(err)
	case diagnostics.ParseError:
		i.opts.ParseErr(err)
	case diagnostics.ResolveError:
		i.opts.ResolveErr(err)
	case diagnostics.NameResolutionError, diagnostics.TypeValidationError:
		i.opts.TypeErr(err)
	case diagnostics.RuntimeError:
		i.opts.RuntimeErr(err)
	default:
		i.opts.TypeErr(err)
	}
}
