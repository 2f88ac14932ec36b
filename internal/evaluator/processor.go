package evaluator

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/pipeline"
	"github.com/sparvlang/sparv/internal/resolver"
	"github.com/sparvlang/sparv/internal/token"
)

// Runtime is the state that outlives a single pipeline run: the globals
// frame and the host object directory. Drivers thread one Runtime
// through every Eval so the REPL keeps its variables.
type Runtime struct {
	Globals *Environment
	Natives map[string]Object
}

func NewRuntime(natives map[string]Object) *Runtime {
	if natives == nil {
		natives = make(map[string]Object)
	}
	return &Runtime{Globals: NewEnvironment(), Natives: natives}
}

// EvaluatorProcessor is the last pipeline stage. It only runs the new
// statements of this batch; retained statements already executed in the
// run that introduced them and live on through the globals frame.
type EvaluatorProcessor struct{}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.HasErrors() {
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}
	directory, ok := ctx.Bindings.(*resolver.Directory)
	if !ok {
		return ctx
	}
	runtime, ok := ctx.Runtime.(*Runtime)
	if !ok {
		runtime = NewRuntime(nil)
		ctx.Runtime = runtime
	}

	ev := New(runtime.Globals, runtime.Natives, ctx.Out)
	ev.SetDirectory(directory)

	result := ev.Execute(program.Statements)
	if errObj, ok := result.(*Error); ok {
		diag := diagnostics.NewError(diagnostics.ErrE001,
			token.Token{Line: errObj.Line, Column: errObj.Column},
			errObj.Message)
		diag.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, diag)
		ctx.Result = VOID
		return ctx
	}
	ctx.Result = result
	return ctx
}
