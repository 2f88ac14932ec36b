package pipeline

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/token"
)

// Processor is one stage of the interpretation pipeline. A stage reads
// what earlier stages left on the context, appends its diagnostics to
// ctx.Errors, and returns the (possibly replaced) context.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the program through the stages: source text in,
// token stream, AST, bindings and finally an evaluation result. Stage
// outputs that would otherwise create import cycles (bindings, the
// runtime result) are carried as untyped slots and asserted by the stage
// that consumes them.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	// ReplMode relaxes the parser: the final statement may omit its
	// trailing semicolon.
	ReplMode bool

	TokenStream []token.Token
	AstRoot     ast.Node

	// Retained holds the previously accepted statements of a REPL session;
	// the resolver re-resolves them together with the new batch because
	// scope distances depend on statement order.
	Retained []ast.Statement

	Errors []*diagnostics.DiagnosticError

	// Bindings is the resolver's output (*resolver.Directory).
	Bindings interface{}

	// Natives is the host library's descriptor directory
	// (*resolver.Directories).
	Natives interface{}

	// Runtime is the evaluator state shared across REPL invocations
	// (globals environment, host objects). Type-asserted by the
	// evaluator processor.
	Runtime interface{}

	// Result is the evaluator's final object for the run.
	Result interface{}

	// Out receives each already-formatted print line.
	Out func(string)
}

// NewPipelineContext seeds a context with source text.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// HasErrors reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
