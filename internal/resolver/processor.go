package resolver

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/pipeline"
)

type ResolverProcessor struct{}

func (rp *ResolverProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.HasErrors() {
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}

	natives, _ := ctx.Natives.(*Directories)

	// Scope distances depend on statement order, so the retained REPL
	// statements are re-resolved together with the new batch.
	stmts := make([]ast.Statement, 0, len(ctx.Retained)+len(program.Statements))
	stmts = append(stmts, ctx.Retained...)
	stmts = append(stmts, program.Statements...)

	r := New(natives)
	directory := r.Resolve(stmts)

	for _, err := range r.Errors() {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		ctx.Errors = append(ctx.Errors, err)
	}
	ctx.Bindings = directory
	return ctx
}
