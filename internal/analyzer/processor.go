package analyzer

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/pipeline"
	"github.com/sparvlang/sparv/internal/resolver"
)

// AnalyzerProcessor runs the two type passes. The validator only runs
// when the resolver pass was clean, so one mistake does not cascade into
// a second report of itself.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
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

	stmts := make([]ast.Statement, 0, len(ctx.Retained)+len(program.Statements))
	stmts = append(stmts, ctx.Retained...)
	stmts = append(stmts, program.Statements...)

	tr := NewTypeResolver(directory)
	tr.Run(stmts)
	if errs := tr.Errors(); len(errs) > 0 {
		ctx.Errors = append(ctx.Errors, withFile(errs, ctx.FilePath)...)
		return ctx
	}

	tv := NewTypeValidator(directory)
	tv.Run(stmts)
	ctx.Errors = append(ctx.Errors, withFile(tv.Errors(), ctx.FilePath)...)
	return ctx
}

func withFile(errs []*diagnostics.DiagnosticError, file string) []*diagnostics.DiagnosticError {
	for _, err := range errs {
		if err.File == "" {
			err.File = file
		}
	}
	return errs
}
