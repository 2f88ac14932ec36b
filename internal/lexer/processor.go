package lexer

import (
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/pipeline"
	"github.com/sparvlang/sparv/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tokens := New(ctx.SourceCode).Tokenize()

	// Illegal tokens become scan diagnostics; the parser still runs over
	// the stream so the user sees parse errors from the same input too.
	for _, tok := range tokens {
		if tok.Type != token.ILLEGAL {
			continue
		}
		code := diagnostics.ErrL001
		msg := "Unexpected character '" + tok.Lexeme + "'"
		if tok.Literal == "unterminated string" {
			code = diagnostics.ErrL002
			msg = "Unterminated string"
		}
		err := diagnostics.NewError(code, tok, msg)
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}

	ctx.TokenStream = tokens
	return ctx
}
