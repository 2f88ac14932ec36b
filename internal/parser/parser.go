package parser

import (
	"fmt"

	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/pipeline"
	"github.com/sparvlang/sparv/internal/token"
)

// Parser is a recursive-descent parser over a pre-lexed token stream.
// Errors are appended to the pipeline context; after an error the parser
// synchronizes to the next statement boundary so one mistake does not
// drown the rest of the input in cascade diagnostics.
type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *pipeline.PipelineContext

	// replMode allows the final statement to omit its trailing
	// semicolon, so `print 10` works at the prompt.
	replMode bool
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	return &Parser{tokens: tokens, ctx: ctx, replMode: ctx != nil && ctx.ReplMode}
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.isAtEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

// --- token cursor -----------------------------------------------------

func (p *Parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t token.TokenType) bool {
	return p.current().Type == t
}

func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) isAtEnd() bool {
	return p.current().Type == token.EOF
}

func (p *Parser) expect(t token.TokenType, message string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.errorAt(p.current(), diagnostics.ErrP002, message)
	return p.current(), false
}

func (p *Parser) errorAt(tok token.Token, code string, message string) {
	if p.ctx != nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, message))
	}
}

// synchronize skips tokens until a statement boundary: past the next
// semicolon, or just before a statement keyword.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.current().Type {
		case token.VAR, token.FUN, token.CLASS, token.IF, token.WHILE,
			token.RETURN, token.PRINT, token.LBRACE:
			return
		}
		p.advance()
	}
}

// terminator consumes the statement-ending semicolon. In REPL mode the
// semicolon may be omitted at end of input.
func (p *Parser) terminator(what string) bool {
	if p.match(token.SEMICOLON) {
		return true
	}
	if p.replMode && p.isAtEnd() {
		return true
	}
	p.errorAt(p.current(), diagnostics.ErrP002, fmt.Sprintf("Expected ';' after %s", what))
	return false
}
