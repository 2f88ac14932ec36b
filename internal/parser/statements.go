package parser

import (
	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	var stmt ast.Statement
	switch p.current().Type {
	case token.VAR:
		stmt = p.parseVarStatement()
	case token.FUN:
		stmt = p.parseFunctionStatement()
	case token.CLASS:
		stmt = p.parseClassStatement()
	case token.IF:
		stmt = p.parseIfStatement()
	case token.WHILE:
		stmt = p.parseWhileStatement()
	case token.RETURN:
		stmt = p.parseReturnStatement()
	case token.PRINT:
		stmt = p.parsePrintStatement()
	case token.LBRACE:
		stmt = p.parseBlockStatement()
	default:
		stmt = p.parseExpressionStatement()
	}
	if stmt == nil {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseVarStatement() ast.Statement {
	varTok := p.advance()
	name, ok := p.expect(token.IDENT, "Expected variable name after 'var'")
	if !ok {
		return nil
	}

	var declared *ast.TypeRef
	if p.match(token.COLON) {
		specifier, ok := p.expect(token.IDENT, "Expected type name after ':'")
		if !ok {
			return nil
		}
		declared = ast.NewTypeRef(&specifier)
	} else {
		declared = ast.NewTypeRef(nil)
	}

	var initializer ast.Expression
	if p.match(token.ASSIGN) {
		initializer = p.parseExpression()
		if initializer == nil {
			return nil
		}
	}

	if !p.terminator("variable declaration") {
		return nil
	}
	return &ast.VarStmt{Token: varTok, Name: name, DeclaredType: declared, Initializer: initializer}
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	funTok := p.advance()
	name, ok := p.expect(token.IDENT, "Expected function name after 'fun'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LPAREN, "Expected '(' after function name"); !ok {
		return nil
	}

	var params []*ast.Parameter
	if !p.check(token.RPAREN) {
		for {
			paramName, ok := p.expect(token.IDENT, "Expected parameter name")
			if !ok {
				return nil
			}
			// A missing annotation still parses; the type resolver is
			// the pass that rejects inferred parameter types.
			var paramType *ast.TypeRef
			if p.match(token.COLON) {
				specifier, ok := p.expect(token.IDENT, "Expected type name after ':'")
				if !ok {
					return nil
				}
				paramType = ast.NewTypeRef(&specifier)
			} else {
				paramType = ast.NewTypeRef(nil)
			}
			params = append(params, &ast.Parameter{Name: paramName, Type: paramType})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RPAREN, "Expected ')' after parameters"); !ok {
		return nil
	}

	var returnType *ast.TypeRef
	if p.match(token.COLON) {
		specifier, ok := p.expect(token.IDENT, "Expected return type after ':'")
		if !ok {
			return nil
		}
		returnType = ast.NewTypeRef(&specifier)
	} else {
		returnType = ast.NewTypeRef(nil)
	}

	if !p.check(token.LBRACE) {
		p.errorAt(p.current(), diagnostics.ErrP002, "Expected '{' before function body")
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}

	return &ast.FunctionStmt{
		Token:      funTok,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body.(*ast.BlockStmt).Statements,
	}
}

func (p *Parser) parseClassStatement() ast.Statement {
	classTok := p.advance()
	name, ok := p.expect(token.IDENT, "Expected class name after 'class'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBRACE, "Expected '{' before class body"); !ok {
		return nil
	}

	var methods []*ast.FunctionStmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if !p.check(token.FUN) {
			p.errorAt(p.current(), diagnostics.ErrP001, "Expected method declaration in class body")
			return nil
		}
		method := p.parseFunctionStatement()
		if method == nil {
			return nil
		}
		methods = append(methods, method.(*ast.FunctionStmt))
	}
	if _, ok := p.expect(token.RBRACE, "Expected '}' after class body"); !ok {
		return nil
	}
	return &ast.ClassStmt{Token: classTok, Name: name, Methods: methods}
}

func (p *Parser) parseIfStatement() ast.Statement {
	ifTok := p.advance()
	if _, ok := p.expect(token.LPAREN, "Expected '(' after 'if'"); !ok {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.RPAREN, "Expected ')' after if condition"); !ok {
		return nil
	}
	then := p.parseStatement()
	if then == nil {
		return nil
	}
	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch = p.parseStatement()
		if elseBranch == nil {
			return nil
		}
	}
	return &ast.IfStmt{Token: ifTok, Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok := p.advance()
	if _, ok := p.expect(token.LPAREN, "Expected '(' after 'while'"); !ok {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.RPAREN, "Expected ')' after while condition"); !ok {
		return nil
	}
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{Token: whileTok, Condition: cond, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	returnTok := p.advance()
	var value ast.Expression
	if !p.check(token.SEMICOLON) && !p.isAtEnd() {
		value = p.parseExpression()
		if value == nil {
			return nil
		}
	}
	if !p.terminator("return value") {
		return nil
	}
	return &ast.ReturnStmt{Token: returnTok, Value: value}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	printTok := p.advance()
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if !p.terminator("value") {
		return nil
	}
	return &ast.PrintStmt{Token: printTok, Expr: expr}
}

func (p *Parser) parseBlockStatement() ast.Statement {
	braceTok := p.advance()
	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(token.RBRACE, "Expected '}' after block"); !ok {
		return nil
	}
	return &ast.BlockStmt{Token: braceTok, Statements: stmts}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.current()
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if !p.terminator("expression") {
		return nil
	}
	return &ast.ExpressionStmt{Token: tok, Expr: expr}
}
