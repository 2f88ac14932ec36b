package parser

import (
	"math/big"
	"strconv"

	"github.com/sparvlang/sparv/internal/ast"
	"github.com/sparvlang/sparv/internal/diagnostics"
	"github.com/sparvlang/sparv/internal/token"
)

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	expr := p.parseOr()
	if expr == nil {
		return nil
	}

	if p.check(token.ASSIGN) {
		equals := p.advance()
		value := p.parseAssignment()
		if value == nil {
			return nil
		}
		if ident, ok := expr.(*ast.Identifier); ok {
			return &ast.Assign{Token: equals, Name: ident.Name, Value: value, Type: ast.NewTypeRef(nil)}
		}
		p.errorAt(equals, diagnostics.ErrP001, "Invalid assignment target")
		return nil
	}
	return expr
}

func (p *Parser) parseOr() ast.Expression {
	expr := p.parseAnd()
	if expr == nil {
		return nil
	}
	for p.check(token.OR) {
		op := p.advance()
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		expr = &ast.Logical{Token: op, Op: op.Lexeme, Left: expr, Right: right, Type: ast.NewTypeRef(nil)}
	}
	return expr
}

func (p *Parser) parseAnd() ast.Expression {
	expr := p.parseEquality()
	if expr == nil {
		return nil
	}
	for p.check(token.AND) {
		op := p.advance()
		right := p.parseEquality()
		if right == nil {
			return nil
		}
		expr = &ast.Logical{Token: op, Op: op.Lexeme, Left: expr, Right: right, Type: ast.NewTypeRef(nil)}
	}
	return expr
}

func (p *Parser) parseEquality() ast.Expression {
	expr := p.parseComparison()
	if expr == nil {
		return nil
	}
	for p.check(token.EQ) || p.check(token.NOT_EQ) {
		op := p.advance()
		right := p.parseComparison()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Token: op, Op: op.Lexeme, Left: expr, Right: right, Type: ast.NewTypeRef(nil)}
	}
	return expr
}

func (p *Parser) parseComparison() ast.Expression {
	expr := p.parseTerm()
	if expr == nil {
		return nil
	}
	for p.check(token.GT) || p.check(token.GT_EQ) || p.check(token.LT) || p.check(token.LT_EQ) {
		op := p.advance()
		right := p.parseTerm()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Token: op, Op: op.Lexeme, Left: expr, Right: right, Type: ast.NewTypeRef(nil)}
	}
	return expr
}

func (p *Parser) parseTerm() ast.Expression {
	expr := p.parseFactor()
	if expr == nil {
		return nil
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right := p.parseFactor()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Token: op, Op: op.Lexeme, Left: expr, Right: right, Type: ast.NewTypeRef(nil)}
	}
	return expr
}

func (p *Parser) parseFactor() ast.Expression {
	expr := p.parsePower()
	if expr == nil {
		return nil
	}
	for p.check(token.ASTERISK) || p.check(token.SLASH) || p.check(token.PERCENT) {
		op := p.advance()
		right := p.parsePower()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Token: op, Op: op.Lexeme, Left: expr, Right: right, Type: ast.NewTypeRef(nil)}
	}
	return expr
}

// parsePower is right-associative: 2 ** 3 ** 2 is 2 ** (3 ** 2).
func (p *Parser) parsePower() ast.Expression {
	expr := p.parseUnary()
	if expr == nil {
		return nil
	}
	if p.check(token.POWER) {
		op := p.advance()
		right := p.parsePower()
		if right == nil {
			return nil
		}
		return &ast.Binary{Token: op, Op: op.Lexeme, Left: expr, Right: right, Type: ast.NewTypeRef(nil)}
	}
	return expr
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.BANG) || p.check(token.MINUS) {
		op := p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		return &ast.UnaryPrefix{Token: op, Op: op.Lexeme, Right: right, Type: ast.NewTypeRef(nil)}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parseCall()
	if expr == nil {
		return nil
	}
	if p.check(token.PLUS_PLUS) || p.check(token.MINUS_MINUS) {
		op := p.advance()
		ident, ok := expr.(*ast.Identifier)
		if !ok {
			p.errorAt(op, diagnostics.ErrP001, "Invalid operand for '"+op.Lexeme+"'")
			return nil
		}
		return &ast.UnaryPostfix{Token: op, Op: op.Lexeme, Left: expr, Name: ident.Name, Type: ast.NewTypeRef(nil)}
	}
	return expr
}

func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		if p.check(token.LPAREN) {
			lparen := p.advance()
			var args []ast.Expression
			if !p.check(token.RPAREN) {
				for {
					arg := p.parseExpression()
					if arg == nil {
						return nil
					}
					args = append(args, arg)
					if !p.match(token.COMMA) {
						break
					}
				}
			}
			paren, ok := p.expect(token.RPAREN, "Expected ')' after arguments")
			if !ok {
				return nil
			}
			expr = &ast.Call{Token: lparen, Callee: expr, Paren: paren, Args: args, Type: ast.NewTypeRef(nil)}
		} else if p.check(token.DOT) {
			dot := p.advance()
			name, ok := p.expect(token.IDENT, "Expected property name after '.'")
			if !ok {
				return nil
			}
			expr = &ast.Get{Token: dot, Object: expr, Name: name, Type: ast.NewTypeRef(nil)}
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()
	switch tok.Type {
	case token.INT:
		p.advance()
		return &ast.Literal{Token: tok, Value: parseIntLiteral(tok.Lexeme), Type: ast.NewTypeRef(nil)}
	case token.FLOAT:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorAt(tok, diagnostics.ErrP001, "Invalid number literal '"+tok.Lexeme+"'")
			return nil
		}
		return &ast.Literal{Token: tok, Value: value, Type: ast.NewTypeRef(nil)}
	case token.STRING:
		p.advance()
		return &ast.Literal{Token: tok, Value: tok.Lexeme, Type: ast.NewTypeRef(nil)}
	case token.TRUE:
		p.advance()
		return &ast.Literal{Token: tok, Value: true, Type: ast.NewTypeRef(nil)}
	case token.FALSE:
		p.advance()
		return &ast.Literal{Token: tok, Value: false, Type: ast.NewTypeRef(nil)}
	case token.NULL:
		p.advance()
		return &ast.Literal{Token: tok, Value: nil, Type: ast.NewTypeRef(nil)}
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok, Type: ast.NewTypeRef(nil)}
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if _, ok := p.expect(token.RPAREN, "Expected ')' after expression"); !ok {
			return nil
		}
		return &ast.Grouping{Token: tok, Inner: inner, Type: ast.NewTypeRef(nil)}
	}
	p.errorAt(tok, diagnostics.ErrP001, "Unexpected token '"+tok.Lexeme+"'")
	return nil
}

// parseIntLiteral decodes a decimal integer literal, widening to a big
// integer when the value does not fit in 64 bits.
func parseIntLiteral(lexeme string) interface{} {
	if v, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
		return v
	}
	v := new(big.Int)
	v.SetString(lexeme, 10)
	return v
}
