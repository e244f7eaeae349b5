package parser

import (
	"strconv"

	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/pkg/token"
)

// parseExpression is the Pratt-parser entry point: parse a prefix
// operand, then fold in infix operators whose precedence exceeds the
// caller's floor (spec.md §4.2 precedence table). Relational operators
// share one precedence level and are therefore left-associative here;
// a chained comparison such as `a < b < c` is accepted by the parser and
// is not rejected by internal/semantic either.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	// Prefix parsers advance past their own token, so the candidate
	// infix operator is curToken, not peekToken.
	for {
		prec, ok := precedences[p.curToken.Type]
		if !ok || precedence >= prec {
			break
		}
		left = p.parseBinaryExpression(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.curToken.Type {
	case token.INT:
		return p.parseIntegerLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRINGC:
		return p.parseStringLiteral()
	case token.IDENT:
		switch p.curToken.CanonicalLiteral() {
		case "true":
			return p.parseBooleanLiteral(true)
		case "false":
			return p.parseBooleanLiteral(false)
		default:
			return p.parseIdentifierExpression()
		}
	case token.LPAREN:
		return p.parseGroupedExpression()
	case token.MINUS, token.PLUS, token.NOT:
		return p.parseUnaryExpression()
	default:
		p.errorUnexpected()
		return nil
	}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.addError("invalid integer literal '" + tok.Literal + "'")
		return nil
	}
	p.nextToken()
	return &ast.IntegerLiteral{Token: tok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.addError("invalid real literal '" + tok.Literal + "'")
		return nil
	}
	p.nextToken()
	return &ast.FloatLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBooleanLiteral(value bool) ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.BooleanLiteral{Token: tok, Value: value}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // consume '('
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	op := tok.CanonicalLiteral()
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpression{Token: tok, Operator: op, Operand: operand}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.CanonicalLiteral()
	prec := precedences[tok.Type]
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
}

// parseIdentifierExpression parses a bare name, an immediately-following
// call's argument list, and any chain of `[index]` / `.field` postfixes
// (spec.md §4.2: indexing, field access, and call bind tighter than
// every operator).
func (p *Parser) parseIdentifierExpression() ast.Expression {
	tok := p.curToken
	id := &ast.Identifier{Token: tok, Value: tok.Literal}
	p.nextToken()

	var expr ast.Expression = id
	if p.curIs(token.LPAREN) {
		expr = p.parseCallExpression(id)
		if expr == nil {
			return nil
		}
	}

	for {
		switch {
		case p.curIs(token.LBRACKET):
			expr = p.parseArrayAccess(expr)
		case p.curIs(token.DOT):
			expr = p.parseFieldAccess(expr)
		default:
			return expr
		}
		if expr == nil {
			return nil
		}
	}
}

func (p *Parser) parseCallExpression(name *ast.Identifier) ast.Expression {
	tok := p.curToken // '('
	p.nextToken()

	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		for {
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.CallExpression{Token: tok, Name: name, Arguments: args}
}

func (p *Parser) parseArrayAccess(arr ast.Expression) ast.Expression {
	tok := p.curToken // '['
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if idx == nil {
		return nil
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayAccessExpression{Token: tok, Array: arr, Index: idx}
}

func (p *Parser) parseFieldAccess(rec ast.Expression) ast.Expression {
	tok := p.curToken // '.'
	p.nextToken()
	if !p.curIs(token.IDENT) {
		p.errorUnexpected()
		return nil
	}
	field := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()
	return &ast.FieldAccessExpression{Token: tok, Record: rec, Field: field}
}
