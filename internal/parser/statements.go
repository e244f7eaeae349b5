package parser

import (
	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/pkg/token"
)

// ioKeywords maps the canonical spelling of the four I/O statements to
// their IOOperation. They are lexically plain identifiers (spec.md
// §4.2's "io_call" production), so the parser recognizes them by
// spelling rather than by a dedicated token type.
var ioKeywords = map[string]ast.IOOperation{
	"read":    ast.IORead,
	"readln":  ast.IOReadln,
	"write":   ast.IOWrite,
	"writeln": ast.IOWriteln,
}

// parseStatement parses one `statement` production: compound, if,
// while, repeat, for, an I/O call, an assignment, a bare call, or empty.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.BEGIN:
		return p.parseCompoundStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.IDENT:
		if _, ok := ioKeywords[p.curToken.CanonicalLiteral()]; ok {
			return p.parseIOStatement()
		}
		return p.parseAssignOrCallStatement()
	case token.SEMICOLON, token.END, token.UNTIL, token.EOF:
		return &ast.EmptyStatement{Token: p.curToken}
	default:
		p.errorUnexpected()
		return nil
	}
}

func (p *Parser) parseCompoundStatement() *ast.CompoundStatement {
	tok := p.curToken
	p.nextToken()

	stmt := &ast.CompoundStatement{Token: tok}
	for !p.curIs(token.END) {
		if p.failed() || p.curIs(token.EOF) {
			p.errorUnexpected()
			return nil
		}
		st := p.parseStatement()
		if p.failed() {
			return nil
		}
		stmt.Statements = append(stmt.Statements, st)
		if p.curIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(token.END) {
		return nil
	}
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()

	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expect(token.THEN) {
		return nil
	}
	thenStmt := p.parseStatement()
	if p.failed() {
		return nil
	}

	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: thenStmt}
	if p.curIs(token.ELSE) {
		p.nextToken()
		elseStmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		stmt.Else = elseStmt
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()

	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expect(token.DO) {
		return nil
	}
	body := p.parseStatement()
	if p.failed() {
		return nil
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseRepeatStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()

	stmt := &ast.RepeatStatement{Token: tok}
	for !p.curIs(token.UNTIL) {
		if p.failed() || p.curIs(token.EOF) {
			p.errorUnexpected()
			return nil
		}
		st := p.parseStatement()
		if p.failed() {
			return nil
		}
		stmt.Body = append(stmt.Body, st)
		if p.curIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(token.UNTIL) {
		return nil
	}
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	stmt.Condition = cond
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()

	if !p.curIs(token.IDENT) {
		p.errorUnexpected()
		return nil
	}
	control := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()

	if !p.expect(token.ASSIGN) {
		return nil
	}
	start := p.parseExpression(LOWEST)
	if start == nil {
		return nil
	}

	downto := false
	switch p.curToken.Type {
	case token.TO:
		p.nextToken()
	case token.DOWNTO:
		downto = true
		p.nextToken()
	default:
		p.errorUnexpected()
		return nil
	}

	end := p.parseExpression(LOWEST)
	if end == nil {
		return nil
	}
	if !p.expect(token.DO) {
		return nil
	}
	body := p.parseStatement()
	if p.failed() {
		return nil
	}

	return &ast.ForStatement{Token: tok, Control: control, Start: start, End: end, Downto: downto, Body: body}
}

func (p *Parser) parseIOStatement() ast.Statement {
	tok := p.curToken
	op := ioKeywords[tok.CanonicalLiteral()]
	p.nextToken()

	stmt := &ast.IOStatement{Token: tok, Operation: op}
	if !p.expect(token.LPAREN) {
		return nil
	}
	if !p.curIs(token.RPAREN) {
		for {
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return nil
			}
			stmt.Args = append(stmt.Args, arg)
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
	return stmt
}

// parseAssignOrCallStatement parses a statement that starts with an
// identifier: either `lvalue ':=' expression` or a procedure/function
// call whose result is discarded.
func (p *Parser) parseAssignOrCallStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if p.curIs(token.ASSIGN) {
		assignTok := p.curToken
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		return &ast.AssignStatement{Token: assignTok, Target: expr, Value: value}
	}

	switch call := expr.(type) {
	case *ast.CallExpression:
		return &ast.CallStatement{Token: tok, Call: call}
	case *ast.Identifier:
		return &ast.CallStatement{Token: tok, Call: &ast.CallExpression{Token: call.Token, Name: call}}
	default:
		p.errorUnexpected()
		return nil
	}
}
