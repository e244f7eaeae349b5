package parser

import (
	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/pkg/token"
)

// parseDeclaration parses one CONST, TYPE, FUNCTION or PROCEDURE
// declaration; these and VAR sections may appear, in any order, before a
// block's compound statement (spec.md §3.2 "declarations may be
// interleaved"). VAR sections are parsed by parseVarSection instead.
func (p *Parser) parseDeclaration() ast.Declaration {
	switch p.curToken.Type {
	case token.CONST:
		return p.parseConstSection()
	case token.TYPE:
		return p.parseTypeSection()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.PROCEDURE:
		return p.parseProcedureDecl()
	default:
		p.errorUnexpected()
		return nil
	}
}

// parseVarSection parses `VAR (id_list ':' type ';')+`: one or more
// semicolon-terminated groups under a single keyword, ending wherever
// the next section keyword (or BEGIN) begins (spec.md §3.2).
func (p *Parser) parseVarSection() []ast.Declaration {
	varTok := p.curToken
	p.nextToken()

	var decls []ast.Declaration
	for p.curIs(token.IDENT) {
		decl := p.parseVarGroup(varTok)
		if p.failed() {
			return nil
		}
		decls = append(decls, decl)
	}
	return decls
}

func (p *Parser) parseVarGroup(tok token.Token) *ast.VarDecl {
	names := p.parseIdentList()
	if p.failed() {
		return nil
	}
	if !p.expect(token.COLON) {
		return nil
	}
	t := p.parseTypeExpr()
	if p.failed() {
		return nil
	}
	if !p.expect(token.SEMICOLON) {
		return nil
	}
	return &ast.VarDecl{Token: tok, Names: names, Type: t}
}

// parseConstSection parses one `CONST name '=' value ';'` entry.
func (p *Parser) parseConstSection() ast.Declaration {
	tok := p.curToken
	p.nextToken()

	if !p.curIs(token.IDENT) {
		p.errorUnexpected()
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()

	if !p.expect(token.EQ) {
		return nil
	}

	value := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}

	if !p.expect(token.SEMICOLON) {
		return nil
	}

	return &ast.ConstDecl{Token: tok, Name: name, Value: value}
}

// parseTypeSection parses one `TYPE name '=' type ';'` entry.
func (p *Parser) parseTypeSection() ast.Declaration {
	tok := p.curToken
	p.nextToken()

	if !p.curIs(token.IDENT) {
		p.errorUnexpected()
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()

	if !p.expect(token.EQ) {
		return nil
	}

	t := p.parseTypeExpr()
	if p.failed() {
		return nil
	}

	if !p.expect(token.SEMICOLON) {
		return nil
	}

	return &ast.TypeDecl{Token: tok, Name: name, Type: t}
}

// parseParameterList parses `'(' [param_section (';' param_section)*] ')'`.
func (p *Parser) parseParameterList() []*ast.Parameter {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var params []*ast.Parameter
	for !p.curIs(token.RPAREN) {
		isVar := false
		if p.curIs(token.VAR) {
			isVar = true
			p.nextToken()
		}
		names := p.parseIdentList()
		if p.failed() {
			return nil
		}
		if !p.expect(token.COLON) {
			return nil
		}
		t := p.parseTypeExpr()
		if p.failed() {
			return nil
		}
		params = append(params, &ast.Parameter{Names: names, Type: t, IsVar: isVar})
		if p.curIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return params
}

// parseFunctionDecl parses `FUNCTION name param_list ':' type ';' block ';'`.
func (p *Parser) parseFunctionDecl() ast.Declaration {
	tok := p.curToken
	p.nextToken()

	if !p.curIs(token.IDENT) {
		p.errorUnexpected()
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()

	params := p.parseParameterList()
	if p.failed() {
		return nil
	}

	if !p.expect(token.COLON) {
		return nil
	}
	retType := p.parseTypeExpr()
	if p.failed() {
		return nil
	}
	if !p.expect(token.SEMICOLON) {
		return nil
	}

	block := p.parseBlock()
	if p.failed() {
		return nil
	}
	if !p.expect(token.SEMICOLON) {
		return nil
	}

	return &ast.FunctionDecl{Token: tok, Name: name, Parameters: params, ReturnType: retType, Block: block}
}

// parseProcedureDecl parses `PROCEDURE name param_list ';' block ';'`.
func (p *Parser) parseProcedureDecl() ast.Declaration {
	tok := p.curToken
	p.nextToken()

	if !p.curIs(token.IDENT) {
		p.errorUnexpected()
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()

	var params []*ast.Parameter
	if p.curIs(token.LPAREN) {
		params = p.parseParameterList()
		if p.failed() {
			return nil
		}
	}

	if !p.expect(token.SEMICOLON) {
		return nil
	}

	block := p.parseBlock()
	if p.failed() {
		return nil
	}
	if !p.expect(token.SEMICOLON) {
		return nil
	}

	return &ast.ProcedureDecl{Token: tok, Name: name, Parameters: params, Block: block}
}
