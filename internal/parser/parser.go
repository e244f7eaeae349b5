// Package parser implements an operator-precedence (Pratt) parser that
// turns the token stream from internal/lexer into the AST defined in
// internal/ast, per the grammar in spec.md §4.2.
package parser

import (
	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/internal/lexer"
	"github.com/guedes674/pas2vm/pkg/token"
)

// Precedence levels, lowest to highest, per spec.md §4.2.
const (
	_ int = iota
	LOWEST
	ORLEVEL    // or, orelse
	ANDLEVEL   // and, andthen
	RELATIONAL // = <> < > <= >= in
	SUM        // + -
	PRODUCT    // * / div mod
	PREFIX     // unary -, not, +
)

var precedences = map[token.Type]int{
	token.OR: ORLEVEL, token.ORELSE: ORLEVEL,
	token.AND: ANDLEVEL, token.ANDTHEN: ANDLEVEL,
	token.EQ: RELATIONAL, token.NOTEQ: RELATIONAL,
	token.LT: RELATIONAL, token.GT: RELATIONAL,
	token.LE: RELATIONAL, token.GE: RELATIONAL,
	token.IN: RELATIONAL,
	token.PLUS: SUM, token.MINUS: SUM,
	token.STAR: PRODUCT, token.SLASH: PRODUCT,
	token.DIV: PRODUCT, token.MOD: PRODUCT,
}

// Parser consumes a token stream and builds an AST, recording the first
// grammar violation it encounters (spec.md §4.2 error policy: no
// recovery).
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*ParseError
}

// New creates a Parser over the given Lexer and primes the two-token
// lookahead buffer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the errors recorded during parsing. Per spec.md §4.2,
// parsing stops at the first one, so this slice holds at most one error.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(tt token.Type) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt token.Type) bool { return p.peekToken.Type == tt }

func (p *Parser) failed() bool { return len(p.errors) > 0 }

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{Message: msg, Pos: p.curToken.Pos})
}

func (p *Parser) errorUnexpected() {
	p.addError(unexpectedTokenMessage(p.curToken))
}

// expect checks the current token's type, records an error and returns
// false if it doesn't match, else advances and returns true.
func (p *Parser) expect(tt token.Type) bool {
	if !p.curIs(tt) {
		p.errorUnexpected()
		return false
	}
	p.nextToken()
	return true
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses a complete `program header block '.'` and returns
// the resulting AST, or nil once an error has been recorded.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Token: p.curToken}

	header := p.parseProgramHeader()
	if p.failed() {
		return nil
	}
	prog.Header = header

	block := p.parseBlock()
	if p.failed() {
		return nil
	}
	prog.Block = block

	if !p.expect(token.DOT) {
		return nil
	}

	return prog
}

func (p *Parser) parseProgramHeader() *ast.ProgramHeader {
	if !p.curIs(token.PROGRAM) {
		p.errorUnexpected()
		return nil
	}
	header := &ast.ProgramHeader{Token: p.curToken}
	p.nextToken()

	if !p.curIs(token.IDENT) {
		p.errorUnexpected()
		return nil
	}
	header.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()

	if p.curIs(token.LPAREN) {
		p.nextToken()
		for {
			if !p.curIs(token.IDENT) {
				p.errorUnexpected()
				return nil
			}
			header.Params = append(header.Params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
			p.nextToken()
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	if !p.expect(token.SEMICOLON) {
		return nil
	}
	return header
}

// parseBlock parses `declarations compound_statement`.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{}

	for !p.curIs(token.BEGIN) {
		if p.failed() || p.curIs(token.EOF) {
			p.errorUnexpected()
			return nil
		}
		if p.curIs(token.VAR) {
			decls := p.parseVarSection()
			if p.failed() {
				return nil
			}
			block.Declarations = append(block.Declarations, decls...)
			continue
		}
		decl := p.parseDeclaration()
		if p.failed() {
			return nil
		}
		if decl != nil {
			block.Declarations = append(block.Declarations, decl)
		}
	}

	stmt := p.parseCompoundStatement()
	if p.failed() {
		return nil
	}
	block.Statements = stmt
	return block
}

func (p *Parser) parseIdentList() []*ast.Identifier {
	var ids []*ast.Identifier
	for {
		if !p.curIs(token.IDENT) {
			p.errorUnexpected()
			return nil
		}
		ids = append(ids, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		return ids
	}
}
