package parser

import (
	"strconv"

	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/pkg/token"
)

// scalarTypeNames are the built-in type-name tokens that may stand alone
// as a NamedType (spec.md §3.2).
var scalarTypeNames = map[token.Type]bool{
	token.INTEGER: true, token.REAL: true, token.BOOLEAN: true, token.CHAR: true,
	token.STRINGTYPE: true, token.BYTE: true, token.WORD: true, token.LONGINT: true,
	token.SHORTINT: true, token.SINGLE: true, token.DOUBLE: true, token.EXTENDED: true,
	token.COMP: true, token.CURRENCY: true,
}

// parseTypeExpr parses a `type` production: a named scalar, an array
// type, or a record type.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	switch {
	case p.curIs(token.ARRAY):
		return p.parseArrayType()
	case p.curIs(token.RECORD):
		return p.parseRecordType()
	case scalarTypeNames[p.curToken.Type] || p.curIs(token.IDENT):
		t := &ast.NamedType{Token: p.curToken, Name: p.curToken.CanonicalLiteral()}
		p.nextToken()
		return t
	default:
		p.errorUnexpected()
		return nil
	}
}

// parseArrayType parses `ARRAY '[' lower '..' upper ']' OF type`. The
// lexer has no dedicated range token, so the bound separator is two
// consecutive DOT tokens.
func (p *Parser) parseArrayType() *ast.ArrayType {
	at := &ast.ArrayType{Token: p.curToken}
	p.nextToken()

	if !p.expect(token.LBRACKET) {
		return nil
	}

	lower := p.parseIntegerBound()
	if p.failed() {
		return nil
	}
	at.Lower = lower

	if !p.expect(token.DOT) || !p.expect(token.DOT) {
		return nil
	}

	upper := p.parseIntegerBound()
	if p.failed() {
		return nil
	}
	at.Upper = upper

	if !p.expect(token.RBRACKET) {
		return nil
	}
	if !p.expect(token.OF) {
		return nil
	}

	elem := p.parseTypeExpr()
	if p.failed() {
		return nil
	}
	at.Element = elem
	return at
}

func (p *Parser) parseIntegerBound() *ast.IntegerLiteral {
	neg := false
	tok := p.curToken
	if p.curIs(token.MINUS) {
		neg = true
		p.nextToken()
	}
	if !p.curIs(token.INT) {
		p.errorUnexpected()
		return nil
	}
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError("invalid integer bound '" + p.curToken.Literal + "'")
		return nil
	}
	if neg {
		v = -v
	}
	lit := &ast.IntegerLiteral{Token: tok, Value: v}
	p.nextToken()
	return lit
}

// parseRecordType parses `RECORD field_list END`.
func (p *Parser) parseRecordType() *ast.RecordType {
	rt := &ast.RecordType{Token: p.curToken}
	p.nextToken()

	for !p.curIs(token.END) {
		if p.failed() || p.curIs(token.EOF) {
			p.errorUnexpected()
			return nil
		}
		names := p.parseIdentList()
		if p.failed() {
			return nil
		}
		if !p.expect(token.COLON) {
			return nil
		}
		fieldType := p.parseTypeExpr()
		if p.failed() {
			return nil
		}
		rt.Fields = append(rt.Fields, &ast.RecordField{Names: names, Type: fieldType})
		if p.curIs(token.SEMICOLON) {
			p.nextToken()
		}
	}
	p.nextToken() // consume END
	return rt
}
