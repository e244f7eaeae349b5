// Package ast defines the abstract syntax tree produced by the parser:
// a tagged-sum tree of programs, blocks, declarations, statements, and
// expressions, each carrying its source token for diagnostics.
package ast

import (
	"bytes"
	"strings"

	"github.com/guedes674/pas2vm/pkg/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token the node is
	// anchored to, for debugging.
	TokenLiteral() string
	// String renders the node back to (approximately) source form, for
	// debugging and round-trip tests.
	String() string
	// Pos returns the node's source position for diagnostics.
	Pos() token.Position
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a node appearing in a Block's declaration list.
type Declaration interface {
	Node
	declarationNode()
}

// TypeExpr is a type reference: a named scalar, an array type, or a
// record type (spec.md §3.2 "Type").
type TypeExpr interface {
	Node
	typeExprNode()
}

// Program is the root node: a header and a block, terminated by '.'.
type Program struct {
	Token  token.Token // the PROGRAM token
	Header *ProgramHeader
	Block  *Block
}

func (p *Program) TokenLiteral() string  { return p.Token.Literal }
func (p *Program) Pos() token.Position   { return p.Token.Pos }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString(p.Header.String())
	out.WriteString(p.Block.String())
	out.WriteString(".")
	return out.String()
}

// ProgramHeader is `PROGRAM name ['(' id_list ')'] ';'`.
type ProgramHeader struct {
	Token  token.Token
	Name   *Identifier
	Params []*Identifier // optional program-parameter list
}

func (h *ProgramHeader) TokenLiteral() string { return h.Token.Literal }
func (h *ProgramHeader) Pos() token.Position  { return h.Token.Pos }
func (h *ProgramHeader) String() string {
	var out bytes.Buffer
	out.WriteString("program ")
	out.WriteString(h.Name.String())
	if len(h.Params) > 0 {
		out.WriteString("(")
		names := make([]string, len(h.Params))
		for i, p := range h.Params {
			names[i] = p.String()
		}
		out.WriteString(strings.Join(names, ", "))
		out.WriteString(")")
	}
	out.WriteString(";\n")
	return out.String()
}

// Block is an ordered declaration list followed by a compound statement.
// Declaration order is preserved; function/procedure declarations may be
// interleaved with variable declarations (spec.md §3.2 invariant).
type Block struct {
	Declarations []Declaration
	Statements   *CompoundStatement
}

func (b *Block) TokenLiteral() string {
	if b.Statements != nil {
		return b.Statements.TokenLiteral()
	}
	return ""
}

func (b *Block) Pos() token.Position {
	if len(b.Declarations) > 0 {
		return b.Declarations[0].Pos()
	}
	if b.Statements != nil {
		return b.Statements.Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (b *Block) String() string {
	var out bytes.Buffer
	for _, d := range b.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	if b.Statements != nil {
		out.WriteString(b.Statements.String())
	}
	return out.String()
}

// Identifier is a name reference: a variable, constant, function,
// procedure, or field name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos }
func (i *Identifier) String() string         { return i.Value }
// Canonical returns the lowercase symbol-table key for this identifier.
func (i *Identifier) Canonical() string { return strings.ToLower(i.Value) }
