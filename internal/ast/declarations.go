package ast

import (
	"bytes"
	"strings"

	"github.com/guedes674/pas2vm/pkg/token"
)

// VarDecl is one `id_list ':' type` entry of a VAR section (spec.md §3.2
// "VariableDeclaration (list of (identifier list, type))" — the parser
// emits one VarDecl per `variable` production and the Block's
// declaration list already preserves their order, so no extra wrapper
// node is needed).
type VarDecl struct {
	Token token.Token // the VAR token of the section this entry belongs to
	Names []*Identifier
	Type  TypeExpr
}

func (d *VarDecl) declarationNode()    {}
func (d *VarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *VarDecl) Pos() token.Position  { return d.Token.Pos }
func (d *VarDecl) String() string {
	var out bytes.Buffer
	names := make([]string, len(d.Names))
	for i, n := range d.Names {
		names[i] = n.String()
	}
	out.WriteString(strings.Join(names, ", "))
	out.WriteString(": ")
	out.WriteString(d.Type.String())
	out.WriteString(";")
	return out.String()
}

// ConstDecl is one `name = value` entry of a CONST section.
type ConstDecl struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (d *ConstDecl) declarationNode()    {}
func (d *ConstDecl) TokenLiteral() string { return d.Token.Literal }
func (d *ConstDecl) Pos() token.Position  { return d.Token.Pos }
func (d *ConstDecl) String() string {
	return "const " + d.Name.String() + " = " + d.Value.String() + ";"
}

// TypeDecl is one `name = type` entry of a TYPE section.
type TypeDecl struct {
	Token token.Token
	Name  *Identifier
	Type  TypeExpr
}

func (d *TypeDecl) declarationNode()    {}
func (d *TypeDecl) TokenLiteral() string { return d.Token.Literal }
func (d *TypeDecl) Pos() token.Position  { return d.Token.Pos }
func (d *TypeDecl) String() string {
	return "type " + d.Name.String() + " = " + d.Type.String() + ";"
}

// Parameter is one `[VAR] id_list ':' type` parameter-section entry.
type Parameter struct {
	Names []*Identifier
	Type  TypeExpr
	IsVar bool
}

func (p *Parameter) String() string {
	var out bytes.Buffer
	if p.IsVar {
		out.WriteString("var ")
	}
	names := make([]string, len(p.Names))
	for i, n := range p.Names {
		names[i] = n.String()
	}
	out.WriteString(strings.Join(names, ", "))
	out.WriteString(": ")
	out.WriteString(p.Type.String())
	return out.String()
}

// FunctionDecl is `FUNCTION name parameter_list ':' type ';' block ';'`.
type FunctionDecl struct {
	Token      token.Token
	Name       *Identifier
	Parameters []*Parameter
	ReturnType TypeExpr
	Block      *Block
}

func (d *FunctionDecl) declarationNode()    {}
func (d *FunctionDecl) TokenLiteral() string { return d.Token.Literal }
func (d *FunctionDecl) Pos() token.Position  { return d.Token.Pos }
func (d *FunctionDecl) String() string {
	var out bytes.Buffer
	out.WriteString("function ")
	out.WriteString(d.Name.String())
	out.WriteString("(")
	parts := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		parts[i] = p.String()
	}
	out.WriteString(strings.Join(parts, "; "))
	out.WriteString("): ")
	out.WriteString(d.ReturnType.String())
	out.WriteString(";\n")
	out.WriteString(d.Block.String())
	out.WriteString(";")
	return out.String()
}

// ProcedureDecl is `PROCEDURE name parameter_list ';' block ';'`.
type ProcedureDecl struct {
	Token      token.Token
	Name       *Identifier
	Parameters []*Parameter
	Block      *Block
}

func (d *ProcedureDecl) declarationNode()    {}
func (d *ProcedureDecl) TokenLiteral() string { return d.Token.Literal }
func (d *ProcedureDecl) Pos() token.Position  { return d.Token.Pos }
func (d *ProcedureDecl) String() string {
	var out bytes.Buffer
	out.WriteString("procedure ")
	out.WriteString(d.Name.String())
	out.WriteString("(")
	parts := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		parts[i] = p.String()
	}
	out.WriteString(strings.Join(parts, "; "))
	out.WriteString(");\n")
	out.WriteString(d.Block.String())
	out.WriteString(";")
	return out.String()
}
