package ast

import (
	"bytes"
	"fmt"

	"github.com/guedes674/pas2vm/pkg/token"
)

// NamedType is a scalar type reference: one of the built-in type names
// (INTEGER, REAL, BOOLEAN, CHAR, STRING, and the Pascal numeric aliases)
// or a user type-declared name.
type NamedType struct {
	Token token.Token
	Name  string
}

func (t *NamedType) typeExprNode()         {}
func (t *NamedType) TokenLiteral() string  { return t.Token.Literal }
func (t *NamedType) Pos() token.Position   { return t.Token.Pos }
func (t *NamedType) String() string        { return t.Name }

// ArrayType is `ARRAY '[' lower '..' upper ']' OF element`. Bounds are
// integer literals; element may itself be an ArrayType (spec.md §3.2).
type ArrayType struct {
	Token   token.Token // the ARRAY token
	Lower   *IntegerLiteral
	Upper   *IntegerLiteral
	Element TypeExpr
}

func (t *ArrayType) typeExprNode()        {}
func (t *ArrayType) TokenLiteral() string { return t.Token.Literal }
func (t *ArrayType) Pos() token.Position  { return t.Token.Pos }
func (t *ArrayType) String() string {
	return fmt.Sprintf("array[%d..%d] of %s", t.Lower.Value, t.Upper.Value, t.Element.String())
}

// RecordField is one `id_list : type` entry of a RecordType.
type RecordField struct {
	Names []*Identifier
	Type  TypeExpr
}

// RecordType is `RECORD field_list END`. Parsed and stored; real
// compilation of field access is out of scope (spec.md §4.6 FieldAccess).
type RecordType struct {
	Token  token.Token // the RECORD token
	Fields []*RecordField
}

func (t *RecordType) typeExprNode()        {}
func (t *RecordType) TokenLiteral() string { return t.Token.Literal }
func (t *RecordType) Pos() token.Position  { return t.Token.Pos }
func (t *RecordType) String() string {
	var out bytes.Buffer
	out.WriteString("record ")
	for _, f := range t.Fields {
		for i, n := range f.Names {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(n.String())
		}
		out.WriteString(": ")
		out.WriteString(f.Type.String())
		out.WriteString("; ")
	}
	out.WriteString("end")
	return out.String()
}
