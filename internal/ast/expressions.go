package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/guedes674/pas2vm/pkg/token"
)

// IntegerLiteral is an integer constant.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntegerLiteral) expressionNode()      {}
func (l *IntegerLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *IntegerLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *IntegerLiteral) String() string       { return strconv.FormatInt(l.Value, 10) }

// FloatLiteral is a real constant.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *FloatLiteral) String() string       { return strconv.FormatFloat(l.Value, 'g', -1, 64) }

// StringLiteral is a quoted string constant, already unescaped by the lexer.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *StringLiteral) String() string       { return "'" + l.Value + "'" }

// BooleanLiteral is `TRUE` or `FALSE` — lexically ordinary identifiers
// in this grammar, recognized by the parser by spelling.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (l *BooleanLiteral) expressionNode()      {}
func (l *BooleanLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BooleanLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *BooleanLiteral) String() string {
	if l.Value {
		return "true"
	}
	return "false"
}

// BinaryExpression is `left operator right`. Operator is the canonical
// lowercase spelling (e.g. "+", "div", "andthen").
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpression) Pos() token.Position  { return e.Token.Pos }
func (e *BinaryExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// UnaryExpression is `operator operand` (prefix `-`, `not`, `+`).
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (e *UnaryExpression) expressionNode()      {}
func (e *UnaryExpression) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpression) Pos() token.Position  { return e.Token.Pos }
func (e *UnaryExpression) String() string {
	return "(" + e.Operator + e.Operand.String() + ")"
}

// ArrayAccessExpression is `array_expr '[' index_expr ']'`.
type ArrayAccessExpression struct {
	Token token.Token // the '[' token
	Array Expression
	Index Expression
}

func (e *ArrayAccessExpression) expressionNode()      {}
func (e *ArrayAccessExpression) TokenLiteral() string { return e.Token.Literal }
func (e *ArrayAccessExpression) Pos() token.Position  { return e.Token.Pos }
func (e *ArrayAccessExpression) String() string {
	return e.Array.String() + "[" + e.Index.String() + "]"
}

// FieldAccessExpression is `record_expr '.' ID` (parsed; real compilation
// of record field access is out of scope — spec.md §4.6).
type FieldAccessExpression struct {
	Token  token.Token // the '.' token
	Record Expression
	Field  *Identifier
}

func (e *FieldAccessExpression) expressionNode()      {}
func (e *FieldAccessExpression) TokenLiteral() string { return e.Token.Literal }
func (e *FieldAccessExpression) Pos() token.Position  { return e.Token.Pos }
func (e *FieldAccessExpression) String() string {
	return e.Record.String() + "." + e.Field.String()
}

// CallExpression is `ID '(' [expression_list] ')'`: a function or
// procedure call used in expression position. Argument lists may be
// empty.
type CallExpression struct {
	Token     token.Token // the '(' token, or the name's token for a bare-name call statement
	Name      *Identifier
	Arguments []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpression) Pos() token.Position  { return e.Token.Pos }
func (e *CallExpression) String() string {
	var out bytes.Buffer
	out.WriteString(e.Name.String())
	out.WriteString("(")
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	return out.String()
}
