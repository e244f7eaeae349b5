package ast

import (
	"testing"

	"github.com/guedes674/pas2vm/pkg/token"
)

func TestIdentifierCanonicalIsLowercase(t *testing.T) {
	id := &Identifier{Token: token.Token{Type: token.IDENT, Literal: "MyVar"}, Value: "MyVar"}
	if id.Canonical() != "myvar" {
		t.Fatalf("expected canonical lowercase, got %q", id.Canonical())
	}
	if id.String() != "MyVar" {
		t.Fatalf("expected original spelling preserved in String(), got %q", id.String())
	}
}

func TestAssignStatementString(t *testing.T) {
	target := &Identifier{Value: "x"}
	value := &BinaryExpression{
		Left:     &IntegerLiteral{Value: 3},
		Operator: "+",
		Right:    &IntegerLiteral{Value: 4},
	}
	stmt := &AssignStatement{Target: target, Value: value}
	if got, want := stmt.String(), "x := (3 + 4)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestArrayTypeString(t *testing.T) {
	at := &ArrayType{
		Lower:   &IntegerLiteral{Value: 1},
		Upper:   &IntegerLiteral{Value: 5},
		Element: &NamedType{Name: "integer"},
	}
	if got, want := at.String(), "array[1..5] of integer"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBlockPreservesDeclarationOrder(t *testing.T) {
	v := &VarDecl{Names: []*Identifier{{Value: "a"}}, Type: &NamedType{Name: "integer"}}
	f := &ProcedureDecl{Name: &Identifier{Value: "p"}, Block: &Block{Statements: &CompoundStatement{}}}
	block := &Block{Declarations: []Declaration{v, f}}

	if len(block.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(block.Declarations))
	}
	if _, ok := block.Declarations[0].(*VarDecl); !ok {
		t.Fatalf("expected first declaration to be VarDecl")
	}
	if _, ok := block.Declarations[1].(*ProcedureDecl); !ok {
		t.Fatalf("expected second declaration to be ProcedureDecl")
	}
}
