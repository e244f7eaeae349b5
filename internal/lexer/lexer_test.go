package lexer

import (
	"testing"

	"github.com/guedes674/pas2vm/pkg/token"
)

func TestNextToken(t *testing.T) {
	input := `program Hello;
var x: integer;
begin
	x := 3 + 4;
	writeln(x)
end.`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PROGRAM, "program"},
		{token.IDENT, "Hello"},
		{token.SEMICOLON, ";"},
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.INTEGER, "integer"},
		{token.SEMICOLON, ";"},
		{token.BEGIN, "begin"},
		{token.IDENT, "x"},
		{token.ASSIGN, ":="},
		{token.INT, "3"},
		{token.PLUS, "+"},
		{token.INT, "4"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "writeln"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.RPAREN, ")"},
		{token.END, "end"},
		{token.DOT, "."},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d]: type wrong, expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d]: literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	input := "BEGIN End PROGRAM While DOWNTO"
	expected := []token.Type{token.BEGIN, token.END, token.PROGRAM, token.WHILE, token.DOWNTO}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d]: expected %s, got %s", i, want, tok.Type)
		}
	}
}

func TestIdentifierPreservesOriginalSpelling(t *testing.T) {
	l := New("MyVariable")
	tok := l.NextToken()
	if tok.Type != token.IDENT {
		t.Fatalf("expected IDENT, got %s", tok.Type)
	}
	if tok.Literal != "MyVariable" {
		t.Fatalf("expected original spelling preserved, got %q", tok.Literal)
	}
	if tok.CanonicalLiteral() != "myvariable" {
		t.Fatalf("expected canonical lowercase, got %q", tok.CanonicalLiteral())
	}
}

func TestBraceComment(t *testing.T) {
	input := "{ this is\na comment } x"
	l := New(input)
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "x" {
		t.Fatalf("expected identifier x after comment, got %s %q", tok.Type, tok.Literal)
	}
	if tok.Pos.Line != 2 {
		t.Fatalf("expected line counter to advance across comment newline, got line %d", tok.Pos.Line)
	}
}

func TestParenStarComment(t *testing.T) {
	input := "(* comment \n spanning lines *) y"
	l := New(input)
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "y" {
		t.Fatalf("expected identifier y after comment, got %s %q", tok.Type, tok.Literal)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input        string
		expectedType token.Type
		expectedLit  string
	}{
		{"123", token.INT, "123"},
		{"3.14", token.FLOAT, "3.14"},
		{"1.", token.INT, "1"}, // trailing dot not part of number
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLit {
			t.Errorf("input %q: got %s %q, want %s %q", tt.input, tok.Type, tok.Literal, tt.expectedType, tt.expectedLit)
		}
	}
}

func TestStringLiteralStripsQuotesAndHandlesEscape(t *testing.T) {
	l := New(`'hi \'there\''`)
	tok := l.NextToken()
	if tok.Type != token.STRINGC {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if tok.Literal != "hi 'there'" {
		t.Fatalf("unexpected literal: %q", tok.Literal)
	}
}

func TestIllegalCharacterRecordsError(t *testing.T) {
	l := New("x @ y")
	l.NextToken() // x
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one lex error recorded, got %d", len(l.Errors()))
	}
}

func TestDeterministicTokenStream(t *testing.T) {
	input := "program P; var a, b: integer; begin a := b end."
	var first, second []token.Type

	l1 := New(input)
	for {
		tok := l1.NextToken()
		first = append(first, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}

	l2 := New(input)
	for {
		tok := l2.NextToken()
		second = append(second, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}

	if len(first) != len(second) {
		t.Fatalf("token stream length differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("token stream diverges at %d: %s vs %s", i, first[i], second[i])
		}
	}
}
