package semantic

import (
	"testing"

	"github.com/guedes674/pas2vm/internal/lexer"
	"github.com/guedes674/pas2vm/internal/parser"
)

func mustParse(t *testing.T, src string) *parser.Parser {
	t.Helper()
	p := parser.New(lexer.New(src))
	return p
}

func TestCheckResolvesGlobalsAndBuiltinCall(t *testing.T) {
	src := `program p;
var x: integer;
begin
  x := 3 + 4;
  writeln(x)
end.`
	p := mustParse(t, src)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}
	a := NewAnalyzer()
	res := a.Check(prog)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
	sym, ok := res.Global.Resolve("x")
	if !ok {
		t.Fatalf("expected x to resolve in global scope")
	}
	if sym.Type != "integer" || sym.Offset != 0 {
		t.Fatalf("expected x at offset 0 type integer, got %+v", sym)
	}
}

func TestCheckUndeclaredIdentifierFails(t *testing.T) {
	src := `program p;
begin
  writeln(y)
end.`
	p := mustParse(t, src)
	prog := p.ParseProgram()
	a := NewAnalyzer()
	a.Check(prog)
	if len(a.Errors()) != 1 {
		t.Fatalf("expected exactly 1 semantic error, got %d", len(a.Errors()))
	}
}

func TestCheckArityMismatchFails(t *testing.T) {
	src := `program p;
procedure greet(name: string);
begin
  writeln(name)
end;
begin
  greet('a', 'b')
end.`
	p := mustParse(t, src)
	prog := p.ParseProgram()
	a := NewAnalyzer()
	a.Check(prog)
	if len(a.Errors()) != 1 {
		t.Fatalf("expected exactly 1 semantic error, got %d: %v", len(a.Errors()), a.Errors())
	}
}

func TestCheckVarParameterOffsetsAreNegativeLeftmostMostNegative(t *testing.T) {
	src := `program p;
procedure swap(var a: integer; var b: integer);
begin
  a := b
end;
var x, y: integer;
begin
  swap(x, y)
end.`
	p := mustParse(t, src)
	prog := p.ParseProgram()
	a := NewAnalyzer()
	res := a.Check(prog)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
	proc := prog.Block.Declarations[0]
	scope := res.Scopes[proc]
	aSym, _ := scope.Resolve("a")
	bSym, _ := scope.Resolve("b")
	if aSym.Offset >= bSym.Offset {
		t.Fatalf("expected leftmost parameter 'a' more negative than 'b', got a=%d b=%d", aSym.Offset, bSym.Offset)
	}
}

func TestCheckArrayBoundsAndElementType(t *testing.T) {
	src := `program p;
var a: array[1..5] of integer;
begin
  a[1] := 10
end.`
	p := mustParse(t, src)
	prog := p.ParseProgram()
	a := NewAnalyzer()
	res := a.Check(prog)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
	sym, _ := res.Global.Resolve("a")
	if !sym.IsArray || sym.ElemCount != 5 || sym.LowerBound != 1 || sym.ElemType != "integer" {
		t.Fatalf("unexpected array symbol: %+v", sym)
	}
}

func TestCheckFunctionReturnVariableIsImplicitLocal(t *testing.T) {
	src := `program p;
function square(n: integer): integer;
begin
  square := n * n
end;
begin
  writeln(square(3))
end.`
	p := mustParse(t, src)
	prog := p.ParseProgram()
	a := NewAnalyzer()
	res := a.Check(prog)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
	fn := prog.Block.Declarations[0]
	scope := res.Scopes[fn]
	sym, ok := scope.Resolve("square")
	if !ok || sym.Kind != KindVariable {
		t.Fatalf("expected 'square' bound as an implicit local inside its own scope, got %+v", sym)
	}
}

func TestRegisterBuiltinsIsIdempotent(t *testing.T) {
	root := NewRootScope()
	RegisterBuiltins(root)
	first, _ := root.Resolve("length")
	RegisterBuiltins(root)
	second, _ := root.Resolve("length")
	if first != second {
		t.Fatalf("expected repeated registration to be a no-op")
	}
}
