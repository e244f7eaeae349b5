package parser

import (
	"testing"

	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if prog == nil {
		t.Fatalf("ParseProgram returned nil with no errors recorded")
	}
	return prog
}

func TestParseHelloWorld(t *testing.T) {
	src := `program Hello;
begin
  writeln('hello, world')
end.`
	prog := parseSource(t, src)
	if prog.Header.Name.Value != "Hello" {
		t.Fatalf("expected program name Hello, got %q", prog.Header.Name.Value)
	}
	if len(prog.Block.Statements.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Block.Statements.Statements))
	}
	io, ok := prog.Block.Statements.Statements[0].(*ast.IOStatement)
	if !ok {
		t.Fatalf("expected IOStatement, got %T", prog.Block.Statements.Statements[0])
	}
	if io.Operation != ast.IOWriteln {
		t.Fatalf("expected writeln, got %v", io.Operation)
	}
}

func TestParseVarSectionMultipleGroups(t *testing.T) {
	src := `program P;
var
  x, y: integer;
  s: string;
begin
  x := 1
end.`
	prog := parseSource(t, src)
	if len(prog.Block.Declarations) != 2 {
		t.Fatalf("expected 2 var declarations, got %d", len(prog.Block.Declarations))
	}
	first, ok := prog.Block.Declarations[0].(*ast.VarDecl)
	if !ok || len(first.Names) != 2 {
		t.Fatalf("expected first group to have 2 names, got %#v", prog.Block.Declarations[0])
	}
}

func TestParseCaseInsensitiveKeywords(t *testing.T) {
	src := `PROGRAM p;
BEGIN
  WriteLn('x')
END.`
	parseSource(t, src)
}

func TestParseIfWhileForRepeat(t *testing.T) {
	src := `program p;
var i: integer;
begin
  if i > 0 then
    writeln('pos')
  else
    writeln('non-pos');
  while i > 0 do
    i := i - 1;
  for i := 1 to 10 do
    writeln(i);
  repeat
    i := i + 1
  until i = 10
end.`
	parseSource(t, src)
}

func TestParseArrayAccessAssignment(t *testing.T) {
	src := `program p;
var a: array[1..5] of integer;
begin
  a[1] := 42
end.`
	prog := parseSource(t, src)
	stmt, ok := prog.Block.Statements.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %T", prog.Block.Statements.Statements[0])
	}
	if _, ok := stmt.Target.(*ast.ArrayAccessExpression); !ok {
		t.Fatalf("expected ArrayAccessExpression target, got %T", stmt.Target)
	}
}

func TestParseVarParameterProcedure(t *testing.T) {
	src := `program p;
procedure inc3(var x: integer);
begin
  x := x + 1
end;
var n: integer;
begin
  inc3(n)
end.`
	prog := parseSource(t, src)
	proc, ok := prog.Block.Declarations[0].(*ast.ProcedureDecl)
	if !ok {
		t.Fatalf("expected ProcedureDecl, got %T", prog.Block.Declarations[0])
	}
	if !proc.Parameters[0].IsVar {
		t.Fatalf("expected parameter to be VAR")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	src := `program p;
var x: integer;
begin
  x := 1 + 2 * 3
end.`
	prog := parseSource(t, src)
	stmt := prog.Block.Statements.Statements[0].(*ast.AssignStatement)
	bin, ok := stmt.Value.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected top-level '+', got %#v", stmt.Value)
	}
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected '*' grouped on the right of '+', got %#v", bin.Right)
	}
}

func TestParseUnaryMinusBindsTighterThanBinary(t *testing.T) {
	src := `program p;
var x: integer;
begin
  x := -1 + 2
end.`
	prog := parseSource(t, src)
	stmt := prog.Block.Statements.Statements[0].(*ast.AssignStatement)
	bin := stmt.Value.(*ast.BinaryExpression)
	if _, ok := bin.Left.(*ast.UnaryExpression); !ok {
		t.Fatalf("expected unary minus on the left, got %#v", bin.Left)
	}
}

func TestParseSyntaxErrorMessageFormat(t *testing.T) {
	src := `program p;
begin
  x := ;
end.`
	p := New(lexer.New(src))
	p.ParseProgram()
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 recorded error, got %d: %v", len(errs), errs)
	}
	got := errs[0].Error()
	want := "Syntax error at ; ';' at line 3"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseFunctionWithReturnType(t *testing.T) {
	src := `program p;
function square(n: integer): integer;
begin
  square := n * n
end;
begin
  writeln(square(4))
end.`
	prog := parseSource(t, src)
	fn, ok := prog.Block.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", prog.Block.Declarations[0])
	}
	if fn.ReturnType.String() != "integer" {
		t.Fatalf("expected return type integer, got %q", fn.ReturnType.String())
	}
}
