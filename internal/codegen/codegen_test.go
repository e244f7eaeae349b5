package codegen

import (
	"strings"
	"testing"

	"github.com/guedes674/pas2vm/internal/lexer"
	"github.com/guedes674/pas2vm/internal/parser"
	"github.com/guedes674/pas2vm/internal/semantic"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// compile runs the full pipeline up to code generation and fails the
// test on any parse or semantic error, since these scenarios are all
// expected to generate successfully.
func compile(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors")

	a := semantic.NewAnalyzer()
	result := a.Check(prog)
	require.Empty(t, a.Errors(), "unexpected semantic errors")

	g := NewGenerator(result)
	out, err := g.Generate(prog)
	require.NoError(t, err)
	return out
}

// TestGenerateScenarios snapshots the full generated program for each of
// the worked examples, covering the top-level emission order, the
// temp-slot reservation batch, VAR parameters, and FOR loops end to end.
func TestGenerateScenarios(t *testing.T) {
	scenarios := map[string]string{
		"hello_world": `program hello;
begin
  writeln('hi')
end.`,

		"global_int_assign": `program p;
var x: integer;
begin
  x := 3 + 4;
  writeln(x)
end.`,

		"for_to_loop": `program p;
var i, total: integer;
begin
  total := 0;
  for i := 1 to 10 do
    total := total + i;
  writeln(total)
end.`,

		"array_element_write": `program p;
var a: array[1..5] of integer;
begin
  a[2] := 7
end.`,

		"var_parameter_call": `program p;
var x: integer;

procedure inc_by_one(var n: integer);
begin
  n := n + 1
end;

begin
  x := 5;
  inc_by_one(x);
  writeln(x)
end.`,

		"length_literal_fold": `program p;
begin
  writeln(length('abcde'))
end.`,
	}

	for name, src := range scenarios {
		t.Run(name, func(t *testing.T) {
			out := compile(t, src)
			snaps.MatchSnapshot(t, out)
		})
	}
}

// TestLengthLiteralFoldsToSingleInstruction pins scenario (f): a
// literal-string argument to length() must fold to exactly PUSHI 5,
// never emitting a runtime STRLEN.
func TestLengthLiteralFoldsToSingleInstruction(t *testing.T) {
	out := compile(t, `program p;
begin
  writeln(length('abcde'))
end.`)
	require.Contains(t, out, "PUSHI 5")
	require.NotContains(t, out, "STRLEN")
}

// TestForLoopReservesEndBoundBeforeBody pins the temp-slot batch
// reservation architecture: the global control variable is reserved
// before START, and the FOR loop's stored end-bound is the first push
// after START, ahead of the loop's check label.
func TestForLoopReservesEndBoundBeforeBody(t *testing.T) {
	out := compile(t, `program p;
var i: integer;
begin
  for i := 1 to 10 do
    writeln(i)
end.`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "PUSHI 0", strings.TrimSpace(lines[0]))
	require.Equal(t, "START", strings.TrimSpace(lines[1]))
	require.Contains(t, strings.TrimSpace(lines[2]), "PUSHI 0")
}

// TestReadIntoArrayElementReservesTempOnce pins the same batch-reservation
// discipline for read/readln: the array-element read target's scratch
// slot is pushed once before the loop body, not re-pushed on every
// iteration (the loop body itself contains no PUSHI 0 at all; the array
// is declared after i and n so its base offset is 2, not 0, and its
// base-address push cannot be mistaken for a reservation).
func TestReadIntoArrayElementReservesTempOnce(t *testing.T) {
	out := compile(t, `program p;
var i, n: integer;
var a: array[1..10] of integer;
begin
  n := 10;
  for i := 1 to n do
    read(a[i])
end.`)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	bodyStart := -1
	for idx, line := range lines {
		if strings.Contains(line, "JZ") {
			bodyStart = idx + 1
			break
		}
	}
	require.NotEqual(t, -1, bodyStart, "expected a JZ guarding the loop body")

	bodyEnd := -1
	for idx := bodyStart; idx < len(lines); idx++ {
		if strings.Contains(lines[idx], "JUMP") {
			bodyEnd = idx
			break
		}
	}
	require.NotEqual(t, -1, bodyEnd, "expected a JUMP closing the loop body")

	for _, line := range lines[bodyStart:bodyEnd] {
		require.NotEqual(t, "PUSHI 0", strings.TrimSpace(line),
			"loop body should not re-reserve the read-into-array temp slot")
	}
	require.Contains(t, strings.Join(lines[:bodyStart], "\n"), "PUSHI 0",
		"the read-into-array temp should be reserved once, before the loop")
}

// TestVarParameterDereferencesOnRead pins the VAR-parameter contract: a
// reference parameter is read with an extra LOAD 0 after PUSHL, since
// its slot holds the caller's address rather than the value itself.
func TestVarParameterDereferencesOnRead(t *testing.T) {
	out := compile(t, `program p;
var x: integer;

procedure bump(var n: integer);
begin
  writeln(n)
end;

begin
  x := 1;
  bump(x)
end.`)
	require.Contains(t, out, "LOAD 0")
}

// TestEveryFunctionBodyEndsWithReturn pins invariant 3: exactly one
// RETURN instruction closes every function/procedure body.
func TestEveryFunctionBodyEndsWithReturn(t *testing.T) {
	out := compile(t, `program p;

function double_it(n: integer): integer;
begin
  double_it := n * 2
end;

var x: integer;
begin
  x := double_it(21);
  writeln(x)
end.`)
	require.Equal(t, 1, strings.Count(out, "RETURN"))
}

// TestAbsRejectsNonNumericArgument pins the TypeError path: abs() on a
// string argument must fail type-checking rather than emit bad opcodes.
func TestAbsRejectsNonNumericArgument(t *testing.T) {
	p := parser.New(lexer.New(`program p;
begin
  writeln(abs('x'))
end.`))
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	a := semantic.NewAnalyzer()
	result := a.Check(prog)
	require.Empty(t, a.Errors())

	g := NewGenerator(result)
	_, err := g.Generate(prog)
	require.Error(t, err)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}
