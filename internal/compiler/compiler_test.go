package compiler

import (
	"strings"
	"testing"
)

func TestCompileHelloWorldProducesStartStop(t *testing.T) {
	src := `program hello;
begin
  writeln('hi')
end.`
	out, _, errs := Compile(src, "hello.pas")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "START") {
		t.Fatalf("expected output to start with START, got:\n%s", out)
	}
	if !strings.Contains(out, "STOP") {
		t.Fatalf("expected output to contain STOP, got:\n%s", out)
	}
}

func TestCompileReportsLexErrorAndStopsThere(t *testing.T) {
	src := "program p; begin x := 1 @ 2 end."
	_, _, errs := Compile(src, "bad.pas")
	if len(errs) == 0 {
		t.Fatalf("expected at least one error for an illegal character")
	}
}

func TestCompileReportsParseError(t *testing.T) {
	src := `program p;
begin
  x :=
end.`
	_, _, errs := Compile(src, "bad.pas")
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for a truncated assignment")
	}
}

func TestCompileReportsSemanticError(t *testing.T) {
	src := `program p;
begin
  writeln(undeclared_name)
end.`
	_, _, errs := Compile(src, "bad.pas")
	if len(errs) == 0 {
		t.Fatalf("expected a semantic error for an undeclared identifier")
	}
}

func TestCompileWarnsOnRedefinition(t *testing.T) {
	src := `program p;
var
  x: integer;
  x: integer;
begin
  x := 1
end.`
	_, warnings, errs := Compile(src, "redef.pas")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one redefinition warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "'x'") || !strings.Contains(warnings[0], "global") {
		t.Fatalf("warning should name the symbol and scope, got: %s", warnings[0])
	}
}

func TestCompileReportsCodegenTypeError(t *testing.T) {
	src := `program p;
begin
  writeln(abs('x'))
end.`
	_, _, errs := Compile(src, "bad.pas")
	if len(errs) == 0 {
		t.Fatalf("expected a codegen type error for abs() on a string")
	}
}
