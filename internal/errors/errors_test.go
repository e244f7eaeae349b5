package errors

import (
	"strings"
	"testing"

	"github.com/guedes674/pas2vm/pkg/token"
)

func TestFormatIncludesCaretUnderColumn(t *testing.T) {
	src := "x := y + 1"
	e := New(token.Position{Line: 1, Column: 6}, "undeclared identifier 'y'", src, "main.pas")
	out := e.Format(false)

	if !strings.Contains(out, "main.pas:1:6") {
		t.Fatalf("expected file:line:column header, got:\n%s", out)
	}
	if !strings.Contains(out, src) {
		t.Fatalf("expected source line excerpt, got:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	var caretLine string
	for _, l := range lines {
		if strings.Contains(l, "^") {
			caretLine = l
		}
	}
	if caretLine == "" {
		t.Fatalf("expected a caret line, got:\n%s", out)
	}
}

func TestFormatErrorsNumbersMultiple(t *testing.T) {
	e1 := New(token.Position{Line: 1, Column: 1}, "first", "", "f.pas")
	e2 := New(token.Position{Line: 2, Column: 1}, "second", "", "f.pas")
	out := FormatErrors([]*CompilerError{e1, e2}, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("expected error count, got:\n%s", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Fatalf("expected numbered errors, got:\n%s", out)
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if FormatErrors(nil, false) != "" {
		t.Fatalf("expected empty string for no errors")
	}
}
