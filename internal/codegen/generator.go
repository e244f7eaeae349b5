// Package codegen walks a checked AST and emits textual instructions
// for the target stack VM described in spec.md §6.2: a single pass,
// type-directed at the instruction-selection level only, with light
// constant folding.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/internal/semantic"
)

// TypeError and CodegenError are the two failure modes of code
// generation (spec.md §7). Both abort the whole compilation immediately
// on the first occurrence, mirroring the source's raise-and-stop style.
type TypeError struct{ Message string }

func (e *TypeError) Error() string { return e.Message }

type CodegenError struct{ Message string }

func (e *CodegenError) Error() string { return e.Message }

// Generator walks a checked AST and emits instructions. It reuses the
// SymbolTable tree internal/semantic already built rather than
// re-declaring symbols, since the scoped symbol table is the one
// structure every compiler stage shares.
type Generator struct {
	result *semantic.Result
	scope  *semantic.SymbolTable

	out      strings.Builder
	labelSeq int

	// tempOffsets maps a ForStatement, an array-assignment
	// AssignStatement, or an array-element read/readln argument
	// expression to the frame offset reserveTemps pre-allocated for it.
	tempOffsets map[ast.Node]int

	// returnVar is the implicit return-value Symbol of the function
	// currently being generated, or nil outside any function (including
	// inside a procedure). Assigning to it must leave the value on TOS
	// rather than storing it (spec.md §4.6 Statements, assignment).
	returnVar *semantic.Symbol
}

// NewGenerator creates a Generator over a completed semantic.Result.
func NewGenerator(result *semantic.Result) *Generator {
	return &Generator{
		result:      result,
		scope:       result.Global,
		tempOffsets: make(map[ast.Node]int),
	}
}

// isGlobal reports whether sym lives in the program's global scope
// (GP-addressed) rather than the current function/procedure frame
// (FP-addressed) — true both for a global referenced directly from
// program-level code and for a free reference to an outer global from
// inside a nested subprogram.
func (g *Generator) isGlobal(sym *semantic.Symbol) bool {
	owner, ok := g.result.Global.Lookup(sym.Name)
	return ok && owner == sym
}

// Generate runs the top-level emission order of spec.md §4.6 and
// returns the emitted program text. A TypeError or CodegenError raised
// anywhere during the walk is recovered here.
func (g *Generator) Generate(prog *ast.Program) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *TypeError:
				err = e
			case *CodegenError:
				err = e
			default:
				panic(r)
			}
		}
	}()
	g.generateProgram(prog)
	return g.out.String(), nil
}

func (g *Generator) fail(format string, args ...interface{}) {
	panic(&CodegenError{Message: fmt.Sprintf(format, args...)})
}

func (g *Generator) failType(format string, args ...interface{}) {
	panic(&TypeError{Message: fmt.Sprintf(format, args...)})
}

func (g *Generator) emit(op string, args ...string) {
	g.out.WriteString("    ")
	g.out.WriteString(op)
	for _, a := range args {
		g.out.WriteByte(' ')
		g.out.WriteString(a)
	}
	g.out.WriteByte('\n')
}

func (g *Generator) emitLabel(label string) {
	g.out.WriteString(label)
	g.out.WriteString(":\n")
}

func (g *Generator) newLabel(prefix string) string {
	g.labelSeq++
	return fmt.Sprintf("%s%d", prefix, g.labelSeq)
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func quote(s string) string { return strconv.Quote(s) }
