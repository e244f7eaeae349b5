package codegen

import (
	"strings"

	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/internal/semantic"
)

// generateBuiltinCall inlines one of the built-in functions registered
// by internal/semantic.RegisterBuiltins, selected by the symbol's
// BUILTIN_<NAME> sentinel, instead of emitting a CALL (spec.md §4.6
// "Built-in expansion").
func (g *Generator) generateBuiltinCall(sym *semantic.Symbol, call *ast.CallExpression) {
	switch sym.Builtin {
	case "BUILTIN_LENGTH":
		g.generateLength(call)
	case "BUILTIN_UPPERCASE":
		g.generateCaseFold(call, strings.ToUpper, "UPPER")
	case "BUILTIN_LOWERCASE":
		g.generateCaseFold(call, strings.ToLower, "LOWER")
	case "BUILTIN_ABS":
		g.generateAbs(call)
	case "BUILTIN_SQR":
		g.generateSqr(call)
	case "BUILTIN_SQRT":
		g.generateSqrt(call)
	case "BUILTIN_PRED":
		g.generateExpression(call.Arguments[0])
		g.emit("PUSHI", "1")
		g.emit("SUB")
	case "BUILTIN_SUCC":
		g.generateExpression(call.Arguments[0])
		g.emit("PUSHI", "1")
		g.emit("ADD")
	case "BUILTIN_ORD":
		g.generateExpression(call.Arguments[0])
		g.emit("CHRCODE")
	case "BUILTIN_CHR":
		g.generateExpression(call.Arguments[0])
	case "BUILTIN_SIN":
		g.generateExpression(call.Arguments[0])
		g.emit("FSIN")
	case "BUILTIN_COS":
		g.generateExpression(call.Arguments[0])
		g.emit("FCOS")
	case "BUILTIN_WRITELN":
		g.generateWriteln(call)
	default:
		g.fail("internal error: unknown builtin sentinel '%s'", sym.Builtin)
	}
}

// generateLength folds a literal-string argument to its constant length
// at compile time; otherwise it emits STRLEN against the runtime value.
func (g *Generator) generateLength(call *ast.CallExpression) {
	if lit, ok := call.Arguments[0].(*ast.StringLiteral); ok {
		g.emit("PUSHI", itoa(len(lit.Value)))
		return
	}
	g.generateExpression(call.Arguments[0])
	g.emit("STRLEN")
}

// generateCaseFold folds a literal-string argument at compile time;
// otherwise it emits the runtime opcode for the non-constant case.
func (g *Generator) generateCaseFold(call *ast.CallExpression, fold func(string) string, opcode string) {
	if lit, ok := call.Arguments[0].(*ast.StringLiteral); ok {
		g.emit("PUSHS", quote(fold(lit.Value)))
		return
	}
	g.generateExpression(call.Arguments[0])
	g.emit(opcode)
}

// generateAbs duplicates the argument, tests its sign, and jumps over
// the negation when it is already non-negative, selecting the integer
// or float comparison/subtraction opcodes by its determined type.
func (g *Generator) generateAbs(call *ast.CallExpression) {
	arg := call.Arguments[0]
	argType := g.determineExpressionType(arg)
	if argType != "integer" && argType != "real" {
		g.failType("abs() requires an integer or real argument, got %s", argType)
	}
	isFloat := argType == "real"

	g.generateExpression(arg)
	g.emit("DUP", "0")
	g.emit("PUSHI", "0")
	if isFloat {
		g.emit("FSUPEQ")
	} else {
		g.emit("SUPEQ")
	}
	negate := g.newLabel("absnegate")
	end := g.newLabel("absend")
	g.emit("JZ", negate)
	g.emit("JUMP", end)
	g.emitLabel(negate)
	g.emit("PUSHI", "0")
	g.emit("SWAP")
	if isFloat {
		g.emit("FSUB")
	} else {
		g.emit("SUB")
	}
	g.emitLabel(end)
}

func (g *Generator) generateSqr(call *ast.CallExpression) {
	arg := call.Arguments[0]
	argType := g.determineExpressionType(arg)
	if argType != "integer" && argType != "real" {
		g.failType("sqr() requires an integer or real argument, got %s", argType)
	}
	g.generateExpression(arg)
	g.emit("DUP", "0")
	if argType == "real" {
		g.emit("FMUL")
	} else {
		g.emit("MUL")
	}
}

func (g *Generator) generateSqrt(call *ast.CallExpression) {
	arg := call.Arguments[0]
	g.generateExpression(arg)
	if g.determineExpressionType(arg) != "real" {
		g.emit("ITOF")
	}
	g.emit("FSQRT")
}

// generateWriteln emits each argument evaluated and written with the
// opcode its determined type selects, then a trailing WRITELN.
func (g *Generator) generateWriteln(call *ast.CallExpression) {
	for _, arg := range call.Arguments {
		g.generateExpression(arg)
		switch g.determineExpressionType(arg) {
		case "real":
			g.emit("WRITEF")
		case "string", "char":
			g.emit("WRITES")
		default:
			g.emit("WRITEI")
		}
	}
	g.emit("WRITELN")
}
