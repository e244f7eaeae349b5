package codegen

import (
	"strings"

	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/internal/semantic"
)

// determineExpressionType resolves an expression's semantic type on
// demand, the way spec.md §4.5 describes: there is no separate typed-AST
// pass, instruction selection just asks this question at the point it
// needs an answer.
func (g *Generator) determineExpressionType(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return "integer"
	case *ast.FloatLiteral:
		return "real"
	case *ast.StringLiteral:
		return "string"
	case *ast.BooleanLiteral:
		return "boolean"
	case *ast.Identifier:
		sym := g.resolve(e)
		if sym.IsArray {
			return sym.ElemType
		}
		return sym.Type
	case *ast.BinaryExpression:
		if e.Operator == "/" {
			return "real"
		}
		switch e.Operator {
		case "=", "<>", "<", ">", "<=", ">=", "and", "or", "andthen", "orelse":
			return "boolean"
		}
		if g.determineExpressionType(e.Left) == "real" || g.determineExpressionType(e.Right) == "real" {
			return "real"
		}
		return "integer"
	case *ast.UnaryExpression:
		return g.determineExpressionType(e.Operand)
	case *ast.ArrayAccessExpression:
		if id, ok := e.Array.(*ast.Identifier); ok {
			sym := g.resolve(id)
			if sym.Type == "string" {
				return "char"
			}
			return sym.ElemType
		}
		return g.determineExpressionType(e.Array)
	case *ast.CallExpression:
		sym := g.resolveCall(e)
		return sym.ReturnType
	case *ast.FieldAccessExpression:
		g.fail("field access is not supported by code generation")
	}
	return ""
}

func (g *Generator) resolve(id *ast.Identifier) *semantic.Symbol {
	sym, ok := g.scope.Resolve(id.Value)
	if !ok {
		g.fail("internal error: identifier '%s' was not declared during checking", id.Value)
	}
	return sym
}

func (g *Generator) resolveCall(call *ast.CallExpression) *semantic.Symbol {
	sym, ok := g.scope.Resolve(call.Name.Value)
	if !ok {
		g.fail("internal error: call target '%s' was not declared during checking", call.Name.Value)
	}
	return sym
}

// generateExpression emits the instructions that leave expr's value on
// top of the stack (spec.md §4.6 Expressions).
func (g *Generator) generateExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		g.emit("PUSHI", itoa(int(e.Value)))
	case *ast.FloatLiteral:
		g.emit("PUSHF", ftoa(e.Value))
	case *ast.StringLiteral:
		g.emit("PUSHS", quote(e.Value))
	case *ast.BooleanLiteral:
		if e.Value {
			g.emit("PUSHI", "1")
		} else {
			g.emit("PUSHI", "0")
		}
	case *ast.Identifier:
		g.generateIdentifierValue(e)
	case *ast.BinaryExpression:
		g.generateBinaryExpression(e)
	case *ast.UnaryExpression:
		g.generateUnaryExpression(e)
	case *ast.ArrayAccessExpression:
		g.generateArrayAccess(e)
	case *ast.FieldAccessExpression:
		g.fail("field access is not supported by code generation")
	case *ast.CallExpression:
		g.generateCall(e)
	default:
		g.fail("internal error: unhandled expression type %T", expr)
	}
}

// generateIdentifierValue emits the value-producing form of an
// identifier reference. A VAR parameter's slot holds the caller's
// address, so reading it as a value needs an extra LOAD 0 to dereference
// (spec.md §4.6 Expressions, Identifier).
func (g *Generator) generateIdentifierValue(id *ast.Identifier) {
	sym := g.resolve(id)
	switch {
	case sym.Kind == semantic.KindConstant:
		g.pushConstant(sym)
	case sym.IsArray:
		g.emitBaseAddress(sym)
	case sym.IsVarParam:
		g.emit("PUSHL", itoa(sym.Offset))
		g.emit("LOAD", "0")
	case g.isGlobal(sym):
		g.emit("PUSHG", itoa(sym.Offset))
	default:
		g.emit("PUSHL", itoa(sym.Offset))
	}
}

func (g *Generator) pushConstant(sym *semantic.Symbol) {
	switch v := sym.Value.(type) {
	case int64:
		g.emit("PUSHI", itoa(int(v)))
	case float64:
		g.emit("PUSHF", ftoa(v))
	case string:
		g.emit("PUSHS", quote(v))
	case bool:
		if v {
			g.emit("PUSHI", "1")
		} else {
			g.emit("PUSHI", "0")
		}
	default:
		g.fail("internal error: constant '%s' has no recorded value", sym.Display)
	}
}

// emitBaseAddress pushes the runtime address of sym's storage: GP- or
// FP-relative base plus its offset (spec.md §4.6 "Target memory model").
func (g *Generator) emitBaseAddress(sym *semantic.Symbol) {
	if g.isGlobal(sym) {
		g.emit("PUSHGP")
	} else {
		g.emit("PUSHFP")
	}
	g.emit("PUSHI", itoa(sym.Offset))
	g.emit("PADD")
}

// emitLValueAddress pushes the address a VAR-parameter argument or an
// I/O target needs: an identifier's storage address, an array element's
// address, or — when the identifier is itself already a VAR parameter —
// a re-pass of the address it already holds.
func (g *Generator) emitLValueAddress(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		sym := g.resolve(e)
		if sym.IsVarParam {
			g.emit("PUSHL", itoa(sym.Offset))
			return
		}
		g.emitBaseAddress(sym)
	case *ast.ArrayAccessExpression:
		g.emitArrayElementAddress(e)
	default:
		g.fail("reference argument is not an identifier or array element")
	}
}

func (g *Generator) emitArrayElementAddress(e *ast.ArrayAccessExpression) {
	id, ok := e.Array.(*ast.Identifier)
	if !ok {
		g.fail("reference argument is not an identifier or array element")
		return
	}
	sym := g.resolve(id)
	g.emitBaseAddress(sym)
	g.generateExpression(e.Index)
	if sym.LowerBound != 0 {
		g.emit("PUSHI", itoa(sym.LowerBound))
		g.emit("SUB")
	}
	g.emit("PADD")
}

// generateArrayAccess emits the value-producing form of `a[i]` (spec.md
// §4.6 Expressions, ArrayAccess). Pascal strings are 1-indexed and the
// VM addresses them with a dedicated CHARAT opcode rather than LOADN.
func (g *Generator) generateArrayAccess(e *ast.ArrayAccessExpression) {
	if id, ok := e.Array.(*ast.Identifier); ok {
		if sym := g.resolve(id); sym.Type == "string" {
			g.generateExpression(e.Array)
			g.generateExpression(e.Index)
			g.emit("PUSHI", "1")
			g.emit("SUB")
			g.emit("CHARAT")
			return
		}
	}
	id, ok := e.Array.(*ast.Identifier)
	if !ok {
		g.fail("internal error: array access base is not an identifier")
		return
	}
	sym := g.resolve(id)
	g.emitBaseAddress(sym)
	g.generateExpression(e.Index)
	if sym.LowerBound != 0 {
		g.emit("PUSHI", itoa(sym.LowerBound))
		g.emit("SUB")
	}
	g.emit("LOADN")
}

var binaryOps = map[string]struct{ intOp, floatOp string }{
	"+":   {"ADD", "FADD"},
	"-":   {"SUB", "FSUB"},
	"*":   {"MUL", "FMUL"},
	"div": {"DIV", "DIV"},
	"mod": {"MOD", "MOD"},
	"<":   {"INF", "FINF"},
	"<=":  {"INFEQ", "FINFEQ"},
	">":   {"SUP", "FSUP"},
	">=":  {"SUPEQ", "FSUPEQ"},
	"and": {"AND", "AND"},
	"or":  {"OR", "OR"},
}

// generateBinaryExpression dispatches a binary operator to its integer
// or float VM opcode (spec.md §4.6 Expressions, BinaryOperation). `/` is
// always the float divide; `=`/`<>` go through EQUAL regardless of
// operand kind; one-character string-literal comparisons against a
// `string[index]` access fold the literal to its ordinal so the compare
// runs as an integer EQUAL.
func (g *Generator) generateBinaryExpression(e *ast.BinaryExpression) {
	if folded := g.foldCharComparison(e); folded {
		return
	}

	g.generateExpression(e.Left)
	g.generateExpression(e.Right)

	switch e.Operator {
	case "/":
		g.emit("FDIV")
		return
	case "=":
		g.emit("EQUAL")
		return
	case "<>":
		g.emit("EQUAL")
		g.emit("NOT")
		return
	}

	ops, ok := binaryOps[e.Operator]
	if !ok {
		g.fail("internal error: unsupported binary operator '%s'", e.Operator)
		return
	}
	isFloat := g.determineExpressionType(e.Left) == "real" || g.determineExpressionType(e.Right) == "real"
	if isFloat {
		g.emit(ops.floatOp)
	} else {
		g.emit(ops.intOp)
	}
}

// foldCharComparison implements the single-character string-literal
// special case of spec.md §4.6: `s[i] = 'x'` (or `<>`) compares the
// character access against the literal's ordinal as a plain integer
// EQUAL, rather than going through a general string compare the VM
// doesn't have an opcode for.
func (g *Generator) foldCharComparison(e *ast.BinaryExpression) bool {
	if e.Operator != "=" && e.Operator != "<>" {
		return false
	}
	access, lit, ok := charAccessAndLiteral(e.Left, e.Right)
	if !ok {
		return false
	}
	g.generateExpression(access)
	g.emit("PUSHI", itoa(int(lit.Value[0])))
	g.emit("EQUAL")
	if e.Operator == "<>" {
		g.emit("NOT")
	}
	return true
}

func charAccessAndLiteral(left, right ast.Expression) (*ast.ArrayAccessExpression, *ast.StringLiteral, bool) {
	if access, ok := left.(*ast.ArrayAccessExpression); ok {
		if lit, ok := right.(*ast.StringLiteral); ok && len(lit.Value) == 1 {
			return access, lit, true
		}
	}
	if access, ok := right.(*ast.ArrayAccessExpression); ok {
		if lit, ok := left.(*ast.StringLiteral); ok && len(lit.Value) == 1 {
			return access, lit, true
		}
	}
	return nil, nil, false
}

// generateUnaryExpression emits `not`, unary `-`, and unary `+` (spec.md
// §4.6 Expressions, UnaryOperation). There is no dedicated negate opcode
// in the target contract, so unary minus goes through the documented
// PUSHI 0; SWAP; SUB idiom.
func (g *Generator) generateUnaryExpression(e *ast.UnaryExpression) {
	switch strings.ToLower(e.Operator) {
	case "not":
		g.generateExpression(e.Operand)
		g.emit("NOT")
	case "-":
		g.generateExpression(e.Operand)
		g.emit("PUSHI", "0")
		g.emit("SWAP")
		g.emit("SUB")
	case "+":
		g.generateExpression(e.Operand)
	default:
		g.fail("internal error: unsupported unary operator '%s'", e.Operator)
	}
}

// generateCall emits a function or procedure call: a built-in is
// inlined, everything else validates arity, pushes each argument (by
// address for a VAR parameter, by value otherwise), then emits
// `PUSHA label; CALL` (spec.md §4.6 Expressions, Call).
func (g *Generator) generateCall(call *ast.CallExpression) {
	sym := g.resolveCall(call)
	if sym.IsBuiltin() {
		g.generateBuiltinCall(sym, call)
		return
	}
	if len(call.Arguments) != len(sym.Params) {
		g.fail("'%s' expects %d argument(s), got %d", call.Name.Value, len(sym.Params), len(call.Arguments))
		return
	}
	for i, arg := range call.Arguments {
		if sym.Params[i].IsVarParam {
			g.emitLValueAddress(arg)
		} else {
			g.generateExpression(arg)
		}
	}
	g.emit("PUSHA", sym.Label)
	g.emit("CALL")
}
