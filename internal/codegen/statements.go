package codegen

import (
	"github.com/guedes674/pas2vm/internal/ast"
	"github.com/guedes674/pas2vm/internal/semantic"
)

func (g *Generator) generateCompoundStatement(c *ast.CompoundStatement) {
	if c == nil {
		return
	}
	for _, st := range c.Statements {
		g.generateStatement(st)
	}
}

func (g *Generator) generateStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CompoundStatement:
		g.generateCompoundStatement(s)
	case *ast.AssignStatement:
		g.generateAssignStatement(s)
	case *ast.IfStatement:
		g.generateIfStatement(s)
	case *ast.WhileStatement:
		g.generateWhileStatement(s)
	case *ast.RepeatStatement:
		g.generateRepeatStatement(s)
	case *ast.ForStatement:
		g.generateForStatement(s)
	case *ast.IOStatement:
		g.generateIOStatement(s)
	case *ast.CallStatement:
		g.generateCall(s.Call)
	case *ast.EmptyStatement:
		// nothing to emit
	default:
		g.fail("internal error: unhandled statement type %T", stmt)
	}
}

// generateAssignStatement implements spec.md §4.6 Statements,
// "Assignment to scalar identifier" and "Assignment to array element".
func (g *Generator) generateAssignStatement(s *ast.AssignStatement) {
	switch target := s.Target.(type) {
	case *ast.Identifier:
		g.generateScalarAssign(target, s.Value)
	case *ast.ArrayAccessExpression:
		g.generateArrayAssign(s, target)
	default:
		g.fail("assignment to unsupported lvalue kind %T", s.Target)
	}
}

func (g *Generator) generateScalarAssign(target *ast.Identifier, value ast.Expression) {
	sym := g.resolve(target)
	g.generateExpression(value)

	switch {
	case sym == g.returnVar:
		// Assignment to the enclosing function's own name: the value
		// stays on TOS: RETURN picks it up (spec.md §4.6 Statements).
	case sym.IsVarParam:
		g.emit("PUSHL", itoa(sym.Offset))
		g.emit("SWAP")
		g.emit("STORE", "0")
	case g.isGlobal(sym):
		g.emit("STOREG", itoa(sym.Offset))
	default:
		g.emit("STOREL", itoa(sym.Offset))
	}
}

// generateArrayAssign implements the safe sequence of spec.md §4.6:
// evaluate the RHS into the pre-reserved temp, compute the element's
// address, reload the value, and STOREN.
func (g *Generator) generateArrayAssign(s *ast.AssignStatement, target *ast.ArrayAccessExpression) {
	temp, ok := g.tempOffsets[s]
	if !ok {
		g.fail("internal error: array assignment has no reserved temp slot")
		return
	}
	g.generateExpression(s.Value)
	g.emit("STOREL", itoa(temp))

	id, ok := target.Array.(*ast.Identifier)
	if !ok {
		g.fail("internal error: array assignment target is not an identifier base")
		return
	}
	sym := g.resolve(id)
	g.emitBaseAddress(sym)
	g.generateExpression(target.Index)
	if sym.LowerBound != 0 {
		g.emit("PUSHI", itoa(sym.LowerBound))
		g.emit("SUB")
	}
	g.emit("PUSHL", itoa(temp))
	g.emit("STOREN")
}

// generateIfStatement emits `cond; JZ else_or_end; then; [JUMP end;
// else_label; else_body]; end_label:` (spec.md §4.6 Statements, If).
func (g *Generator) generateIfStatement(s *ast.IfStatement) {
	g.generateExpression(s.Condition)
	if s.Else == nil {
		end := g.newLabel("ifend")
		g.emit("JZ", end)
		g.generateStatement(s.Then)
		g.emitLabel(end)
		return
	}
	elseLabel := g.newLabel("ifelse")
	end := g.newLabel("ifend")
	g.emit("JZ", elseLabel)
	g.generateStatement(s.Then)
	g.emit("JUMP", end)
	g.emitLabel(elseLabel)
	g.generateStatement(s.Else)
	g.emitLabel(end)
}

// generateWhileStatement emits `start: cond; JZ end; body; JUMP start;
// end:` (spec.md §4.6 Statements, While).
func (g *Generator) generateWhileStatement(s *ast.WhileStatement) {
	start := g.newLabel("whilestart")
	end := g.newLabel("whileend")
	g.emitLabel(start)
	g.generateExpression(s.Condition)
	g.emit("JZ", end)
	g.generateStatement(s.Body)
	g.emit("JUMP", start)
	g.emitLabel(end)
}

// generateRepeatStatement emits `start: body; cond; JZ start` (spec.md
// §4.6 Statements, Repeat — the until-guard continues the loop while
// false).
func (g *Generator) generateRepeatStatement(s *ast.RepeatStatement) {
	start := g.newLabel("repeatstart")
	g.emitLabel(start)
	for _, st := range s.Body {
		g.generateStatement(st)
	}
	g.generateExpression(s.Condition)
	g.emit("JZ", start)
}

// generateForStatement implements spec.md §4.6 Statements, For: the
// end-bound is evaluated once into its reserved temp, the control
// variable is initialized from the start expression, and each iteration
// compares against the stored bound with INFEQ (TO) or SUPEQ (DOWNTO)
// before stepping the control variable by 1.
func (g *Generator) generateForStatement(s *ast.ForStatement) {
	temp, ok := g.tempOffsets[s]
	if !ok {
		g.fail("internal error: for statement has no reserved temp slot")
		return
	}
	sym := g.resolve(s.Control)

	g.generateExpression(s.End)
	g.emit("STOREL", itoa(temp))
	g.generateExpression(s.Start)
	g.storeScalar(sym)

	check := g.newLabel("forcheck")
	end := g.newLabel("forend")
	g.emitLabel(check)
	g.loadScalar(sym)
	g.emit("PUSHL", itoa(temp))
	if s.Downto {
		g.emit("SUPEQ")
	} else {
		g.emit("INFEQ")
	}
	g.emit("JZ", end)
	g.generateStatement(s.Body)
	g.loadScalar(sym)
	g.emit("PUSHI", "1")
	if s.Downto {
		g.emit("SUB")
	} else {
		g.emit("ADD")
	}
	g.storeScalar(sym)
	g.emit("JUMP", check)
	g.emitLabel(end)
}

// storeScalar/loadScalar address a FOR control variable (always a plain
// variable or value parameter per the semantic checker's eligibility
// rule — never a VAR parameter or array).
func (g *Generator) storeScalar(sym *semantic.Symbol) {
	if g.isGlobal(sym) {
		g.emit("STOREG", itoa(sym.Offset))
	} else {
		g.emit("STOREL", itoa(sym.Offset))
	}
}

func (g *Generator) loadScalar(sym *semantic.Symbol) {
	if g.isGlobal(sym) {
		g.emit("PUSHG", itoa(sym.Offset))
	} else {
		g.emit("PUSHL", itoa(sym.Offset))
	}
}

// generateIOStatement implements spec.md §4.6 "I/O statements": write
// and writeln are the built-in writeln expansion; read and readln emit
// READ per argument, convert by target type, then store through the
// target the same way assignment would.
func (g *Generator) generateIOStatement(s *ast.IOStatement) {
	switch s.Operation {
	case ast.IOWrite, ast.IOWriteln:
		for _, arg := range s.Args {
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
		if s.Operation == ast.IOWriteln {
			g.emit("WRITELN")
		}
	case ast.IORead, ast.IOReadln:
		for _, arg := range s.Args {
			g.generateReadInto(arg)
		}
	}
}

func (g *Generator) generateReadInto(target ast.Expression) {
	arrayTarget, isArray := target.(*ast.ArrayAccessExpression)

	// An array-element target's scratch slot was already reserved in the
	// enclosing block's batch pass (reserveTemps/collectTempSites), the
	// same way generateArrayAssign's is — never allocated here, or a
	// read inside a loop body would re-reserve a slot every iteration.
	var temp int
	if isArray {
		var ok bool
		temp, ok = g.tempOffsets[target]
		if !ok {
			g.fail("internal error: array-element read target has no reserved temp slot")
			return
		}
	}

	g.emit("READ")
	switch g.determineExpressionType(target) {
	case "integer":
		g.emit("ATOI")
	case "real":
		g.emit("ATOF")
	}

	switch t := target.(type) {
	case *ast.Identifier:
		sym := g.resolve(t)
		switch {
		case sym.IsVarParam:
			g.emit("PUSHL", itoa(sym.Offset))
			g.emit("SWAP")
			g.emit("STORE", "0")
		case g.isGlobal(sym):
			g.emit("STOREG", itoa(sym.Offset))
		default:
			g.emit("STOREL", itoa(sym.Offset))
		}
	case *ast.ArrayAccessExpression:
		id, ok := arrayTarget.Array.(*ast.Identifier)
		if !ok {
			g.fail("internal error: read target array base is not an identifier")
			return
		}
		sym := g.resolve(id)
		g.emit("STOREL", itoa(temp))
		g.emitBaseAddress(sym)
		g.generateExpression(t.Index)
		if sym.LowerBound != 0 {
			g.emit("PUSHI", itoa(sym.LowerBound))
			g.emit("SUB")
		}
		g.emit("PUSHL", itoa(temp))
		g.emit("STOREN")
	default:
		g.fail("reference argument is not an identifier or array element")
	}
}
