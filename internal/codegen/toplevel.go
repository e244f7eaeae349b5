package codegen

import "github.com/guedes674/pas2vm/internal/ast"

// generateProgram implements the top-level emission order of spec.md
// §4.6: pre-START global allocation, START, declarations and
// subprogram bodies reachable only via a skip-jump, the program body,
// then STOP.
func (g *Generator) generateProgram(prog *ast.Program) {
	g.reserveLocals(prog.Block)
	g.emit("START")
	g.generateBody(prog.Block, "mainLabel_")
	g.emit("STOP")
}

// reserveLocals walks a block's declaration list once, reserving frame
// storage for every scalar/array variable declared directly in it. At
// the program level this is the pre-START global allocation of spec.md
// §4.6 step 1; inside a function/procedure body the same pushes run
// every call, immediately after the entry label, to build that
// invocation's local frame. Each Symbol's offset was already assigned
// during semantic checking (internal/semantic.Analyzer); this pass only
// emits the initializing instruction.
func (g *Generator) reserveLocals(block *ast.Block) {
	for _, decl := range block.Declarations {
		v, ok := decl.(*ast.VarDecl)
		if !ok {
			continue
		}
		for _, name := range v.Names {
			sym, ok := g.scope.Resolve(name.Value)
			if !ok {
				g.fail("internal error: variable '%s' was not declared during checking", name.Value)
			}
			if sym.IsArray {
				g.emit("PUSHN", itoa(sym.ElemCount))
			} else {
				g.emit("PUSHI", "0")
			}
		}
	}
}

// reserveTemps pre-allocates one frame slot, up front, for every
// compiler-introduced temporary a block's statement tree will need: a
// FOR loop's stored end-bound, an array-element assignment's scratch
// slot, and a read/readln argument that targets an array element
// (spec.md §4.6 Statements). Reserving them in a batch here — rather
// than pushing at first use — keeps every later STOREL mid-statement a
// plain one-value overwrite of an already-grown frame, instead of
// racing a value already sitting on TOS, and ensures the reservation
// itself runs once per call site rather than once per loop iteration.
// The offsets are recorded by AST node for
// generateForStatement/generateArrayAssign/generateReadInto to retrieve
// later in the same walk.
func (g *Generator) reserveTemps(c *ast.CompoundStatement) {
	for _, node := range collectTempSites(c) {
		g.tempOffsets[node] = g.scope.AllocateLocal(1)
		g.emit("PUSHI", "0")
	}
}

// collectTempSites walks a statement tree, in execution order, and
// returns every node that will need a temp slot: ForStatement (its
// end-bound), an AssignStatement targeting an array element (its
// store-reload scratch), and each read/readln argument that targets an
// array element (its own store-reload scratch, keyed per argument
// expression so a single `read(a[i], b[j])` call reserves two
// independent slots). It does not descend into nested
// function/procedure declarations — those bodies reserve their own
// temps against their own frame.
func collectTempSites(stmt ast.Statement) []ast.Node {
	var sites []ast.Node
	var walk func(ast.Statement)
	walk = func(s ast.Statement) {
		switch st := s.(type) {
		case *ast.CompoundStatement:
			for _, inner := range st.Statements {
				walk(inner)
			}
		case *ast.AssignStatement:
			if _, ok := st.Target.(*ast.ArrayAccessExpression); ok {
				sites = append(sites, st)
			}
		case *ast.IfStatement:
			walk(st.Then)
			if st.Else != nil {
				walk(st.Else)
			}
		case *ast.WhileStatement:
			walk(st.Body)
		case *ast.RepeatStatement:
			for _, inner := range st.Body {
				walk(inner)
			}
		case *ast.ForStatement:
			sites = append(sites, st)
			walk(st.Body)
		case *ast.IOStatement:
			if st.Operation != ast.IORead && st.Operation != ast.IOReadln {
				return
			}
			for _, arg := range st.Args {
				if _, ok := arg.(*ast.ArrayAccessExpression); ok {
					sites = append(sites, arg)
				}
			}
		}
	}
	walk(stmt)
	return sites
}

// generateBody emits a block's nested subprogram bodies (protected by a
// jump so control never falls into them) followed by the block's own
// compound statement under the jump's target label. Used both for the
// program body and for every function/procedure body, since nesting
// subprograms inside subprograms needs the same protection (spec.md §1
// "nested subprograms").
func (g *Generator) generateBody(block *ast.Block, labelPrefix string) {
	var subprograms []ast.Declaration
	for _, decl := range block.Declarations {
		switch decl.(type) {
		case *ast.FunctionDecl, *ast.ProcedureDecl:
			subprograms = append(subprograms, decl)
		}
	}

	if len(subprograms) > 0 {
		entryLabel := g.newLabel(labelPrefix)
		g.emit("JUMP", entryLabel)
		for _, decl := range subprograms {
			g.generateSubprogram(decl)
		}
		g.emitLabel(entryLabel)
	}
	g.reserveTemps(block.Statements)
	g.generateCompoundStatement(block.Statements)
}

// generateSubprogram emits one function or procedure body under its own
// label, assigning that label to the already-resolved Symbol so call
// sites visited elsewhere in the same walk pick it up (spec.md §4.6
// step 3).
func (g *Generator) generateSubprogram(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		sym, ok := g.scope.Resolve(d.Name.Value)
		if !ok {
			g.fail("internal error: function '%s' was not declared during checking", d.Name.Value)
		}
		sym.Label = g.newLabel("func" + d.Name.Canonical() + "_")
		g.emitLabel(sym.Label)

		outer := g.scope
		g.scope = g.result.Scopes[decl]
		outerReturn := g.returnVar
		g.returnVar, _ = g.scope.Resolve(d.Name.Value)
		g.reserveLocals(d.Block)
		g.generateBody(d.Block, "func"+d.Name.Canonical()+"main_")
		g.returnVar = outerReturn
		g.scope = outer
		g.emit("RETURN")

	case *ast.ProcedureDecl:
		sym, ok := g.scope.Resolve(d.Name.Value)
		if !ok {
			g.fail("internal error: procedure '%s' was not declared during checking", d.Name.Value)
		}
		sym.Label = g.newLabel("proc" + d.Name.Canonical() + "_")
		g.emitLabel(sym.Label)

		outer := g.scope
		g.scope = g.result.Scopes[decl]
		outerReturn := g.returnVar
		g.returnVar = nil
		g.reserveLocals(d.Block)
		g.generateBody(d.Block, "proc"+d.Name.Canonical()+"main_")
		g.returnVar = outerReturn
		g.scope = outer
		g.emit("RETURN")
	}
}
