package semantic

import (
	"fmt"

	"github.com/guedes674/pas2vm/internal/ast"
)

// SemanticError is raised on the first violation found while checking
// (spec.md §4.4, §7): undeclared identifier, call arity mismatch, a
// non-callable call target, or an ineligible FOR control variable.
type SemanticError struct {
	Message string
}

func (e *SemanticError) Error() string { return e.Message }

// Result is what a completed Check leaves behind for the code
// generator: the fully allocated global scope and the per-subprogram
// scopes built along the way, keyed by the declaring AST node so the
// generator resolves names through the same table the checker already
// populated rather than re-declaring them (spec.md's "the three
// subsystems share one ... symbol table"), plus the non-fatal
// redefinition warnings collected while declaring symbols.
type Result struct {
	Global   *SymbolTable
	Scopes   map[ast.Node]*SymbolTable
	Types    map[string]ast.TypeExpr
	Warnings []string
}

// Analyzer performs the single AST walk of spec.md §4.4.
type Analyzer struct {
	scope *SymbolTable

	scopes map[ast.Node]*SymbolTable
	types  map[string]ast.TypeExpr

	errors   []*SemanticError
	warnings []string
}

// NewAnalyzer creates an Analyzer with the init root scope (built-ins
// registered) and a fresh global scope as its child (spec.md §3.3
// "Lifecycle").
func NewAnalyzer() *Analyzer {
	root := NewRootScope()
	RegisterBuiltins(root)
	global := NewEnclosedScope(root, "global")
	return &Analyzer{
		scope:  global,
		scopes: make(map[ast.Node]*SymbolTable),
		types:  make(map[string]ast.TypeExpr),
	}
}

func (a *Analyzer) Errors() []*SemanticError { return a.errors }
func (a *Analyzer) failed() bool             { return len(a.errors) > 0 }
func (a *Analyzer) Warnings() []string       { return a.warnings }

func (a *Analyzer) fail(format string, args ...interface{}) {
	a.errors = append(a.errors, &SemanticError{Message: fmt.Sprintf(format, args...)})
}

func (a *Analyzer) warn(format string, args ...interface{}) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}

// Check walks prog and returns the scope tree it built, or nil once an
// error has been recorded.
func (a *Analyzer) Check(prog *ast.Program) *Result {
	global := a.scope
	for _, p := range prog.Header.Params {
		a.declare(&Symbol{Name: p.Canonical(), Display: p.Value, Kind: KindProgramParam, Type: "string"})
	}
	a.checkBlock(prog.Block)
	if a.failed() {
		return nil
	}
	return &Result{Global: global, Scopes: a.scopes, Types: a.types, Warnings: a.warnings}
}

// declare binds sym in the current scope. Redefinition in the same
// scope is a warning, not a failure, per the Open Question in spec.md
// §4.3/§9 — except in the sentinel init root scope, where the built-in
// registration guard (RegisterBuiltins) re-declares idempotently and a
// warning there would only be noise (original_source/src/anasem.py's
// `define` carries the same "global_init_phase" exception).
func (a *Analyzer) declare(sym *Symbol) {
	if a.scope.IsDeclaredLocally(sym.Name) && !a.scope.IsRoot() {
		a.warn("Warning: Redefining symbol '%s' in scope '%s'.", sym.Display, a.scope.Name)
	}
	a.scope.Define(sym)
}

func (a *Analyzer) checkBlock(block *ast.Block) {
	for _, decl := range block.Declarations {
		switch d := decl.(type) {
		case *ast.VarDecl:
			a.checkVarDecl(d)
		case *ast.ConstDecl:
			a.checkConstDecl(d)
		case *ast.TypeDecl:
			a.types[d.Name.Canonical()] = d.Type
		case *ast.FunctionDecl:
			a.checkFunctionDecl(d)
		case *ast.ProcedureDecl:
			a.checkProcedureDecl(d)
		}
		if a.failed() {
			return
		}
	}
	a.checkCompoundStatement(block.Statements)
}

func (a *Analyzer) checkVarDecl(d *ast.VarDecl) {
	t := a.typeExprToSymbolType(d.Type)
	resolved := a.resolveTypeExpr(d.Type)
	arr, isArray := resolved.(*ast.ArrayType)

	for _, name := range d.Names {
		sym := &Symbol{Name: name.Canonical(), Display: name.Value, Kind: KindVariable, Type: t}
		count := 1
		if isArray {
			if arr.Upper.Value < arr.Lower.Value {
				a.fail("array upper bound %d is less than lower bound %d", arr.Upper.Value, arr.Lower.Value)
				return
			}
			sym.IsArray = true
			sym.LowerBound = int(arr.Lower.Value)
			sym.ElemCount = int(arr.Upper.Value-arr.Lower.Value) + 1
			sym.ElemType = a.typeExprToSymbolType(arr.Element)
			count = sym.ElemCount
		}
		sym.Offset = a.scope.AllocateLocal(count)
		a.declare(sym)
	}
}

func (a *Analyzer) checkConstDecl(d *ast.ConstDecl) {
	t := a.checkExpression(d.Value)
	if a.failed() {
		return
	}
	sym := &Symbol{Name: d.Name.Canonical(), Display: d.Name.Value, Kind: KindConstant, Type: t}
	switch v := d.Value.(type) {
	case *ast.IntegerLiteral:
		sym.Value = v.Value
	case *ast.FloatLiteral:
		sym.Value = v.Value
	case *ast.StringLiteral:
		sym.Value = v.Value
	case *ast.BooleanLiteral:
		sym.Value = v.Value
	}
	a.declare(sym)
}

// declareParameters allocates FP offsets from the last parameter group
// to the first, last identifier to first, so the leftmost parameter
// ends up at the most-negative offset (spec.md §4.3 allocate_param).
func (a *Analyzer) declareParameters(groups []*ast.Parameter, scope *SymbolTable) []*Symbol {
	type flatParam struct {
		name  *ast.Identifier
		typ   ast.TypeExpr
		isVar bool
	}
	var flat []flatParam
	for _, g := range groups {
		for _, n := range g.Names {
			flat = append(flat, flatParam{n, g.Type, g.IsVar})
		}
	}

	symbols := make([]*Symbol, len(flat))
	for i := len(flat) - 1; i >= 0; i-- {
		fp := flat[i]
		sym := &Symbol{
			Name:       fp.name.Canonical(),
			Display:    fp.name.Value,
			Kind:       KindParameter,
			Type:       a.typeExprToSymbolType(fp.typ),
			IsVarParam: fp.isVar,
			Offset:     scope.AllocateParam(),
		}
		scope.Define(sym)
		symbols[i] = sym
	}
	return symbols
}

func (a *Analyzer) checkFunctionDecl(d *ast.FunctionDecl) {
	retType := a.typeExprToSymbolType(d.ReturnType)
	fnScope := NewEnclosedScope(a.scope, "function "+d.Name.Value)

	sym := &Symbol{Name: d.Name.Canonical(), Display: d.Name.Value, Kind: KindFunction, ReturnType: retType}
	sym.Params = a.declareParameters(d.Parameters, fnScope)
	a.declare(sym) // visible in the enclosing scope before the body, so recursion resolves
	a.scopes[d] = fnScope

	// The implicit return variable: the function's own name, bound as a
	// local inside its own scope (spec.md §4.4(d)).
	fnScope.Define(&Symbol{
		Name: d.Name.Canonical(), Display: d.Name.Value, Kind: KindVariable,
		Type: retType, Offset: fnScope.AllocateLocal(1),
	})

	outer := a.scope
	a.scope = fnScope
	a.checkBlock(d.Block)
	a.scope = outer
}

func (a *Analyzer) checkProcedureDecl(d *ast.ProcedureDecl) {
	procScope := NewEnclosedScope(a.scope, "procedure "+d.Name.Value)

	sym := &Symbol{Name: d.Name.Canonical(), Display: d.Name.Value, Kind: KindProcedure}
	sym.Params = a.declareParameters(d.Parameters, procScope)
	a.declare(sym)
	a.scopes[d] = procScope

	outer := a.scope
	a.scope = procScope
	a.checkBlock(d.Block)
	a.scope = outer
}

func (a *Analyzer) checkCompoundStatement(c *ast.CompoundStatement) {
	if c == nil {
		return
	}
	for _, st := range c.Statements {
		a.checkStatement(st)
		if a.failed() {
			return
		}
	}
}

func (a *Analyzer) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CompoundStatement:
		a.checkCompoundStatement(s)
	case *ast.AssignStatement:
		a.checkExpression(s.Target)
		if a.failed() {
			return
		}
		a.checkExpression(s.Value)
	case *ast.IfStatement:
		a.checkExpression(s.Condition)
		if a.failed() {
			return
		}
		a.checkStatement(s.Then)
		if a.failed() || s.Else == nil {
			return
		}
		a.checkStatement(s.Else)
	case *ast.WhileStatement:
		a.checkExpression(s.Condition)
		if a.failed() {
			return
		}
		a.checkStatement(s.Body)
	case *ast.RepeatStatement:
		for _, st := range s.Body {
			a.checkStatement(st)
			if a.failed() {
				return
			}
		}
		a.checkExpression(s.Condition)
	case *ast.ForStatement:
		a.checkForStatement(s)
	case *ast.IOStatement:
		for _, arg := range s.Args {
			a.checkExpression(arg)
			if a.failed() {
				return
			}
		}
	case *ast.CallStatement:
		a.checkCall(s.Call)
	case *ast.EmptyStatement:
		// nothing to check
	default:
		a.fail("internal error: unhandled statement type %T", stmt)
	}
}

func (a *Analyzer) checkForStatement(s *ast.ForStatement) {
	sym, ok := a.scope.Resolve(s.Control.Canonical())
	if !ok {
		a.fail("undeclared identifier '%s'", s.Control.Value)
		return
	}
	ineligible := sym.IsArray ||
		(sym.Kind != KindVariable && sym.Kind != KindParameter) ||
		(sym.Kind == KindParameter && sym.IsVarParam)
	if ineligible {
		a.fail("'%s' is not eligible as a FOR control variable", s.Control.Value)
		return
	}
	a.checkExpression(s.Start)
	if a.failed() {
		return
	}
	a.checkExpression(s.End)
	if a.failed() {
		return
	}
	a.checkStatement(s.Body)
}

// checkExpression resolves identifiers and calls, returning the
// expression's semantic type where it can be determined cheaply. Full
// type-directed decisions are deferred to code generation (spec.md
// §4.4, §4.5).
func (a *Analyzer) checkExpression(expr ast.Expression) string {
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
		sym, ok := a.scope.Resolve(e.Canonical())
		if !ok {
			a.fail("undeclared identifier '%s'", e.Value)
			return ""
		}
		return sym.Type
	case *ast.BinaryExpression:
		lt := a.checkExpression(e.Left)
		if a.failed() {
			return ""
		}
		rt := a.checkExpression(e.Right)
		if a.failed() {
			return ""
		}
		return binaryResultType(e.Operator, lt, rt)
	case *ast.UnaryExpression:
		return a.checkExpression(e.Operand)
	case *ast.ArrayAccessExpression:
		baseType := a.checkExpression(e.Array)
		if a.failed() {
			return ""
		}
		a.checkExpression(e.Index)
		if a.failed() {
			return ""
		}
		if id, ok := e.Array.(*ast.Identifier); ok {
			if sym, ok := a.scope.Resolve(id.Canonical()); ok && sym.IsArray {
				return sym.ElemType
			}
		}
		return baseType
	case *ast.FieldAccessExpression:
		a.checkExpression(e.Record)
		return ""
	case *ast.CallExpression:
		return a.checkCall(e)
	default:
		a.fail("internal error: unhandled expression type %T", expr)
		return ""
	}
}

func (a *Analyzer) checkCall(call *ast.CallExpression) string {
	sym, ok := a.scope.Resolve(call.Name.Canonical())
	if !ok {
		a.fail("undeclared identifier '%s'", call.Name.Value)
		return ""
	}
	if !sym.IsCallable() {
		a.fail("'%s' is not a function or procedure", call.Name.Value)
		return ""
	}
	if sym.Builtin != "BUILTIN_WRITELN" && len(call.Arguments) != len(sym.Params) {
		a.fail("'%s' expects %d argument(s), got %d", call.Name.Value, len(sym.Params), len(call.Arguments))
		return sym.ReturnType
	}
	for _, arg := range call.Arguments {
		a.checkExpression(arg)
		if a.failed() {
			return sym.ReturnType
		}
	}
	return sym.ReturnType
}

// binaryResultType mirrors codegen's determine_expression_type rule for
// binary operations (spec.md §4.5): '/' is always real; otherwise
// integer unless either side is real.
func binaryResultType(op, left, right string) string {
	switch op {
	case "/":
		return "real"
	case "=", "<>", "<", ">", "<=", ">=", "and", "or", "andthen", "orelse", "in":
		return "boolean"
	}
	if left == "real" || right == "real" {
		return "real"
	}
	return "integer"
}
