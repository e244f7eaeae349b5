package semantic

import "strings"

// SymbolTable is one lexical scope: a name-to-Symbol map, a back-pointer
// to the enclosing scope, and the two offset counters that allocate
// frame storage for this scope's locals and parameters (spec.md §3.3).
type SymbolTable struct {
	Name  string // scope name, for diagnostics ("global", "function foo")
	Outer *SymbolTable

	symbols map[string]*Symbol

	nextLocal int // allocate_local counter: starts at 0, grows
	nextParam int // allocate_param counter: starts at -1, shrinks

	builtinsRegistered *bool // shared one-shot flag, set on the root scope
}

// NewRootScope creates the sentinel "init" scope that owns the built-in
// registration flag (spec.md §3.3 "Lifecycle").
func NewRootScope() *SymbolTable {
	registered := false
	return &SymbolTable{
		Name:               "init",
		symbols:            make(map[string]*Symbol),
		nextParam:          -1,
		builtinsRegistered: &registered,
	}
}

// NewEnclosedScope creates a scope nested inside outer, sharing its
// built-in-registration flag.
func NewEnclosedScope(outer *SymbolTable, name string) *SymbolTable {
	return &SymbolTable{
		Name:               name,
		symbols:            make(map[string]*Symbol),
		Outer:              outer,
		nextParam:          -1,
		builtinsRegistered: outer.builtinsRegistered,
	}
}

// IsRoot reports whether st is the sentinel init scope.
func (st *SymbolTable) IsRoot() bool { return st.Outer == nil }

// Define inserts sym under its canonical (lowercase) name in this scope,
// overwriting any existing entry. Whether that overwrite should be
// diagnosed as a redefinition is the caller's concern (spec.md §4.3:
// silent in the init root, a warning elsewhere).
func (st *SymbolTable) Define(sym *Symbol) {
	st.symbols[sym.Name] = sym
}

// IsDeclaredLocally reports whether name is bound in this scope
// specifically, ignoring outer scopes.
func (st *SymbolTable) IsDeclaredLocally(name string) bool {
	_, ok := st.symbols[strings.ToLower(name)]
	return ok
}

// Lookup resolves name in this scope specifically, ignoring outer
// scopes, and returns the bound Symbol.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.symbols[strings.ToLower(name)]
	return sym, ok
}

// Resolve looks up name case-insensitively, walking outer scopes.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	key := strings.ToLower(name)
	if sym, ok := st.symbols[key]; ok {
		return sym, true
	}
	if st.Outer != nil {
		return st.Outer.Resolve(name)
	}
	return nil, false
}

// AllocateLocal returns the offset for a count-sized local allocation
// (count > 1 for arrays) and advances the counter.
func (st *SymbolTable) AllocateLocal(count int) int {
	off := st.nextLocal
	st.nextLocal += count
	return off
}

// AllocateParam returns the offset for the next parameter, allocated
// from -1 downward so that, once all of a parameter list's identifiers
// have been allocated back-to-front, the leftmost sits at the most
// negative offset (spec.md §4.3).
func (st *SymbolTable) AllocateParam() int {
	off := st.nextParam
	st.nextParam--
	return off
}
