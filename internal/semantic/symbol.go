// Package semantic builds the lexically nested symbol table shared by
// the checker and the code generator, and performs the single-pass
// identifier/arity checking described in spec.md §4.3-§4.4.
package semantic

// Kind classifies what a Symbol denotes (spec.md §3.3).
type Kind int

const (
	KindVariable Kind = iota
	KindConstant
	KindParameter
	KindFunction
	KindProcedure
	KindProgramParam
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	case KindParameter:
		return "parameter"
	case KindFunction:
		return "function"
	case KindProcedure:
		return "procedure"
	case KindProgramParam:
		return "program_param"
	}
	return "unknown"
}

// Symbol is one entry in a SymbolTable. Its Offset/Label/Builtin fields
// are alternatives for the "address-or-offset slot" spec.md §3.3
// describes: offset for variables/parameters, label for subprograms,
// the BUILTIN_<NAME> sentinel for built-ins.
type Symbol struct {
	Name    string // canonical (lowercase) name, the table key
	Display string // original spelling, for diagnostics
	Type    string // "integer", "real", "boolean", "char", "string", or a user type name
	Kind    Kind

	Offset     int
	Label      string
	Builtin    string
	ScopeLevel int
	IsVarParam bool
	Value      interface{} // compile-time constant value

	IsArray    bool
	LowerBound int
	ElemCount  int
	ElemType   string

	Params     []*Symbol
	ReturnType string
}

// IsCallable reports whether the symbol can appear as a call target.
func (s *Symbol) IsCallable() bool {
	return s.Kind == KindFunction || s.Kind == KindProcedure
}

// IsBuiltin reports whether the symbol resolves to an inlined built-in
// rather than a CALL to user code.
func (s *Symbol) IsBuiltin() bool {
	return s.Builtin != ""
}
