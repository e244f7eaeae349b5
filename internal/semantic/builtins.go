package semantic

import (
	"fmt"
	"strings"
)

// builtinSignature describes one built-in's parameter types and return
// type. An empty returnType marks a procedure (writeln).
type builtinSignature struct {
	name       string
	returnType string
	params     []string
}

// builtinSignatures is the fixed built-in set from spec.md §4.3.
var builtinSignatures = []builtinSignature{
	{"writeln", "", nil},
	{"length", "integer", []string{"string"}},
	{"uppercase", "string", []string{"string"}},
	{"lowercase", "string", []string{"string"}},
	{"abs", "integer", []string{"integer"}},
	{"sqr", "integer", []string{"integer"}},
	{"sqrt", "real", []string{"integer"}},
	{"pred", "integer", []string{"integer"}},
	{"succ", "integer", []string{"integer"}},
	{"ord", "integer", []string{"char"}},
	{"chr", "char", []string{"integer"}},
	{"sin", "real", []string{"real"}},
	{"cos", "real", []string{"real"}},
}

// RegisterBuiltins injects the built-in procedure/function set into
// root, guarded by a one-shot flag so repeated calls are no-ops
// (spec.md §4.3 "registered idempotently"; §8 invariant 5).
func RegisterBuiltins(root *SymbolTable) {
	if *root.builtinsRegistered {
		return
	}
	for _, sig := range builtinSignatures {
		kind := KindFunction
		if sig.returnType == "" {
			kind = KindProcedure
		}
		var params []*Symbol
		for i, pt := range sig.params {
			params = append(params, &Symbol{
				Name: fmt.Sprintf("arg%d", i),
				Type: pt,
				Kind: KindParameter,
			})
		}
		root.Define(&Symbol{
			Name:       sig.name,
			Display:    sig.name,
			Kind:       kind,
			Builtin:    "BUILTIN_" + strings.ToUpper(sig.name),
			ReturnType: sig.returnType,
			Params:     params,
		})
	}
	*root.builtinsRegistered = true
}
