package semantic

import "github.com/guedes674/pas2vm/internal/ast"

var scalarAliases = map[string]string{
	"integer": "integer", "byte": "integer", "word": "integer",
	"longint": "integer", "shortint": "integer",
	"real": "real", "single": "real", "double": "real",
	"extended": "real", "comp": "real", "currency": "real",
	"boolean": "boolean",
	"char":    "char",
	"string":  "string",
}

func isScalarTypeName(name string) bool {
	_, ok := scalarAliases[name]
	return ok
}

// normalizeTypeName collapses the Pascal numeric aliases onto integer or
// real (spec.md §3.2); boolean, char, string and user type names are
// returned unchanged.
func normalizeTypeName(name string) string {
	if canon, ok := scalarAliases[name]; ok {
		return canon
	}
	return name
}

// resolveTypeExpr follows a chain of user TYPE aliases down to the
// scalar, array, or record type they ultimately name.
func (a *Analyzer) resolveTypeExpr(t ast.TypeExpr) ast.TypeExpr {
	for {
		nt, ok := t.(*ast.NamedType)
		if !ok {
			return t
		}
		if isScalarTypeName(nt.Name) {
			return t
		}
		under, ok := a.types[nt.Name]
		if !ok {
			return t
		}
		t = under
	}
}

// typeExprToSymbolType resolves t through any user type aliases and
// reduces it to the semantic type string a Symbol carries: a scalar
// name, "array", or "record".
func (a *Analyzer) typeExprToSymbolType(t ast.TypeExpr) string {
	if t == nil {
		return ""
	}
	switch rt := a.resolveTypeExpr(t).(type) {
	case *ast.NamedType:
		return normalizeTypeName(rt.Name)
	case *ast.ArrayType:
		return "array"
	case *ast.RecordType:
		return "record"
	}
	return ""
}
