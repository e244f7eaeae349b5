// Package compiler wires the lexer, parser, semantic checker, and code
// generator into the single pipeline spec.md §2 describes: each stage
// aborts on its first error, and whatever errors a stage produced are
// handed back as a uniformly formatted batch (spec.md §7 propagation).
// Grounded on the teacher's cmd/dwscript/cmd/compile.go compileScript
// flow, generalized into a reusable function the CLI and tests share.
package compiler

import (
	"github.com/guedes674/pas2vm/internal/codegen"
	"github.com/guedes674/pas2vm/internal/errors"
	"github.com/guedes674/pas2vm/internal/lexer"
	"github.com/guedes674/pas2vm/internal/parser"
	"github.com/guedes674/pas2vm/internal/semantic"
	"github.com/guedes674/pas2vm/pkg/token"
)

// Compile runs source through the full pipeline and returns the emitted
// VM program text plus any non-fatal warnings the semantic checker
// collected along the way (spec.md §4.3's redefinition warning). On any
// stage's failure it returns the errors accumulated by that stage and no
// output. The parser, checker and generator each stop at their first
// error; the lexer records every illegal character it scans, and the
// parser's one-token lookahead can scan more than one before parsing
// stops, so a lexical failure may return several errors.
func Compile(source, filename string) (string, []string, []*errors.CompilerError) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		return "", nil, wrapLexErrors(lexErrs, source, filename)
	}
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		return "", nil, wrapParseErrors(parseErrs, source, filename)
	}

	analyzer := semantic.NewAnalyzer()
	result := analyzer.Check(program)
	if semErrs := analyzer.Errors(); len(semErrs) > 0 {
		return "", nil, wrapSemanticErrors(semErrs, source, filename)
	}
	warnings := analyzer.Warnings()

	gen := codegen.NewGenerator(result)
	out, err := gen.Generate(program)
	if err != nil {
		return "", warnings, []*errors.CompilerError{
			errors.New(token.Position{}, err.Error(), source, filename),
		}
	}
	return out, warnings, nil
}

func wrapLexErrors(errs []*lexer.LexError, source, filename string) []*errors.CompilerError {
	out := make([]*errors.CompilerError, len(errs))
	for i, e := range errs {
		out[i] = errors.New(e.Pos, e.Error(), source, filename)
	}
	return out
}

func wrapParseErrors(errs []*parser.ParseError, source, filename string) []*errors.CompilerError {
	out := make([]*errors.CompilerError, len(errs))
	for i, e := range errs {
		out[i] = errors.New(e.Pos, e.Message, source, filename)
	}
	return out
}

// wrapSemanticErrors has no source position to anchor on: the checker
// (internal/semantic.Analyzer) records a message only, not a token
// position, so these render without a source-line excerpt or caret.
func wrapSemanticErrors(errs []*semantic.SemanticError, source, filename string) []*errors.CompilerError {
	out := make([]*errors.CompilerError, len(errs))
	for i, e := range errs {
		out[i] = errors.New(token.Position{}, e.Error(), source, filename)
	}
	return out
}
