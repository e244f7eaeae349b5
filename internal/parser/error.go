package parser

import (
	"fmt"

	"github.com/guedes674/pas2vm/pkg/token"
)

// ParseError is raised on the first grammar violation (spec.md §4.2).
// The parser does not attempt recovery: ParseProgram returns early once
// one has been recorded.
type ParseError struct {
	Message string
	Pos     token.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d", e.Message, e.Pos.Line)
}

func unexpectedTokenMessage(tok token.Token) string {
	return fmt.Sprintf("Syntax error at %s '%s'", tok.Type, tok.Literal)
}
