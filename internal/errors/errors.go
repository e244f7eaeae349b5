// Package errors provides uniform diagnostic formatting for every
// compiler stage: source-line extraction, a caret under the offending
// column, and aggregation of multiple errors into one report. Grounded
// on the teacher's own internal/errors package, restructured around a
// small header/body/caret composition instead of one long Format body.
package errors

import (
	"fmt"
	"strings"

	"github.com/guedes674/pas2vm/pkg/token"
)

// CompilerError pairs a diagnostic message with the source position and
// file it came from, so it can be rendered with context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a CompilerError.
func New(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

const (
	ansiCaret = "\033[1;31m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// paint wraps s in the given ANSI code (and a reset) when enabled is
// true, and returns s unchanged otherwise.
func paint(s, code string, enabled bool) string {
	if !enabled {
		return s
	}
	return code + s + ansiReset
}

// header renders the "Error in file:line:col" (or, without a filename,
// "Error at line:col") line that opens every rendering of e.
func (e *CompilerError) header() string {
	if e.File == "" {
		return fmt.Sprintf("Error at line %d:%d", e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("Error in %s:%d:%d", e.File, e.Pos.Line, e.Pos.Column)
}

// excerpt renders the offending source line and a caret line beneath
// it, or "" if no source text was attached to e.
func (e *CompilerError) excerpt(color bool) string {
	line := e.sourceLine(e.Pos.Line)
	if line == "" {
		return ""
	}

	gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
	col := e.Pos.Column - 1
	if col < 0 {
		col = 0
	}
	caret := strings.Repeat(" ", len(gutter)+col) + paint("^", ansiCaret, color)

	return gutter + line + "\n" + caret
}

// Format renders the error with a source-line excerpt and a caret
// pointing at the column. If color is true, ANSI codes highlight the
// caret and message.
func (e *CompilerError) Format(color bool) string {
	parts := []string{e.header()}
	if excerpt := e.excerpt(color); excerpt != "" {
		parts = append(parts, excerpt)
	}
	parts = append(parts, paint(e.Message, ansiBold, color))
	return strings.Join(parts, "\n")
}

// sourceLine returns the 1-indexed lineNum'th line of e.Source, or ""
// if there is no source attached or lineNum falls outside it.
func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	remaining := lineNum
	for _, line := range strings.Split(e.Source, "\n") {
		remaining--
		if remaining == 0 {
			return line
		}
	}
	return ""
}

// FormatErrors renders a batch of errors, numbering them when there is
// more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Format(color)
	}

	blocks := make([]string, len(errs))
	for i, e := range errs {
		blocks[i] = fmt.Sprintf("[Error %d of %d]\n%s", i+1, len(errs), e.Format(color))
	}

	banner := fmt.Sprintf("Compilation failed with %d error(s):", len(errs))
	return banner + "\n\n" + strings.Join(blocks, "\n\n")
}
