// Package errx is the interpreter's shared error taxonomy: every stage
// (lexer, parser, semantic analyzer, evaluator) reports failures as a
// *Diagnostic wrapped in a stage-specific error type, all sharing one
// `[weak.<kind>]: <detail>` rendering plus an optional source-line-and-
// caret display (§7). Grounded on the teacher's internal/errors package
// (CompilerError, Format(color bool), FromStringErrors), scaled down from
// its multi-error batch reporting to this language's single-error-per-stage
// model.
package errx

import (
	"fmt"
	"strings"

	"github.com/weak-lang/weak/internal/token"
)

// Kind names which pipeline stage raised a Diagnostic.
type Kind string

// §7 fixes these four abbreviations as the exact `<kind>` text in the
// `[weak.<kind>]: <detail>` diagnostic header.
const (
	Lexical  Kind = "lex"
	Parse    Kind = "parse"
	Semantic Kind = "sema"
	Runtime  Kind = "eval"
)

// Diagnostic is a single positioned failure.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string // full source text the error occurred in, for caret display
	File    string
}

// New builds a Diagnostic. source and file may be empty when unavailable
// (e.g. a REPL line with no backing file).
func New(kind Kind, pos token.Position, source, file, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface with the one-line `[weak.<kind>]:
// <detail>` header required by §7.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[weak.%s]: %s", d.Kind, d.Message)
}

// Format renders the diagnostic with a source-line-and-caret display
// beneath the header, the way the teacher's CompilerError.Format does,
// minus ANSI color (the CLI layer adds that separately when it wants it).
func (d *Diagnostic) Format() string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s: %s:%d:%d\n", d.Error(), d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s: line %d:%d\n", d.Error(), d.Pos.Line, d.Pos.Column)
	}

	line := sourceLine(d.Source, d.Pos.Line)
	if line == "" {
		return strings.TrimSuffix(sb.String(), "\n")
	}

	prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
	sb.WriteString("^")

	return sb.String()
}

func sourceLine(source string, n int) string {
	if source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// LexicalError is raised by internal/lexer: malformed literals, unknown
// operators, unresolvable `load` targets.
type LexicalError struct{ *Diagnostic }

// NewLexicalError wraps a Diagnostic as a LexicalError.
func NewLexicalError(pos token.Position, source, file, format string, args ...any) *LexicalError {
	return &LexicalError{New(Lexical, pos, source, file, format, args...)}
}

// ParseError is raised by internal/parser: grammar violations.
type ParseError struct{ *Diagnostic }

// NewParseError wraps a Diagnostic as a ParseError.
func NewParseError(pos token.Position, source, file, format string, args ...any) *ParseError {
	return &ParseError{New(Parse, pos, source, file, format, args...)}
}

// SemanticError is raised by internal/semantic: shape violations caught
// before evaluation.
type SemanticError struct{ *Diagnostic }

// NewSemanticError wraps a Diagnostic as a SemanticError.
func NewSemanticError(pos token.Position, source, file, format string, args ...any) *SemanticError {
	return &SemanticError{New(Semantic, pos, source, file, format, args...)}
}

// RuntimeError is raised by internal/evaluator: failures only observable
// at evaluation time (unbound variable, arity mismatch, out-of-bounds
// index, division by zero).
type RuntimeError struct{ *Diagnostic }

// NewRuntimeError wraps a Diagnostic as a RuntimeError.
func NewRuntimeError(pos token.Position, source, file, format string, args ...any) *RuntimeError {
	return &RuntimeError{New(Runtime, pos, source, file, format, args...)}
}
