// Package lexer turns source text into a token sequence and resolves
// `load` inclusions (§4.1). Grounded on the teacher's internal/lexer
// (struct shape: position/readPosition/ch, functional LexerOption,
// UTF-8-aware rune scanning) and on original_source/src/lexer/lexer.cpp
// for the digit/symbol/string/operator scanning rules and the
// longest-match-with-one-byte-backoff operator algorithm.
package lexer

import (
	"unicode/utf8"

	"github.com/weak-lang/weak/internal/errx"
	"github.com/weak-lang/weak/internal/token"
)

// SourceResolver resolves a `load "path";` directive to the source text
// it names. The default filesystem implementation lives in
// internal/loader; tests and embedders may substitute their own (e.g. an
// in-memory map), which is the pluggable resolver spec.md §1 calls an
// out-of-core collaborator.
type SourceResolver interface {
	ResolveLoad(path string) (source string, resolvedName string, err error)
}

// Option configures a Lexer at construction, following the teacher's
// functional-options style (LexerOption).
type Option func(*Lexer)

// WithFile sets the file name attributed to tokens and diagnostics.
func WithFile(name string) Option {
	return func(l *Lexer) { l.file = name }
}

// WithResolver installs the resolver used for `load` directives. Without
// one, a `load` directive produces a LexicalError.
func WithResolver(r SourceResolver) Option {
	return func(l *Lexer) { l.resolver = r }
}

// withLoadStack propagates the set of files currently being loaded, so a
// recursive `load` chain can be detected. Internal: only spliceLoads'
// recursive lexing of a loaded file uses this; it is not exported because
// callers have no legitimate reason to seed it.
func withLoadStack(stack map[string]bool) Option {
	return func(l *Lexer) { l.loadStack = stack }
}

// Lexer scans one source file into tokens.
type Lexer struct {
	input        string
	file         string
	resolver     SourceResolver
	loadStack    map[string]bool
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
}

// New constructs a Lexer over input.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	if l.loadStack == nil {
		l.loadStack = make(map[string]bool)
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{File: l.file, Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) errf(pos token.Position, format string, args ...any) error {
	return errx.NewLexicalError(pos, l.input, l.file, format, args...)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool {
	return r == '_' || r == '?' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Tokenize scans the entire input, resolves every `load` directive it
// finds, and returns the final token sequence terminated by a single
// token.EOF.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	raw, err := l.scan()
	if err != nil {
		return nil, err
	}
	return l.spliceLoads(raw)
}

func (l *Lexer) scan() ([]token.Token, error) {
	var tokens []token.Token

	for {
		l.skipWhitespace()
		if l.ch == 0 {
			break
		}

		startPos := l.pos()

		switch {
		case isDigit(l.ch):
			tok, err := l.scanNumber(startPos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)

		case isAlpha(l.ch):
			tokens = append(tokens, l.scanSymbol(startPos))

		case l.ch == '"':
			tok, err := l.scanString(startPos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)

		default:
			tok, err := l.scanOperator(startPos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
	}

	tokens = append(tokens, token.Token{Kind: token.EOF, Pos: l.pos()})
	return tokens, nil
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
	if l.ch == '\n' {
		l.readChar()
		l.line++
		l.column = 0
		l.skipWhitespace()
	}
}

func (l *Lexer) scanNumber(start token.Position) (token.Token, error) {
	var text []rune
	dots := 0
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			dots++
		}
		text = append(text, l.ch)
		l.readChar()
	}
	if isAlpha(l.ch) {
		return token.Token{}, l.errf(start, "symbol can't start with digit")
	}
	if dots > 1 {
		return token.Token{}, l.errf(start, "extra \".\" detected")
	}
	if text[len(text)-1] == '.' {
		return token.Token{}, l.errf(start, "digit after \".\" expected")
	}
	lexeme := string(text)
	if dots == 1 {
		return token.Token{Kind: token.FLOAT, Lexeme: lexeme, Pos: start}, nil
	}
	return token.Token{Kind: token.INT, Lexeme: lexeme, Pos: start}, nil
}

func (l *Lexer) scanSymbol(start token.Position) token.Token {
	var text []rune
	for isAlpha(l.ch) || isDigit(l.ch) || l.ch == '-' {
		text = append(text, l.ch)
		l.readChar()
	}
	name := string(text)
	if kind, ok := token.Keywords[name]; ok {
		return token.Token{Kind: kind, Pos: start}
	}
	return token.Token{Kind: token.IDENT, Lexeme: name, Pos: start}
}

func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	l.readChar() // consume opening quote
	var text []rune
	for l.ch != '"' {
		if l.ch == 0 {
			return token.Token{}, l.errf(l.pos(), "closing '\"' expected")
		}
		if l.ch == '\\' {
			l.readChar()
			text = append(text, escapeRune(l.ch))
			l.readChar()
			continue
		}
		text = append(text, l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return token.Token{Kind: token.STRING, Lexeme: string(text), Pos: start}, nil
}

func escapeRune(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

// scanOperator applies longest match: grow the candidate lexeme one
// character at a time while the extended text is still a known operator,
// and stop, without consuming it, at the first character that would not
// extend it. token.Operators is prefix-closed, so every operator is
// reachable through its own prefixes.
func (l *Lexer) scanOperator(start token.Position) (token.Token, error) {
	candidate := string(l.ch)
	kind, ok := token.Operators[candidate]
	if !ok {
		return token.Token{}, l.errf(start, "unknown symbol: %q", l.ch)
	}
	l.readChar()

	for {
		next := candidate + string(l.ch)
		nextKind, ok := token.Operators[next]
		if !ok {
			break
		}
		candidate, kind = next, nextKind
		l.readChar()
	}

	return token.Token{Kind: kind, Pos: start}, nil
}

// spliceLoads scans tokens for the `load "path" ;` pattern and replaces
// each match, in place, with the token sequence produced by recursively
// lexing the named file (its trailing EOF dropped), per §4.1.
func (l *Lexer) spliceLoads(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind != token.LOAD {
			out = append(out, t)
			continue
		}

		if i+2 >= len(tokens) || tokens[i+1].Kind != token.STRING {
			return nil, l.errf(t.Pos, "string literal as file name required")
		}
		if tokens[i+2].Kind != token.SEMICOLON {
			return nil, l.errf(t.Pos, "`;` after load statement required")
		}

		path := tokens[i+1].Lexeme
		i += 2 // consume the string literal and semicolon along with `load`

		if l.resolver == nil {
			return nil, l.errf(t.Pos, "cannot open file: %s (no source resolver configured)", path)
		}

		source, resolvedName, err := l.resolver.ResolveLoad(path)
		if err != nil {
			return nil, l.errf(t.Pos, "cannot open file: %s: %v", path, err)
		}
		if l.loadStack[resolvedName] {
			return nil, l.errf(t.Pos, "cyclic load detected: %s", resolvedName)
		}

		childStack := make(map[string]bool, len(l.loadStack)+1)
		for k := range l.loadStack {
			childStack[k] = true
		}
		childStack[resolvedName] = true

		inner := New(source, WithFile(resolvedName), WithResolver(l.resolver), withLoadStack(childStack))
		innerTokens, err := inner.Tokenize()
		if err != nil {
			return nil, err
		}
		if len(innerTokens) > 0 && innerTokens[len(innerTokens)-1].Kind == token.EOF {
			innerTokens = innerTokens[:len(innerTokens)-1]
		}
		out = append(out, innerTokens...)
	}

	return out, nil
}
