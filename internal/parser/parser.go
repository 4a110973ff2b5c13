// Package parser implements the recursive-descent parser: token sequence
// to AST (§4.2). Grounded on the teacher's internal/parser cursor-based
// helper vocabulary (current()/peek()/require()) and on
// original_source/src/parser/parser.cpp for the base grammar shape
// (primary/block/if/while/for/function-declare/define-type productions),
// extended to the fuller precedence ladder spec.md §4.2 asks for
// (assignment < comparison < bitwise/logical < shift < additive <
// multiplicative < unary < postfix) rather than the original's flatter
// additive/multiplicative-then-one-flat-binary() grammar; see
// SPEC_FULL.md's "Operator precedence floor" note and DESIGN.md.
package parser

import (
	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/errx"
	"github.com/weak-lang/weak/internal/token"
)

// Parser consumes a token sequence produced by internal/lexer and
// produces an *ast.Node Block standing in for the program's root (§2:
// "a root node containing an ordered sequence of top-level expressions").
type Parser struct {
	tokens []token.Token
	pos    int
	source string
	file   string
}

// New constructs a Parser over tokens. source and file are only used to
// decorate ParseErrors with a source line and file name.
func New(tokens []token.Token, source, file string) *Parser {
	return &Parser{tokens: tokens, source: source, file: file}
}

// Parse consumes the entire token sequence and returns the program root.
func (p *Parser) Parse() (*ast.Node, error) {
	var statements []*ast.Node
	for !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return ast.NewBlock(token.Position{}, statements), nil
}

func (p *Parser) current() token.Token { return p.tokens[p.pos] }

func (p *Parser) atEOF() bool { return p.current().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(kind token.Kind) bool { return p.current().Kind == kind }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) require(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errf(p.current().Pos, "%s expected, got %s", kind, p.current().Kind)
}

func (p *Parser) errf(pos token.Position, format string, args ...any) error {
	return errx.NewParseError(pos, p.source, p.file, format, args...)
}

// parseStatement implements the `statement := lambda-decl | type-decl |
// block | expr ";"` production, applying the policy that block-valued
// statements (if/while/for/lambda) never require a trailing `;` while an
// expression statement always does.
func (p *Parser) parseStatement() (*ast.Node, error) {
	switch p.current().Kind {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.FUN:
		return p.parseLambdaDecl()
	case token.DEFINE_TYPE:
		return p.parseTypeDecl()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.require(token.SEMICOLON); err != nil {
			return nil, err
		}
		return expr, nil
	}
}

func (p *Parser) parseBlock() (*ast.Node, error) {
	open, err := p.require(token.LBRACE)
	if err != nil {
		return nil, err
	}
	var statements []*ast.Node
	for !p.check(token.RBRACE) {
		if p.atEOF() {
			return nil, p.errf(p.current().Pos, "`}` expected, got %s", p.current().Kind)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.require(token.RBRACE); err != nil {
		return nil, err
	}
	return ast.NewBlock(open.Pos, statements), nil
}

func (p *Parser) parseIf() (*ast.Node, error) {
	start := p.advance().Pos // `if`
	if _, err := p.require(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.require(token.RPAREN); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock *ast.Node
	if p.match(token.ELSE) {
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(start, cond, thenBlock, elseBlock), nil
}

func (p *Parser) parseWhile() (*ast.Node, error) {
	start := p.advance().Pos // `while`
	if _, err := p.require(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.require(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(start, cond, body), nil
}

// parseFor implements the C-style loop, accepting any of init/cond/step
// as empty (denoted by a bare `;` or the closing `)`).
func (p *Parser) parseFor() (*ast.Node, error) {
	start := p.advance().Pos // `for`
	if _, err := p.require(token.LPAREN); err != nil {
		return nil, err
	}

	var init, cond, step *ast.Node
	var err error

	if !p.check(token.SEMICOLON) {
		if init, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.require(token.SEMICOLON); err != nil {
		return nil, err
	}

	if !p.check(token.SEMICOLON) {
		if cond, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.require(token.SEMICOLON); err != nil {
		return nil, err
	}

	if !p.check(token.RPAREN) {
		if step, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.require(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(start, init, cond, step, body), nil
}

func (p *Parser) parseLambdaDecl() (*ast.Node, error) {
	start := p.advance().Pos // `fun`
	name, err := p.require(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.require(token.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.Node
	if !p.check(token.RPAREN) {
		for {
			tok, err := p.require(token.IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.NewSymbol(tok.Pos, tok.Lexeme))
			if p.match(token.COMMA) {
				continue
			}
			break
		}
	}
	if _, err := p.require(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewLambda(start, name.Lexeme, params, body), nil
}

func (p *Parser) parseTypeDecl() (*ast.Node, error) {
	start := p.advance().Pos // `define-type`
	name, err := p.require(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.require(token.LPAREN); err != nil {
		return nil, err
	}

	var fields []string
	if !p.check(token.RPAREN) {
		for {
			tok, err := p.require(token.IDENT)
			if err != nil {
				return nil, err
			}
			fields = append(fields, tok.Lexeme)
			if p.match(token.COMMA) {
				continue
			}
			break
		}
	}
	if _, err := p.require(token.RPAREN); err != nil {
		return nil, err
	}

	return ast.NewTypeDefinition(start, name.Lexeme, fields), nil
}
