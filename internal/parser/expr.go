package parser

import (
	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/token"
)

// parseExpr is the entry point for the full precedence ladder (low to
// high): assignment, comparison, bitwise/logical, shift, additive,
// multiplicative, unary, postfix. Assignment is right-associative;
// everything else below it is left-associative, per §4.2.
func (p *Parser) parseExpr() (*ast.Node, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (*ast.Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.current().Kind.IsAssignment() {
		op := p.advance()
		right, err := p.parseAssignment() // right-associative
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(op.Pos, op.Kind, left, right), nil
	}
	return left, nil
}

func (p *Parser) parseComparison() (*ast.Node, error) {
	return p.parseLeftAssoc(p.parseBitwiseLogical, token.EQ, token.NOT_EQ, token.LT, token.LT_EQ, token.GT, token.GT_EQ)
}

func (p *Parser) parseBitwiseLogical() (*ast.Node, error) {
	return p.parseLeftAssoc(p.parseShift, token.AMP, token.PIPE, token.CARET, token.AMP_AMP, token.PIPE_PIPE)
}

func (p *Parser) parseShift() (*ast.Node, error) {
	return p.parseLeftAssoc(p.parseAdditive, token.SHL, token.SHR)
}

func (p *Parser) parseAdditive() (*ast.Node, error) {
	return p.parseLeftAssoc(p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultiplicative() (*ast.Node, error) {
	return p.parseLeftAssoc(p.parseUnary, token.STAR, token.SLASH, token.PERCENT)
}

// parseLeftAssoc folds next(<op>next)* into a left-associative Binary
// chain; it is shared by every left-associative precedence level.
func (p *Parser) parseLeftAssoc(next func() (*ast.Node, error), ops ...token.Kind) (*ast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.currentIsOneOf(ops...) {
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op.Pos, op.Kind, left, right)
	}
	return left, nil
}

func (p *Parser) currentIsOneOf(kinds ...token.Kind) bool {
	cur := p.current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// parseUnary implements `unary := ("-"|"!"|"++"|"--") primary` — the
// operand of a prefix operator is a primary, not a nested unary, matching
// §4.2's grammar sketch exactly.
func (p *Parser) parseUnary() (*ast.Node, error) {
	if p.currentIsOneOf(token.MINUS, token.BANG, token.INC, token.DEC) {
		op := p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(op.Pos, op.Kind, operand), nil
	}
	return p.parsePrimary()
}

// parsePrimary implements `primary := literal | symbol-use | unary |
// "(" expr ")" | if | while | for | array-lit | block`. `if`/`while`/
// `for`/`block` are reachable from any expression position (a condition,
// a call argument, a for-loop clause, an array element);
// internal/semantic rejects them where a value is required.
func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok := p.current()

	switch tok.Kind {
	case token.INT:
		p.advance()
		return parseIntLiteral(tok, p)
	case token.FLOAT:
		p.advance()
		return parseFloatLiteral(tok, p)
	case token.STRING:
		p.advance()
		return ast.NewString(tok.Pos, tok.Lexeme), nil
	case token.IDENT:
		return p.parseSymbolUse()
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.require(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.LBRACE:
		return p.parseBlock()
	case token.NEW:
		return p.parseTypeInstance()
	default:
		return nil, p.errf(tok.Pos, "unexpected token in expression: %s", tok.Kind)
	}
}

func parseIntLiteral(tok token.Token, p *Parser) (*ast.Node, error) {
	v, err := parseInt32(tok.Lexeme)
	if err != nil {
		return nil, p.errf(tok.Pos, "malformed integer literal: %s", tok.Lexeme)
	}
	return ast.NewInteger(tok.Pos, v), nil
}

func parseFloatLiteral(tok token.Token, p *Parser) (*ast.Node, error) {
	v, err := parseFloat64(tok.Lexeme)
	if err != nil {
		return nil, p.errf(tok.Pos, "malformed float literal: %s", tok.Lexeme)
	}
	return ast.NewFloat(tok.Pos, v), nil
}

// parseSymbolUse implements `symbol-use := IDENT ( "(" args ")" |
// "[" expr "]" | "." IDENT )?`.
func (p *Parser) parseSymbolUse() (*ast.Node, error) {
	name := p.advance() // IDENT

	switch p.current().Kind {
	case token.LPAREN:
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return ast.NewCall(name.Pos, name.Lexeme, args), nil

	case token.LBRACKET:
		p.advance()
		index, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.require(token.RBRACKET); err != nil {
			return nil, err
		}
		return ast.NewArrayIndex(name.Pos, name.Lexeme, index), nil

	case token.DOT:
		p.advance()
		field, err := p.require(token.IDENT)
		if err != nil {
			return nil, err
		}
		return ast.NewFieldAccess(name.Pos, name.Lexeme, field.Lexeme), nil

	default:
		return ast.NewSymbol(name.Pos, name.Lexeme), nil
	}
}

// parseArgList parses a parenthesized, comma-separated expr list with no
// trailing comma, shared by calls and `new` construction.
func (p *Parser) parseArgList() ([]*ast.Node, error) {
	if _, err := p.require(token.LPAREN); err != nil {
		return nil, err
	}
	var args []*ast.Node
	if p.check(token.RPAREN) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.match(token.COMMA) {
			continue
		}
		break
	}
	if _, err := p.require(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseArrayLiteral() (*ast.Node, error) {
	start := p.advance().Pos // `[`
	var elements []*ast.Node
	if p.check(token.RBRACKET) {
		p.advance()
		return ast.NewArray(start, elements), nil
	}
	for {
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if p.match(token.COMMA) {
			continue
		}
		break
	}
	if _, err := p.require(token.RBRACKET); err != nil {
		return nil, err
	}
	return ast.NewArray(start, elements), nil
}

// parseTypeInstance implements `"new" IDENT "(" args ")"`, confirmed by
// original_source/src/ast/type_creator.cpp's (name, arguments) shape.
func (p *Parser) parseTypeInstance() (*ast.Node, error) {
	start := p.advance().Pos // `new`
	name, err := p.require(token.IDENT)
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return ast.NewTypeInstance(start, name.Lexeme, args), nil
}
