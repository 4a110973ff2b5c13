// Package semantic implements the single top-down well-formedness pass
// that runs after parsing and before optimization (§4.3): it rejects
// ill-formed ASTs without executing them, reporting the first violation.
// Grounded on the teacher's internal/semantic/analyzer.go pass-over-AST
// shape and original_source/src/semantic/semantic_analyzer.cpp for the
// exact check list.
package semantic

import (
	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/errx"
)

// Analyzer walks a parsed program checking every statement and
// expression for the shape rules §4.3 requires.
type Analyzer struct {
	source string
	file   string
}

// New returns an Analyzer that decorates errors with source and file.
func New(source, file string) *Analyzer {
	return &Analyzer{source: source, file: file}
}

func (a *Analyzer) errf(n *ast.Node, format string, args ...any) error {
	return errx.NewSemanticError(n.Pos, a.source, a.file, format, args...)
}

// Check runs the analyzer over root (the parser's program Block) and
// every top-level Lambda/TypeDefinition/statement it contains.
func (a *Analyzer) Check(root *ast.Node) error {
	return a.checkStatements(root.Children, false)
}

// checkStatements validates a sequence of statements. insideLambda
// governs the nested-lambda-declaration rule: a Lambda may only be
// declared at the top level.
func (a *Analyzer) checkStatements(statements []*ast.Node, insideLambda bool) error {
	for _, stmt := range statements {
		if err := a.checkStatement(stmt, insideLambda); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkStatement(n *ast.Node, insideLambda bool) error {
	switch n.Kind {
	case ast.Lambda:
		if insideLambda {
			return a.errf(n, "nested lambda declarations are not allowed")
		}
		if err := a.checkParameters(n.Children); err != nil {
			return err
		}
		return a.checkStatements(n.A.Children, true)

	case ast.TypeDefinition:
		return nil

	case ast.Block:
		return a.checkStatements(n.Children, insideLambda)

	case ast.If:
		if err := a.checkCondition(n.A); err != nil {
			return err
		}
		if err := a.checkStatement(n.B, insideLambda); err != nil {
			return err
		}
		if n.C != nil {
			return a.checkStatement(n.C, insideLambda)
		}
		return nil

	case ast.While:
		if err := a.checkCondition(n.A); err != nil {
			return err
		}
		return a.checkStatement(n.B, insideLambda)

	case ast.For:
		if n.A != nil {
			if err := a.checkForInit(n.A); err != nil {
				return err
			}
		}
		if n.B != nil {
			if err := a.checkCondition(n.B); err != nil {
				return err
			}
		}
		if n.C != nil {
			if err := a.checkForStep(n.C); err != nil {
				return err
			}
		}
		return a.checkStatement(n.D, insideLambda)

	default:
		return a.checkExpr(n)
	}
}

func (a *Analyzer) checkParameters(params []*ast.Node) error {
	for _, p := range params {
		if p.Kind != ast.Symbol {
			return a.errf(p, "lambda parameters must be symbols")
		}
	}
	return nil
}

// checkCondition enforces the "value-producing expression" shape
// required of if/while/for conditions: Symbol, Integer, Float, Binary,
// Unary, or Call — never a block-valued construct.
func (a *Analyzer) checkCondition(n *ast.Node) error {
	switch n.Kind {
	case ast.Symbol, ast.Integer, ast.Float, ast.Binary, ast.Unary, ast.Call:
		return a.checkExpr(n)
	default:
		return a.errf(n, "condition must be a value-producing expression, got %s", n.Kind)
	}
}

// checkForInit requires the for-loop init clause, when present, to be an
// assignment Binary.
func (a *Analyzer) checkForInit(n *ast.Node) error {
	if n.Kind != ast.Binary || !n.Op.IsAssignment() {
		return a.errf(n, "for-loop init must be an assignment")
	}
	return a.checkExpr(n)
}

// checkForStep requires the for-loop step clause, when present, to be a
// Unary or Binary.
func (a *Analyzer) checkForStep(n *ast.Node) error {
	if n.Kind != ast.Unary && n.Kind != ast.Binary {
		return a.errf(n, "for-loop step must be a unary or binary expression")
	}
	return a.checkExpr(n)
}

// checkExpr validates operator whitelists, assignment targets, and
// call-argument shapes recursively through an expression tree.
func (a *Analyzer) checkExpr(n *ast.Node) error {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case ast.Unary:
		if !isValidUnaryOp(n.Op) {
			return a.errf(n, "invalid unary operator: %s", n.Op)
		}
		return a.checkExpr(n.A)

	case ast.Binary:
		if !isValidBinaryOp(n.Op) {
			return a.errf(n, "invalid binary operator: %s", n.Op)
		}
		if n.Op.IsAssignment() {
			if err := a.checkAssignmentTarget(n.A); err != nil {
				return err
			}
		}
		if err := a.checkExpr(n.A); err != nil {
			return err
		}
		return a.checkExpr(n.B)

	case ast.Array:
		for _, el := range n.Children {
			if err := a.checkExpr(el); err != nil {
				return err
			}
		}
		return nil

	case ast.ArrayIndex:
		return a.checkExpr(n.A)

	case ast.Call:
		for _, arg := range n.Children {
			if err := a.checkCallArgument(arg); err != nil {
				return err
			}
		}
		return nil

	case ast.TypeInstance:
		for _, arg := range n.Children {
			if err := a.checkCallArgument(arg); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

// checkCallArgument enforces the same value-producing shape conditions
// require, plus String and Array literals (arguments may be any
// non-block-valued expression).
func (a *Analyzer) checkCallArgument(n *ast.Node) error {
	switch n.Kind {
	case ast.If, ast.While, ast.For, ast.Block, ast.Lambda, ast.TypeDefinition:
		return a.errf(n, "call argument must not be block-valued, got %s", n.Kind)
	default:
		return a.checkExpr(n)
	}
}

func (a *Analyzer) checkAssignmentTarget(n *ast.Node) error {
	switch n.Kind {
	case ast.Symbol, ast.ArrayIndex, ast.FieldAccess:
		return nil
	default:
		return a.errf(n, "assignment target must be a symbol, array index, or field access, got %s", n.Kind)
	}
}
