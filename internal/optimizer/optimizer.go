// Package optimizer implements the single in-place AST rewrite pass that
// runs after semantic analysis (§4.4): dead-infinite-empty-loop
// elimination and unary constant folding, applied recursively over every
// top-level Lambda's body. Grounded directly on
// original_source/src/optimizer/optimizer.cpp's dispatch shape
// (optimize/optimize_while/optimize_for/optimize_unary/optimize_binary),
// with one deliberate fix: the original reuses the top-level function's
// statement index (`to_erase`) even when recursing into a nested while/
// for body, so a nested loop it decides to eliminate is erased from the
// wrong list. This implementation instead threads each statement's
// actual enclosing block through the recursion, matching §4.4's "removed
// from the enclosing block ... applied recursively inside nested bodies"
// exactly.
package optimizer

import (
	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/token"
)

// Optimize rewrites every top-level Lambda's body in program (the
// parser's root Block) in place.
func Optimize(program *ast.Node) {
	for _, stmt := range program.Children {
		if stmt.Kind != ast.Lambda {
			continue
		}
		optimizeBlock(stmt.A)
	}
}

// optimizeBlock rewrites block.Children in place: each statement is
// recursively optimized, then statements that dead-loop-eliminate
// themselves are dropped from the list.
func optimizeBlock(block *ast.Node) {
	kept := block.Children[:0]
	for _, stmt := range block.Children {
		if rewritten, drop := optimizeStatement(stmt); !drop {
			kept = append(kept, rewritten)
		}
	}
	block.Children = kept
}

// optimizeStatement returns the (possibly rewritten) statement and
// whether it should be dropped from its enclosing block entirely.
func optimizeStatement(stmt *ast.Node) (*ast.Node, bool) {
	switch stmt.Kind {
	case ast.While:
		return optimizeWhile(stmt)
	case ast.For:
		return optimizeFor(stmt)
	case ast.Unary:
		return optimizeUnary(stmt), false
	case ast.Binary:
		return foldBinary(stmt), false
	case ast.Block:
		optimizeBlock(stmt)
		return stmt, false
	case ast.If:
		optimizeBlock(stmt.B)
		if stmt.C != nil {
			optimizeBlock(stmt.C)
		}
		return stmt, false
	default:
		return stmt, false
	}
}

// optimizeWhile recurses into the loop body first, then eliminates the
// loop if its condition is a constant truthy literal and the (now
// possibly-emptied) body has no statements left.
func optimizeWhile(stmt *ast.Node) (*ast.Node, bool) {
	optimizeBlock(stmt.B)
	if isConstantTruthy(stmt.A) && len(stmt.B.Children) == 0 {
		return nil, true
	}
	return stmt, false
}

// optimizeFor recurses into the loop body first, then eliminates the
// loop if its condition is absent or a constant truthy literal and the
// (now possibly-emptied) body has no statements left.
func optimizeFor(stmt *ast.Node) (*ast.Node, bool) {
	optimizeBlock(stmt.D)
	if (stmt.B == nil || isConstantTruthy(stmt.B)) && len(stmt.D.Children) == 0 {
		return nil, true
	}
	return stmt, false
}

// isConstantTruthy reports whether n is an Integer or Float literal with
// a nonzero value (§4.4: "constant truthy literal").
func isConstantTruthy(n *ast.Node) bool {
	return n.IsNumeric() && n.IsTruthy()
}

// optimizeUnary folds Unary(++|--, IntegerLiteral|FloatLiteral) into the
// evaluated literal. Any other Unary form (including ++/-- on a Symbol,
// which must mutate the bound value at evaluation time) is left intact.
func optimizeUnary(stmt *ast.Node) *ast.Node {
	operand := stmt.A
	if !operand.IsNumeric() {
		return stmt
	}

	if stmt.Op != token.INC && stmt.Op != token.DEC {
		return stmt
	}

	switch operand.Kind {
	case ast.Integer:
		delta := int32(1)
		if stmt.Op == token.DEC {
			delta = -1
		}
		return ast.NewInteger(stmt.Pos, operand.IntValue+delta)
	case ast.Float:
		delta := 1.0
		if stmt.Op == token.DEC {
			delta = -1
		}
		return ast.NewFloat(stmt.Pos, operand.FloatValue+delta)
	default:
		return stmt
	}
}

// foldBinary is a reserved hook for future binary constant folding; per
// §4.4 it is a structural no-op in this implementation.
func foldBinary(stmt *ast.Node) *ast.Node {
	return stmt
}
