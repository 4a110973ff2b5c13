package semantic

import "github.com/weak-lang/weak/internal/token"

func isValidUnaryOp(op token.Kind) bool {
	switch op {
	case token.INC, token.DEC, token.MINUS, token.BANG:
		return true
	default:
		return false
	}
}

// isValidBinaryOp enforces the §6 operator whitelist: arithmetic,
// comparison, bitwise/logical, shift, and assignment/compound-assignment.
func isValidBinaryOp(op token.Kind) bool {
	switch op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.LT_EQ, token.GT, token.GT_EQ,
		token.AMP, token.PIPE, token.CARET, token.AMP_AMP, token.PIPE_PIPE,
		token.SHL, token.SHR,
		token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN,
		token.SHL_ASSIGN, token.SHR_ASSIGN, token.AMP_ASSIGN, token.PIPE_ASSIGN, token.CARET_ASSIGN:
		return true
	default:
		return false
	}
}
