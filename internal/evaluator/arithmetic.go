package evaluator

import (
	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/token"
)

// evalUnary implements ++/--/-/! (§4.6). ++/-- on a Symbol mutate the
// bound Integer or Float in place and return it; applied to any other
// numeric expression they compute a fresh value without touching
// storage. - negates preserving kind; ! yields an Integer in {0,1}.
func (e *Evaluator) evalUnary(n *ast.Node) (*ast.Node, error) {
	switch n.Op {
	case token.INC, token.DEC:
		return e.evalIncDec(n)
	case token.MINUS:
		v, err := e.eval(n.A)
		if err != nil {
			return nil, err
		}
		if !v.IsNumeric() {
			return nil, e.errf(n.Pos, "unary - requires a numeric operand")
		}
		if v.Kind == ast.Integer {
			return ast.NewInteger(n.Pos, -v.IntValue), nil
		}
		return ast.NewFloat(n.Pos, -v.FloatValue), nil
	case token.BANG:
		v, err := e.eval(n.A)
		if err != nil {
			return nil, err
		}
		if !v.IsNumeric() {
			return nil, e.errf(n.Pos, "unary ! requires a numeric operand")
		}
		if v.IsTruthy() {
			return ast.NewInteger(n.Pos, 0), nil
		}
		return ast.NewInteger(n.Pos, 1), nil
	default:
		return nil, e.errf(n.Pos, "unknown unary operator: %s", n.Op)
	}
}

func (e *Evaluator) evalIncDec(n *ast.Node) (*ast.Node, error) {
	delta := int32(1)
	fdelta := 1.0
	if n.Op == token.DEC {
		delta, fdelta = -1, -1
	}

	if n.A.Kind == ast.Symbol {
		bound, err := e.Storage.Lookup(n.A.Text)
		if err != nil {
			return nil, e.errf(n.Pos, "%v", err)
		}
		switch bound.Kind {
		case ast.Integer:
			bound.IntValue += delta
		case ast.Float:
			bound.FloatValue += fdelta
		default:
			return nil, e.errf(n.Pos, "++/-- requires an integer or float binding")
		}
		return bound, nil
	}

	v, err := e.eval(n.A)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case ast.Integer:
		return ast.NewInteger(n.Pos, v.IntValue+delta), nil
	case ast.Float:
		return ast.NewFloat(n.Pos, v.FloatValue+fdelta), nil
	default:
		return nil, e.errf(n.Pos, "++/-- requires an integer or float operand")
	}
}

// integerOnlyOps are the operators that reject float operands (§4.6).
var integerOnlyOps = map[token.Kind]bool{
	token.PERCENT: true, token.SHL: true, token.SHR: true,
	token.AMP: true, token.PIPE: true, token.CARET: true,
}

// evalBinary implements assignment, arithmetic, comparison, shift,
// bitwise, and logical binary operators (§4.6). Assignment evaluates its
// RHS before writing; every other operator evaluates LHS before RHS.
func (e *Evaluator) evalBinary(n *ast.Node) (*ast.Node, error) {
	if n.Op.IsAssignment() {
		return e.evalAssignment(n)
	}

	lhs, err := e.eval(n.A)
	if err != nil {
		return nil, err
	}
	rhs, err := e.eval(n.B)
	if err != nil {
		return nil, err
	}
	return e.applyBinaryOp(n.Pos, n.Op, lhs, rhs)
}

// compoundBase maps a compound-assignment operator to the arithmetic
// operator it applies before writing back.
var compoundBase = map[token.Kind]token.Kind{
	token.PLUS_ASSIGN: token.PLUS, token.MINUS_ASSIGN: token.MINUS,
	token.STAR_ASSIGN: token.STAR, token.SLASH_ASSIGN: token.SLASH,
	token.SHL_ASSIGN: token.SHL, token.SHR_ASSIGN: token.SHR,
	token.AMP_ASSIGN: token.AMP, token.PIPE_ASSIGN: token.PIPE,
	token.CARET_ASSIGN: token.CARET,
}

func (e *Evaluator) evalAssignment(n *ast.Node) (*ast.Node, error) {
	rhs, err := e.eval(n.B)
	if err != nil {
		return nil, err
	}

	value := rhs
	if base, ok := compoundBase[n.Op]; ok {
		current, err := e.eval(n.A)
		if err != nil {
			return nil, err
		}
		value, err = e.applyBinaryOp(n.Pos, base, current, rhs)
		if err != nil {
			return nil, err
		}
	}

	return e.assignTo(n.A, value)
}

// assignTo writes value to an lvalue: a Symbol, ArrayIndex, or
// FieldAccess target (§6's assignment-target whitelist, enforced
// ahead of time by internal/semantic).
func (e *Evaluator) assignTo(target *ast.Node, value *ast.Node) (*ast.Node, error) {
	switch target.Kind {
	case ast.Symbol:
		e.Storage.Overwrite(target.Text, value)
		return value, nil

	case ast.ArrayIndex:
		arr, err := e.Storage.Lookup(target.Text)
		if err != nil {
			return nil, e.errf(target.Pos, "%v", err)
		}
		if arr.Kind != ast.Array {
			return nil, e.errf(target.Pos, "%s is not an array", target.Text)
		}
		idx, err := e.eval(target.A)
		if err != nil {
			return nil, err
		}
		if idx.Kind != ast.Integer {
			return nil, e.errf(target.Pos, "array index must be an integer")
		}
		i := int(idx.IntValue)
		if i < 0 || i >= len(arr.Children) {
			return nil, e.errf(target.Pos, "array index out of range: %d (size %d)", i, len(arr.Children))
		}
		arr.Children[i] = value
		return value, nil

	case ast.FieldAccess:
		instance, err := e.Storage.Lookup(target.Text)
		if err != nil {
			return nil, e.errf(target.Pos, "%v", err)
		}
		if instance.Kind != ast.TypeObject {
			return nil, e.errf(target.Pos, "%s is not an instance", target.Text)
		}
		field := target.Field()
		for i, name := range instance.FieldNames {
			if name == field {
				instance.Children[i] = value
				return value, nil
			}
		}
		return nil, e.errf(target.Pos, "%s: unknown field %s", target.Text, field)

	default:
		return nil, e.errf(target.Pos, "invalid assignment target: %s", target.Kind)
	}
}

// applyBinaryOp dispatches a non-assignment operator over two already
// evaluated operands, promoting to float when either side is a Float
// (§4.6: "dispatch on the pair (int/int, int/float, float/int,
// float/float) to produce the arithmetically correct result"). Integer-
// only operators reject a Float operand outright.
func (e *Evaluator) applyBinaryOp(pos token.Position, op token.Kind, lhs, rhs *ast.Node) (*ast.Node, error) {
	if !lhs.IsNumeric() || !rhs.IsNumeric() {
		return nil, e.errf(pos, "operator %s requires numeric operands", op)
	}

	if integerOnlyOps[op] {
		if lhs.Kind != ast.Integer || rhs.Kind != ast.Integer {
			return nil, e.errf(pos, "operator %s requires integer operands", op)
		}
		return e.integerOnly(pos, op, lhs.IntValue, rhs.IntValue)
	}

	if op == token.AMP_AMP || op == token.PIPE_PIPE {
		return e.logical(pos, op, lhs.IsTruthy(), rhs.IsTruthy())
	}

	if lhs.Kind == ast.Integer && rhs.Kind == ast.Integer {
		return e.integerArithmetic(pos, op, lhs.IntValue, rhs.IntValue)
	}

	l, r := toFloat(lhs), toFloat(rhs)
	return e.floatArithmetic(pos, op, l, r)
}

func toFloat(n *ast.Node) float64 {
	if n.Kind == ast.Integer {
		return float64(n.IntValue)
	}
	return n.FloatValue
}

func (e *Evaluator) integerOnly(pos token.Position, op token.Kind, l, r int32) (*ast.Node, error) {
	switch op {
	case token.PERCENT:
		if r == 0 {
			return nil, e.errf(pos, "division by zero")
		}
		return ast.NewInteger(pos, l%r), nil
	case token.SHL:
		return ast.NewInteger(pos, l<<uint32(r)), nil
	case token.SHR:
		return ast.NewInteger(pos, l>>uint32(r)), nil
	case token.AMP:
		return ast.NewInteger(pos, l&r), nil
	case token.PIPE:
		return ast.NewInteger(pos, l|r), nil
	case token.CARET:
		return ast.NewInteger(pos, l^r), nil
	default:
		return nil, e.errf(pos, "unknown integer operator: %s", op)
	}
}

func (e *Evaluator) integerArithmetic(pos token.Position, op token.Kind, l, r int32) (*ast.Node, error) {
	switch op {
	case token.PLUS:
		return ast.NewInteger(pos, l+r), nil
	case token.MINUS:
		return ast.NewInteger(pos, l-r), nil
	case token.STAR:
		return ast.NewInteger(pos, l*r), nil
	case token.SLASH:
		if r == 0 {
			return nil, e.errf(pos, "division by zero")
		}
		return ast.NewInteger(pos, l/r), nil
	case token.EQ:
		return boolInt(pos, l == r), nil
	case token.NOT_EQ:
		return boolInt(pos, l != r), nil
	case token.LT:
		return boolInt(pos, l < r), nil
	case token.LT_EQ:
		return boolInt(pos, l <= r), nil
	case token.GT:
		return boolInt(pos, l > r), nil
	case token.GT_EQ:
		return boolInt(pos, l >= r), nil
	default:
		return nil, e.errf(pos, "unknown operator: %s", op)
	}
}

// floatArithmetic handles any operand pair where at least one side is a
// Float. Comparisons still yield an Integer in {0,1} (§4.6), diverging
// from the float-typed comparison result the original produces for
// mixed-kind operands.
func (e *Evaluator) floatArithmetic(pos token.Position, op token.Kind, l, r float64) (*ast.Node, error) {
	switch op {
	case token.PLUS:
		return ast.NewFloat(pos, l+r), nil
	case token.MINUS:
		return ast.NewFloat(pos, l-r), nil
	case token.STAR:
		return ast.NewFloat(pos, l*r), nil
	case token.SLASH:
		if r == 0 {
			return nil, e.errf(pos, "division by zero")
		}
		return ast.NewFloat(pos, l/r), nil
	case token.EQ:
		return boolInt(pos, l == r), nil
	case token.NOT_EQ:
		return boolInt(pos, l != r), nil
	case token.LT:
		return boolInt(pos, l < r), nil
	case token.LT_EQ:
		return boolInt(pos, l <= r), nil
	case token.GT:
		return boolInt(pos, l > r), nil
	case token.GT_EQ:
		return boolInt(pos, l >= r), nil
	default:
		return nil, e.errf(pos, "unknown operator: %s", op)
	}
}

func (e *Evaluator) logical(pos token.Position, op token.Kind, l, r bool) (*ast.Node, error) {
	switch op {
	case token.AMP_AMP:
		return boolInt(pos, l && r), nil
	case token.PIPE_PIPE:
		return boolInt(pos, l || r), nil
	default:
		return nil, e.errf(pos, "unknown logical operator: %s", op)
	}
}

func boolInt(pos token.Position, v bool) *ast.Node {
	if v {
		return ast.NewInteger(pos, 1)
	}
	return ast.NewInteger(pos, 0)
}
