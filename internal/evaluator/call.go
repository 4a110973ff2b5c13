package evaluator

import (
	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/token"
)

// isCallValue reports whether n is of a kind a lambda call is allowed to
// surface as its result (§4.6: "the call evaluates to the body's last statement
// if it is a scalar/string/array/instance; otherwise 'no value'").
func isCallValue(n *ast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.Integer, ast.Float, ast.String, ast.Array, ast.TypeObject:
		return true
	default:
		return false
	}
}

// evalCall evaluates a Call node: built-ins take priority by name, then
// a user Lambda looked up from storage.
func (e *Evaluator) evalCall(n *ast.Node) (*ast.Node, error) {
	args := make([]*ast.Node, len(n.Children))
	for i, a := range n.Children {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fn, ok := e.registry.Lookup(n.Text); ok {
		v, err := fn(e.builtins, args, n.Pos)
		if err != nil {
			return nil, e.errf(n.Pos, "%v", err)
		}
		return v, nil
	}

	return e.callLambda(n.Text, args, n.Pos)
}

// callLambda looks up a named Lambda, arity-checks it, binds its
// parameters, evaluates its body, and filters the result per
// isCallValue (§4.6).
func (e *Evaluator) callLambda(name string, args []*ast.Node, pos token.Position) (*ast.Node, error) {
	fn, err := e.Storage.Lookup(name)
	if err != nil {
		return nil, e.errf(pos, "%v", err)
	}
	if fn.Kind != ast.Lambda {
		return nil, e.errf(pos, "%s is not a lambda", name)
	}
	if len(fn.Children) != len(args) {
		return nil, e.errf(pos, "%s: %d argument(s) required, got %d", name, len(fn.Children), len(args))
	}

	e.Storage.BeginScope()
	defer e.Storage.EndScope()

	for i, param := range fn.Children {
		e.Storage.Push(param.Text, args[i])
	}

	result, err := e.evalStatements(fn.A.Children)
	if err != nil {
		return nil, err
	}
	if !isCallValue(result) {
		return nil, nil
	}
	return result, nil
}
