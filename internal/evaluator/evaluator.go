// Package evaluator implements the tree-walking evaluator (§4.6): the
// final stage of the pipeline, consuming the optimized AST, reading and
// writing internal/storage, invoking internal/builtins, and emitting
// output through an injected sink.Sink. Grounded on the teacher's
// internal/interp/evaluator/evaluator.go Context-centric visitor shape
// and original_source/src/eval/eval.cpp + src/eval/implementation/
// {binary,unary}.cpp for per-kind dispatch and the int/float promotion
// rules.
package evaluator

import (
	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/builtins"
	"github.com/weak-lang/weak/internal/errx"
	"github.com/weak-lang/weak/internal/sink"
	"github.com/weak-lang/weak/internal/storage"
	"github.com/weak-lang/weak/internal/token"
)

// Evaluator executes one program against its own Storage. Create one per
// invocation unless the embedder explicitly wants top-level bindings
// (lambdas, types, assigned globals) to persist across calls — the REPL
// does exactly that by reusing the same Evaluator across lines, per §7's
// "the storage table is not reset automatically between REPL lines."
type Evaluator struct {
	Storage  *storage.Storage
	registry *builtins.Registry
	builtins *builtins.Context
	source   string
	file     string
}

// New constructs an Evaluator writing built-in output to out and
// resolving read_file through files (files may be nil, in which case
// read_file fails at call time).
func New(out sink.Sink, files builtins.FileReader, source, file string) *Evaluator {
	return &Evaluator{
		Storage:  storage.New(),
		registry: builtins.NewRegistry(),
		builtins: &builtins.Context{Sink: out, Files: files},
		source:   source,
		file:     file,
	}
}

func (e *Evaluator) errf(pos token.Position, format string, args ...any) error {
	return errx.NewRuntimeError(pos, e.source, e.file, format, args...)
}

// Run implements the top-level protocol (§4.6a-b): every top-level
// Lambda and TypeDefinition is pushed into storage under its name, then
// `main` is called with no arguments.
func (e *Evaluator) Run(program *ast.Node) error {
	for _, stmt := range program.Children {
		switch stmt.Kind {
		case ast.Lambda:
			e.Storage.Push(stmt.Text, stmt)
		case ast.TypeDefinition:
			e.Storage.Push(stmt.Text, stmt)
		}
	}

	_, err := e.callLambda("main", nil, token.Position{})
	return err
}

// eval dispatches a single AST node to its evaluation rule.
func (e *Evaluator) eval(n *ast.Node) (*ast.Node, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case ast.Integer, ast.Float, ast.String, ast.TypeObject, ast.Lambda, ast.TypeDefinition:
		return n, nil

	case ast.Symbol:
		v, err := e.Storage.Lookup(n.Text)
		if err != nil {
			return nil, e.errf(n.Pos, "%v", err)
		}
		return v, nil

	case ast.Array:
		return e.evalArray(n)

	case ast.ArrayIndex:
		return e.evalArrayIndex(n)

	case ast.Unary:
		return e.evalUnary(n)

	case ast.Binary:
		return e.evalBinary(n)

	case ast.Block:
		return e.evalBlockScoped(n)

	case ast.If:
		return e.evalIf(n)

	case ast.While:
		return e.evalWhile(n)

	case ast.For:
		return e.evalFor(n)

	case ast.Call:
		return e.evalCall(n)

	case ast.TypeInstance:
		return e.evalTypeInstance(n)

	case ast.FieldAccess:
		return e.evalFieldAccess(n)

	default:
		return nil, e.errf(n.Pos, "cannot evaluate node kind %s", n.Kind)
	}
}

func (e *Evaluator) evalArray(n *ast.Node) (*ast.Node, error) {
	elements := make([]*ast.Node, len(n.Children))
	for i, el := range n.Children {
		v, err := e.eval(el)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return ast.NewArray(n.Pos, elements), nil
}

func (e *Evaluator) evalArrayIndex(n *ast.Node) (*ast.Node, error) {
	arr, err := e.Storage.Lookup(n.Text)
	if err != nil {
		return nil, e.errf(n.Pos, "%v", err)
	}
	if arr.Kind != ast.Array {
		return nil, e.errf(n.Pos, "%s is not an array", n.Text)
	}
	idx, err := e.eval(n.A)
	if err != nil {
		return nil, err
	}
	if idx.Kind != ast.Integer {
		return nil, e.errf(n.Pos, "array index must be an integer")
	}
	i := int(idx.IntValue)
	if i < 0 || i >= len(arr.Children) {
		return nil, e.errf(n.Pos, "array index out of range: %d (size %d)", i, len(arr.Children))
	}
	return arr.Children[i], nil
}

// evalBlockScoped implements the Block rule: begin-scope, evaluate each
// statement in order, end-scope, evaluating to the last statement's
// value. The scope is released even if a statement evaluation fails, per
// §5's "every begin-scope must be matched by exactly one end-scope on
// every exit path including error paths."
func (e *Evaluator) evalBlockScoped(n *ast.Node) (*ast.Node, error) {
	e.Storage.BeginScope()
	defer e.Storage.EndScope()
	return e.evalStatements(n.Children)
}

// evalStatements evaluates a statement list in the CURRENT scope (no
// begin/end-scope of its own) and returns the last statement's value.
// Used both by evalBlockScoped (which supplies the scope) and by
// callLambda (whose own begin-scope already covers parameter binding and
// the body, per §4.6's "begin-scope, bind each parameter ...,
// evaluate the body's statements in order, and end-scope").
func (e *Evaluator) evalStatements(statements []*ast.Node) (*ast.Node, error) {
	var last *ast.Node
	for _, stmt := range statements {
		v, err := e.eval(stmt)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (e *Evaluator) evalIf(n *ast.Node) (*ast.Node, error) {
	cond, err := e.eval(n.A)
	if err != nil {
		return nil, err
	}
	if !cond.IsNumeric() {
		return nil, e.errf(n.Pos, "if condition must be numeric")
	}
	if cond.IsTruthy() {
		return e.eval(n.B)
	}
	if n.C != nil {
		return e.eval(n.C)
	}
	return nil, nil
}

func (e *Evaluator) evalWhile(n *ast.Node) (*ast.Node, error) {
	for {
		cond, err := e.eval(n.A)
		if err != nil {
			return nil, err
		}
		if !cond.IsNumeric() {
			return nil, e.errf(n.Pos, "while condition must be numeric")
		}
		if !cond.IsTruthy() {
			return nil, nil
		}
		if _, err := e.eval(n.B); err != nil {
			return nil, err
		}
	}
}

// evalFor implements the C-style loop. Its scope wraps the whole
// construct (init, condition, step, and body all share it) so names
// bound by init are local to the loop, per §4.6.
func (e *Evaluator) evalFor(n *ast.Node) (*ast.Node, error) {
	e.Storage.BeginScope()
	defer e.Storage.EndScope()

	if n.A != nil {
		if _, err := e.eval(n.A); err != nil {
			return nil, err
		}
	}

	for {
		if n.B != nil {
			cond, err := e.eval(n.B)
			if err != nil {
				return nil, err
			}
			if !cond.IsNumeric() {
				return nil, e.errf(n.Pos, "for condition must be numeric")
			}
			if !cond.IsTruthy() {
				return nil, nil
			}
		}

		if _, err := e.eval(n.D); err != nil {
			return nil, err
		}

		if n.C != nil {
			if _, err := e.eval(n.C); err != nil {
				return nil, err
			}
		}
	}
}

func (e *Evaluator) evalTypeInstance(n *ast.Node) (*ast.Node, error) {
	def, err := e.Storage.Lookup(n.Text)
	if err != nil {
		return nil, e.errf(n.Pos, "%v", err)
	}
	if def.Kind != ast.TypeDefinition {
		return nil, e.errf(n.Pos, "%s is not a type", n.Text)
	}
	if len(n.Children) != len(def.Fields) {
		return nil, e.errf(n.Pos, "%s: %d argument(s) required, got %d", n.Text, len(def.Fields), len(n.Children))
	}
	values := make([]*ast.Node, len(n.Children))
	for i, arg := range n.Children {
		v, err := e.eval(arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return ast.NewTypeObject(n.Pos, n.Text, def.Fields, values), nil
}

func (e *Evaluator) evalFieldAccess(n *ast.Node) (*ast.Node, error) {
	instance, err := e.Storage.Lookup(n.Text)
	if err != nil {
		return nil, e.errf(n.Pos, "%v", err)
	}
	if instance.Kind != ast.TypeObject {
		return nil, e.errf(n.Pos, "%s is not an instance", n.Text)
	}
	field := n.Field()
	for i, name := range instance.FieldNames {
		if name == field {
			return instance.Children[i], nil
		}
	}
	return nil, e.errf(n.Pos, "%s: unknown field %s", n.Text, field)
}
