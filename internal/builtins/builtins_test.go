package builtins

import (
	"errors"
	"testing"

	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/sink"
	"github.com/weak-lang/weak/internal/token"
)

func call(t *testing.T, ctx *Context, name string, args ...*ast.Node) (*ast.Node, error) {
	t.Helper()
	r := NewRegistry()
	fn, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("%s is not registered", name)
	}
	return fn(ctx, args, token.Position{})
}

func TestPrintWritesSpaceSeparatedValues(t *testing.T) {
	buf := &sink.Buffer{}
	ctx := &Context{Sink: buf}
	if _, err := call(t, ctx, "print", ast.NewInteger(token.Position{}, 1), ast.NewString(token.Position{}, "x")); err != nil {
		t.Fatalf("print: %v", err)
	}
	if buf.String() != "1 x" {
		t.Errorf("buf = %q, want %q", buf.String(), "1 x")
	}
}

func TestPrintlnAppendsNewline(t *testing.T) {
	buf := &sink.Buffer{}
	ctx := &Context{Sink: buf}
	if _, err := call(t, ctx, "println", ast.NewInteger(token.Position{}, 9)); err != nil {
		t.Fatalf("println: %v", err)
	}
	if buf.String() != "9\n" {
		t.Errorf("buf = %q, want %q", buf.String(), "9\n")
	}
}

func TestPrintWithoutSinkFails(t *testing.T) {
	if _, err := call(t, nil, "print", ast.NewInteger(token.Position{}, 1)); err == nil {
		t.Error("expected an error with no sink configured")
	}
}

func TestTypePredicates(t *testing.T) {
	cases := []struct {
		name string
		node *ast.Node
		want int32
	}{
		{"integer?", ast.NewInteger(token.Position{}, 1), 1},
		{"integer?", ast.NewFloat(token.Position{}, 1), 0},
		{"float?", ast.NewFloat(token.Position{}, 1), 1},
		{"string?", ast.NewString(token.Position{}, "s"), 1},
		{"array?", ast.NewArray(token.Position{}, nil), 1},
		{"procedure?", ast.NewLambda(token.Position{}, "f", nil, ast.NewBlock(token.Position{}, nil)), 1},
		{"procedure?", ast.NewInteger(token.Position{}, 1), 0},
	}
	for _, c := range cases {
		got, err := call(t, nil, c.name, c.node)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got.IntValue != c.want {
			t.Errorf("%s(%s) = %d, want %d", c.name, c.node.Kind, got.IntValue, c.want)
		}
	}
}

func TestProcedureArity(t *testing.T) {
	params := []*ast.Node{ast.NewSymbol(token.Position{}, "a"), ast.NewSymbol(token.Position{}, "b")}
	fn := ast.NewLambda(token.Position{}, "f", params, ast.NewBlock(token.Position{}, nil))
	got, err := call(t, nil, "procedure-arity", fn)
	if err != nil {
		t.Fatalf("procedure-arity: %v", err)
	}
	if got.IntValue != 2 {
		t.Errorf("arity = %d, want 2", got.IntValue)
	}
}

func TestProcedureArityRejectsNonLambda(t *testing.T) {
	if _, err := call(t, nil, "procedure-arity", ast.NewInteger(token.Position{}, 1)); err == nil {
		t.Error("expected an error for a non-Lambda argument")
	}
}

func TestArrayGetAndSet(t *testing.T) {
	arr := ast.NewArray(token.Position{}, []*ast.Node{
		ast.NewInteger(token.Position{}, 1),
		ast.NewInteger(token.Position{}, 2),
	})

	got, err := call(t, nil, "array-get", arr, ast.NewInteger(token.Position{}, 1))
	if err != nil {
		t.Fatalf("array-get: %v", err)
	}
	if got.IntValue != 2 {
		t.Errorf("array-get(1) = %d, want 2", got.IntValue)
	}

	if _, err := call(t, nil, "array-set", arr, ast.NewInteger(token.Position{}, 0), ast.NewInteger(token.Position{}, 9)); err != nil {
		t.Fatalf("array-set: %v", err)
	}
	if arr.Children[0].IntValue != 9 {
		t.Errorf("arr[0] = %d, want 9", arr.Children[0].IntValue)
	}
}

// TestArrayGetOutOfRange exercises §8's array-out-of-range error scenario.
func TestArrayGetOutOfRange(t *testing.T) {
	arr := ast.NewArray(token.Position{}, []*ast.Node{ast.NewInteger(token.Position{}, 1)})
	if _, err := call(t, nil, "array-get", arr, ast.NewInteger(token.Position{}, 99)); err == nil {
		t.Error("expected an out-of-range error")
	}
}

func TestArraySetRejectsMismatchedKind(t *testing.T) {
	arr := ast.NewArray(token.Position{}, []*ast.Node{ast.NewInteger(token.Position{}, 1)})
	if _, err := call(t, nil, "array-set", arr, ast.NewInteger(token.Position{}, 0), ast.NewString(token.Position{}, "x")); err == nil {
		t.Error("expected an error assigning a String into an Integer slot")
	}
}

type fakeFiles map[string]string

func (f fakeFiles) ReadFile(path string) (string, error) {
	s, ok := f[path]
	if !ok {
		return "", errors.New("not found")
	}
	return s, nil
}

func TestReadFile(t *testing.T) {
	ctx := &Context{Files: fakeFiles{"a.txt": "hello"}}
	got, err := call(t, ctx, "read_file", ast.NewString(token.Position{}, "a.txt"))
	if err != nil {
		t.Fatalf("read_file: %v", err)
	}
	if got.Text != "hello" {
		t.Errorf("read_file = %q, want %q", got.Text, "hello")
	}
}

func TestReadFileWithoutContextFails(t *testing.T) {
	if _, err := call(t, nil, "read_file", ast.NewString(token.Position{}, "a.txt")); err == nil {
		t.Error("expected an error with no file reader configured")
	}
}

func TestArityErrors(t *testing.T) {
	if _, err := call(t, nil, "array-get", ast.NewArray(token.Position{}, nil)); err == nil {
		t.Error("expected an arity error for array-get with one argument")
	}
}
