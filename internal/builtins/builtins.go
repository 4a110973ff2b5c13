// Package builtins implements the interpreter's fixed standard library
// (§4.7): print/println, the five type predicates, procedure-arity, the
// array accessors, and the optional read_file. Grounded on
// original_source/src/std/builtins.cpp and its implementation/{io,
// type_traits,array}.cpp for exact per-function semantics, with the
// Registry/Category organization borrowed from the teacher's
// internal/interp/builtins/registry.go (scaled from dozens of DWScript
// RTL functions down to this language's eleven).
package builtins

import (
	"strconv"
	"strings"

	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/errx"
	"github.com/weak-lang/weak/internal/sink"
	"github.com/weak-lang/weak/internal/token"
)

// FileReader backs read_file and is implemented by internal/loader,
// reusing the same filesystem boundary load directives use.
type FileReader interface {
	ReadFile(path string) (string, error)
}

// Context is the environment a built-in executes in: where print/println
// write, and how read_file resolves a path. Both fields may be nil; a
// built-in that needs one and doesn't have it fails with a RuntimeError
// rather than panicking.
type Context struct {
	Sink  sink.Sink
	Files FileReader
}

// Func is the signature every built-in implements.
type Func func(ctx *Context, args []*ast.Node, pos token.Position) (*ast.Node, error)

// Category groups built-ins for introspection/documentation purposes.
type Category string

const (
	CategoryIO        Category = "io"
	CategoryTypeTrait Category = "type-trait"
	CategoryArray     Category = "array"
	CategorySystem    Category = "system"
)

// Info holds metadata about a registered built-in.
type Info struct {
	Name        string
	Func        Func
	Category    Category
	Description string
}

// Registry is a lookup table of built-in functions by exact name (the
// language's identifiers are case-sensitive, unlike the teacher's
// DWScript, so unlike internal/interp/builtins/registry.go this does not
// lowercase-normalize its keys).
type Registry struct {
	funcs map[string]*Info
}

// NewRegistry returns a Registry pre-populated with the standard library.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]*Info)}
	r.register("print", print_, CategoryIO, "write each value to the sink, space-separated")
	r.register("println", println_, CategoryIO, "print, then a trailing newline")
	r.register("integer?", typeCheck(ast.Integer), CategoryTypeTrait, "1 if the argument is an Integer, else 0")
	r.register("float?", typeCheck(ast.Float), CategoryTypeTrait, "1 if the argument is a Float, else 0")
	r.register("string?", typeCheck(ast.String), CategoryTypeTrait, "1 if the argument is a String, else 0")
	r.register("array?", typeCheck(ast.Array), CategoryTypeTrait, "1 if the argument is an Array, else 0")
	r.register("procedure?", typeCheck(ast.Lambda), CategoryTypeTrait, "1 if the argument is a Lambda, else 0")
	r.register("procedure-arity", procedureArity, CategorySystem, "parameter count of a Lambda")
	r.register("array-get", arrayGet, CategoryArray, "bounds-checked element fetch")
	r.register("array-set", arraySet, CategoryArray, "in-place element assignment")
	r.register("read_file", readFile, CategoryIO, "read a file's contents as a String")
	return r
}

func (r *Registry) register(name string, fn Func, cat Category, desc string) {
	r.funcs[name] = &Info{Name: name, Func: fn, Category: cat, Description: desc}
}

// Lookup returns the built-in named name, if any.
func (r *Registry) Lookup(name string) (Func, bool) {
	info, ok := r.funcs[name]
	if !ok {
		return nil, false
	}
	return info.Func, true
}

// Has reports whether name is a registered built-in.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

func arityError(pos token.Position, name string, want, got int) error {
	return errx.NewRuntimeError(pos, "", "", "%s: %d argument(s) required, got %d", name, want, got)
}

func print_(ctx *Context, args []*ast.Node, pos token.Position) (*ast.Node, error) {
	if ctx == nil || ctx.Sink == nil {
		return nil, errx.NewRuntimeError(pos, "", "", "print: no output sink configured")
	}
	ctx.Sink.WriteString(formatValues(args))
	return nil, nil
}

func println_(ctx *Context, args []*ast.Node, pos token.Position) (*ast.Node, error) {
	if _, err := print_(ctx, args, pos); err != nil {
		return nil, err
	}
	ctx.Sink.WriteString("\n")
	return nil, nil
}

func formatValues(values []*ast.Node) string {
	var sb strings.Builder
	for i, v := range values {
		sb.WriteString(formatValue(v))
		if i < len(values)-1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// formatValue renders one value the way print does, recursing into
// TypeObject fields so a nested record prints its own parentheses, per
// original_source/src/std/implementation/io.cpp.
func formatValue(v *ast.Node) string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case ast.Integer:
		return strconv.FormatInt(int64(v.IntValue), 10)
	case ast.Float:
		return strconv.FormatFloat(v.FloatValue, 'g', -1, 64)
	case ast.String:
		return v.Text
	case ast.TypeObject:
		return "(" + formatValues(v.Children) + ")"
	default:
		return ""
	}
}

func typeCheck(kind ast.Kind) Func {
	return func(_ *Context, args []*ast.Node, pos token.Position) (*ast.Node, error) {
		if len(args) != 1 {
			return nil, arityError(pos, kindCheckName(kind), 1, len(args))
		}
		if args[0].Kind == kind {
			return ast.NewInteger(pos, 1), nil
		}
		return ast.NewInteger(pos, 0), nil
	}
}

func kindCheckName(kind ast.Kind) string {
	switch kind {
	case ast.Integer:
		return "integer?"
	case ast.Float:
		return "float?"
	case ast.String:
		return "string?"
	case ast.Array:
		return "array?"
	case ast.Lambda:
		return "procedure?"
	default:
		return "?"
	}
}

func procedureArity(_ *Context, args []*ast.Node, pos token.Position) (*ast.Node, error) {
	if len(args) != 1 {
		return nil, arityError(pos, "procedure-arity", 1, len(args))
	}
	if args[0].Kind != ast.Lambda {
		return nil, errx.NewRuntimeError(pos, "", "", "procedure-arity: function as argument required")
	}
	return ast.NewInteger(pos, int32(len(args[0].Children))), nil
}

func arrayGet(_ *Context, args []*ast.Node, pos token.Position) (*ast.Node, error) {
	if len(args) != 2 {
		return nil, arityError(pos, "array-get", 2, len(args))
	}
	arr, idx := args[0], args[1]
	if arr.Kind != ast.Array || idx.Kind != ast.Integer {
		return nil, errx.NewRuntimeError(pos, "", "", "array-get: wrong types")
	}
	i := int(idx.IntValue)
	if i < 0 || i >= len(arr.Children) {
		return nil, errx.NewRuntimeError(pos, "", "", "array-get: overflow (index is %d, size is %d)", i, len(arr.Children))
	}
	return arr.Children[i], nil
}

func arraySet(_ *Context, args []*ast.Node, pos token.Position) (*ast.Node, error) {
	if len(args) != 3 {
		return nil, arityError(pos, "array-set", 3, len(args))
	}
	arr, idx, value := args[0], args[1], args[2]
	if arr.Kind != ast.Array || idx.Kind != ast.Integer {
		return nil, errx.NewRuntimeError(pos, "", "", "array-set: wrong types")
	}
	i := int(idx.IntValue)
	if i < 0 || i >= len(arr.Children) {
		return nil, errx.NewRuntimeError(pos, "", "", "array-set: overflow (index is %d, size is %d)", i, len(arr.Children))
	}
	existing := arr.Children[i]
	if !sameScalarKind(existing.Kind, value.Kind) {
		return nil, errx.NewRuntimeError(pos, "", "", "array-set: wrong types")
	}
	arr.Children[i] = value
	return nil, nil
}

func sameScalarKind(a, b ast.Kind) bool {
	switch a {
	case ast.Integer, ast.Float, ast.String:
		return a == b
	default:
		return false
	}
}

func readFile(ctx *Context, args []*ast.Node, pos token.Position) (*ast.Node, error) {
	if len(args) != 1 || args[0].Kind != ast.String {
		return nil, errx.NewRuntimeError(pos, "", "", "read_file: 1 string argument required")
	}
	if ctx == nil || ctx.Files == nil {
		return nil, errx.NewRuntimeError(pos, "", "", "read_file: no file reader configured")
	}
	contents, err := ctx.Files.ReadFile(args[0].Text)
	if err != nil {
		return nil, errx.NewRuntimeError(pos, "", "", "read_file: %v", err)
	}
	return ast.NewString(pos, contents), nil
}
