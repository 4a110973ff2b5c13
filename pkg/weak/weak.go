// Package weak is the public embedding facade: construct an Engine, feed
// it source text, get back what it printed (or why it failed). Shape
// re-derived from the teacher's pkg/dwscript Engine (New(opts...)
// (*Engine, error), functional Options, SetOutput, Eval(source)
// (*Result, error)) — only its test files were available, not its
// source, so the API here is scaled down to what this language actually
// needs rather than ported function-for-function.
package weak

import (
	"github.com/weak-lang/weak/internal/builtins"
	"github.com/weak-lang/weak/internal/evaluator"
	"github.com/weak-lang/weak/internal/lexer"
	"github.com/weak-lang/weak/internal/optimizer"
	"github.com/weak-lang/weak/internal/parser"
	"github.com/weak-lang/weak/internal/semantic"
	"github.com/weak-lang/weak/internal/sink"
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithOutput routes print/println through out instead of the Engine's
// own internal buffer.
func WithOutput(out sink.Sink) Option {
	return func(e *Engine) { e.out = out }
}

// WithResolver installs the collaborator used to resolve `load`
// directives and read_file calls. Without one, both fail at their
// respective call sites rather than the Engine refusing to start.
func WithResolver(r Resolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// Resolver is the combination internal/lexer.SourceResolver and
// internal/builtins.FileReader an Engine needs; internal/loader's
// FilesystemResolver satisfies it.
type Resolver interface {
	ResolveLoad(path string) (source string, resolvedName string, err error)
	ReadFile(path string) (string, error)
}

// Engine parses, checks, optimizes, and evaluates source text, keeping
// one Evaluator (and therefore one Storage) alive across calls so a REPL
// session's top-level bindings persist between lines, per §7.
type Engine struct {
	out        sink.Sink
	resolver   Resolver
	eval       *evaluator.Evaluator
	persistent bool
}

// New constructs an Engine. By default its output is an in-memory
// sink.Buffer retrievable via Output(); WithOutput overrides this.
func New(opts ...Option) *Engine {
	e := &Engine{out: &sink.Buffer{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result reports the outcome of one Eval call.
type Result struct {
	// Output is the sink's String() after this call: everything written
	// since the sink was last cleared, including by earlier Eval calls.
	// It is empty for a sink that does not retain output (sink.Writer).
	Output string
}

// Output returns the Engine's sink's String(): everything written so far
// for a sink.Buffer (the default or one passed to WithOutput), "" for a
// sink that does not retain output such as sink.Writer.
func (e *Engine) Output() string {
	return e.out.String()
}

// Eval runs one program: lex (splicing any `load` directives), parse,
// semantically check, optimize, then evaluate, calling `main`. file
// names the source for diagnostics; it may be "" for REPL input.
//
// Top-level lambda/type bindings persist in the Engine's storage across
// calls, matching the REPL's line-at-a-time evaluation model (§7); a
// one-shot `run` invocation should discard the Engine after one Eval.
func (e *Engine) Eval(source, file string) (*Result, error) {
	lexOpts := []lexer.Option{lexer.WithFile(file)}
	if e.resolver != nil {
		lexOpts = append(lexOpts, lexer.WithResolver(e.resolver))
	}
	tokens, err := lexer.New(source, lexOpts...).Tokenize()
	if err != nil {
		return nil, err
	}

	program, err := parser.New(tokens, source, file).Parse()
	if err != nil {
		return nil, err
	}

	if err := semantic.New(source, file).Check(program); err != nil {
		return nil, err
	}

	optimizer.Optimize(program)

	if e.eval == nil {
		var files builtins.FileReader
		if e.resolver != nil {
			files = e.resolver
		}
		e.eval = evaluator.New(e.out, files, source, file)
	}
	if err := e.eval.Run(program); err != nil {
		return nil, err
	}

	return &Result{Output: e.out.String()}, nil
}
