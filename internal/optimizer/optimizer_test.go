package optimizer

import (
	"testing"

	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/lexer"
	"github.com/weak-lang/weak/internal/parser"
	"github.com/weak-lang/weak/internal/token"
)

func parseProgram(t *testing.T, source string) *ast.Node {
	t.Helper()
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	program, err := parser.New(tokens, source, "<test>").Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return program
}

// TestEmptyForLoopEliminated exercises §8 property 4.
func TestEmptyForLoopEliminated(t *testing.T) {
	program := parseProgram(t, `fun main(){ for(;;){} }`)
	Optimize(program)

	body := program.Children[0].A
	if len(body.Children) != 0 {
		t.Fatalf("main body = %v, want empty after eliminating the dead for-loop", body.Children)
	}
}

func TestNonEmptyForLoopKept(t *testing.T) {
	program := parseProgram(t, `fun main(){ for(;;){ print(1); } }`)
	Optimize(program)

	body := program.Children[0].A
	if len(body.Children) != 1 || body.Children[0].Kind != ast.For {
		t.Fatalf("expected the for-loop to survive optimization, got %v", body.Children)
	}
}

func TestNestedDeadLoopEliminatedFromItsOwnBlock(t *testing.T) {
	// The outer while's own body has two statements; only the nested
	// dead for-loop should disappear, from the outer while's body, not
	// from main's own top-level statement list.
	program := parseProgram(t, `fun main(){ while(1){ print(1); for(;;){} } }`)
	Optimize(program)

	mainBody := program.Children[0].A
	if len(mainBody.Children) != 1 {
		t.Fatalf("main body = %v, want exactly the while statement", mainBody.Children)
	}
	outerWhile := mainBody.Children[0]
	if outerWhile.Kind != ast.While {
		t.Fatalf("expected a While, got %s", outerWhile.Kind)
	}
	if len(outerWhile.B.Children) != 1 {
		t.Fatalf("while body = %v, want only the print call after eliminating the nested for", outerWhile.B.Children)
	}
}

func TestUnaryConstantFolded(t *testing.T) {
	program := parseProgram(t, `fun main(){ ++5; }`)
	Optimize(program)

	stmt := program.Children[0].A.Children[0]
	if stmt.Kind != ast.Integer || stmt.IntValue != 6 {
		t.Fatalf("got %v, want a folded Integer(6)", stmt)
	}
}

func TestUnaryOnSymbolNotFolded(t *testing.T) {
	program := parseProgram(t, `fun main(){ ++x; }`)
	Optimize(program)

	stmt := program.Children[0].A.Children[0]
	if stmt.Kind != ast.Unary || stmt.Op != token.INC {
		t.Fatalf("got %v, want an untouched Unary(++, x) since x must mutate at evaluation time", stmt)
	}
}

// TestIdempotentOptimization exercises §8 property 6.
func TestIdempotentOptimization(t *testing.T) {
	program := parseProgram(t, `fun main(){ for(;;){} while(1){} ++3; print(1); }`)
	Optimize(program)
	first := dumpKinds(program)
	Optimize(program)
	second := dumpKinds(program)

	if first != second {
		t.Errorf("optimizing twice changed the tree:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func dumpKinds(n *ast.Node) string {
	if n == nil {
		return "_"
	}
	s := n.Kind.String()
	for _, c := range []*ast.Node{n.A, n.B, n.C, n.D} {
		s += "(" + dumpKinds(c) + ")"
	}
	for _, c := range n.Children {
		s += "[" + dumpKinds(c) + "]"
	}
	return s
}
